package app

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/officio/officio/pkg/user"
	log "github.com/sirupsen/logrus"
)

// SetupMiddleware wires all HTTP middlewares for the application.
func SetupMiddleware(r *mux.Router, deps *Dependencies) {

	// The gateway in front of this service authenticates members and
	// forwards the resolved id in X-User-Id. Propagate it into the
	// request context for downstream services.
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			userIdHeader := req.Header.Get("X-User-Id")
			ctx := req.Context()

			if userIdHeader != "" {
				userId, err := strconv.Atoi(userIdHeader)
				if err != nil {
					log.Debugf("invalid user id header: %s", userIdHeader)
					http.Error(w, "invalid user id", http.StatusForbidden)
					return
				}
				ctx = user.WithUser(ctx, user.User{Id: userId})
			}
			next.ServeHTTP(w, req.WithContext(ctx))
		})
	})
}
