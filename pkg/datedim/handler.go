package datedim

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/officio/officio/internal/rest"
	"github.com/officio/officio/pkg/dateutil"
)

type Handler struct {
	generator *Generator
}

func NewHandler(g *Generator) *Handler {
	return &Handler{g}
}

// ExtendDates triggers a date-dimension extension for an optional
// from/to range. With no parameters it continues from current coverage.
func (h *Handler) ExtendDates(w http.ResponseWriter, r *http.Request) {
	var from, to time.Time
	var err error

	if fromStr := r.URL.Query().Get("from"); fromStr != "" {
		if from, err = dateutil.Parse(fromStr); err != nil {
			writeDateError(w, "Invalid from (date) format")
			return
		}
	}
	if toStr := r.URL.Query().Get("to"); toStr != "" {
		if to, err = dateutil.Parse(toStr); err != nil {
			writeDateError(w, "Invalid to (date) format")
			return
		}
	}

	inserted, err := h.generator.Extend(r.Context(), from, to)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(map[string]int{"inserted": inserted}); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

func writeDateError(w http.ResponseWriter, msg string) {
	w.WriteHeader(http.StatusBadRequest)
	if encodeErr := json.NewEncoder(w).Encode(rest.ErrorResponse{
		Error:   msg,
		Details: "dates must be in yyyy-MM-dd format",
	}); encodeErr != nil {
		http.Error(w, encodeErr.Error(), http.StatusInternalServerError)
	}
}
