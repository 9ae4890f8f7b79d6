package user

// User identifies the member a request acts for. Authentication lives in
// the surrounding gateway; this engine only carries the resolved identity
// through the request context.
type User struct {
	Id          int
	Uid         string
	Username    string
	DisplayName string
}
