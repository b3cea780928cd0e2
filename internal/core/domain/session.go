package domain

// Status is the lifecycle state of the client session.
type Status string

const (
	StatusInitializing  Status = "initializing"
	StatusAuthenticated Status = "authenticated"
	StatusAnonymous     Status = "anonymous"
)

// Session is a point-in-time copy of the session state.
//
// Token and User are both set if and only if Status is StatusAuthenticated.
// Cached holds the persisted profile copy while the startup check is still
// running and is nil in every other state.
type Session struct {
	Status Status   `json:"status"`
	Token  string   `json:"-"`
	User   *Profile `json:"user,omitempty"`
	Cached *Profile `json:"cached_user,omitempty"`
}

// Authenticated reports whether the snapshot represents a signed-in user.
func (s Session) Authenticated() bool {
	return s.Status == StatusAuthenticated && s.Token != "" && s.User != nil
}

// HasRole reports whether the signed-in user holds role.
func (s Session) HasRole(role string) bool {
	return s.Authenticated() && role != "" && s.User.Role == role
}

// StoredSession is what persisted storage holds between process runs.
type StoredSession struct {
	Token string   `json:"authToken,omitempty"`
	User  *Profile `json:"user,omitempty"`
}
