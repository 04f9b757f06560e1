package models

// Principal is the authenticated identity bound to a request. It carries the
// session capability of a user without exposing the persisted User entity (no
// credential or token state leaves the services layer).
type Principal struct {
	UserID  uint   `json:"user_id"`
	Email   string `json:"email"`
	IsAdmin bool   `json:"is_admin"`
}
