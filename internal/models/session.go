// Package models defines the domain types exchanged with the registry backend.
package models

// RoleAdmin marks accounts allowed to manage items and browse all claims.
const RoleAdmin = "admin"

// Session is the identity record kept for a logged-in user. It is what
// gets serialized into the client-local store and restored on startup.
type Session struct {
	Email  string `json:"email"`
	Name   string `json:"name"`
	Number string `json:"number"`
	Role   string `json:"role"`
}

// IsAdmin reports whether the session belongs to an admin account.
func (s *Session) IsAdmin() bool {
	return s != nil && s.Role == RoleAdmin
}

// User is the full account record as stored by the backend.
// Password travels in the envelope because the backend owns credential
// checks; the client never persists it.
type User struct {
	Email    string `json:"email"`
	Name     string `json:"name"`
	Number   string `json:"number"`
	Password string `json:"password,omitempty"`
	Role     string `json:"role,omitempty"`
}

// Session projects the account into the identity kept client-side.
func (u *User) Session() *Session {
	return &Session{Email: u.Email, Name: u.Name, Number: u.Number, Role: u.Role}
}
