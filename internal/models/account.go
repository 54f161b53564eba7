package models

import "time"

// Roles assigned to accounts.
const (
	RoleLearner = "learner"
	RoleAdmin   = "admin"
)

// Account is an authenticated identity. The engine reads id, name, role and
// the two timestamps; credentials are only touched by the auth service.
type Account struct {
	UserID       int64     `json:"user_id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Role         string    `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
	LastLogin    time.Time `json:"last_login,omitzero"`
}

// Principal is the authenticated caller attached to every request.
type Principal struct {
	UserID int64
	Role   string
}

// IsAdmin reports whether the principal carries the admin role.
func (p Principal) IsAdmin() bool {
	return p.Role == RoleAdmin
}

// Session is a bearer token issued at login.
type Session struct {
	Token     string
	UserID    int64
	Role      string
	CreatedAt time.Time
	ExpiresAt time.Time
}
