// Package models holds the wire-level data types shared by the API client,
// the session manager and the console screens.
package models

import (
	"github.com/google/uuid"
)

// Role is the server-side authorization role of a user account.
type Role string

const (
	RoleUser  Role = "USER"
	RoleAdmin Role = "ADMIN"
)

// Valid reports whether r is one of the roles the server accepts.
func (r Role) Valid() bool {
	return r == RoleUser || r == RoleAdmin
}

// User is the account record owned by the remote service. The console holds
// a cached, possibly-stale copy in memory only.
type User struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Role      Role      `json:"role"`
	Enabled   bool      `json:"enabled"`
	CreatedAt Time      `json:"createdAt"`
}

// IsAdmin reports whether the cached record carries the admin role. This is
// a UX hint only; every privileged action is re-validated server-side.
func (u *User) IsAdmin() bool {
	return u != nil && u.Role == RoleAdmin
}
