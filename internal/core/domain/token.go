package domain

import (
	"time"

	"github.com/google/uuid"
)

// Token is an opaque bearer credential issued at login.
type Token struct {
	ID        int64     `db:"id"`
	Value     uuid.UUID `db:"token"`
	UserID    int64     `db:"user_id"`
	CreatedAt time.Time `db:"created_at"`
}

// Principal is a resolved token joined with its owning user. It is what the
// auth gate hands to the services for authorization decisions.
type Principal struct {
	TokenID  int64     `json:"token_id" db:"token_id"`
	Token    uuid.UUID `json:"token" db:"token"`
	IssuedAt time.Time `json:"issued_at" db:"issued_at"`
	UserID   int64     `json:"user_id" db:"user_id"`
	Name     string    `json:"name" db:"name"`
	Role     Role      `json:"role" db:"role"`
}

// ExpiresAt is the instant after which the token no longer resolves.
func (p Principal) ExpiresAt(ttl time.Duration) time.Time {
	return p.IssuedAt.Add(ttl)
}

// Fresh reports whether the token was issued within ttl of now.
func (p Principal) Fresh(now time.Time, ttl time.Duration) bool {
	return !p.IssuedAt.Before(now.Add(-ttl))
}

// IsAdmin reports whether the principal carries the admin role.
func (p Principal) IsAdmin() bool {
	return p.Role == RoleAdmin
}
