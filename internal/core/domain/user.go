package domain

import "time"

// Role is the authorization level of a user.
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// Valid reports whether r is one of the enumerated roles.
func (r Role) Valid() bool {
	return r == RoleUser || r == RoleAdmin
}

// User models an account that can log in and own advertisements.
type User struct {
	ID           int64     `json:"id" db:"id"`
	Name         string    `json:"name" db:"name"`
	PasswordHash string    `json:"-" db:"password_hash"`
	Role         Role      `json:"role" db:"role"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
}

// UserPatch carries a partial user update. Nil fields are left untouched.
// Password is plaintext; the service hashes it before Apply is called.
type UserPatch struct {
	Name     *string
	Password *string
}

// Empty reports whether the patch sets no field at all.
func (p UserPatch) Empty() bool {
	return p.Name == nil && p.Password == nil
}

// Apply merges the set fields into u. passwordHash replaces the stored hash
// only when the patch carries a password.
func (p UserPatch) Apply(u *User, passwordHash string) {
	if p.Name != nil {
		u.Name = *p.Name
	}
	if p.Password != nil {
		u.PasswordHash = passwordHash
	}
}
