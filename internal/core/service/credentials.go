package service

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// Credentials hashes and verifies passwords with bcrypt. The salt and cost are
// embedded in the hash, so hashes of the same password differ across calls
// and must never be compared directly.
type Credentials struct {
	cost int
}

// NewCredentials returns a Credentials using cost, or bcrypt.DefaultCost when
// cost is outside bcrypt's accepted range.
func NewCredentials(cost int) *Credentials {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &Credentials{cost: cost}
}

func (c *Credentials) Hash(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), c.cost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}

// Verify reports whether password matches hash. A malformed hash is a mismatch.
func (c *Credentials) Verify(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
