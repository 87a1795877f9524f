package domain

import (
	"errors"
	"fmt"
)

// Error classes. Every error returned by the core wraps exactly one of them so
// the transport layer can map it to a status code with errors.Is.
var (
	ErrNotFound     = errors.New("record not found")
	ErrConflict     = errors.New("record already exists")
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("access forbidden")
)

var (
	ErrAdvertisementNotFound = fmt.Errorf("advertisement not found: %w", ErrNotFound)
	ErrUserNotFound          = fmt.Errorf("user not found: %w", ErrNotFound)

	ErrUserNotRegistered = fmt.Errorf("user not found: %w", ErrUnauthorized)
	ErrInvalidPassword   = fmt.Errorf("invalid password: %w", ErrUnauthorized)
	ErrMissingToken      = fmt.Errorf("missing token: %w", ErrUnauthorized)
	ErrInvalidToken      = fmt.Errorf("invalid token: %w", ErrUnauthorized)
	ErrTokenExpired      = fmt.Errorf("token expired: %w", ErrUnauthorized)

	ErrUserExists = fmt.Errorf("user already exists: %w", ErrConflict)

	ErrInvalidCredentials = errors.New("name and password are required")
)
