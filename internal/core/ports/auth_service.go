package ports

import (
	"context"

	"github.com/google/uuid"

	"github.com/classifieds/ads-api/internal/core/domain"
)

// AuthService is the token gate in front of every protected operation.
type AuthService interface {
	// Resolve maps a presented token value to its principal. Unknown or
	// expired tokens fail with domain.ErrUnauthorized.
	Resolve(ctx context.Context, value uuid.UUID) (*domain.Principal, error)
	// Authorize permits the principal to act on an entity owned by ownerID.
	// A nil ownerID means the entity has no owner.
	Authorize(p *domain.Principal, ownerID *int64) error
	// Issue creates a new token for userID.
	Issue(ctx context.Context, userID int64) (*domain.Token, error)
	// Revoke invalidates the principal's token.
	Revoke(ctx context.Context, p *domain.Principal) error
	// ForgetUser drops cached state for every token of userID.
	ForgetUser(ctx context.Context, userID int64) error
}
