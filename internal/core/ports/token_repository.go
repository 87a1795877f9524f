package ports

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/classifieds/ads-api/internal/core/domain"
)

// TokenRepository persists issued tokens.
type TokenRepository interface {
	// Create inserts the token and fills in ID and CreatedAt. A duplicate
	// value fails with domain.ErrConflict.
	Create(ctx context.Context, token *domain.Token) error
	// FindPrincipal returns the token joined with its owning user, regardless
	// of age. Freshness is the caller's decision.
	FindPrincipal(ctx context.Context, value uuid.UUID) (*domain.Principal, error)
	Delete(ctx context.Context, id int64) error
}

// TokenCache is a read-through cache for resolved principals. A miss is
// reported as (nil, nil).
type TokenCache interface {
	Get(ctx context.Context, value uuid.UUID) (*domain.Principal, error)
	// Put stores p until ttl elapses.
	Put(ctx context.Context, p *domain.Principal, ttl time.Duration) error
	Evict(ctx context.Context, value uuid.UUID) error
	// EvictUser drops every cached token owned by userID.
	EvictUser(ctx context.Context, userID int64) error
}
