package ports

import (
	"context"

	"github.com/classifieds/ads-api/internal/core/domain"
)

// AdvertisementRepository defines persistence operations for advertisements.
type AdvertisementRepository interface {
	// Create inserts the advertisement and fills in ID and CreatedAt.
	Create(ctx context.Context, ad *domain.Advertisement) error
	FindByID(ctx context.Context, id int64) (*domain.Advertisement, error)
	// List returns the advertisements matching filter, ordered by id.
	// An empty filter returns every row.
	List(ctx context.Context, filter domain.AdvertisementFilter) ([]*domain.Advertisement, error)
	Update(ctx context.Context, ad *domain.Advertisement) error
	Delete(ctx context.Context, id int64) error
}
