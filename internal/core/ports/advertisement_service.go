package ports

import (
	"context"
	"time"

	"github.com/classifieds/ads-api/internal/core/domain"
)

// CreateAdvertisementInput carries the fields of a new advertisement.
type CreateAdvertisementInput struct {
	Title       string
	Description string
	Price       int64
	Author      string
}

// AdvertisementView is the public representation of an advertisement.
type AdvertisementView struct {
	ID          int64
	Title       string
	Description string
	Price       int64
	Author      string
	CreatedAt   time.Time
}

// AdvertisementService defines use-case operations for advertisements.
type AdvertisementService interface {
	List(ctx context.Context) ([]AdvertisementView, error)
	Search(ctx context.Context, filter domain.AdvertisementFilter) ([]AdvertisementView, error)
	Get(ctx context.Context, id int64) (*AdvertisementView, error)
	Create(ctx context.Context, input CreateAdvertisementInput, p *domain.Principal) (int64, error)
	Update(ctx context.Context, id int64, patch domain.AdvertisementPatch, p *domain.Principal) (int64, error)
	Delete(ctx context.Context, id int64, p *domain.Principal) error
}
