package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/classifieds/ads-api/internal/core/domain"
	"github.com/classifieds/ads-api/internal/core/ports"
)

type AdvertisementService struct {
	repo   ports.AdvertisementRepository
	auth   ports.AuthService
	audit  ports.AuditSink
	logger zerolog.Logger
}

func NewAdvertisementService(repo ports.AdvertisementRepository, auth ports.AuthService, audit ports.AuditSink, logger zerolog.Logger) *AdvertisementService {
	if audit == nil {
		audit = discardAudit{}
	}
	return &AdvertisementService{repo: repo, auth: auth, audit: audit, logger: logger}
}

// List returns every advertisement.
func (s *AdvertisementService) List(ctx context.Context) ([]ports.AdvertisementView, error) {
	return s.Search(ctx, domain.AdvertisementFilter{})
}

// Search returns the advertisements matching every set criterion of filter.
func (s *AdvertisementService) Search(ctx context.Context, filter domain.AdvertisementFilter) ([]ports.AdvertisementView, error) {
	ads, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list advertisements: %w", err)
	}

	views := make([]ports.AdvertisementView, len(ads))
	for i, ad := range ads {
		views[i] = toAdvertisementView(ad)
	}
	return views, nil
}

func (s *AdvertisementService) Get(ctx context.Context, id int64) (*ports.AdvertisementView, error) {
	ad, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	view := toAdvertisementView(ad)
	return &view, nil
}

// Create stores a new advertisement owned by the principal.
func (s *AdvertisementService) Create(ctx context.Context, input ports.CreateAdvertisementInput, p *domain.Principal) (int64, error) {
	if p == nil {
		return 0, domain.ErrMissingToken
	}

	ownerID := p.UserID
	ad := &domain.Advertisement{
		Title:       input.Title,
		Description: input.Description,
		Price:       input.Price,
		Author:      input.Author,
		UserID:      &ownerID,
	}
	if err := s.repo.Create(ctx, ad); err != nil {
		s.logger.Error().Err(err).Int64("user_id", p.UserID).Msg("failed to create advertisement")
		return 0, err
	}

	s.logger.Info().Int64("advertisement_id", ad.ID).Int64("user_id", p.UserID).Msg("advertisement created")
	s.record(ad.ID, domain.AuditCreated, p)
	return ad.ID, nil
}

// Update applies the set fields of patch. The advertisement must exist before
// ownership is checked, so a missing id is reported as not found to everyone.
func (s *AdvertisementService) Update(ctx context.Context, id int64, patch domain.AdvertisementPatch, p *domain.Principal) (int64, error) {
	ad, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return 0, err
	}
	if err := s.auth.Authorize(p, ad.UserID); err != nil {
		return 0, err
	}

	patch.Apply(ad)
	if err := s.repo.Update(ctx, ad); err != nil {
		return 0, err
	}

	s.logger.Info().Int64("advertisement_id", ad.ID).Int64("user_id", p.UserID).Msg("advertisement updated")
	s.record(ad.ID, domain.AuditUpdated, p)
	return ad.ID, nil
}

func (s *AdvertisementService) Delete(ctx context.Context, id int64, p *domain.Principal) error {
	ad, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.auth.Authorize(p, ad.UserID); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, ad.ID); err != nil {
		return err
	}

	s.logger.Info().Int64("advertisement_id", ad.ID).Int64("user_id", p.UserID).Msg("advertisement deleted")
	s.record(ad.ID, domain.AuditDeleted, p)
	return nil
}

func (s *AdvertisementService) record(id int64, action domain.AuditAction, p *domain.Principal) {
	s.audit.Enqueue(domain.AuditEvent{
		Entity:     domain.EntityAdvertisement,
		EntityID:   id,
		Action:     action,
		ActorID:    p.UserID,
		OccurredAt: time.Now().UTC(),
	})
}

func toAdvertisementView(ad *domain.Advertisement) ports.AdvertisementView {
	return ports.AdvertisementView{
		ID:          ad.ID,
		Title:       ad.Title,
		Description: ad.Description,
		Price:       ad.Price,
		Author:      ad.Author,
		CreatedAt:   ad.CreatedAt,
	}
}
