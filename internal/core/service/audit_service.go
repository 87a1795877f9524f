package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/classifieds/ads-api/internal/core/domain"
	"github.com/classifieds/ads-api/internal/core/ports"
)

type auditService struct {
	repo ports.AuditRepository
	log  zerolog.Logger
}

// NewAuditService returns an AuditService that persists every event it is given.
func NewAuditService(repo ports.AuditRepository, log zerolog.Logger) ports.AuditService {
	return &auditService{repo: repo, log: log}
}

// Process stamps and persists a single audit event.
func (s *auditService) Process(ctx context.Context, ev domain.AuditEvent) error {
	if ev.Entity == "" || ev.Action == "" {
		return fmt.Errorf("process audit event: incomplete event %q", ev.Key())
	}
	if ev.OccurredAt.IsZero() {
		ev.OccurredAt = time.Now().UTC()
	}

	if err := s.repo.InsertEvent(ctx, &ev); err != nil {
		return fmt.Errorf("process audit event: %w", err)
	}

	s.log.Debug().
		Str("entity", ev.Entity).
		Int64("entity_id", ev.EntityID).
		Str("action", string(ev.Action)).
		Int64("actor_id", ev.ActorID).
		Msg("audit event stored")
	return nil
}
