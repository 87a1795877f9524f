package audit

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/classifieds/ads-api/internal/core/domain"
	"github.com/classifieds/ads-api/internal/core/ports"
)

// LogRepository writes audit events to the structured log. It stands in for
// the MongoDB store when no MONGO_URI is configured.
type LogRepository struct {
	log zerolog.Logger
}

func NewLogRepository(log zerolog.Logger) ports.AuditRepository {
	return &LogRepository{log: log.With().Str("component", "audit").Logger()}
}

func (r *LogRepository) InsertEvent(_ context.Context, event *domain.AuditEvent) error {
	r.log.Info().
		Str("entity", event.Entity).
		Int64("entity_id", event.EntityID).
		Str("action", string(event.Action)).
		Int64("actor_id", event.ActorID).
		Time("occurred_at", event.OccurredAt).
		Msg("audit")
	return nil
}
