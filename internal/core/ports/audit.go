package ports

import (
	"context"

	"github.com/classifieds/ads-api/internal/core/domain"
)

// AuditRepository stores audit events.
type AuditRepository interface {
	InsertEvent(ctx context.Context, event *domain.AuditEvent) error
}

// AuditService processes a single audit event.
type AuditService interface {
	Process(ctx context.Context, event domain.AuditEvent) error
}

// AuditSink accepts audit events for asynchronous processing. Enqueue must not
// block the caller.
type AuditSink interface {
	Enqueue(event domain.AuditEvent)
}
