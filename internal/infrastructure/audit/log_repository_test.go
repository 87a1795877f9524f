package audit

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/classifieds/ads-api/internal/core/domain"
)

func TestLogRepository_InsertEvent(t *testing.T) {
	var buf bytes.Buffer
	repo := NewLogRepository(zerolog.New(&buf))

	err := repo.InsertEvent(context.Background(), &domain.AuditEvent{
		Entity:     domain.EntityAdvertisement,
		EntityID:   12,
		Action:     domain.AuditDeleted,
		ActorID:    4,
		OccurredAt: time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC),
	})
	if err != nil {
		t.Fatalf("InsertEvent: %v", err)
	}

	var line map[string]any
	if err := json.Unmarshal(buf.Bytes(), &line); err != nil {
		t.Fatalf("log line is not JSON: %v (%s)", err, buf.String())
	}
	if line["component"] != "audit" || line["entity"] != "advertisement" || line["action"] != "deleted" {
		t.Errorf("unexpected log line %v", line)
	}
	if line["entity_id"] != float64(12) || line["actor_id"] != float64(4) {
		t.Errorf("unexpected ids in %v", line)
	}
}
