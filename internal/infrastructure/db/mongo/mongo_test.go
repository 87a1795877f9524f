package mongo

import (
	"context"
	"os"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson"

	"github.com/classifieds/ads-api/internal/core/domain"
)

func TestConnect_RequiresDatabase(t *testing.T) {
	if _, err := Connect(context.Background(), Config{URI: "mongodb://localhost:27017"}); err == nil {
		t.Fatal("expected error for missing database name")
	}
}

// testStore connects to TEST_MONGO_URI and skips when it is unset or down.
func testStore(t *testing.T) *Store {
	t.Helper()
	uri := os.Getenv("TEST_MONGO_URI")
	if uri == "" {
		t.Skip("TEST_MONGO_URI not set")
	}
	store, err := Connect(context.Background(), Config{URI: uri, Database: "ads_api_test", Timeout: 3 * time.Second})
	if err != nil {
		t.Skipf("mongo unreachable: %v", err)
	}
	t.Cleanup(func() {
		ctx := context.Background()
		_ = store.Database().Drop(ctx)
		_ = store.Close(ctx)
	})
	return store
}

func TestAuditRepository_Integration(t *testing.T) {
	store := testStore(t)
	ctx := context.Background()

	if err := store.Ping(ctx); err != nil {
		t.Fatalf("Ping: %v", err)
	}

	repo := NewAuditRepository(store.Database())
	if err := repo.EnsureIndexes(ctx); err != nil {
		t.Fatalf("EnsureIndexes: %v", err)
	}

	occurred := time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)
	event := &domain.AuditEvent{
		Entity:     domain.EntityAdvertisement,
		EntityID:   12,
		Action:     domain.AuditUpdated,
		ActorID:    3,
		OccurredAt: occurred,
	}
	if err := repo.InsertEvent(ctx, event); err != nil {
		t.Fatalf("InsertEvent: %v", err)
	}

	var doc bson.M
	err := repo.col.FindOne(ctx, bson.M{"entity": "advertisement", "entity_id": int64(12)}).Decode(&doc)
	if err != nil {
		t.Fatalf("FindOne: %v", err)
	}
	if doc["action"] != "updated" || doc["actor_id"] != int64(3) {
		t.Errorf("unexpected document: %v", doc)
	}
}
