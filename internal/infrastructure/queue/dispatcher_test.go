package queue

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/classifieds/ads-api/internal/core/domain"
)

type recordingService struct {
	mu     sync.Mutex
	events []domain.AuditEvent
	block  chan struct{}
	err    error
}

func (s *recordingService) Process(_ context.Context, ev domain.AuditEvent) error {
	if s.block != nil {
		<-s.block
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, ev)
	return s.err
}

func (s *recordingService) snapshot() []domain.AuditEvent {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]domain.AuditEvent(nil), s.events...)
}

func TestDispatcher_PreservesPerEntityOrder(t *testing.T) {
	svc := &recordingService{}
	d := NewDispatcher(4, svc, zerolog.Nop())
	d.Start(context.Background())

	actions := []domain.AuditAction{domain.AuditCreated, domain.AuditUpdated, domain.AuditUpdated, domain.AuditDeleted}
	for _, a := range actions {
		d.Enqueue(domain.AuditEvent{Entity: domain.EntityAdvertisement, EntityID: 9, Action: a})
		d.Enqueue(domain.AuditEvent{Entity: domain.EntityUser, EntityID: 1, Action: a})
	}
	d.Stop()

	var got []domain.AuditAction
	for _, ev := range svc.snapshot() {
		if ev.Entity == domain.EntityAdvertisement {
			got = append(got, ev.Action)
		}
	}
	if len(got) != len(actions) {
		t.Fatalf("expected %d events, got %d", len(actions), len(got))
	}
	for i := range actions {
		if got[i] != actions[i] {
			t.Fatalf("order mismatch at %d: want %s, got %s", i, actions[i], got[i])
		}
	}
	if n := len(svc.snapshot()); n != 2*len(actions) {
		t.Errorf("expected %d processed events, got %d", 2*len(actions), n)
	}
}

func TestDispatcher_EnqueueDoesNotBlockWhenFull(t *testing.T) {
	svc := &recordingService{block: make(chan struct{})}
	d := newDispatcher(1, 1, svc, zerolog.Nop())
	d.Start(context.Background())

	done := make(chan struct{})
	go func() {
		for i := 0; i < 10; i++ {
			d.Enqueue(domain.AuditEvent{Entity: domain.EntityUser, EntityID: int64(i), Action: domain.AuditCreated})
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Enqueue blocked on a full queue")
	}

	close(svc.block)
	d.Stop()

	if n := len(svc.snapshot()); n == 0 || n >= 10 {
		t.Errorf("expected some events to be dropped, processed %d", n)
	}
}

func TestDispatcher_EnqueueAfterStopIsDropped(t *testing.T) {
	svc := &recordingService{}
	d := NewDispatcher(2, svc, zerolog.Nop())
	d.Start(context.Background())
	d.Stop()
	d.Stop()

	d.Enqueue(domain.AuditEvent{Entity: domain.EntityToken, EntityID: 1, Action: domain.AuditLogin})
	if n := len(svc.snapshot()); n != 0 {
		t.Errorf("expected nothing processed after Stop, got %d", n)
	}
}

func TestDispatcher_ProcessingErrorDoesNotStopWorker(t *testing.T) {
	svc := &recordingService{err: errors.New("mongo down")}
	d := NewDispatcher(1, svc, zerolog.Nop())
	d.Start(context.Background())

	d.Enqueue(domain.AuditEvent{Entity: domain.EntityUser, EntityID: 1, Action: domain.AuditCreated})
	d.Enqueue(domain.AuditEvent{Entity: domain.EntityUser, EntityID: 2, Action: domain.AuditCreated})
	d.Stop()

	if n := len(svc.snapshot()); n != 2 {
		t.Errorf("expected both events to be attempted, got %d", n)
	}
}

func TestDispatcher_ShardIndexStable(t *testing.T) {
	d := NewDispatcher(8, &recordingService{}, zerolog.Nop())
	key := domain.AuditEvent{Entity: domain.EntityAdvertisement, EntityID: 77}.Key()

	first := d.shardIndex(key)
	for i := 0; i < 5; i++ {
		if got := d.shardIndex(key); got != first {
			t.Fatalf("shard index changed: %d != %d", got, first)
		}
	}
	if first < 0 || first >= 8 {
		t.Fatalf("shard index out of range: %d", first)
	}
}
