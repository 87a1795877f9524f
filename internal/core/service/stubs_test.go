package service

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/classifieds/ads-api/internal/core/domain"
)

// ---------------------------------------------------------------------------
// In-memory stub repositories
// ---------------------------------------------------------------------------

var discardLogger = zerolog.Nop()

type stubAdRepo struct {
	ads       map[int64]*domain.Advertisement
	nextID    int64
	lastQuery domain.AdvertisementFilter
	createErr error
	deleted   []int64
}

func newStubAdRepo() *stubAdRepo {
	return &stubAdRepo{ads: make(map[int64]*domain.Advertisement)}
}

func (r *stubAdRepo) seed(ad domain.Advertisement) *domain.Advertisement {
	r.nextID++
	ad.ID = r.nextID
	if ad.CreatedAt.IsZero() {
		ad.CreatedAt = time.Now().UTC()
	}
	r.ads[ad.ID] = &ad
	return &ad
}

func (r *stubAdRepo) Create(_ context.Context, ad *domain.Advertisement) error {
	if r.createErr != nil {
		return r.createErr
	}
	stored := r.seed(*ad)
	ad.ID = stored.ID
	ad.CreatedAt = stored.CreatedAt
	return nil
}

func (r *stubAdRepo) FindByID(_ context.Context, id int64) (*domain.Advertisement, error) {
	ad, ok := r.ads[id]
	if !ok {
		return nil, domain.ErrAdvertisementNotFound
	}
	clone := *ad
	return &clone, nil
}

// List mirrors the ILIKE/equality filters of the SQL repository.
func (r *stubAdRepo) List(_ context.Context, f domain.AdvertisementFilter) ([]*domain.Advertisement, error) {
	r.lastQuery = f
	contains := func(field, sub string) bool {
		return sub == "" || strings.Contains(strings.ToLower(field), strings.ToLower(sub))
	}

	var out []*domain.Advertisement
	for _, ad := range r.ads {
		if !contains(ad.Title, f.Title) || !contains(ad.Description, f.Description) || !contains(ad.Author, f.Author) {
			continue
		}
		if f.Price != nil && ad.Price != *f.Price {
			continue
		}
		clone := *ad
		out = append(out, &clone)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *stubAdRepo) Update(_ context.Context, ad *domain.Advertisement) error {
	if _, ok := r.ads[ad.ID]; !ok {
		return domain.ErrAdvertisementNotFound
	}
	clone := *ad
	r.ads[ad.ID] = &clone
	return nil
}

func (r *stubAdRepo) Delete(_ context.Context, id int64) error {
	if _, ok := r.ads[id]; !ok {
		return domain.ErrAdvertisementNotFound
	}
	delete(r.ads, id)
	r.deleted = append(r.deleted, id)
	return nil
}

type stubUserRepo struct {
	users  map[int64]*domain.User
	nextID int64
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: make(map[int64]*domain.User)}
}

func (r *stubUserRepo) nameTaken(name string, except int64) bool {
	for _, u := range r.users {
		if u.Name == name && u.ID != except {
			return true
		}
	}
	return false
}

func (r *stubUserRepo) Create(_ context.Context, user *domain.User) error {
	if r.nameTaken(user.Name, 0) {
		return domain.ErrConflict
	}
	r.nextID++
	user.ID = r.nextID
	user.CreatedAt = time.Now().UTC()
	clone := *user
	r.users[user.ID] = &clone
	return nil
}

func (r *stubUserRepo) FindByID(_ context.Context, id int64) (*domain.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	clone := *u
	return &clone, nil
}

func (r *stubUserRepo) FindByName(_ context.Context, name string) (*domain.User, error) {
	for _, u := range r.users {
		if u.Name == name {
			clone := *u
			return &clone, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) List(_ context.Context) ([]*domain.User, error) {
	out := make([]*domain.User, 0, len(r.users))
	for _, u := range r.users {
		clone := *u
		out = append(out, &clone)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *stubUserRepo) Update(_ context.Context, user *domain.User) error {
	if _, ok := r.users[user.ID]; !ok {
		return domain.ErrUserNotFound
	}
	if r.nameTaken(user.Name, user.ID) {
		return domain.ErrConflict
	}
	clone := *user
	r.users[user.ID] = &clone
	return nil
}

func (r *stubUserRepo) Delete(_ context.Context, id int64) error {
	if _, ok := r.users[id]; !ok {
		return domain.ErrUserNotFound
	}
	delete(r.users, id)
	return nil
}

// stubTokenRepo enforces uniqueness of token values like the tokens table does.
type stubTokenRepo struct {
	users      *stubUserRepo
	tokens     map[uuid.UUID]*domain.Token
	nextID     int64
	issuedAt   time.Time // if set, used as CreatedAt for new tokens
	findCalls  int
	deletedIDs []int64
}

func newStubTokenRepo(users *stubUserRepo) *stubTokenRepo {
	return &stubTokenRepo{users: users, tokens: make(map[uuid.UUID]*domain.Token)}
}

func (r *stubTokenRepo) Create(_ context.Context, t *domain.Token) error {
	if _, exists := r.tokens[t.Value]; exists {
		return domain.ErrConflict
	}
	r.nextID++
	t.ID = r.nextID
	t.CreatedAt = r.issuedAt
	if t.CreatedAt.IsZero() {
		t.CreatedAt = time.Now().UTC()
	}
	clone := *t
	r.tokens[t.Value] = &clone
	return nil
}

func (r *stubTokenRepo) FindPrincipal(ctx context.Context, value uuid.UUID) (*domain.Principal, error) {
	r.findCalls++
	t, ok := r.tokens[value]
	if !ok {
		return nil, domain.ErrNotFound
	}
	u, err := r.users.FindByID(ctx, t.UserID)
	if err != nil {
		return nil, domain.ErrNotFound
	}
	return &domain.Principal{
		TokenID:  t.ID,
		Token:    t.Value,
		IssuedAt: t.CreatedAt,
		UserID:   u.ID,
		Name:     u.Name,
		Role:     u.Role,
	}, nil
}

func (r *stubTokenRepo) Delete(_ context.Context, id int64) error {
	for v, t := range r.tokens {
		if t.ID == id {
			delete(r.tokens, v)
			r.deletedIDs = append(r.deletedIDs, id)
			return nil
		}
	}
	return domain.ErrNotFound
}

type stubCache struct {
	entries     map[uuid.UUID]domain.Principal
	ttls        map[uuid.UUID]time.Duration
	getErr      error
	evicted     []uuid.UUID
	evictedUser []int64
}

func newStubCache() *stubCache {
	return &stubCache{
		entries: make(map[uuid.UUID]domain.Principal),
		ttls:    make(map[uuid.UUID]time.Duration),
	}
}

func (c *stubCache) Get(_ context.Context, value uuid.UUID) (*domain.Principal, error) {
	if c.getErr != nil {
		return nil, c.getErr
	}
	p, ok := c.entries[value]
	if !ok {
		return nil, nil
	}
	return &p, nil
}

func (c *stubCache) Put(_ context.Context, p *domain.Principal, ttl time.Duration) error {
	c.entries[p.Token] = *p
	c.ttls[p.Token] = ttl
	return nil
}

func (c *stubCache) Evict(_ context.Context, value uuid.UUID) error {
	delete(c.entries, value)
	c.evicted = append(c.evicted, value)
	return nil
}

func (c *stubCache) EvictUser(_ context.Context, userID int64) error {
	for v, p := range c.entries {
		if p.UserID == userID {
			delete(c.entries, v)
		}
	}
	c.evictedUser = append(c.evictedUser, userID)
	return nil
}

type recordingAudit struct {
	mu     sync.Mutex
	events []domain.AuditEvent
}

func (a *recordingAudit) Enqueue(ev domain.AuditEvent) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.events = append(a.events, ev)
}

func (a *recordingAudit) actions() []domain.AuditAction {
	a.mu.Lock()
	defer a.mu.Unlock()
	out := make([]domain.AuditAction, len(a.events))
	for i, ev := range a.events {
		out[i] = ev.Action
	}
	return out
}

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

func principal(userID int64, role domain.Role) *domain.Principal {
	return &domain.Principal{
		TokenID:  userID * 100,
		Token:    uuid.New(),
		IssuedAt: time.Now().UTC(),
		UserID:   userID,
		Name:     "user",
		Role:     role,
	}
}

func ptr[T any](v T) *T {
	return &v
}
