package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/classifieds/ads-api/internal/core/domain"
	"github.com/classifieds/ads-api/internal/core/ports"
)

const defaultTokenTTL = 48 * time.Hour

// AuthService resolves bearer tokens and makes ownership decisions.
type AuthService struct {
	tokens ports.TokenRepository
	cache  ports.TokenCache
	audit  ports.AuditSink
	ttl    time.Duration
	log    zerolog.Logger

	now      func() time.Time
	newValue func() uuid.UUID
}

// NewAuthService builds the gate. cache and audit may be nil.
func NewAuthService(tokens ports.TokenRepository, cache ports.TokenCache, audit ports.AuditSink, tokenTTL time.Duration, log zerolog.Logger) *AuthService {
	if tokenTTL <= 0 {
		tokenTTL = defaultTokenTTL
	}
	if cache == nil {
		cache = noCache{}
	}
	if audit == nil {
		audit = discardAudit{}
	}
	return &AuthService{
		tokens:   tokens,
		cache:    cache,
		audit:    audit,
		ttl:      tokenTTL,
		log:      log,
		now:      time.Now,
		newValue: uuid.New,
	}
}

// TTL is the lifetime of an issued token.
func (s *AuthService) TTL() time.Duration {
	return s.ttl
}

// Resolve looks the token up in the cache, then in storage. The token must
// have been issued no earlier than now-TTL; use does not extend its life.
func (s *AuthService) Resolve(ctx context.Context, value uuid.UUID) (*domain.Principal, error) {
	now := s.now()

	p, err := s.cache.Get(ctx, value)
	if err != nil {
		s.log.Warn().Err(err).Msg("token cache lookup failed, falling back to storage")
		p = nil
	}
	cached := p != nil

	if !cached {
		p, err = s.tokens.FindPrincipal(ctx, value)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return nil, domain.ErrInvalidToken
			}
			return nil, fmt.Errorf("resolve token: %w", err)
		}
	}

	if !p.Fresh(now, s.ttl) {
		return nil, domain.ErrTokenExpired
	}

	if !cached {
		if err := s.cache.Put(ctx, p, p.ExpiresAt(s.ttl).Sub(now)); err != nil {
			s.log.Warn().Err(err).Int64("user_id", p.UserID).Msg("failed to cache token")
		}
	}
	return p, nil
}

// Authorize permits owners and admins.
func (s *AuthService) Authorize(p *domain.Principal, ownerID *int64) error {
	if p == nil {
		return domain.ErrMissingToken
	}
	if p.IsAdmin() {
		return nil
	}
	if ownerID != nil && *ownerID == p.UserID {
		return nil
	}
	return domain.ErrForbidden
}

// Issue persists a new random token for userID. A value collision surfaces as
// domain.ErrConflict and is not retried.
func (s *AuthService) Issue(ctx context.Context, userID int64) (*domain.Token, error) {
	token := &domain.Token{
		Value:  s.newValue(),
		UserID: userID,
	}
	if err := s.tokens.Create(ctx, token); err != nil {
		return nil, fmt.Errorf("issue token: %w", err)
	}

	s.audit.Enqueue(domain.AuditEvent{
		Entity:     domain.EntityToken,
		EntityID:   token.ID,
		Action:     domain.AuditLogin,
		ActorID:    userID,
		OccurredAt: s.now().UTC(),
	})
	return token, nil
}

// Revoke deletes the presenting token. Revoking a token that is already gone
// succeeds.
func (s *AuthService) Revoke(ctx context.Context, p *domain.Principal) error {
	if p == nil {
		return domain.ErrMissingToken
	}
	if err := s.tokens.Delete(ctx, p.TokenID); err != nil && !errors.Is(err, domain.ErrNotFound) {
		return fmt.Errorf("revoke token: %w", err)
	}
	if err := s.cache.Evict(ctx, p.Token); err != nil {
		s.log.Warn().Err(err).Int64("user_id", p.UserID).Msg("failed to evict revoked token")
	}

	s.audit.Enqueue(domain.AuditEvent{
		Entity:     domain.EntityToken,
		EntityID:   p.TokenID,
		Action:     domain.AuditLogout,
		ActorID:    p.UserID,
		OccurredAt: s.now().UTC(),
	})
	return nil
}

// ForgetUser evicts every cached token of userID. Storage rows are removed by
// the users foreign key cascade.
func (s *AuthService) ForgetUser(ctx context.Context, userID int64) error {
	if err := s.cache.EvictUser(ctx, userID); err != nil {
		return fmt.Errorf("forget user tokens: %w", err)
	}
	return nil
}

type noCache struct{}

func (noCache) Get(context.Context, uuid.UUID) (*domain.Principal, error)   { return nil, nil }
func (noCache) Put(context.Context, *domain.Principal, time.Duration) error { return nil }
func (noCache) Evict(context.Context, uuid.UUID) error                      { return nil }
func (noCache) EvictUser(context.Context, int64) error                      { return nil }

type discardAudit struct{}

func (discardAudit) Enqueue(domain.AuditEvent) {}
