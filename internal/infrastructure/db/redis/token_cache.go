package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/classifieds/ads-api/internal/api/metrics"
	"github.com/classifieds/ads-api/internal/core/domain"
	"github.com/classifieds/ads-api/internal/core/ports"
)

// TokenCache keeps resolved principals in Redis so authenticated requests skip
// the token+user join.
// Key format: token:<uuid> holds the JSON principal, user_tokens:<user_id> is
// the set of that user's cached token keys.
//
// The user index must outlive every token key it lists, otherwise EvictUser
// misses them. Its TTL is therefore reset to indexTTL, the token lifetime, on
// every Put; no cached entry is given a longer ttl than that.
type TokenCache struct {
	client   *redis.Client
	indexTTL time.Duration
}

// NewTokenCache creates a TokenCache wrapping the given Redis client. tokenTTL
// is the full token lifetime.
func NewTokenCache(client *redis.Client, tokenTTL time.Duration) ports.TokenCache {
	return &TokenCache{client: client, indexTTL: tokenTTL}
}

// Get returns the cached principal, or nil on a miss.
func (c *TokenCache) Get(ctx context.Context, value uuid.UUID) (*domain.Principal, error) {
	raw, err := c.client.Get(ctx, tokenKey(value)).Bytes()
	if errors.Is(err, redis.Nil) {
		metrics.TokenCacheTotal.WithLabelValues("miss").Inc()
		return nil, nil
	}
	if err != nil {
		metrics.TokenCacheTotal.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("token cache get: %w", err)
	}

	var p domain.Principal
	if err := json.Unmarshal(raw, &p); err != nil {
		metrics.TokenCacheTotal.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("token cache decode: %w", err)
	}
	metrics.TokenCacheTotal.WithLabelValues("hit").Inc()
	return &p, nil
}

// Put caches p for ttl. Non-positive ttls are ignored.
func (c *TokenCache) Put(ctx context.Context, p *domain.Principal, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	raw, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("token cache encode: %w", err)
	}

	key := tokenKey(p.Token)
	userKey := userTokensKey(p.UserID)
	indexTTL := c.indexTTL
	if ttl > indexTTL {
		indexTTL = ttl
	}

	pipe := c.client.TxPipeline()
	pipe.Set(ctx, key, raw, ttl)
	pipe.SAdd(ctx, userKey, key)
	pipe.Expire(ctx, userKey, indexTTL)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("token cache put: %w", err)
	}
	return nil
}

func (c *TokenCache) Evict(ctx context.Context, value uuid.UUID) error {
	if err := c.client.Del(ctx, tokenKey(value)).Err(); err != nil {
		return fmt.Errorf("token cache evict: %w", err)
	}
	return nil
}

// EvictUser drops every cached token of userID.
func (c *TokenCache) EvictUser(ctx context.Context, userID int64) error {
	userKey := userTokensKey(userID)

	keys, err := c.client.SMembers(ctx, userKey).Result()
	if err != nil {
		return fmt.Errorf("token cache members: %w", err)
	}
	if err := c.client.Del(ctx, append(keys, userKey)...).Err(); err != nil {
		return fmt.Errorf("token cache evict user: %w", err)
	}
	return nil
}

func tokenKey(value uuid.UUID) string {
	return "token:" + value.String()
}

func userTokensKey(userID int64) string {
	return "user_tokens:" + strconv.FormatInt(userID, 10)
}
