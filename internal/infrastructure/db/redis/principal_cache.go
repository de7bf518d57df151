package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/fieldgate/fieldgate/internal/core/domain"
	"github.com/fieldgate/fieldgate/internal/core/ports"
)

// cacheTTL is short on purpose: identity resolution re-reads the store on
// every request, and a removed principal must stop resolving quickly.
const cacheTTL = 30 * time.Second

// cachedPrincipal is the Redis representation. Separate from the domain type
// because domain.Principal deliberately excludes the hash from its JSON form.
type cachedPrincipal struct {
	ID           string   `json:"id"`
	Email        string   `json:"email"`
	PasswordHash string   `json:"password_hash"`
	Roles        []string `json:"roles"`
	CreatedAt    int64    `json:"created_at"`
}

// KVClient is the slice of the Redis API the cache uses. *redis.Client
// satisfies it; tests substitute a fake to observe cache writes.
type KVClient interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
	Del(ctx context.Context, keys ...string) *redis.IntCmd
}

// PrincipalCache is a read-through cache decorating any PrincipalRepository.
// Only FindByID results are cached — the per-request hot path taken by
// identity resolution. Negative results are never cached. Cache failures fall
// back to the inner repository: Redis being down degrades latency, not
// correctness.
type PrincipalCache struct {
	inner  ports.PrincipalRepository
	client KVClient
	log    zerolog.Logger
}

func NewPrincipalCache(inner ports.PrincipalRepository, client KVClient, log zerolog.Logger) *PrincipalCache {
	return &PrincipalCache{inner: inner, client: client, log: log}
}

func (c *PrincipalCache) FindByID(ctx context.Context, id string) (*domain.Principal, error) {
	key := c.key(id)

	if raw, err := c.client.Get(ctx, key).Bytes(); err == nil {
		var cp cachedPrincipal
		if err := json.Unmarshal(raw, &cp); err == nil {
			return &domain.Principal{
				ID:           cp.ID,
				Email:        cp.Email,
				PasswordHash: cp.PasswordHash,
				Roles:        cp.Roles,
				CreatedAt:    time.Unix(cp.CreatedAt, 0).UTC(),
			}, nil
		}
		c.log.Warn().Str("key", key).Msg("dropping undecodable cache entry")
		_ = c.client.Del(ctx, key).Err()
	}

	p, err := c.inner.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	raw, err := json.Marshal(cachedPrincipal{
		ID:           p.ID,
		Email:        p.Email,
		PasswordHash: p.PasswordHash,
		Roles:        p.Roles,
		CreatedAt:    p.CreatedAt.Unix(),
	})
	if err == nil {
		if err := c.client.Set(ctx, key, raw, cacheTTL).Err(); err != nil {
			c.log.Warn().Err(err).Msg("principal cache write failed")
		}
	}
	return p, nil
}

func (c *PrincipalCache) FindByEmail(ctx context.Context, email string) (*domain.Principal, error) {
	return c.inner.FindByEmail(ctx, email)
}

func (c *PrincipalCache) Insert(ctx context.Context, email, passwordHash string, roles []string) (*domain.Principal, error) {
	return c.inner.Insert(ctx, email, passwordHash, roles)
}

func (c *PrincipalCache) key(id string) string {
	return fmt.Sprintf("principal:id:%s", id)
}
