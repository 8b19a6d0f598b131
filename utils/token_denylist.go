package utils

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/go-redis/redis/v8"
)

// TokenDenylist records signed-out tokens until they would have expired anyway.
type TokenDenylist interface {
	Revoke(ctx context.Context, tokenHash string, until time.Time) error
	IsRevoked(ctx context.Context, tokenHash string) (bool, error)
}

type RedisTokenDenylist struct {
	client *redis.Client
}

func NewRedisTokenDenylist(client *redis.Client) *RedisTokenDenylist {
	return &RedisTokenDenylist{client: client}
}

func (d *RedisTokenDenylist) Revoke(ctx context.Context, tokenHash string, until time.Time) error {
	ttl := time.Until(until)
	if ttl <= 0 {
		// already expired; keep a short entry so in-flight requests still fail
		ttl = time.Minute
	}
	if err := d.client.Set(ctx, RevokedTokenPrefix+tokenHash, "1", ttl).Err(); err != nil {
		return fmt.Errorf("failed to revoke token: %w", err)
	}
	return nil
}

func (d *RedisTokenDenylist) IsRevoked(ctx context.Context, tokenHash string) (bool, error) {
	n, err := d.client.Exists(ctx, RevokedTokenPrefix+tokenHash).Result()
	if err != nil {
		return false, fmt.Errorf("failed to check token denylist: %w", err)
	}
	return n > 0, nil
}

// MemoryTokenDenylist is used in memory mode and in tests.
type MemoryTokenDenylist struct {
	mu      sync.Mutex
	revoked map[string]time.Time
	now     func() time.Time
}

func NewMemoryTokenDenylist() *MemoryTokenDenylist {
	return &MemoryTokenDenylist{revoked: make(map[string]time.Time), now: time.Now}
}

func (d *MemoryTokenDenylist) Revoke(_ context.Context, tokenHash string, until time.Time) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.revoked[tokenHash] = until
	return nil
}

func (d *MemoryTokenDenylist) IsRevoked(_ context.Context, tokenHash string) (bool, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	until, ok := d.revoked[tokenHash]
	if !ok {
		return false, nil
	}
	if !until.IsZero() && d.now().After(until.Add(time.Minute)) {
		delete(d.revoked, tokenHash)
		return false, nil
	}
	return true, nil
}
