package leads

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// Guard enforces the at-most-one-in-flight rule: a second submission for the
// same key while one is outstanding is dropped, never queued.
type Guard interface {
	// TryAcquire returns false when a submission for key is already in
	// flight.
	TryAcquire(ctx context.Context, key string) (bool, error)
	// Release marks the submission for key as concluded. It must be called
	// on every exit path.
	Release(ctx context.Context, key string) error
}

// MemoryGuard tracks in-flight keys in process memory. It is the right
// choice for a single-instance deployment.
type MemoryGuard struct {
	mu   sync.Mutex
	held map[string]struct{}
}

// NewMemoryGuard creates an in-process guard.
func NewMemoryGuard() *MemoryGuard {
	return &MemoryGuard{held: make(map[string]struct{})}
}

func (g *MemoryGuard) TryAcquire(ctx context.Context, key string) (bool, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if _, ok := g.held[key]; ok {
		return false, nil
	}
	g.held[key] = struct{}{}
	return true, nil
}

func (g *MemoryGuard) Release(ctx context.Context, key string) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	delete(g.held, key)
	return nil
}

const redisGuardPrefix = "leadguard:"

// RedisGuard coordinates the in-flight rule across instances using SETNX.
// The TTL is a backstop so a crashed instance cannot wedge a key forever.
type RedisGuard struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisGuard creates a guard backed by the given Redis client.
func NewRedisGuard(client *redis.Client, ttl time.Duration) *RedisGuard {
	if ttl <= 0 {
		ttl = 2 * time.Minute
	}
	return &RedisGuard{client: client, ttl: ttl}
}

func (g *RedisGuard) TryAcquire(ctx context.Context, key string) (bool, error) {
	ok, err := g.client.SetNX(ctx, redisGuardPrefix+key, "1", g.ttl).Result()
	if err != nil {
		return false, fmt.Errorf("leads: guard acquire: %w", err)
	}
	return ok, nil
}

func (g *RedisGuard) Release(ctx context.Context, key string) error {
	if err := g.client.Del(ctx, redisGuardPrefix+key).Err(); err != nil {
		return fmt.Errorf("leads: guard release: %w", err)
	}
	return nil
}
