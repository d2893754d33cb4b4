package leads

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func TestMemoryGuard(t *testing.T) {
	ctx := context.Background()
	g := NewMemoryGuard()

	ok, err := g.TryAcquire(ctx, "form-1")
	if err != nil || !ok {
		t.Fatalf("first acquire: got %v, %v", ok, err)
	}
	ok, err = g.TryAcquire(ctx, "form-1")
	if err != nil || ok {
		t.Fatalf("duplicate acquire should be refused: got %v, %v", ok, err)
	}

	// A different form is independent.
	ok, err = g.TryAcquire(ctx, "form-2")
	if err != nil || !ok {
		t.Fatalf("independent key acquire: got %v, %v", ok, err)
	}

	if err := g.Release(ctx, "form-1"); err != nil {
		t.Fatalf("release: %v", err)
	}
	ok, err = g.TryAcquire(ctx, "form-1")
	if err != nil || !ok {
		t.Fatalf("acquire after release: got %v, %v", ok, err)
	}
}

func TestRedisGuard(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	ctx := context.Background()

	g := NewRedisGuard(client, time.Minute)

	ok, err := g.TryAcquire(ctx, "0612345678")
	if err != nil || !ok {
		t.Fatalf("first acquire: got %v, %v", ok, err)
	}
	ok, err = g.TryAcquire(ctx, "0612345678")
	if err != nil || ok {
		t.Fatalf("duplicate acquire should be refused: got %v, %v", ok, err)
	}

	if err := g.Release(ctx, "0612345678"); err != nil {
		t.Fatalf("release: %v", err)
	}
	ok, err = g.TryAcquire(ctx, "0612345678")
	if err != nil || !ok {
		t.Fatalf("acquire after release: got %v, %v", ok, err)
	}
}

func TestRedisGuardTTLBackstop(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	ctx := context.Background()

	g := NewRedisGuard(client, time.Minute)
	if ok, _ := g.TryAcquire(ctx, "crashed"); !ok {
		t.Fatal("expected acquire")
	}

	// Simulate an instance that died holding the key.
	mr.FastForward(2 * time.Minute)

	ok, err := g.TryAcquire(ctx, "crashed")
	if err != nil || !ok {
		t.Fatalf("expected key to expire after TTL: got %v, %v", ok, err)
	}
}

func TestRedisGuardBackendDown(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	mr.Close()

	g := NewRedisGuard(client, time.Minute)
	if _, err := g.TryAcquire(context.Background(), "k"); err == nil {
		t.Fatal("expected error when redis is unreachable")
	}
}
