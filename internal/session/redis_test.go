package session

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

// newTestRedisStore spins up an in-process miniredis and a store backed by it.
func newTestRedisStore(t *testing.T, ttl time.Duration) (*RedisStore, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return NewRedisStore(client, ttl), mr
}

func TestRedisStoreRoundTrip(t *testing.T) {
	store, _ := newTestRedisStore(t, time.Hour)
	ctx := context.Background()

	payload := Payload{UserID: 3, Email: "docesmara.admin@gmail.com", IsAdmin: true, CreatedAt: time.Now().UTC().Truncate(time.Second)}

	token, err := store.Create(ctx, payload)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	got, err := store.Load(ctx, token)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got == nil {
		t.Fatal("expected payload, got nil")
	}
	if got.UserID != payload.UserID || got.Email != payload.Email || !got.IsAdmin {
		t.Errorf("loaded payload %+v does not match stored %+v", got, payload)
	}
}

func TestRedisStoreExpiry(t *testing.T) {
	store, mr := newTestRedisStore(t, time.Minute)
	ctx := context.Background()

	token, err := store.Create(ctx, Payload{UserID: 1, Email: "a@b.com"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	mr.FastForward(2 * time.Minute)

	got, err := store.Load(ctx, token)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got != nil {
		t.Errorf("expected expired session to be absent, got %+v", got)
	}
}

func TestRedisStoreDestroyIdempotent(t *testing.T) {
	store, _ := newTestRedisStore(t, time.Hour)
	ctx := context.Background()

	token, err := store.Create(ctx, Payload{UserID: 2, Email: "x@x.com"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	if err := store.Destroy(ctx, token); err != nil {
		t.Fatalf("Destroy: %v", err)
	}
	if got, _ := store.Load(ctx, token); got != nil {
		t.Error("expected session gone after Destroy")
	}
	if err := store.Destroy(ctx, token); err != nil {
		t.Errorf("second Destroy: %v", err)
	}
}
