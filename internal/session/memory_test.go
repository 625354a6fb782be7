package session

import (
	"context"
	"testing"
	"time"
)

// newTestMemoryStore builds a store without the janitor goroutine so tests
// control time directly.
func newTestMemoryStore(ttl time.Duration) *MemoryStore {
	return &MemoryStore{
		entries: make(map[string]memoryEntry),
		ttl:     ttl,
		now:     time.Now,
	}
}

func TestMemoryStoreCreateLoad(t *testing.T) {
	store := newTestMemoryStore(time.Hour)
	ctx := context.Background()

	payload := Payload{UserID: 1, Email: "docesmara.admin@gmail.com", IsAdmin: true, CreatedAt: time.Now().UTC()}

	token, err := store.Create(ctx, payload)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if len(token) != tokenBytes*2 {
		t.Errorf("expected %d-char hex token, got %d chars", tokenBytes*2, len(token))
	}

	got, err := store.Load(ctx, token)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got == nil {
		t.Fatal("expected payload, got nil")
	}
	if got.UserID != payload.UserID || got.Email != payload.Email || got.IsAdmin != payload.IsAdmin {
		t.Errorf("loaded payload %+v does not match stored %+v", got, payload)
	}
}

func TestMemoryStoreUnknownToken(t *testing.T) {
	store := newTestMemoryStore(time.Hour)

	got, err := store.Load(context.Background(), "deadbeef")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got != nil {
		t.Errorf("expected nil payload for unknown token, got %+v", got)
	}
}

func TestMemoryStoreExpiry(t *testing.T) {
	store := newTestMemoryStore(time.Hour)
	ctx := context.Background()

	token, err := store.Create(ctx, Payload{UserID: 1, Email: "a@b.com"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	// Move the clock past the TTL. Expired tokens must read exactly like
	// tokens that never existed.
	store.now = func() time.Time { return time.Now().Add(2 * time.Hour) }

	got, err := store.Load(ctx, token)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got != nil {
		t.Errorf("expected expired session to be absent, got %+v", got)
	}
}

func TestMemoryStoreDestroyIdempotent(t *testing.T) {
	store := newTestMemoryStore(time.Hour)
	ctx := context.Background()

	token, err := store.Create(ctx, Payload{UserID: 7, Email: "x@x.com"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	if err := store.Destroy(ctx, token); err != nil {
		t.Fatalf("Destroy: %v", err)
	}
	if got, _ := store.Load(ctx, token); got != nil {
		t.Error("expected session gone after Destroy")
	}

	// Destroying again, and destroying a token that never existed, are not errors.
	if err := store.Destroy(ctx, token); err != nil {
		t.Errorf("second Destroy: %v", err)
	}
	if err := store.Destroy(ctx, "nunca-existiu"); err != nil {
		t.Errorf("Destroy of unknown token: %v", err)
	}
}

func TestMemoryStoreTokensAreUnique(t *testing.T) {
	store := newTestMemoryStore(time.Hour)
	ctx := context.Background()

	seen := make(map[string]bool)
	for i := 0; i < 50; i++ {
		token, err := store.Create(ctx, Payload{UserID: i})
		if err != nil {
			t.Fatalf("Create: %v", err)
		}
		if seen[token] {
			t.Fatalf("duplicate token generated: %s", token)
		}
		seen[token] = true
	}
}
