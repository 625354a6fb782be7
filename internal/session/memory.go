package session

import (
	"context"
	"sync"
	"time"
)

// memoryEntry pairs a payload with its absolute expiry time.
type memoryEntry struct {
	payload   Payload
	expiresAt time.Time
}

// MemoryStore keeps sessions in a process-local map. Development only:
// sessions are lost on restart and invisible to other instances, which is
// why production configuration refuses this backend.
type MemoryStore struct {
	mu      sync.Mutex
	entries map[string]memoryEntry
	ttl     time.Duration
	now     func() time.Time
}

// NewMemoryStore creates an in-memory session store and starts a janitor
// goroutine that evicts expired entries every minute.
func NewMemoryStore(ttl time.Duration) *MemoryStore {
	s := &MemoryStore{
		entries: make(map[string]memoryEntry),
		ttl:     ttl,
		now:     time.Now,
	}

	go func() {
		for {
			time.Sleep(time.Minute)
			s.mu.Lock()
			now := s.now()
			for token, entry := range s.entries {
				if now.After(entry.expiresAt) {
					delete(s.entries, token)
				}
			}
			s.mu.Unlock()
		}
	}()

	return s
}

// Create stores the payload under a new random token.
func (s *MemoryStore) Create(_ context.Context, payload Payload) (string, error) {
	token, err := generateToken()
	if err != nil {
		return "", err
	}

	s.mu.Lock()
	s.entries[token] = memoryEntry{payload: payload, expiresAt: s.now().Add(s.ttl)}
	s.mu.Unlock()

	return token, nil
}

// Load returns the payload for a live token, or (nil, nil) for unknown and
// expired tokens alike. Expired entries are evicted on sight rather than
// waiting for the janitor.
func (s *MemoryStore) Load(_ context.Context, token string) (*Payload, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.entries[token]
	if !ok {
		return nil, nil
	}
	if s.now().After(entry.expiresAt) {
		delete(s.entries, token)
		return nil, nil
	}

	payload := entry.payload
	return &payload, nil
}

// Destroy removes the session. Idempotent.
func (s *MemoryStore) Destroy(_ context.Context, token string) error {
	s.mu.Lock()
	delete(s.entries, token)
	s.mu.Unlock()
	return nil
}
