package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// keyPrefix namespaces session keys in Redis.
const keyPrefix = "session:"

// RedisStore keeps sessions in Redis with the TTL enforced by the server
// itself. An alternative production backend for deployments that already
// run Redis and want session reads off the primary database.
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisStore creates a Redis-backed session store.
func NewRedisStore(client *redis.Client, ttl time.Duration) *RedisStore {
	return &RedisStore{client: client, ttl: ttl}
}

// Create stores the JSON-encoded payload under a new random token.
func (s *RedisStore) Create(ctx context.Context, payload Payload) (string, error) {
	token, err := generateToken()
	if err != nil {
		return "", err
	}

	data, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("marshaling session payload: %w", err)
	}

	if err := s.client.Set(ctx, keyPrefix+token, data, s.ttl).Err(); err != nil {
		return "", fmt.Errorf("storing session in redis: %w", err)
	}

	return token, nil
}

// Load returns the payload for a token, or (nil, nil) when Redis has no such
// key -- expiry is handled by Redis, so an expired session simply reads as
// absent.
func (s *RedisStore) Load(ctx context.Context, token string) (*Payload, error) {
	data, err := s.client.Get(ctx, keyPrefix+token).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading session from redis: %w", err)
	}

	var payload Payload
	if err := json.Unmarshal(data, &payload); err != nil {
		return nil, fmt.Errorf("unmarshaling session payload: %w", err)
	}

	return &payload, nil
}

// Destroy removes the session key. DEL on a missing key is a no-op, which
// gives us idempotency for free.
func (s *RedisStore) Destroy(ctx context.Context, token string) error {
	if err := s.client.Del(ctx, keyPrefix+token).Err(); err != nil {
		return fmt.Errorf("deleting session from redis: %w", err)
	}
	return nil
}
