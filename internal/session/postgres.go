package session

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"
)

// pruneInterval is how often the background janitor deletes expired rows.
// Expired sessions are also rejected on load, so pruning only bounds table
// growth; it does not affect correctness.
const pruneInterval = 15 * time.Minute

// PostgresStore persists sessions in the sessions table. This is the
// production default: sessions survive process restarts and are visible to
// every instance sharing the database.
type PostgresStore struct {
	db  *sql.DB
	ttl time.Duration
}

// NewPostgresStore creates a Postgres-backed session store and starts the
// background prune loop.
func NewPostgresStore(db *sql.DB, ttl time.Duration) *PostgresStore {
	s := &PostgresStore{db: db, ttl: ttl}
	go s.pruneLoop()
	return s
}

// Create stores the payload under a new random token with the configured TTL.
func (s *PostgresStore) Create(ctx context.Context, payload Payload) (string, error) {
	token, err := generateToken()
	if err != nil {
		return "", err
	}

	data, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("marshaling session payload: %w", err)
	}

	query := `INSERT INTO sessions (token, payload, expires_at) VALUES ($1, $2, $3)`
	if _, err := s.db.ExecContext(ctx, query, token, data, time.Now().UTC().Add(s.ttl)); err != nil {
		return "", fmt.Errorf("inserting session: %w", err)
	}

	return token, nil
}

// Load returns the payload for a live token. Expired and unknown tokens both
// return (nil, nil); the expiry check is part of the query so an expired row
// is never served even before the janitor removes it.
func (s *PostgresStore) Load(ctx context.Context, token string) (*Payload, error) {
	query := `SELECT payload FROM sessions WHERE token = $1 AND expires_at > NOW()`

	var data []byte
	err := s.db.QueryRowContext(ctx, query, token).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("querying session: %w", err)
	}

	var payload Payload
	if err := json.Unmarshal(data, &payload); err != nil {
		return nil, fmt.Errorf("unmarshaling session payload: %w", err)
	}

	return &payload, nil
}

// Destroy removes the session row. Idempotent: a missing row is not an error.
func (s *PostgresStore) Destroy(ctx context.Context, token string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM sessions WHERE token = $1`, token); err != nil {
		return fmt.Errorf("deleting session: %w", err)
	}
	return nil
}

// pruneLoop periodically deletes expired session rows.
func (s *PostgresStore) pruneLoop() {
	for {
		time.Sleep(pruneInterval)

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		result, err := s.db.ExecContext(ctx, `DELETE FROM sessions WHERE expires_at <= NOW()`)
		cancel()

		if err != nil {
			slog.Warn("pruning expired sessions failed", slog.Any("error", err))
			continue
		}
		if n, err := result.RowsAffected(); err == nil && n > 0 {
			slog.Debug("pruned expired sessions", slog.Int64("count", n))
		}
	}
}
