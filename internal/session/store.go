// Package session provides server-side session storage keyed by an opaque
// cookie token. Three backends implement the same Store interface: a
// PostgreSQL table (production default, survives restarts and is shared
// across instances), Redis (alternative production backend), and an
// in-memory map (development only -- process-local, lost on restart).
//
// Application code depends only on the Store interface; the concrete backend
// is chosen once at startup from configuration.
package session

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"time"
)

// tokenBytes is the number of random bytes in a session token.
// 32 bytes = 256 bits of entropy, hex-encoded to 64 characters.
const tokenBytes = 32

// Payload is the authenticated-principal snapshot stored against a session
// token. It is captured at login time and not re-fetched from the user table
// on each request, so it can go stale if the user record changes mid-session.
type Payload struct {
	UserID    int       `json:"user_id"`
	Email     string    `json:"email"`
	IsAdmin   bool      `json:"is_admin"`
	CreatedAt time.Time `json:"created_at"`
}

// Store maps opaque tokens to session payloads with a fixed time-to-live.
type Store interface {
	// Create stores the payload under a new random token and returns the token.
	Create(ctx context.Context, payload Payload) (string, error)

	// Load returns the payload for a token, or (nil, nil) when the token is
	// unknown or expired -- the two cases are indistinguishable by design.
	Load(ctx context.Context, token string) (*Payload, error)

	// Destroy removes the session. Destroying a nonexistent session is not
	// an error.
	Destroy(ctx context.Context, token string) error
}

// generateToken creates a cryptographically random hex-encoded token.
func generateToken() (string, error) {
	b := make([]byte, tokenBytes)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("generating session token: %w", err)
	}
	return hex.EncodeToString(b), nil
}
