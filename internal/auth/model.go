// Package auth handles credential verification and session lifecycle for the
// etiquetas API. Authentication is a two-state machine: a request is either
// anonymous (no valid session token) or authenticated (token resolves to a
// payload in the session store); login and logout are the only transitions.
//
// Users are provisioned out-of-band by the database seed -- there is no
// public registration endpoint.
package auth

import (
	"time"
)

// User represents a provisioned account. The password column holds a bcrypt
// hash; plaintext is never stored or transmitted back to a client.
type User struct {
	ID        int       `json:"id"`
	Email     string    `json:"email"`
	Password  string    `json:"-"` // bcrypt hash. Never expose in JSON responses.
	IsAdmin   bool      `json:"isAdmin"`
	CreatedAt time.Time `json:"createdAt"`
}

// LoginRequest holds the credentials submitted to POST /api/login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// UserSnapshot is the {id, email, isAdmin} view of a user returned by login
// and auth-status responses and stored in the session payload. The isAdmin
// flag is carried but gates no endpoint.
type UserSnapshot struct {
	ID      int    `json:"id"`
	Email   string `json:"email"`
	IsAdmin bool   `json:"isAdmin"`
}
