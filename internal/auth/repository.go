package auth

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/docesmara/etiquetas/internal/apperror"
)

// UserRepository defines the data access contract for user lookups.
// All SQL lives in the concrete implementation -- no SQL leaks out.
type UserRepository interface {
	FindByEmail(ctx context.Context, email string) (*User, error)
}

// userRepository implements UserRepository with hand-written Postgres queries.
type userRepository struct {
	db *sql.DB
}

// NewUserRepository creates a new user repository backed by the given DB pool.
func NewUserRepository(db *sql.DB) UserRepository {
	return &userRepository{db: db}
}

// FindByEmail retrieves a user by an exact match on the email column.
// Emails are stored lowercase (seeding normalizes them), and the auth
// service lowercases the submitted address before calling this, so the
// exact match behaves case-insensitively end to end.
// Returns apperror.NotFound if no user exists with this email.
func (r *userRepository) FindByEmail(ctx context.Context, email string) (*User, error) {
	query := `SELECT id, email, password, is_admin, created_at
	          FROM users WHERE email = $1`

	user := &User{}
	err := r.db.QueryRowContext(ctx, query, email).Scan(
		&user.ID,
		&user.Email,
		&user.Password,
		&user.IsAdmin,
		&user.CreatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperror.NewNotFound("user not found")
	}
	if err != nil {
		return nil, fmt.Errorf("querying user by email: %w", err)
	}

	return user, nil
}
