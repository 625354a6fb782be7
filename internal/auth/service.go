package auth

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/docesmara/etiquetas/internal/apperror"
	"github.com/docesmara/etiquetas/internal/session"
)

// AuthService defines the business logic contract for authentication.
// Handlers call these methods -- they never touch the repository or the
// session store directly.
type AuthService interface {
	// Login verifies credentials and establishes a session. Unknown email
	// and wrong password fail with the same generic error so account
	// existence is never revealed.
	Login(ctx context.Context, req LoginRequest) (token string, user UserSnapshot, err error)

	// Status resolves a session token to its payload. A missing, unknown,
	// or expired token is a normal anonymous outcome, not an error; Status
	// only returns an error while the token remains plausibly valid (store
	// unreachable).
	Status(ctx context.Context, token string) (*UserSnapshot, error)

	// Logout destroys the session. Idempotent: logging out without a
	// session succeeds.
	Logout(ctx context.Context, token string) error
}

// authService implements AuthService with bcrypt verification and a
// pluggable session store.
type authService struct {
	repo  UserRepository
	store session.Store
}

// NewAuthService creates a new auth service with the given dependencies.
func NewAuthService(repo UserRepository, store session.Store) AuthService {
	return &authService{repo: repo, store: store}
}

// Login authenticates a user by email and password. On success it stores the
// {id, email, isAdmin} snapshot in the session store and returns the token
// for the cookie.
func (s *authService) Login(ctx context.Context, req LoginRequest) (string, UserSnapshot, error) {
	user, err := s.repo.FindByEmail(ctx, strings.ToLower(strings.TrimSpace(req.Email)))
	if err != nil {
		// Don't reveal whether the email exists -- same message as a
		// password mismatch.
		if apperror.IsNotFound(err) {
			return "", UserSnapshot{}, apperror.NewUnauthorized("Credenciais inválidas")
		}
		return "", UserSnapshot{}, apperror.NewInternal("Erro ao fazer login", fmt.Errorf("finding user: %w", err))
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return "", UserSnapshot{}, apperror.NewUnauthorized("Credenciais inválidas")
	}

	token, err := s.store.Create(ctx, session.Payload{
		UserID:    user.ID,
		Email:     user.Email,
		IsAdmin:   user.IsAdmin,
		CreatedAt: time.Now().UTC(),
	})
	if err != nil {
		return "", UserSnapshot{}, apperror.NewInternal("Erro ao fazer login", fmt.Errorf("creating session: %w", err))
	}

	slog.Info("user logged in",
		slog.Int("user_id", user.ID),
		slog.String("email", user.Email),
	)

	return token, UserSnapshot{ID: user.ID, Email: user.Email, IsAdmin: user.IsAdmin}, nil
}

// Status resolves the token against the session store. Absence returns
// (nil, nil): the anonymous state is a successful answer.
func (s *authService) Status(ctx context.Context, token string) (*UserSnapshot, error) {
	if token == "" {
		return nil, nil
	}

	payload, err := s.store.Load(ctx, token)
	if err != nil {
		return nil, apperror.NewInternal("Erro ao verificar sessão", fmt.Errorf("loading session: %w", err))
	}
	if payload == nil {
		return nil, nil
	}

	return &UserSnapshot{ID: payload.UserID, Email: payload.Email, IsAdmin: payload.IsAdmin}, nil
}

// Logout destroys the session in the store. Destroying a session that does
// not exist succeeds.
func (s *authService) Logout(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}

	if err := s.store.Destroy(ctx, token); err != nil {
		return apperror.NewInternal("Erro ao fazer logout", fmt.Errorf("destroying session: %w", err))
	}

	slog.Info("user logged out")
	return nil
}
