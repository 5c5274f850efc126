// Package auth provides the application layer for signup, login, logout
// and session introspection.
package auth

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/pantrychef/v1/internal/domain/user"
	"github.com/pantrychef/v1/internal/ports/outbound"
	apperrors "github.com/pantrychef/v1/pkg/errors"
)

// Service implements authentication use cases over the user repository
// and the session store.
type Service struct {
	users      outbound.UserRepository
	sessions   outbound.SessionStore
	bcryptCost int
	logger     *zap.Logger
}

// NewService creates a new auth service
func NewService(
	users outbound.UserRepository,
	sessions outbound.SessionStore,
	bcryptCost int,
	logger *zap.Logger,
) *Service {
	return &Service{
		users:      users,
		sessions:   sessions,
		bcryptCost: bcryptCost,
		logger:     logger.Named("auth-service"),
	}
}

// SessionInfo is the result of a session check
type SessionInfo struct {
	LoggedIn bool   `json:"loggedIn"`
	Email    string `json:"email,omitempty"`
}

// Signup registers a new account and establishes a session for it.
// No state is mutated when validation fails or the email is taken.
func (s *Service) Signup(ctx context.Context, email, password string) (string, error) {
	existing, err := s.lookupByEmail(ctx, email, password)
	if err != nil {
		return "", err
	}
	if existing != nil {
		return "", apperrors.NewConflictError("User already exists")
	}

	newUser, err := user.NewUser(email, password, s.bcryptCost)
	if err != nil {
		return "", apperrors.NewInternalError("Server error occurred").WithCause(err)
	}

	if err := s.users.Create(ctx, newUser); err != nil {
		if errors.Is(err, user.ErrEmailTaken) {
			return "", apperrors.NewConflictError("User already exists")
		}
		return "", apperrors.NewInternalError("Server error occurred").WithCause(err)
	}

	token, err := s.sessions.Create(ctx, newUser.ID())
	if err != nil {
		return "", apperrors.NewInternalError("Server error occurred").WithCause(err)
	}

	s.logger.Info("user signed up", zap.String("user_id", newUser.ID().String()))
	return token, nil
}

// Login authenticates an existing account and establishes a session
func (s *Service) Login(ctx context.Context, email, password string) (string, error) {
	existing, err := s.lookupByEmail(ctx, email, password)
	if err != nil {
		return "", err
	}
	if existing == nil {
		return "", apperrors.NewNotFoundError("User not found")
	}

	if err := existing.CheckPassword(password); err != nil {
		s.logger.Warn("invalid password attempt", zap.String("user_id", existing.ID().String()))
		return "", apperrors.NewUnauthorizedError("Incorrect password")
	}

	token, err := s.sessions.Create(ctx, existing.ID())
	if err != nil {
		return "", apperrors.NewInternalError("Server error occurred").WithCause(err)
	}

	s.logger.Info("user logged in", zap.String("user_id", existing.ID().String()))
	return token, nil
}

// Logout destroys the session for the given token. Absent or unknown
// tokens are a no-op.
func (s *Service) Logout(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	if err := s.sessions.Delete(ctx, token); err != nil {
		return apperrors.NewInternalError("Server error occurred").WithCause(err)
	}
	return nil
}

// CheckSession reports whether the token references a still-existing user.
// It never fails the request: internal errors degrade to logged-out.
func (s *Service) CheckSession(ctx context.Context, token string) SessionInfo {
	if token == "" {
		return SessionInfo{LoggedIn: false}
	}

	userID, err := s.sessions.Get(ctx, token)
	if err != nil {
		if !errors.Is(err, outbound.ErrSessionNotFound) {
			s.logger.Warn("session lookup failed", zap.Error(err))
		}
		return SessionInfo{LoggedIn: false}
	}

	u, err := s.users.FindByID(ctx, userID)
	if err != nil {
		if !errors.Is(err, user.ErrUserNotFound) {
			s.logger.Warn("user lookup failed", zap.String("user_id", userID.String()), zap.Error(err))
		}
		return SessionInfo{LoggedIn: false}
	}

	return SessionInfo{LoggedIn: true, Email: u.Email()}
}

// lookupByEmail is the shared half of the signup and login flows: validate
// the submitted credentials, then resolve the email to an existing user or
// nil. Signup requires nil, login requires non-nil.
func (s *Service) lookupByEmail(ctx context.Context, email, password string) (*user.User, error) {
	if err := user.ValidateEmail(email); err != nil {
		return nil, apperrors.NewValidationError("Invalid email").WithCause(err)
	}
	if err := user.ValidatePassword(password); err != nil {
		return nil, apperrors.NewValidationError("Password must be at least 8 characters").WithCause(err)
	}

	existing, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return nil, nil
		}
		return nil, apperrors.NewInternalError("Server error occurred").WithCause(err)
	}
	return existing, nil
}
