// Package favorites provides the application layer for the per-user
// favorites list.
package favorites

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/pantrychef/v1/internal/domain/user"
	"github.com/pantrychef/v1/internal/ports/outbound"
	apperrors "github.com/pantrychef/v1/pkg/errors"
)

// Service implements favorites use cases. Authorization happens at the
// HTTP boundary; callers pass the session's resolved user id.
type Service struct {
	users     outbound.UserRepository
	favorites outbound.FavoriteRepository
	logger    *zap.Logger
}

// NewService creates a new favorites service
func NewService(
	users outbound.UserRepository,
	favorites outbound.FavoriteRepository,
	logger *zap.Logger,
) *Service {
	return &Service{
		users:     users,
		favorites: favorites,
		logger:    logger.Named("favorites-service"),
	}
}

// FavoriteDTO represents a favorite in API responses
type FavoriteDTO struct {
	ID      uuid.UUID `json:"id"`
	Title   string    `json:"title"`
	Content string    `json:"content"`
}

// List returns the user's favorites in insertion order, empty if none
func (s *Service) List(ctx context.Context, userID uuid.UUID) ([]FavoriteDTO, error) {
	favs, err := s.favorites.ListByUser(ctx, userID)
	if err != nil {
		return nil, apperrors.NewInternalError("Server error").WithCause(err)
	}

	dtos := make([]FavoriteDTO, 0, len(favs))
	for _, f := range favs {
		dtos = append(dtos, FavoriteDTO{ID: f.ID(), Title: f.Title(), Content: f.Content()})
	}
	return dtos, nil
}

// Add appends a new favorite with a freshly generated id and persists it
func (s *Service) Add(ctx context.Context, userID uuid.UUID, title, content string) (*FavoriteDTO, error) {
	fav, err := user.NewFavorite(title, content)
	if err != nil {
		return nil, apperrors.NewBadRequestError("Title and content required.").WithCause(err)
	}

	// The session can outlive the account; surface that as not found
	// rather than a foreign-key failure.
	exists, err := s.users.Exists(ctx, userID)
	if err != nil {
		return nil, apperrors.NewInternalError("Server error").WithCause(err)
	}
	if !exists {
		return nil, apperrors.NewNotFoundError("User not found")
	}

	if err := s.favorites.Add(ctx, userID, fav); err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return nil, apperrors.NewNotFoundError("User not found")
		}
		return nil, apperrors.NewInternalError("Server error").WithCause(err)
	}

	s.logger.Info("favorite saved",
		zap.String("user_id", userID.String()),
		zap.String("favorite_id", fav.ID().String()))

	return &FavoriteDTO{ID: fav.ID(), Title: fav.Title(), Content: fav.Content()}, nil
}

// Remove deletes the favorite with the given id from the user's list.
// Removing an id that is already absent succeeds.
func (s *Service) Remove(ctx context.Context, userID, favoriteID uuid.UUID) error {
	if err := s.favorites.Remove(ctx, userID, favoriteID); err != nil {
		return apperrors.NewInternalError("Failed to delete").WithCause(err)
	}

	s.logger.Info("favorite removed",
		zap.String("user_id", userID.String()),
		zap.String("favorite_id", favoriteID.String()))
	return nil
}
