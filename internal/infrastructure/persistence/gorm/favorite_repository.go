package gorm

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/pantrychef/v1/internal/domain/user"
	"github.com/pantrychef/v1/internal/ports/outbound"
)

// FavoriteRepository implements the favorite repository interface using GORM
type FavoriteRepository struct {
	db *gorm.DB
}

// NewFavoriteRepository creates a new favorite repository
func NewFavoriteRepository(db *gorm.DB) outbound.FavoriteRepository {
	return &FavoriteRepository{db: db}
}

// ListByUser returns the user's favorites in insertion order
func (r *FavoriteRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]*user.Favorite, error) {
	var models []FavoriteModel

	result := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at, id").
		Find(&models)
	if result.Error != nil {
		return nil, result.Error
	}

	favorites := make([]*user.Favorite, 0, len(models))
	for i := range models {
		favorites = append(favorites, ModelToFavorite(&models[i]))
	}
	return favorites, nil
}

// Add persists a new favorite for the user
func (r *FavoriteRepository) Add(ctx context.Context, userID uuid.UUID, favorite *user.Favorite) error {
	model := FavoriteToModel(userID, favorite)

	result := r.db.WithContext(ctx).Create(model)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrForeignKeyViolated) {
			return user.ErrUserNotFound
		}
		return result.Error
	}
	return nil
}

// Remove deletes the favorite if present; absent ids are a no-op
func (r *FavoriteRepository) Remove(ctx context.Context, userID, favoriteID uuid.UUID) error {
	result := r.db.WithContext(ctx).
		Where("user_id = ? AND id = ?", userID, favoriteID).
		Delete(&FavoriteModel{})
	return result.Error
}
