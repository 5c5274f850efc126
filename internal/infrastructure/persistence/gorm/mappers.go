package gorm

import (
	"github.com/google/uuid"

	"github.com/pantrychef/v1/internal/domain/user"
)

// UserToModel converts a domain user to its GORM model
func UserToModel(u *user.User) *UserModel {
	return &UserModel{
		ID:           u.ID(),
		Email:        u.Email(),
		PasswordHash: u.PasswordHash(),
		CreatedAt:    u.CreatedAt(),
		UpdatedAt:    u.UpdatedAt(),
	}
}

// ModelToUser converts a GORM model to a domain user
func ModelToUser(m *UserModel) *user.User {
	return user.ReconstituteUser(m.ID, m.Email, m.PasswordHash, m.CreatedAt, m.UpdatedAt)
}

// FavoriteToModel converts a domain favorite to its GORM model
func FavoriteToModel(userID uuid.UUID, f *user.Favorite) *FavoriteModel {
	return &FavoriteModel{
		ID:        f.ID(),
		UserID:    userID,
		Title:     f.Title(),
		Content:   f.Content(),
		CreatedAt: f.CreatedAt(),
	}
}

// ModelToFavorite converts a GORM model to a domain favorite
func ModelToFavorite(m *FavoriteModel) *user.Favorite {
	return user.ReconstituteFavorite(m.ID, m.Title, m.Content, m.CreatedAt)
}
