// Package outbound defines the interfaces for outbound ports (secondary/driven adapters)
// These are the interfaces that the application uses to interact with external systems
package outbound

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/pantrychef/v1/internal/domain/user"
)

// ErrSessionNotFound is returned by SessionStore.Get for unknown or expired tokens
var ErrSessionNotFound = errors.New("session not found")

// UserRepository defines the interface for user persistence
type UserRepository interface {
	Create(ctx context.Context, u *user.User) error
	FindByID(ctx context.Context, id uuid.UUID) (*user.User, error)
	FindByEmail(ctx context.Context, email string) (*user.User, error)
	Exists(ctx context.Context, id uuid.UUID) (bool, error)
}

// FavoriteRepository defines the interface for favorite persistence.
// Favorites live in their own rows keyed to the owning user, so add and
// remove are independent writes rather than a whole-document rewrite.
type FavoriteRepository interface {
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*user.Favorite, error)
	Add(ctx context.Context, userID uuid.UUID, favorite *user.Favorite) error
	// Remove is idempotent: removing an absent id is not an error.
	Remove(ctx context.Context, userID, favoriteID uuid.UUID) error
}

// SessionStore maps opaque tokens to signed-in user ids with a TTL
type SessionStore interface {
	Create(ctx context.Context, userID uuid.UUID) (string, error)
	Get(ctx context.Context, token string) (uuid.UUID, error)
	// Delete is idempotent: deleting an absent token is not an error.
	Delete(ctx context.Context, token string) error
}

// GeneratedRecipe is the normalized result of a generation call
type GeneratedRecipe struct {
	Text         string `json:"text"`
	FinishReason string `json:"finishReason"`
}

// RecipeGenerator produces recipe text from an ingredient list via the
// upstream generative-language API. A single upstream failure is a single
// client-visible failure; implementations must not retry.
type RecipeGenerator interface {
	Generate(ctx context.Context, ingredients []string) (*GeneratedRecipe, error)
}
