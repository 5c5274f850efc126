// Package user defines the user domain entity and its owned favorites
package user

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// User represents an account in the system. Each user exclusively owns an
// ordered list of favorites.
type User struct {
	id           uuid.UUID
	email        string
	passwordHash string
	createdAt    time.Time
	updatedAt    time.Time
}

// Favorite represents a saved recipe (title + content) owned by one user.
// Favorites are created and deleted, never mutated in place.
type Favorite struct {
	id        uuid.UUID
	title     string
	content   string
	createdAt time.Time
}

// NewUser creates a new user with validation. The email is stored verbatim;
// uniqueness is enforced by the repository.
func NewUser(email, password string, bcryptCost int) (*User, error) {
	if err := ValidateEmail(email); err != nil {
		return nil, err
	}
	if err := ValidatePassword(password); err != nil {
		return nil, err
	}

	if bcryptCost == 0 {
		bcryptCost = bcrypt.DefaultCost
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	return &User{
		id:           uuid.New(),
		email:        email,
		passwordHash: string(hash),
		createdAt:    now,
		updatedAt:    now,
	}, nil
}

// ReconstituteUser rebuilds a user from persisted state
func ReconstituteUser(id uuid.UUID, email, passwordHash string, createdAt, updatedAt time.Time) *User {
	return &User{
		id:           id,
		email:        email,
		passwordHash: passwordHash,
		createdAt:    createdAt,
		updatedAt:    updatedAt,
	}
}

// ID returns the user's ID
func (u *User) ID() uuid.UUID { return u.id }

// Email returns the user's email
func (u *User) Email() string { return u.email }

// PasswordHash returns the stored bcrypt hash
func (u *User) PasswordHash() string { return u.passwordHash }

// CreatedAt returns when the user was created
func (u *User) CreatedAt() time.Time { return u.createdAt }

// UpdatedAt returns when the user was last updated
func (u *User) UpdatedAt() time.Time { return u.updatedAt }

// CheckPassword verifies if the provided password matches
func (u *User) CheckPassword(password string) error {
	return bcrypt.CompareHashAndPassword([]byte(u.passwordHash), []byte(password))
}

// NewFavorite creates a favorite with a freshly generated id
func NewFavorite(title, content string) (*Favorite, error) {
	if strings.TrimSpace(title) == "" {
		return nil, ErrEmptyTitle
	}
	if strings.TrimSpace(content) == "" {
		return nil, ErrEmptyContent
	}

	return &Favorite{
		id:        uuid.New(),
		title:     title,
		content:   content,
		createdAt: time.Now(),
	}, nil
}

// ReconstituteFavorite rebuilds a favorite from persisted state
func ReconstituteFavorite(id uuid.UUID, title, content string, createdAt time.Time) *Favorite {
	return &Favorite{
		id:        id,
		title:     title,
		content:   content,
		createdAt: createdAt,
	}
}

// ID returns the favorite's ID
func (f *Favorite) ID() uuid.UUID { return f.id }

// Title returns the favorite's title
func (f *Favorite) Title() string { return f.title }

// Content returns the full recipe text
func (f *Favorite) Content() string { return f.content }

// CreatedAt returns when the favorite was saved
func (f *Favorite) CreatedAt() time.Time { return f.createdAt }

// ValidateEmail checks the login key: it must be non-empty and contain "@".
// Intentionally no stricter than that.
func ValidateEmail(email string) error {
	if email == "" || !strings.Contains(email, "@") {
		return ErrInvalidEmail
	}
	if len(email) > 255 {
		return ErrEmailTooLong
	}
	return nil
}

// ValidatePassword checks password length bounds
func ValidatePassword(password string) error {
	if len(password) < 8 {
		return ErrPasswordTooShort
	}
	if len(password) > 128 {
		return ErrPasswordTooLong
	}
	return nil
}
