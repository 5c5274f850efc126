package user

import "errors"

// Domain errors for user and favorite operations

var (
	// Credential validation errors
	ErrInvalidEmail     = errors.New("invalid email")
	ErrEmailTooLong     = errors.New("email must not exceed 255 characters")
	ErrPasswordTooShort = errors.New("password must be at least 8 characters")
	ErrPasswordTooLong  = errors.New("password must not exceed 128 characters")

	// Favorite validation errors
	ErrEmptyTitle   = errors.New("favorite title is required")
	ErrEmptyContent = errors.New("favorite content is required")

	// Lookup errors
	ErrUserNotFound = errors.New("user not found")
	ErrEmailTaken   = errors.New("user with this email already exists")
)
