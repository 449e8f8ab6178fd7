// Package usecase contains the application-specific business rules.
// It orchestrates the domain layer to perform tasks.
package usecase

import (
	"context"

	"storybook/internal/domain/entity"

	"github.com/google/uuid"
)

// --- Input DTOs ---

// RegisterInput defines the data required to register a new user.
type RegisterInput struct {
	Email     string
	Password  string
	FirstName string
	LastName  string
}

// LoginInput defines the data required for a user to log in.
type LoginInput struct {
	Email    string
	Password string
}

// UpdateProfileInput defines a partial profile update. Empty fields are
// left unchanged, matching the storefront's sparse PUT semantics.
type UpdateProfileInput struct {
	UserID    uuid.UUID
	FirstName string
	LastName  string
	Email     string
}

// --- Output DTOs ---

// AuthOutput returns the signed access token together with the account.
type AuthOutput struct {
	Token string       `json:"token"`
	User  *entity.User `json:"user"`
}

// UserUsecase defines the interface for account-related business operations.
// This is the contract that the delivery layer (e.g., API handlers) will depend on.
type UserUsecase interface {
	// Register creates a new account and signs the user in.
	Register(ctx context.Context, input *RegisterInput) (*AuthOutput, error)

	// Login verifies credentials and issues a fresh access token.
	Login(ctx context.Context, input *LoginInput) (*AuthOutput, error)

	// GetProfile returns the account behind an authenticated request.
	GetProfile(ctx context.Context, userID uuid.UUID) (*entity.User, error)

	// UpdateProfile applies a partial update to the account.
	UpdateProfile(ctx context.Context, input *UpdateProfileInput) (*entity.User, error)

	// ListSavedBooks returns the user's bookmarked books, newest first.
	ListSavedBooks(ctx context.Context, userID uuid.UUID) ([]*entity.SavedBook, error)

	// SaveBook bookmarks a customized book for the user.
	SaveBook(ctx context.Context, userID, bookID uuid.UUID) (*entity.SavedBook, error)

	// RemoveSavedBook deletes a bookmark.
	RemoveSavedBook(ctx context.Context, userID, bookID uuid.UUID) error
}
