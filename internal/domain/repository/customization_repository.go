package repository

import (
	"context"
	"errors"

	"storybook/internal/domain/entity"

	"github.com/google/uuid"
)

// ErrCustomizationNotFound covers both a missing customization and one owned
// by a different user: ownership-sensitive lookups are deliberately
// indistinguishable from nonexistence so they never leak existence.
var ErrCustomizationNotFound = errors.New("customization not found")

// CustomizationRepository defines persistence for per-user story
// personalizations.
type CustomizationRepository interface {
	// Create persists a new customization.
	Create(ctx context.Context, customization *entity.Customization) error

	// FindByID retrieves a customization by id with its story projection,
	// regardless of owner (the original exposes this read publicly).
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Customization, error)

	// FindOwned retrieves a customization only when it is owned by userID,
	// with its full story joined. A mismatch returns ErrCustomizationNotFound.
	FindOwned(ctx context.Context, id, userID uuid.UUID) (*entity.Customization, error)

	// ListByUser returns the user's customizations with story projections.
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*entity.Customization, error)

	// Update modifies an existing customization.
	Update(ctx context.Context, customization *entity.Customization) error

	// DeleteOwned removes a customization owned by userID.
	// Returns ErrCustomizationNotFound when nothing was deleted.
	DeleteOwned(ctx context.Context, id, userID uuid.UUID) error
}

// ErrBookNotFound is returned when a customized book does not resolve.
var ErrBookNotFound = errors.New("customized book not found")

// CustomizedBookRepository defines persistence for rendered books.
// One book exists per customization at most.
type CustomizedBookRepository interface {
	// FindByID retrieves a book by its unique ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.CustomizedBook, error)

	// FindByCustomization retrieves the book rendered from a customization.
	FindByCustomization(ctx context.Context, customizationID uuid.UUID) (*entity.CustomizedBook, error)

	// Create persists a newly rendered book.
	Create(ctx context.Context, book *entity.CustomizedBook) error

	// Update overwrites an existing book after a re-render.
	Update(ctx context.Context, book *entity.CustomizedBook) error
}
