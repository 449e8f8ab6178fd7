package usecase

import (
	"context"

	"storybook/internal/domain/entity"

	"github.com/google/uuid"
)

// --- Input DTOs ---

// CreateCustomizationInput defines the data required to personalize a story.
type CreateCustomizationInput struct {
	UserID       uuid.UUID
	StoryID      uuid.UUID
	ChildName    string
	ChildGender  string
	ChildAge     int
	CustomFields map[string]string
}

// UpdateCustomizationInput defines a partial customization update. Empty
// fields (and a zero age) are left unchanged, matching the storefront's
// sparse PUT semantics.
type UpdateCustomizationInput struct {
	ID           uuid.UUID
	UserID       uuid.UUID
	ChildName    string
	ChildGender  string
	ChildAge     int
	CustomFields map[string]string
}

// CustomizationUsecase defines the interface for personalizing stories and
// rendering the resulting books.
type CustomizationUsecase interface {
	// CreateCustomization records a user's personalization of a story.
	CreateCustomization(ctx context.Context, input *CreateCustomizationInput) (*entity.Customization, error)

	// ListMine returns the user's customizations, newest first.
	ListMine(ctx context.Context, userID uuid.UUID) ([]*entity.Customization, error)

	// GetCustomization returns one customization by id. The read is public:
	// share links resolve without authentication.
	GetCustomization(ctx context.Context, id uuid.UUID) (*entity.Customization, error)

	// UpdateCustomization applies a partial update to an owned customization.
	UpdateCustomization(ctx context.Context, input *UpdateCustomizationInput) (*entity.Customization, error)

	// DeleteCustomization removes an owned customization.
	DeleteCustomization(ctx context.Context, id, userID uuid.UUID) error

	// GenerateBook renders the owned customization into its book, replacing
	// every placeholder. Re-rendering overwrites the existing book.
	GenerateBook(ctx context.Context, id, userID uuid.UUID) (*entity.CustomizedBook, error)

	// GetBook returns a rendered book by id. Public, for share links.
	GetBook(ctx context.Context, bookID uuid.UUID) (*entity.CustomizedBook, error)

	// GetBookQRCode returns a PNG QR code sharing the rendered book of an
	// owned customization.
	GetBookQRCode(ctx context.Context, customizationID, userID uuid.UUID) ([]byte, error)
}
