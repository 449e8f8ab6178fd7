package repository

import (
	"context"
	"errors"

	"storybook/internal/domain/entity"

	"github.com/google/uuid"
)

// ErrSavedBookNotFound is returned when a user has not saved the book.
var ErrSavedBookNotFound = errors.New("saved book not found")

// ErrBookAlreadySaved is returned on a duplicate save of the same book.
var ErrBookAlreadySaved = errors.New("book already saved")

// SavedBookRepository defines persistence for per-user book bookmarks.
type SavedBookRepository interface {
	// ListByUser returns the user's saved books with the books joined.
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*entity.SavedBook, error)

	// Create persists a new bookmark. Returns ErrBookAlreadySaved when the
	// user already saved this book.
	Create(ctx context.Context, saved *entity.SavedBook) error

	// Delete removes a bookmark. Returns ErrSavedBookNotFound when nothing
	// was deleted.
	Delete(ctx context.Context, userID, customizedBookID uuid.UUID) error
}
