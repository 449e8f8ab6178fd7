package repository

import (
	"context"
	"errors"

	"storybook/internal/domain/entity"

	"github.com/google/uuid"
)

// ErrStoryNotFound is returned when a story id does not resolve.
var ErrStoryNotFound = errors.New("story not found")

// StoryRepository defines catalog persistence: story templates, their
// elements, and the selectable customization options.
type StoryRepository interface {
	// List returns every story, newest first.
	List(ctx context.Context) ([]*entity.Story, error)

	// Filter returns the stories matching the filter predicate
	// (see entity.StoryFilter.Matches for the reference semantics).
	Filter(ctx context.Context, filter entity.StoryFilter) ([]*entity.Story, error)

	// FindByID retrieves a single story by its unique ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Story, error)

	// Create persists a new story together with any provided elements.
	Create(ctx context.Context, story *entity.Story) error

	// Update modifies an existing story.
	Update(ctx context.Context, story *entity.Story) error

	// Delete removes a story. Returns ErrStoryNotFound when nothing was deleted.
	Delete(ctx context.Context, id uuid.UUID) error

	// ListElements returns a story's elements sorted ascending by position.
	ListElements(ctx context.Context, storyID uuid.UUID) ([]*entity.StoryElement, error)

	// ListOptions returns the customization options for an element type,
	// sorted ascending by display order.
	ListOptions(ctx context.Context, elementType string) ([]*entity.CustomizationOption, error)
}
