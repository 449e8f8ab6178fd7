package usecase

import (
	"context"

	"storybook/internal/domain/entity"

	"github.com/google/uuid"
)

// --- Input DTOs ---

// StoryElementInput defines one element attached to a story on creation.
type StoryElementInput struct {
	ElementType    string
	Content        string
	Position       int
	IsCustomizable bool
	Options        map[string]any
}

// CreateStoryInput defines the data required to add a story to the catalog.
type CreateStoryInput struct {
	Title       string
	Description string
	BaseContent entity.BookContent
	CoverImage  string
	MinAge      int
	MaxAge      int
	Gender      string
	Elements    []StoryElementInput
}

// UpdateStoryInput defines a partial story update. Zero-valued fields are
// left unchanged; age bounds use pointers so zero remains expressible.
type UpdateStoryInput struct {
	ID          uuid.UUID
	Title       string
	Description string
	BaseContent *entity.BookContent
	CoverImage  string
	MinAge      *int
	MaxAge      *int
	Gender      string
}

// StoryUsecase defines the interface for catalog browsing and curation.
type StoryUsecase interface {
	// ListStories returns the catalog filtered by audience. An empty filter
	// returns everything.
	ListStories(ctx context.Context, filter entity.StoryFilter) ([]*entity.Story, error)

	// GetStory returns one story with its elements.
	GetStory(ctx context.Context, id uuid.UUID) (*entity.Story, error)

	// CreateStory adds a story to the catalog.
	CreateStory(ctx context.Context, input *CreateStoryInput) (*entity.Story, error)

	// UpdateStory applies a partial update to a story.
	UpdateStory(ctx context.Context, input *UpdateStoryInput) (*entity.Story, error)

	// DeleteStory removes a story from the catalog.
	DeleteStory(ctx context.Context, id uuid.UUID) error

	// ListElements returns a story's elements in display order.
	ListElements(ctx context.Context, storyID uuid.UUID) ([]*entity.StoryElement, error)

	// ListOptions returns the selectable choices for an element type.
	ListOptions(ctx context.Context, elementType string) ([]*entity.CustomizationOption, error)
}
