package impl

import (
	"context"
	"log/slog"

	deliverycontext "storybook/internal/delivery/context"
	"storybook/internal/domain/entity"
	domainerrors "storybook/internal/domain/errors"
	"storybook/internal/domain/repository"
	"storybook/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// storyService implements the StoryUsecase interface.
type storyService struct {
	txManager repository.TransactionManager
	storyRepo repository.StoryRepository
	logger    *slog.Logger
}

// StoryServiceParams holds dependencies for StoryService, injected by Fx.
type StoryServiceParams struct {
	fx.In

	TxManager repository.TransactionManager
	StoryRepo repository.StoryRepository
	Logger    *slog.Logger
}

// NewStoryService is the constructor for storyService.
func NewStoryService(params StoryServiceParams) usecase.StoryUsecase {
	return &storyService{
		txManager: params.TxManager,
		storyRepo: params.StoryRepo,
		logger:    params.Logger,
	}
}

func (srv *storyService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// ListStories returns the catalog filtered by audience.
func (srv *storyService) ListStories(ctx context.Context, filter entity.StoryFilter) ([]*entity.Story, error) {
	stories, err := srv.storyRepo.Filter(ctx, filter)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list stories")
	}

	return stories, nil
}

// GetStory returns one story with its elements.
func (srv *storyService) GetStory(ctx context.Context, id uuid.UUID) (*entity.Story, error) {
	story, err := srv.storyRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrStoryNotFound) {
			return nil, domainerrors.ErrStoryNotFound.WrapMessage("story not found")
		}

		return nil, errors.Wrap(err, "failed to load story")
	}

	return story, nil
}

// CreateStory adds a story to the catalog.
func (srv *storyService) CreateStory(ctx context.Context, input *usecase.CreateStoryInput) (*entity.Story, error) {
	srv.log(ctx).Info("Creating story", slog.String("title", input.Title))

	gender := entity.AudienceGender(input.Gender)
	if gender == "" {
		gender = entity.AudienceNeutral
	}

	elements := make([]*entity.StoryElement, 0, len(input.Elements))
	for _, element := range input.Elements {
		elements = append(elements, &entity.StoryElement{
			ElementType:    element.ElementType,
			Content:        element.Content,
			Position:       element.Position,
			IsCustomizable: element.IsCustomizable,
			Options:        element.Options,
		})
	}

	story := &entity.Story{
		Title:       input.Title,
		Description: input.Description,
		BaseContent: input.BaseContent,
		CoverImage:  input.CoverImage,
		MinAge:      input.MinAge,
		MaxAge:      input.MaxAge,
		Gender:      gender,
		Elements:    elements,
	}

	if err := srv.storyRepo.Create(ctx, story); err != nil {
		srv.log(ctx).Warn("Creating story failed", slog.String("title", input.Title), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to create story")
	}

	return story, nil
}

// UpdateStory applies a partial update to a story. Zero-valued fields are
// skipped rather than cleared.
func (srv *storyService) UpdateStory(ctx context.Context, input *usecase.UpdateStoryInput) (*entity.Story, error) {
	srv.log(ctx).Info("Updating story", slog.Any("storyID", input.ID))

	var updatedStory *entity.Story
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		storyRepo := repoFactory.StoryRepo()

		story, findErr := storyRepo.FindByID(ctx, input.ID)
		if findErr != nil {
			if errors.Is(findErr, repository.ErrStoryNotFound) {
				return domainerrors.ErrStoryNotFound.WrapMessage("story not found")
			}

			return errors.Wrap(findErr, "failed to load story for update")
		}

		if input.Title != "" {
			story.Title = input.Title
		}
		if input.Description != "" {
			story.Description = input.Description
		}
		if input.BaseContent != nil {
			story.BaseContent = *input.BaseContent
		}
		if input.CoverImage != "" {
			story.CoverImage = input.CoverImage
		}
		if input.MinAge != nil {
			story.MinAge = *input.MinAge
		}
		if input.MaxAge != nil {
			story.MaxAge = *input.MaxAge
		}
		if input.Gender != "" {
			story.Gender = entity.AudienceGender(input.Gender)
		}

		if updateErr := storyRepo.Update(ctx, story); updateErr != nil {
			return errors.Wrap(updateErr, "failed to update story")
		}

		updatedStory = story

		return nil
	})
	if err != nil {
		srv.log(ctx).Warn("Updating story failed", slog.Any("storyID", input.ID), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to execute story update transaction")
	}

	return updatedStory, nil
}

// DeleteStory removes a story from the catalog.
func (srv *storyService) DeleteStory(ctx context.Context, id uuid.UUID) error {
	srv.log(ctx).Info("Deleting story", slog.Any("storyID", id))

	if err := srv.storyRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrStoryNotFound) {
			return domainerrors.ErrStoryNotFound.WrapMessage("story not found")
		}

		return errors.Wrap(err, "failed to delete story")
	}

	return nil
}

// ListElements returns a story's elements in display order.
func (srv *storyService) ListElements(ctx context.Context, storyID uuid.UUID) ([]*entity.StoryElement, error) {
	// Resolve the story first so a bad id is a 404, not an empty list.
	if _, err := srv.storyRepo.FindByID(ctx, storyID); err != nil {
		if errors.Is(err, repository.ErrStoryNotFound) {
			return nil, domainerrors.ErrStoryNotFound.WrapMessage("story not found")
		}

		return nil, errors.Wrap(err, "failed to load story")
	}

	elements, err := srv.storyRepo.ListElements(ctx, storyID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list story elements")
	}

	return elements, nil
}

// ListOptions returns the selectable choices for an element type.
func (srv *storyService) ListOptions(ctx context.Context, elementType string) ([]*entity.CustomizationOption, error) {
	options, err := srv.storyRepo.ListOptions(ctx, elementType)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list customization options")
	}

	return options, nil
}
