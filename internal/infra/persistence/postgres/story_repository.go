package postgres

import (
	"context"

	"storybook/internal/domain/entity"
	domainerrors "storybook/internal/domain/errors"
	"storybook/internal/domain/repository"
	"storybook/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// storyRepository implements the domain.StoryRepository interface using GORM.
type storyRepository struct {
	db *gorm.DB
}

// NewStoryRepository is the constructor for storyRepository.
func NewStoryRepository(db *gorm.DB) repository.StoryRepository {
	return &storyRepository{db: db}
}

// List returns every story, newest first.
func (repo *storyRepository) List(ctx context.Context) ([]*entity.Story, error) {
	return repo.Filter(ctx, entity.StoryFilter{})
}

// Filter returns the stories matching the filter. The SQL clauses mirror
// entity.StoryFilter.Matches: neutral stories satisfy any gender, and age
// bounds are an interval-overlap test.
func (repo *storyRepository) Filter(ctx context.Context, filter entity.StoryFilter) ([]*entity.Story, error) {
	query := repo.db.WithContext(ctx).Model(&model.StoryModel{})

	if filter.Gender != "" && filter.Gender != "all" {
		query = query.Where("(gender = ? OR gender = ?)", filter.Gender, entity.AudienceNeutral)
	}

	switch {
	case filter.MinAge != nil && filter.MaxAge != nil:
		query = query.Where("age_range_min <= ? AND age_range_max >= ?", *filter.MaxAge, *filter.MinAge)
	case filter.MinAge != nil:
		query = query.Where("age_range_max >= ?", *filter.MinAge)
	case filter.MaxAge != nil:
		query = query.Where("age_range_min <= ?", *filter.MaxAge)
	}

	var storyMs []*model.StoryModel
	if err := query.Order("created_at DESC").Find(&storyMs).Error; err != nil {
		return nil, errors.Wrap(err, "failed to filter stories")
	}

	stories := make([]*entity.Story, 0, len(storyMs))
	for _, storyM := range storyMs {
		stories = append(stories, toStoryDomain(storyM))
	}

	return stories, nil
}

// FindByID retrieves a single story by its unique ID, with its elements
// preloaded in display order.
func (repo *storyRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Story, error) {
	var storyM model.StoryModel
	err := repo.db.WithContext(ctx).
		Preload("Elements", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC")
		}).
		Where("id = ?", id).
		First(&storyM).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrStoryNotFound
		}

		return nil, errors.Wrap(err, "failed to find story by id")
	}

	return toStoryDomain(&storyM), nil
}

// Create persists a new story together with any provided elements.
func (repo *storyRepository) Create(ctx context.Context, story *entity.Story) error {
	storyM := fromStoryDomain(story)

	if err := repo.db.WithContext(ctx).Create(storyM).Error; err != nil {
		if isNotNullConstraintViolation(err) {
			return domainerrors.ErrValidationFailed.WrapMessage("missing required story information")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create story")
	}

	story.ID = storyM.ID
	story.CreatedAt = storyM.CreatedAt
	story.UpdatedAt = storyM.UpdatedAt
	for i, elementM := range storyM.Elements {
		story.Elements[i].ID = elementM.ID
		story.Elements[i].StoryID = elementM.StoryID
	}

	return nil
}

// Update modifies an existing story.
func (repo *storyRepository) Update(ctx context.Context, story *entity.Story) error {
	storyM := fromStoryDomain(story)
	// Elements are managed through their own writes, never resaved here.
	storyM.Elements = nil

	if err := repo.db.WithContext(ctx).Save(storyM).Error; err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to update story")
	}

	story.UpdatedAt = storyM.UpdatedAt

	return nil
}

// Delete removes a story. Returns ErrStoryNotFound when nothing was deleted.
func (repo *storyRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := repo.db.WithContext(ctx).
		Where("id = ?", id).
		Delete(&model.StoryModel{})

	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to delete story")
	}
	if result.RowsAffected == 0 {
		return repository.ErrStoryNotFound
	}

	return nil
}

// ListElements returns a story's elements sorted ascending by position.
func (repo *storyRepository) ListElements(ctx context.Context, storyID uuid.UUID) ([]*entity.StoryElement, error) {
	var elementMs []*model.StoryElementModel
	err := repo.db.WithContext(ctx).
		Where("story_id = ?", storyID).
		Order("position ASC").
		Find(&elementMs).Error
	if err != nil {
		return nil, errors.Wrap(err, "failed to list story elements")
	}

	elements := make([]*entity.StoryElement, 0, len(elementMs))
	for _, elementM := range elementMs {
		elements = append(elements, toStoryElementDomain(elementM))
	}

	return elements, nil
}

// ListOptions returns the customization options for an element type,
// sorted ascending by display order.
func (repo *storyRepository) ListOptions(ctx context.Context, elementType string) ([]*entity.CustomizationOption, error) {
	var optionMs []*model.CustomizationOptionModel
	err := repo.db.WithContext(ctx).
		Where("element_type = ?", elementType).
		Order("display_order ASC").
		Find(&optionMs).Error
	if err != nil {
		return nil, errors.Wrap(err, "failed to list customization options")
	}

	options := make([]*entity.CustomizationOption, 0, len(optionMs))
	for _, optionM := range optionMs {
		options = append(options, &entity.CustomizationOption{
			ID:           optionM.ID,
			ElementType:  optionM.ElementType,
			Name:         optionM.Name,
			Value:        optionM.Value,
			ImagePath:    optionM.ImagePath,
			DisplayOrder: optionM.DisplayOrder,
			CreatedAt:    optionM.CreatedAt,
			UpdatedAt:    optionM.UpdatedAt,
		})
	}

	return options, nil
}

// --- Mapper Functions ---

// toStoryDomain converts a GORM StoryModel to a domain Story entity.
func toStoryDomain(data *model.StoryModel) *entity.Story {
	if data == nil {
		return nil
	}

	var elements []*entity.StoryElement
	if len(data.Elements) > 0 {
		elements = make([]*entity.StoryElement, 0, len(data.Elements))
		for i := range data.Elements {
			elements = append(elements, toStoryElementDomain(&data.Elements[i]))
		}
	}

	return &entity.Story{
		ID:          data.ID,
		Title:       data.Title,
		Description: data.Description,
		BaseContent: data.BaseContent,
		CoverImage:  data.CoverImage,
		MinAge:      data.AgeRangeMin,
		MaxAge:      data.AgeRangeMax,
		Gender:      entity.AudienceGender(data.Gender),
		Elements:    elements,
		CreatedAt:   data.CreatedAt,
		UpdatedAt:   data.UpdatedAt,
	}
}

// fromStoryDomain converts a domain Story entity to a GORM StoryModel.
func fromStoryDomain(data *entity.Story) *model.StoryModel {
	if data == nil {
		return nil
	}

	elements := make([]model.StoryElementModel, 0, len(data.Elements))
	for _, element := range data.Elements {
		elements = append(elements, model.StoryElementModel{
			ID:             element.ID,
			StoryID:        element.StoryID,
			ElementType:    element.ElementType,
			Content:        element.Content,
			Position:       element.Position,
			IsCustomizable: element.IsCustomizable,
			Options:        element.Options,
		})
	}

	return &model.StoryModel{
		ID:          data.ID,
		Title:       data.Title,
		Description: data.Description,
		BaseContent: data.BaseContent,
		CoverImage:  data.CoverImage,
		AgeRangeMin: data.MinAge,
		AgeRangeMax: data.MaxAge,
		Gender:      string(data.Gender),
		Elements:    elements,
		CreatedAt:   data.CreatedAt,
	}
}

// toStoryElementDomain converts a GORM StoryElementModel to a domain StoryElement entity.
func toStoryElementDomain(data *model.StoryElementModel) *entity.StoryElement {
	if data == nil {
		return nil
	}

	return &entity.StoryElement{
		ID:             data.ID,
		StoryID:        data.StoryID,
		ElementType:    data.ElementType,
		Content:        data.Content,
		Position:       data.Position,
		IsCustomizable: data.IsCustomizable,
		Options:        data.Options,
		CreatedAt:      data.CreatedAt,
		UpdatedAt:      data.UpdatedAt,
	}
}
