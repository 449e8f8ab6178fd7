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

// customizationRepository implements the domain.CustomizationRepository interface using GORM.
type customizationRepository struct {
	db *gorm.DB
}

// NewCustomizationRepository is the constructor for customizationRepository.
func NewCustomizationRepository(db *gorm.DB) repository.CustomizationRepository {
	return &customizationRepository{db: db}
}

// Create persists a new customization.
func (repo *customizationRepository) Create(ctx context.Context, customization *entity.Customization) error {
	customizationM := fromCustomizationDomain(customization)

	if err := repo.db.WithContext(ctx).Create(customizationM).Error; err != nil {
		if isForeignKeyConstraintViolation(err) {
			return repository.ErrStoryNotFound
		}
		if isNotNullConstraintViolation(err) {
			return domainerrors.ErrValidationFailed.WrapMessage("missing required customization information")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create customization")
	}

	customization.ID = customizationM.ID
	customization.CreatedAt = customizationM.CreatedAt
	customization.UpdatedAt = customizationM.UpdatedAt

	return nil
}

// FindByID retrieves a customization by id regardless of owner, with its
// story joined.
func (repo *customizationRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Customization, error) {
	var customizationM model.CustomizationModel
	err := repo.db.WithContext(ctx).
		Preload("Story").
		Where("id = ?", id).
		First(&customizationM).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrCustomizationNotFound
		}

		return nil, errors.Wrap(err, "failed to find customization by id")
	}

	return toCustomizationDomain(&customizationM), nil
}

// FindOwned retrieves a customization only when it is owned by userID.
// A missing row and a foreign owner are indistinguishable by design.
func (repo *customizationRepository) FindOwned(ctx context.Context, id, userID uuid.UUID) (*entity.Customization, error) {
	var customizationM model.CustomizationModel
	err := repo.db.WithContext(ctx).
		Preload("Story").
		Where("id = ? AND user_id = ?", id, userID).
		First(&customizationM).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrCustomizationNotFound
		}

		return nil, errors.Wrap(err, "failed to find owned customization")
	}

	return toCustomizationDomain(&customizationM), nil
}

// ListByUser returns the user's customizations newest first, stories joined.
func (repo *customizationRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]*entity.Customization, error) {
	var customizationMs []*model.CustomizationModel
	err := repo.db.WithContext(ctx).
		Preload("Story").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&customizationMs).Error
	if err != nil {
		return nil, errors.Wrap(err, "failed to list customizations")
	}

	customizations := make([]*entity.Customization, 0, len(customizationMs))
	for _, customizationM := range customizationMs {
		customizations = append(customizations, toCustomizationDomain(customizationM))
	}

	return customizations, nil
}

// Update modifies an existing customization.
func (repo *customizationRepository) Update(ctx context.Context, customization *entity.Customization) error {
	customizationM := fromCustomizationDomain(customization)

	if err := repo.db.WithContext(ctx).Save(customizationM).Error; err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to update customization")
	}

	customization.UpdatedAt = customizationM.UpdatedAt

	return nil
}

// DeleteOwned removes a customization owned by userID.
func (repo *customizationRepository) DeleteOwned(ctx context.Context, id, userID uuid.UUID) error {
	result := repo.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		Delete(&model.CustomizationModel{})

	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to delete customization")
	}
	if result.RowsAffected == 0 {
		return repository.ErrCustomizationNotFound
	}

	return nil
}

// --- Mapper Functions ---

// toCustomizationDomain converts a GORM CustomizationModel to a domain Customization entity.
func toCustomizationDomain(data *model.CustomizationModel) *entity.Customization {
	if data == nil {
		return nil
	}

	return &entity.Customization{
		ID:           data.ID,
		UserID:       data.UserID,
		StoryID:      data.StoryID,
		Name:         data.ChildName,
		Gender:       entity.ChildGender(data.ChildGender),
		Age:          data.ChildAge,
		CustomFields: data.CustomFields,
		Story:        toStoryDomain(data.Story),
		CreatedAt:    data.CreatedAt,
		UpdatedAt:    data.UpdatedAt,
	}
}

// fromCustomizationDomain converts a domain Customization entity to a GORM CustomizationModel.
func fromCustomizationDomain(data *entity.Customization) *model.CustomizationModel {
	if data == nil {
		return nil
	}

	return &model.CustomizationModel{
		ID:           data.ID,
		UserID:       data.UserID,
		StoryID:      data.StoryID,
		ChildName:    data.Name,
		ChildGender:  string(data.Gender),
		ChildAge:     data.Age,
		CustomFields: data.CustomFields,
		CreatedAt:    data.CreatedAt,
	}
}
