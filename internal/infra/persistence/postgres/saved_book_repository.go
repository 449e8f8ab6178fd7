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

// savedBookRepository implements the domain.SavedBookRepository interface using GORM.
type savedBookRepository struct {
	db *gorm.DB
}

// NewSavedBookRepository is the constructor for savedBookRepository.
func NewSavedBookRepository(db *gorm.DB) repository.SavedBookRepository {
	return &savedBookRepository{db: db}
}

// ListByUser returns the user's saved books newest first, books joined.
func (repo *savedBookRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]*entity.SavedBook, error) {
	var savedMs []*model.SavedBookModel
	err := repo.db.WithContext(ctx).
		Preload("Book").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&savedMs).Error
	if err != nil {
		return nil, errors.Wrap(err, "failed to list saved books")
	}

	saved := make([]*entity.SavedBook, 0, len(savedMs))
	for _, savedM := range savedMs {
		saved = append(saved, toSavedBookDomain(savedM))
	}

	return saved, nil
}

// Create persists a new bookmark. The composite unique index surfaces
// duplicate saves as ErrBookAlreadySaved.
func (repo *savedBookRepository) Create(ctx context.Context, saved *entity.SavedBook) error {
	savedM := fromSavedBookDomain(saved)

	if err := repo.db.WithContext(ctx).Create(savedM).Error; err != nil {
		if isUniqueConstraintViolation(err) {
			return repository.ErrBookAlreadySaved
		}
		if isForeignKeyConstraintViolation(err) {
			return repository.ErrBookNotFound
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to save book")
	}

	saved.ID = savedM.ID
	saved.CreatedAt = savedM.CreatedAt

	return nil
}

// Delete removes a bookmark.
func (repo *savedBookRepository) Delete(ctx context.Context, userID, customizedBookID uuid.UUID) error {
	result := repo.db.WithContext(ctx).
		Where("user_id = ? AND customized_book_id = ?", userID, customizedBookID).
		Delete(&model.SavedBookModel{})

	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to delete saved book")
	}
	if result.RowsAffected == 0 {
		return repository.ErrSavedBookNotFound
	}

	return nil
}

// --- Mapper Functions ---

// toSavedBookDomain converts a GORM SavedBookModel to a domain SavedBook entity.
func toSavedBookDomain(data *model.SavedBookModel) *entity.SavedBook {
	if data == nil {
		return nil
	}

	return &entity.SavedBook{
		ID:               data.ID,
		UserID:           data.UserID,
		CustomizedBookID: data.CustomizedBookID,
		Book:             toBookDomain(data.Book),
		CreatedAt:        data.CreatedAt,
	}
}

// fromSavedBookDomain converts a domain SavedBook entity to a GORM SavedBookModel.
func fromSavedBookDomain(data *entity.SavedBook) *model.SavedBookModel {
	if data == nil {
		return nil
	}

	return &model.SavedBookModel{
		ID:               data.ID,
		UserID:           data.UserID,
		CustomizedBookID: data.CustomizedBookID,
	}
}
