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

// customizedBookRepository implements the domain.CustomizedBookRepository interface using GORM.
type customizedBookRepository struct {
	db *gorm.DB
}

// NewCustomizedBookRepository is the constructor for customizedBookRepository.
func NewCustomizedBookRepository(db *gorm.DB) repository.CustomizedBookRepository {
	return &customizedBookRepository{db: db}
}

// FindByID retrieves a book by its unique ID.
func (repo *customizedBookRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.CustomizedBook, error) {
	var bookM model.CustomizedBookModel
	err := repo.db.WithContext(ctx).
		Where("id = ?", id).
		First(&bookM).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrBookNotFound
		}

		return nil, errors.Wrap(err, "failed to find customized book by id")
	}

	return toBookDomain(&bookM), nil
}

// FindByCustomization retrieves the book rendered from a customization.
func (repo *customizedBookRepository) FindByCustomization(ctx context.Context, customizationID uuid.UUID) (*entity.CustomizedBook, error) {
	var bookM model.CustomizedBookModel
	err := repo.db.WithContext(ctx).
		Where("customization_id = ?", customizationID).
		First(&bookM).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrBookNotFound
		}

		return nil, errors.Wrap(err, "failed to find customized book by customization")
	}

	return toBookDomain(&bookM), nil
}

// Create persists a newly rendered book.
func (repo *customizedBookRepository) Create(ctx context.Context, book *entity.CustomizedBook) error {
	bookM := fromBookDomain(book)

	if err := repo.db.WithContext(ctx).Create(bookM).Error; err != nil {
		if isForeignKeyConstraintViolation(err) {
			return repository.ErrCustomizationNotFound
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create customized book")
	}

	book.ID = bookM.ID
	book.CreatedAt = bookM.CreatedAt
	book.UpdatedAt = bookM.UpdatedAt

	return nil
}

// Update overwrites an existing book after a re-render.
func (repo *customizedBookRepository) Update(ctx context.Context, book *entity.CustomizedBook) error {
	bookM := fromBookDomain(book)

	if err := repo.db.WithContext(ctx).Save(bookM).Error; err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to update customized book")
	}

	book.UpdatedAt = bookM.UpdatedAt

	return nil
}

// --- Mapper Functions ---

// toBookDomain converts a GORM CustomizedBookModel to a domain CustomizedBook entity.
func toBookDomain(data *model.CustomizedBookModel) *entity.CustomizedBook {
	if data == nil {
		return nil
	}

	return &entity.CustomizedBook{
		ID:              data.ID,
		CustomizationID: data.CustomizationID,
		RenderedContent: data.RenderedContent,
		CoverImage:      data.CoverImage,
		Status:          entity.BookStatus(data.Status),
		CreatedAt:       data.CreatedAt,
		UpdatedAt:       data.UpdatedAt,
	}
}

// fromBookDomain converts a domain CustomizedBook entity to a GORM CustomizedBookModel.
func fromBookDomain(data *entity.CustomizedBook) *model.CustomizedBookModel {
	if data == nil {
		return nil
	}

	return &model.CustomizedBookModel{
		ID:              data.ID,
		CustomizationID: data.CustomizationID,
		RenderedContent: data.RenderedContent,
		CoverImage:      data.CoverImage,
		Status:          string(data.Status),
		CreatedAt:       data.CreatedAt,
	}
}
