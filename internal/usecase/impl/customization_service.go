package impl

import (
	"context"
	"log/slog"
	"time"

	deliverycontext "storybook/internal/delivery/context"
	"storybook/internal/domain/entity"
	domainerrors "storybook/internal/domain/errors"
	"storybook/internal/domain/repository"
	"storybook/internal/domain/service"
	"storybook/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// customizationService implements the CustomizationUsecase interface.
type customizationService struct {
	txManager         repository.TransactionManager
	customizationRepo repository.CustomizationRepository
	bookRepo          repository.CustomizedBookRepository
	qrcodeService     service.QRCodeService
	logger            *slog.Logger
}

// CustomizationServiceParams holds dependencies for CustomizationService, injected by Fx.
type CustomizationServiceParams struct {
	fx.In

	TxManager         repository.TransactionManager
	CustomizationRepo repository.CustomizationRepository
	BookRepo          repository.CustomizedBookRepository
	QRCodeService     service.QRCodeService
	Logger            *slog.Logger
}

// NewCustomizationService is the constructor for customizationService.
func NewCustomizationService(params CustomizationServiceParams) usecase.CustomizationUsecase {
	return &customizationService{
		txManager:         params.TxManager,
		customizationRepo: params.CustomizationRepo,
		bookRepo:          params.BookRepo,
		qrcodeService:     params.QRCodeService,
		logger:            params.Logger,
	}
}

func (srv *customizationService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// CreateCustomization records a user's personalization of a story.
func (srv *customizationService) CreateCustomization(ctx context.Context, input *usecase.CreateCustomizationInput) (*entity.Customization, error) {
	srv.log(ctx).Info("Creating customization",
		slog.Any("userID", input.UserID),
		slog.Any("storyID", input.StoryID),
	)

	customization := &entity.Customization{
		UserID:       input.UserID,
		StoryID:      input.StoryID,
		Name:         input.ChildName,
		Gender:       entity.ChildGender(input.ChildGender),
		Age:          input.ChildAge,
		CustomFields: input.CustomFields,
	}

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		if _, findErr := repoFactory.StoryRepo().FindByID(ctx, input.StoryID); findErr != nil {
			if errors.Is(findErr, repository.ErrStoryNotFound) {
				return domainerrors.ErrStoryNotFound.WrapMessage("story not found")
			}

			return errors.Wrap(findErr, "failed to load story for customization")
		}

		return repoFactory.CustomizationRepo().Create(ctx, customization)
	})
	if err != nil {
		srv.log(ctx).Warn("Creating customization failed", slog.Any("storyID", input.StoryID), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to execute customization transaction")
	}

	return customization, nil
}

// ListMine returns the user's customizations, newest first.
func (srv *customizationService) ListMine(ctx context.Context, userID uuid.UUID) ([]*entity.Customization, error) {
	customizations, err := srv.customizationRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list customizations")
	}

	return customizations, nil
}

// GetCustomization returns one customization by id. The read is public so
// share links resolve without authentication.
func (srv *customizationService) GetCustomization(ctx context.Context, id uuid.UUID) (*entity.Customization, error) {
	customization, err := srv.customizationRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrCustomizationNotFound) {
			return nil, domainerrors.ErrCustomizationNotFound.WrapMessage("customization not found")
		}

		return nil, errors.Wrap(err, "failed to load customization")
	}

	return customization, nil
}

// UpdateCustomization applies a partial update to an owned customization.
// Empty fields (and a zero age) are skipped rather than cleared.
func (srv *customizationService) UpdateCustomization(ctx context.Context, input *usecase.UpdateCustomizationInput) (*entity.Customization, error) {
	srv.log(ctx).Info("Updating customization", slog.Any("customizationID", input.ID))

	var updated *entity.Customization
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		customizationRepo := repoFactory.CustomizationRepo()

		customization, findErr := customizationRepo.FindOwned(ctx, input.ID, input.UserID)
		if findErr != nil {
			if errors.Is(findErr, repository.ErrCustomizationNotFound) {
				return domainerrors.ErrCustomizationNotFound.WrapMessage("customization not found")
			}

			return errors.Wrap(findErr, "failed to load customization for update")
		}

		if input.ChildName != "" {
			customization.Name = input.ChildName
		}
		if input.ChildGender != "" {
			customization.Gender = entity.ChildGender(input.ChildGender)
		}
		if input.ChildAge != 0 {
			customization.Age = input.ChildAge
		}
		if input.CustomFields != nil {
			customization.CustomFields = input.CustomFields
		}

		if updateErr := customizationRepo.Update(ctx, customization); updateErr != nil {
			return errors.Wrap(updateErr, "failed to update customization")
		}

		updated = customization

		return nil
	})
	if err != nil {
		srv.log(ctx).Warn("Updating customization failed", slog.Any("customizationID", input.ID), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to execute customization update transaction")
	}

	return updated, nil
}

// DeleteCustomization removes an owned customization.
func (srv *customizationService) DeleteCustomization(ctx context.Context, id, userID uuid.UUID) error {
	srv.log(ctx).Info("Deleting customization", slog.Any("customizationID", id))

	if err := srv.customizationRepo.DeleteOwned(ctx, id, userID); err != nil {
		if errors.Is(err, repository.ErrCustomizationNotFound) {
			return domainerrors.ErrCustomizationNotFound.WrapMessage("customization not found")
		}

		return errors.Wrap(err, "failed to delete customization")
	}

	return nil
}

// GenerateBook renders the owned customization into its book. The child's
// name replaces {{name}} first, then each custom field replaces its own
// token; re-rendering overwrites the stored book and refreshes its cover.
func (srv *customizationService) GenerateBook(ctx context.Context, id, userID uuid.UUID) (*entity.CustomizedBook, error) {
	srv.log(ctx).Info("Generating book", slog.Any("customizationID", id))

	var book *entity.CustomizedBook
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		customizationRepo := repoFactory.CustomizationRepo()
		bookRepo := repoFactory.BookRepo()

		customization, findErr := customizationRepo.FindOwned(ctx, id, userID)
		if findErr != nil {
			if errors.Is(findErr, repository.ErrCustomizationNotFound) {
				return domainerrors.ErrCustomizationNotFound.WrapMessage("customization not found")
			}

			return errors.Wrap(findErr, "failed to load customization for rendering")
		}
		if customization.Story == nil {
			return domainerrors.ErrStoryNotFound.WrapMessage("story no longer exists")
		}

		rendered := customization.Story.BaseContent.Render(customization.Replacements())
		coverImage := customization.CoverImagePath(time.Now())

		existing, bookErr := bookRepo.FindByCustomization(ctx, customization.ID)
		switch {
		case bookErr == nil:
			existing.RenderedContent = rendered
			existing.CoverImage = coverImage
			existing.Status = entity.BookStatusFinal
			if updateErr := bookRepo.Update(ctx, existing); updateErr != nil {
				return errors.Wrap(updateErr, "failed to overwrite rendered book")
			}
			book = existing
		case errors.Is(bookErr, repository.ErrBookNotFound):
			book = &entity.CustomizedBook{
				CustomizationID: customization.ID,
				RenderedContent: rendered,
				CoverImage:      coverImage,
				Status:          entity.BookStatusFinal,
			}
			if createErr := bookRepo.Create(ctx, book); createErr != nil {
				return errors.Wrap(createErr, "failed to store rendered book")
			}
		default:
			return errors.Wrap(bookErr, "failed to look up existing book")
		}

		return nil
	})
	if err != nil {
		srv.log(ctx).Warn("Generating book failed", slog.Any("customizationID", id), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to execute book generation transaction")
	}

	srv.log(ctx).Debug("Book generated", slog.Any("bookID", book.ID))

	return book, nil
}

// GetBook returns a rendered book by id. Public, for share links.
func (srv *customizationService) GetBook(ctx context.Context, bookID uuid.UUID) (*entity.CustomizedBook, error) {
	book, err := srv.bookRepo.FindByID(ctx, bookID)
	if err != nil {
		if errors.Is(err, repository.ErrBookNotFound) {
			return nil, domainerrors.ErrBookNotFound.WrapMessage("book not found")
		}

		return nil, errors.Wrap(err, "failed to load book")
	}

	return book, nil
}

// GetBookQRCode returns a PNG QR code sharing the rendered book of an owned
// customization. The customization must have been rendered at least once.
func (srv *customizationService) GetBookQRCode(ctx context.Context, customizationID, userID uuid.UUID) ([]byte, error) {
	if _, err := srv.customizationRepo.FindOwned(ctx, customizationID, userID); err != nil {
		if errors.Is(err, repository.ErrCustomizationNotFound) {
			return nil, domainerrors.ErrCustomizationNotFound.WrapMessage("customization not found")
		}

		return nil, errors.Wrap(err, "failed to load customization for QR code")
	}

	book, err := srv.bookRepo.FindByCustomization(ctx, customizationID)
	if err != nil {
		if errors.Is(err, repository.ErrBookNotFound) {
			return nil, domainerrors.ErrBookNotFound.WrapMessage("book has not been generated yet")
		}

		return nil, errors.Wrap(err, "failed to load book for QR code")
	}

	png, err := srv.qrcodeService.GenerateBookShareQR(book.ID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to generate book QR code")
	}

	return png, nil
}
