// Package impl contains the implementation of the application's business logic.
package impl

import (
	"context"
	"log/slog"

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

// userService implements the UserUsecase interface.
type userService struct {
	txManager     repository.TransactionManager
	userRepo      repository.UserRepository
	bookRepo      repository.CustomizedBookRepository
	savedBookRepo repository.SavedBookRepository
	hasher        service.PasswordHasher
	tokenService  service.TokenService
	logger        *slog.Logger
}

// UserServiceParams holds dependencies for UserService, injected by Fx.
type UserServiceParams struct {
	fx.In

	TxManager     repository.TransactionManager
	UserRepo      repository.UserRepository
	BookRepo      repository.CustomizedBookRepository
	SavedBookRepo repository.SavedBookRepository
	Hasher        service.PasswordHasher
	TokenService  service.TokenService
	Logger        *slog.Logger
}

// NewUserService is the constructor for userService. It receives all dependencies as interfaces.
func NewUserService(params UserServiceParams) usecase.UserUsecase {
	return &userService{
		txManager:     params.TxManager,
		userRepo:      params.UserRepo,
		bookRepo:      params.BookRepo,
		savedBookRepo: params.SavedBookRepo,
		hasher:        params.Hasher,
		tokenService:  params.TokenService,
		logger:        params.Logger,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *userService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// Register creates a new account and signs the user in.
func (srv *userService) Register(ctx context.Context, input *usecase.RegisterInput) (*usecase.AuthOutput, error) {
	srv.log(ctx).Info("Starting registration", slog.String("email", input.Email))

	// Hash outside the transaction: bcrypt is CPU-bound.
	hashedPassword, err := srv.hasher.Hash(input.Password)
	if err != nil {
		srv.log(ctx).Error("Failed to hash password during registration", slog.Any("error", err))

		return nil, domainerrors.ErrPasswordHashFailed.WrapMessage("failed to hash password during registration")
	}

	newUser := &entity.User{
		Email:        input.Email,
		FirstName:    input.FirstName,
		LastName:     input.LastName,
		PasswordHash: hashedPassword,
	}

	err = srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		userRepo := repoFactory.UserRepo()

		_, findErr := userRepo.FindByEmail(ctx, input.Email)
		if findErr == nil {
			return domainerrors.ErrEmailTaken.WrapMessage("email already registered")
		}
		if !errors.Is(findErr, repository.ErrUserNotFound) {
			return errors.Wrap(findErr, "failed to check existing email")
		}

		return userRepo.Create(ctx, newUser)
	})
	if err != nil {
		srv.log(ctx).Warn("Registration failed", slog.String("email", input.Email), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to execute registration transaction")
	}

	token, err := srv.tokenService.GenerateToken(newUser.ID)
	if err != nil {
		srv.log(ctx).Error("Failed to generate token after registration", slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to generate token")
	}

	srv.log(ctx).Debug("Registration completed", slog.Any("userID", newUser.ID))

	return &usecase.AuthOutput{Token: token, User: newUser}, nil
}

// Login verifies credentials and issues a fresh access token.
func (srv *userService) Login(ctx context.Context, input *usecase.LoginInput) (*usecase.AuthOutput, error) {
	srv.log(ctx).Debug("Starting user login", slog.String("email", input.Email))

	user, err := srv.userRepo.FindByEmail(ctx, input.Email)
	if err != nil {
		srv.log(ctx).Warn("Login failed", slog.String("email", input.Email), slog.Any("error", err))

		// A missing account and a wrong password are indistinguishable.
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, domainerrors.ErrInvalidCredentials.WrapMessage("login failed")
		}

		return nil, errors.Wrap(err, "failed to load user for login")
	}

	// Check password outside transaction (bcrypt is CPU-bound).
	if !srv.hasher.Check(input.Password, user.PasswordHash) {
		srv.log(ctx).Warn("Login failed", slog.String("email", input.Email), slog.Any("error", domainerrors.ErrInvalidCredentials))

		return nil, domainerrors.ErrInvalidCredentials.WrapMessage("login failed")
	}

	token, err := srv.tokenService.GenerateToken(user.ID)
	if err != nil {
		srv.log(ctx).Warn("Login failed", slog.String("email", input.Email), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to generate token")
	}

	srv.log(ctx).Debug("User logged in successfully", slog.Any("userID", user.ID))

	return &usecase.AuthOutput{Token: token, User: user}, nil
}

// GetProfile returns the account behind an authenticated request.
func (srv *userService) GetProfile(ctx context.Context, userID uuid.UUID) (*entity.User, error) {
	user, err := srv.userRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, domainerrors.ErrUserNotFound.WrapMessage("profile not found")
		}

		return nil, errors.Wrap(err, "failed to load profile")
	}

	return user, nil
}

// UpdateProfile applies a partial update to the account. Empty fields are
// skipped rather than cleared.
func (srv *userService) UpdateProfile(ctx context.Context, input *usecase.UpdateProfileInput) (*entity.User, error) {
	srv.log(ctx).Info("Updating profile", slog.Any("userID", input.UserID))

	var updatedUser *entity.User
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		userRepo := repoFactory.UserRepo()

		user, findErr := userRepo.FindByID(ctx, input.UserID)
		if findErr != nil {
			if errors.Is(findErr, repository.ErrUserNotFound) {
				return domainerrors.ErrUserNotFound.WrapMessage("profile not found")
			}

			return errors.Wrap(findErr, "failed to load user for update")
		}

		if input.FirstName != "" {
			user.FirstName = input.FirstName
		}
		if input.LastName != "" {
			user.LastName = input.LastName
		}
		if input.Email != "" {
			user.Email = input.Email
		}

		if updateErr := userRepo.Update(ctx, user); updateErr != nil {
			return errors.Wrap(updateErr, "failed to update profile")
		}

		updatedUser = user

		return nil
	})
	if err != nil {
		srv.log(ctx).Warn("Profile update failed", slog.Any("userID", input.UserID), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to execute profile update transaction")
	}

	return updatedUser, nil
}

// ListSavedBooks returns the user's bookmarked books, newest first.
func (srv *userService) ListSavedBooks(ctx context.Context, userID uuid.UUID) ([]*entity.SavedBook, error) {
	saved, err := srv.savedBookRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list saved books")
	}

	return saved, nil
}

// SaveBook bookmarks a customized book for the user.
func (srv *userService) SaveBook(ctx context.Context, userID, bookID uuid.UUID) (*entity.SavedBook, error) {
	srv.log(ctx).Info("Saving book", slog.Any("userID", userID), slog.Any("bookID", bookID))

	saved := &entity.SavedBook{UserID: userID, CustomizedBookID: bookID}

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		if _, findErr := repoFactory.BookRepo().FindByID(ctx, bookID); findErr != nil {
			if errors.Is(findErr, repository.ErrBookNotFound) {
				return domainerrors.ErrBookNotFound.WrapMessage("book not found")
			}

			return errors.Wrap(findErr, "failed to load book")
		}

		if createErr := repoFactory.SavedBookRepo().Create(ctx, saved); createErr != nil {
			if errors.Is(createErr, repository.ErrBookAlreadySaved) {
				return domainerrors.ErrBookAlreadySaved.WrapMessage("book already saved")
			}

			return errors.Wrap(createErr, "failed to save book")
		}

		return nil
	})
	if err != nil {
		srv.log(ctx).Warn("Saving book failed", slog.Any("userID", userID), slog.Any("bookID", bookID), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to execute save book transaction")
	}

	return saved, nil
}

// RemoveSavedBook deletes a bookmark.
func (srv *userService) RemoveSavedBook(ctx context.Context, userID, bookID uuid.UUID) error {
	if err := srv.savedBookRepo.Delete(ctx, userID, bookID); err != nil {
		if errors.Is(err, repository.ErrSavedBookNotFound) {
			return domainerrors.ErrSavedBookNotFound.WrapMessage("saved book not found")
		}

		return errors.Wrap(err, "failed to remove saved book")
	}

	return nil
}
