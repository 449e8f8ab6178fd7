package impl

import (
	"context"
	"testing"

	"storybook/internal/domain/entity"
	domainerrors "storybook/internal/domain/errors"
	"storybook/internal/domain/repository"
	"storybook/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// userServiceFixtures holds all test dependencies for user service tests.
type userServiceFixtures struct {
	service       usecase.UserUsecase
	userRepo      *mockUserRepository
	bookRepo      *mockBookRepository
	savedBookRepo *mockSavedBookRepository
	hasher        *mockPasswordHasher
	tokenService  *mockTokenService
}

func createTestUserService(t *testing.T) userServiceFixtures {
	t.Helper()

	userRepo := new(mockUserRepository)
	bookRepo := new(mockBookRepository)
	savedBookRepo := new(mockSavedBookRepository)
	hasher := new(mockPasswordHasher)
	tokenService := new(mockTokenService)

	factory := &stubRepositoryFactory{
		users:      userRepo,
		books:      bookRepo,
		savedBooks: savedBookRepo,
	}

	service := NewUserService(UserServiceParams{
		TxManager:     &stubTransactionManager{factory: factory},
		UserRepo:      userRepo,
		BookRepo:      bookRepo,
		SavedBookRepo: savedBookRepo,
		Hasher:        hasher,
		TokenService:  tokenService,
		Logger:        newDiscardLogger(),
	})

	return userServiceFixtures{
		service:       service,
		userRepo:      userRepo,
		bookRepo:      bookRepo,
		savedBookRepo: savedBookRepo,
		hasher:        hasher,
		tokenService:  tokenService,
	}
}

func TestUserService_Register_Success(t *testing.T) {
	fixtures := createTestUserService(t)
	ctx := context.Background()

	input := &usecase.RegisterInput{
		Email:     "mia@example.com",
		Password:  "Password123!",
		FirstName: "Mia",
		LastName:  "Chen",
	}

	fixtures.hasher.On("Hash", input.Password).Return("hashed_password", nil)
	fixtures.userRepo.On("FindByEmail", ctx, input.Email).Return(nil, repository.ErrUserNotFound)
	fixtures.userRepo.On("Create", ctx, mock.AnythingOfType("*entity.User")).
		Run(func(args mock.Arguments) {
			args.Get(1).(*entity.User).ID = uuid.New()
		}).
		Return(nil)
	fixtures.tokenService.On("GenerateToken", mock.AnythingOfType("uuid.UUID")).Return("signed-token", nil)

	output, err := fixtures.service.Register(ctx, input)

	require.NoError(t, err)
	assert.Equal(t, "signed-token", output.Token)
	assert.Equal(t, input.Email, output.User.Email)
	assert.Equal(t, "hashed_password", output.User.PasswordHash)
	fixtures.userRepo.AssertExpectations(t)
}

func TestUserService_Register_EmailTaken(t *testing.T) {
	fixtures := createTestUserService(t)
	ctx := context.Background()

	input := &usecase.RegisterInput{Email: "taken@example.com", Password: "Password123!"}

	fixtures.hasher.On("Hash", input.Password).Return("hashed_password", nil)
	fixtures.userRepo.On("FindByEmail", ctx, input.Email).Return(&entity.User{Email: input.Email}, nil)

	output, err := fixtures.service.Register(ctx, input)

	assert.Nil(t, output)
	assert.True(t, errors.Is(err, domainerrors.ErrEmailTaken))
	fixtures.userRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestUserService_Login_Success(t *testing.T) {
	fixtures := createTestUserService(t)
	ctx := context.Background()

	user := &entity.User{ID: uuid.New(), Email: "mia@example.com", PasswordHash: "stored-hash"}

	fixtures.userRepo.On("FindByEmail", ctx, user.Email).Return(user, nil)
	fixtures.hasher.On("Check", "Password123!", "stored-hash").Return(true)
	fixtures.tokenService.On("GenerateToken", user.ID).Return("signed-token", nil)

	output, err := fixtures.service.Login(ctx, &usecase.LoginInput{Email: user.Email, Password: "Password123!"})

	require.NoError(t, err)
	assert.Equal(t, "signed-token", output.Token)
	assert.Equal(t, user.ID, output.User.ID)
}

func TestUserService_Login_WrongPassword(t *testing.T) {
	fixtures := createTestUserService(t)
	ctx := context.Background()

	user := &entity.User{ID: uuid.New(), Email: "mia@example.com", PasswordHash: "stored-hash"}

	fixtures.userRepo.On("FindByEmail", ctx, user.Email).Return(user, nil)
	fixtures.hasher.On("Check", "wrong", "stored-hash").Return(false)

	output, err := fixtures.service.Login(ctx, &usecase.LoginInput{Email: user.Email, Password: "wrong"})

	assert.Nil(t, output)
	assert.True(t, errors.Is(err, domainerrors.ErrInvalidCredentials))
}

func TestUserService_Login_UnknownEmailIsIndistinguishable(t *testing.T) {
	fixtures := createTestUserService(t)
	ctx := context.Background()

	fixtures.userRepo.On("FindByEmail", ctx, "ghost@example.com").Return(nil, repository.ErrUserNotFound)

	output, err := fixtures.service.Login(ctx, &usecase.LoginInput{Email: "ghost@example.com", Password: "whatever"})

	assert.Nil(t, output)
	assert.True(t, errors.Is(err, domainerrors.ErrInvalidCredentials))
}

func TestUserService_UpdateProfile_PartialUpdate(t *testing.T) {
	fixtures := createTestUserService(t)
	ctx := context.Background()

	user := &entity.User{
		ID:        uuid.New(),
		Email:     "mia@example.com",
		FirstName: "Mia",
		LastName:  "Chen",
	}

	fixtures.userRepo.On("FindByID", ctx, user.ID).Return(user, nil)
	fixtures.userRepo.On("Update", ctx, mock.AnythingOfType("*entity.User")).Return(nil)

	updated, err := fixtures.service.UpdateProfile(ctx, &usecase.UpdateProfileInput{
		UserID:    user.ID,
		FirstName: "Amelia",
	})

	require.NoError(t, err)
	assert.Equal(t, "Amelia", updated.FirstName)
	// Empty fields are skipped, not cleared.
	assert.Equal(t, "Chen", updated.LastName)
	assert.Equal(t, "mia@example.com", updated.Email)
}

func TestUserService_SaveBook_Duplicate(t *testing.T) {
	fixtures := createTestUserService(t)
	ctx := context.Background()

	userID := uuid.New()
	bookID := uuid.New()

	fixtures.bookRepo.On("FindByID", ctx, bookID).Return(&entity.CustomizedBook{ID: bookID}, nil)
	fixtures.savedBookRepo.On("Create", ctx, mock.AnythingOfType("*entity.SavedBook")).
		Return(repository.ErrBookAlreadySaved)

	saved, err := fixtures.service.SaveBook(ctx, userID, bookID)

	assert.Nil(t, saved)
	assert.True(t, errors.Is(err, domainerrors.ErrBookAlreadySaved))
}

func TestUserService_SaveBook_MissingBook(t *testing.T) {
	fixtures := createTestUserService(t)
	ctx := context.Background()

	userID := uuid.New()
	bookID := uuid.New()

	fixtures.bookRepo.On("FindByID", ctx, bookID).Return(nil, repository.ErrBookNotFound)

	saved, err := fixtures.service.SaveBook(ctx, userID, bookID)

	assert.Nil(t, saved)
	assert.True(t, errors.Is(err, domainerrors.ErrBookNotFound))
	fixtures.savedBookRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestUserService_RemoveSavedBook_NotFound(t *testing.T) {
	fixtures := createTestUserService(t)
	ctx := context.Background()

	userID := uuid.New()
	bookID := uuid.New()

	fixtures.savedBookRepo.On("Delete", ctx, userID, bookID).Return(repository.ErrSavedBookNotFound)

	err := fixtures.service.RemoveSavedBook(ctx, userID, bookID)

	assert.True(t, errors.Is(err, domainerrors.ErrSavedBookNotFound))
}
