package impl

import (
	"context"
	"io"
	"log/slog"

	"storybook/internal/domain/entity"
	"storybook/internal/domain/repository"
	"storybook/internal/domain/service"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

func newDiscardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// stubTransactionManager runs the transactional function directly against a
// fixed factory, with no real transaction underneath.
type stubTransactionManager struct {
	factory repository.RepositoryFactory
}

func (s *stubTransactionManager) Execute(ctx context.Context, fn func(repository.RepositoryFactory) error) error {
	return fn(s.factory)
}

// stubRepositoryFactory hands out whichever mocks the test wired in.
type stubRepositoryFactory struct {
	users          repository.UserRepository
	stories        repository.StoryRepository
	customizations repository.CustomizationRepository
	books          repository.CustomizedBookRepository
	orders         repository.OrderRepository
	savedBooks     repository.SavedBookRepository
}

func (f *stubRepositoryFactory) UserRepo() repository.UserRepository { return f.users }

func (f *stubRepositoryFactory) StoryRepo() repository.StoryRepository { return f.stories }

func (f *stubRepositoryFactory) CustomizationRepo() repository.CustomizationRepository {
	return f.customizations
}

func (f *stubRepositoryFactory) BookRepo() repository.CustomizedBookRepository { return f.books }

func (f *stubRepositoryFactory) OrderRepo() repository.OrderRepository { return f.orders }

func (f *stubRepositoryFactory) SavedBookRepo() repository.SavedBookRepository { return f.savedBooks }

// --- repository mocks ---

type mockUserRepository struct{ mock.Mock }

func (m *mockUserRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	args := m.Called(ctx, id)
	if user := args.Get(0); user != nil {
		return user.(*entity.User), args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *mockUserRepository) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	args := m.Called(ctx, email)
	if user := args.Get(0); user != nil {
		return user.(*entity.User), args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *mockUserRepository) Create(ctx context.Context, user *entity.User) error {
	return m.Called(ctx, user).Error(0)
}

func (m *mockUserRepository) Update(ctx context.Context, user *entity.User) error {
	return m.Called(ctx, user).Error(0)
}

type mockStoryRepository struct{ mock.Mock }

func (m *mockStoryRepository) List(ctx context.Context) ([]*entity.Story, error) {
	args := m.Called(ctx)
	if stories := args.Get(0); stories != nil {
		return stories.([]*entity.Story), args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *mockStoryRepository) Filter(ctx context.Context, filter entity.StoryFilter) ([]*entity.Story, error) {
	args := m.Called(ctx, filter)
	if stories := args.Get(0); stories != nil {
		return stories.([]*entity.Story), args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *mockStoryRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Story, error) {
	args := m.Called(ctx, id)
	if story := args.Get(0); story != nil {
		return story.(*entity.Story), args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *mockStoryRepository) Create(ctx context.Context, story *entity.Story) error {
	return m.Called(ctx, story).Error(0)
}

func (m *mockStoryRepository) Update(ctx context.Context, story *entity.Story) error {
	return m.Called(ctx, story).Error(0)
}

func (m *mockStoryRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockStoryRepository) ListElements(ctx context.Context, storyID uuid.UUID) ([]*entity.StoryElement, error) {
	args := m.Called(ctx, storyID)
	if elements := args.Get(0); elements != nil {
		return elements.([]*entity.StoryElement), args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *mockStoryRepository) ListOptions(ctx context.Context, elementType string) ([]*entity.CustomizationOption, error) {
	args := m.Called(ctx, elementType)
	if options := args.Get(0); options != nil {
		return options.([]*entity.CustomizationOption), args.Error(1)
	}

	return nil, args.Error(1)
}

type mockCustomizationRepository struct{ mock.Mock }

func (m *mockCustomizationRepository) Create(ctx context.Context, customization *entity.Customization) error {
	return m.Called(ctx, customization).Error(0)
}

func (m *mockCustomizationRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Customization, error) {
	args := m.Called(ctx, id)
	if customization := args.Get(0); customization != nil {
		return customization.(*entity.Customization), args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *mockCustomizationRepository) FindOwned(ctx context.Context, id, userID uuid.UUID) (*entity.Customization, error) {
	args := m.Called(ctx, id, userID)
	if customization := args.Get(0); customization != nil {
		return customization.(*entity.Customization), args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *mockCustomizationRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]*entity.Customization, error) {
	args := m.Called(ctx, userID)
	if customizations := args.Get(0); customizations != nil {
		return customizations.([]*entity.Customization), args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *mockCustomizationRepository) Update(ctx context.Context, customization *entity.Customization) error {
	return m.Called(ctx, customization).Error(0)
}

func (m *mockCustomizationRepository) DeleteOwned(ctx context.Context, id, userID uuid.UUID) error {
	return m.Called(ctx, id, userID).Error(0)
}

type mockBookRepository struct{ mock.Mock }

func (m *mockBookRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.CustomizedBook, error) {
	args := m.Called(ctx, id)
	if book := args.Get(0); book != nil {
		return book.(*entity.CustomizedBook), args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *mockBookRepository) FindByCustomization(ctx context.Context, customizationID uuid.UUID) (*entity.CustomizedBook, error) {
	args := m.Called(ctx, customizationID)
	if book := args.Get(0); book != nil {
		return book.(*entity.CustomizedBook), args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *mockBookRepository) Create(ctx context.Context, book *entity.CustomizedBook) error {
	return m.Called(ctx, book).Error(0)
}

func (m *mockBookRepository) Update(ctx context.Context, book *entity.CustomizedBook) error {
	return m.Called(ctx, book).Error(0)
}

type mockOrderRepository struct{ mock.Mock }

func (m *mockOrderRepository) Create(ctx context.Context, order *entity.Order) error {
	return m.Called(ctx, order).Error(0)
}

func (m *mockOrderRepository) FindOwned(ctx context.Context, id, userID uuid.UUID) (*entity.Order, error) {
	args := m.Called(ctx, id, userID)
	if order := args.Get(0); order != nil {
		return order.(*entity.Order), args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *mockOrderRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]*entity.Order, error) {
	args := m.Called(ctx, userID)
	if orders := args.Get(0); orders != nil {
		return orders.([]*entity.Order), args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *mockOrderRepository) Update(ctx context.Context, order *entity.Order) error {
	return m.Called(ctx, order).Error(0)
}

func (m *mockOrderRepository) ListItems(ctx context.Context, orderID uuid.UUID) ([]*entity.OrderItem, error) {
	args := m.Called(ctx, orderID)
	if items := args.Get(0); items != nil {
		return items.([]*entity.OrderItem), args.Error(1)
	}

	return nil, args.Error(1)
}

type mockSavedBookRepository struct{ mock.Mock }

func (m *mockSavedBookRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]*entity.SavedBook, error) {
	args := m.Called(ctx, userID)
	if saved := args.Get(0); saved != nil {
		return saved.([]*entity.SavedBook), args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *mockSavedBookRepository) Create(ctx context.Context, saved *entity.SavedBook) error {
	return m.Called(ctx, saved).Error(0)
}

func (m *mockSavedBookRepository) Delete(ctx context.Context, userID, customizedBookID uuid.UUID) error {
	return m.Called(ctx, userID, customizedBookID).Error(0)
}

// --- service mocks ---

type mockPasswordHasher struct{ mock.Mock }

func (m *mockPasswordHasher) Hash(password string) (string, error) {
	args := m.Called(password)

	return args.String(0), args.Error(1)
}

func (m *mockPasswordHasher) Check(password, hash string) bool {
	return m.Called(password, hash).Bool(0)
}

type mockTokenService struct{ mock.Mock }

func (m *mockTokenService) GenerateToken(userID uuid.UUID) (string, error) {
	args := m.Called(userID)

	return args.String(0), args.Error(1)
}

func (m *mockTokenService) ValidateToken(token string) (*service.Claims, error) {
	args := m.Called(token)
	if claims := args.Get(0); claims != nil {
		return claims.(*service.Claims), args.Error(1)
	}

	return nil, args.Error(1)
}

type mockPaymentAuthority struct{ mock.Mock }

func (m *mockPaymentAuthority) Capture(ctx context.Context, req *service.CaptureRequest) (*service.PaymentReceipt, error) {
	args := m.Called(ctx, req)
	if receipt := args.Get(0); receipt != nil {
		return receipt.(*service.PaymentReceipt), args.Error(1)
	}

	return nil, args.Error(1)
}

type mockEventPublisher struct{ mock.Mock }

func (m *mockEventPublisher) PublishOrderEvent(ctx context.Context, event *service.OrderEvent) error {
	return m.Called(ctx, event).Error(0)
}

func (m *mockEventPublisher) Close() error {
	return m.Called().Error(0)
}

type mockQRCodeService struct{ mock.Mock }

func (m *mockQRCodeService) GenerateBookShareQR(bookID uuid.UUID) ([]byte, error) {
	args := m.Called(bookID)
	if png := args.Get(0); png != nil {
		return png.([]byte), args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *mockQRCodeService) ParseBookShareQR(payload string) (uuid.UUID, error) {
	args := m.Called(payload)

	return args.Get(0).(uuid.UUID), args.Error(1)
}
