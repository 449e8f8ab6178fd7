package impl

import (
	"context"
	"testing"

	"storybook/internal/domain/entity"
	domainerrors "storybook/internal/domain/errors"
	"storybook/internal/domain/repository"
	"storybook/internal/domain/service"
	"storybook/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type orderServiceFixtures struct {
	service          usecase.OrderUsecase
	orderRepo        *mockOrderRepository
	bookRepo         *mockBookRepository
	paymentAuthority *mockPaymentAuthority
	eventPublisher   *mockEventPublisher
}

func createTestOrderService(t *testing.T) orderServiceFixtures {
	t.Helper()

	orderRepo := new(mockOrderRepository)
	bookRepo := new(mockBookRepository)
	paymentAuthority := new(mockPaymentAuthority)
	eventPublisher := new(mockEventPublisher)

	factory := &stubRepositoryFactory{
		orders: orderRepo,
		books:  bookRepo,
	}

	service := NewOrderService(OrderServiceParams{
		TxManager:        &stubTransactionManager{factory: factory},
		OrderRepo:        orderRepo,
		PaymentAuthority: paymentAuthority,
		EventPublisher:   eventPublisher,
		Logger:           newDiscardLogger(),
	})

	return orderServiceFixtures{
		service:          service,
		orderRepo:        orderRepo,
		bookRepo:         bookRepo,
		paymentAuthority: paymentAuthority,
		eventPublisher:   eventPublisher,
	}
}

func TestOrderService_CreateOrder_PricesServerSide(t *testing.T) {
	fixtures := createTestOrderService(t)
	ctx := context.Background()

	bookID := uuid.New()
	fixtures.bookRepo.On("FindByID", ctx, bookID).Return(&entity.CustomizedBook{ID: bookID}, nil)
	fixtures.orderRepo.On("Create", ctx, mock.AnythingOfType("*entity.Order")).Return(nil)
	fixtures.eventPublisher.On("PublishOrderEvent", ctx, mock.AnythingOfType("*service.OrderEvent")).Return(nil)

	order, err := fixtures.service.CreateOrder(ctx, &usecase.CreateOrderInput{
		UserID: uuid.New(),
		Items: []usecase.OrderItemInput{
			{CustomizedBookID: bookID, Format: "hardcover", Quantity: 3},
		},
	})

	require.NoError(t, err)
	assert.Equal(t, entity.OrderStatusPending, order.Status)
	require.Len(t, order.Items, 1)
	assert.True(t, order.Items[0].Price.Equal(decimal.NewFromFloat(29.99)))
	assert.True(t, order.TotalAmount.Equal(decimal.NewFromFloat(89.97)))
}

func TestOrderService_CreateOrder_QuantityDefaultsToOne(t *testing.T) {
	fixtures := createTestOrderService(t)
	ctx := context.Background()

	bookID := uuid.New()
	fixtures.bookRepo.On("FindByID", ctx, bookID).Return(&entity.CustomizedBook{ID: bookID}, nil)
	fixtures.orderRepo.On("Create", ctx, mock.AnythingOfType("*entity.Order")).Return(nil)
	fixtures.eventPublisher.On("PublishOrderEvent", ctx, mock.AnythingOfType("*service.OrderEvent")).Return(nil)

	order, err := fixtures.service.CreateOrder(ctx, &usecase.CreateOrderInput{
		UserID: uuid.New(),
		Items: []usecase.OrderItemInput{
			{CustomizedBookID: bookID, Format: "digital"},
		},
	})

	require.NoError(t, err)
	assert.Equal(t, 1, order.Items[0].Quantity)
	assert.True(t, order.TotalAmount.Equal(decimal.NewFromFloat(9.99)))
}

func TestOrderService_CreateOrder_UnknownFormatFallsBackToDigital(t *testing.T) {
	fixtures := createTestOrderService(t)
	ctx := context.Background()

	bookID := uuid.New()
	fixtures.bookRepo.On("FindByID", ctx, bookID).Return(&entity.CustomizedBook{ID: bookID}, nil)
	fixtures.orderRepo.On("Create", ctx, mock.AnythingOfType("*entity.Order")).Return(nil)
	fixtures.eventPublisher.On("PublishOrderEvent", ctx, mock.AnythingOfType("*service.OrderEvent")).Return(nil)

	order, err := fixtures.service.CreateOrder(ctx, &usecase.CreateOrderInput{
		UserID: uuid.New(),
		Items: []usecase.OrderItemInput{
			{CustomizedBookID: bookID, Format: "audiobook", Quantity: 2},
		},
	})

	require.NoError(t, err)
	assert.True(t, order.TotalAmount.Equal(decimal.NewFromFloat(19.98)))
}

func TestOrderService_CreateOrder_EmptyItems(t *testing.T) {
	fixtures := createTestOrderService(t)
	ctx := context.Background()

	order, err := fixtures.service.CreateOrder(ctx, &usecase.CreateOrderInput{UserID: uuid.New()})

	assert.Nil(t, order)
	assert.True(t, errors.Is(err, domainerrors.ErrEmptyOrder))
}

func TestOrderService_CreateOrder_MissingBook(t *testing.T) {
	fixtures := createTestOrderService(t)
	ctx := context.Background()

	bookID := uuid.New()
	fixtures.bookRepo.On("FindByID", ctx, bookID).Return(nil, repository.ErrBookNotFound)

	order, err := fixtures.service.CreateOrder(ctx, &usecase.CreateOrderInput{
		UserID: uuid.New(),
		Items:  []usecase.OrderItemInput{{CustomizedBookID: bookID, Format: "digital"}},
	})

	assert.Nil(t, order)
	assert.True(t, errors.Is(err, domainerrors.ErrBookNotFound))
	fixtures.orderRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestOrderService_PayOrder_Success(t *testing.T) {
	fixtures := createTestOrderService(t)
	ctx := context.Background()

	userID := uuid.New()
	order := &entity.Order{
		ID:          uuid.New(),
		UserID:      &userID,
		TotalAmount: decimal.NewFromFloat(29.99),
		Status:      entity.OrderStatusPending,
	}

	fixtures.orderRepo.On("FindOwned", ctx, order.ID, userID).Return(order, nil)
	fixtures.paymentAuthority.On("Capture", ctx, mock.AnythingOfType("*service.CaptureRequest")).
		Return(&service.PaymentReceipt{PaymentID: "PAY-1700000000000-123456", Status: "completed", Method: "credit_card"}, nil)
	fixtures.orderRepo.On("Update", ctx, order).Return(nil)
	fixtures.eventPublisher.On("PublishOrderEvent", ctx, mock.AnythingOfType("*service.OrderEvent")).Return(nil)

	output, err := fixtures.service.PayOrder(ctx, &usecase.PayOrderInput{
		OrderID: order.ID,
		UserID:  userID,
		Method:  "credit_card",
	})

	require.NoError(t, err)
	assert.Equal(t, entity.OrderStatusPaid, output.Order.Status)
	assert.Equal(t, "PAY-1700000000000-123456", output.Order.PaymentID)
	assert.Equal(t, "completed", output.Payment.Status)
	assert.Equal(t, "credit_card", output.Payment.Method)
	assert.True(t, output.Payment.Amount.Equal(decimal.NewFromFloat(29.99)))
	fixtures.eventPublisher.AssertCalled(t, "PublishOrderEvent", ctx, mock.AnythingOfType("*service.OrderEvent"))
}

func TestOrderService_PayOrder_ReportsAuthorityMethod(t *testing.T) {
	fixtures := createTestOrderService(t)
	ctx := context.Background()

	userID := uuid.New()
	order := &entity.Order{
		ID:          uuid.New(),
		UserID:      &userID,
		TotalAmount: decimal.NewFromFloat(9.99),
		Status:      entity.OrderStatusPending,
	}

	// The caller sends no method; the authority falls back to its configured
	// default. The Payment projection must report what was actually charged.
	fixtures.orderRepo.On("FindOwned", ctx, order.ID, userID).Return(order, nil)
	fixtures.paymentAuthority.On("Capture", ctx, mock.AnythingOfType("*service.CaptureRequest")).
		Return(&service.PaymentReceipt{PaymentID: "PAY-1700000000001-000042", Status: "completed", Method: "paypal"}, nil)
	fixtures.orderRepo.On("Update", ctx, order).Return(nil)
	fixtures.eventPublisher.On("PublishOrderEvent", ctx, mock.AnythingOfType("*service.OrderEvent")).Return(nil)

	output, err := fixtures.service.PayOrder(ctx, &usecase.PayOrderInput{
		OrderID: order.ID,
		UserID:  userID,
	})

	require.NoError(t, err)
	assert.Equal(t, "paypal", output.Payment.Method)
}

func TestOrderService_PayOrder_NotPending(t *testing.T) {
	fixtures := createTestOrderService(t)
	ctx := context.Background()

	userID := uuid.New()
	order := &entity.Order{ID: uuid.New(), UserID: &userID, Status: entity.OrderStatusPaid}

	fixtures.orderRepo.On("FindOwned", ctx, order.ID, userID).Return(order, nil)

	output, err := fixtures.service.PayOrder(ctx, &usecase.PayOrderInput{OrderID: order.ID, UserID: userID})

	assert.Nil(t, output)
	assert.True(t, errors.Is(err, domainerrors.ErrOrderNotPending))
	fixtures.paymentAuthority.AssertNotCalled(t, "Capture", mock.Anything, mock.Anything)
}

func TestOrderService_PayOrder_CaptureFails(t *testing.T) {
	fixtures := createTestOrderService(t)
	ctx := context.Background()

	userID := uuid.New()
	order := &entity.Order{ID: uuid.New(), UserID: &userID, Status: entity.OrderStatusPending}

	fixtures.orderRepo.On("FindOwned", ctx, order.ID, userID).Return(order, nil)
	fixtures.paymentAuthority.On("Capture", ctx, mock.AnythingOfType("*service.CaptureRequest")).
		Return(nil, errors.New("gateway unreachable"))

	output, err := fixtures.service.PayOrder(ctx, &usecase.PayOrderInput{OrderID: order.ID, UserID: userID})

	assert.Nil(t, output)
	assert.True(t, errors.Is(err, domainerrors.ErrPaymentFailed))
	fixtures.orderRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestOrderService_UpdateOrderStatus_InvalidStatus(t *testing.T) {
	fixtures := createTestOrderService(t)
	ctx := context.Background()

	userID := uuid.New()
	order := &entity.Order{ID: uuid.New(), UserID: &userID, Status: entity.OrderStatusPending}

	fixtures.orderRepo.On("FindOwned", ctx, order.ID, userID).Return(order, nil)

	updated, err := fixtures.service.UpdateOrderStatus(ctx, order.ID, userID, "shipped")

	assert.Nil(t, updated)
	assert.True(t, errors.Is(err, domainerrors.ErrInvalidOrderStatus))
	fixtures.orderRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestOrderService_UpdateOrderStatus_AnyToAny(t *testing.T) {
	fixtures := createTestOrderService(t)
	ctx := context.Background()

	userID := uuid.New()
	order := &entity.Order{ID: uuid.New(), UserID: &userID, Status: entity.OrderStatusFulfilled}

	fixtures.orderRepo.On("FindOwned", ctx, order.ID, userID).Return(order, nil)
	fixtures.orderRepo.On("Update", ctx, order).Return(nil)
	fixtures.eventPublisher.On("PublishOrderEvent", ctx, mock.AnythingOfType("*service.OrderEvent")).Return(nil)

	updated, err := fixtures.service.UpdateOrderStatus(ctx, order.ID, userID, "pending")

	require.NoError(t, err)
	assert.Equal(t, entity.OrderStatusPending, updated.Status)
}

func TestOrderService_GetOrder_ForeignOwnerIsNotFound(t *testing.T) {
	fixtures := createTestOrderService(t)
	ctx := context.Background()

	orderID := uuid.New()
	userID := uuid.New()

	fixtures.orderRepo.On("FindOwned", ctx, orderID, userID).Return(nil, repository.ErrOrderNotFound)

	order, err := fixtures.service.GetOrder(ctx, orderID, userID)

	assert.Nil(t, order)
	assert.True(t, errors.Is(err, domainerrors.ErrOrderNotFound))
}

func TestOrderService_ListOrderItems_ChecksOwnershipFirst(t *testing.T) {
	fixtures := createTestOrderService(t)
	ctx := context.Background()

	orderID := uuid.New()
	userID := uuid.New()

	fixtures.orderRepo.On("FindOwned", ctx, orderID, userID).Return(nil, repository.ErrOrderNotFound)

	items, err := fixtures.service.ListOrderItems(ctx, orderID, userID)

	assert.Nil(t, items)
	assert.True(t, errors.Is(err, domainerrors.ErrOrderNotFound))
	fixtures.orderRepo.AssertNotCalled(t, "ListItems", mock.Anything, mock.Anything)
}

func TestOrderService_EventPublishFailureIsSwallowed(t *testing.T) {
	fixtures := createTestOrderService(t)
	ctx := context.Background()

	bookID := uuid.New()
	fixtures.bookRepo.On("FindByID", ctx, bookID).Return(&entity.CustomizedBook{ID: bookID}, nil)
	fixtures.orderRepo.On("Create", ctx, mock.AnythingOfType("*entity.Order")).Return(nil)
	fixtures.eventPublisher.On("PublishOrderEvent", ctx, mock.AnythingOfType("*service.OrderEvent")).
		Return(errors.New("broker down"))

	order, err := fixtures.service.CreateOrder(ctx, &usecase.CreateOrderInput{
		UserID: uuid.New(),
		Items:  []usecase.OrderItemInput{{CustomizedBookID: bookID, Format: "digital"}},
	})

	require.NoError(t, err)
	assert.NotNil(t, order)
}
