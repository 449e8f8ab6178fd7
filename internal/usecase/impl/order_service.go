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
	"github.com/shopspring/decimal"
	"go.uber.org/fx"
)

// orderService implements the OrderUsecase interface.
type orderService struct {
	txManager        repository.TransactionManager
	orderRepo        repository.OrderRepository
	paymentAuthority service.PaymentAuthority
	eventPublisher   service.EventPublisher
	logger           *slog.Logger
}

// OrderServiceParams holds dependencies for OrderService, injected by Fx.
type OrderServiceParams struct {
	fx.In

	TxManager        repository.TransactionManager
	OrderRepo        repository.OrderRepository
	PaymentAuthority service.PaymentAuthority
	EventPublisher   service.EventPublisher
	Logger           *slog.Logger
}

// NewOrderService is the constructor for orderService.
func NewOrderService(params OrderServiceParams) usecase.OrderUsecase {
	return &orderService{
		txManager:        params.TxManager,
		orderRepo:        params.OrderRepo,
		paymentAuthority: params.PaymentAuthority,
		eventPublisher:   params.EventPublisher,
		logger:           params.Logger,
	}
}

func (srv *orderService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// CreateOrder prices the items server-side and records a pending order.
// Client-supplied prices are never trusted: the unit price is resolved from
// the format, and the quantity multiplies the order total only.
func (srv *orderService) CreateOrder(ctx context.Context, input *usecase.CreateOrderInput) (*entity.Order, error) {
	srv.log(ctx).Info("Creating order", slog.Any("userID", input.UserID), slog.Int("items", len(input.Items)))

	if len(input.Items) == 0 {
		return nil, domainerrors.ErrEmptyOrder.WrapMessage("order needs at least one item")
	}

	userID := input.UserID
	order := &entity.Order{
		UserID: &userID,
		Status: entity.OrderStatusPending,
	}

	total := decimal.Zero
	for _, itemInput := range input.Items {
		quantity := itemInput.Quantity
		if quantity <= 0 {
			quantity = 1
		}

		price := entity.BookFormat(itemInput.Format).UnitPrice()
		total = total.Add(price.Mul(decimal.NewFromInt(int64(quantity))))

		order.Items = append(order.Items, &entity.OrderItem{
			CustomizedBookID: itemInput.CustomizedBookID,
			Format:           entity.BookFormat(itemInput.Format),
			Price:            price,
			Quantity:         quantity,
		})
	}
	order.TotalAmount = total

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		bookRepo := repoFactory.BookRepo()

		for _, item := range order.Items {
			if _, findErr := bookRepo.FindByID(ctx, item.CustomizedBookID); findErr != nil {
				if errors.Is(findErr, repository.ErrBookNotFound) {
					return domainerrors.ErrBookNotFound.WrapMessage("customized book not found")
				}

				return errors.Wrap(findErr, "failed to load book for order")
			}
		}

		return repoFactory.OrderRepo().Create(ctx, order)
	})
	if err != nil {
		srv.log(ctx).Warn("Creating order failed", slog.Any("userID", input.UserID), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to execute order transaction")
	}

	srv.publishOrderEvent(ctx, order)

	return order, nil
}

// ListOrders returns the user's orders, newest first.
func (srv *orderService) ListOrders(ctx context.Context, userID uuid.UUID) ([]*entity.Order, error) {
	orders, err := srv.orderRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list orders")
	}

	return orders, nil
}

// GetOrder returns one owned order with its items.
func (srv *orderService) GetOrder(ctx context.Context, id, userID uuid.UUID) (*entity.Order, error) {
	order, err := srv.orderRepo.FindOwned(ctx, id, userID)
	if err != nil {
		if errors.Is(err, repository.ErrOrderNotFound) {
			return nil, domainerrors.ErrOrderNotFound.WrapMessage("order not found")
		}

		return nil, errors.Wrap(err, "failed to load order")
	}

	return order, nil
}

// ListOrderItems returns the items of one owned order.
func (srv *orderService) ListOrderItems(ctx context.Context, id, userID uuid.UUID) ([]*entity.OrderItem, error) {
	// Resolve ownership first so a foreign order is a 404, not an empty list.
	if _, err := srv.GetOrder(ctx, id, userID); err != nil {
		return nil, err
	}

	items, err := srv.orderRepo.ListItems(ctx, id)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list order items")
	}

	return items, nil
}

// PayOrder captures payment for a pending owned order and marks it paid.
func (srv *orderService) PayOrder(ctx context.Context, input *usecase.PayOrderInput) (*usecase.PayOrderOutput, error) {
	srv.log(ctx).Info("Paying order", slog.Any("orderID", input.OrderID))

	order, err := srv.GetOrder(ctx, input.OrderID, input.UserID)
	if err != nil {
		return nil, err
	}

	if order.Status != entity.OrderStatusPending {
		return nil, domainerrors.ErrOrderNotPending.WrapMessage("order has already been processed")
	}

	// Capture outside the transaction: the authority is an external call.
	receipt, err := srv.paymentAuthority.Capture(ctx, &service.CaptureRequest{
		OrderID: order.ID,
		Amount:  order.TotalAmount,
		Method:  input.Method,
	})
	if err != nil {
		srv.log(ctx).Error("Payment capture failed", slog.Any("orderID", input.OrderID), slog.Any("error", err))

		return nil, domainerrors.ErrPaymentFailed.WrapMessage("payment capture failed")
	}

	if err := order.Transition(entity.OrderStatusPaid); err != nil {
		return nil, errors.Wrap(err, "failed to mark order paid")
	}
	order.PaymentID = receipt.PaymentID

	if err := srv.orderRepo.Update(ctx, order); err != nil {
		srv.log(ctx).Error("Failed to persist paid order", slog.Any("orderID", input.OrderID), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to persist paid order")
	}

	srv.publishOrderEvent(ctx, order)

	return &usecase.PayOrderOutput{
		Order: order,
		Payment: &entity.Payment{
			ID:     receipt.PaymentID,
			Amount: order.TotalAmount,
			Status: receipt.Status,
			Method: receipt.Method,
		},
	}, nil
}

// UpdateOrderStatus moves an owned order to a new status. Any known status
// may move to any other.
func (srv *orderService) UpdateOrderStatus(ctx context.Context, id, userID uuid.UUID, status string) (*entity.Order, error) {
	srv.log(ctx).Info("Updating order status", slog.Any("orderID", id), slog.String("status", status))

	order, err := srv.GetOrder(ctx, id, userID)
	if err != nil {
		return nil, err
	}

	if err := order.Transition(entity.OrderStatus(status)); err != nil {
		return nil, domainerrors.ErrInvalidOrderStatus.WithDetails(status)
	}

	if err := srv.orderRepo.Update(ctx, order); err != nil {
		return nil, errors.Wrap(err, "failed to persist order status")
	}

	srv.publishOrderEvent(ctx, order)

	return order, nil
}

// publishOrderEvent emits an order lifecycle event. Publishing is best
// effort: a failure is logged, never surfaced to the caller.
func (srv *orderService) publishOrderEvent(ctx context.Context, order *entity.Order) {
	event := &service.OrderEvent{
		RequestID: deliverycontext.GetRequestIDFromContext(ctx),
		OrderID:   order.ID.String(),
		Status:    string(order.Status),
		Total:     order.TotalAmount.StringFixed(2),
		PaymentID: order.PaymentID,
	}
	if order.UserID != nil {
		event.UserID = order.UserID.String()
	}

	if err := srv.eventPublisher.PublishOrderEvent(ctx, event); err != nil {
		srv.log(ctx).Warn("Failed to publish order event",
			slog.Any("orderID", order.ID),
			slog.String("status", string(order.Status)),
			slog.Any("error", err),
		)
	}
}
