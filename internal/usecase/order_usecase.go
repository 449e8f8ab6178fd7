package usecase

import (
	"context"

	"storybook/internal/domain/entity"

	"github.com/google/uuid"
)

// --- Input DTOs ---

// OrderItemInput defines one line of a new order. Quantity defaults to 1.
type OrderItemInput struct {
	CustomizedBookID uuid.UUID
	Format           string
	Quantity         int
}

// CreateOrderInput defines the data required to place an order.
type CreateOrderInput struct {
	UserID uuid.UUID
	Items  []OrderItemInput
}

// PayOrderInput defines the data required to pay for a pending order.
type PayOrderInput struct {
	OrderID uuid.UUID
	UserID  uuid.UUID
	Method  string
}

// --- Output DTOs ---

// PayOrderOutput returns the paid order together with the payment record.
type PayOrderOutput struct {
	Order   *entity.Order   `json:"order"`
	Payment *entity.Payment `json:"payment"`
}

// OrderUsecase defines the interface for the order ledger.
type OrderUsecase interface {
	// CreateOrder prices the items server-side and records a pending order.
	CreateOrder(ctx context.Context, input *CreateOrderInput) (*entity.Order, error)

	// ListOrders returns the user's orders, newest first.
	ListOrders(ctx context.Context, userID uuid.UUID) ([]*entity.Order, error)

	// GetOrder returns one owned order with its items.
	GetOrder(ctx context.Context, id, userID uuid.UUID) (*entity.Order, error)

	// ListOrderItems returns the items of one owned order.
	ListOrderItems(ctx context.Context, id, userID uuid.UUID) ([]*entity.OrderItem, error)

	// PayOrder captures payment for a pending owned order and marks it paid.
	PayOrder(ctx context.Context, input *PayOrderInput) (*PayOrderOutput, error)

	// UpdateOrderStatus moves an owned order to a new status.
	UpdateOrderStatus(ctx context.Context, id, userID uuid.UUID, status string) (*entity.Order, error)
}
