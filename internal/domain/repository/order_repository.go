package repository

import (
	"context"
	"errors"

	"storybook/internal/domain/entity"

	"github.com/google/uuid"
)

// ErrOrderNotFound covers both a missing order and one owned by another user,
// under the same no-existence-leak rule as customizations.
var ErrOrderNotFound = errors.New("order not found")

// OrderRepository defines persistence for the order ledger.
type OrderRepository interface {
	// Create persists a new order together with its items.
	Create(ctx context.Context, order *entity.Order) error

	// FindOwned retrieves an order only when it is owned by userID,
	// with its items and their books joined.
	FindOwned(ctx context.Context, id, userID uuid.UUID) (*entity.Order, error)

	// ListByUser returns the user's orders newest first, items joined.
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*entity.Order, error)

	// Update modifies an existing order (status, payment id).
	Update(ctx context.Context, order *entity.Order) error

	// ListItems returns the items of an order with their books joined.
	ListItems(ctx context.Context, orderID uuid.UUID) ([]*entity.OrderItem, error)
}
