package entity

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderStatus is the lifecycle state of an order.
type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusPaid      OrderStatus = "paid"
	OrderStatusFulfilled OrderStatus = "fulfilled"
	OrderStatusCancelled OrderStatus = "cancelled"
)

// Valid reports whether s is a known order status.
func (s OrderStatus) Valid() bool {
	switch s {
	case OrderStatusPending, OrderStatusPaid, OrderStatusFulfilled, OrderStatusCancelled:
		return true
	}

	return false
}

// BookFormat selects the purchasable edition of a customized book.
type BookFormat string

const (
	FormatDigital   BookFormat = "digital"
	FormatPaperback BookFormat = "paperback"
	FormatHardcover BookFormat = "hardcover"
)

// UnitPrice resolves the server-side price for a format. Unrecognized
// formats fall back to the digital price; this is a documented fallback,
// not a validation error.
func (f BookFormat) UnitPrice() decimal.Decimal {
	switch f {
	case FormatPaperback:
		return decimal.NewFromFloat(19.99)
	case FormatHardcover:
		return decimal.NewFromFloat(29.99)
	default:
		return decimal.NewFromFloat(9.99)
	}
}

// Order is one purchase against a finalized customized book. UserID is nil
// only for guest checkouts, which the storage model permits; the HTTP
// surface always records the authenticated owner.
type Order struct {
	ID          uuid.UUID       `json:"id"`
	UserID      *uuid.UUID      `json:"userId,omitempty"`
	TotalAmount decimal.Decimal `json:"totalAmount"`
	Status      OrderStatus     `json:"status"`
	PaymentID   string          `json:"paymentId,omitempty"`
	Items       []*OrderItem    `json:"items,omitempty"`
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt"`
}

// Transition moves the order to a new status. Any known status may move to
// any other: the source system never enforced a transition graph, and that
// permissive behavior is kept, funneled through this single method so a
// future state-machine restriction is a local change.
func (o *Order) Transition(next OrderStatus) error {
	if !next.Valid() {
		return ErrUnknownOrderStatus
	}

	o.Status = next

	return nil
}

// ErrUnknownOrderStatus rejects a status outside the known enum.
var ErrUnknownOrderStatus = errors.New("unknown order status")

// OrderItem is one line of an order. Price is the unit price resolved from
// the format at creation time; the quantity multiplies the order total,
// never the stored unit price.
type OrderItem struct {
	ID               uuid.UUID       `json:"id"`
	OrderID          uuid.UUID       `json:"orderId"`
	CustomizedBookID uuid.UUID       `json:"customizedBookId"`
	Format           BookFormat      `json:"format"`
	Price            decimal.Decimal `json:"price"`
	Quantity         int             `json:"quantity"`
	Book             *CustomizedBook `json:"book,omitempty"` // Populated on reads that join the book.
	CreatedAt        time.Time       `json:"createdAt"`
	UpdatedAt        time.Time       `json:"updatedAt"`
}

// Payment is the projection returned after a successful capture. The
// platform simulates the gateway, so Status is always "completed" today.
type Payment struct {
	ID     string          `json:"id"`
	Amount decimal.Decimal `json:"amount"`
	Status string          `json:"status"`
	Method string          `json:"method"`
}
