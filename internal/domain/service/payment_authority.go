package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CaptureRequest carries everything the payment authority needs to charge
// an order.
type CaptureRequest struct {
	OrderID uuid.UUID
	Amount  decimal.Decimal
	Method  string
}

// PaymentReceipt is the authority's answer to a successful capture. Method
// reports what was actually charged, which may differ from the request when
// the authority applied its configured default.
type PaymentReceipt struct {
	PaymentID string
	Status    string
	Method    string
}

// PaymentAuthority defines the interface for charging orders. Implementations
// range from the built-in simulator to a real payment gateway.
type PaymentAuthority interface {
	// Capture charges the given amount and returns a receipt with the
	// authority's payment id. A non-nil error means nothing was charged.
	Capture(ctx context.Context, req *CaptureRequest) (*PaymentReceipt, error)
}
