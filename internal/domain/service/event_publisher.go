package service

import (
	"context"
)

// OrderEvent represents an order lifecycle change published for async
// consumers (fulfillment, receipts, analytics).
type OrderEvent struct {
	RequestID string `json:"request_id,omitempty"` // For distributed tracing
	OrderID   string `json:"order_id"`
	UserID    string `json:"user_id,omitempty"`
	Status    string `json:"status"`
	Total     string `json:"total"`
	PaymentID string `json:"payment_id,omitempty"`
}

// EventPublisher defines the interface for publishing events to a message queue
type EventPublisher interface {
	// PublishOrderEvent publishes an order lifecycle event for async processing
	PublishOrderEvent(ctx context.Context, event *OrderEvent) error

	// Close releases any resources held by the publisher
	Close() error
}
