// Package payment provides concrete implementations of the PaymentAuthority
// domain service.
package payment

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand"
	"time"

	"storybook/config"
	"storybook/internal/domain/service"
	"storybook/internal/errors"
)

// simulator approves every capture and mints a synthetic payment id.
// It stands in for a real gateway in development and test environments.
type simulator struct {
	defaultMethod string
	logger        *slog.Logger
}

// ProviderSimulator is the only payment provider currently built in.
const ProviderSimulator = "simulator"

// NewSimulator is the constructor for the simulated payment authority. An
// unknown provider in config is rejected at startup rather than silently
// simulated.
func NewSimulator(cfg *config.Config, logger *slog.Logger) (service.PaymentAuthority, error) {
	method := "credit_card"
	if cfg.Payment != nil {
		if cfg.Payment.Provider != "" && cfg.Payment.Provider != ProviderSimulator {
			return nil, errors.Errorf("unknown payment provider: %s", cfg.Payment.Provider)
		}
		if cfg.Payment.DefaultMethod != "" {
			method = cfg.Payment.DefaultMethod
		}
	}

	return &simulator{
		defaultMethod: method,
		logger:        logger,
	}, nil
}

// Capture approves the charge and returns a receipt. The payment id embeds
// the capture time in milliseconds plus a random suffix so retries never
// collide.
func (s *simulator) Capture(ctx context.Context, req *service.CaptureRequest) (*service.PaymentReceipt, error) {
	if req == nil {
		return nil, errors.New("capture request is required")
	}
	if req.Amount.IsNegative() {
		return nil, errors.Errorf("cannot capture negative amount %s", req.Amount)
	}

	method := req.Method
	if method == "" {
		method = s.defaultMethod
	}

	paymentID := fmt.Sprintf("PAY-%d-%06d", time.Now().UnixMilli(), rand.Intn(1000000))

	s.logger.InfoContext(ctx, "payment captured",
		slog.String("order_id", req.OrderID.String()),
		slog.String("payment_id", paymentID),
		slog.String("amount", req.Amount.StringFixed(2)),
		slog.String("method", method),
	)

	return &service.PaymentReceipt{
		PaymentID: paymentID,
		Status:    "completed",
		Method:    method,
	}, nil
}
