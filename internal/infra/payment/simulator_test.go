package payment

import (
	"context"
	"log/slog"
	"strings"
	"testing"

	"storybook/config"
	"storybook/internal/domain/service"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestSimulator(t *testing.T) service.PaymentAuthority {
	t.Helper()

	cfg := &config.Config{}
	cfg.Payment = &config.PaymentConfig{Provider: "simulator", DefaultMethod: "card"}

	authority, err := NewSimulator(cfg, slog.Default())
	require.NoError(t, err)

	return authority
}

func TestNewSimulator_RejectsUnknownProvider(t *testing.T) {
	cfg := &config.Config{}
	cfg.Payment = &config.PaymentConfig{Provider: "stripe"}

	authority, err := NewSimulator(cfg, slog.Default())
	assert.Error(t, err)
	assert.Nil(t, authority)
}

func TestSimulator_Capture(t *testing.T) {
	authority := newTestSimulator(t)

	receipt, err := authority.Capture(context.Background(), &service.CaptureRequest{
		OrderID: uuid.New(),
		Amount:  decimal.RequireFromString("29.99"),
		Method:  "credit_card",
	})
	require.NoError(t, err)
	require.NotNil(t, receipt)

	assert.Equal(t, "completed", receipt.Status)
	assert.Equal(t, "credit_card", receipt.Method)
	assert.True(t, strings.HasPrefix(receipt.PaymentID, "PAY-"))
}

func TestSimulator_CaptureDefaultsMethodFromConfig(t *testing.T) {
	authority := newTestSimulator(t)

	receipt, err := authority.Capture(context.Background(), &service.CaptureRequest{
		OrderID: uuid.New(),
		Amount:  decimal.RequireFromString("9.99"),
	})
	require.NoError(t, err)

	// newTestSimulator configures defaultMethod "card"; an empty request
	// method must surface it on the receipt.
	assert.Equal(t, "card", receipt.Method)
}

func TestSimulator_CaptureUniquePaymentIDs(t *testing.T) {
	authority := newTestSimulator(t)

	seen := make(map[string]struct{})
	for range 20 {
		receipt, err := authority.Capture(context.Background(), &service.CaptureRequest{
			OrderID: uuid.New(),
			Amount:  decimal.RequireFromString("9.99"),
		})
		require.NoError(t, err)
		seen[receipt.PaymentID] = struct{}{}
	}

	assert.Len(t, seen, 20)
}

func TestSimulator_CaptureRejectsNegativeAmount(t *testing.T) {
	authority := newTestSimulator(t)

	receipt, err := authority.Capture(context.Background(), &service.CaptureRequest{
		OrderID: uuid.New(),
		Amount:  decimal.RequireFromString("-1.00"),
	})
	assert.Error(t, err)
	assert.Nil(t, receipt)
}

func TestSimulator_CaptureRejectsNilRequest(t *testing.T) {
	authority := newTestSimulator(t)

	receipt, err := authority.Capture(context.Background(), nil)
	assert.Error(t, err)
	assert.Nil(t, receipt)
}
