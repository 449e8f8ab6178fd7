package entity

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBookFormat_UnitPrice(t *testing.T) {
	assert.True(t, FormatDigital.UnitPrice().Equal(decimal.NewFromFloat(9.99)))
	assert.True(t, FormatPaperback.UnitPrice().Equal(decimal.NewFromFloat(19.99)))
	assert.True(t, FormatHardcover.UnitPrice().Equal(decimal.NewFromFloat(29.99)))
}

func TestBookFormat_UnitPrice_UnknownFallsBackToDigital(t *testing.T) {
	assert.True(t, BookFormat("audiobook").UnitPrice().Equal(decimal.NewFromFloat(9.99)))
	assert.True(t, BookFormat("").UnitPrice().Equal(decimal.NewFromFloat(9.99)))
}

func TestOrder_Transition_AnyKnownStatus(t *testing.T) {
	order := &Order{Status: OrderStatusPending}

	require.NoError(t, order.Transition(OrderStatusPaid))
	assert.Equal(t, OrderStatusPaid, order.Status)

	// No transition graph: paid may move back to pending.
	require.NoError(t, order.Transition(OrderStatusPending))
	assert.Equal(t, OrderStatusPending, order.Status)

	require.NoError(t, order.Transition(OrderStatusCancelled))
	require.NoError(t, order.Transition(OrderStatusFulfilled))
}

func TestOrder_Transition_UnknownStatus(t *testing.T) {
	order := &Order{Status: OrderStatusPending}

	err := order.Transition(OrderStatus("shipped"))

	assert.ErrorIs(t, err, ErrUnknownOrderStatus)
	assert.Equal(t, OrderStatusPending, order.Status)
}

func TestOrderStatus_Valid(t *testing.T) {
	assert.True(t, OrderStatusPending.Valid())
	assert.True(t, OrderStatusPaid.Valid())
	assert.True(t, OrderStatusFulfilled.Valid())
	assert.True(t, OrderStatusCancelled.Valid())
	assert.False(t, OrderStatus("refunded").Valid())
}
