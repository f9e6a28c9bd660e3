package entity

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOrderStatus_Transitions(t *testing.T) {
	allowed := map[OrderStatus][]OrderStatus{
		OrderStatusPending:    {OrderStatusProcessing, OrderStatusCancelled},
		OrderStatusProcessing: {OrderStatusShipped, OrderStatusCancelled},
		OrderStatusShipped:    {OrderStatusDelivered},
	}
	all := []OrderStatus{OrderStatusPending, OrderStatusProcessing, OrderStatusShipped, OrderStatusDelivered, OrderStatusCancelled}

	for _, from := range all {
		for _, to := range all {
			want := false
			for _, candidate := range allowed[from] {
				if candidate == to {
					want = true
				}
			}
			assert.Equal(t, want, from.CanTransitionTo(to), "%s -> %s", from, to)
		}
	}

	assert.True(t, OrderStatusDelivered.IsTerminal())
	assert.True(t, OrderStatusCancelled.IsTerminal())
	assert.False(t, OrderStatusPending.IsTerminal())
	assert.False(t, OrderStatus("lost").IsValid())
}

func TestOrder_TransitionTo(t *testing.T) {
	now := time.Now()
	order := &Order{Status: OrderStatusPending}

	require.NoError(t, order.TransitionTo(OrderStatusProcessing, now))
	assert.Equal(t, OrderStatusProcessing, order.Status)
	assert.Equal(t, now, order.UpdatedAt)

	err := order.TransitionTo(OrderStatusPending, now)
	require.Error(t, err)
	assert.Equal(t, OrderStatusProcessing, order.Status)
}

func TestOrder_Subtotal(t *testing.T) {
	order := &Order{TotalAmount: decimal.NewFromInt(4000), DeliveryFee: decimal.NewFromInt(500)}

	assertDecimal(t, "3500", order.Subtotal())
}
