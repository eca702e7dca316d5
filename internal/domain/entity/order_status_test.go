package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOrderStatus_CanTransitionTo(t *testing.T) {
	tests := []struct {
		from OrderStatus
		to   OrderStatus
		want bool
	}{
		{OrderStatusPending, OrderStatusAccepted, true},
		{OrderStatusPending, OrderStatusRejected, true},
		{OrderStatusAccepted, OrderStatusDelivered, true},
		// Skipping ACCEPTED is not a valid path.
		{OrderStatusPending, OrderStatusDelivered, false},
		{OrderStatusAccepted, OrderStatusRejected, false},
		{OrderStatusAccepted, OrderStatusPending, false},
		// Terminal states allow nothing.
		{OrderStatusRejected, OrderStatusAccepted, false},
		{OrderStatusRejected, OrderStatusDelivered, false},
		{OrderStatusDelivered, OrderStatusRejected, false},
		{OrderStatusDelivered, OrderStatusPending, false},
	}

	for _, tt := range tests {
		t.Run(tt.from.String()+"->"+tt.to.String(), func(t *testing.T) {
			assert.Equal(t, tt.want, tt.from.CanTransitionTo(tt.to))
		})
	}
}

func TestOrderStatus_Terminal(t *testing.T) {
	assert.False(t, OrderStatusPending.Terminal())
	assert.False(t, OrderStatusAccepted.Terminal())
	assert.True(t, OrderStatusRejected.Terminal())
	assert.True(t, OrderStatusDelivered.Terminal())
}

func TestOrderStatus_IsValid(t *testing.T) {
	assert.True(t, OrderStatusPending.IsValid())
	assert.False(t, OrderStatus("SHIPPED").IsValid())
	assert.False(t, OrderStatus("").IsValid())
}
