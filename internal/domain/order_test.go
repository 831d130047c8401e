package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanTransition(t *testing.T) {
	assert.NoError(t, CanTransition(OrderStatusPending, OrderStatusAccepted))
	assert.NoError(t, CanTransition(OrderStatusPending, OrderStatusRejected))

	assert.Error(t, CanTransition(OrderStatusPending, OrderStatusPending))
	assert.Error(t, CanTransition(OrderStatusAccepted, OrderStatusRejected))
	assert.Error(t, CanTransition(OrderStatusAccepted, OrderStatusPending))
	assert.Error(t, CanTransition(OrderStatusRejected, OrderStatusAccepted))
}

func TestIsTerminal(t *testing.T) {
	assert.False(t, OrderStatusPending.IsTerminal())
	assert.True(t, OrderStatusAccepted.IsTerminal())
	assert.True(t, OrderStatusRejected.IsTerminal())
}

func TestParseOrderStatus(t *testing.T) {
	status, ok := ParseOrderStatus("ACCEPTED")
	assert.True(t, ok)
	assert.Equal(t, OrderStatusAccepted, status)

	_, ok = ParseOrderStatus("SHIPPED")
	assert.False(t, ok)

	_, ok = ParseOrderStatus("accepted")
	assert.False(t, ok)
}

func TestParseRole(t *testing.T) {
	role, ok := ParseRole("Farmer")
	assert.True(t, ok)
	assert.Equal(t, RoleFarmer, role)

	_, ok = ParseRole("farmer")
	assert.False(t, ok)
}
