package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/mkulimalink/internal/domain"
	"github.com/spec-kit/mkulimalink/internal/events"
	"github.com/spec-kit/mkulimalink/internal/repository/inmem"
)

func newOrderFixture() (*OrderService, *inmem.OrderRepository, events.Dispatcher) {
	orders := inmem.NewOrderRepository()
	dispatcher := events.NewInMemoryDispatcher()
	return NewOrderService(orders, dispatcher), orders, dispatcher
}

func orderInput() PlaceOrderInput {
	return PlaceOrderInput{
		BuyerName:       "Wanjiku",
		BuyerNationalID: "12345678",
		BuyerPhone:      "0722000111",
		FarmerPhone:     "0712345678",
		CropType:        "maize",
		Quantity:        10,
	}
}

func TestPlaceOrderNormalizesPhonesAndStartsPending(t *testing.T) {
	svc, _, _ := newOrderFixture()

	order, err := svc.PlaceOrder(context.Background(), orderInput())
	require.NoError(t, err)
	assert.Equal(t, domain.OrderStatusPending, order.Status)
	assert.Equal(t, "+254722000111", order.BuyerPhone)
	assert.Equal(t, "+254712345678", order.FarmerPhone)
}

func TestPlaceOrderValidation(t *testing.T) {
	svc, _, _ := newOrderFixture()
	ctx := context.Background()

	input := orderInput()
	input.BuyerName = ""
	_, err := svc.PlaceOrder(ctx, input)
	assertCode(t, err, "INVALID_INPUT")

	input = orderInput()
	input.Quantity = 0
	_, err = svc.PlaceOrder(ctx, input)
	assertCode(t, err, "INVALID_INPUT")

	input = orderInput()
	input.BuyerPhone = "12345"
	_, err = svc.PlaceOrder(ctx, input)
	assertCode(t, err, "INVALID_PHONE")

	input = orderInput()
	input.FarmerPhone = "nope"
	_, err = svc.PlaceOrder(ctx, input)
	assertCode(t, err, "INVALID_PHONE")
}

func TestListOrdersByEitherParty(t *testing.T) {
	svc, _, _ := newOrderFixture()
	ctx := context.Background()

	first, err := svc.PlaceOrder(ctx, orderInput())
	require.NoError(t, err)
	second, err := svc.PlaceOrder(ctx, orderInput())
	require.NoError(t, err)

	buyerOrders, err := svc.ListForBuyer(ctx, "0722 000 111")
	require.NoError(t, err)
	require.Len(t, buyerOrders, 2)
	// Most recent first.
	assert.Equal(t, second.ID, buyerOrders[0].ID)
	assert.Equal(t, first.ID, buyerOrders[1].ID)

	farmerOrders, err := svc.ListForFarmer(ctx, "712345678")
	require.NoError(t, err)
	assert.Len(t, farmerOrders, 2)

	_, err = svc.ListForBuyer(ctx, "bogus")
	assertCode(t, err, "INVALID_PHONE")
}

func TestUpdateStatusGuardedTransitions(t *testing.T) {
	svc, _, _ := newOrderFixture()
	ctx := context.Background()

	order, err := svc.PlaceOrder(ctx, orderInput())
	require.NoError(t, err)

	updated, err := svc.UpdateStatus(ctx, order.ID, "ACCEPTED")
	require.NoError(t, err)
	assert.Equal(t, domain.OrderStatusAccepted, updated.Status)

	buyerOrders, err := svc.ListForBuyer(ctx, "0722000111")
	require.NoError(t, err)
	require.Len(t, buyerOrders, 1)
	assert.Equal(t, domain.OrderStatusAccepted, buyerOrders[0].Status)

	// Terminal orders cannot move again.
	_, err = svc.UpdateStatus(ctx, order.ID, "REJECTED")
	assertCode(t, err, "INVALID_STATUS")
}

func TestUpdateStatusRejectsBadTargets(t *testing.T) {
	svc, _, _ := newOrderFixture()
	ctx := context.Background()

	order, err := svc.PlaceOrder(ctx, orderInput())
	require.NoError(t, err)

	_, err = svc.UpdateStatus(ctx, order.ID, "SHIPPED")
	assertCode(t, err, "INVALID_STATUS")

	_, err = svc.UpdateStatus(ctx, order.ID, "PENDING")
	assertCode(t, err, "INVALID_STATUS")

	_, err = svc.UpdateStatus(ctx, 9999, "ACCEPTED")
	assertCode(t, err, "NOT_FOUND")
}

func TestUpdateStatusNotifiesBuyer(t *testing.T) {
	orders := inmem.NewOrderRepository()
	dispatcher := events.NewInMemoryDispatcher()
	svc := NewOrderService(orders, dispatcher)

	var gotEvents []events.Event
	dispatcher.Subscribe(events.EventOrderStatusChanged, func(_ context.Context, e events.Event) error {
		gotEvents = append(gotEvents, e)
		return nil
	})

	ctx := context.Background()
	order, err := svc.PlaceOrder(ctx, orderInput())
	require.NoError(t, err)

	_, err = svc.UpdateStatus(ctx, order.ID, "REJECTED")
	require.NoError(t, err)

	require.Len(t, gotEvents, 1)
	payload, ok := gotEvents[0].Payload.(events.OrderStatusChangedPayload)
	require.True(t, ok)
	assert.Equal(t, domain.OrderStatusPending, payload.OldStatus)
	assert.Equal(t, domain.OrderStatusRejected, payload.NewStatus)
	assert.Equal(t, "+254722000111", payload.BuyerPhone)
}
