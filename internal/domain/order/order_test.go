package order

import (
	"errors"
	"testing"

	"github.com/ecommerce/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testOrderID    = "550e8400-e29b-41d4-a716-446655440000"
	testProductID  = "6ba7b810-9dad-41d1-80b4-00c04fd430c8"
	testCustomerID = "f47ac10b-58cc-4372-b567-0e02b2c3d479"
	testSellerID   = "9b2e6c1a-3f4d-4e8b-9a7c-1d2e3f4a5b6c"
)

func newTestOrder(t *testing.T) *Order {
	t.Helper()
	quantity, err := NewQuantity(2)
	require.NoError(t, err)
	price, err := NewPriceFromFloat(29.99)
	require.NoError(t, err)

	return CreateOrder(
		shared.OrderIDFromPrimitive(testOrderID),
		shared.ProductIDFromPrimitive(testProductID),
		quantity,
		price,
		shared.CustomerIDFromPrimitive(testCustomerID),
		shared.SellerIDFromPrimitive(testSellerID),
	)
}

func TestCreateOrder(t *testing.T) {
	o := newTestOrder(t)

	assert.Equal(t, StatusCreated, o.Status())
	assert.Equal(t, testOrderID, o.ID().String())
	assert.Equal(t, 1, o.GetVersion())

	events := o.ReleaseEvents()
	require.Len(t, events, 1)

	created, ok := events[0].(*OrderCreatedEvent)
	require.True(t, ok)
	assert.Equal(t, EventTypeOrderCreated, created.EventType())
	assert.Equal(t, 1, created.EventVersion())
	assert.Equal(t, testOrderID, created.AggregateID())
	assert.Equal(t, AggregateTypeOrder, created.AggregateType())
	assert.Equal(t, map[string]any{
		"orderId":    testOrderID,
		"customerId": testCustomerID,
		"sellerId":   testSellerID,
		"price":      "29.99",
		"quantity":   2,
	}, created.Payload())

	assert.Empty(t, o.ReleaseEvents())
}

func TestOrder_UpdateStatus_SameStatusIsNoop(t *testing.T) {
	o := newTestOrder(t)
	o.ReleaseEvents()

	require.NoError(t, o.UpdateStatus(StatusCreated))
	assert.Equal(t, StatusCreated, o.Status())
	assert.False(t, o.HasRecordedEvents())
}

func TestOrder_UpdateStatus_FullLifecycle(t *testing.T) {
	o := newTestOrder(t)
	o.ReleaseEvents()

	require.NoError(t, o.UpdateStatus(StatusAccepted))
	assert.False(t, o.HasRecordedEvents())
	require.NoError(t, o.UpdateStatus(StatusShippingInProgress))
	assert.False(t, o.HasRecordedEvents())
	require.NoError(t, o.UpdateStatus(StatusShipped))

	events := o.ReleaseEvents()
	require.Len(t, events, 1)
	shipped, ok := events[0].(*OrderShippedEvent)
	require.True(t, ok)
	assert.Equal(t, EventTypeOrderShipped, shipped.EventType())
	assert.Equal(t, testOrderID, shipped.AggregateID())
	assert.Equal(t, testCustomerID, shipped.Payload()["customerId"])
	assert.Equal(t, StatusShipped, o.Status())

	// Repeating SHIPPED never emits a second event
	require.NoError(t, o.UpdateStatus(StatusShipped))
	assert.False(t, o.HasRecordedEvents())
}

func TestOrder_UpdateStatus_RejectsIllegalTransition(t *testing.T) {
	o := newTestOrder(t)
	o.ReleaseEvents()

	err := o.UpdateStatus(StatusShipped)
	require.Error(t, err)
	assert.True(t, errors.Is(err, shared.ErrInvalidState))
	assert.Equal(t, StatusCreated, o.Status())
	assert.False(t, o.HasRecordedEvents())
}

func TestOrder_UpdateStatus_TerminalRejected(t *testing.T) {
	o := newTestOrder(t)
	require.NoError(t, o.UpdateStatus(StatusRejected))

	for _, target := range []Status{StatusCreated, StatusAccepted, StatusShippingInProgress, StatusShipped} {
		err := o.UpdateStatus(target)
		assert.Error(t, err, target)
	}
	assert.Equal(t, StatusRejected, o.Status())
}

func TestOrder_ToPrimitives(t *testing.T) {
	o := newTestOrder(t)

	assert.Equal(t, map[string]any{
		"id":         testOrderID,
		"productId":  testProductID,
		"quantity":   2,
		"price":      29.99,
		"customerId": testCustomerID,
		"sellerId":   testSellerID,
		"status":     "CREATED",
	}, o.ToPrimitives())
}

func TestReconstitute_RecordsNoEvents(t *testing.T) {
	base := shared.NewBaseAggregateRoot()
	base.Version = 4
	o := Reconstitute(
		base,
		shared.OrderIDFromPrimitive(testOrderID),
		shared.ProductIDFromPrimitive(testProductID),
		QuantityFromPrimitive(3),
		PriceFromPrimitive(mustPrice(t, 5).Amount()),
		shared.CustomerIDFromPrimitive(testCustomerID),
		shared.SellerIDFromPrimitive(testSellerID),
		StatusAccepted,
	)

	assert.False(t, o.HasRecordedEvents())
	assert.Equal(t, 4, o.GetVersion())
	assert.Equal(t, StatusAccepted, o.Status())
	assert.Equal(t, 3, o.Quantity().Int())
}

func TestOrderErrors(t *testing.T) {
	id := shared.OrderIDFromPrimitive(testOrderID)

	notFound := NewOrderNotFoundError(id)
	assert.True(t, errors.Is(notFound, ErrOrderNotFound))
	assert.Equal(t, "Order with ID: "+testOrderID+" not found.", notFound.Error())

	exists := NewOrderAlreadyExistsError(id)
	assert.True(t, errors.Is(exists, ErrOrderAlreadyExists))
	assert.Equal(t, "Order with ID: "+testOrderID+" already exists.", exists.Error())
}

func mustPrice(t *testing.T, v float64) Price {
	t.Helper()
	p, err := NewPriceFromFloat(v)
	require.NoError(t, err)
	return p
}
