package order

import "github.com/ecommerce/backend/internal/domain/shared"

// Aggregate type constant
const AggregateTypeOrder = "Order"

// Event type constants
const (
	EventTypeOrderCreated = "order.created"
	EventTypeOrderShipped = "order.shipped"
)

// OrderCreatedEvent is raised when a new order is placed.
// The seller id is carried so other contexts can project ownership.
type OrderCreatedEvent struct {
	shared.BaseDomainEvent
	OrderID    string `json:"orderId"`
	CustomerID string `json:"customerId"`
	SellerID   string `json:"sellerId"`
	Price      string `json:"price"`
	Quantity   int    `json:"quantity"`
}

// NewOrderCreatedEvent creates a new OrderCreatedEvent
func NewOrderCreatedEvent(o *Order) *OrderCreatedEvent {
	return &OrderCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeOrderCreated, AggregateTypeOrder, o.id.String()),
		OrderID:         o.id.String(),
		CustomerID:      o.customerID.String(),
		SellerID:        o.sellerID.String(),
		Price:           o.price.String(),
		Quantity:        o.quantity.Int(),
	}
}

// Payload returns the event body
func (e *OrderCreatedEvent) Payload() map[string]any {
	return map[string]any{
		"orderId":    e.OrderID,
		"customerId": e.CustomerID,
		"sellerId":   e.SellerID,
		"price":      e.Price,
		"quantity":   e.Quantity,
	}
}

// OrderShippedEvent is raised when an order reaches SHIPPED.
// Consumers use it to send the invoice to the customer.
type OrderShippedEvent struct {
	shared.BaseDomainEvent
	OrderID    string `json:"orderId"`
	CustomerID string `json:"customerId"`
}

// NewOrderShippedEvent creates a new OrderShippedEvent
func NewOrderShippedEvent(o *Order) *OrderShippedEvent {
	return &OrderShippedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeOrderShipped, AggregateTypeOrder, o.id.String()),
		OrderID:         o.id.String(),
		CustomerID:      o.customerID.String(),
	}
}

// Payload returns the event body
func (e *OrderShippedEvent) Payload() map[string]any {
	return map[string]any{
		"orderId":    e.OrderID,
		"customerId": e.CustomerID,
	}
}
