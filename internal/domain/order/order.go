package order

import (
	"fmt"

	"github.com/ecommerce/backend/internal/domain/shared"
)

// Error codes raised by the order context
var (
	ErrOrderNotFound      = shared.NewDomainError("ORDER_NOT_FOUND", "Order not found")
	ErrOrderAlreadyExists = shared.NewDomainError("ORDER_ALREADY_EXISTS", "Order already exists")
)

// NewOrderNotFoundError reports that no order with id is visible to the caller
func NewOrderNotFoundError(id shared.OrderID) error {
	return shared.NewDomainError(ErrOrderNotFound.Code, fmt.Sprintf("Order with ID: %s not found.", id))
}

// NewOrderAlreadyExistsError reports a duplicate order id
func NewOrderAlreadyExistsError(id shared.OrderID) error {
	return shared.NewDomainError(ErrOrderAlreadyExists.Code, fmt.Sprintf("Order with ID: %s already exists.", id))
}

// Order is the aggregate root for a customer's purchase from a seller.
// Identity and references are immutable; status only moves through UpdateStatus.
type Order struct {
	shared.BaseAggregateRoot
	id         shared.OrderID
	productID  shared.ProductID
	quantity   Quantity
	price      Price
	customerID shared.CustomerID
	sellerID   shared.SellerID
	status     Status
}

// CreateOrder places a new order in CREATED status and records OrderCreated
func CreateOrder(
	id shared.OrderID,
	productID shared.ProductID,
	quantity Quantity,
	price Price,
	customerID shared.CustomerID,
	sellerID shared.SellerID,
) *Order {
	o := &Order{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		id:                id,
		productID:         productID,
		quantity:          quantity,
		price:             price,
		customerID:        customerID,
		sellerID:          sellerID,
		status:            StatusCreated,
	}
	o.RecordEvent(NewOrderCreatedEvent(o))
	return o
}

// Reconstitute rebuilds an order from persisted state without recording events
func Reconstitute(
	base shared.BaseAggregateRoot,
	id shared.OrderID,
	productID shared.ProductID,
	quantity Quantity,
	price Price,
	customerID shared.CustomerID,
	sellerID shared.SellerID,
	status Status,
) *Order {
	return &Order{
		BaseAggregateRoot: base,
		id:                id,
		productID:         productID,
		quantity:          quantity,
		price:             price,
		customerID:        customerID,
		sellerID:          sellerID,
		status:            status,
	}
}

// UpdateStatus moves the order to status.
// The same status is a no-op. Transitions outside the lifecycle table are
// rejected with an INVALID_STATE error. Reaching SHIPPED records OrderShipped.
func (o *Order) UpdateStatus(status Status) error {
	if o.status.Equals(status) {
		return nil
	}
	if !o.status.CanTransitionTo(status) {
		return shared.NewDomainError(shared.ErrInvalidState.Code,
			fmt.Sprintf("Cannot change order status from %s to %s", o.status, status))
	}

	o.status = status
	o.Touch()

	if status.IsShipped() {
		o.RecordEvent(NewOrderShippedEvent(o))
	}
	return nil
}

// ID returns the order identifier
func (o *Order) ID() shared.OrderID { return o.id }

// ProductID returns the ordered product
func (o *Order) ProductID() shared.ProductID { return o.productID }

// Quantity returns the ordered quantity
func (o *Order) Quantity() Quantity { return o.quantity }

// Price returns the order price
func (o *Order) Price() Price { return o.price }

// CustomerID returns the purchasing customer
func (o *Order) CustomerID() shared.CustomerID { return o.customerID }

// SellerID returns the selling party
func (o *Order) SellerID() shared.SellerID { return o.sellerID }

// Status returns the current status
func (o *Order) Status() Status { return o.status }

// ToPrimitives returns the order as a flat map
func (o *Order) ToPrimitives() map[string]any {
	return map[string]any{
		"id":         o.id.String(),
		"productId":  o.productID.String(),
		"quantity":   o.quantity.Int(),
		"price":      o.price.Float64(),
		"customerId": o.customerID.String(),
		"sellerId":   o.sellerID.String(),
		"status":     o.status.String(),
	}
}
