package invoice

import "github.com/ecommerce/backend/internal/domain/shared"

// OrderProjection is the Invoice context's local view of an order.
// It is filled from order.created and answers which seller owns an order.
type OrderProjection struct {
	orderID  shared.OrderID
	sellerID shared.SellerID
}

// NewOrderProjection creates a projection for an order
func NewOrderProjection(orderID shared.OrderID, sellerID shared.SellerID) *OrderProjection {
	return &OrderProjection{orderID: orderID, sellerID: sellerID}
}

// OrderID returns the projected order
func (p *OrderProjection) OrderID() shared.OrderID { return p.orderID }

// SellerID returns the owning seller
func (p *OrderProjection) SellerID() shared.SellerID { return p.sellerID }

// BelongsTo reports whether sellerID owns the order
func (p *OrderProjection) BelongsTo(sellerID shared.SellerID) bool {
	return p.sellerID.Equals(sellerID)
}
