package order

import (
	"time"

	"github.com/ecommerce/backend/internal/domain/order"
)

// OrderResponse is the read model returned by order queries
type OrderResponse struct {
	ID         string    `json:"id"`
	ProductID  string    `json:"productId"`
	Quantity   int       `json:"quantity"`
	Price      float64   `json:"price"`
	CustomerID string    `json:"customerId"`
	SellerID   string    `json:"sellerId"`
	Status     string    `json:"status"`
	Version    int       `json:"version"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

// ToOrderResponse converts a domain order to its response form
func ToOrderResponse(o *order.Order) OrderResponse {
	return OrderResponse{
		ID:         o.ID().String(),
		ProductID:  o.ProductID().String(),
		Quantity:   o.Quantity().Int(),
		Price:      o.Price().Float64(),
		CustomerID: o.CustomerID().String(),
		SellerID:   o.SellerID().String(),
		Status:     o.Status().String(),
		Version:    o.GetVersion(),
		CreatedAt:  o.CreatedAt,
		UpdatedAt:  o.UpdatedAt,
	}
}

// ToOrderResponses converts a slice of orders
func ToOrderResponses(orders []*order.Order) []OrderResponse {
	out := make([]OrderResponse, len(orders))
	for i, o := range orders {
		out[i] = ToOrderResponse(o)
	}
	return out
}
