package models

import (
	"github.com/ecommerce/backend/internal/domain/invoice"
	"github.com/ecommerce/backend/internal/domain/shared"
)

// OrderProjectionModel is the persistence model for the Invoice context's order projection
type OrderProjectionModel struct {
	OrderID  string `gorm:"type:varchar(36);primaryKey"`
	SellerID string `gorm:"type:varchar(36);not null;index:idx_order_projection_seller_id"`
}

// TableName returns the table name for GORM
func (OrderProjectionModel) TableName() string {
	return "order_projection"
}

// ToDomain converts the persistence model to a domain OrderProjection
func (m *OrderProjectionModel) ToDomain() *invoice.OrderProjection {
	return invoice.NewOrderProjection(
		shared.OrderIDFromPrimitive(m.OrderID),
		shared.SellerIDFromPrimitive(m.SellerID),
	)
}

// OrderProjectionModelFromDomain creates a new persistence model from a domain OrderProjection
func OrderProjectionModelFromDomain(p *invoice.OrderProjection) *OrderProjectionModel {
	return &OrderProjectionModel{
		OrderID:  p.OrderID().String(),
		SellerID: p.SellerID().String(),
	}
}
