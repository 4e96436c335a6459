package models

import (
	"github.com/ecommerce/backend/internal/domain/order"
	"github.com/ecommerce/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// OrderModel is the persistence model for the Order aggregate root
type OrderModel struct {
	ID         string          `gorm:"type:varchar(36);primaryKey"`
	ProductID  string          `gorm:"type:varchar(36);not null"`
	Quantity   int             `gorm:"not null"`
	Price      decimal.Decimal `gorm:"type:numeric(10,2);not null"`
	CustomerID string          `gorm:"type:varchar(36);not null;index:idx_order_customer_id"`
	SellerID   string          `gorm:"type:varchar(36);not null;index:idx_order_seller_id"`
	Status     string          `gorm:"type:varchar(30);not null"`
	AggregateModel
}

// TableName returns the table name for GORM
func (OrderModel) TableName() string {
	return "order"
}

// ToDomain converts the persistence model to a domain Order
func (m *OrderModel) ToDomain() *order.Order {
	return order.Reconstitute(
		m.AggregateModel.ToDomain(),
		shared.OrderIDFromPrimitive(m.ID),
		shared.ProductIDFromPrimitive(m.ProductID),
		order.QuantityFromPrimitive(m.Quantity),
		order.PriceFromPrimitive(m.Price),
		shared.CustomerIDFromPrimitive(m.CustomerID),
		shared.SellerIDFromPrimitive(m.SellerID),
		order.Status(m.Status),
	)
}

// FromDomain populates the persistence model from a domain Order
func (m *OrderModel) FromDomain(o *order.Order) {
	m.FromDomainAggregateRoot(o.BaseAggregateRoot)
	m.ID = o.ID().String()
	m.ProductID = o.ProductID().String()
	m.Quantity = o.Quantity().Int()
	m.Price = o.Price().Amount()
	m.CustomerID = o.CustomerID().String()
	m.SellerID = o.SellerID().String()
	m.Status = o.Status().String()
}

// OrderModelFromDomain creates a new persistence model from a domain Order
func OrderModelFromDomain(o *order.Order) *OrderModel {
	m := &OrderModel{}
	m.FromDomain(o)
	return m
}
