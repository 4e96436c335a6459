package models

import (
	"time"

	"github.com/ecommerce/backend/internal/domain/invoice"
	"github.com/ecommerce/backend/internal/domain/shared"
)

// InvoiceModel is the persistence model for the Invoice aggregate root.
// The composite unique index allows one invoice per order and seller.
type InvoiceModel struct {
	ID       string     `gorm:"type:varchar(36);primaryKey"`
	OrderID  string     `gorm:"type:varchar(36);not null;uniqueIndex:idx_invoice_order_seller"`
	SellerID string     `gorm:"type:varchar(36);not null;uniqueIndex:idx_invoice_order_seller;index:idx_invoice_seller_id"`
	FilePath string     `gorm:"type:varchar(500);not null"`
	SentAt   *time.Time `gorm:"index"`
	AggregateModel
}

// TableName returns the table name for GORM
func (InvoiceModel) TableName() string {
	return "invoice"
}

// ToDomain converts the persistence model to a domain Invoice
func (m *InvoiceModel) ToDomain() *invoice.Invoice {
	var sentAt *invoice.SentAt
	if m.SentAt != nil {
		s := invoice.SentAtFromPrimitive(*m.SentAt)
		sentAt = &s
	}
	return invoice.Reconstitute(
		m.AggregateModel.ToDomain(),
		invoice.IDFromPrimitive(m.ID),
		shared.OrderIDFromPrimitive(m.OrderID),
		shared.SellerIDFromPrimitive(m.SellerID),
		invoice.FilePathFromPrimitive(m.FilePath),
		sentAt,
	)
}

// FromDomain populates the persistence model from a domain Invoice
func (m *InvoiceModel) FromDomain(inv *invoice.Invoice) {
	m.FromDomainAggregateRoot(inv.BaseAggregateRoot)
	m.ID = inv.ID().String()
	m.OrderID = inv.OrderID().String()
	m.SellerID = inv.SellerID().String()
	m.FilePath = inv.FilePath().String()
	m.SentAt = nil
	if s := inv.SentAt(); s != nil {
		t := s.Time()
		m.SentAt = &t
	}
}

// InvoiceModelFromDomain creates a new persistence model from a domain Invoice
func InvoiceModelFromDomain(inv *invoice.Invoice) *InvoiceModel {
	m := &InvoiceModel{}
	m.FromDomain(inv)
	return m
}
