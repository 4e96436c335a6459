package models

import (
	"time"

	"github.com/ecommerce/backend/internal/domain/shared"
)

// AggregateModel provides the common persistence fields for aggregate roots,
// with version for optimistic locking.
type AggregateModel struct {
	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
	Version   int       `gorm:"not null;default:1"`
}

// ToDomain converts AggregateModel to a domain BaseAggregateRoot with an empty event buffer
func (m *AggregateModel) ToDomain() shared.BaseAggregateRoot {
	return shared.BaseAggregateRoot{
		Version:   m.Version,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

// FromDomainAggregateRoot populates AggregateModel from domain BaseAggregateRoot
func (m *AggregateModel) FromDomainAggregateRoot(a shared.BaseAggregateRoot) {
	m.CreatedAt = a.CreatedAt
	m.UpdatedAt = a.UpdatedAt
	m.Version = a.Version
}

// Schema lists the model of every table. Used to create the schema on SQLite,
// where the versioned PostgreSQL migrations do not apply.
func Schema() []any {
	return []any{
		&OrderModel{},
		&InvoiceModel{},
		&OrderProjectionModel{},
	}
}
