package persistence

import (
	"context"

	"github.com/ecommerce/backend/internal/domain/invoice"
	"github.com/ecommerce/backend/internal/domain/shared"
	"github.com/ecommerce/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormOrderProjectionRepository implements invoice.ProjectionRepository using GORM
type GormOrderProjectionRepository struct {
	db *gorm.DB
}

// NewGormOrderProjectionRepository creates a new GormOrderProjectionRepository
func NewGormOrderProjectionRepository(db *gorm.DB) *GormOrderProjectionRepository {
	return &GormOrderProjectionRepository{db: db}
}

// Find returns the projection for orderID
func (r *GormOrderProjectionRepository) Find(ctx context.Context, orderID shared.OrderID) (*invoice.OrderProjection, error) {
	var model models.OrderProjectionModel
	if err := r.db.WithContext(ctx).First(&model, "order_id = ?", orderID.String()).Error; err != nil {
		return nil, translateError(err)
	}
	return model.ToDomain(), nil
}

// Save inserts or replaces the projection for its order
func (r *GormOrderProjectionRepository) Save(ctx context.Context, p *invoice.OrderProjection) error {
	model := models.OrderProjectionModelFromDomain(p)
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "order_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"seller_id"}),
		}).
		Create(model).Error
}
