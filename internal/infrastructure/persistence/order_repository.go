package persistence

import (
	"context"
	"fmt"

	"github.com/ecommerce/backend/internal/domain/order"
	"github.com/ecommerce/backend/internal/domain/shared"
	"github.com/ecommerce/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormOrderRepository implements order.Repository using GORM
type GormOrderRepository struct {
	db *gorm.DB
}

// NewGormOrderRepository creates a new GormOrderRepository
func NewGormOrderRepository(db *gorm.DB) *GormOrderRepository {
	return &GormOrderRepository{db: db}
}

// FindByID finds an order by its ID
func (r *GormOrderRepository) FindByID(ctx context.Context, id shared.OrderID) (*order.Order, error) {
	var model models.OrderModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id.String()).Error; err != nil {
		return nil, translateError(err)
	}
	return model.ToDomain(), nil
}

// FindByIDAndSeller finds an order by ID owned by sellerID
func (r *GormOrderRepository) FindByIDAndSeller(ctx context.Context, id shared.OrderID, sellerID shared.SellerID) (*order.Order, error) {
	var model models.OrderModel
	if err := r.db.WithContext(ctx).
		Where("id = ? AND seller_id = ?", id.String(), sellerID.String()).
		First(&model).Error; err != nil {
		return nil, translateError(err)
	}
	return model.ToDomain(), nil
}

// FindBySeller lists all orders owned by sellerID, oldest first
func (r *GormOrderRepository) FindBySeller(ctx context.Context, sellerID shared.SellerID) ([]*order.Order, error) {
	var orderModels []models.OrderModel
	if err := r.db.WithContext(ctx).
		Where("seller_id = ?", sellerID.String()).
		Order("created_at ASC, id ASC").
		Find(&orderModels).Error; err != nil {
		return nil, err
	}
	orders := make([]*order.Order, len(orderModels))
	for i := range orderModels {
		orders[i] = orderModels[i].ToDomain()
	}
	return orders, nil
}

// Save inserts a new order
func (r *GormOrderRepository) Save(ctx context.Context, o *order.Order) error {
	model := models.OrderModelFromDomain(o)
	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		return translateError(err)
	}
	return nil
}

// SaveWithLock updates an order only if the stored version still matches
// the loaded one. On success the aggregate version is incremented.
func (r *GormOrderRepository) SaveWithLock(ctx context.Context, o *order.Order) error {
	model := models.OrderModelFromDomain(o)
	result := r.db.WithContext(ctx).
		Model(&models.OrderModel{}).
		Where("id = ? AND version = ?", model.ID, model.Version).
		Updates(map[string]any{
			"product_id":  model.ProductID,
			"quantity":    model.Quantity,
			"price":       model.Price,
			"customer_id": model.CustomerID,
			"seller_id":   model.SellerID,
			"status":      model.Status,
			"updated_at":  model.UpdatedAt,
			"version":     model.Version + 1,
		})
	if result.Error != nil {
		return fmt.Errorf("failed to update order: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return lockFailure(ctx, r.db, &models.OrderModel{}, model.ID)
	}
	o.IncrementVersion()
	return nil
}

// lockFailure tells a missing row apart from a stale version
func lockFailure(ctx context.Context, db *gorm.DB, model any, id string) error {
	var count int64
	if err := db.WithContext(ctx).Model(model).Where("id = ?", id).Count(&count).Error; err != nil {
		return fmt.Errorf("failed to check row existence: %w", err)
	}
	if count == 0 {
		return shared.ErrNotFound
	}
	return shared.ErrConcurrencyConflict
}
