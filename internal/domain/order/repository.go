package order

import (
	"context"

	"github.com/ecommerce/backend/internal/domain/shared"
)

// Repository defines persistence operations for orders.
// Finders return shared.ErrNotFound when nothing matches.
type Repository interface {
	FindByID(ctx context.Context, id shared.OrderID) (*Order, error)
	// FindByIDAndSeller does not distinguish a missing order from one owned by another seller
	FindByIDAndSeller(ctx context.Context, id shared.OrderID, sellerID shared.SellerID) (*Order, error)
	FindBySeller(ctx context.Context, sellerID shared.SellerID) ([]*Order, error)
	// Save inserts a new order; a duplicate id yields shared.ErrAlreadyExists
	Save(ctx context.Context, o *Order) error
	// SaveWithLock updates an existing order guarded by its version
	SaveWithLock(ctx context.Context, o *Order) error
}
