package invoice

import (
	"context"

	"github.com/ecommerce/backend/internal/domain/shared"
)

// Repository defines persistence operations for invoices.
// Finders return shared.ErrNotFound when nothing matches.
type Repository interface {
	FindByID(ctx context.Context, id ID) (*Invoice, error)
	FindByOrder(ctx context.Context, orderID shared.OrderID) (*Invoice, error)
	FindByOrderAndSeller(ctx context.Context, orderID shared.OrderID, sellerID shared.SellerID) (*Invoice, error)
	// Save inserts a new invoice; a second invoice for the same order and seller yields shared.ErrAlreadyExists
	Save(ctx context.Context, inv *Invoice) error
	// SaveWithLock updates an existing invoice guarded by its version
	SaveWithLock(ctx context.Context, inv *Invoice) error
}

// ProjectionRepository stores the order projections
type ProjectionRepository interface {
	Find(ctx context.Context, orderID shared.OrderID) (*OrderProjection, error)
	// Save inserts or replaces the projection for its order
	Save(ctx context.Context, p *OrderProjection) error
}
