package order

import (
	"context"
	"errors"

	"github.com/ecommerce/backend/internal/domain/order"
	"github.com/ecommerce/backend/internal/domain/shared"
)

// QueryService answers read requests for orders
type QueryService struct {
	repo order.Repository
}

// NewQueryService creates a new QueryService
func NewQueryService(repo order.Repository) *QueryService {
	return &QueryService{repo: repo}
}

// GetOrderDetails returns one order visible to sellerID
func (s *QueryService) GetOrderDetails(ctx context.Context, orderID, sellerID string) (*OrderResponse, error) {
	id, err := shared.ParseOrderID(orderID)
	if err != nil {
		return nil, err
	}
	seller, err := shared.ParseSellerID(sellerID)
	if err != nil {
		return nil, err
	}

	o, err := s.repo.FindByIDAndSeller(ctx, id, seller)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, order.NewOrderNotFoundError(id)
		}
		return nil, err
	}

	resp := ToOrderResponse(o)
	return &resp, nil
}

// GetOrders lists the orders of a seller
func (s *QueryService) GetOrders(ctx context.Context, sellerID string) ([]OrderResponse, error) {
	seller, err := shared.ParseSellerID(sellerID)
	if err != nil {
		return nil, err
	}

	orders, err := s.repo.FindBySeller(ctx, seller)
	if err != nil {
		return nil, err
	}
	return ToOrderResponses(orders), nil
}
