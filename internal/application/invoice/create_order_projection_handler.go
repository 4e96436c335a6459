package invoice

import (
	"context"
	"fmt"

	"github.com/ecommerce/backend/internal/domain/invoice"
	"github.com/ecommerce/backend/internal/domain/order"
	"github.com/ecommerce/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// CreateOrderProjectionHandler handles OrderCreated by recording which seller owns the order
type CreateOrderProjectionHandler struct {
	projections invoice.ProjectionRepository
	logger      *zap.Logger
}

// NewCreateOrderProjectionHandler creates a new CreateOrderProjectionHandler
func NewCreateOrderProjectionHandler(projections invoice.ProjectionRepository, logger *zap.Logger) *CreateOrderProjectionHandler {
	return &CreateOrderProjectionHandler{
		projections: projections,
		logger:      logger,
	}
}

// EventTypes returns the event types this handler is interested in
func (h *CreateOrderProjectionHandler) EventTypes() []string {
	return []string{order.EventTypeOrderCreated}
}

// Handle saves the projection; persistence failures go back to the bus
func (h *CreateOrderProjectionHandler) Handle(ctx context.Context, event shared.DomainEvent) error {
	if event.EventType() != order.EventTypeOrderCreated {
		return fmt.Errorf("unexpected event type: expected %s, got %s",
			order.EventTypeOrderCreated, event.EventType())
	}

	sellerID, ok := event.Payload()["sellerId"].(string)
	if !ok || sellerID == "" {
		return fmt.Errorf("event %s has no sellerId in payload", event.EventID())
	}

	projection := invoice.NewOrderProjection(
		shared.OrderIDFromPrimitive(event.AggregateID()),
		shared.SellerIDFromPrimitive(sellerID),
	)
	if err := h.projections.Save(ctx, projection); err != nil {
		h.logger.Error("failed to save order projection",
			zap.String("order_id", event.AggregateID()),
			zap.Error(err),
		)
		return fmt.Errorf("failed to save order projection: %w", err)
	}

	h.logger.Debug("order projection saved",
		zap.String("order_id", event.AggregateID()),
		zap.String("seller_id", sellerID),
	)
	return nil
}
