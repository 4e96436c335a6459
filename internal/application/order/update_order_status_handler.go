package order

import (
	"context"
	"errors"

	"github.com/ecommerce/backend/internal/domain/order"
	"github.com/ecommerce/backend/internal/domain/shared"
	"github.com/ecommerce/backend/internal/infrastructure/telemetry"
	"go.uber.org/zap"
)

// UpdateOrderStatusHandler handles UpdateOrderStatusCommand
type UpdateOrderStatusHandler struct {
	repo      order.Repository
	publisher shared.EventPublisher
	logger    *zap.Logger
}

// NewUpdateOrderStatusHandler creates a new UpdateOrderStatusHandler
func NewUpdateOrderStatusHandler(repo order.Repository, publisher shared.EventPublisher, logger *zap.Logger) *UpdateOrderStatusHandler {
	return &UpdateOrderStatusHandler{
		repo:      repo,
		publisher: publisher,
		logger:    logger,
	}
}

// Handle applies the status change to the seller's order.
// Inputs are fully validated before the repository is touched.
func (h *UpdateOrderStatusHandler) Handle(ctx context.Context, cmd UpdateOrderStatusCommand) error {
	id, err := shared.ParseOrderID(cmd.OrderID)
	if err != nil {
		return err
	}
	sellerID, err := shared.ParseSellerID(cmd.SellerID)
	if err != nil {
		return err
	}
	status, err := order.ParseStatus(cmd.Status)
	if err != nil {
		return err
	}
	telemetry.Annotate(ctx,
		telemetry.AttrOrderID.String(id.String()),
		telemetry.AttrSellerID.String(sellerID.String()),
		telemetry.AttrOrderStatus.String(status.String()),
	)

	o, err := h.repo.FindByIDAndSeller(ctx, id, sellerID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return order.NewOrderNotFoundError(id)
		}
		return err
	}

	previous := o.Status()
	if previous.Equals(status) {
		h.logger.Debug("order already in requested status",
			zap.String("order_id", id.String()),
			zap.String("status", status.String()),
		)
		return nil
	}
	if err := o.UpdateStatus(status); err != nil {
		h.logger.Warn("order status change rejected",
			zap.String("order_id", id.String()),
			zap.String("from", previous.String()),
			zap.String("to", status.String()),
		)
		return err
	}

	if err := h.repo.SaveWithLock(ctx, o); err != nil {
		return err
	}

	h.logger.Info("order status updated",
		zap.String("order_id", id.String()),
		zap.String("from", previous.String()),
		zap.String("to", status.String()),
	)

	return h.publisher.Publish(ctx, o.ReleaseEvents()...)
}
