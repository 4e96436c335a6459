package order

import (
	"context"
	"errors"
	"fmt"

	"github.com/ecommerce/backend/internal/domain/order"
	"github.com/ecommerce/backend/internal/domain/shared"
	"github.com/ecommerce/backend/internal/infrastructure/telemetry"
	"go.uber.org/zap"
)

// CreateOrderHandler handles CreateOrderCommand
type CreateOrderHandler struct {
	repo      order.Repository
	publisher shared.EventPublisher
	logger    *zap.Logger
}

// NewCreateOrderHandler creates a new CreateOrderHandler
func NewCreateOrderHandler(repo order.Repository, publisher shared.EventPublisher, logger *zap.Logger) *CreateOrderHandler {
	return &CreateOrderHandler{
		repo:      repo,
		publisher: publisher,
		logger:    logger,
	}
}

// Handle creates the order, persists it and publishes OrderCreated
func (h *CreateOrderHandler) Handle(ctx context.Context, cmd CreateOrderCommand) error {
	id, err := shared.ParseOrderID(cmd.ID)
	if err != nil {
		return err
	}

	telemetry.Annotate(ctx, telemetry.AttrOrderID.String(id.String()))

	if _, err := h.repo.FindByID(ctx, id); err == nil {
		return order.NewOrderAlreadyExistsError(id)
	} else if !errors.Is(err, shared.ErrNotFound) {
		return fmt.Errorf("failed to check existing order: %w", err)
	}

	productID, err := shared.ParseProductID(cmd.ProductID)
	if err != nil {
		return err
	}
	customerID, err := shared.ParseCustomerID(cmd.CustomerID)
	if err != nil {
		return err
	}
	sellerID, err := shared.ParseSellerID(cmd.SellerID)
	if err != nil {
		return err
	}
	quantity, err := order.NewQuantity(cmd.Quantity)
	if err != nil {
		return err
	}
	price, err := order.NewPriceFromFloat(cmd.Price)
	if err != nil {
		return err
	}

	o := order.CreateOrder(id, productID, quantity, price, customerID, sellerID)

	if err := h.repo.Save(ctx, o); err != nil {
		if errors.Is(err, shared.ErrAlreadyExists) {
			return order.NewOrderAlreadyExistsError(id)
		}
		h.logger.Error("failed to save order",
			zap.String("order_id", id.String()),
			zap.Error(err),
		)
		return err
	}

	h.logger.Info("order created",
		zap.String("order_id", id.String()),
		zap.String("seller_id", sellerID.String()),
		zap.String("price", price.String()),
		zap.Int("quantity", quantity.Int()),
	)

	return h.publisher.Publish(ctx, o.ReleaseEvents()...)
}
