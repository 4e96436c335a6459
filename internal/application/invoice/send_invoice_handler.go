package invoice

import (
	"context"
	"errors"

	"github.com/ecommerce/backend/internal/domain/invoice"
	"github.com/ecommerce/backend/internal/domain/shared"
	"github.com/ecommerce/backend/internal/infrastructure/telemetry"
	"go.uber.org/zap"
)

// SendInvoiceHandler handles SendInvoiceCommand
type SendInvoiceHandler struct {
	repo      invoice.Repository
	publisher shared.EventPublisher
	logger    *zap.Logger
}

// NewSendInvoiceHandler creates a new SendInvoiceHandler
func NewSendInvoiceHandler(repo invoice.Repository, publisher shared.EventPublisher, logger *zap.Logger) *SendInvoiceHandler {
	return &SendInvoiceHandler{
		repo:      repo,
		publisher: publisher,
		logger:    logger,
	}
}

// Handle marks the order's invoice as sent
func (h *SendInvoiceHandler) Handle(ctx context.Context, cmd SendInvoiceCommand) error {
	orderID, err := shared.ParseOrderID(cmd.OrderID)
	if err != nil {
		return err
	}

	inv, err := h.repo.FindByOrder(ctx, orderID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return invoice.NewInvoiceNotFoundError(orderID)
		}
		return err
	}

	telemetry.Annotate(ctx,
		telemetry.AttrInvoiceID.String(inv.ID().String()),
		telemetry.AttrOrderID.String(orderID.String()),
	)

	if inv.IsSent() {
		h.logger.Info("invoice already sent, skipping",
			zap.String("invoice_id", inv.ID().String()),
			zap.String("order_id", orderID.String()),
		)
		return nil
	}

	if err := inv.Send(cmd.Date); err != nil {
		return err
	}

	if err := h.repo.SaveWithLock(ctx, inv); err != nil {
		return err
	}

	h.logger.Info("invoice sent",
		zap.String("invoice_id", inv.ID().String()),
		zap.String("order_id", orderID.String()),
		zap.Time("sent_at", cmd.Date),
	)

	return h.publisher.Publish(ctx, inv.ReleaseEvents()...)
}
