package invoice

import (
	"context"
	"fmt"
	"time"

	"github.com/ecommerce/backend/internal/domain/order"
	"github.com/ecommerce/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// SendInvoiceToCustomerHandler handles OrderShipped by dispatching SendInvoiceCommand
type SendInvoiceToCustomerHandler struct {
	commands shared.CommandDispatcher
	now      func() time.Time
	logger   *zap.Logger
}

// NewSendInvoiceToCustomerHandler creates a new SendInvoiceToCustomerHandler
func NewSendInvoiceToCustomerHandler(commands shared.CommandDispatcher, logger *zap.Logger) *SendInvoiceToCustomerHandler {
	return &SendInvoiceToCustomerHandler{
		commands: commands,
		now:      time.Now,
		logger:   logger,
	}
}

// WithClock replaces the time source used for the send date
func (h *SendInvoiceToCustomerHandler) WithClock(now func() time.Time) *SendInvoiceToCustomerHandler {
	h.now = now
	return h
}

// EventTypes returns the event types this handler is interested in
func (h *SendInvoiceToCustomerHandler) EventTypes() []string {
	return []string{order.EventTypeOrderShipped}
}

// Handle dispatches SendInvoiceCommand for the shipped order
func (h *SendInvoiceToCustomerHandler) Handle(ctx context.Context, event shared.DomainEvent) error {
	if event.EventType() != order.EventTypeOrderShipped {
		return fmt.Errorf("unexpected event type: expected %s, got %s",
			order.EventTypeOrderShipped, event.EventType())
	}

	cmd := SendInvoiceCommand{OrderID: event.AggregateID(), Date: h.now()}
	if err := h.commands.Dispatch(ctx, cmd); err != nil {
		h.logger.Warn("failed to send invoice for shipped order",
			zap.String("order_id", cmd.OrderID),
			zap.Error(err),
		)
		return err
	}
	return nil
}
