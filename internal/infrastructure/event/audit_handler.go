package event

import (
	"context"

	"github.com/ecommerce/backend/internal/domain/shared"
	"github.com/ecommerce/backend/internal/infrastructure/logger"
	"go.uber.org/zap"
)

// AuditHandler is a wildcard subscriber that logs every event in its wire form
type AuditHandler struct {
	logger *zap.Logger
}

// NewAuditHandler creates an AuditHandler
func NewAuditHandler(logger *zap.Logger) *AuditHandler {
	return &AuditHandler{logger: logger.Named("audit")}
}

// EventTypes is empty so the handler receives all events
func (h *AuditHandler) EventTypes() []string {
	return nil
}

// HandlerName implements NamedHandler
func (h *AuditHandler) HandlerName() string {
	return "audit"
}

// Handle logs the event envelope
func (h *AuditHandler) Handle(ctx context.Context, event shared.DomainEvent) error {
	logger.WithTraceContext(ctx, h.logger).Info("domain event",
		zap.String("event_type", event.EventType()),
		zap.String("event_id", event.EventID().String()),
		zap.String("aggregate_type", event.AggregateType()),
		zap.String("aggregate_id", event.AggregateID()),
		zap.Any("envelope", shared.EventToPrimitives(event)),
	)
	return nil
}
