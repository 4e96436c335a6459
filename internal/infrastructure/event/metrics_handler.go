package event

import (
	"context"

	"github.com/ecommerce/backend/internal/domain/invoice"
	"github.com/ecommerce/backend/internal/domain/order"
	"github.com/ecommerce/backend/internal/domain/shared"
	"github.com/ecommerce/backend/internal/infrastructure/telemetry"
	"github.com/shopspring/decimal"
)

// MetricsHandler is a wildcard subscriber that turns order and invoice
// milestones into business counters
type MetricsHandler struct {
	metrics *telemetry.BusinessMetrics
}

// NewMetricsHandler creates a MetricsHandler
func NewMetricsHandler(metrics *telemetry.BusinessMetrics) *MetricsHandler {
	return &MetricsHandler{metrics: metrics}
}

func (h *MetricsHandler) EventTypes() []string {
	return nil
}

// HandlerName implements NamedHandler
func (h *MetricsHandler) HandlerName() string {
	return "metrics"
}

// Handle never fails; events it does not count are ignored
func (h *MetricsHandler) Handle(ctx context.Context, event shared.DomainEvent) error {
	switch event.EventType() {
	case order.EventTypeOrderCreated:
		h.metrics.RecordOrderCreated(ctx, orderTotal(event.Payload()))
	case order.EventTypeOrderShipped:
		h.metrics.RecordOrderShipped(ctx)
	case invoice.EventTypeInvoiceUploaded:
		h.metrics.RecordInvoiceUploaded(ctx)
	case invoice.EventTypeInvoiceSent:
		h.metrics.RecordInvoiceSent(ctx)
	}
	return nil
}

// orderTotal is price times quantity, or zero when the payload is malformed
func orderTotal(payload map[string]any) decimal.Decimal {
	raw, _ := payload["price"].(string)
	price, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero
	}

	var quantity int64
	switch q := payload["quantity"].(type) {
	case int:
		quantity = int64(q)
	case float64:
		quantity = int64(q)
	}
	return price.Mul(decimal.NewFromInt(quantity))
}
