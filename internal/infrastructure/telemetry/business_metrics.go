package telemetry

import (
	"context"

	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel/metric"
)

// BusinessMetrics counts order and invoice milestones plus the outcome of
// every deduplicated event delivery.
type BusinessMetrics struct {
	orderCreatedTotal    *Counter
	orderAmountTotal     *Counter
	orderShippedTotal    *Counter
	invoiceUploadedTotal *Counter
	invoiceSentTotal     *Counter
	eventDeliveriesTotal *Counter
}

// BusinessMetricsConfig holds configuration for business metrics
type BusinessMetricsConfig struct {
	Meter metric.Meter
}

// NewBusinessMetrics registers the business instruments on cfg.Meter
func NewBusinessMetrics(cfg BusinessMetricsConfig) (*BusinessMetrics, error) {
	if cfg.Meter == nil {
		return nil, ErrMeterNil
	}
	bm := &BusinessMetrics{}
	counters := []struct {
		target           **Counter
		name, desc, unit string
	}{
		{&bm.orderCreatedTotal, "ecommerce_order_created_total", "Total number of orders created", "{orders}"},
		{&bm.orderAmountTotal, "ecommerce_order_amount_total", "Total value of created orders in cents", "{cents}"},
		{&bm.orderShippedTotal, "ecommerce_order_shipped_total", "Total number of orders shipped", "{orders}"},
		{&bm.invoiceUploadedTotal, "ecommerce_invoice_uploaded_total", "Total number of invoices uploaded", "{invoices}"},
		{&bm.invoiceSentTotal, "ecommerce_invoice_sent_total", "Total number of invoices sent to customers", "{invoices}"},
		{&bm.eventDeliveriesTotal, "ecommerce_event_deliveries_total", "Event deliveries by handler and outcome", "{deliveries}"},
	}
	for _, c := range counters {
		counter, err := NewCounter(cfg.Meter, c.name, c.desc, c.unit)
		if err != nil {
			return nil, err
		}
		*c.target = counter
	}
	return bm, nil
}

// RecordOrderCreated counts one order and adds its total, converted to cents
func (bm *BusinessMetrics) RecordOrderCreated(ctx context.Context, amount decimal.Decimal) {
	bm.orderCreatedTotal.Inc(ctx)
	bm.orderAmountTotal.Add(ctx, amount.Mul(decimal.NewFromInt(100)).Round(0).IntPart())
}

// RecordOrderShipped counts one order reaching SHIPPED
func (bm *BusinessMetrics) RecordOrderShipped(ctx context.Context) {
	bm.orderShippedTotal.Inc(ctx)
}

// RecordInvoiceUploaded counts one stored invoice file
func (bm *BusinessMetrics) RecordInvoiceUploaded(ctx context.Context) {
	bm.invoiceUploadedTotal.Inc(ctx)
}

// RecordInvoiceSent counts one invoice delivered to its customer
func (bm *BusinessMetrics) RecordInvoiceSent(ctx context.Context) {
	bm.invoiceSentTotal.Inc(ctx)
}

// RecordDelivery counts one delivery through a deduplicating handler
func (bm *BusinessMetrics) RecordDelivery(ctx context.Context, handler, outcome string) {
	bm.eventDeliveriesTotal.Inc(ctx, AttrHandler.String(handler), AttrOutcome.String(outcome))
}

// ErrMeterNil is returned when meter is nil
var ErrMeterNil = &MetricsError{Op: "NewBusinessMetrics", Err: "meter cannot be nil"}

// MetricsError represents a metrics-related error
type MetricsError struct {
	Op  string
	Err string
}

func (e *MetricsError) Error() string {
	return e.Op + ": " + e.Err
}
