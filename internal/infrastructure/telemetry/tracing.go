package telemetry

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// TracerName is the instrumentation scope for spans started by this service
const TracerName = "ecommerce-backend"

// Span attribute keys shared by the buses, storage and application handlers
const (
	AttrCommandName   = attribute.Key("messaging.command.name")
	AttrEventType     = attribute.Key("messaging.event.type")
	AttrEventID       = attribute.Key("messaging.event.id")
	AttrAggregateID   = attribute.Key("messaging.event.aggregate_id")
	AttrHandler       = attribute.Key("messaging.handler")
	AttrOrderID       = attribute.Key("order.id")
	AttrSellerID      = attribute.Key("seller.id")
	AttrOrderStatus   = attribute.Key("order.status")
	AttrInvoiceID     = attribute.Key("invoice.id")
	AttrStorageDriver = attribute.Key("storage.driver")
	AttrStorageBucket = attribute.Key("storage.bucket")
	AttrRequestID     = attribute.Key("http.request.id")
)

func tracer() trace.Tracer {
	return otel.GetTracerProvider().Tracer(TracerName)
}

// StartSpan starts an internal span on the global provider. The caller ends it.
func StartSpan(ctx context.Context, name string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	return tracer().Start(ctx, name, trace.WithAttributes(attrs...))
}

// StartCommandSpan wraps one command dispatch, named "command {name}"
func StartCommandSpan(ctx context.Context, commandName string) (context.Context, trace.Span) {
	return StartSpan(ctx, "command "+commandName, AttrCommandName.String(commandName))
}

// StartEventSpan wraps one handler's processing of an event. Handlers run
// as consumers of the publishing span.
func StartEventSpan(ctx context.Context, eventType, eventID, aggregateID, handler string) (context.Context, trace.Span) {
	return tracer().Start(ctx, "event "+eventType,
		trace.WithSpanKind(trace.SpanKindConsumer),
		trace.WithAttributes(
			AttrEventType.String(eventType),
			AttrEventID.String(eventID),
			AttrAggregateID.String(aggregateID),
			AttrHandler.String(handler),
		),
	)
}

// StartStorageSpan wraps an invoice file write on driver
func StartStorageSpan(ctx context.Context, driver string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	return StartSpan(ctx, "storage.upload", append([]attribute.KeyValue{AttrStorageDriver.String(driver)}, attrs...)...)
}

// Annotate adds attrs to the span active in ctx; a no-op without one
func Annotate(ctx context.Context, attrs ...attribute.KeyValue) {
	trace.SpanFromContext(ctx).SetAttributes(attrs...)
}

// RecordError marks span failed with err. Nil spans and nil errors are ignored.
func RecordError(span trace.Span, err error) {
	if span == nil || err == nil {
		return
	}
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
}
