package logger

import (
	"context"

	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

type contextKey string

// Context keys carried from the HTTP layer down to repositories and handlers
const (
	LoggerKey    contextKey = "logger"
	RequestIDKey contextKey = "request_id"
	SellerIDKey  contextKey = "seller_id"
)

// WithContext stores log on ctx
func WithContext(ctx context.Context, log *zap.Logger) context.Context {
	return context.WithValue(ctx, LoggerKey, log)
}

// FromContext is FromContextOr with a no-op fallback
func FromContext(ctx context.Context) *zap.Logger {
	return FromContextOr(ctx, zap.NewNop())
}

// FromContextOr returns the request logger, or fallback for background work
// such as event handlers started outside a request.
func FromContextOr(ctx context.Context, fallback *zap.Logger) *zap.Logger {
	if log, ok := ctx.Value(LoggerKey).(*zap.Logger); ok {
		return log
	}
	return fallback
}

// WithRequestID records the correlation id on ctx and on the returned logger
func WithRequestID(ctx context.Context, log *zap.Logger, requestID string) (context.Context, *zap.Logger) {
	return withField(ctx, log, RequestIDKey, requestID)
}

// WithSellerID records the seller a request acts for
func WithSellerID(ctx context.Context, log *zap.Logger, sellerID string) (context.Context, *zap.Logger) {
	return withField(ctx, log, SellerIDKey, sellerID)
}

func withField(ctx context.Context, log *zap.Logger, key contextKey, value string) (context.Context, *zap.Logger) {
	enriched := log.With(zap.String(string(key), value))
	ctx = context.WithValue(ctx, key, value)
	return WithContext(ctx, enriched), enriched
}

// GetRequestID returns "" outside a request
func GetRequestID(ctx context.Context) string {
	id, _ := ctx.Value(RequestIDKey).(string)
	return id
}

// GetSellerID returns "" when no seller was resolved
func GetSellerID(ctx context.Context) string {
	id, _ := ctx.Value(SellerIDKey).(string)
	return id
}

// GetTraceID returns the active trace id, or "" without a sampled span
func GetTraceID(ctx context.Context) string {
	if sc := trace.SpanContextFromContext(ctx); sc.IsValid() {
		return sc.TraceID().String()
	}
	return ""
}

// WithTraceContext tags log with trace_id and span_id so log lines can be
// joined with the exported spans.
func WithTraceContext(ctx context.Context, log *zap.Logger) *zap.Logger {
	sc := trace.SpanContextFromContext(ctx)
	if !sc.IsValid() {
		return log
	}
	return log.With(
		zap.String("trace_id", sc.TraceID().String()),
		zap.String("span_id", sc.SpanID().String()),
	)
}

// L is shorthand for the trace-correlated request logger
func L(ctx context.Context) *zap.Logger {
	return WithTraceContext(ctx, FromContext(ctx))
}
