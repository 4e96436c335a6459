// Package middleware provides the gin middleware chain of the order and
// invoice HTTP API.
package middleware

import (
	"net/http"

	"github.com/ecommerce/backend/internal/infrastructure/telemetry"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// MaxRequestIDLength caps request ids copied from headers into spans
const MaxRequestIDLength = 128

// SellerIDHeader identifies the calling seller when no sellerId query
// parameter is present
const SellerIDHeader = "X-Seller-ID"

// TracingConfig selects the provider and service name of HTTP server spans
type TracingConfig struct {
	ServiceName string
	Enabled     bool
	// TracerProvider overrides the global provider when set.
	TracerProvider trace.TracerProvider
}

// Tracing starts one server span per request, named "METHOD route", for
// example "GET /orders/:id". A disabled config yields a pass-through handler.
func Tracing(cfg TracingConfig) gin.HandlerFunc {
	if !cfg.Enabled {
		return func(c *gin.Context) { c.Next() }
	}

	var opts []otelgin.Option
	if cfg.TracerProvider != nil {
		opts = append(opts, otelgin.WithTracerProvider(cfg.TracerProvider))
	}
	return otelgin.Middleware(cfg.ServiceName, opts...)
}

// SpanAttributes tags the request span with the request and seller ids.
// It must run after Tracing.
func SpanAttributes() gin.HandlerFunc {
	return func(c *gin.Context) {
		if span := trace.SpanFromContext(c.Request.Context()); span.IsRecording() {
			span.SetAttributes(requestAttributes(c)...)
		}
		c.Next()
	}
}

// SpanStatus marks the request span failed once the handler answered 4xx or 5xx
func SpanStatus() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		status := c.Writer.Status()
		if status < http.StatusBadRequest {
			return
		}
		if span := trace.SpanFromContext(c.Request.Context()); span.IsRecording() {
			span.SetStatus(codes.Error, http.StatusText(status))
		}
	}
}

func requestAttributes(c *gin.Context) []attribute.KeyValue {
	var attrs []attribute.KeyValue
	if id := getRequestID(c); id != "" {
		attrs = append(attrs, telemetry.AttrRequestID.String(id))
	}
	if seller := getSellerID(c); seller != "" {
		attrs = append(attrs, telemetry.AttrSellerID.String(seller))
	}
	return attrs
}

func getRequestID(c *gin.Context) string {
	id := c.GetString("request_id")
	if id == "" {
		id = c.GetHeader(RequestIDHeader)
	}
	if len(id) > MaxRequestIDLength {
		id = id[:MaxRequestIDLength]
	}
	return id
}

// getSellerID reads the seller from the query, then the header. Anything
// that is not a UUID is dropped before it reaches trace data.
func getSellerID(c *gin.Context) string {
	for _, candidate := range []string{c.Query("sellerId"), c.GetHeader(SellerIDHeader)} {
		if _, err := uuid.Parse(candidate); err == nil {
			return candidate
		}
	}
	return ""
}
