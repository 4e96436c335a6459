package router

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	invoiceapp "github.com/ecommerce/backend/internal/application/invoice"
	orderapp "github.com/ecommerce/backend/internal/application/order"
	"github.com/ecommerce/backend/internal/domain/shared"
	"github.com/ecommerce/backend/internal/infrastructure/config"
	"github.com/ecommerce/backend/internal/interfaces/http/handler"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestRouter(t *testing.T) {
	ok := func(c *gin.Context) { c.String(http.StatusOK, c.Request.Method) }

	tests := []struct {
		name     string
		method   string
		path     string
		wantCode int
	}{
		{name: "root mount", method: http.MethodGet, path: "/orders/1", wantCode: http.StatusOK},
		{name: "root mount post", method: http.MethodPost, path: "/orders", wantCode: http.StatusOK},
		{name: "patch", method: http.MethodPatch, path: "/orders/1/status", wantCode: http.StatusOK},
		{name: "unknown route", method: http.MethodGet, path: "/api/v1/orders/1", wantCode: http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			engine := gin.New()
			group := NewDomainGroup("/orders").
				Use(func(c *gin.Context) {
					c.Header("X-Group", "orders")
					c.Next()
				}).
				POST("", ok).
				GET("/:id", ok).
				PATCH("/:id/status", ok)
			NewRouter(engine).Register(group).Setup()

			w := httptest.NewRecorder()
			engine.ServeHTTP(w, httptest.NewRequest(tt.method, tt.path, nil))

			assert.Equal(t, tt.wantCode, w.Code)
			if tt.wantCode == http.StatusOK {
				assert.Equal(t, tt.method, w.Body.String())
				assert.Equal(t, "orders", w.Header().Get("X-Group"))
			}
		})
	}
}

func TestDomainGroup_Prefix(t *testing.T) {
	assert.Equal(t, "/orders", NewDomainGroup("/orders").Prefix())
	assert.Equal(t, "/", NewDomainGroup("").Prefix())
}

type nopDispatcher struct{}

func (nopDispatcher) Dispatch(context.Context, shared.Command) error { return nil }

type nopOrderQueries struct{}

func (nopOrderQueries) GetOrderDetails(context.Context, string, string) (*orderapp.OrderResponse, error) {
	return &orderapp.OrderResponse{}, nil
}

func (nopOrderQueries) GetOrders(context.Context, string) ([]orderapp.OrderResponse, error) {
	return []orderapp.OrderResponse{}, nil
}

type nopInvoiceQueries struct{}

func (nopInvoiceQueries) GetInvoice(context.Context, string, string) (*invoiceapp.InvoiceResponse, error) {
	return &invoiceapp.InvoiceResponse{}, nil
}

type nopPinger struct{}

func (nopPinger) Ping(context.Context) error { return nil }

func newAPIEngine(t *testing.T, maxBody, maxUpload int64) *gin.Engine {
	t.Helper()

	engine, err := NewEngine(EngineConfig{
		HTTP: config.HTTPConfig{
			MaxBodySize:      maxBody,
			MaxUploadSize:    maxUpload,
			CORSAllowOrigins: []string{"http://shop.local"},
			CORSAllowMethods: []string{"GET", "POST", "PATCH"},
			CORSAllowHeaders: []string{"Content-Type"},
		},
		ServiceName: "test",
		Logger:      zap.NewNop(),
	})
	require.NoError(t, err)

	routes := NewRouter(engine).
		Register(SystemRoutes(handler.NewSystemHandler(nopPinger{}))).
		Register(OrderRoutes(handler.NewOrderHandler(nopDispatcher{}, nopOrderQueries{}), maxBody)).
		Register(InvoiceRoutes(handler.NewInvoiceHandler(nopDispatcher{}, nopInvoiceQueries{}, maxUpload), maxUpload)).
		Setup()
	require.NotEmpty(t, routes)
	return engine
}

func TestAPIRoutes(t *testing.T) {
	engine := newAPIEngine(t, 1<<20, 10<<20)

	registered := map[string]bool{}
	for _, route := range engine.Routes() {
		registered[route.Method+" "+route.Path] = true
	}

	for _, want := range []string{
		"GET /",
		"GET /health",
		"POST /orders",
		"GET /orders",
		"GET /orders/:id",
		"PATCH /orders/:id/status",
		"POST /invoices/:orderId/upload",
		"GET /invoices/:orderId",
	} {
		assert.True(t, registered[want], "route %s not registered", want)
	}
}

func TestNewEngine_MiddlewareChain(t *testing.T) {
	engine := newAPIEngine(t, 1<<20, 10<<20)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("Origin", "http://shop.local")
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
	assert.Equal(t, "nosniff", w.Header().Get("X-Content-Type-Options"))
	assert.Equal(t, "http://shop.local", w.Header().Get("Access-Control-Allow-Origin"))
}

func TestOrderRoutes_BodyLimit(t *testing.T) {
	engine := newAPIEngine(t, 32, 10<<20)

	req := httptest.NewRequest(http.MethodPost, "/orders", strings.NewReader(`{"id": "`+strings.Repeat("x", 64)+`"}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
	assert.Contains(t, w.Body.String(), "ERR_REQUEST_TOO_LARGE")
}

func TestNewEngine_InvalidTrustedProxy(t *testing.T) {
	_, err := NewEngine(EngineConfig{
		HTTP:   config.HTTPConfig{TrustedProxies: []string{"not-an-ip"}},
		Logger: zap.NewNop(),
	})
	assert.Error(t, err)
}
