package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/ecommerce/backend/internal/infrastructure/logger"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// APIVersion is reported by the API info endpoint
const APIVersion = "1.0.0"

// Pinger reports whether a backing service is reachable
type Pinger interface {
	Ping(ctx context.Context) error
}

// SystemHandler serves the API info and health endpoints
type SystemHandler struct {
	BaseHandler
	db          Pinger
	pingTimeout time.Duration
	now         func() time.Time
}

// NewSystemHandler creates a new SystemHandler
func NewSystemHandler(db Pinger) *SystemHandler {
	return &SystemHandler{
		db:          db,
		pingTimeout: 2 * time.Second,
		now:         time.Now,
	}
}

// APIInfoResponse is the body of GET /
type APIInfoResponse struct {
	Name          string            `json:"name"`
	Version       string            `json:"version"`
	Documentation string            `json:"documentation"`
	Endpoints     map[string]string `json:"endpoints"`
	Timestamp     string            `json:"timestamp"`
}

// HealthResponse is the body of GET /health
type HealthResponse struct {
	Status    string `json:"status"`
	Database  string `json:"database"`
	Timestamp string `json:"timestamp"`
}

// APIInfo handles GET /
func (h *SystemHandler) APIInfo(c *gin.Context) {
	c.JSON(http.StatusOK, APIInfoResponse{
		Name:          "E-commerce Microservices API",
		Version:       APIVersion,
		Documentation: "/api/doc",
		Endpoints: map[string]string{
			"orders":   "/orders",
			"invoices": "/invoices",
			"health":   "/health",
		},
		Timestamp: h.now().Format(time.RFC3339),
	})
}

// Health handles GET /health. It answers 503 when the database ping fails.
func (h *SystemHandler) Health(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), h.pingTimeout)
	defer cancel()

	if err := h.db.Ping(ctx); err != nil {
		logger.GetGinLogger(c).Warn("Health check failed", zap.Error(err))
		c.JSON(http.StatusServiceUnavailable, HealthResponse{
			Status:    "unhealthy",
			Database:  "error",
			Timestamp: h.now().Format(time.RFC3339),
		})
		return
	}

	c.JSON(http.StatusOK, HealthResponse{
		Status:    "healthy",
		Database:  "connected",
		Timestamp: h.now().Format(time.RFC3339),
	})
}
