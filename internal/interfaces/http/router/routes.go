package router

import (
	"github.com/ecommerce/backend/internal/interfaces/http/handler"
	"github.com/ecommerce/backend/internal/interfaces/http/middleware"
)

// multipartOverhead is the body allowance on top of the file size for form
// fields and part headers of an invoice upload
const multipartOverhead = 64 << 10

// OrderRoutes builds the /orders group
func OrderRoutes(h *handler.OrderHandler, maxBodySize int64) *DomainGroup {
	return NewDomainGroup("/orders").
		Use(middleware.BodyLimit(maxBodySize)).
		POST("", h.CreateOrder).
		GET("", h.GetOrders).
		GET("/:id", h.GetOrderDetails).
		PATCH("/:id/status", h.UpdateOrderStatus)
}

// InvoiceRoutes builds the /invoices group. Uploads may be up to
// maxUploadSize bytes.
func InvoiceRoutes(h *handler.InvoiceHandler, maxUploadSize int64) *DomainGroup {
	return NewDomainGroup("/invoices").
		Use(middleware.BodyLimit(maxUploadSize+multipartOverhead)).
		POST("/:orderId/upload", h.UploadInvoice).
		GET("/:orderId", h.GetInvoice)
}

// SystemRoutes builds the root info and health endpoints
func SystemRoutes(h *handler.SystemHandler) *DomainGroup {
	return NewDomainGroup("").
		GET("/", h.APIInfo).
		GET("/health", h.Health)
}
