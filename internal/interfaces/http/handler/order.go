package handler

import (
	"context"

	orderapp "github.com/ecommerce/backend/internal/application/order"
	"github.com/ecommerce/backend/internal/domain/shared"
	"github.com/ecommerce/backend/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
)

// OrderQueries is the read side used by OrderHandler
type OrderQueries interface {
	GetOrderDetails(ctx context.Context, orderID, sellerID string) (*orderapp.OrderResponse, error)
	GetOrders(ctx context.Context, sellerID string) ([]orderapp.OrderResponse, error)
}

// OrderHandler serves the /orders endpoints
type OrderHandler struct {
	BaseHandler
	commands shared.CommandDispatcher
	queries  OrderQueries
}

// NewOrderHandler creates a new OrderHandler
func NewOrderHandler(commands shared.CommandDispatcher, queries OrderQueries) *OrderHandler {
	return &OrderHandler{
		commands: commands,
		queries:  queries,
	}
}

// CreateOrderRequest is the body of POST /orders.
// Quantity and price are pointers so an explicit zero passes "required".
type CreateOrderRequest struct {
	ID         string   `json:"id" binding:"required"`
	ProductID  string   `json:"productId" binding:"required"`
	Quantity   *int     `json:"quantity" binding:"required"`
	Price      *float64 `json:"price" binding:"required"`
	CustomerID string   `json:"customerId" binding:"required"`
	SellerID   string   `json:"sellerId" binding:"required"`
}

// UpdateOrderStatusRequest is the body of PATCH /orders/:id/status
type UpdateOrderStatusRequest struct {
	SellerID string `json:"sellerId" binding:"required"`
	Status   string `json:"status" binding:"required"`
}

// CreateOrder handles POST /orders
func (h *OrderHandler) CreateOrder(c *gin.Context) {
	var req CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.HandleBindError(c, err)
		return
	}
	scopeToSeller(c, req.SellerID)

	err := h.commands.Dispatch(c.Request.Context(), orderapp.CreateOrderCommand{
		ID:         req.ID,
		ProductID:  req.ProductID,
		Quantity:   *req.Quantity,
		Price:      *req.Price,
		CustomerID: req.CustomerID,
		SellerID:   req.SellerID,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, dto.MessageData{Message: "Order created successfully"})
}

// UpdateOrderStatus handles PATCH /orders/:id/status
func (h *OrderHandler) UpdateOrderStatus(c *gin.Context) {
	var req UpdateOrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.HandleBindError(c, err)
		return
	}
	scopeToSeller(c, req.SellerID)

	err := h.commands.Dispatch(c.Request.Context(), orderapp.UpdateOrderStatusCommand{
		OrderID:  c.Param("id"),
		SellerID: req.SellerID,
		Status:   req.Status,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, dto.MessageData{Message: "Order status updated successfully"})
}

// GetOrderDetails handles GET /orders/:id?sellerId=
func (h *OrderHandler) GetOrderDetails(c *gin.Context) {
	sellerID := sellerFromRequest(c)
	scopeToSeller(c, sellerID)

	resp, err := h.queries.GetOrderDetails(c.Request.Context(), c.Param("id"), sellerID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// GetOrders handles GET /orders?sellerId=
func (h *OrderHandler) GetOrders(c *gin.Context) {
	sellerID := sellerFromRequest(c)
	scopeToSeller(c, sellerID)

	orders, err := h.queries.GetOrders(c.Request.Context(), sellerID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, orders)
}
