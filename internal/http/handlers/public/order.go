package public

import (
	"strings"

	handlershared "github.com/artisanhub/internal/http/handlers/shared"
	"github.com/artisanhub/internal/http/response"
	"github.com/artisanhub/internal/service"

	"github.com/gin-gonic/gin"
)

// CreateOrder checks out the caller's cart
func (h *Handler) CreateOrder(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	var req service.CreateOrderInput
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "Invalid request body", nil)
		return
	}
	order, err := h.OrderService.CreateOrder(uid, req)
	if err != nil {
		respondOrderError(c, err, "Failed to create order")
		return
	}
	response.Created(c, "Order created successfully", gin.H{"order": order})
}

// ListOrders the caller's orders, newest first
func (h *Handler) ListOrders(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	page, limit, err := handlershared.QueryPage(c)
	if err != nil {
		respondOrderError(c, err, "Failed to fetch orders")
		return
	}
	result, err := h.OrderService.ListCustomerOrders(uid, service.OrderListQuery{
		Page:   page,
		Limit:  limit,
		Status: strings.TrimSpace(c.Query("status")),
	})
	if err != nil {
		respondOrderError(c, err, "Failed to fetch orders")
		return
	}
	response.Success(c, result)
}

// GetOrder one of the caller's orders
func (h *Handler) GetOrder(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	orderID, ok := parseID(c, "id", "order")
	if !ok {
		return
	}
	order, err := h.OrderService.GetCustomerOrder(uid, orderID)
	if err != nil {
		respondOrderError(c, err, "Failed to fetch order")
		return
	}
	response.Success(c, gin.H{"order": order})
}

// CancelOrder cancels a pending or confirmed order and restores stock
func (h *Handler) CancelOrder(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	orderID, ok := parseID(c, "id", "order")
	if !ok {
		return
	}
	order, err := h.OrderService.CancelOrder(uid, orderID)
	if err != nil {
		respondOrderError(c, err, "Failed to cancel order")
		return
	}
	response.SuccessWithMsg(c, "Order cancelled successfully", gin.H{"order": order})
}
