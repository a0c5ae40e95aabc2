package artisan

import (
	"strings"

	handlershared "github.com/artisanhub/internal/http/handlers/shared"
	"github.com/artisanhub/internal/http/response"
	"github.com/artisanhub/internal/service"

	"github.com/gin-gonic/gin"
)

// ListOrders orders containing at least one of the caller's products
func (h *Handler) ListOrders(c *gin.Context) {
	identity, ok := handlershared.GetIdentity(c)
	if !ok {
		return
	}
	page, limit, err := handlershared.QueryPage(c)
	if err != nil {
		respondDashboardError(c, err, "Failed to fetch orders")
		return
	}
	result, err := h.OrderService.ListArtisanOrders(identity.UserID, service.OrderListQuery{
		Page:   page,
		Limit:  limit,
		Status: strings.TrimSpace(c.Query("status")),
	})
	if err != nil {
		respondDashboardError(c, err, "Failed to fetch orders")
		return
	}
	response.Success(c, result)
}

// UpdateOrderStatus moves an order to a later status, optionally with a tracking number
func (h *Handler) UpdateOrderStatus(c *gin.Context) {
	identity, ok := handlershared.GetIdentity(c)
	if !ok {
		return
	}
	orderID, ok := handlershared.ParseIDParam(c, "id", "order")
	if !ok {
		return
	}
	var req service.OrderStatusInput
	if err := c.ShouldBindJSON(&req); err != nil {
		handlershared.RespondErrorWithMsg(c, response.CodeBadRequest, "Invalid request body", nil)
		return
	}
	order, err := h.OrderService.UpdateOrderStatus(identity, orderID, req)
	if err != nil {
		respondDashboardError(c, err, "Failed to update order status")
		return
	}
	response.SuccessWithMsg(c, "Order status updated successfully", gin.H{"order": order})
}
