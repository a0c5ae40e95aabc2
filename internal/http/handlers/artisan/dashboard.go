package artisan

import (
	"strings"

	handlershared "github.com/artisanhub/internal/http/handlers/shared"
	"github.com/artisanhub/internal/http/response"
	"github.com/artisanhub/internal/service"

	"github.com/gin-gonic/gin"
)

// ProductStatusRequest listing toggle body
type ProductStatusRequest struct {
	IsActive *bool `json:"is_active" binding:"required"`
}

// ProductFeaturedRequest featured toggle body
type ProductFeaturedRequest struct {
	IsFeatured *bool `json:"is_featured" binding:"required"`
}

// DashboardStats headline numbers of the caller's shop
func (h *Handler) DashboardStats(c *gin.Context) {
	identity, ok := handlershared.GetIdentity(c)
	if !ok {
		return
	}
	stats, err := h.ArtisanService.DashboardStats(identity.UserID)
	if err != nil {
		respondDashboardError(c, err, "Failed to fetch dashboard stats")
		return
	}
	response.Success(c, stats)
}

// Analytics period breakdown; ?period=days, default 30
func (h *Handler) Analytics(c *gin.Context) {
	identity, ok := handlershared.GetIdentity(c)
	if !ok {
		return
	}
	period, err := handlershared.QueryInt(c, "period")
	if err != nil {
		respondDashboardError(c, err, "Failed to fetch analytics")
		return
	}
	analytics, err := h.ArtisanService.Analytics(c.Request.Context(), identity.UserID, period)
	if err != nil {
		respondDashboardError(c, err, "Failed to fetch analytics")
		return
	}
	response.Success(c, analytics)
}

// ListProducts the caller's products including delisted ones
func (h *Handler) ListProducts(c *gin.Context) {
	identity, ok := handlershared.GetIdentity(c)
	if !ok {
		return
	}
	page, limit, err := handlershared.QueryPage(c)
	if err != nil {
		respondDashboardError(c, err, "Failed to fetch products")
		return
	}
	result, err := h.ArtisanService.ListProducts(identity.UserID, service.ArtisanProductQuery{
		Status:   strings.TrimSpace(c.Query("status")),
		Category: strings.TrimSpace(c.Query("category")),
		Sort:     strings.TrimSpace(c.Query("sort")),
		Page:     page,
		Limit:    limit,
	})
	if err != nil {
		respondDashboardError(c, err, "Failed to fetch products")
		return
	}
	response.Success(c, result)
}

// SetProductStatus lists or delists a product
func (h *Handler) SetProductStatus(c *gin.Context) {
	identity, ok := handlershared.GetIdentity(c)
	if !ok {
		return
	}
	productID, ok := handlershared.ParseIDParam(c, "productId", "product")
	if !ok {
		return
	}
	var req ProductStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handlershared.RespondErrorWithMsg(c, response.CodeBadRequest, "is_active is required", nil)
		return
	}
	product, err := h.ArtisanService.SetProductActive(identity, productID, *req.IsActive)
	if err != nil {
		respondDashboardError(c, err, "Failed to update product status")
		return
	}
	msg := "Product deactivated successfully"
	if product.IsActive {
		msg = "Product activated successfully"
	}
	response.SuccessWithMsg(c, msg, gin.H{"product": product})
}

// SetProductFeatured toggles the featured shelf
func (h *Handler) SetProductFeatured(c *gin.Context) {
	identity, ok := handlershared.GetIdentity(c)
	if !ok {
		return
	}
	productID, ok := handlershared.ParseIDParam(c, "productId", "product")
	if !ok {
		return
	}
	var req ProductFeaturedRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handlershared.RespondErrorWithMsg(c, response.CodeBadRequest, "is_featured is required", nil)
		return
	}
	product, err := h.ArtisanService.SetProductFeatured(identity, productID, *req.IsFeatured)
	if err != nil {
		respondDashboardError(c, err, "Failed to update featured status")
		return
	}
	msg := "Product removed from featured"
	if product.IsFeatured {
		msg = "Product featured successfully"
	}
	response.SuccessWithMsg(c, msg, gin.H{"product": product})
}

// GetProfile the caller's artisan account
func (h *Handler) GetProfile(c *gin.Context) {
	identity, ok := handlershared.GetIdentity(c)
	if !ok {
		return
	}
	user, err := h.ArtisanService.GetProfile(identity.UserID)
	if err != nil {
		respondDashboardError(c, err, "Failed to fetch profile")
		return
	}
	response.Success(c, gin.H{"artisan": user})
}

// UpdateProfile edits contact details and the artisan profile
func (h *Handler) UpdateProfile(c *gin.Context) {
	identity, ok := handlershared.GetIdentity(c)
	if !ok {
		return
	}
	var req service.ProfileInput
	if err := c.ShouldBindJSON(&req); err != nil {
		handlershared.RespondErrorWithMsg(c, response.CodeBadRequest, "Invalid request body", nil)
		return
	}
	user, err := h.ArtisanService.UpdateProfile(identity.UserID, req)
	if err != nil {
		respondDashboardError(c, err, "Failed to update profile")
		return
	}
	response.SuccessWithMsg(c, "Profile updated successfully", gin.H{"artisan": user})
}
