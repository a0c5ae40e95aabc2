package public

import (
	"github.com/artisanhub/internal/http/response"

	"github.com/gin-gonic/gin"
)

// WishlistRequest add-to-wishlist body
type WishlistRequest struct {
	ProductID uint `json:"product_id" binding:"required"`
}

// GetWishlist the caller's saved products
func (h *Handler) GetWishlist(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	wishlist, err := h.WishlistService.Get(uid)
	if err != nil {
		respondWithMappedError(c, err, wishlistErrorRules, "Failed to fetch wishlist")
		return
	}
	response.Success(c, gin.H{"wishlist": wishlist})
}

// AddToWishlist saves an active product
func (h *Handler) AddToWishlist(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	var req WishlistRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "Product ID is required", nil)
		return
	}
	wishlist, err := h.WishlistService.Add(uid, req.ProductID)
	if err != nil {
		respondWithMappedError(c, err, wishlistErrorRules, "Failed to add to wishlist")
		return
	}
	response.SuccessWithMsg(c, "Product added to wishlist", gin.H{"wishlist": wishlist})
}

// RemoveFromWishlist drops a saved product
func (h *Handler) RemoveFromWishlist(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	productID, ok := parseID(c, "productId", "product")
	if !ok {
		return
	}
	wishlist, err := h.WishlistService.Remove(uid, productID)
	if err != nil {
		respondWithMappedError(c, err, wishlistErrorRules, "Failed to remove from wishlist")
		return
	}
	response.SuccessWithMsg(c, "Product removed from wishlist", gin.H{"wishlist": wishlist})
}

// ClearWishlist drops every saved product
func (h *Handler) ClearWishlist(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	wishlist, err := h.WishlistService.Clear(uid)
	if err != nil {
		respondWithMappedError(c, err, wishlistErrorRules, "Failed to clear wishlist")
		return
	}
	response.SuccessWithMsg(c, "Wishlist cleared successfully", gin.H{"wishlist": wishlist})
}

// CheckWishlist reports whether a product is saved
func (h *Handler) CheckWishlist(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	productID, ok := parseID(c, "productId", "product")
	if !ok {
		return
	}
	saved, err := h.WishlistService.Contains(uid, productID)
	if err != nil {
		respondWithMappedError(c, err, wishlistErrorRules, "Failed to check wishlist")
		return
	}
	response.Success(c, gin.H{"in_wishlist": saved})
}
