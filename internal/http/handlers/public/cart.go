package public

import (
	"github.com/artisanhub/internal/http/response"

	"github.com/gin-gonic/gin"
)

// AddCartItemRequest add-to-cart body; quantity defaults to 1
type AddCartItemRequest struct {
	ProductID uint `json:"product_id" binding:"required"`
	Quantity  *int `json:"quantity"`
}

// UpdateCartItemRequest quantity change body
type UpdateCartItemRequest struct {
	Quantity int `json:"quantity"`
}

// GetCart the caller's cart with product details
func (h *Handler) GetCart(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	cart, err := h.CartService.GetCart(uid)
	if err != nil {
		respondCartError(c, err, "Failed to fetch cart")
		return
	}
	response.Success(c, gin.H{"cart": cart})
}

// AddCartItem adds or merges a line
func (h *Handler) AddCartItem(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	var req AddCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "Product ID is required", nil)
		return
	}
	qty := 1
	if req.Quantity != nil {
		qty = *req.Quantity
	}
	cart, err := h.CartService.AddItem(uid, req.ProductID, qty)
	if err != nil {
		respondCartError(c, err, "Failed to add item to cart")
		return
	}
	response.SuccessWithMsg(c, "Item added to cart successfully", gin.H{"cart": cart})
}

// UpdateCartItem sets a line's quantity
func (h *Handler) UpdateCartItem(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	productID, ok := parseID(c, "productId", "product")
	if !ok {
		return
	}
	var req UpdateCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "Invalid request body", nil)
		return
	}
	cart, err := h.CartService.UpdateItem(uid, productID, req.Quantity)
	if err != nil {
		respondCartError(c, err, "Failed to update cart")
		return
	}
	response.SuccessWithMsg(c, "Cart updated successfully", gin.H{"cart": cart})
}

// RemoveCartItem drops a line
func (h *Handler) RemoveCartItem(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	productID, ok := parseID(c, "productId", "product")
	if !ok {
		return
	}
	cart, err := h.CartService.RemoveItem(uid, productID)
	if err != nil {
		respondCartError(c, err, "Failed to remove item from cart")
		return
	}
	response.SuccessWithMsg(c, "Item removed from cart successfully", gin.H{"cart": cart})
}

// ClearCart empties the cart
func (h *Handler) ClearCart(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	cart, err := h.CartService.Clear(uid)
	if err != nil {
		respondCartError(c, err, "Failed to clear cart")
		return
	}
	response.SuccessWithMsg(c, "Cart cleared successfully", gin.H{"cart": cart})
}

// GetCartSummary header badge totals
func (h *Handler) GetCartSummary(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	summary, err := h.CartService.Summary(uid)
	if err != nil {
		respondCartError(c, err, "Failed to get cart summary")
		return
	}
	response.Success(c, summary)
}

// ValidateCart reports lines that cannot be checked out
func (h *Handler) ValidateCart(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	result, err := h.CartService.Validate(uid)
	if err != nil {
		respondCartError(c, err, "Failed to validate cart")
		return
	}
	response.Success(c, result)
}
