package public

import (
	"strconv"
	"strings"

	handlershared "github.com/artisanhub/internal/http/handlers/shared"
	"github.com/artisanhub/internal/http/response"
	"github.com/artisanhub/internal/models"
	"github.com/artisanhub/internal/service"

	"github.com/gin-gonic/gin"
)

func parseProductQuery(c *gin.Context) (service.ProductQuery, error) {
	page, limit, err := handlershared.QueryPage(c)
	if err != nil {
		return service.ProductQuery{}, err
	}
	minPrice, err := handlershared.QueryDecimal(c, "min_price")
	if err != nil {
		return service.ProductQuery{}, err
	}
	maxPrice, err := handlershared.QueryDecimal(c, "max_price")
	if err != nil {
		return service.ProductQuery{}, err
	}
	query := service.ProductQuery{
		Page:     page,
		Limit:    limit,
		Category: strings.TrimSpace(c.Query("category")),
		MinPrice: minPrice,
		MaxPrice: maxPrice,
		Search:   c.Query("q"),
		Sort:     strings.TrimSpace(c.Query("sort")),
	}
	if raw := strings.TrimSpace(c.Query("artisan")); raw != "" {
		artisanID, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			return service.ProductQuery{}, models.NewFieldError("artisan", "artisan must be a user ID")
		}
		query.ArtisanID = uint(artisanID)
	}
	return query, nil
}

// ListProducts active catalog with filters, sorting and pagination
func (h *Handler) ListProducts(c *gin.Context) {
	query, err := parseProductQuery(c)
	if err != nil {
		respondProductError(c, err, "Failed to fetch products")
		return
	}
	page, err := h.ProductService.List(query)
	if err != nil {
		respondProductError(c, err, "Failed to fetch products")
		return
	}
	response.Success(c, page)
}

// ListFeaturedProducts featured shelf
func (h *Handler) ListFeaturedProducts(c *gin.Context) {
	limit, err := handlershared.QueryInt(c, "limit")
	if err != nil {
		respondProductError(c, err, "Failed to fetch featured products")
		return
	}
	products, err := h.ProductService.Featured(limit)
	if err != nil {
		respondProductError(c, err, "Failed to fetch featured products")
		return
	}
	response.Success(c, gin.H{"products": products})
}

// SearchProducts full-text search over title, description and tags
func (h *Handler) SearchProducts(c *gin.Context) {
	query, err := parseProductQuery(c)
	if err != nil {
		respondProductError(c, err, "Search failed")
		return
	}
	page, err := h.ProductService.Search(query)
	if err != nil {
		respondProductError(c, err, "Search failed")
		return
	}
	response.Success(c, gin.H{
		"products":     page.Products,
		"pagination":   page.Pagination,
		"search_query": strings.TrimSpace(query.Search),
	})
}

// ListProductsByCategory one category; "All" lists everything
func (h *Handler) ListProductsByCategory(c *gin.Context) {
	query, err := parseProductQuery(c)
	if err != nil {
		respondProductError(c, err, "Failed to fetch products")
		return
	}
	category := strings.TrimSpace(c.Param("category"))
	page, err := h.ProductService.ByCategory(category, query)
	if err != nil {
		respondProductError(c, err, "Failed to fetch products")
		return
	}
	response.Success(c, gin.H{
		"products":   page.Products,
		"pagination": page.Pagination,
		"category":   category,
	})
}

// GetProduct active product detail
func (h *Handler) GetProduct(c *gin.Context) {
	productID, ok := parseID(c, "id", "product")
	if !ok {
		return
	}
	product, err := h.ProductService.Get(productID)
	if err != nil {
		respondProductError(c, err, "Failed to fetch product")
		return
	}
	response.Success(c, gin.H{"product": product})
}

// CreateProduct lists a new product for the calling artisan
func (h *Handler) CreateProduct(c *gin.Context) {
	identity, ok := getIdentity(c)
	if !ok {
		return
	}
	var req models.ProductInput
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "Invalid request body", nil)
		return
	}
	product, err := h.ProductService.Create(identity, req)
	if err != nil {
		respondProductError(c, err, "Failed to create product")
		return
	}
	response.Created(c, "Product created successfully", gin.H{"product": product})
}

// UpdateProduct edits an owned product
func (h *Handler) UpdateProduct(c *gin.Context) {
	identity, ok := getIdentity(c)
	if !ok {
		return
	}
	productID, ok := parseID(c, "id", "product")
	if !ok {
		return
	}
	var req models.ProductInput
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "Invalid request body", nil)
		return
	}
	product, err := h.ProductService.Update(identity, productID, req)
	if err != nil {
		respondProductError(c, err, "Failed to update product")
		return
	}
	response.SuccessWithMsg(c, "Product updated successfully", gin.H{"product": product})
}

// DeleteProduct removes an owned product
func (h *Handler) DeleteProduct(c *gin.Context) {
	identity, ok := getIdentity(c)
	if !ok {
		return
	}
	productID, ok := parseID(c, "id", "product")
	if !ok {
		return
	}
	if err := h.ProductService.Delete(identity, productID); err != nil {
		respondProductError(c, err, "Failed to delete product")
		return
	}
	response.SuccessWithMsg(c, "Product deleted successfully", nil)
}
