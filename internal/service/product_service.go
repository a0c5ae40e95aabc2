package service

import (
	"context"
	"strings"

	"github.com/artisanhub/internal/cache"
	"github.com/artisanhub/internal/config"
	"github.com/artisanhub/internal/constants"
	"github.com/artisanhub/internal/logger"
	"github.com/artisanhub/internal/models"
	"github.com/artisanhub/internal/repository"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ProductService catalog reads and artisan product writes
type ProductService struct {
	catalog     config.CatalogConfig
	productRepo repository.ProductRepository
}

// NewProductService builds the product service
func NewProductService(catalog config.CatalogConfig, productRepo repository.ProductRepository) *ProductService {
	return &ProductService{
		catalog:     catalog,
		productRepo: productRepo,
	}
}

// ProductQuery catalog listing parameters
type ProductQuery struct {
	Page      int
	Limit     int
	Category  string
	MinPrice  *decimal.Decimal
	MaxPrice  *decimal.Decimal
	Search    string
	ArtisanID uint
	Sort      string
}

// ProductPage one page of products
type ProductPage struct {
	Products   []models.Product `json:"products"`
	Pagination Pagination       `json:"pagination"`
}

var productSorts = map[string]struct{}{
	constants.SortAZ:        {},
	constants.SortZA:        {},
	constants.SortPriceHigh: {},
	constants.SortPriceLow:  {},
	constants.SortNewest:    {},
	constants.SortOldest:    {},
}

func (s *ProductService) filterFromQuery(query ProductQuery) (repository.ProductListFilter, error) {
	page, limit, err := normalizePage(query.Page, query.Limit, s.catalog.DefaultPageSize, s.catalog.MaxPageSize)
	if err != nil {
		return repository.ProductListFilter{}, err
	}
	category := strings.TrimSpace(query.Category)
	if category == constants.CategoryAll {
		category = ""
	}
	if category != "" && !models.IsValidCategory(category) {
		return repository.ProductListFilter{}, models.NewFieldError("category", "Invalid category")
	}
	sort := strings.ToLower(strings.TrimSpace(query.Sort))
	if sort == "" {
		sort = constants.SortNewest
	}
	if _, ok := productSorts[sort]; !ok {
		return repository.ProductListFilter{}, models.NewFieldError("sort", "Invalid sort option")
	}
	if query.MinPrice != nil && query.MinPrice.IsNegative() {
		return repository.ProductListFilter{}, models.NewFieldError("minPrice", "Minimum price must be non-negative")
	}
	if query.MinPrice != nil && query.MaxPrice != nil && query.MaxPrice.LessThan(*query.MinPrice) {
		return repository.ProductListFilter{}, models.NewFieldError("maxPrice", "Maximum price must not be below minimum price")
	}
	return repository.ProductListFilter{
		Page:       page,
		PageSize:   limit,
		Category:   category,
		MinPrice:   query.MinPrice,
		MaxPrice:   query.MaxPrice,
		Search:     strings.TrimSpace(query.Search),
		ArtisanID:  query.ArtisanID,
		OnlyActive: true,
		Sort:       sort,
	}, nil
}

// List active products matching query
func (s *ProductService) List(query ProductQuery) (*ProductPage, error) {
	filter, err := s.filterFromQuery(query)
	if err != nil {
		return nil, err
	}
	products, total, err := s.productRepo.List(filter)
	if err != nil {
		return nil, err
	}
	return &ProductPage{
		Products:   products,
		Pagination: NewPagination(filter.Page, filter.PageSize, total),
	}, nil
}

// ByCategory lists one category; "All" lists everything
func (s *ProductService) ByCategory(category string, query ProductQuery) (*ProductPage, error) {
	query.Category = category
	return s.List(query)
}

// Search requires a non-empty search term
func (s *ProductService) Search(query ProductQuery) (*ProductPage, error) {
	if strings.TrimSpace(query.Search) == "" {
		return nil, models.NewFieldError("q", "Search query is required")
	}
	return s.List(query)
}

// Get active product detail, read through the redis cache
func (s *ProductService) Get(productID uint) (*models.Product, error) {
	ctx := context.Background()
	if cached, hit, err := cache.GetProduct(ctx, productID); err != nil {
		logger.Warnw("product_cache_get_failed", "product_id", productID, "error", err)
	} else if hit {
		return cached, nil
	}

	product, err := s.productRepo.GetByID(productID)
	if err != nil {
		return nil, err
	}
	if product == nil || !product.IsActive {
		return nil, ErrProductNotFound
	}
	if err := cache.SetProduct(ctx, product, s.catalog.CacheTTL()); err != nil {
		logger.Warnw("product_cache_set_failed", "product_id", productID, "error", err)
	}
	return product, nil
}

// Featured active featured products, newest first
func (s *ProductService) Featured(limit int) ([]models.Product, error) {
	if limit <= 0 {
		limit = s.catalog.FeaturedLimit
	}
	if limit > s.catalog.MaxPageSize {
		limit = s.catalog.MaxPageSize
	}
	ctx := context.Background()
	if cached, hit, err := cache.GetFeatured(ctx, limit); err != nil {
		logger.Warnw("featured_cache_get_failed", "limit", limit, "error", err)
	} else if hit {
		return cached, nil
	}
	products, err := s.productRepo.ListFeatured(limit)
	if err != nil {
		return nil, err
	}
	if err := cache.SetFeatured(ctx, limit, products, s.catalog.CacheTTL()); err != nil {
		logger.Warnw("featured_cache_set_failed", "limit", limit, "error", err)
	}
	return products, nil
}

// Create lists a new product owned by the actor
func (s *ProductService) Create(actor Identity, input models.ProductInput) (*models.Product, error) {
	if actor.Role != constants.RoleArtisan && !actor.IsAdmin() {
		return nil, ErrForbidden
	}
	product, err := models.NewProduct(actor.UserID, input)
	if err != nil {
		return nil, err
	}
	if err := s.productRepo.Create(product); err != nil {
		return nil, err
	}
	invalidateProductCache(product.ID)
	return product, nil
}

// Update edits a product owned by the actor; admins may edit any product
func (s *ProductService) Update(actor Identity, productID uint, input models.ProductInput) (*models.Product, error) {
	product, err := s.loadManaged(actor, productID)
	if err != nil {
		return nil, err
	}
	product.Apply(input)
	if err := product.Validate(); err != nil {
		return nil, err
	}

	err = s.productRepo.Transaction(func(tx *gorm.DB) error {
		repo := s.productRepo.WithTx(tx)
		if err := repo.Update(product); err != nil {
			return err
		}
		if input.Stock != nil {
			return repo.UpdateFlags(product.ID, map[string]interface{}{"stock": *input.Stock})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	invalidateProductCache(product.ID)
	return product, nil
}

// Delete soft-deletes a product; order history keeps its snapshots
func (s *ProductService) Delete(actor Identity, productID uint) error {
	if _, err := s.loadManaged(actor, productID); err != nil {
		return err
	}
	if err := s.productRepo.Delete(productID); err != nil {
		return err
	}
	invalidateProductCache(productID)
	return nil
}

func (s *ProductService) loadManaged(actor Identity, productID uint) (*models.Product, error) {
	product, err := s.productRepo.GetByID(productID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, ErrProductNotFound
	}
	if !actor.CanManage(product.ArtisanID) {
		return nil, ErrForbidden
	}
	return product, nil
}

// invalidateProductCache drops cached details and featured shelves after a write
func invalidateProductCache(productIDs ...uint) {
	if len(productIDs) == 0 {
		return
	}
	if err := cache.InvalidateProducts(context.Background(), productIDs...); err != nil {
		logger.Warnw("product_cache_invalidate_failed", "product_ids", productIDs, "error", err)
	}
}
