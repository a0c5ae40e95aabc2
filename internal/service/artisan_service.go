package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/artisanhub/internal/cache"
	"github.com/artisanhub/internal/constants"
	"github.com/artisanhub/internal/logger"
	"github.com/artisanhub/internal/models"
	"github.com/artisanhub/internal/repository"
)

const (
	analyticsCacheTTL   = 45 * time.Second
	analyticsMaxDays    = 365
	recentProductsLimit = 5
	topProductsLimit    = 5
)

// ArtisanService dashboard of the authenticated artisan
type ArtisanService struct {
	dashboardRepo repository.DashboardRepository
	productRepo   repository.ProductRepository
	orderRepo     repository.OrderRepository
	auth          *AuthService
}

// NewArtisanService builds the artisan service
func NewArtisanService(
	dashboardRepo repository.DashboardRepository,
	productRepo repository.ProductRepository,
	orderRepo repository.OrderRepository,
	auth *AuthService,
) *ArtisanService {
	return &ArtisanService{
		dashboardRepo: dashboardRepo,
		productRepo:   productRepo,
		orderRepo:     orderRepo,
		auth:          auth,
	}
}

// ArtisanDashboardStats headline numbers
type ArtisanDashboardStats struct {
	TotalProducts    int64                      `json:"total_products"`
	ActiveProducts   int64                      `json:"active_products"`
	FeaturedProducts int64                      `json:"featured_products"`
	TotalValue       float64                    `json:"total_value"`
	RecentProducts   []models.Product           `json:"recent_products"`
	CategoryStats    []repository.GroupCountRow `json:"category_stats"`
	OrderStats       []repository.GroupCountRow `json:"order_stats"`
}

// ArtisanAnalytics period breakdown
type ArtisanAnalytics struct {
	PeriodDays           int                                     `json:"period_days"`
	From                 string                                  `json:"from"`
	To                   string                                  `json:"to"`
	ProductsCreated      int64                                   `json:"products_created"`
	CategoryDistribution []repository.GroupCountRow              `json:"category_distribution"`
	PriceRanges          []repository.GroupCountRow              `json:"price_ranges"`
	StockStatus          []repository.GroupCountRow              `json:"stock_status"`
	OrderTrends          []repository.DashboardOrderTrendRow     `json:"order_trends"`
	TopProducts          []repository.DashboardProductRankingRow `json:"top_products"`
}

// ArtisanProductQuery the artisan's own catalog, inactive products included
type ArtisanProductQuery struct {
	Status   string
	Category string
	Sort     string
	Page     int
	Limit    int
}

// DashboardStats counts, inventory value and order status breakdown
func (s *ArtisanService) DashboardStats(artisanID uint) (*ArtisanDashboardStats, error) {
	stats, err := s.dashboardRepo.GetProductStats(artisanID)
	if err != nil {
		return nil, err
	}
	recent, err := s.dashboardRepo.GetRecentProducts(artisanID, recentProductsLimit)
	if err != nil {
		return nil, err
	}
	categories, err := s.dashboardRepo.GetCategoryCounts(artisanID)
	if err != nil {
		return nil, err
	}
	orders, err := s.orderRepo.CountByStatusForArtisan(artisanID)
	if err != nil {
		return nil, err
	}
	return &ArtisanDashboardStats{
		TotalProducts:    stats.TotalProducts,
		ActiveProducts:   stats.ActiveProducts,
		FeaturedProducts: stats.FeaturedProducts,
		TotalValue:       stats.TotalValue,
		RecentProducts:   recent,
		CategoryStats:    categories,
		OrderStats:       orders,
	}, nil
}

// Analytics breakdown over the last periodDays (default 30)
func (s *ArtisanService) Analytics(ctx context.Context, artisanID uint, periodDays int) (*ArtisanAnalytics, error) {
	if periodDays == 0 {
		periodDays = constants.DefaultAnalyticsDays
	}
	if periodDays < 1 || periodDays > analyticsMaxDays {
		return nil, models.NewFieldError("period", fmt.Sprintf("Period must be between 1 and %d days", analyticsMaxDays))
	}

	cacheKey := fmt.Sprintf("artisan:analytics:%d:%d", artisanID, periodDays)
	var cached ArtisanAnalytics
	if hit, err := cache.GetJSON(ctx, cacheKey, &cached); err == nil && hit {
		return &cached, nil
	}

	endAt := time.Now()
	startAt := endAt.AddDate(0, 0, -periodDays)
	created, err := s.dashboardRepo.CountProductsCreatedSince(artisanID, startAt)
	if err != nil {
		return nil, err
	}
	categories, err := s.dashboardRepo.GetCategoryCounts(artisanID)
	if err != nil {
		return nil, err
	}
	prices, err := s.dashboardRepo.GetPriceRanges(artisanID)
	if err != nil {
		return nil, err
	}
	stock, err := s.dashboardRepo.GetStockStatus(artisanID, constants.LowStockThreshold)
	if err != nil {
		return nil, err
	}
	trends, err := s.dashboardRepo.GetOrderTrends(artisanID, startAt, endAt)
	if err != nil {
		return nil, err
	}
	top, err := s.dashboardRepo.GetTopProducts(artisanID, startAt, endAt, topProductsLimit)
	if err != nil {
		return nil, err
	}

	analytics := &ArtisanAnalytics{
		PeriodDays:           periodDays,
		From:                 startAt.Format(time.RFC3339),
		To:                   endAt.Format(time.RFC3339),
		ProductsCreated:      created,
		CategoryDistribution: categories,
		PriceRanges:          prices,
		StockStatus:          stock,
		OrderTrends:          trends,
		TopProducts:          top,
	}
	if err := cache.SetJSON(ctx, cacheKey, analytics, analyticsCacheTTL); err != nil {
		logger.Warnw("artisan_analytics_cache_set_failed", "artisan_id", artisanID, "error", err)
	}
	return analytics, nil
}

// ListProducts the artisan's products, any status unless filtered
func (s *ArtisanService) ListProducts(artisanID uint, query ArtisanProductQuery) (*ProductPage, error) {
	page, limit, err := normalizePage(query.Page, query.Limit, constants.DefaultProductPageSize, constants.MaxProductPageSize)
	if err != nil {
		return nil, err
	}
	filter := repository.ProductListFilter{
		Page:      page,
		PageSize:  limit,
		ArtisanID: artisanID,
		Sort:      strings.ToLower(strings.TrimSpace(query.Sort)),
	}
	switch strings.ToLower(strings.TrimSpace(query.Status)) {
	case "":
	case "active":
		active := true
		filter.IsActive = &active
	case "inactive":
		active := false
		filter.IsActive = &active
	default:
		return nil, models.NewFieldError("status", "Status must be active or inactive")
	}
	if filter.Sort != "" {
		if _, ok := productSorts[filter.Sort]; !ok {
			return nil, models.NewFieldError("sort", "Invalid sort option")
		}
	}
	category := strings.TrimSpace(query.Category)
	if category != "" && category != constants.CategoryAll {
		if !models.IsValidCategory(category) {
			return nil, models.NewFieldError("category", "Invalid category")
		}
		filter.Category = category
	}
	products, total, err := s.productRepo.List(filter)
	if err != nil {
		return nil, err
	}
	return &ProductPage{Products: products, Pagination: NewPagination(page, limit, total)}, nil
}

// SetProductActive lists or delists one of the artisan's products
func (s *ArtisanService) SetProductActive(actor Identity, productID uint, active bool) (*models.Product, error) {
	return s.setFlag(actor, productID, "is_active", active)
}

// SetProductFeatured toggles the featured shelf for one of the artisan's products
func (s *ArtisanService) SetProductFeatured(actor Identity, productID uint, featured bool) (*models.Product, error) {
	return s.setFlag(actor, productID, "is_featured", featured)
}

func (s *ArtisanService) setFlag(actor Identity, productID uint, column string, value bool) (*models.Product, error) {
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
	if err := s.productRepo.UpdateFlags(productID, map[string]interface{}{column: value}); err != nil {
		return nil, err
	}
	if column == "is_active" {
		product.IsActive = value
	} else {
		product.IsFeatured = value
	}
	invalidateProductCache(productID)
	return product, nil
}

// GetProfile the artisan's account
func (s *ArtisanService) GetProfile(artisanID uint) (*models.User, error) {
	return s.auth.Profile(artisanID)
}

// UpdateProfile edits contact details and the artisan profile
func (s *ArtisanService) UpdateProfile(artisanID uint, input ProfileInput) (*models.User, error) {
	return s.auth.UpdateProfile(artisanID, input)
}
