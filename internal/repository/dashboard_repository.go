package repository

import (
	"fmt"
	"time"

	"github.com/artisanhub/internal/constants"
	"github.com/artisanhub/internal/models"

	"gorm.io/gorm"
)

// DashboardRepository artisan dashboard aggregations
// Aggregates only; no business rules live here.
type DashboardRepository interface {
	GetProductStats(artisanID uint) (ArtisanProductStatsRow, error)
	GetRecentProducts(artisanID uint, limit int) ([]models.Product, error)
	GetCategoryCounts(artisanID uint) ([]GroupCountRow, error)
	CountProductsCreatedSince(artisanID uint, since time.Time) (int64, error)
	GetPriceRanges(artisanID uint) ([]GroupCountRow, error)
	GetStockStatus(artisanID uint, lowStockBelow int) ([]GroupCountRow, error)
	GetOrderTrends(artisanID uint, startAt, endAt time.Time) ([]DashboardOrderTrendRow, error)
	GetTopProducts(artisanID uint, startAt, endAt time.Time, limit int) ([]DashboardProductRankingRow, error)
}

// Price bucket and stock status labels
const (
	PriceRangeUnder100    = "Under ₹100"
	PriceRange100To500    = "₹100-₹500"
	PriceRange500To1000   = "₹500-₹1000"
	PriceRangeAbove1000   = "Above ₹1000"
	StockStatusOutOfStock = "Out of Stock"
	StockStatusLowStock   = "Low Stock"
	StockStatusInStock    = "In Stock"
)

// DashboardOrderTrendRow orders per day containing the artisan's items
type DashboardOrderTrendRow struct {
	Day         string  `json:"day"`
	OrdersTotal int64   `json:"orders_total"`
	Revenue     float64 `json:"revenue"`
}

// DashboardProductRankingRow best sellers of the artisan
type DashboardProductRankingRow struct {
	ProductID uint    `json:"product_id"`
	Title     string  `json:"title"`
	Orders    int64   `json:"orders"`
	Quantity  int64   `json:"quantity"`
	Revenue   float64 `json:"revenue"`
}

// GormDashboardRepository gorm implementation
type GormDashboardRepository struct {
	db *gorm.DB
}

// NewDashboardRepository builds the dashboard repository
func NewDashboardRepository(db *gorm.DB) *GormDashboardRepository {
	return &GormDashboardRepository{db: db}
}

func (r *GormDashboardRepository) artisanProducts(artisanID uint) *gorm.DB {
	return r.db.Model(&models.Product{}).Where("artisan_id = ?", artisanID)
}

// GetProductStats counters and Σ price×stock
func (r *GormDashboardRepository) GetProductStats(artisanID uint) (ArtisanProductStatsRow, error) {
	result := ArtisanProductStatsRow{}
	err := r.artisanProducts(artisanID).
		Select(`
			COUNT(*) AS total_products,
			COALESCE(SUM(CASE WHEN is_active THEN 1 ELSE 0 END), 0) AS active_products,
			COALESCE(SUM(CASE WHEN is_featured THEN 1 ELSE 0 END), 0) AS featured_products,
			COALESCE(SUM(price * stock), 0) AS total_value
		`).
		Scan(&result).Error
	return result, err
}

func (r *GormDashboardRepository) GetRecentProducts(artisanID uint, limit int) ([]models.Product, error) {
	if limit <= 0 {
		limit = 5
	}
	var products []models.Product
	if err := r.artisanProducts(artisanID).
		Order("created_at DESC, id DESC").
		Limit(limit).
		Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

func (r *GormDashboardRepository) GetCategoryCounts(artisanID uint) ([]GroupCountRow, error) {
	rows := make([]GroupCountRow, 0)
	if err := r.artisanProducts(artisanID).
		Select("category AS label, COUNT(*) AS count").
		Group("category").
		Order("count DESC, label ASC").
		Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *GormDashboardRepository) CountProductsCreatedSince(artisanID uint, since time.Time) (int64, error) {
	var count int64
	err := r.artisanProducts(artisanID).Where("created_at >= ?", since).Count(&count).Error
	return count, err
}

// GetPriceRanges buckets: <100, 100-500, 500-1000, >=1000
func (r *GormDashboardRepository) GetPriceRanges(artisanID uint) ([]GroupCountRow, error) {
	bucket := fmt.Sprintf(`CASE
			WHEN price < 100 THEN '%s'
			WHEN price < 500 THEN '%s'
			WHEN price < 1000 THEN '%s'
			ELSE '%s' END`,
		PriceRangeUnder100, PriceRange100To500, PriceRange500To1000, PriceRangeAbove1000)
	return r.groupBy(artisanID, bucket)
}

// GetStockStatus buckets: stock = 0, stock < lowStockBelow, rest
func (r *GormDashboardRepository) GetStockStatus(artisanID uint, lowStockBelow int) ([]GroupCountRow, error) {
	if lowStockBelow <= 0 {
		lowStockBelow = constants.LowStockThreshold
	}
	bucket := fmt.Sprintf(`CASE
			WHEN stock = 0 THEN '%s'
			WHEN stock < %d THEN '%s'
			ELSE '%s' END`,
		StockStatusOutOfStock, lowStockBelow, StockStatusLowStock, StockStatusInStock)
	return r.groupBy(artisanID, bucket)
}

func (r *GormDashboardRepository) groupBy(artisanID uint, expr string) ([]GroupCountRow, error) {
	rows := make([]GroupCountRow, 0)
	if err := r.artisanProducts(artisanID).
		Select(expr + " AS label, COUNT(*) AS count").
		Group("label").
		Order("count DESC, label ASC").
		Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// GetOrderTrends daily order count and the artisan's share of revenue, cancelled orders excluded
func (r *GormDashboardRepository) GetOrderTrends(artisanID uint, startAt, endAt time.Time) ([]DashboardOrderTrendRow, error) {
	rows := make([]DashboardOrderTrendRow, 0)
	dayExpr := "CAST(date(orders.created_at) AS TEXT)"
	if err := r.db.Model(&models.OrderItem{}).
		Select(fmt.Sprintf(`
			%s AS day,
			COUNT(DISTINCT order_items.order_id) AS orders_total,
			COALESCE(SUM(order_items.price * order_items.quantity), 0) AS revenue
		`, dayExpr)).
		Joins("JOIN orders ON orders.id = order_items.order_id").
		Where("order_items.artisan_id = ? AND orders.created_at >= ? AND orders.created_at < ? AND orders.status <> ?",
			artisanID, startAt, endAt, constants.OrderStatusCancelled).
		Group(dayExpr).
		Order("day ASC").
		Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// GetTopProducts best sellers by revenue in the window
func (r *GormDashboardRepository) GetTopProducts(artisanID uint, startAt, endAt time.Time, limit int) ([]DashboardProductRankingRow, error) {
	if limit <= 0 {
		limit = 5
	}
	rows := make([]DashboardProductRankingRow, 0)
	if err := r.db.Model(&models.OrderItem{}).
		Select(`
			order_items.product_id AS product_id,
			MAX(order_items.title) AS title,
			COUNT(DISTINCT order_items.order_id) AS orders,
			COALESCE(SUM(order_items.quantity), 0) AS quantity,
			COALESCE(SUM(order_items.price * order_items.quantity), 0) AS revenue
		`).
		Joins("JOIN orders ON orders.id = order_items.order_id").
		Where("order_items.artisan_id = ? AND orders.created_at >= ? AND orders.created_at < ? AND orders.status <> ?",
			artisanID, startAt, endAt, constants.OrderStatusCancelled).
		Group("order_items.product_id").
		Order("revenue DESC, quantity DESC").
		Limit(limit).
		Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}
