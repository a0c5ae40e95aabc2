package repository

import (
	"errors"
	"strings"

	"github.com/artisanhub/internal/constants"
	"github.com/artisanhub/internal/models"

	"gorm.io/gorm"
)

// ProductRepository product persistence
type ProductRepository interface {
	List(filter ProductListFilter) ([]models.Product, int64, error)
	ListFeatured(limit int) ([]models.Product, error)
	GetByID(id uint) (*models.Product, error)
	ListByIDs(ids []uint) ([]models.Product, error)
	Create(product *models.Product) error
	Update(product *models.Product) error
	UpdateFlags(id uint, updates map[string]interface{}) error
	Delete(id uint) error
	DecrementStock(productID uint, quantity int) (int64, error)
	RestoreStock(productID uint, quantity int) (int64, error)
	UpdateRatings(productID uint, average float64, count int64) error
	Transaction(fn func(tx *gorm.DB) error) error
	WithTx(tx *gorm.DB) ProductRepository
}

// GormProductRepository gorm implementation
type GormProductRepository struct {
	db *gorm.DB
}

// NewProductRepository builds the product repository
func NewProductRepository(db *gorm.DB) *GormProductRepository {
	return &GormProductRepository{db: db}
}

// WithTx binds the repository to a transaction
func (r *GormProductRepository) WithTx(tx *gorm.DB) ProductRepository {
	if tx == nil {
		return r
	}
	return &GormProductRepository{db: tx}
}

// Transaction runs fn in a transaction
func (r *GormProductRepository) Transaction(fn func(tx *gorm.DB) error) error {
	if fn == nil {
		return nil
	}
	return r.db.Transaction(fn)
}

// List filtered, sorted, paginated products
func (r *GormProductRepository) List(filter ProductListFilter) ([]models.Product, int64, error) {
	query := r.db.Model(&models.Product{})
	if filter.OnlyActive {
		query = query.Where("is_active = ?", true)
	} else if filter.IsActive != nil {
		query = query.Where("is_active = ?", *filter.IsActive)
	}
	if filter.IsFeatured != nil {
		query = query.Where("is_featured = ?", *filter.IsFeatured)
	}
	if filter.ArtisanID != 0 {
		query = query.Where("artisan_id = ?", filter.ArtisanID)
	}
	if category := strings.TrimSpace(filter.Category); category != "" && category != constants.CategoryAll {
		query = query.Where("category = ?", category)
	}
	if filter.MinPrice != nil {
		query = query.Where("price >= ?", *filter.MinPrice)
	}
	if filter.MaxPrice != nil {
		query = query.Where("price <= ?", *filter.MaxPrice)
	}
	query = query.Scopes(containsScope(filter.Search, "title", "description"))

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = query.Scopes(pageScope(filter.Page, filter.PageSize))

	var products []models.Product
	if err := query.Preload("Artisan").Order(productOrder(filter.Sort)).Find(&products).Error; err != nil {
		return nil, 0, err
	}
	return products, total, nil
}

// productOrder maps a sort key to ORDER BY; unknown keys fall back to newest
func productOrder(sort string) string {
	switch strings.ToLower(strings.TrimSpace(sort)) {
	case constants.SortAZ:
		return "title ASC, id ASC"
	case constants.SortZA:
		return "title DESC, id DESC"
	case constants.SortPriceHigh:
		return "price DESC, id DESC"
	case constants.SortPriceLow:
		return "price ASC, id ASC"
	case constants.SortOldest:
		return "created_at ASC, id ASC"
	default:
		return "created_at DESC, id DESC"
	}
}

// ListFeatured active featured products, newest first
func (r *GormProductRepository) ListFeatured(limit int) ([]models.Product, error) {
	var products []models.Product
	query := r.db.Preload("Artisan").
		Where("is_active = ? AND is_featured = ?", true, true).
		Order("created_at DESC, id DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	if err := query.Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

// GetByID product with its artisan, nil when missing
func (r *GormProductRepository) GetByID(id uint) (*models.Product, error) {
	return firstOrNil[models.Product](r.db.Preload("Artisan"), id)
}

func (r *GormProductRepository) ListByIDs(ids []uint) ([]models.Product, error) {
	if len(ids) == 0 {
		return []models.Product{}, nil
	}
	var products []models.Product
	if err := r.db.Where("id IN ?", ids).Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

// Create inserts the product; zero stock and inactive flags are written explicitly over column defaults
func (r *GormProductRepository) Create(product *models.Product) error {
	if err := r.db.Omit("Artisan").Create(product).Error; err != nil {
		return err
	}
	if product.IsActive && product.Stock != 0 {
		return nil
	}
	return r.db.Model(&models.Product{}).Where("id = ?", product.ID).UpdateColumns(map[string]interface{}{
		"is_active": product.IsActive,
		"stock":     product.Stock,
	}).Error
}

// Update saves editable columns; stock and ratings have their own writers
func (r *GormProductRepository) Update(product *models.Product) error {
	return r.db.Model(product).
		Select("*").
		Omit("Artisan", "id", "stock", "rating_average", "rating_count", "created_at", "deleted_at").
		Updates(product).Error
}

func (r *GormProductRepository) UpdateFlags(id uint, updates map[string]interface{}) error {
	if len(updates) == 0 {
		return nil
	}
	return r.db.Model(&models.Product{}).Where("id = ?", id).Updates(updates).Error
}

func (r *GormProductRepository) Delete(id uint) error {
	return r.db.Delete(&models.Product{}, id).Error
}

// DecrementStock subtracts quantity only while enough stock remains; 0 rows affected means insufficient stock
func (r *GormProductRepository) DecrementStock(productID uint, quantity int) (int64, error) {
	if productID == 0 || quantity <= 0 {
		return 0, errors.New("invalid stock decrement params")
	}
	result := r.db.Model(&models.Product{}).
		Where("id = ? AND stock >= ?", productID, quantity).
		UpdateColumn("stock", gorm.Expr("stock - ?", quantity))
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}

// RestoreStock gives quantity back, soft-deleted products included
func (r *GormProductRepository) RestoreStock(productID uint, quantity int) (int64, error) {
	if productID == 0 || quantity <= 0 {
		return 0, errors.New("invalid stock restore params")
	}
	result := r.db.Unscoped().Model(&models.Product{}).
		Where("id = ?", productID).
		UpdateColumn("stock", gorm.Expr("stock + ?", quantity))
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}

// UpdateRatings writes the aggregated rating columns
func (r *GormProductRepository) UpdateRatings(productID uint, average float64, count int64) error {
	return r.db.Model(&models.Product{}).
		Where("id = ?", productID).
		UpdateColumns(map[string]interface{}{
			"rating_average": average,
			"rating_count":   count,
		}).Error
}
