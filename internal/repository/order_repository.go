package repository

import (
	"strings"

	"github.com/artisanhub/internal/constants"
	"github.com/artisanhub/internal/models"

	"gorm.io/gorm"
)

const artisanOrderExistsSQL = "EXISTS (SELECT 1 FROM order_items oi WHERE oi.order_id = orders.id AND oi.artisan_id = ?)"

// OrderRepository order persistence
type OrderRepository interface {
	Create(order *models.Order) error
	GetByID(id uint) (*models.Order, error)
	GetByIDAndCustomer(id, customerID uint) (*models.Order, error)
	GetByIDAndArtisan(id, artisanID uint) (*models.Order, error)
	ListByCustomer(filter OrderListFilter) ([]models.Order, int64, error)
	ListByArtisan(filter OrderListFilter) ([]models.Order, int64, error)
	UpdateStatus(id uint, fromStatus string, updates map[string]interface{}) (int64, error)
	HasDeliveredOrderWithProduct(customerID, orderID, productID uint) (bool, error)
	CountByStatusForArtisan(artisanID uint) ([]GroupCountRow, error)
	Transaction(fn func(tx *gorm.DB) error) error
	WithTx(tx *gorm.DB) OrderRepository
}

// GormOrderRepository gorm implementation
type GormOrderRepository struct {
	db *gorm.DB
}

// NewOrderRepository builds the order repository
func NewOrderRepository(db *gorm.DB) *GormOrderRepository {
	return &GormOrderRepository{db: db}
}

func (r *GormOrderRepository) WithTx(tx *gorm.DB) OrderRepository {
	if tx == nil {
		return r
	}
	return &GormOrderRepository{db: tx}
}

func (r *GormOrderRepository) Transaction(fn func(tx *gorm.DB) error) error {
	if fn == nil {
		return nil
	}
	return r.db.Transaction(fn)
}

func (r *GormOrderRepository) withItems(query *gorm.DB) *gorm.DB {
	return query.Preload("Items", func(db *gorm.DB) *gorm.DB {
		return db.Order("id ASC")
	}).Preload("Items.Product")
}

// Create inserts the order and its items
func (r *GormOrderRepository) Create(order *models.Order) error {
	return r.db.Omit("Customer").Create(order).Error
}

func (r *GormOrderRepository) first(query *gorm.DB) (*models.Order, error) {
	return firstOrNil[models.Order](r.withItems(query))
}

func (r *GormOrderRepository) GetByID(id uint) (*models.Order, error) {
	return r.first(r.db.Where("id = ?", id))
}

// GetByIDAndCustomer order owned by the customer, nil otherwise
func (r *GormOrderRepository) GetByIDAndCustomer(id, customerID uint) (*models.Order, error) {
	return r.first(r.db.Where("id = ? AND customer_id = ?", id, customerID))
}

// GetByIDAndArtisan order containing at least one line of the artisan, nil otherwise
func (r *GormOrderRepository) GetByIDAndArtisan(id, artisanID uint) (*models.Order, error) {
	return r.first(r.db.Preload("Customer").Where("id = ?", id).Where(artisanOrderExistsSQL, artisanID))
}

// ListByCustomer newest first
func (r *GormOrderRepository) ListByCustomer(filter OrderListFilter) ([]models.Order, int64, error) {
	query := r.db.Model(&models.Order{}).Where("customer_id = ?", filter.CustomerID)
	return r.list(query, filter, false)
}

// ListByArtisan orders containing the artisan's lines, newest first
func (r *GormOrderRepository) ListByArtisan(filter OrderListFilter) ([]models.Order, int64, error) {
	query := r.db.Model(&models.Order{}).Where(artisanOrderExistsSQL, filter.ArtisanID)
	return r.list(query, filter, true)
}

func (r *GormOrderRepository) list(query *gorm.DB, filter OrderListFilter, withCustomer bool) ([]models.Order, int64, error) {
	if status := strings.TrimSpace(filter.Status); status != "" {
		query = query.Where("status = ?", status)
	}
	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	query = query.Scopes(pageScope(filter.Page, filter.PageSize))
	if withCustomer {
		query = query.Preload("Customer")
	}

	var orders []models.Order
	if err := r.withItems(query).Order("created_at DESC, id DESC").Find(&orders).Error; err != nil {
		return nil, 0, err
	}
	return orders, total, nil
}

// UpdateStatus applies updates only while the order is still in fromStatus; 0 rows means it moved on
func (r *GormOrderRepository) UpdateStatus(id uint, fromStatus string, updates map[string]interface{}) (int64, error) {
	result := r.db.Model(&models.Order{}).
		Where("id = ? AND status = ?", id, fromStatus).
		Updates(updates)
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}

// HasDeliveredOrderWithProduct checks that the customer's order is delivered and contains the product
func (r *GormOrderRepository) HasDeliveredOrderWithProduct(customerID, orderID, productID uint) (bool, error) {
	var count int64
	err := r.db.Model(&models.Order{}).
		Joins("JOIN order_items oi ON oi.order_id = orders.id").
		Where("orders.id = ? AND orders.customer_id = ? AND orders.status = ? AND oi.product_id = ?",
			orderID, customerID, constants.OrderStatusDelivered, productID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// CountByStatusForArtisan order counts per status for orders containing the artisan's lines
func (r *GormOrderRepository) CountByStatusForArtisan(artisanID uint) ([]GroupCountRow, error) {
	var rows []GroupCountRow
	err := r.db.Model(&models.Order{}).
		Select("status AS label, COUNT(*) AS count").
		Where(artisanOrderExistsSQL, artisanID).
		Group("status").
		Order("count DESC, label ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}
