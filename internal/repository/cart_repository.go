package repository

import (
	"errors"
	"time"

	"github.com/artisanhub/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// CartRepository cart persistence
type CartRepository interface {
	GetByUser(userID uint) (*models.Cart, error)
	GetOrCreate(userID uint) (*models.Cart, error)
	Save(cart *models.Cart) error
	Transaction(fn func(tx *gorm.DB) error) error
	WithTx(tx *gorm.DB) CartRepository
}

// GormCartRepository gorm implementation
type GormCartRepository struct {
	db *gorm.DB
}

// NewCartRepository builds the cart repository
func NewCartRepository(db *gorm.DB) *GormCartRepository {
	return &GormCartRepository{db: db}
}

func (r *GormCartRepository) WithTx(tx *gorm.DB) CartRepository {
	if tx == nil {
		return r
	}
	return &GormCartRepository{db: tx}
}

func (r *GormCartRepository) Transaction(fn func(tx *gorm.DB) error) error {
	if fn == nil {
		return nil
	}
	return r.db.Transaction(fn)
}

// GetByUser cart with lines and their products, nil when the user has none
func (r *GormCartRepository) GetByUser(userID uint) (*models.Cart, error) {
	cart, err := firstOrNil[models.Cart](r.db.
		Preload("Items", func(db *gorm.DB) *gorm.DB {
			return db.Order("id ASC")
		}).
		Preload("Items.Product").
		Where("user_id = ?", userID))
	if cart != nil && cart.Items == nil {
		cart.Items = []models.CartItem{}
	}
	return cart, err
}

// GetOrCreate returns the user's cart, creating an empty one on first access
func (r *GormCartRepository) GetOrCreate(userID uint) (*models.Cart, error) {
	cart, err := r.GetByUser(userID)
	if err != nil || cart != nil {
		return cart, err
	}
	fresh := models.NewCart(userID)
	// two first requests racing on the unique user_id both end up reading the same row
	if err := r.db.Omit("Items").Clauses(clause.OnConflict{DoNothing: true}).Create(fresh).Error; err != nil {
		return nil, err
	}
	return r.GetByUser(userID)
}

// Save recalculates totals, then persists the header and reconciles the lines
func (r *GormCartRepository) Save(cart *models.Cart) error {
	if cart == nil || cart.ID == 0 {
		return errors.New("cart must be persisted before save")
	}
	cart.Recalculate()
	now := time.Now()

	keep := make([]uint, 0, len(cart.Items))
	for _, item := range cart.Items {
		keep = append(keep, item.ProductID)
	}
	stale := r.db.Where("cart_id = ?", cart.ID)
	if len(keep) > 0 {
		stale = stale.Where("product_id NOT IN ?", keep)
	}
	if err := stale.Delete(&models.CartItem{}).Error; err != nil {
		return err
	}

	for i := range cart.Items {
		item := &cart.Items[i]
		item.CartID = cart.ID
		item.UpdatedAt = now
		if item.CreatedAt.IsZero() {
			item.CreatedAt = now
		}
		if item.ID != 0 {
			err := r.db.Model(&models.CartItem{}).Where("id = ?", item.ID).Updates(map[string]interface{}{
				"quantity":   item.Quantity,
				"price":      item.Price,
				"updated_at": now,
			}).Error
			if err != nil {
				return err
			}
			continue
		}
		err := r.db.Omit("Product").Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "cart_id"}, {Name: "product_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"quantity", "price", "updated_at"}),
		}).Create(item).Error
		if err != nil {
			return err
		}
	}

	return r.db.Model(&models.Cart{}).Where("id = ?", cart.ID).Updates(map[string]interface{}{
		"total_items":  cart.TotalItems,
		"total_amount": cart.TotalAmount,
		"updated_at":   now,
	}).Error
}
