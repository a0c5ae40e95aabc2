package repository

import (
	"time"

	"github.com/artisanhub/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// WishlistRepository wishlist persistence
type WishlistRepository interface {
	GetOrCreate(userID uint) (*models.Wishlist, error)
	AddItem(wishlistID, productID uint, at time.Time) (bool, error)
	RemoveItem(wishlistID, productID uint) (int64, error)
	Clear(wishlistID uint) error
	Contains(userID, productID uint) (bool, error)
}

// GormWishlistRepository gorm implementation
type GormWishlistRepository struct {
	db *gorm.DB
}

// NewWishlistRepository builds the wishlist repository
func NewWishlistRepository(db *gorm.DB) *GormWishlistRepository {
	return &GormWishlistRepository{db: db}
}

func (r *GormWishlistRepository) getByUser(userID uint) (*models.Wishlist, error) {
	return firstOrNil[models.Wishlist](r.db.
		Preload("Items", func(db *gorm.DB) *gorm.DB {
			return db.Order("added_at DESC, id DESC")
		}).
		Preload("Items.Product").
		Where("user_id = ?", userID))
}

// GetOrCreate wishlist with items and products, created lazily
func (r *GormWishlistRepository) GetOrCreate(userID uint) (*models.Wishlist, error) {
	wishlist, err := r.getByUser(userID)
	if err != nil || wishlist != nil {
		return wishlist, err
	}
	fresh := &models.Wishlist{UserID: userID}
	if err := r.db.Omit("Items").Clauses(clause.OnConflict{DoNothing: true}).Create(fresh).Error; err != nil {
		return nil, err
	}
	return r.getByUser(userID)
}

// AddItem reports false when the product is already saved
func (r *GormWishlistRepository) AddItem(wishlistID, productID uint, at time.Time) (bool, error) {
	item := &models.WishlistItem{WishlistID: wishlistID, ProductID: productID, AddedAt: at}
	result := r.db.Omit("Product").Clauses(clause.OnConflict{DoNothing: true}).Create(item)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (r *GormWishlistRepository) RemoveItem(wishlistID, productID uint) (int64, error) {
	result := r.db.Where("wishlist_id = ? AND product_id = ?", wishlistID, productID).Delete(&models.WishlistItem{})
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}

func (r *GormWishlistRepository) Clear(wishlistID uint) error {
	return r.db.Where("wishlist_id = ?", wishlistID).Delete(&models.WishlistItem{}).Error
}

func (r *GormWishlistRepository) Contains(userID, productID uint) (bool, error) {
	var count int64
	err := r.db.Model(&models.WishlistItem{}).
		Joins("JOIN wishlists w ON w.id = wishlist_items.wishlist_id").
		Where("w.user_id = ? AND wishlist_items.product_id = ?", userID, productID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}
