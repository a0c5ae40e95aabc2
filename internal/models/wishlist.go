package models

import "time"

// Wishlist saved products of a user
type Wishlist struct {
	ID        uint      `gorm:"primarykey" json:"id"`                // primary key
	UserID    uint      `gorm:"uniqueIndex;not null" json:"user_id"` // owner, one per user
	CreatedAt time.Time `json:"created_at"`                          // created
	UpdatedAt time.Time `json:"updated_at"`                          // updated

	Items []WishlistItem `gorm:"foreignKey:WishlistID" json:"items"` // saved products
}

// TableName table name
func (Wishlist) TableName() string {
	return "wishlists"
}

// WishlistItem one saved product
type WishlistItem struct {
	ID         uint      `gorm:"primarykey" json:"id"`                                              // primary key
	WishlistID uint      `gorm:"not null;uniqueIndex:idx_wishlist_product" json:"wishlist_id"`      // wishlist
	ProductID  uint      `gorm:"not null;uniqueIndex:idx_wishlist_product;index" json:"product_id"` // product
	AddedAt    time.Time `gorm:"not null" json:"added_at"`                                          // when saved

	Product *Product `gorm:"foreignKey:ProductID" json:"product,omitempty"` // populated product
}

// TableName table name
func (WishlistItem) TableName() string {
	return "wishlist_items"
}

// ActiveItems lines whose product is still listed
func (w *Wishlist) ActiveItems() []WishlistItem {
	out := make([]WishlistItem, 0, len(w.Items))
	for _, item := range w.Items {
		if item.Product != nil && item.Product.IsPurchasable() {
			out = append(out, item)
		}
	}
	return out
}
