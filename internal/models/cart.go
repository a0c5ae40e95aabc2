package models

import (
	"fmt"
	"time"

	"github.com/artisanhub/internal/constants"
)

// Cart the single active cart of a user
type Cart struct {
	ID          uint      `gorm:"primarykey" json:"id"`                                      // primary key
	UserID      uint      `gorm:"uniqueIndex;not null" json:"user_id"`                       // owner, one cart per user
	TotalItems  int       `gorm:"not null;default:0" json:"total_items"`                     // Σ quantity
	TotalAmount Money     `gorm:"type:decimal(20,2);not null;default:0" json:"total_amount"` // Σ quantity × price
	CreatedAt   time.Time `gorm:"index" json:"created_at"`                                   // created
	UpdatedAt   time.Time `gorm:"index" json:"updated_at"`                                   // updated

	Items []CartItem `gorm:"foreignKey:CartID" json:"items"` // lines
}

// TableName table name
func (Cart) TableName() string {
	return "carts"
}

// CartItem one product line in a cart
type CartItem struct {
	ID        uint      `gorm:"primarykey" json:"id"`                                         // primary key
	CartID    uint      `gorm:"not null;uniqueIndex:idx_cart_item_product" json:"cart_id"`    // cart
	ProductID uint      `gorm:"not null;uniqueIndex:idx_cart_item_product" json:"product_id"` // product
	Quantity  int       `gorm:"not null" json:"quantity"`                                     // 1..99
	Price     Money     `gorm:"type:decimal(20,2);not null;default:0" json:"price"`           // unit price captured when added
	CreatedAt time.Time `gorm:"index" json:"created_at"`                                      // created
	UpdatedAt time.Time `gorm:"index" json:"updated_at"`                                      // updated

	Product *Product `gorm:"foreignKey:ProductID" json:"product,omitempty"` // populated product
}

// TableName table name
func (CartItem) TableName() string {
	return "cart_items"
}

// Subtotal quantity × captured price
func (i CartItem) Subtotal() Money {
	return i.Price.Times(i.Quantity)
}

// NewCart empty cart for userID
func NewCart(userID uint) *Cart {
	return &Cart{UserID: userID, TotalAmount: ZeroMoney(), Items: []CartItem{}}
}

// AddItem merges qty into an existing line or appends a new one
func (c *Cart) AddItem(productID uint, qty int, unitPrice Money) error {
	if qty < 1 {
		return NewFieldError("quantity", "quantity must be at least 1")
	}
	for i := range c.Items {
		if c.Items[i].ProductID != productID {
			continue
		}
		next := c.Items[i].Quantity + qty
		if next > constants.CartItemMaxQuantity {
			return NewFieldError("quantity", fmt.Sprintf("quantity cannot exceed %d", constants.CartItemMaxQuantity))
		}
		c.Items[i].Quantity = next
		c.Recalculate()
		return nil
	}
	if qty > constants.CartItemMaxQuantity {
		return NewFieldError("quantity", fmt.Sprintf("quantity cannot exceed %d", constants.CartItemMaxQuantity))
	}
	c.Items = append(c.Items, CartItem{
		CartID:    c.ID,
		ProductID: productID,
		Quantity:  qty,
		Price:     NewMoneyFromDecimal(unitPrice.Decimal),
	})
	c.Recalculate()
	return nil
}

// UpdateQuantity overwrites a line's quantity; qty <= 0 removes the line.
// Reports false when the product has no line in the cart.
func (c *Cart) UpdateQuantity(productID uint, qty int) (bool, error) {
	if qty > constants.CartItemMaxQuantity {
		return false, NewFieldError("quantity", fmt.Sprintf("quantity cannot exceed %d", constants.CartItemMaxQuantity))
	}
	for i := range c.Items {
		if c.Items[i].ProductID != productID {
			continue
		}
		if qty <= 0 {
			c.Items = append(c.Items[:i], c.Items[i+1:]...)
		} else {
			c.Items[i].Quantity = qty
		}
		c.Recalculate()
		return true, nil
	}
	return false, nil
}

// RemoveItem drops the line for productID, reporting whether it existed
func (c *Cart) RemoveItem(productID uint) bool {
	for i := range c.Items {
		if c.Items[i].ProductID == productID {
			c.Items = append(c.Items[:i], c.Items[i+1:]...)
			c.Recalculate()
			return true
		}
	}
	return false
}

// Clear empties the cart
func (c *Cart) Clear() {
	c.Items = []CartItem{}
	c.Recalculate()
}

// FindItem returns the line for productID
func (c *Cart) FindItem(productID uint) *CartItem {
	for i := range c.Items {
		if c.Items[i].ProductID == productID {
			return &c.Items[i]
		}
	}
	return nil
}

// Recalculate derives TotalItems and TotalAmount from the current lines
func (c *Cart) Recalculate() {
	totalItems := 0
	totalAmount := ZeroMoney()
	for _, item := range c.Items {
		totalItems += item.Quantity
		totalAmount = totalAmount.Plus(item.Subtotal())
	}
	c.TotalItems = totalItems
	c.TotalAmount = totalAmount
}

// IsEmpty no lines
func (c *Cart) IsEmpty() bool {
	return c == nil || len(c.Items) == 0
}
