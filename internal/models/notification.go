package models

import "time"

// Notification in-app message written by the background worker
type Notification struct {
	ID        uint       `gorm:"primarykey" json:"id"`                        // primary key
	UserID    uint       `gorm:"index;not null" json:"user_id"`               // recipient
	Kind      string     `gorm:"type:varchar(20);not null;index" json:"kind"` // order_status / low_stock
	Title     string     `gorm:"type:varchar(200);not null" json:"title"`     // headline
	Body      string     `gorm:"type:varchar(1000)" json:"body"`              // text
	OrderID   *uint      `gorm:"index" json:"order_id,omitempty"`             // related order
	ProductID *uint      `gorm:"index" json:"product_id,omitempty"`           // related product
	ReadAt    *time.Time `gorm:"index" json:"read_at"`                        // nil while unread
	CreatedAt time.Time  `gorm:"index" json:"created_at"`                     // created
}

// TableName table name
func (Notification) TableName() string {
	return "notifications"
}
