package models

import (
	"strings"
	"time"
)

// Review verified purchase review; one per (product, customer, order)
type Review struct {
	ID           uint        `gorm:"primarykey" json:"id"`                                                                // primary key
	ProductID    uint        `gorm:"not null;uniqueIndex:idx_review_triple;index" json:"product_id" validate:"required"`  // product
	CustomerID   uint        `gorm:"not null;uniqueIndex:idx_review_triple;index" json:"customer_id" validate:"required"` // author
	OrderID      uint        `gorm:"not null;uniqueIndex:idx_review_triple" json:"order_id" validate:"required"`          // delivered order
	Rating       int         `gorm:"not null" json:"rating" validate:"required,gte=1,lte=5"`                              // 1..5
	Title        string      `gorm:"type:varchar(100);not null" json:"title" validate:"required,min=3,max=100"`           // headline
	Comment      string      `gorm:"type:text;not null" json:"comment" validate:"required,min=10,max=1000"`               // body
	Images       StringArray `gorm:"type:json" json:"images" validate:"max=5,dive,required"`                              // photos
	IsVerified   bool        `gorm:"not null;default:true" json:"is_verified"`                                            // always true
	HelpfulVotes int         `gorm:"not null;default:0" json:"helpful_votes"`                                             // helpful counter
	ReportCount  int         `gorm:"not null;default:0" json:"report_count"`                                              // abuse reports
	IsHidden     bool        `gorm:"not null;default:false;index" json:"is_hidden"`                                       // excluded from listings and ratings
	CreatedAt    time.Time   `gorm:"index" json:"created_at"`                                                             // created
	UpdatedAt    time.Time   `json:"updated_at"`                                                                          // updated

	Customer *User    `gorm:"foreignKey:CustomerID" json:"customer,omitempty" validate:"-"` // author
	Product  *Product `gorm:"foreignKey:ProductID" json:"product,omitempty" validate:"-"`   // reviewed product
}

// TableName table name
func (Review) TableName() string {
	return "reviews"
}

// ReviewInput author-editable review fields
type ReviewInput struct {
	Rating  int      `json:"rating"`
	Title   string   `json:"title"`
	Comment string   `json:"comment"`
	Images  []string `json:"images"`
}

// NewReview builds a validated, verified review
func NewReview(productID, customerID, orderID uint, input ReviewInput) (*Review, error) {
	r := &Review{
		ProductID:  productID,
		CustomerID: customerID,
		OrderID:    orderID,
		IsVerified: true,
	}
	r.Apply(input)
	if err := r.Validate(); err != nil {
		return nil, err
	}
	return r, nil
}

// Apply copies non-empty input onto the review
func (r *Review) Apply(input ReviewInput) {
	if input.Rating != 0 {
		r.Rating = input.Rating
	}
	if v := strings.TrimSpace(input.Title); v != "" {
		r.Title = v
	}
	if v := strings.TrimSpace(input.Comment); v != "" {
		r.Comment = v
	}
	if input.Images != nil {
		r.Images = trimList(input.Images)
	}
}

// Validate checks field constraints
func (r *Review) Validate() error {
	return ValidateStruct(r)
}
