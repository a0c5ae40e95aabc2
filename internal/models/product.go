package models

import (
	"strings"
	"time"

	"github.com/artisanhub/internal/constants"

	"gorm.io/gorm"
)

// Dimensions physical size of a product
type Dimensions struct {
	Length float64 `gorm:"default:0" json:"length" validate:"gte=0"`                                     // length
	Width  float64 `gorm:"default:0" json:"width" validate:"gte=0"`                                      // width
	Height float64 `gorm:"default:0" json:"height" validate:"gte=0"`                                     // height
	Unit   string  `gorm:"type:varchar(10);default:'cm'" json:"unit" validate:"omitempty,oneof=cm inch"` // cm or inch
}

// ShippingInfo shipping attributes shown on the product page
type ShippingInfo struct {
	Weight            float64 `gorm:"default:0" json:"weight" validate:"gte=0"`                                                 // kg
	EstimatedDelivery string  `gorm:"type:varchar(50);default:'3-5 business days'" json:"estimated_delivery" validate:"max=50"` // free-text estimate
}

// Ratings aggregated review score, written only by the rating aggregator
type Ratings struct {
	Average float64 `gorm:"not null;default:0" json:"average" validate:"gte=0,lte=5"` // mean rating, 1 decimal
	Count   int     `gorm:"not null;default:0" json:"count" validate:"gte=0"`         // non-hidden review count
}

// Product handmade item listed by an artisan
type Product struct {
	ID               uint           `gorm:"primarykey" json:"id"`                                                                 // primary key
	Title            string         `gorm:"type:varchar(100);not null" json:"title" validate:"required,min=3,max=100"`            // title
	Description      string         `gorm:"type:text;not null" json:"description" validate:"required,min=10,max=1000"`            // description
	Price            Money          `gorm:"type:decimal(20,2);not null;default:0;index" json:"price" validate:"gte=0,lte=100000"` // unit price
	Category         string         `gorm:"type:varchar(50);not null;index" json:"category" validate:"required,product_category"` // closed category set
	Images           StringArray    `gorm:"type:json" json:"images" validate:"required,min=1,dive,required"`                      // image URLs
	ArtisanID        uint           `gorm:"not null;index" json:"artisan_id" validate:"required"`                                 // owning artisan
	Stock            int            `gorm:"not null;default:1" json:"stock" validate:"gte=0"`                                     // available quantity
	IsActive         bool           `gorm:"default:true;index" json:"is_active"`                                                  // listed
	IsFeatured       bool           `gorm:"default:false;index" json:"is_featured"`                                               // shown on the featured shelf
	Tags             StringArray    `gorm:"type:json" json:"tags" validate:"max=20,dive,max=30"`                                  // free tags
	Materials        StringArray    `gorm:"type:json" json:"materials" validate:"max=20,dive,max=50"`                             // materials used
	Dimensions       Dimensions     `gorm:"embedded;embeddedPrefix:dim_" json:"dimensions"`                                       // size
	CareInstructions string         `gorm:"type:varchar(500)" json:"care_instructions" validate:"max=500"`                        // care notes
	ShippingInfo     ShippingInfo   `gorm:"embedded;embeddedPrefix:shipping_" json:"shipping_info"`                               // shipping
	Ratings          Ratings        `gorm:"embedded;embeddedPrefix:rating_" json:"ratings"`                                       // aggregated reviews
	CreatedAt        time.Time      `gorm:"index" json:"created_at"`                                                              // created
	UpdatedAt        time.Time      `json:"updated_at"`                                                                           // updated
	DeletedAt        gorm.DeletedAt `gorm:"index" json:"-"`                                                                       // soft delete

	Artisan *User `gorm:"foreignKey:ArtisanID" json:"artisan,omitempty" validate:"-"` // owning artisan
}

// TableName table name
func (Product) TableName() string {
	return "products"
}

// ProductInput editable product attributes
type ProductInput struct {
	Title            string       `json:"title"`
	Description      string       `json:"description"`
	Price            *Money       `json:"price"`
	Category         string       `json:"category"`
	Images           []string     `json:"images"`
	Stock            *int         `json:"stock"`
	IsActive         *bool        `json:"is_active"`
	IsFeatured       *bool        `json:"is_featured"`
	Tags             []string     `json:"tags"`
	Materials        []string     `json:"materials"`
	Dimensions       *Dimensions  `json:"dimensions"`
	CareInstructions string       `json:"care_instructions"`
	ShippingInfo     ShippingInfo `json:"shipping_info"`
}

// NewProduct builds a validated product owned by artisanID
func NewProduct(artisanID uint, input ProductInput) (*Product, error) {
	if input.Price == nil {
		return nil, NewFieldError("price", "Product price is required")
	}
	p := &Product{
		ArtisanID: artisanID,
		Stock:     1,
		IsActive:  true,
		Dimensions: Dimensions{
			Unit: constants.DimensionUnitCM,
		},
		ShippingInfo: ShippingInfo{
			EstimatedDelivery: constants.DefaultDeliveryEstimate,
		},
	}
	p.Apply(input)
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return p, nil
}

// Apply copies the non-empty input fields onto the product
func (p *Product) Apply(input ProductInput) {
	if v := strings.TrimSpace(input.Title); v != "" {
		p.Title = v
	}
	if v := strings.TrimSpace(input.Description); v != "" {
		p.Description = v
	}
	if input.Price != nil {
		p.Price = NewMoneyFromDecimal(input.Price.Decimal)
	}
	if v := strings.TrimSpace(input.Category); v != "" {
		p.Category = v
	}
	if input.Images != nil {
		p.Images = trimList(input.Images)
	}
	if input.Stock != nil {
		p.Stock = *input.Stock
	}
	if input.IsActive != nil {
		p.IsActive = *input.IsActive
	}
	if input.IsFeatured != nil {
		p.IsFeatured = *input.IsFeatured
	}
	if input.Tags != nil {
		p.Tags = trimList(input.Tags)
	}
	if input.Materials != nil {
		p.Materials = trimList(input.Materials)
	}
	if input.Dimensions != nil {
		p.Dimensions = *input.Dimensions
		if p.Dimensions.Unit == "" {
			p.Dimensions.Unit = constants.DimensionUnitCM
		}
	}
	if v := strings.TrimSpace(input.CareInstructions); v != "" {
		p.CareInstructions = v
	}
	if input.ShippingInfo.Weight > 0 {
		p.ShippingInfo.Weight = input.ShippingInfo.Weight
	}
	if v := strings.TrimSpace(input.ShippingInfo.EstimatedDelivery); v != "" {
		p.ShippingInfo.EstimatedDelivery = v
	}
}

// Validate checks field constraints
func (p *Product) Validate() error {
	return ValidateStruct(p)
}

// IsPurchasable active and not soft-deleted
func (p *Product) IsPurchasable() bool {
	return p != nil && p.IsActive && !p.DeletedAt.Valid
}

func trimList(values []string) StringArray {
	out := make(StringArray, 0, len(values))
	for _, v := range values {
		v = strings.TrimSpace(v)
		if v != "" {
			out = append(out, v)
		}
	}
	return out
}
