package models

import (
	"strings"
	"time"

	"github.com/artisanhub/internal/constants"

	"github.com/google/uuid"
)

// ShippingAddress delivery address captured at checkout
type ShippingAddress struct {
	Name    string `gorm:"type:varchar(50);not null" json:"name" validate:"required,min=2,max=50"`       // recipient
	Phone   string `gorm:"type:varchar(30);not null" json:"phone" validate:"required,phone"`             // contact number
	Street  string `gorm:"type:varchar(200);not null" json:"street" validate:"required,min=5,max=200"`   // street
	City    string `gorm:"type:varchar(50);not null" json:"city" validate:"required,min=2,max=50"`       // city
	State   string `gorm:"type:varchar(50);not null" json:"state" validate:"required,min=2,max=50"`      // state
	ZipCode string `gorm:"type:varchar(10);not null" json:"zip_code" validate:"required,zipcode"`        // 6-digit PIN
	Country string `gorm:"type:varchar(50);not null;default:'India'" json:"country" validate:"required"` // country
}

// Order frozen checkout snapshot; only status, payment and delivery fields change afterwards
type Order struct {
	ID                uint            `gorm:"primarykey" json:"id"`                                                                               // primary key
	OrderNumber       string          `gorm:"uniqueIndex;not null" json:"order_number"`                                                           // public order number
	CustomerID        uint            `gorm:"index;not null" json:"customer_id"`                                                                  // buyer
	TotalAmount       Money           `gorm:"type:decimal(20,2);not null;default:0" json:"total_amount"`                                          // frozen cart total
	Status            string          `gorm:"type:varchar(20);index;not null;default:'pending'" json:"status"`                                    // lifecycle status
	PaymentStatus     string          `gorm:"type:varchar(20);not null;default:'pending'" json:"payment_status"`                                  // payment status
	PaymentMethod     string          `gorm:"type:varchar(20);not null;default:'cod'" json:"payment_method" validate:"oneof=cod card upi wallet"` // payment method
	ShippingAddress   ShippingAddress `gorm:"embedded;embeddedPrefix:ship_" json:"shipping_address"`                                              // destination
	EstimatedDelivery *time.Time      `json:"estimated_delivery"`                                                                                 // promised date
	ActualDelivery    *time.Time      `json:"actual_delivery"`                                                                                    // stamped on delivered
	TrackingNumber    string          `gorm:"type:varchar(50)" json:"tracking_number,omitempty" validate:"omitempty,min=5,max=50"`                // carrier tracking
	Notes             string          `gorm:"type:varchar(500)" json:"notes,omitempty" validate:"max=500"`                                        // customer notes
	CancelledAt       *time.Time      `gorm:"index" json:"cancelled_at,omitempty"`                                                                // cancellation time
	CreatedAt         time.Time       `gorm:"index" json:"created_at"`                                                                            // created
	UpdatedAt         time.Time       `gorm:"index" json:"updated_at"`                                                                            // updated

	Items    []OrderItem `gorm:"foreignKey:OrderID" json:"items,omitempty" validate:"required,min=1,dive"` // lines
	Customer *User       `gorm:"foreignKey:CustomerID" json:"customer,omitempty" validate:"-"`             // buyer
}

// TableName table name
func (Order) TableName() string {
	return "orders"
}

// OrderItem one frozen line of an order
type OrderItem struct {
	ID        uint      `gorm:"primarykey" json:"id"`                                                // primary key
	OrderID   uint      `gorm:"index;not null" json:"order_id"`                                      // order
	ProductID uint      `gorm:"index;not null" json:"product_id" validate:"required"`                // product
	ArtisanID uint      `gorm:"index;not null" json:"artisan_id" validate:"required"`                // seller of the line
	Title     string    `gorm:"type:varchar(100);not null" json:"title"`                             // title snapshot
	Image     string    `gorm:"type:varchar(500)" json:"image"`                                      // image snapshot
	Quantity  int       `gorm:"not null" json:"quantity" validate:"gte=1,lte=99"`                    // quantity
	Price     Money     `gorm:"type:decimal(20,2);not null;default:0" json:"price" validate:"gte=0"` // unit price at checkout
	CreatedAt time.Time `gorm:"index" json:"created_at"`                                             // created
	UpdatedAt time.Time `gorm:"index" json:"updated_at"`                                             // updated

	Product *Product `gorm:"foreignKey:ProductID" json:"product,omitempty" validate:"-"` // populated product
}

// TableName table name
func (OrderItem) TableName() string {
	return "order_items"
}

// NewOrderNumber returns a collision-resistant, time-ordered order number
func NewOrderNumber() (string, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return "", err
	}
	return "ORD-" + strings.ToUpper(strings.ReplaceAll(id.String(), "-", "")), nil
}

// OrderDraft checkout input that becomes an order
type OrderDraft struct {
	CustomerID        uint
	Items             []OrderItem
	TotalAmount       Money
	PaymentMethod     string
	ShippingAddress   ShippingAddress
	Notes             string
	EstimatedDelivery time.Duration
}

// NewOrder builds a validated pending order from a checkout draft
func NewOrder(draft OrderDraft, now time.Time) (*Order, error) {
	number, err := NewOrderNumber()
	if err != nil {
		return nil, err
	}
	method := strings.TrimSpace(draft.PaymentMethod)
	if method == "" {
		method = constants.PaymentMethodCOD
	}
	address := draft.ShippingAddress
	address.Name = strings.TrimSpace(address.Name)
	address.Street = strings.TrimSpace(address.Street)
	address.City = strings.TrimSpace(address.City)
	address.State = strings.TrimSpace(address.State)
	address.ZipCode = strings.TrimSpace(address.ZipCode)
	if strings.TrimSpace(address.Country) == "" {
		address.Country = constants.DefaultShippingCountry
	}
	delivery := draft.EstimatedDelivery
	if delivery <= 0 {
		delivery = time.Duration(constants.DefaultEstimatedDelDays) * 24 * time.Hour
	}
	estimated := now.Add(delivery)
	order := &Order{
		OrderNumber:       number,
		CustomerID:        draft.CustomerID,
		TotalAmount:       NewMoneyFromDecimal(draft.TotalAmount.Decimal),
		Status:            constants.OrderStatusPending,
		PaymentStatus:     constants.PaymentStatusPending,
		PaymentMethod:     method,
		ShippingAddress:   address,
		EstimatedDelivery: &estimated,
		Notes:             strings.TrimSpace(draft.Notes),
		Items:             draft.Items,
	}
	if err := order.Validate(); err != nil {
		return nil, err
	}
	return order, nil
}

// Validate checks field constraints
func (o *Order) Validate() error {
	return ValidateStruct(o)
}

// ContainsProduct reports whether any line references productID
func (o *Order) ContainsProduct(productID uint) bool {
	for _, item := range o.Items {
		if item.ProductID == productID {
			return true
		}
	}
	return false
}

// ArtisanIDs distinct sellers of the order, in line order
func (o *Order) ArtisanIDs() []uint {
	seen := make(map[uint]struct{}, len(o.Items))
	ids := make([]uint, 0, len(o.Items))
	for _, item := range o.Items {
		if _, ok := seen[item.ArtisanID]; ok {
			continue
		}
		seen[item.ArtisanID] = struct{}{}
		ids = append(ids, item.ArtisanID)
	}
	return ids
}
