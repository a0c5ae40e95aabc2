package constants

// Order status values
const (
	OrderStatusPending    = "pending"
	OrderStatusConfirmed  = "confirmed"
	OrderStatusProcessing = "processing"
	OrderStatusShipped    = "shipped"
	OrderStatusDelivered  = "delivered"
	OrderStatusCancelled  = "cancelled"
)

// Payment status values
const (
	PaymentStatusPending  = "pending"
	PaymentStatusPaid     = "paid"
	PaymentStatusFailed   = "failed"
	PaymentStatusRefunded = "refunded"
)

// Payment methods
const (
	PaymentMethodCOD    = "cod"
	PaymentMethodCard   = "card"
	PaymentMethodUPI    = "upi"
	PaymentMethodWallet = "wallet"
)

// User roles
const (
	RoleCustomer = "customer"
	RoleArtisan  = "artisan"
	RoleAdmin    = "admin"
)

// User status values
const (
	UserStatusActive   = "active"
	UserStatusDisabled = "disabled"
)

// Product categories
const (
	CategoryCrochetArts    = "Crochet Arts"
	CategoryHandmadeToys   = "Handmade Toys"
	CategoryHandmadeDecors = "Handmade Decors"
	CategoryDresses        = "Dresses"
	CategoryAbstractArts   = "Abstract Arts"
	CategoryPaintings      = "Paintings"

	// CategoryAll disables the category filter on catalog queries
	CategoryAll = "All"
)

// ProductCategories lists the closed category set in display order.
var ProductCategories = []string{
	CategoryCrochetArts,
	CategoryHandmadeToys,
	CategoryHandmadeDecors,
	CategoryDresses,
	CategoryAbstractArts,
	CategoryPaintings,
}

// Catalog sort keys
const (
	SortAZ        = "az"
	SortZA        = "za"
	SortPriceHigh = "pricehl"
	SortPriceLow  = "pricelh"
	SortNewest    = "newest"
	SortOldest    = "oldest"
)

// Dimension units
const (
	DimensionUnitCM   = "cm"
	DimensionUnitInch = "inch"
)

// Notification kinds
const (
	NotificationKindOrderStatus = "order_status"
	NotificationKindLowStock    = "low_stock"
)

// Queue names and task types
const (
	QueueDefault  = "default"
	QueueCritical = "critical"

	TaskOrderStatusNotify = "order:status_notify"
	TaskProductLowStock   = "product:low_stock"
)

// Cart and catalog limits
const (
	CartItemMaxQuantity     = 99
	DefaultProductPageSize  = 12
	MaxProductPageSize      = 50
	DefaultFeaturedLimit    = 8
	DefaultOrderPageSize    = 10
	DefaultReviewPageSize   = 10
	DefaultAnalyticsDays    = 30
	LowStockThreshold       = 5
	DefaultEstimatedDelDays = 7
	DefaultDeliveryEstimate = "3-5 business days"
	DefaultShippingCountry  = "India"
)
