package repository

import "github.com/shopspring/decimal"

// ProductListFilter catalog and artisan product listing filter
type ProductListFilter struct {
	Page       int
	PageSize   int
	Category   string
	MinPrice   *decimal.Decimal
	MaxPrice   *decimal.Decimal
	Search     string
	ArtisanID  uint
	OnlyActive bool
	IsActive   *bool
	IsFeatured *bool
	Sort       string
}

// OrderListFilter customer or artisan order listing filter
type OrderListFilter struct {
	Page       int
	PageSize   int
	CustomerID uint
	ArtisanID  uint
	Status     string
}

// ReviewListFilter review listing filter
type ReviewListFilter struct {
	Page          int
	PageSize      int
	ProductID     uint
	CustomerID    uint
	SortBy        string
	SortOrder     string
	IncludeHidden bool
}

// NotificationListFilter notification listing filter
type NotificationListFilter struct {
	Page       int
	PageSize   int
	UserID     uint
	UnreadOnly bool
}

// ArtisanProductStatsRow product counters of one artisan
type ArtisanProductStatsRow struct {
	TotalProducts    int64
	ActiveProducts   int64
	FeaturedProducts int64
	TotalValue       float64
}

// GroupCountRow label/count pair from a GROUP BY
type GroupCountRow struct {
	Label string `json:"label"`
	Count int64  `json:"count"`
}

// RatingAggregateRow mean and count of visible ratings
type RatingAggregateRow struct {
	Average float64
	Count   int64
}
