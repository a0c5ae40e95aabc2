package repository

import (
	"strings"

	"github.com/artisanhub/internal/models"

	"gorm.io/gorm"
)

// ReviewRepository review persistence
type ReviewRepository interface {
	Create(review *models.Review) error
	GetByID(id uint) (*models.Review, error)
	GetByIDAndCustomer(id, customerID uint) (*models.Review, error)
	Update(review *models.Review) error
	Delete(id uint) error
	ExistsForTriple(productID, customerID, orderID uint) (bool, error)
	List(filter ReviewListFilter) ([]models.Review, int64, error)
	AggregateRating(productID uint) (RatingAggregateRow, error)
	CountByRating(productID uint) (map[int]int64, error)
	IncrementHelpful(id uint) (int64, error)
	Transaction(fn func(tx *gorm.DB) error) error
	WithTx(tx *gorm.DB) ReviewRepository
}

// GormReviewRepository gorm implementation
type GormReviewRepository struct {
	db *gorm.DB
}

// NewReviewRepository builds the review repository
func NewReviewRepository(db *gorm.DB) *GormReviewRepository {
	return &GormReviewRepository{db: db}
}

func (r *GormReviewRepository) WithTx(tx *gorm.DB) ReviewRepository {
	if tx == nil {
		return r
	}
	return &GormReviewRepository{db: tx}
}

func (r *GormReviewRepository) Transaction(fn func(tx *gorm.DB) error) error {
	return r.db.Transaction(fn)
}

// Create ErrDuplicate when the customer already reviewed this product for this order
func (r *GormReviewRepository) Create(review *models.Review) error {
	return asConflict(r.db.Omit("Customer", "Product").Create(review).Error)
}

func (r *GormReviewRepository) GetByID(id uint) (*models.Review, error) {
	return firstOrNil[models.Review](r.db, id)
}

// GetByIDAndCustomer review authored by the customer, nil otherwise
func (r *GormReviewRepository) GetByIDAndCustomer(id, customerID uint) (*models.Review, error) {
	return firstOrNil[models.Review](r.db.Where("id = ? AND customer_id = ?", id, customerID))
}

func (r *GormReviewRepository) Update(review *models.Review) error {
	return r.db.Model(review).Omit("Customer", "Product").Updates(map[string]interface{}{
		"rating":     review.Rating,
		"title":      review.Title,
		"comment":    review.Comment,
		"images":     review.Images,
		"is_hidden":  review.IsHidden,
		"updated_at": gorm.Expr("CURRENT_TIMESTAMP"),
	}).Error
}

func (r *GormReviewRepository) Delete(id uint) error {
	return r.db.Delete(&models.Review{}, id).Error
}

func (r *GormReviewRepository) ExistsForTriple(productID, customerID, orderID uint) (bool, error) {
	var count int64
	if err := r.db.Model(&models.Review{}).
		Where("product_id = ? AND customer_id = ? AND order_id = ?", productID, customerID, orderID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// List reviews by product or customer
func (r *GormReviewRepository) List(filter ReviewListFilter) ([]models.Review, int64, error) {
	query := r.db.Model(&models.Review{})
	if filter.ProductID != 0 {
		query = query.Where("product_id = ?", filter.ProductID)
	}
	if filter.CustomerID != 0 {
		query = query.Where("customer_id = ?", filter.CustomerID)
	}
	if !filter.IncludeHidden {
		query = query.Where("is_hidden = ?", false)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	query = query.Scopes(pageScope(filter.Page, filter.PageSize))

	if filter.ProductID != 0 {
		query = query.Preload("Customer")
	}
	if filter.CustomerID != 0 {
		query = query.Preload("Product")
	}
	var reviews []models.Review
	if err := query.Order(reviewOrder(filter.SortBy, filter.SortOrder)).Find(&reviews).Error; err != nil {
		return nil, 0, err
	}
	return reviews, total, nil
}

func reviewOrder(sortBy, sortOrder string) string {
	column := "created_at"
	switch strings.ToLower(strings.TrimSpace(sortBy)) {
	case "rating":
		column = "rating"
	case "helpful", "helpful_votes", "helpfulvotes":
		column = "helpful_votes"
	}
	direction := "DESC"
	if strings.EqualFold(strings.TrimSpace(sortOrder), "asc") {
		direction = "ASC"
	}
	return column + " " + direction + ", id " + direction
}

// AggregateRating mean and count over visible reviews
func (r *GormReviewRepository) AggregateRating(productID uint) (RatingAggregateRow, error) {
	var row RatingAggregateRow
	err := r.db.Model(&models.Review{}).
		Select("COALESCE(AVG(rating), 0) AS average, COUNT(*) AS count").
		Where("product_id = ? AND is_hidden = ?", productID, false).
		Scan(&row).Error
	return row, err
}

// CountByRating visible reviews per star, every star 1..5 present
func (r *GormReviewRepository) CountByRating(productID uint) (map[int]int64, error) {
	type starRow struct {
		Rating int
		Count  int64
	}
	var rows []starRow
	if err := r.db.Model(&models.Review{}).
		Select("rating, COUNT(*) AS count").
		Where("product_id = ? AND is_hidden = ?", productID, false).
		Group("rating").
		Scan(&rows).Error; err != nil {
		return nil, err
	}
	out := map[int]int64{1: 0, 2: 0, 3: 0, 4: 0, 5: 0}
	for _, row := range rows {
		out[row.Rating] = row.Count
	}
	return out, nil
}

func (r *GormReviewRepository) IncrementHelpful(id uint) (int64, error) {
	result := r.db.Model(&models.Review{}).
		Where("id = ?", id).
		UpdateColumn("helpful_votes", gorm.Expr("helpful_votes + 1"))
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}
