package service

import (
	"errors"
	"math"
	"strings"

	"github.com/artisanhub/internal/constants"
	"github.com/artisanhub/internal/models"
	"github.com/artisanhub/internal/repository"

	"gorm.io/gorm"
)

// RatingAggregator keeps product ratings in step with visible reviews
type RatingAggregator struct {
	reviewRepo  repository.ReviewRepository
	productRepo repository.ProductRepository
}

// NewRatingAggregator builds the aggregator
func NewRatingAggregator(reviewRepo repository.ReviewRepository, productRepo repository.ProductRepository) *RatingAggregator {
	return &RatingAggregator{reviewRepo: reviewRepo, productRepo: productRepo}
}

// Recompute writes round(mean, 1) and count of the product's visible reviews inside tx
func (a *RatingAggregator) Recompute(tx *gorm.DB, productID uint) (models.Ratings, error) {
	row, err := a.reviewRepo.WithTx(tx).AggregateRating(productID)
	if err != nil {
		return models.Ratings{}, err
	}
	ratings := models.Ratings{
		Average: math.Round(row.Average*10) / 10,
		Count:   int(row.Count),
	}
	if row.Count == 0 {
		ratings.Average = 0
	}
	if err := a.productRepo.WithTx(tx).UpdateRatings(productID, ratings.Average, row.Count); err != nil {
		return models.Ratings{}, err
	}
	return ratings, nil
}

// ReviewService verified purchase reviews
type ReviewService struct {
	reviewRepo  repository.ReviewRepository
	orderRepo   repository.OrderRepository
	productRepo repository.ProductRepository
	aggregator  *RatingAggregator
}

// NewReviewService builds the review service
func NewReviewService(
	reviewRepo repository.ReviewRepository,
	orderRepo repository.OrderRepository,
	productRepo repository.ProductRepository,
	aggregator *RatingAggregator,
) *ReviewService {
	return &ReviewService{
		reviewRepo:  reviewRepo,
		orderRepo:   orderRepo,
		productRepo: productRepo,
		aggregator:  aggregator,
	}
}

// CreateReviewInput review of one product of one delivered order
type CreateReviewInput struct {
	ProductID uint `json:"product_id"`
	OrderID   uint `json:"order_id"`
	models.ReviewInput
}

// ReviewListQuery review listing parameters
type ReviewListQuery struct {
	Page      int
	Limit     int
	SortBy    string
	SortOrder string
}

// RatingStats visible review distribution of a product
type RatingStats struct {
	Average      float64       `json:"average"`
	Count        int           `json:"count"`
	Distribution map[int]int64 `json:"distribution"`
}

// ReviewPage one page of reviews
type ReviewPage struct {
	Reviews     []models.Review `json:"reviews"`
	Pagination  Pagination      `json:"pagination"`
	RatingStats *RatingStats    `json:"rating_stats,omitempty"`
}

var reviewSortColumns = map[string]string{
	"":              "created_at",
	"created_at":    "created_at",
	"createdat":     "created_at",
	"rating":        "rating",
	"helpful_votes": "helpful_votes",
	"helpfulvotes":  "helpful_votes",
}

// Create stores a review for a product the customer received
func (s *ReviewService) Create(customerID uint, input CreateReviewInput) (*models.Review, error) {
	if input.ProductID == 0 || input.OrderID == 0 {
		return nil, ErrReviewNotEligible
	}
	review, err := models.NewReview(input.ProductID, customerID, input.OrderID, input.ReviewInput)
	if err != nil {
		return nil, err
	}
	product, err := s.productRepo.GetByID(input.ProductID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, ErrProductNotFound
	}
	eligible, err := s.orderRepo.HasDeliveredOrderWithProduct(customerID, input.OrderID, input.ProductID)
	if err != nil {
		return nil, err
	}
	if !eligible {
		return nil, ErrReviewNotEligible
	}

	err = s.reviewRepo.Transaction(func(tx *gorm.DB) error {
		repo := s.reviewRepo.WithTx(tx)
		exists, err := repo.ExistsForTriple(input.ProductID, customerID, input.OrderID)
		if err != nil {
			return err
		}
		if exists {
			return ErrDuplicateReview
		}
		if err := repo.Create(review); err != nil {
			if errors.Is(err, repository.ErrDuplicate) {
				return ErrDuplicateReview
			}
			return err
		}
		_, err = s.aggregator.Recompute(tx, review.ProductID)
		return err
	})
	if err != nil {
		return nil, err
	}
	invalidateProductCache(review.ProductID)
	return review, nil
}

// ListForProduct visible reviews of a product with star distribution
func (s *ReviewService) ListForProduct(productID uint, query ReviewListQuery) (*ReviewPage, error) {
	filter, err := reviewFilter(query)
	if err != nil {
		return nil, err
	}
	product, err := s.productRepo.GetByID(productID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, ErrProductNotFound
	}
	filter.ProductID = productID
	reviews, total, err := s.reviewRepo.List(filter)
	if err != nil {
		return nil, err
	}
	distribution, err := s.reviewRepo.CountByRating(productID)
	if err != nil {
		return nil, err
	}
	return &ReviewPage{
		Reviews:    reviews,
		Pagination: NewPagination(filter.Page, filter.PageSize, total),
		RatingStats: &RatingStats{
			Average:      product.Ratings.Average,
			Count:        product.Ratings.Count,
			Distribution: distribution,
		},
	}, nil
}

// ListForCustomer reviews written by the customer, newest first
func (s *ReviewService) ListForCustomer(customerID uint, query ReviewListQuery) (*ReviewPage, error) {
	filter, err := reviewFilter(ReviewListQuery{Page: query.Page, Limit: query.Limit})
	if err != nil {
		return nil, err
	}
	filter.CustomerID = customerID
	filter.IncludeHidden = true
	reviews, total, err := s.reviewRepo.List(filter)
	if err != nil {
		return nil, err
	}
	return &ReviewPage{Reviews: reviews, Pagination: NewPagination(filter.Page, filter.PageSize, total)}, nil
}

// Update edits the author's own review
func (s *ReviewService) Update(customerID, reviewID uint, input models.ReviewInput) (*models.Review, error) {
	review, err := s.reviewRepo.GetByIDAndCustomer(reviewID, customerID)
	if err != nil {
		return nil, err
	}
	if review == nil {
		return nil, ErrReviewNotFound
	}
	review.Apply(input)
	if err := review.Validate(); err != nil {
		return nil, err
	}
	err = s.reviewRepo.Transaction(func(tx *gorm.DB) error {
		if err := s.reviewRepo.WithTx(tx).Update(review); err != nil {
			return err
		}
		_, err := s.aggregator.Recompute(tx, review.ProductID)
		return err
	})
	if err != nil {
		return nil, err
	}
	invalidateProductCache(review.ProductID)
	return review, nil
}

// Delete removes the author's own review
func (s *ReviewService) Delete(customerID, reviewID uint) error {
	review, err := s.reviewRepo.GetByIDAndCustomer(reviewID, customerID)
	if err != nil {
		return err
	}
	if review == nil {
		return ErrReviewNotFound
	}
	err = s.reviewRepo.Transaction(func(tx *gorm.DB) error {
		if err := s.reviewRepo.WithTx(tx).Delete(review.ID); err != nil {
			return err
		}
		_, err := s.aggregator.Recompute(tx, review.ProductID)
		return err
	})
	if err != nil {
		return err
	}
	invalidateProductCache(review.ProductID)
	return nil
}

// SetHidden moderation toggle, admin only
func (s *ReviewService) SetHidden(actor Identity, reviewID uint, hidden bool) (*models.Review, error) {
	if !actor.IsAdmin() {
		return nil, ErrForbidden
	}
	review, err := s.reviewRepo.GetByID(reviewID)
	if err != nil {
		return nil, err
	}
	if review == nil {
		return nil, ErrReviewNotFound
	}
	review.IsHidden = hidden
	err = s.reviewRepo.Transaction(func(tx *gorm.DB) error {
		if err := s.reviewRepo.WithTx(tx).Update(review); err != nil {
			return err
		}
		_, err := s.aggregator.Recompute(tx, review.ProductID)
		return err
	})
	if err != nil {
		return nil, err
	}
	invalidateProductCache(review.ProductID)
	return review, nil
}

// MarkHelpful bumps the helpful counter
func (s *ReviewService) MarkHelpful(userID, reviewID uint) (*models.Review, error) {
	if userID == 0 {
		return nil, ErrUnauthorized
	}
	affected, err := s.reviewRepo.IncrementHelpful(reviewID)
	if err != nil {
		return nil, err
	}
	if affected == 0 {
		return nil, ErrReviewNotFound
	}
	return s.reviewRepo.GetByID(reviewID)
}

func reviewFilter(query ReviewListQuery) (repository.ReviewListFilter, error) {
	page, limit, err := normalizePage(query.Page, query.Limit, constants.DefaultReviewPageSize, constants.MaxProductPageSize)
	if err != nil {
		return repository.ReviewListFilter{}, err
	}
	column, ok := reviewSortColumns[strings.ToLower(strings.TrimSpace(query.SortBy))]
	if !ok {
		return repository.ReviewListFilter{}, models.NewFieldError("sortBy", "Invalid sort field")
	}
	order := strings.ToLower(strings.TrimSpace(query.SortOrder))
	if order != "" && order != "asc" && order != "desc" {
		return repository.ReviewListFilter{}, models.NewFieldError("sortOrder", "Sort order must be asc or desc")
	}
	return repository.ReviewListFilter{
		Page:      page,
		PageSize:  limit,
		SortBy:    column,
		SortOrder: order,
	}, nil
}
