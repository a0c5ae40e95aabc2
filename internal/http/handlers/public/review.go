package public

import (
	"strings"

	handlershared "github.com/artisanhub/internal/http/handlers/shared"
	"github.com/artisanhub/internal/http/response"
	"github.com/artisanhub/internal/models"
	"github.com/artisanhub/internal/service"

	"github.com/gin-gonic/gin"
)

func parseReviewQuery(c *gin.Context) (service.ReviewListQuery, error) {
	page, limit, err := handlershared.QueryPage(c)
	if err != nil {
		return service.ReviewListQuery{}, err
	}
	return service.ReviewListQuery{
		Page:      page,
		Limit:     limit,
		SortBy:    strings.TrimSpace(c.Query("sort_by")),
		SortOrder: strings.TrimSpace(c.Query("sort_order")),
	}, nil
}

// CreateReview reviews a product of a delivered order
func (h *Handler) CreateReview(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	var req service.CreateReviewInput
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "Invalid request body", nil)
		return
	}
	review, err := h.ReviewService.Create(uid, req)
	if err != nil {
		respondReviewError(c, err, "Failed to create review")
		return
	}
	response.Created(c, "Review created successfully", gin.H{"review": review})
}

// ListProductReviews visible reviews of a product with rating stats
func (h *Handler) ListProductReviews(c *gin.Context) {
	productID, ok := parseID(c, "productId", "product")
	if !ok {
		return
	}
	query, err := parseReviewQuery(c)
	if err != nil {
		respondReviewError(c, err, "Failed to fetch reviews")
		return
	}
	page, err := h.ReviewService.ListForProduct(productID, query)
	if err != nil {
		respondReviewError(c, err, "Failed to fetch reviews")
		return
	}
	response.Success(c, page)
}

// ListMyReviews reviews written by the caller
func (h *Handler) ListMyReviews(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	query, err := parseReviewQuery(c)
	if err != nil {
		respondReviewError(c, err, "Failed to fetch reviews")
		return
	}
	page, err := h.ReviewService.ListForCustomer(uid, query)
	if err != nil {
		respondReviewError(c, err, "Failed to fetch reviews")
		return
	}
	response.Success(c, page)
}

// UpdateReview edits the caller's review
func (h *Handler) UpdateReview(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	reviewID, ok := parseID(c, "id", "review")
	if !ok {
		return
	}
	var req models.ReviewInput
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "Invalid request body", nil)
		return
	}
	review, err := h.ReviewService.Update(uid, reviewID, req)
	if err != nil {
		respondReviewError(c, err, "Failed to update review")
		return
	}
	response.SuccessWithMsg(c, "Review updated successfully", gin.H{"review": review})
}

// DeleteReview removes the caller's review
func (h *Handler) DeleteReview(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	reviewID, ok := parseID(c, "id", "review")
	if !ok {
		return
	}
	if err := h.ReviewService.Delete(uid, reviewID); err != nil {
		respondReviewError(c, err, "Failed to delete review")
		return
	}
	response.SuccessWithMsg(c, "Review deleted successfully", nil)
}

// MarkReviewHelpful adds a helpful vote
func (h *Handler) MarkReviewHelpful(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	reviewID, ok := parseID(c, "id", "review")
	if !ok {
		return
	}
	review, err := h.ReviewService.MarkHelpful(uid, reviewID)
	if err != nil {
		respondReviewError(c, err, "Failed to mark review as helpful")
		return
	}
	response.SuccessWithMsg(c, "Review marked as helpful", gin.H{"helpful_votes": review.HelpfulVotes})
}
