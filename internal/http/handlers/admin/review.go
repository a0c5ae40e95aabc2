package admin

import (
	handlershared "github.com/artisanhub/internal/http/handlers/shared"
	"github.com/artisanhub/internal/http/response"
	"github.com/artisanhub/internal/service"

	"github.com/gin-gonic/gin"
)

// ReviewHiddenRequest moderation body
type ReviewHiddenRequest struct {
	Hidden *bool `json:"hidden" binding:"required"`
}

var reviewModerationRules = []handlershared.MappedError{
	{Target: service.ErrReviewNotFound, Code: response.CodeNotFound, Message: "Review not found"},
	{Target: service.ErrForbidden, Code: response.CodeForbidden, Message: "Only administrators can moderate reviews"},
}

// SetReviewHidden hides or restores a review; product ratings follow
func (h *Handler) SetReviewHidden(c *gin.Context) {
	identity, ok := getIdentity(c)
	if !ok {
		return
	}
	reviewID, ok := handlershared.ParseIDParam(c, "id", "review")
	if !ok {
		return
	}
	var req ReviewHiddenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "hidden is required", nil)
		return
	}
	review, err := h.ReviewService.SetHidden(identity, reviewID, *req.Hidden)
	if err != nil {
		handlershared.RespondMappedError(c, err, reviewModerationRules, "Failed to update review")
		return
	}
	requestLog(c).Infow("admin_review_visibility_changed",
		"operator_user_id", identity.UserID,
		"review_id", reviewID,
		"hidden", *req.Hidden,
	)
	response.SuccessWithMsg(c, "Review visibility updated", gin.H{"review": review})
}
