package service

import (
	"fmt"

	"github.com/artisanhub/internal/models"
)

// Pagination page metadata returned with every list
type Pagination struct {
	CurrentPage int   `json:"current_page"`
	TotalPages  int   `json:"total_pages"`
	Total       int64 `json:"total"`
	Limit       int   `json:"limit"`
	HasNextPage bool  `json:"has_next_page"`
	HasPrevPage bool  `json:"has_prev_page"`
}

// NewPagination total_pages = ceil(total / limit)
func NewPagination(page, limit int, total int64) Pagination {
	if limit <= 0 {
		limit = 1
	}
	if page < 1 {
		page = 1
	}
	totalPages := int((total + int64(limit) - 1) / int64(limit))
	return Pagination{
		CurrentPage: page,
		TotalPages:  totalPages,
		Total:       total,
		Limit:       limit,
		HasNextPage: page < totalPages,
		HasPrevPage: page > 1,
	}
}

// normalizePage fills defaults; out-of-range values are a validation failure
func normalizePage(page, limit, defaultLimit, maxLimit int) (int, int, error) {
	if page == 0 {
		page = 1
	}
	if limit == 0 {
		limit = defaultLimit
	}
	if page < 1 {
		return 0, 0, models.NewFieldError("page", "Page must be a positive integer")
	}
	if maxLimit > 0 && (limit < 1 || limit > maxLimit) {
		return 0, 0, models.NewFieldError("limit", fmt.Sprintf("Limit must be between 1 and %d", maxLimit))
	}
	return page, limit, nil
}
