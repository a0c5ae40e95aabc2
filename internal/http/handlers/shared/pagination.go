package shared

import (
	"strconv"
	"strings"

	"github.com/artisanhub/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// QueryInt optional integer query parameter; absent means 0 so the service default applies
func QueryInt(c *gin.Context, key string) (int, error) {
	raw := strings.TrimSpace(c.Query(key))
	if raw == "" {
		return 0, nil
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0, models.NewFieldError(key, key+" must be an integer")
	}
	return value, nil
}

// QueryDecimal optional decimal query parameter
func QueryDecimal(c *gin.Context, key string) (*decimal.Decimal, error) {
	raw := strings.TrimSpace(c.Query(key))
	if raw == "" {
		return nil, nil
	}
	value, err := decimal.NewFromString(raw)
	if err != nil {
		return nil, models.NewFieldError(key, key+" must be a number")
	}
	return &value, nil
}

// QueryPage page and limit
func QueryPage(c *gin.Context) (int, int, error) {
	page, err := QueryInt(c, "page")
	if err != nil {
		return 0, 0, err
	}
	limit, err := QueryInt(c, "limit")
	if err != nil {
		return 0, 0, err
	}
	return page, limit, nil
}
