package public

import (
	"context"
	"time"

	"github.com/artisanhub/internal/cache"
	"github.com/artisanhub/internal/http/response"
	"github.com/artisanhub/internal/models"

	"github.com/gin-gonic/gin"
)

// Health liveness plus database and redis reachability
func (h *Handler) Health(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	database := "ok"
	if models.DB == nil {
		database = "unavailable"
	} else if sqlDB, err := models.DB.DB(); err != nil || sqlDB.PingContext(ctx) != nil {
		database = "unavailable"
	}
	redisState := "disabled"
	if cache.Enabled() {
		redisState = "ok"
		if err := cache.Ping(ctx); err != nil {
			redisState = "unavailable"
		}
	}
	status := response.CodeOK
	if database != "ok" {
		status = response.CodeInternal
	}
	c.JSON(status, response.Response{
		Success: database == "ok",
		Message: "ArtisanHub API",
		Data: gin.H{
			"database":  database,
			"redis":     redisState,
			"timestamp": time.Now().UTC().Format(time.RFC3339),
		},
	})
}
