package artisan

import (
	handlershared "github.com/artisanhub/internal/http/handlers/shared"
	"github.com/artisanhub/internal/http/response"
	"github.com/artisanhub/internal/service"

	"github.com/gin-gonic/gin"
)

var dashboardErrorRules = []handlershared.MappedError{
	{Target: service.ErrProductNotFound, Code: response.CodeNotFound, Message: "Product not found"},
	{Target: service.ErrOrderNotFound, Code: response.CodeNotFound, Message: "Order not found"},
	{Target: service.ErrUserNotFound, Code: response.CodeNotFound, Message: "Artisan not found"},
	{Target: service.ErrForbidden, Code: response.CodeForbidden, Message: "You can only manage your own products"},
	{Target: service.ErrProfileEmpty, Code: response.CodeBadRequest, Message: "No profile fields to update"},
}

func respondDashboardError(c *gin.Context, err error, fallbackMsg string) {
	handlershared.RespondMappedError(c, err, dashboardErrorRules, fallbackMsg)
}
