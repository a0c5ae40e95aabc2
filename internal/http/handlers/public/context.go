package public

import (
	handlershared "github.com/artisanhub/internal/http/handlers/shared"
	"github.com/artisanhub/internal/service"

	"github.com/gin-gonic/gin"
)

func getIdentity(c *gin.Context) (service.Identity, bool) {
	return handlershared.GetIdentity(c)
}

func getUserID(c *gin.Context) (uint, bool) {
	identity, ok := handlershared.GetIdentity(c)
	if !ok {
		return 0, false
	}
	return identity.UserID, true
}

func respondError(c *gin.Context, code int, msg string, err error) {
	handlershared.RespondErrorWithMsg(c, code, msg, err)
}

func parseID(c *gin.Context, name, label string) (uint, bool) {
	return handlershared.ParseIDParam(c, name, label)
}
