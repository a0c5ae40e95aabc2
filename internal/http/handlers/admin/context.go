package admin

import (
	"net/url"
	"strings"

	handlershared "github.com/artisanhub/internal/http/handlers/shared"
	"github.com/artisanhub/internal/service"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func getIdentity(c *gin.Context) (service.Identity, bool) {
	return handlershared.GetIdentity(c)
}

func requestLog(c *gin.Context) *zap.SugaredLogger {
	return handlershared.RequestLog(c)
}

func respondError(c *gin.Context, code int, msg string, err error) {
	handlershared.RespondErrorWithMsg(c, code, msg, err)
}

// decodeRoleParam role names may arrive percent-encoded ("role%3Aadmin")
func decodeRoleParam(raw string) string {
	if decoded, err := url.PathUnescape(raw); err == nil {
		raw = decoded
	}
	return strings.TrimSpace(raw)
}
