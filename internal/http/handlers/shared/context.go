package shared

import (
	"strconv"
	"strings"

	"github.com/artisanhub/internal/http/response"
	"github.com/artisanhub/internal/service"

	"github.com/gin-gonic/gin"
)

// IdentityKey gin context key holding the authenticated service.Identity
const IdentityKey = "identity"

// SetIdentity stores the caller resolved by the auth middleware
func SetIdentity(c *gin.Context, identity service.Identity) {
	c.Set(IdentityKey, identity)
}

// GetIdentity reads the caller and answers 401 when the route was reached without one.
func GetIdentity(c *gin.Context) (service.Identity, bool) {
	value, exists := c.Get(IdentityKey)
	if !exists {
		RespondErrorWithMsg(c, response.CodeUnauthorized, "Authentication required", nil)
		return service.Identity{}, false
	}
	identity, ok := value.(service.Identity)
	if !ok || identity.UserID == 0 {
		RespondErrorWithMsg(c, response.CodeUnauthorized, "Authentication required", nil)
		return service.Identity{}, false
	}
	return identity, true
}

// ParseIDParam reads a positive numeric path parameter; answers 400 otherwise
func ParseIDParam(c *gin.Context, name, label string) (uint, bool) {
	raw := strings.TrimSpace(c.Param(name))
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		RespondErrorWithMsg(c, response.CodeBadRequest, "Invalid "+label+" ID", nil)
		return 0, false
	}
	return uint(id), true
}
