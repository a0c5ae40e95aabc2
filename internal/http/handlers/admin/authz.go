package admin

import (
	"github.com/artisanhub/internal/authz"
	handlershared "github.com/artisanhub/internal/http/handlers/shared"
	"github.com/artisanhub/internal/http/response"

	"github.com/gin-gonic/gin"
)

var authzErrorRules = []handlershared.MappedError{
	{Target: authz.ErrInvalidPolicy, Code: response.CodeBadRequest, Message: "Invalid role, object or action"},
}

func respondAuthzError(c *gin.Context, err error, fallback string) {
	handlershared.RespondMappedError(c, err, authzErrorRules, fallback)
}

type authzPolicyPayload struct {
	Role   string `json:"role" binding:"required"`
	Object string `json:"object" binding:"required"`
	Action string `json:"action" binding:"required"`
}

// ListAuthzRoles every role known to the enforcer
func (h *Handler) ListAuthzRoles(c *gin.Context) {
	roles, err := h.AuthzService.ListRoles()
	if err != nil {
		respondAuthzError(c, err, "Failed to fetch roles")
		return
	}
	response.Success(c, gin.H{"roles": roles})
}

// GetAuthzRolePolicies direct rules of one role
func (h *Handler) GetAuthzRolePolicies(c *gin.Context) {
	role := decodeRoleParam(c.Param("role"))
	policies, err := h.AuthzService.GetRolePolicies(role)
	if err != nil {
		respondAuthzError(c, err, "Failed to fetch role policies")
		return
	}
	response.Success(c, gin.H{"role": role, "policies": policies})
}

// GrantAuthzPolicy allows role to call object with action
func (h *Handler) GrantAuthzPolicy(c *gin.Context) {
	identity, ok := getIdentity(c)
	if !ok {
		return
	}
	var req authzPolicyPayload
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "role, object and action are required", nil)
		return
	}
	added, err := h.AuthzService.GrantRolePolicy(req.Role, req.Object, req.Action)
	if err != nil {
		respondAuthzError(c, err, "Failed to grant policy")
		return
	}
	if !added {
		response.SuccessWithMsg(c, "Policy already granted", gin.H{"role": req.Role, "object": req.Object, "action": req.Action})
		return
	}
	requestLog(c).Infow("admin_authz_policy_granted",
		"operator_user_id", identity.UserID,
		"role", req.Role,
		"object", req.Object,
		"action", req.Action,
	)
	response.Created(c, "Policy granted", gin.H{"role": req.Role, "object": req.Object, "action": req.Action})
}

// RevokeAuthzPolicy removes one rule
func (h *Handler) RevokeAuthzPolicy(c *gin.Context) {
	identity, ok := getIdentity(c)
	if !ok {
		return
	}
	var req authzPolicyPayload
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "role, object and action are required", nil)
		return
	}
	removed, err := h.AuthzService.RevokeRolePolicy(req.Role, req.Object, req.Action)
	if err != nil {
		respondAuthzError(c, err, "Failed to revoke policy")
		return
	}
	if !removed {
		response.NotFound(c, "Policy not found")
		return
	}
	requestLog(c).Infow("admin_authz_policy_revoked",
		"operator_user_id", identity.UserID,
		"role", req.Role,
		"object", req.Object,
		"action", req.Action,
	)
	response.SuccessWithMsg(c, "Policy revoked", nil)
}
