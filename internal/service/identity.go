package service

import "github.com/artisanhub/internal/constants"

// Identity authenticated caller, resolved once by the auth middleware and passed explicitly
type Identity struct {
	UserID uint   `json:"user_id"`
	Role   string `json:"role"`
}

func (i Identity) IsAdmin() bool {
	return i.Role == constants.RoleAdmin
}

// CanManage owner or admin
func (i Identity) CanManage(ownerID uint) bool {
	return i.UserID != 0 && (i.UserID == ownerID || i.IsAdmin())
}
