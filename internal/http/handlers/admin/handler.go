package admin

import "github.com/artisanhub/internal/provider"

// Handler moderation and authorization management API
type Handler struct {
	*provider.Container
}

// New builds the handler
func New(c *provider.Container) *Handler {
	return &Handler{Container: c}
}
