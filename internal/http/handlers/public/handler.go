package public

import "github.com/artisanhub/internal/provider"

// Handler customer-facing and catalog API
type Handler struct {
	*provider.Container
}

// New builds the handler
func New(c *provider.Container) *Handler {
	return &Handler{Container: c}
}
