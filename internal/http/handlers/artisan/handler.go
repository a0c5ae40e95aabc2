package artisan

import "github.com/artisanhub/internal/provider"

// Handler artisan dashboard API; admins reach it with their own identity
type Handler struct {
	*provider.Container
}

// New builds the handler
func New(c *provider.Container) *Handler {
	return &Handler{Container: c}
}
