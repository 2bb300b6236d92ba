package handlers

import (
	"github.com/go-chi/chi/v5"
)

// RegisterRoutes registers all insights routes
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/insights", h.HandleGetInsights)
}
