package handlers

import (
	"github.com/go-chi/chi/v5"
)

// RegisterRoutes registers all NAV routes
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/nav", h.HandleGetHistory)
	r.Post("/nav", h.HandleSaveSnapshot)
}
