package handlers

import (
	"github.com/go-chi/chi/v5"
)

// RegisterRoutes registers all portfolio routes
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/holdings", func(r chi.Router) {
		r.Get("/", h.HandleListHoldings)
		r.Post("/", h.HandleCreateHolding)
		r.Get("/{id}", h.HandleGetHolding)
		r.Put("/{id}", h.HandleUpdateHolding)
		r.Patch("/{id}", h.HandleUpdateHolding)
		r.Delete("/{id}", h.HandleDeleteHolding)
	})

	r.Get("/portfolio", h.HandleGetPortfolio)
}
