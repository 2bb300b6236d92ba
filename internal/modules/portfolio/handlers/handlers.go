// Package handlers provides HTTP handlers for holdings CRUD and the
// portfolio dashboard endpoint.
package handlers

import (
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/pratama/folio/internal/domain"
	"github.com/pratama/folio/internal/modules/portfolio"
)

// Handler handles portfolio HTTP requests
type Handler struct {
	repo    *portfolio.HoldingRepository
	service *portfolio.Service
	log     zerolog.Logger
}

// NewHandler creates a new portfolio handler
func NewHandler(repo *portfolio.HoldingRepository, service *portfolio.Service, log zerolog.Logger) *Handler {
	return &Handler{
		repo:    repo,
		service: service,
		log:     log.With().Str("handler", "portfolio").Logger(),
	}
}

// holdingRequest is the create/update payload.
type holdingRequest struct {
	Ticker        string   `json:"ticker"`
	Name          string   `json:"name"`
	Quantity      float64  `json:"quantity"`
	PurchasePrice float64  `json:"purchasePrice"`
	PurchaseDate  string   `json:"purchaseDate"`
	TargetWeight  *float64 `json:"targetWeight,omitempty"`
}

// validate checks payload invariants shared by create and update.
func (p holdingRequest) validate() error {
	if strings.TrimSpace(p.Ticker) == "" {
		return errors.New("ticker is required")
	}
	if p.Quantity < 0 {
		return errors.New("quantity must not be negative")
	}
	if p.PurchasePrice < 0 {
		return errors.New("purchasePrice must not be negative")
	}
	if p.PurchaseDate != "" {
		if _, err := time.Parse("2006-01-02", p.PurchaseDate); err != nil {
			return errors.New("purchaseDate must be YYYY-MM-DD")
		}
	}
	if p.TargetWeight != nil && (*p.TargetWeight < 0 || *p.TargetWeight > 100) {
		return errors.New("targetWeight must be between 0 and 100")
	}
	return nil
}

func (p holdingRequest) toHolding() domain.Holding {
	return domain.Holding{
		Ticker:        p.Ticker,
		Name:          p.Name,
		Quantity:      p.Quantity,
		PurchasePrice: p.PurchasePrice,
		PurchaseDate:  p.PurchaseDate,
		TargetWeight:  p.TargetWeight,
	}
}

// HandleListHoldings handles GET /api/holdings
func (h *Handler) HandleListHoldings(w http.ResponseWriter, r *http.Request) {
	holdings, err := h.repo.GetAll()
	if err != nil {
		h.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if holdings == nil {
		holdings = []domain.Holding{}
	}
	h.writeJSON(w, http.StatusOK, holdings)
}

// HandleCreateHolding handles POST /api/holdings
func (h *Handler) HandleCreateHolding(w http.ResponseWriter, r *http.Request) {
	var payload holdingRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if err := payload.validate(); err != nil {
		h.writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	created, err := h.repo.Create(payload.toHolding())
	if err != nil {
		h.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	h.writeJSON(w, http.StatusCreated, created)
}

// HandleGetHolding handles GET /api/holdings/{id}
func (h *Handler) HandleGetHolding(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	holding, err := h.repo.GetByID(id)
	if err == sql.ErrNoRows {
		h.writeError(w, http.StatusNotFound, "holding not found")
		return
	}
	if err != nil {
		h.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	h.writeJSON(w, http.StatusOK, holding)
}

// HandleUpdateHolding handles PUT /api/holdings/{id}
func (h *Handler) HandleUpdateHolding(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var payload holdingRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if err := payload.validate(); err != nil {
		h.writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	holding := payload.toHolding()
	holding.ID = id

	updated, err := h.repo.Update(holding)
	if err == sql.ErrNoRows {
		h.writeError(w, http.StatusNotFound, "holding not found")
		return
	}
	if err != nil {
		h.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	h.writeJSON(w, http.StatusOK, updated)
}

// HandleDeleteHolding handles DELETE /api/holdings/{id}
func (h *Handler) HandleDeleteHolding(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	err := h.repo.Delete(id)
	if err == sql.ErrNoRows {
		h.writeError(w, http.StatusNotFound, "holding not found")
		return
	}
	if err != nil {
		h.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	h.writeJSON(w, http.StatusOK, map[string]bool{"deleted": true})
}

// HandleGetPortfolio handles GET /api/portfolio - the dashboard payload of
// enriched holdings plus portfolio totals.
func (h *Handler) HandleGetPortfolio(w http.ResponseWriter, r *http.Request) {
	holdings, metrics, err := h.service.GetPortfolio(r.Context())
	if err != nil {
		h.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]interface{}{
		"holdings": holdings,
		"metrics":  metrics,
	})
}

// Helper methods

func (h *Handler) writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.log.Error().Err(err).Msg("Failed to encode JSON response")
	}
}

func (h *Handler) writeError(w http.ResponseWriter, status int, message string) {
	h.writeJSON(w, status, map[string]string{"error": message})
}
