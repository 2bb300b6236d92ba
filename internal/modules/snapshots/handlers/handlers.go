// Package handlers provides the HTTP handler for NAV history.
package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/pratama/folio/internal/domain"
)

// Handler handles NAV history HTTP requests
type Handler struct {
	nav domain.NavStore
	log zerolog.Logger
}

// NewHandler creates a new NAV handler
func NewHandler(nav domain.NavStore, log zerolog.Logger) *Handler {
	return &Handler{
		nav: nav,
		log: log.With().Str("handler", "nav").Logger(),
	}
}

// HandleGetHistory handles GET /api/nav
func (h *Handler) HandleGetHistory(w http.ResponseWriter, r *http.Request) {
	history, err := h.nav.GetHistory()
	if err != nil {
		h.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if history == nil {
		history = []domain.NavSnapshot{}
	}
	h.writeJSON(w, http.StatusOK, history)
}

// HandleSaveSnapshot handles POST /api/nav. Saving for an existing date
// overwrites that day's value.
func (h *Handler) HandleSaveSnapshot(w http.ResponseWriter, r *http.Request) {
	var snapshot domain.NavSnapshot
	if err := json.NewDecoder(r.Body).Decode(&snapshot); err != nil {
		h.writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if _, err := time.Parse("2006-01-02", snapshot.Date); err != nil {
		h.writeError(w, http.StatusBadRequest, "Date must be YYYY-MM-DD")
		return
	}
	if snapshot.Value <= 0 {
		h.writeError(w, http.StatusBadRequest, "Value must be positive")
		return
	}

	if err := h.nav.SaveSnapshot(snapshot.Date, snapshot.Value); err != nil {
		h.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	h.writeJSON(w, http.StatusCreated, snapshot)
}

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
