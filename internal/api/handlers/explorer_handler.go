package handlers

import (
	"net/http"

	"github.com/isdelr/content-creator-be/internal/services"
	"github.com/rs/zerolog/log"
)

// ExplorerHandler serves the aggregate of all active records.
type ExplorerHandler struct {
	service services.ExplorerServiceProvider
}

// NewExplorerHandler creates a new ExplorerHandler.
func NewExplorerHandler(service services.ExplorerServiceProvider) *ExplorerHandler {
	return &ExplorerHandler{service: service}
}

func (h *ExplorerHandler) GetAll(w http.ResponseWriter, r *http.Request) {
	snapshot, err := h.service.Snapshot(r.Context())
	if err != nil {
		log.Error().Err(err).Msg("Failed to load explorer data")
		respondError(w, http.StatusInternalServerError, "Error fetching explorer data")
		return
	}
	respondJSON(w, http.StatusOK, snapshot)
}
