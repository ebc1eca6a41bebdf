package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/isdelr/content-creator-be/internal/models"
	"github.com/isdelr/content-creator-be/internal/services"
	"github.com/rs/zerolog/log"
)

// ThemeHandler handles HTTP requests for themes.
type ThemeHandler struct {
	service services.ThemeServiceProvider
}

// NewThemeHandler creates a new ThemeHandler.
func NewThemeHandler(service services.ThemeServiceProvider) *ThemeHandler {
	return &ThemeHandler{service: service}
}

func (h *ThemeHandler) GetAll(w http.ResponseWriter, r *http.Request) {
	themes, err := h.service.GetAllThemes(r.Context())
	if err != nil {
		log.Error().Err(err).Msg("Failed to list themes")
		respondError(w, http.StatusInternalServerError, "Error fetching themes")
		return
	}
	respondJSON(w, http.StatusOK, themes)
}

func (h *ThemeHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	theme, err := h.service.GetThemeByID(r.Context(), id)
	if err != nil {
		log.Error().Err(err).Str("theme_id", id).Msg("Failed to get theme")
		respondError(w, http.StatusInternalServerError, "Error fetching theme")
		return
	}
	if theme == nil {
		respondError(w, http.StatusNotFound, "Theme not found")
		return
	}
	respondJSON(w, http.StatusOK, theme)
}

func (h *ThemeHandler) Create(w http.ResponseWriter, r *http.Request) {
	var payload models.NewTheme
	if err := decodeValid(r, &payload); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	theme, err := h.service.CreateTheme(r.Context(), payload)
	if err != nil {
		log.Error().Err(err).Str("name", payload.Name).Msg("Failed to create theme")
		respondError(w, http.StatusInternalServerError, "Error creating theme")
		return
	}
	respondJSON(w, http.StatusCreated, theme)
}

func (h *ThemeHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	var patch models.ThemePatch
	if err := decodeValid(r, &patch); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	theme, err := h.service.UpdateTheme(r.Context(), id, patch)
	if err != nil {
		log.Error().Err(err).Str("theme_id", id).Msg("Failed to update theme")
		respondError(w, http.StatusInternalServerError, "Error updating theme")
		return
	}
	if theme == nil {
		respondError(w, http.StatusNotFound, "Theme not found")
		return
	}
	respondJSON(w, http.StatusOK, theme)
}

func (h *ThemeHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	theme, err := h.service.DeleteTheme(r.Context(), id)
	if err != nil {
		log.Error().Err(err).Str("theme_id", id).Msg("Failed to delete theme")
		respondError(w, http.StatusInternalServerError, "Error deleting theme")
		return
	}
	if theme == nil {
		respondError(w, http.StatusNotFound, "Theme not found")
		return
	}
	respondJSON(w, http.StatusOK, messageResponse{Message: "Theme deleted successfully"})
}
