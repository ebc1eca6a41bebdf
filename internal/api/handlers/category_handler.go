package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/isdelr/content-creator-be/internal/models"
	"github.com/isdelr/content-creator-be/internal/services"
	"github.com/rs/zerolog/log"
)

// CategoryHandler handles HTTP requests for categories.
type CategoryHandler struct {
	service services.CategoryServiceProvider
}

// NewCategoryHandler creates a new CategoryHandler.
func NewCategoryHandler(service services.CategoryServiceProvider) *CategoryHandler {
	return &CategoryHandler{service: service}
}

func (h *CategoryHandler) GetAll(w http.ResponseWriter, r *http.Request) {
	categories, err := h.service.GetAllCategories(r.Context())
	if err != nil {
		log.Error().Err(err).Msg("Failed to list categories")
		respondError(w, http.StatusInternalServerError, "Error fetching categories")
		return
	}
	respondJSON(w, http.StatusOK, categories)
}

func (h *CategoryHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	category, err := h.service.GetCategoryByID(r.Context(), id)
	if err != nil {
		log.Error().Err(err).Str("category_id", id).Msg("Failed to get category")
		respondError(w, http.StatusInternalServerError, "Error fetching category")
		return
	}
	if category == nil {
		respondError(w, http.StatusNotFound, "Category not found")
		return
	}
	respondJSON(w, http.StatusOK, category)
}

func (h *CategoryHandler) Create(w http.ResponseWriter, r *http.Request) {
	var payload models.NewCategory
	if err := decodeValid(r, &payload); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	category, err := h.service.CreateCategory(r.Context(), payload)
	if err != nil {
		log.Error().Err(err).Str("label", payload.Label).Msg("Failed to create category")
		respondError(w, http.StatusInternalServerError, "Error creating category")
		return
	}
	respondJSON(w, http.StatusCreated, category)
}

func (h *CategoryHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	var patch models.CategoryPatch
	if err := decodeValid(r, &patch); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	category, err := h.service.UpdateCategory(r.Context(), id, patch)
	if err != nil {
		log.Error().Err(err).Str("category_id", id).Msg("Failed to update category")
		respondError(w, http.StatusInternalServerError, "Error updating category")
		return
	}
	if category == nil {
		respondError(w, http.StatusNotFound, "Category not found")
		return
	}
	respondJSON(w, http.StatusOK, category)
}

func (h *CategoryHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	category, err := h.service.DeleteCategory(r.Context(), id)
	if err != nil {
		log.Error().Err(err).Str("category_id", id).Msg("Failed to delete category")
		respondError(w, http.StatusInternalServerError, "Error deleting category")
		return
	}
	if category == nil {
		respondError(w, http.StatusNotFound, "Category not found")
		return
	}
	respondJSON(w, http.StatusOK, messageResponse{Message: "Category deleted successfully"})
}
