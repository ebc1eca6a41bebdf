package handlers

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/isdelr/content-creator-be/internal/auth"
	"github.com/isdelr/content-creator-be/internal/models"
	"github.com/isdelr/content-creator-be/internal/services"
	"github.com/rs/zerolog/log"
)

// Publisher pushes the current explorer snapshot to connected clients.
type Publisher interface {
	Publish(ctx context.Context) error
}

// ContentHandler handles HTTP requests for content. Every successful mutation
// is followed by a snapshot broadcast.
type ContentHandler struct {
	service   services.ContentServiceProvider
	publisher Publisher
}

// NewContentHandler creates a new ContentHandler.
func NewContentHandler(service services.ContentServiceProvider, publisher Publisher) *ContentHandler {
	return &ContentHandler{service: service, publisher: publisher}
}

func (h *ContentHandler) GetAll(w http.ResponseWriter, r *http.Request) {
	contents, err := h.service.GetAllContents(r.Context())
	if err != nil {
		log.Error().Err(err).Msg("Failed to list contents")
		respondError(w, http.StatusInternalServerError, "Error fetching contents")
		return
	}
	respondJSON(w, http.StatusOK, contents)
}

func (h *ContentHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	content, err := h.service.GetContentByID(r.Context(), id)
	if err != nil {
		log.Error().Err(err).Str("content_id", id).Msg("Failed to get content")
		respondError(w, http.StatusInternalServerError, "Error fetching content")
		return
	}
	if content == nil {
		respondError(w, http.StatusNotFound, "Content not found")
		return
	}
	respondJSON(w, http.StatusOK, content)
}

// Create stores new content owned by the caller.
func (h *ContentHandler) Create(w http.ResponseWriter, r *http.Request) {
	principal, ok := auth.PrincipalFrom(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "Not authenticated")
		return
	}

	var payload models.NewContent
	if err := decodeValid(r, &payload); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	payload.UserID = principal.User.ID

	content, err := h.service.CreateContent(r.Context(), payload)
	if err != nil {
		log.Error().Err(err).Str("user_id", payload.UserID).Msg("Failed to create content")
		respondError(w, http.StatusInternalServerError, "Error creating content")
		return
	}

	h.publish(r.Context(), "create", content.ID)
	respondJSON(w, http.StatusCreated, content)
}

// Update applies a partial update. The caller becomes the owner.
func (h *ContentHandler) Update(w http.ResponseWriter, r *http.Request) {
	principal, ok := auth.PrincipalFrom(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "Not authenticated")
		return
	}

	id := chi.URLParam(r, "id")
	var patch models.ContentPatch
	if err := decodeValid(r, &patch); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	patch.UserID = &principal.User.ID

	content, err := h.service.UpdateContent(r.Context(), id, patch)
	if err != nil {
		log.Error().Err(err).Str("content_id", id).Msg("Failed to update content")
		respondError(w, http.StatusInternalServerError, "Error updating content")
		return
	}
	if content == nil {
		respondError(w, http.StatusNotFound, "Content not found")
		return
	}

	h.publish(r.Context(), "update", id)
	respondJSON(w, http.StatusOK, content)
}

func (h *ContentHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	content, err := h.service.DeleteContent(r.Context(), id)
	if err != nil {
		log.Error().Err(err).Str("content_id", id).Msg("Failed to delete content")
		respondError(w, http.StatusInternalServerError, "Error deleting content")
		return
	}
	if content == nil {
		respondError(w, http.StatusNotFound, "Content not found")
		return
	}

	h.publish(r.Context(), "delete", id)
	respondJSON(w, http.StatusOK, messageResponse{Message: "Content deleted successfully"})
}

// publish never fails the request; the write has already succeeded. It outlives
// a cancelled request so a disconnecting caller does not suppress the update.
func (h *ContentHandler) publish(ctx context.Context, action, contentID string) {
	if err := h.publisher.Publish(context.WithoutCancel(ctx)); err != nil {
		log.Error().Err(err).Str("action", action).Str("content_id", contentID).Msg("Failed to broadcast content update")
	}
}
