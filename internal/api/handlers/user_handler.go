package handlers

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/isdelr/content-creator-be/internal/auth"
	"github.com/isdelr/content-creator-be/internal/models"
	"github.com/isdelr/content-creator-be/internal/repository"
	"github.com/isdelr/content-creator-be/internal/services"
	"github.com/rs/zerolog/log"
)

// UserHandler handles HTTP requests for user management.
type UserHandler struct {
	service services.UserServiceProvider
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(service services.UserServiceProvider) *UserHandler {
	return &UserHandler{service: service}
}

// GetMe returns the authenticated user.
func (h *UserHandler) GetMe(w http.ResponseWriter, r *http.Request) {
	principal, ok := auth.PrincipalFrom(r.Context())
	if !ok {
		log.Error().Msg("Could not retrieve principal from context")
		respondError(w, http.StatusUnauthorized, "Not authenticated")
		return
	}
	respondJSON(w, http.StatusOK, principal.User)
}

// GetAll lists active users.
func (h *UserHandler) GetAll(w http.ResponseWriter, r *http.Request) {
	users, err := h.service.GetAllUsers(r.Context())
	if err != nil {
		log.Error().Err(err).Msg("Failed to list users")
		respondError(w, http.StatusInternalServerError, "Error fetching users")
		return
	}
	respondJSON(w, http.StatusOK, users)
}

// Get handles retrieving a user by their ID.
func (h *UserHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	user, err := h.service.GetUserByID(r.Context(), id)
	if err != nil {
		log.Error().Err(err).Str("user_id", id).Msg("Failed to get user by ID")
		respondError(w, http.StatusInternalServerError, "Error fetching user")
		return
	}
	if user == nil {
		respondError(w, http.StatusNotFound, "User not found")
		return
	}
	respondJSON(w, http.StatusOK, user)
}

// Update applies a partial update to a user.
func (h *UserHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	var patch models.UserPatch
	if err := decodeValid(r, &patch); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	user, err := h.service.UpdateUser(r.Context(), id, patch)
	if errors.Is(err, repository.ErrDuplicate) {
		respondError(w, http.StatusBadRequest, "Username or email already in use")
		return
	}
	if err != nil {
		log.Error().Err(err).Str("user_id", id).Msg("Failed to update user")
		respondError(w, http.StatusInternalServerError, "Error updating user")
		return
	}
	if user == nil {
		respondError(w, http.StatusNotFound, "User not found")
		return
	}
	respondJSON(w, http.StatusOK, user)
}

// Delete soft-deletes a user account.
func (h *UserHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	user, err := h.service.DeleteUser(r.Context(), id)
	if err != nil {
		log.Error().Err(err).Str("user_id", id).Msg("Failed to delete user")
		respondError(w, http.StatusInternalServerError, "Error deleting user")
		return
	}
	if user == nil {
		respondError(w, http.StatusNotFound, "User not found")
		return
	}
	respondJSON(w, http.StatusOK, messageResponse{Message: "User deleted successfully"})
}
