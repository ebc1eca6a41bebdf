package handlers

import (
	"errors"
	"net/http"

	"github.com/isdelr/content-creator-be/internal/auth"
	"github.com/isdelr/content-creator-be/internal/models"
	"github.com/isdelr/content-creator-be/internal/repository"
	"github.com/isdelr/content-creator-be/internal/services"
	"github.com/rs/zerolog/log"
)

// AuthHandler handles signup, login and token verification.
type AuthHandler struct {
	users   services.UserServiceProvider
	auth    services.AuthServiceProvider
	manager *auth.Manager
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(users services.UserServiceProvider, authService services.AuthServiceProvider, manager *auth.Manager) *AuthHandler {
	return &AuthHandler{users: users, auth: authService, manager: manager}
}

// LoginPayload defines the structure for login requests.
type LoginPayload struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type userResponse struct {
	User *models.User `json:"user"`
}

type loginResponse struct {
	User  *models.User `json:"user"`
	Token string       `json:"token"`
}

// Signup handles new user registration.
func (h *AuthHandler) Signup(w http.ResponseWriter, r *http.Request) {
	var payload models.NewUser
	if err := decodeValid(r, &payload); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	user, err := h.users.CreateUser(r.Context(), payload)
	if errors.Is(err, repository.ErrDuplicate) {
		respondError(w, http.StatusBadRequest, "Username or email already in use")
		return
	}
	if err != nil {
		log.Error().Err(err).Str("email", payload.Email).Msg("Failed to register user")
		respondError(w, http.StatusInternalServerError, "Error creating user")
		return
	}

	respondJSON(w, http.StatusCreated, userResponse{User: user})
}

// Login checks credentials and returns a signed token.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var payload LoginPayload
	if err := decodeValid(r, &payload); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	user, err := h.auth.Authenticate(r.Context(), payload.Email, payload.Password)
	if err != nil {
		log.Error().Err(err).Str("email", payload.Email).Msg("Failed to authenticate user")
		respondError(w, http.StatusInternalServerError, "Error logging in")
		return
	}
	if user == nil {
		log.Warn().Str("email", payload.Email).Msg("Failed authentication attempt")
		respondError(w, http.StatusUnauthorized, "Invalid credentials")
		return
	}

	token, err := h.manager.IssueToken(user.ID)
	if err != nil {
		log.Error().Err(err).Str("user_id", user.ID).Msg("Failed to generate JWT")
		respondError(w, http.StatusInternalServerError, "Error logging in")
		return
	}

	respondJSON(w, http.StatusOK, loginResponse{User: user, Token: token})
}

// Verify returns the user a bearer token belongs to.
func (h *AuthHandler) Verify(w http.ResponseWriter, r *http.Request) {
	principal, ok := auth.PrincipalFrom(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "No token provided")
		return
	}

	user, err := h.users.GetUserByID(r.Context(), principal.Identity.UserID)
	if err != nil {
		log.Error().Err(err).Str("user_id", principal.Identity.UserID).Msg("Failed to load user for token")
		respondError(w, http.StatusInternalServerError, "Error verifying token")
		return
	}
	if user == nil {
		respondError(w, http.StatusNotFound, "User not found")
		return
	}

	respondJSON(w, http.StatusOK, userResponse{User: user})
}
