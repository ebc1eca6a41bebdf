package auth

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/isdelr/content-creator-be/internal/models"
	"github.com/isdelr/content-creator-be/internal/rbac"
	"github.com/rs/zerolog/log"
)

// UserLookup finds the account a token was issued for.
type UserLookup interface {
	GetUserByID(ctx context.Context, id string) (*models.User, error)
}

// Principal is the authenticated caller attached to the request context.
type Principal struct {
	Identity Identity
	User     models.User
}

type contextKey string

const principalKey = contextKey("principal")

// WithPrincipal returns a copy of ctx carrying p.
func WithPrincipal(ctx context.Context, p *Principal) context.Context {
	return context.WithValue(ctx, principalKey, p)
}

// PrincipalFrom returns the principal attached by TokenGuard, if any.
func PrincipalFrom(ctx context.Context) (*Principal, bool) {
	p, ok := ctx.Value(principalKey).(*Principal)
	return p, ok && p != nil
}

// TokenGuard rejects requests without a valid bearer token for an existing user.
func TokenGuard(manager *Manager, users UserLookup) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tokenStr := bearerToken(r)
			if tokenStr == "" {
				writeError(w, http.StatusUnauthorized, "Missing auth token")
				return
			}

			identity, err := manager.VerifyToken(tokenStr)
			if err != nil {
				log.Debug().Err(err).Msg("Rejected auth token")
				writeError(w, http.StatusUnauthorized, "Invalid auth token")
				return
			}

			user, err := users.GetUserByID(r.Context(), identity.UserID)
			if err != nil {
				log.Error().Err(err).Str("user_id", identity.UserID).Msg("Failed to load user for token")
				writeError(w, http.StatusInternalServerError, "Failed to authenticate")
				return
			}
			if user == nil || user.DeletedAt != nil {
				writeError(w, http.StatusUnauthorized, "User no longer exists")
				return
			}

			ctx := WithPrincipal(r.Context(), &Principal{Identity: *identity, User: *user})
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireRole allows the request through only when the principal's role is in policy.
// It must run after TokenGuard.
func RequireRole(policy rbac.Policy) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			principal, ok := PrincipalFrom(r.Context())
			if !ok {
				writeError(w, http.StatusUnauthorized, "Not authenticated")
				return
			}
			if !policy.Permits(principal.User.Role) {
				log.Warn().
					Str("user_id", principal.User.ID).
					Str("role", string(principal.User.Role)).
					Str("path", r.URL.Path).
					Msg("Role not permitted")
				writeError(w, http.StatusForbidden, "Forbidden")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func bearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	scheme, token, found := strings.Cut(header, " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return ""
	}
	return strings.TrimSpace(token)
}

func writeError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": message})
}
