package auth

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/isdelr/content-creator-be/internal/models"
	"github.com/isdelr/content-creator-be/internal/rbac"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type userMap map[string]*models.User

func (m userMap) GetUserByID(_ context.Context, id string) (*models.User, error) {
	return m[id], nil
}

func guarded(manager *Manager, users UserLookup, policy rbac.Policy) http.Handler {
	ok := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		principal, found := PrincipalFrom(r.Context())
		if !found {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.Write([]byte(principal.User.ID))
	})
	return TokenGuard(manager, users)(RequireRole(policy)(ok))
}

func request(t *testing.T, h http.Handler, token string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestGuards(t *testing.T) {
	manager := NewManager("test-secret")
	deletedAt := time.Now()
	users := userMap{
		"admin":  {ID: "admin", Role: rbac.RoleAdmin},
		"reader": {ID: "reader", Role: rbac.RoleReader},
		"gone":   {ID: "gone", Role: rbac.RoleAdmin, DeletedAt: &deletedAt},
	}
	h := guarded(manager, users, rbac.AdminOnly)

	issue := func(id string) string {
		token, err := manager.IssueToken(id)
		require.NoError(t, err)
		return token
	}

	tests := []struct {
		name   string
		token  string
		status int
	}{
		{"missing token", "", http.StatusUnauthorized},
		{"garbage token", "abc.def.ghi", http.StatusUnauthorized},
		{"unknown user", issue("ghost"), http.StatusUnauthorized},
		{"deleted user", issue("gone"), http.StatusUnauthorized},
		{"wrong role", issue("reader"), http.StatusForbidden},
		{"admin", issue("admin"), http.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := request(t, h, tt.token)
			assert.Equal(t, tt.status, rec.Code)
			if tt.status != http.StatusOK {
				assert.Contains(t, rec.Body.String(), `"error"`)
			}
		})
	}

	rec := request(t, h, issue("admin"))
	assert.Equal(t, "admin", rec.Body.String())
}

func TestRequireRoleWithoutPrincipal(t *testing.T) {
	h := RequireRole(rbac.AnyUser)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestBearerToken(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "bearer abc")
	assert.Equal(t, "abc", bearerToken(req))

	req.Header.Set("Authorization", "Basic abc")
	assert.Empty(t, bearerToken(req))
}
