package http

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lorencia/portal/models"
)

func TestAuthMiddleware_RejectsWithoutCookies(t *testing.T) {
	f := newHandlerFixture(t)

	req := httptest.NewRequest(http.MethodGet, "/api/me", nil)
	rec := httptest.NewRecorder()

	f.router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthMiddleware_RejectsStaleSession(t *testing.T) {
	f := newHandlerFixture(t)
	f.asUser(models.User{ID: 7, Username: "john_doe", Role: models.RoleUser})

	req := httptest.NewRequest(http.MethodGet, "/api/me", nil)
	req.AddCookie(&http.Cookie{Name: authTokenCookie, Value: "signed-token"})
	req.AddCookie(&http.Cookie{Name: sessionIDCookie, Value: "revoked-session"})
	rec := httptest.NewRecorder()

	f.router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthMiddleware_PassesUserToHandler(t *testing.T) {
	f := newHandlerFixture(t)
	f.asUser(models.User{ID: 7, Username: "john_doe", Role: models.RoleUser})

	req := withSessionCookies(httptest.NewRequest(http.MethodGet, "/api/me", nil))
	rec := httptest.NewRecorder()

	f.router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"john_doe"`)
}

func TestAdminMiddleware_ForbidsRegularUser(t *testing.T) {
	f := newHandlerFixture(t)
	f.asUser(models.User{ID: 7, Username: "john_doe", Role: models.RoleUser})

	req := withSessionCookies(httptest.NewRequest(http.MethodGet, "/api/admin/stats", nil))
	rec := httptest.NewRecorder()

	f.router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestAdminMiddleware_AllowsAdmin(t *testing.T) {
	f := newHandlerFixture(t)
	f.asUser(models.User{ID: 1, Username: "root", Role: models.RoleAdmin})

	req := withSessionCookies(httptest.NewRequest(http.MethodGet, "/api/admin/stats", nil))
	rec := httptest.NewRecorder()

	f.router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}
