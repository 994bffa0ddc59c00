package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lorencia/portal/internal/siteconfig"
	"github.com/lorencia/portal/internal/store"
	"github.com/lorencia/portal/models"
)

func adminFixture(t *testing.T) *handlerFixture {
	t.Helper()

	f := newHandlerFixture(t)
	f.asUser(models.User{ID: 1, Username: "root", Role: models.RoleAdmin})
	return f
}

func TestAdminUpdateNews_TakesIDFromURL(t *testing.T) {
	f := adminFixture(t)

	var updated models.News
	f.admin.updateNewsFn = func(ctx context.Context, news models.News) error {
		updated = news
		return nil
	}

	body := `{"id":999,"title":"Season 6 launch","content":"New continent opens this weekend."}`
	req := withSessionCookies(httptest.NewRequest(http.MethodPut, "/api/admin/news/5", strings.NewReader(body)))
	rec := httptest.NewRecorder()

	f.router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.EqualValues(t, 5, updated.ID, "the URL id wins over any id in the body")
	assert.Equal(t, "Season 6 launch", updated.Title)
}

func TestAdminUpdateNews_BadID(t *testing.T) {
	f := adminFixture(t)

	req := withSessionCookies(httptest.NewRequest(http.MethodPut, "/api/admin/news/latest", strings.NewReader(`{}`)))
	rec := httptest.NewRecorder()

	f.router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAdminListUsers_ForwardsQueryParams(t *testing.T) {
	f := adminFixture(t)

	var gotPage, gotLimit int
	var gotSearch string
	f.admin.listUsersFn = func(ctx context.Context, page, perPage int, search string) (store.UserPage, error) {
		gotPage, gotLimit, gotSearch = page, perPage, search
		return store.UserPage{Users: []models.User{}, Page: page, Limit: perPage}, nil
	}

	req := withSessionCookies(httptest.NewRequest(http.MethodGet, "/api/admin/users?page=3&limit=25&search=john", nil))
	rec := httptest.NewRecorder()

	f.router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 3, gotPage)
	assert.Equal(t, 25, gotLimit)
	assert.Equal(t, "john", gotSearch)
}

func TestAdminUpdateUser_PartialUpdate(t *testing.T) {
	f := adminFixture(t)

	var got store.UserUpdate
	f.admin.updateUserFn = func(ctx context.Context, update store.UserUpdate) (models.User, error) {
		got = update
		return models.User{ID: update.ID, Role: *update.Role}, nil
	}

	req := withSessionCookies(httptest.NewRequest(http.MethodPatch, "/api/admin/users/7", strings.NewReader(`{"role":"admin"}`)))
	rec := httptest.NewRecorder()

	f.router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.EqualValues(t, 7, got.ID)
	require.NotNil(t, got.Role)
	assert.Equal(t, "admin", *got.Role)
	assert.Nil(t, got.Email, "absent fields stay nil")
	assert.Nil(t, got.Credits)
}

func TestAdminSaveConfig_ForwardsSection(t *testing.T) {
	f := adminFixture(t)

	var gotSection string
	var gotRaw json.RawMessage
	f.admin.saveSiteConfigFn = func(ctx context.Context, section string, raw json.RawMessage) (siteconfig.Config, error) {
		gotSection, gotRaw = section, raw
		return siteconfig.Defaults(), nil
	}

	body := `{"siteName":"Noria Portal","maxCharactersPerUser":5}`
	req := withSessionCookies(httptest.NewRequest(http.MethodPut, "/api/admin/config/general", strings.NewReader(body)))
	rec := httptest.NewRecorder()

	f.router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "general", gotSection)
	assert.JSONEq(t, body, string(gotRaw))
}

func TestAdminSaveConfig_UnknownSection(t *testing.T) {
	f := adminFixture(t)

	f.admin.saveSiteConfigFn = func(ctx context.Context, section string, raw json.RawMessage) (siteconfig.Config, error) {
		return siteconfig.Config{}, siteconfig.ErrUnknownSection
	}

	req := withSessionCookies(httptest.NewRequest(http.MethodPut, "/api/admin/config/themes", strings.NewReader(`{}`)))
	rec := httptest.NewRecorder()

	f.router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestAdminInitDB(t *testing.T) {
	f := adminFixture(t)

	migrated := false
	f.admin.initDBFn = func(ctx context.Context) error {
		migrated = true
		return nil
	}

	req := withSessionCookies(httptest.NewRequest(http.MethodPost, "/api/admin/init-db", nil))
	rec := httptest.NewRecorder()

	f.router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, migrated)
	assert.Contains(t, rec.Body.String(), "database initialized")
}
