package api

import (
	"apiversions/app"
	"apiversions/database"
	"apiversions/versioning"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"
)

func newServer(t *testing.T) *app.App {
	t.Helper()
	require.NoError(t, database.InitDB(filepath.Join(t.TempDir(), "items.db")))
	t.Cleanup(func() { database.CloseDB() })

	parent, err := versioning.New(NewApp(),
		versioning.WithLatest(true),
		versioning.WithSubAppOptions(app.WithInstrumentation()),
	)
	require.NoError(t, err)
	return parent
}

func do(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestVersionMounts(t *testing.T) {
	parent := newServer(t)

	var prefixes []string
	for _, m := range parent.Mounts() {
		prefixes = append(prefixes, m.Prefix)
	}
	assert.Equal(t, []string{"/v1_0", "/v2_0", "/latest"}, prefixes)
}

func TestItemLifecycleAcrossVersions(t *testing.T) {
	parent := newServer(t)

	rec := do(t, parent, http.MethodPost, "/v1_0/items", `{"name":"widget","description":"blue"}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	id := gjson.Get(rec.Body.String(), "id").String()
	require.NotEmpty(t, id)
	assert.False(t, gjson.Get(rec.Body.String(), "description").Exists())

	rec = do(t, parent, http.MethodGet, "/v1_0/items", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, gjson.Parse(rec.Body.String()).IsArray())
	assert.Equal(t, "widget", gjson.Get(rec.Body.String(), "0.name").String())

	rec = do(t, parent, http.MethodGet, "/v2_0/items?limit=5", "")
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Equal(t, int64(1), gjson.Get(body, "total_records").Int())
	assert.Equal(t, int64(5), gjson.Get(body, "limit").Int())
	assert.Equal(t, "blue", gjson.Get(body, "items.0.description").String())

	rec = do(t, parent, http.MethodGet, "/v1_0/items/"+id, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.False(t, gjson.Get(rec.Body.String(), "created_at").Exists())

	rec = do(t, parent, http.MethodGet, "/latest/items/"+id, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "blue", gjson.Get(rec.Body.String(), "description").String())

	// deletion only exists from version 2 on
	assert.Equal(t, http.StatusMethodNotAllowed, do(t, parent, http.MethodDelete, "/v1_0/items/"+id, "").Code)
	assert.Equal(t, http.StatusNoContent, do(t, parent, http.MethodDelete, "/v2_0/items/"+id, "").Code)
	assert.Equal(t, http.StatusNotFound, do(t, parent, http.MethodGet, "/latest/items/"+id, "").Code)
	assert.Equal(t, http.StatusNotFound, do(t, parent, http.MethodDelete, "/v2_0/items/"+id, "").Code)
}

func TestCreateItemValidation(t *testing.T) {
	parent := newServer(t)

	rec := do(t, parent, http.MethodPost, "/v2_0/items", `{"name":"  "}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Item name is required", gjson.Get(rec.Body.String(), "message").String())

	rec = do(t, parent, http.MethodPost, "/v2_0/items", `{`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestUnversionedRoutesStayOnParent(t *testing.T) {
	parent := newServer(t)

	rec := do(t, parent, http.MethodGet, "/health", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, gjson.Get(rec.Body.String(), "ok").Bool())

	assert.Equal(t, http.StatusNotFound, do(t, parent, http.MethodGet, "/v1_0/health", "").Code)
	assert.Equal(t, http.StatusNotFound, do(t, parent, http.MethodGet, "/latest/health", "").Code)

	do(t, parent, http.MethodGet, "/v1_0/items", "")
	rec = do(t, parent, http.MethodGet, "/metrics", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "apiversions_http_requests_total")
}

func TestVersionDocsAreServed(t *testing.T) {
	parent := newServer(t)

	rec := do(t, parent, http.MethodGet, "/v2_0/openapi.json", "")
	require.Equal(t, http.StatusOK, rec.Code)
	doc := rec.Body.String()
	assert.Equal(t, "2.0", gjson.Get(doc, "info.version").String())
	assert.Equal(t, "/v2_0", gjson.Get(doc, "basePath").String())
	assert.True(t, gjson.Get(doc, `paths./items/\{itemID\}.delete`).Exists())
	assert.True(t, gjson.Get(doc, "paths./items.post").Exists())

	rec = do(t, parent, http.MethodGet, "/v1_0/openapi.json", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.False(t, gjson.Get(rec.Body.String(), `paths./items/\{itemID\}.delete`).Exists())

	assert.Equal(t, http.StatusOK, do(t, parent, http.MethodGet, "/v1_0/docs", "").Code)
}
