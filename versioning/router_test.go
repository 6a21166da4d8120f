package versioning

import (
	"apiversions/app"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRouterMountsLazilyAndStripsZeroMinor(t *testing.T) {
	parent := app.New(app.WithTitle("Lazy"))
	vr, err := NewRouter(parent)
	require.NoError(t, err)
	assert.Empty(t, parent.Mounts())

	_, err = vr.Handle(V(1, 0), http.MethodGet, "/items", text("v1.0"))
	require.NoError(t, err)
	_, err = vr.Handle(V(1, 1), http.MethodGet, "/items", text("v1.1"))
	require.NoError(t, err)
	_, err = vr.Handle(V(1, 0), http.MethodGet, "/other", text("other"))
	require.NoError(t, err)

	require.Len(t, parent.Mounts(), 2)
	assert.Equal(t, "/v1", vr.Prefix(V(1, 0)))
	assert.Equal(t, "/v1.1", vr.Prefix(V(1, 1)))

	assert.Equal(t, "v1.0", get(t, parent, "/v1/items").Body.String())
	assert.Equal(t, "v1.1", get(t, parent, "/v1.1/items").Body.String())
	assert.Equal(t, "other", get(t, parent, "/v1/other").Body.String())
	// per-version buckets are not cumulative
	assert.Equal(t, http.StatusNotFound, get(t, parent, "/v1.1/other").Code)
}

func TestRouterLatestUsesIntegerOrdering(t *testing.T) {
	parent := app.New()
	vr, err := NewRouter(parent)
	require.NoError(t, err)

	_, err = vr.Handle(V(2, 9), http.MethodGet, "/which", text("2.9"))
	require.NoError(t, err)
	_, err = vr.Handle(V(2, 10), http.MethodGet, "/which", text("2.10"))
	require.NoError(t, err)

	assert.Equal(t, []APIVersion{V(2, 9), V(2, 10)}, vr.Versions())
	require.NoError(t, vr.EnableLatest())
	assert.Equal(t, "2.10", get(t, parent, "/latest/which").Body.String())
	assert.Equal(t, "2.9", get(t, parent, "/v2.9/which").Body.String())
}

func TestRouterLatestWithoutVersions(t *testing.T) {
	vr, err := NewRouter(app.New())
	require.NoError(t, err)

	assert.ErrorIs(t, vr.EnableLatest(), ErrNoVersions)
}

func TestRouterTagsRegisteredHandlers(t *testing.T) {
	vr, err := NewRouter(app.New())
	require.NoError(t, err)

	r, err := vr.Handle(V(3, 2), http.MethodPost, "/things", text(""), app.WithName("create"))
	require.NoError(t, err)

	assert.Equal(t, "create", r.Name)
	tag, ok := TagOf(r.Handler)
	require.True(t, ok)
	assert.Equal(t, V(3, 2), tag.Version)
}

func TestRouterRejectsBadTemplatesAndRoutes(t *testing.T) {
	_, err := NewRouter(app.New(), WithPrefixFormat("v{major}"))
	assert.ErrorIs(t, err, ErrInvalidTemplate)

	vr, err := NewRouter(app.New())
	require.NoError(t, err)
	_, err = vr.Handle(V(1, 0), http.MethodGet, "no-slash", text(""))
	assert.ErrorIs(t, err, app.ErrInvalidRoute)
}

func TestRouterFailedHandleLeavesNoMount(t *testing.T) {
	parent := app.New()
	vr, err := NewRouter(parent)
	require.NoError(t, err)

	_, err = vr.Handle(V(3, 0), http.MethodGet, "no-slash", text(""))
	require.ErrorIs(t, err, app.ErrInvalidRoute)

	assert.Empty(t, parent.Mounts())
	assert.Empty(t, vr.Versions())
	assert.ErrorIs(t, vr.EnableLatest(), ErrNoVersions)
	assert.Empty(t, parent.Mounts())

	_, err = vr.Handle(V(3, 0), http.MethodGet, "/ok", text("ok"))
	require.NoError(t, err)
	assert.Len(t, parent.Mounts(), 1)
	assert.Equal(t, "ok", get(t, parent, "/v3/ok").Body.String())
}
