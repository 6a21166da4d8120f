package versioning

import (
	"apiversions/app"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVersionDecoratorStampsHandler(t *testing.T) {
	h := Version(2, 3)(text("x"))

	tag, ok := TagOf(h)
	require.True(t, ok)
	assert.Equal(t, Tag{HasVersion: true, Version: V(2, 3)}, tag)
	assert.Equal(t, "x", get(t, h, "/").Body.String())
}

func TestVersionMinorDefaultsToZero(t *testing.T) {
	tag, _ := TagOf(Version(4)(text("")))
	assert.Equal(t, V(4, 0), tag.Version)

	tag, _ = TagOf(VersionFunc(func(w http.ResponseWriter, r *http.Request) {}, 5))
	assert.Equal(t, V(5, 0), tag.Version)
}

func TestLastVersionStampWins(t *testing.T) {
	h := Version(3)(Version(1)(text("")))

	tag, _ := TagOf(h)
	assert.Equal(t, V(3, 0), tag.Version)
}

func TestNegativeVersionsAreAccepted(t *testing.T) {
	tag, ok := TagOf(Version(-1, -2)(text("")))
	require.True(t, ok)
	assert.Equal(t, V(-1, -2), tag.Version)
}

func TestUnversionOverridesVersionInEitherOrder(t *testing.T) {
	def := V(1, 0)
	for _, h := range []http.Handler{
		Unversion()(Version(2)(text(""))),
		Version(2)(Unversion()(text(""))),
		UnversionFunc(func(w http.ResponseWriter, r *http.Request) {}),
	} {
		_, versioned := Classify(&app.Route{Method: http.MethodGet, Path: "/", Handler: h}, def)
		assert.False(t, versioned)
	}
}

func TestDecoratorsDoNotMutateTheirInput(t *testing.T) {
	v1 := Version(1)(text(""))
	_ = Version(2)(v1)
	_ = Unversion()(v1)

	tag, _ := TagOf(v1)
	assert.Equal(t, Tag{HasVersion: true, Version: V(1, 0)}, tag)
}

func TestClassifyFallsBackToDefault(t *testing.T) {
	def := V(3, 1)
	cases := []struct {
		name    string
		handler http.Handler
		want    APIVersion
	}{
		{"untagged", text(""), def},
		{"tagged", Version(7, 2)(text("")), V(7, 2)},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			v, versioned := Classify(&app.Route{Method: http.MethodGet, Path: "/", Handler: tc.handler}, def)
			assert.True(t, versioned)
			assert.Equal(t, tc.want, v)
		})
	}
}

func TestTagOfUntaggedHandler(t *testing.T) {
	_, ok := TagOf(text(""))
	assert.False(t, ok)
}

func TestCompareIsIntegerPairwise(t *testing.T) {
	assert.True(t, V(2, 9).Less(V(2, 10)))
	assert.True(t, V(1, 99).Less(V(2, 0)))
	assert.Equal(t, 0, V(3, 4).Compare(V(3, 4)))
	assert.Equal(t, 1, V(3, 0).Compare(V(2, 100)))
	assert.Equal(t, -1, V(0, 1).Compare(V(0, 2)))
	assert.Equal(t, "2.10", V(2, 10).String())
}

func TestGroupStampsEveryRoute(t *testing.T) {
	a := app.New()
	g := NewGroup(a, 2, 1)
	g.Get("/x", text("x"))
	g.Post("/x", text("x"))
	g.Delete("/x/{id}", text("x"))

	require.Len(t, a.Routes(), 3)
	for _, r := range a.Routes() {
		v, versioned := Classify(r, V(1, 0))
		assert.True(t, versioned)
		assert.Equal(t, V(2, 1), v, r.String())
	}
}
