package versioning

import (
	"apiversions/app"
	"net/http"
)

// Group registers routes on an App with every handler stamped with the
// same version.
//
//	v2 := versioning.NewGroup(a, 2)
//	v2.Get("/items", http.HandlerFunc(listItemsV2))
type Group struct {
	app      *app.App
	decorate func(http.Handler) http.Handler
}

// NewGroup returns a Group for version (major, minor); minor defaults to 0.
func NewGroup(a *app.App, major int, minor ...int) *Group {
	return &Group{app: a, decorate: Version(major, minor...)}
}

func (g *Group) Handle(method, path string, h http.Handler, opts ...app.RouteOption) *app.Route {
	return g.app.Handle(method, path, g.decorate(h), opts...)
}

func (g *Group) Get(path string, h http.Handler, opts ...app.RouteOption) *app.Route {
	return g.Handle(http.MethodGet, path, h, opts...)
}

func (g *Group) Post(path string, h http.Handler, opts ...app.RouteOption) *app.Route {
	return g.Handle(http.MethodPost, path, h, opts...)
}

func (g *Group) Put(path string, h http.Handler, opts ...app.RouteOption) *app.Route {
	return g.Handle(http.MethodPut, path, h, opts...)
}

func (g *Group) Patch(path string, h http.Handler, opts ...app.RouteOption) *app.Route {
	return g.Handle(http.MethodPatch, path, h, opts...)
}

func (g *Group) Delete(path string, h http.Handler, opts ...app.RouteOption) *app.Route {
	return g.Handle(http.MethodDelete, path, h, opts...)
}
