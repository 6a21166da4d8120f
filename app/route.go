package app

import (
	"fmt"
	"net/http"
	"strings"
)

// Route is a single (method, path, handler) registration on an App.
// Routes are shared by pointer when an App re-registers another App's routes.
type Route struct {
	Method  string
	Path    string
	Name    string
	Tags    []string
	Handler http.Handler
}

// Key identifies a route by path and method, e.g. "/items|GET".
func (r *Route) Key() string {
	return r.Path + "|" + r.Method
}

func (r *Route) String() string {
	return r.Method + " " + r.Path
}

func (r *Route) validate() error {
	if r == nil {
		return fmt.Errorf("%w: nil route", ErrInvalidRoute)
	}
	if r.Method == "" || strings.ToUpper(r.Method) != r.Method {
		return fmt.Errorf("%w: method %q must be a non-empty upper-case HTTP method", ErrInvalidRoute, r.Method)
	}
	if !strings.HasPrefix(r.Path, "/") {
		return fmt.Errorf("%w: path %q must start with /", ErrInvalidRoute, r.Path)
	}
	if r.Handler == nil {
		return fmt.Errorf("%w: %s has no handler", ErrInvalidRoute, r)
	}
	return nil
}

// RouteOption sets optional route metadata.
type RouteOption func(*Route)

// WithName sets the route name shown as the operation summary in the schema.
func WithName(name string) RouteOption {
	return func(r *Route) { r.Name = name }
}

// WithTags groups the route under the given schema tags.
func WithTags(tags ...string) RouteOption {
	return func(r *Route) { r.Tags = append(r.Tags, tags...) }
}
