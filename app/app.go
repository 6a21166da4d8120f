// Package app is the application object the versioning layer works on: an
// ordered table of routes and mounted sub-applications, startup/shutdown
// hooks, and a schema document per application. Request routing is done by
// chi; App only decides what gets registered on the chi mux, and in which order.
//
// Routes and mounts are matched in registration order: a route registered
// after a mount whose prefix covers it is shadowed by that mount, and the
// first of two routes sharing a method and path wins. A mount claims every
// method on its exact prefix, so mounting over an existing route path (or the
// App's own docs paths) is rejected with ErrInvalidMount.
package app

import (
	"apiversions/logger"
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"sync"

	"github.com/go-chi/chi/v5"
)

var (
	// ErrFrozen is returned when routes or mounts are added after the
	// handler has been built.
	ErrFrozen = errors.New("app: handler already built")
	// ErrInvalidRoute is returned for routes missing a method, path or handler.
	ErrInvalidRoute = errors.New("app: invalid route")
	// ErrInvalidMount is returned for bad mount prefixes or duplicate mounts.
	ErrInvalidMount = errors.New("app: invalid mount")
)

// Hook runs on application startup or shutdown.
type Hook func(ctx context.Context) error

// Mount is a sub-application attached under a path prefix.
type Mount struct {
	Prefix string
	App    *App
}

type entry struct {
	route *Route
	mount *Mount
}

// App holds routes and mounted sub-applications and serves them through chi.
type App struct {
	Title       string
	Description string
	Version     string
	OpenAPIURL  string
	DocsURL     string
	OnStartup   []Hook
	OnShutdown  []Hook

	middlewares []func(http.Handler) http.Handler
	instrument  bool
	entries     []entry
	rootPath    string

	once        sync.Once
	built       bool
	handler     http.Handler
	docInstance string
}

// Option configures an App at construction time.
type Option func(*App)

func WithTitle(title string) Option { return func(a *App) { a.Title = title } }

func WithDescription(desc string) Option { return func(a *App) { a.Description = desc } }

func WithVersion(version string) Option { return func(a *App) { a.Version = version } }

// WithOpenAPIURL sets the path of the schema document. An empty path disables
// both the schema and the docs page.
func WithOpenAPIURL(path string) Option { return func(a *App) { a.OpenAPIURL = path } }

// WithDocsURL sets the path of the docs page. An empty path disables it.
func WithDocsURL(path string) Option { return func(a *App) { a.DocsURL = path } }

func WithStartup(hooks ...Hook) Option {
	return func(a *App) { a.OnStartup = append(a.OnStartup, hooks...) }
}

func WithShutdown(hooks ...Hook) Option {
	return func(a *App) { a.OnShutdown = append(a.OnShutdown, hooks...) }
}

// WithMiddleware adds middleware applied to every request served by the App,
// including requests forwarded to mounted sub-applications.
func WithMiddleware(mws ...func(http.Handler) http.Handler) Option {
	return func(a *App) { a.middlewares = append(a.middlewares, mws...) }
}

// WithInstrumentation counts requests served by the App, labelled with its Version.
func WithInstrumentation() Option {
	return func(a *App) { a.instrument = true }
}

// New creates an App with the default title, version and docs paths.
func New(opts ...Option) *App {
	a := &App{
		Title:      "API",
		Version:    "0.1.0",
		OpenAPIURL: "/openapi.json",
		DocsURL:    "/docs",
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Use appends middleware. It panics once the handler has been built.
func (a *App) Use(mws ...func(http.Handler) http.Handler) {
	if a.built {
		panic("app: Use called after the handler was built")
	}
	a.middlewares = append(a.middlewares, mws...)
}

// AddRoute appends an existing route to the route table. The route is
// registered by reference.
func (a *App) AddRoute(r *Route) error {
	if a.built {
		return ErrFrozen
	}
	if err := r.validate(); err != nil {
		return err
	}
	a.entries = append(a.entries, entry{route: r})
	return nil
}

// Handle registers a handler for method and path. It panics on an invalid
// route, the way chi does for malformed patterns.
func (a *App) Handle(method, path string, h http.Handler, opts ...RouteOption) *Route {
	r := &Route{Method: method, Path: path, Handler: h}
	for _, opt := range opts {
		opt(r)
	}
	if err := a.AddRoute(r); err != nil {
		panic(err)
	}
	return r
}

func (a *App) Get(path string, h http.Handler, opts ...RouteOption) *Route {
	return a.Handle(http.MethodGet, path, h, opts...)
}

func (a *App) Post(path string, h http.Handler, opts ...RouteOption) *Route {
	return a.Handle(http.MethodPost, path, h, opts...)
}

func (a *App) Put(path string, h http.Handler, opts ...RouteOption) *Route {
	return a.Handle(http.MethodPut, path, h, opts...)
}

func (a *App) Patch(path string, h http.Handler, opts ...RouteOption) *Route {
	return a.Handle(http.MethodPatch, path, h, opts...)
}

func (a *App) Delete(path string, h http.Handler, opts ...RouteOption) *Route {
	return a.Handle(http.MethodDelete, path, h, opts...)
}

// Mount attaches sub under prefix. The prefix must start with "/", must not
// be "/", must not already be mounted and must not be the path of an
// already registered route.
func (a *App) Mount(prefix string, sub *App) error {
	if a.built {
		return ErrFrozen
	}
	if sub == nil {
		return fmt.Errorf("%w: nil sub-application at %q", ErrInvalidMount, prefix)
	}
	prefix = strings.TrimSuffix(prefix, "/")
	if !strings.HasPrefix(prefix, "/") {
		return fmt.Errorf("%w: prefix %q must start with / and not be the root", ErrInvalidMount, prefix)
	}
	for _, m := range a.Mounts() {
		if m.Prefix == prefix {
			return fmt.Errorf("%w: prefix %q already mounted", ErrInvalidMount, prefix)
		}
	}
	for _, p := range a.claimedPaths() {
		if p == prefix || p == prefix+"/" {
			return fmt.Errorf("%w: prefix %q would shadow the route at %s", ErrInvalidMount, prefix, p)
		}
	}
	sub.rootPath = a.rootPath + prefix
	a.entries = append(a.entries, entry{mount: &Mount{Prefix: prefix, App: sub}})
	return nil
}

// claimedPaths lists the exact paths answered by the App's own routes,
// including its docs routes.
func (a *App) claimedPaths() []string {
	var paths []string
	if a.OpenAPIURL != "" {
		paths = append(paths, a.OpenAPIURL)
		if a.DocsURL != "" {
			paths = append(paths, a.DocsURL)
		}
	}
	for _, r := range a.Routes() {
		paths = append(paths, r.Path)
	}
	return paths
}

// Routes returns the App's own routes in registration order.
func (a *App) Routes() []*Route {
	routes := make([]*Route, 0, len(a.entries))
	for _, e := range a.entries {
		if e.route != nil {
			routes = append(routes, e.route)
		}
	}
	return routes
}

// Mounts returns the mounted sub-applications in registration order.
func (a *App) Mounts() []Mount {
	var mounts []Mount
	for _, e := range a.entries {
		if e.mount != nil {
			mounts = append(mounts, *e.mount)
		}
	}
	return mounts
}

// RootPath is the full prefix the App is mounted under, "" for a top-level App.
func (a *App) RootPath() string {
	return a.rootPath
}

// Startup runs the startup hooks in order and stops at the first error.
func (a *App) Startup(ctx context.Context) error {
	for i, hook := range a.OnStartup {
		if err := hook(ctx); err != nil {
			return fmt.Errorf("startup hook %d: %w", i, err)
		}
	}
	return nil
}

// Shutdown runs every shutdown hook and joins their errors.
func (a *App) Shutdown(ctx context.Context) error {
	var errs []error
	for i, hook := range a.OnShutdown {
		if err := hook(ctx); err != nil {
			errs = append(errs, fmt.Errorf("shutdown hook %d: %w", i, err))
		}
	}
	return errors.Join(errs...)
}

// Handler builds the chi mux on first use and returns it. After that the
// App is frozen.
func (a *App) Handler() http.Handler {
	a.once.Do(func() {
		a.built = true
		a.handler = a.build()
	})
	return a.handler
}

func (a *App) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	a.Handler().ServeHTTP(w, r)
}

func (a *App) build() http.Handler {
	mux := chi.NewRouter()
	mux.Use(a.middlewares...)
	if a.instrument {
		mux.Use(Instrument(a.Version))
	}

	seen := make(map[string]bool)
	var mounted []string
	register := func(r *Route) {
		if prefix := coveringMount(r.Path, mounted); prefix != "" {
			logger.Debug("app %q: %s shadowed by mount %s", a.Title, r, prefix)
			return
		}
		if seen[r.Key()] {
			logger.Debug("app %q: %s already registered, keeping the first", a.Title, r)
			return
		}
		seen[r.Key()] = true
		mux.Method(r.Method, r.Path, r.Handler)
	}

	for _, r := range a.docRoutes() {
		register(r)
	}
	for _, e := range a.entries {
		if e.mount != nil {
			mux.Mount(e.mount.Prefix, e.mount.App.Handler())
			mounted = append(mounted, e.mount.Prefix)
			continue
		}
		register(e.route)
	}
	return mux
}

func coveringMount(path string, prefixes []string) string {
	for _, p := range prefixes {
		if path == p || strings.HasPrefix(path, p+"/") {
			return p
		}
	}
	return ""
}
