package versioning

import (
	"apiversions/app"
	"apiversions/logger"
	"encoding/json"
	"fmt"
	"net/http"
)

// Tags of the per-version stub routes on the parent application.
const (
	VersionsTag       = "Versions"
	DocumentationsTag = "Documentations"
)

// routeSet is the cumulative set of routes keyed by path and method. A later
// put for the same key replaces the route but keeps its original position.
type routeSet struct {
	keys   []string
	routes map[string]*app.Route
}

func newRouteSet() *routeSet {
	return &routeSet{routes: make(map[string]*app.Route)}
}

func (s *routeSet) put(r *app.Route) {
	key := r.Key()
	if _, ok := s.routes[key]; !ok {
		s.keys = append(s.keys, key)
	}
	s.routes[key] = r
}

func (s *routeSet) list() []*app.Route {
	out := make([]*app.Route, 0, len(s.keys))
	for _, k := range s.keys {
		out = append(out, s.routes[k])
	}
	return out
}

// IndexEntry describes one mounted version in the version index.
type IndexEntry struct {
	Version string `json:"version"`
	Prefix  string `json:"prefix"`
}

// Index is the body served by WithVersionIndex.
type Index struct {
	Versions []IndexEntry `json:"versions"`
	Default  string       `json:"default"`
	Latest   string       `json:"latest,omitempty"`
}

// New builds a parent application from original. Routes tagged with
// Unversion, and sub-applications mounted on original, are added to the
// parent as they are, ahead of the version mounts. Every other route is
// bucketed by its version (or the default version) and each version is
// mounted as a sub-application serving all routes up to that version.
//
// The parent copies original's title, startup and shutdown hooks and docs
// paths. New fails on invalid templates, on two versions rendering the same
// prefix, and on WithLatest when no route is versioned.
func New(original *app.App, opts ...Option) (*app.App, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	versionTmpl, err := parseTemplate(o.versionFormat)
	if err != nil {
		return nil, fmt.Errorf("version format: %w", err)
	}
	prefixTmpl, err := parsePrefixTemplate(o.prefixFormat)
	if err != nil {
		return nil, fmt.Errorf("prefix format: %w", err)
	}

	parentOpts := []app.Option{
		app.WithTitle(original.Title),
		app.WithStartup(original.OnStartup...),
		app.WithShutdown(original.OnShutdown...),
		app.WithOpenAPIURL(original.OpenAPIURL),
		app.WithDocsURL(original.DocsURL),
	}
	parent := app.New(append(parentOpts, o.appOptions...)...)

	buckets := make(map[APIVersion][]*app.Route)
	var versions []APIVersion
	for _, r := range original.Routes() {
		v, versioned := Classify(r, o.defaultVersion)
		if !versioned {
			logger.Debug("versioning: %s is unversioned", r)
			if err := parent.AddRoute(r); err != nil {
				return nil, err
			}
			continue
		}
		logger.Debug("versioning: %s classified as %s", r, v)
		if _, seen := buckets[v]; !seen {
			versions = append(versions, v)
		}
		buckets[v] = append(buckets[v], r)
	}
	sortVersions(versions)

	for _, m := range original.Mounts() {
		logger.Debug("versioning: passing mount %s through unversioned", m.Prefix)
		if err := parent.Mount(m.Prefix, m.App); err != nil {
			return nil, fmt.Errorf("passing mount %s through: %w", m.Prefix, err)
		}
	}

	newSubApp := func(semver string) *app.App {
		subOpts := []app.Option{
			app.WithTitle(original.Title),
			app.WithDescription(original.Description),
			app.WithVersion(semver),
		}
		return app.New(append(subOpts, o.subAppOptions...)...)
	}

	unique := newRouteSet()
	prefixes := make(map[string]APIVersion)
	index := Index{Versions: []IndexEntry{}, Default: versionTmpl.render(o.defaultVersion)}
	var highest *APIVersion
	for _, v := range versions {
		prefix := prefixTmpl.render(v)
		semver := versionTmpl.render(v)
		if other, dup := prefixes[prefix]; dup {
			return nil, fmt.Errorf("%w: %s and %s both render to %q", ErrDuplicatePrefix, other, v, prefix)
		}
		prefixes[prefix] = v

		sub := newSubApp(semver)
		for _, r := range buckets[v] {
			unique.put(r)
		}
		for _, r := range unique.list() {
			if err := sub.AddRoute(r); err != nil {
				return nil, err
			}
		}
		if err := parent.Mount(prefix, sub); err != nil {
			return nil, fmt.Errorf("mounting %s: %w", v, err)
		}
		if err := addStubs(parent, sub, prefix, semver); err != nil {
			return nil, err
		}
		logger.Info("versioning: mounted %q version %s at %s (%d routes)", original.Title, semver, prefix, len(sub.Routes()))

		index.Versions = append(index.Versions, IndexEntry{Version: semver, Prefix: prefix})
		current := v
		highest = &current
	}

	if o.enableLatest {
		if highest == nil {
			return nil, ErrNoVersions
		}
		semver := versionTmpl.render(*highest)
		sub := newSubApp(semver)
		for _, r := range unique.list() {
			if err := sub.AddRoute(r); err != nil {
				return nil, err
			}
		}
		if err := parent.Mount(LatestPrefix, sub); err != nil {
			return nil, fmt.Errorf("mounting latest: %w", err)
		}
		logger.Info("versioning: mounted %q latest (%s) at %s", original.Title, semver, LatestPrefix)
		index.Latest = semver
	}

	if o.versionIndex != "" {
		if err := parent.AddRoute(&app.Route{
			Method:  http.MethodGet,
			Path:    o.versionIndex,
			Name:    "versions",
			Tags:    []string{VersionsTag},
			Handler: indexHandler(index),
		}); err != nil {
			return nil, err
		}
	}
	return parent, nil
}

// addStubs registers the two per-version entries of the parent's schema
// index. They are shadowed at request time by the mount at prefix.
func addStubs(parent, sub *app.App, prefix, semver string) error {
	if sub.OpenAPIURL != "" {
		if err := parent.AddRoute(&app.Route{
			Method:  http.MethodGet,
			Path:    prefix + sub.OpenAPIURL,
			Name:    semver,
			Tags:    []string{VersionsTag},
			Handler: http.HandlerFunc(noop),
		}); err != nil {
			return err
		}
	}
	if sub.DocsURL != "" {
		if err := parent.AddRoute(&app.Route{
			Method:  http.MethodGet,
			Path:    prefix + sub.DocsURL,
			Name:    semver,
			Tags:    []string{DocumentationsTag},
			Handler: http.HandlerFunc(noop),
		}); err != nil {
			return err
		}
	}
	return nil
}

func noop(w http.ResponseWriter, r *http.Request) {}

func indexHandler(index Index) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(index); err != nil {
			logger.Error("versioning: encoding version index: %v", err)
		}
	})
}
