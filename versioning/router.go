package versioning

import (
	"apiversions/app"
	"apiversions/logger"
	"fmt"
	"net/http"
	"strings"
)

// Router registers routes with an explicit version and mounts one
// sub-application per version on the parent as soon as the version is
// first used. Unlike New, a version's sub-application only holds the
// routes registered for that exact version.
type Router struct {
	parent      *app.App
	opts        options
	versionTmpl *versionTemplate
	prefixTmpl  *versionTemplate
	subs        map[APIVersion]*app.App
}

// NewRouter returns a Router mounting on parent. Its default prefix format is
// "/v{major}.{minor}"; a rendered prefix ending in ".0" loses that suffix,
// so version 1.0 is served under /v1 and 1.1 under /v1.1.
func NewRouter(parent *app.App, opts ...Option) (*Router, error) {
	o := defaultOptions()
	o.prefixFormat = "/v{major}.{minor}"
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
	return &Router{
		parent:      parent,
		opts:        o,
		versionTmpl: versionTmpl,
		prefixTmpl:  prefixTmpl,
		subs:        make(map[APIVersion]*app.App),
	}, nil
}

// Prefix returns the mount prefix of v.
func (vr *Router) Prefix(v APIVersion) string {
	return strings.TrimSuffix(vr.prefixTmpl.render(v), ".0")
}

// Handle registers h for method and path under version v. The version's
// sub-application is mounted once its first route has been accepted.
func (vr *Router) Handle(v APIVersion, method, path string, h http.Handler, opts ...app.RouteOption) (*app.Route, error) {
	r := &app.Route{Method: method, Path: path, Handler: Version(v.Major, v.Minor)(h)}
	for _, opt := range opts {
		opt(r)
	}
	if sub, ok := vr.subs[v]; ok {
		if err := sub.AddRoute(r); err != nil {
			return nil, err
		}
		return r, nil
	}

	semver := vr.versionTmpl.render(v)
	sub := vr.newSubApp(semver)
	if err := sub.AddRoute(r); err != nil {
		return nil, err
	}
	prefix := vr.Prefix(v)
	if err := vr.parent.Mount(prefix, sub); err != nil {
		return nil, fmt.Errorf("mounting %s: %w", v, err)
	}
	logger.Info("versioning: mounted %q version %s at %s", vr.parent.Title, semver, prefix)
	vr.subs[v] = sub
	return r, nil
}

func (vr *Router) newSubApp(semver string) *app.App {
	subOpts := []app.Option{
		app.WithTitle(vr.parent.Title),
		app.WithDescription(vr.parent.Description),
		app.WithVersion(semver),
	}
	return app.New(append(subOpts, vr.opts.subAppOptions...)...)
}

// Versions returns the versions in use, ascending.
func (vr *Router) Versions() []APIVersion {
	versions := make([]APIVersion, 0, len(vr.subs))
	for v := range vr.subs {
		versions = append(versions, v)
	}
	sortVersions(versions)
	return versions
}

// EnableLatest mounts a copy of the highest version's routes under /latest.
// Versions registered afterwards are not reflected.
func (vr *Router) EnableLatest() error {
	versions := vr.Versions()
	if len(versions) == 0 {
		return ErrNoVersions
	}
	highest := versions[len(versions)-1]
	semver := vr.versionTmpl.render(highest)
	latest := vr.newSubApp(semver)
	for _, r := range vr.subs[highest].Routes() {
		if err := latest.AddRoute(r); err != nil {
			return err
		}
	}
	if err := vr.parent.Mount(LatestPrefix, latest); err != nil {
		return fmt.Errorf("mounting latest: %w", err)
	}
	return nil
}
