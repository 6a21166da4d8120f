package versioning

import "apiversions/app"

const (
	DefaultVersionFormat = "{major}.{minor}"
	DefaultPrefixFormat  = "/v{major}_{minor}"
	// LatestPrefix is where WithLatest mounts the highest version.
	LatestPrefix = "/latest"
)

type options struct {
	versionFormat  string
	prefixFormat   string
	defaultVersion APIVersion
	enableLatest   bool
	versionIndex   string
	appOptions     []app.Option
	subAppOptions  []app.Option
}

func defaultOptions() options {
	return options{
		versionFormat:  DefaultVersionFormat,
		prefixFormat:   DefaultPrefixFormat,
		defaultVersion: APIVersion{Major: 1},
	}
}

// Option configures New and NewRouter.
type Option func(*options)

// WithVersionFormat sets the template of the version string reported by each
// sub-application, e.g. "{major}.{minor}".
func WithVersionFormat(format string) Option {
	return func(o *options) { o.versionFormat = format }
}

// WithPrefixFormat sets the template of the mount prefix, e.g. "/v{major}_{minor}".
func WithPrefixFormat(format string) Option {
	return func(o *options) { o.prefixFormat = format }
}

// WithDefaultVersion sets the version of routes without a version tag.
func WithDefaultVersion(major, minor int) Option {
	return func(o *options) { o.defaultVersion = APIVersion{Major: major, Minor: minor} }
}

// WithLatest mounts a copy of the highest version under /latest.
func WithLatest(enabled bool) Option {
	return func(o *options) { o.enableLatest = enabled }
}

// WithVersionIndex registers a JSON listing of the mounted versions at path
// on the parent application.
func WithVersionIndex(path string) Option {
	return func(o *options) { o.versionIndex = path }
}

// WithAppOptions are applied to the parent application after the settings
// copied from the original one.
func WithAppOptions(opts ...app.Option) Option {
	return func(o *options) { o.appOptions = append(o.appOptions, opts...) }
}

// WithSubAppOptions are applied to every versioned sub-application,
// including the latest one.
func WithSubAppOptions(opts ...app.Option) Option {
	return func(o *options) { o.subAppOptions = append(o.subAppOptions, opts...) }
}
