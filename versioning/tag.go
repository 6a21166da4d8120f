package versioning

import "net/http"

// Tag is the marker attached to a handler by Version or Unversion.
type Tag struct {
	// Unversioned routes stay on the parent application. It takes precedence
	// over Version regardless of decoration order.
	Unversioned bool
	// HasVersion reports whether Version was applied.
	HasVersion bool
	Version    APIVersion
}

// taggedHandler carries a Tag next to the handler it decorates. ServeHTTP is
// passed straight through.
type taggedHandler struct {
	next http.Handler
	tag  Tag
}

func (h *taggedHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.next.ServeHTTP(w, r)
}

func retag(h http.Handler, update func(*Tag)) http.Handler {
	if t, ok := h.(*taggedHandler); ok {
		nt := &taggedHandler{next: t.next, tag: t.tag}
		update(&nt.tag)
		return nt
	}
	nt := &taggedHandler{next: h}
	update(&nt.tag)
	return nt
}

// Version returns a decorator stamping a handler with version
// (major, minor). minor defaults to 0. Values are not validated; when applied
// twice the outermost stamp wins.
func Version(major int, minor ...int) func(http.Handler) http.Handler {
	v := APIVersion{Major: major}
	if len(minor) > 0 {
		v.Minor = minor[0]
	}
	return func(h http.Handler) http.Handler {
		return retag(h, func(t *Tag) {
			t.HasVersion = true
			t.Version = v
		})
	}
}

// Unversion returns a decorator excluding a handler from versioning.
func Unversion() func(http.Handler) http.Handler {
	return func(h http.Handler) http.Handler {
		return retag(h, func(t *Tag) { t.Unversioned = true })
	}
}

// VersionFunc is Version for a plain handler function.
func VersionFunc(fn http.HandlerFunc, major int, minor ...int) http.Handler {
	return Version(major, minor...)(fn)
}

// UnversionFunc is Unversion for a plain handler function.
func UnversionFunc(fn http.HandlerFunc) http.Handler {
	return Unversion()(fn)
}

// TagOf returns the tag of h, if it was decorated.
func TagOf(h http.Handler) (Tag, bool) {
	t, ok := h.(*taggedHandler)
	if !ok {
		return Tag{}, false
	}
	return t.tag, true
}
