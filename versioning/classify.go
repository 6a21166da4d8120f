package versioning

import "apiversions/app"

// Classify returns the version bucket of r. ok is false for routes tagged
// with Unversion, which belong on the parent application unchanged. Routes
// without a version tag fall back to def.
func Classify(r *app.Route, def APIVersion) (v APIVersion, ok bool) {
	tag, tagged := TagOf(r.Handler)
	if !tagged {
		return def, true
	}
	if tag.Unversioned {
		return APIVersion{}, false
	}
	if tag.HasVersion {
		return tag.Version, true
	}
	return def, true
}
