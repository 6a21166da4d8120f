package versioning

import "errors"

var (
	// ErrInvalidTemplate is returned for version or prefix templates that
	// cannot be rendered.
	ErrInvalidTemplate = errors.New("versioning: invalid template")
	// ErrDuplicatePrefix is returned when two versions render to the same prefix.
	ErrDuplicatePrefix = errors.New("versioning: duplicate prefix")
	// ErrNoVersions is returned when the latest mount is requested but no
	// route is versioned.
	ErrNoVersions = errors.New("versioning: latest enabled but no versioned routes")
)
