package versioning

import (
	"fmt"
	"sort"
)

// APIVersion is a (major, minor) API revision. Versions are ordered by major
// first, then minor, compared as integers.
type APIVersion struct {
	Major int
	Minor int
}

// V is shorthand for APIVersion{major, minor}.
func V(major, minor int) APIVersion {
	return APIVersion{Major: major, Minor: minor}
}

// Compare returns -1, 0 or +1 depending on whether v sorts before, equal to
// or after other.
func (v APIVersion) Compare(other APIVersion) int {
	switch {
	case v.Major != other.Major:
		if v.Major < other.Major {
			return -1
		}
		return 1
	case v.Minor != other.Minor:
		if v.Minor < other.Minor {
			return -1
		}
		return 1
	}
	return 0
}

func (v APIVersion) Less(other APIVersion) bool {
	return v.Compare(other) < 0
}

func (v APIVersion) String() string {
	return fmt.Sprintf("%d.%d", v.Major, v.Minor)
}

func sortVersions(versions []APIVersion) {
	sort.Slice(versions, func(i, j int) bool { return versions[i].Less(versions[j]) })
}
