package advisor

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"golang.org/x/mod/semver"
)

var versionPattern = regexp.MustCompile(`^v?(\d+)\.(\d+)\.(\d+)$`)

// VersionError is returned for strings that are not major.minor.patch.
type VersionError struct {
	Input string
}

func (e *VersionError) Error() string {
	return fmt.Sprintf("invalid version %q (expected: X.Y.Z or vX.Y.Z)", e.Input)
}

// IsVersionError returns true if the error is a VersionError.
func IsVersionError(err error) bool {
	var ve *VersionError
	return errors.As(err, &ve)
}

// Version is a parsed major.minor.patch triple.
type Version struct {
	Major int
	Minor int
	Patch int
}

// String returns the canonical X.Y.Z form without a v prefix.
func (v Version) String() string {
	return fmt.Sprintf("%d.%d.%d", v.Major, v.Minor, v.Patch)
}

// Bump returns v incremented by b with lower components reset to zero.
// An unknown bump type leaves v unchanged; normalize input with ParseBumpType.
func (v Version) Bump(b BumpType) Version {
	switch b {
	case Major:
		return Version{Major: v.Major + 1}
	case Minor:
		return Version{Major: v.Major, Minor: v.Minor + 1}
	case Patch:
		return Version{Major: v.Major, Minor: v.Minor, Patch: v.Patch + 1}
	default:
		return v
	}
}

// ParseVersion parses "X.Y.Z" or "vX.Y.Z". Surrounding whitespace is ignored.
func ParseVersion(s string) (Version, error) {
	m := versionPattern.FindStringSubmatch(strings.TrimSpace(s))
	if m == nil {
		return Version{}, &VersionError{Input: s}
	}

	parts := make([]int, 3)
	for i := range parts {
		n, err := strconv.Atoi(m[i+1])
		if err != nil {
			return Version{}, &VersionError{Input: s}
		}
		parts[i] = n
	}

	return Version{Major: parts[0], Minor: parts[1], Patch: parts[2]}, nil
}

// IncrementVersion bumps version by b. The result has no v prefix:
// IncrementVersion("1.2.3", Minor) is "1.3.0".
func IncrementVersion(version string, b BumpType) (string, error) {
	bt, err := ParseBumpType(string(b))
	if err != nil {
		return "", err
	}
	v, err := ParseVersion(version)
	if err != nil {
		return "", err
	}
	return v.Bump(bt).String(), nil
}

// CompareVersions returns -1, 0 or 1 as a is lower than, equal to or higher
// than b, comparing major, minor and patch in turn.
func CompareVersions(a, b string) (int, error) {
	va, err := ParseVersion(a)
	if err != nil {
		return 0, err
	}
	vb, err := ParseVersion(b)
	if err != nil {
		return 0, err
	}
	return semver.Compare("v"+va.String(), "v"+vb.String()), nil
}
