// Package advisor maps an icon diff to a semantic version bump and provides
// helpers for parsing, incrementing and comparing major.minor.patch versions.
package advisor

import (
	"fmt"
	"strings"

	"github.com/ariel-frischer/iconlog/internal/diff"
)

// BumpType is a semantic version increment category.
type BumpType string

const (
	Major BumpType = "major"
	Minor BumpType = "minor"
	Patch BumpType = "patch"
)

// ParseBumpType converts a user supplied string to a BumpType.
func ParseBumpType(s string) (BumpType, error) {
	switch BumpType(strings.ToLower(strings.TrimSpace(s))) {
	case Major:
		return Major, nil
	case Minor:
		return Minor, nil
	case Patch:
		return Patch, nil
	default:
		return "", fmt.Errorf("invalid bump type %q (expected: major, minor or patch)", s)
	}
}

// Suggestion is the recommended bump for a diff with a human readable reason.
type Suggestion struct {
	BumpType BumpType `json:"bumpType" yaml:"bumpType"`
	Reason   string   `json:"reason" yaml:"reason"`
}

// SuggestVersionBump recommends a bump for d. Removals always require a major
// bump, additions a minor one, and modifications alone a patch.
// An empty diff yields a patch with "No changes detected".
func SuggestVersionBump(d diff.Diff) Suggestion {
	removed, added, modified := len(d.Removed), len(d.Added), len(d.Modified)

	switch {
	case removed > 0:
		return Suggestion{
			BumpType: Major,
			Reason:   fmt.Sprintf("%s removed (breaking change)", iconCount(removed)),
		}
	case added > 0:
		reason := fmt.Sprintf("%s added", iconCount(added))
		if modified > 0 {
			reason += fmt.Sprintf(", %s modified", iconCount(modified))
		}
		return Suggestion{BumpType: Minor, Reason: reason}
	case modified > 0:
		return Suggestion{
			BumpType: Patch,
			Reason:   fmt.Sprintf("%s modified", iconCount(modified)),
		}
	default:
		return Suggestion{BumpType: Patch, Reason: "No changes detected"}
	}
}

// SuggestNewVersion applies the suggested bump for d to current.
func SuggestNewVersion(current string, d diff.Diff) (string, Suggestion, error) {
	suggestion := SuggestVersionBump(d)
	next, err := IncrementVersion(current, suggestion.BumpType)
	if err != nil {
		return "", suggestion, err
	}
	return next, suggestion, nil
}

func iconCount(n int) string {
	if n == 1 {
		return "1 icon"
	}
	return fmt.Sprintf("%d icons", n)
}
