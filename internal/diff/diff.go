// Package diff computes what changed between two icon manifests.
//
// Icons are matched by normalized name. The result partitions the names into
// added, modified and removed; unchanged icons are not reported.
package diff

import (
	"fmt"

	"github.com/ariel-frischer/iconlog/internal/manifest"
)

// Diff is the added/modified/removed partition between two manifests.
// A normalized name appears in at most one of the three lists.
type Diff struct {
	Added    []manifest.IconMetadata `json:"added" yaml:"added"`
	Modified []manifest.IconMetadata `json:"modified" yaml:"modified"`
	Removed  []manifest.IconMetadata `json:"removed" yaml:"removed"`
}

// Compute compares current against previous. A nil manifest is treated as
// empty, so a missing previous snapshot reports every icon as added.
//
// Each side is indexed by normalized name; when a manifest repeats a name the
// last icon with that name is the one compared. Added and modified icons
// follow current's order, removed icons follow previous's order.
func Compute(current, previous *manifest.Manifest) Diff {
	if current == nil {
		current = manifest.Empty()
	}
	if previous == nil {
		previous = manifest.Empty()
	}

	currentIndex := manifest.NewIndex(current.Icons)
	previousIndex := manifest.NewIndex(previous.Icons)

	d := Diff{
		Added:    []manifest.IconMetadata{},
		Modified: []manifest.IconMetadata{},
		Removed:  []manifest.IconMetadata{},
	}

	currentIndex.Each(func(icon manifest.IconMetadata) {
		prev, ok := previousIndex.Get(icon.NormalizedName)
		switch {
		case !ok:
			d.Added = append(d.Added, icon)
		case HasIconChanged(icon, prev):
			d.Modified = append(d.Modified, icon)
		}
	})

	previousIndex.Each(func(icon manifest.IconMetadata) {
		if !currentIndex.Has(icon.NormalizedName) {
			d.Removed = append(d.Removed, icon)
		}
	})

	return d
}

// HasIconChanged reports whether a and b differ visually. When both carry a
// visual payload the payloads decide; otherwise the dimensions do.
func HasIconChanged(a, b manifest.IconMetadata) bool {
	if a.HasPayload() && b.HasPayload() {
		return a.VisualPayload != b.VisualPayload
	}
	return a.Width != b.Width || a.Height != b.Height
}

// IsEmpty returns true if nothing was added, modified or removed.
func (d Diff) IsEmpty() bool {
	return len(d.Added) == 0 && len(d.Modified) == 0 && len(d.Removed) == 0
}

// Count returns the total number of changed icons.
func (d Diff) Count() int {
	return len(d.Added) + len(d.Modified) + len(d.Removed)
}

// HasBreakingChanges returns true if any icon was removed.
func (d Diff) HasBreakingChanges() bool {
	return len(d.Removed) > 0
}

// AddedNames returns the normalized names of added icons.
func (d Diff) AddedNames() []string {
	return names(d.Added)
}

// ModifiedNames returns the normalized names of modified icons.
func (d Diff) ModifiedNames() []string {
	return names(d.Modified)
}

// RemovedNames returns the normalized names of removed icons.
func (d Diff) RemovedNames() []string {
	return names(d.Removed)
}

// Summary returns a one-line description such as "2 added, 1 modified, 0 removed".
func (d Diff) Summary() string {
	return fmt.Sprintf("%d added, %d modified, %d removed", len(d.Added), len(d.Modified), len(d.Removed))
}

func names(icons []manifest.IconMetadata) []string {
	out := make([]string, len(icons))
	for i, icon := range icons {
		out[i] = icon.NormalizedName
	}
	return out
}
