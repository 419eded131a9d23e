package changelog

import (
	"fmt"
	"strings"
)

// Document is a parsed changelog: its entries, newest first as written.
type Document struct {
	Entries []Entry
}

// NewDocument parses every entry in text.
func NewDocument(text string) *Document {
	return &Document{Entries: ParseDocument(text)}
}

// VersionNotFoundError is returned when a requested version doesn't exist.
type VersionNotFoundError struct {
	Version           string
	AvailableVersions []string
}

func (e *VersionNotFoundError) Error() string {
	if len(e.AvailableVersions) == 0 {
		return fmt.Sprintf("version %q not found (changelog has no entries)", e.Version)
	}
	return fmt.Sprintf("version %q not found (available: %s)",
		e.Version, strings.Join(e.AvailableVersions, ", "))
}

// GetVersion retrieves a specific version from the document.
// Accepts both "v1.2.0" and "1.2.0" formats.
func (d *Document) GetVersion(version string) (*Entry, error) {
	normalized := NormalizeVersion(version)

	for i := range d.Entries {
		if NormalizeVersion(d.Entries[i].Version) == normalized {
			return &d.Entries[i], nil
		}
	}

	return nil, &VersionNotFoundError{
		Version:           version,
		AvailableVersions: d.ListVersions(),
	}
}

// HasVersion reports whether version already has an entry.
func (d *Document) HasVersion(version string) bool {
	_, err := d.GetVersion(version)
	return err == nil
}

// ListVersions returns all version identifiers in document order.
func (d *Document) ListVersions() []string {
	versions := make([]string, len(d.Entries))
	for i, e := range d.Entries {
		versions[i] = e.Version
	}
	return versions
}

// Latest returns the first entry of the document, or nil if there is none.
func (d *Document) Latest() *Entry {
	if len(d.Entries) == 0 {
		return nil
	}
	return &d.Entries[0]
}

// GetLastN returns the first n entries. If n exceeds the number of entries,
// all entries are returned.
func (d *Document) GetLastN(n int) []Entry {
	if n <= 0 {
		return []Entry{}
	}
	if len(d.Entries) <= n {
		return d.Entries
	}
	return d.Entries[:n]
}

// NameHistory returns, newest first, every entry that mentions name together
// with the category it appeared under.
func (d *Document) NameHistory(name string) []NameEvent {
	var events []NameEvent
	for _, e := range d.Entries {
		for _, category := range ValidCategories() {
			for _, n := range e.Changes.ByCategory(category) {
				if n == name {
					events = append(events, NameEvent{Version: e.Version, Date: e.Date, Category: category})
				}
			}
		}
	}
	return events
}

// NameEvent records that an icon appeared in a release under a category.
type NameEvent struct {
	Version  string `json:"version" yaml:"version"`
	Date     string `json:"date" yaml:"date"`
	Category string `json:"category" yaml:"category"`
}
