package changelog

// Entry is one released version of the icon set.
// Date is formatted as YYYY-MM-DD.
type Entry struct {
	Version string  `json:"version" yaml:"version"`
	Date    string  `json:"date" yaml:"date"`
	Message string  `json:"message" yaml:"message"`
	Changes Changes `json:"changes" yaml:"changes"`
}

// Changes lists the normalized names touched by a release, grouped by category.
type Changes struct {
	Added    []string `json:"added" yaml:"added"`
	Modified []string `json:"modified" yaml:"modified"`
	Removed  []string `json:"removed" yaml:"removed"`
}

// Category names in rendering order.
const (
	CategoryAdded    = "added"
	CategoryModified = "modified"
	CategoryRemoved  = "removed"
)

// ValidCategories returns the categories in their rendering order.
func ValidCategories() []string {
	return []string{CategoryAdded, CategoryModified, CategoryRemoved}
}

// IsEmpty returns true if no category has entries.
func (c Changes) IsEmpty() bool {
	return len(c.Added) == 0 && len(c.Modified) == 0 && len(c.Removed) == 0
}

// Count returns the total number of names across all categories.
func (c Changes) Count() int {
	return len(c.Added) + len(c.Modified) + len(c.Removed)
}

// ByCategory returns the names recorded under category, or nil for an
// unknown category.
func (c Changes) ByCategory(category string) []string {
	switch category {
	case CategoryAdded:
		return c.Added
	case CategoryModified:
		return c.Modified
	case CategoryRemoved:
		return c.Removed
	default:
		return nil
	}
}

// section pairs a rendered heading with its names.
type section struct {
	category string
	title    string
	names    []string
}

// sections returns the categories of c in rendering order.
func (c Changes) sections() []section {
	return []section{
		{CategoryAdded, "Added", c.Added},
		{CategoryModified, "Modified", c.Modified},
		{CategoryRemoved, "Removed", c.Removed},
	}
}
