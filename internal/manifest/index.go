package manifest

// Index maps normalized names to icons while remembering the order in which
// names were first seen. When a name occurs more than once the last icon wins;
// the collapsed names are kept so callers can report them.
type Index struct {
	keys       []string
	byName     map[string]IconMetadata
	duplicates []string
}

// NewIndex builds an index over icons.
func NewIndex(icons []IconMetadata) *Index {
	idx := &Index{
		keys:   make([]string, 0, len(icons)),
		byName: make(map[string]IconMetadata, len(icons)),
	}

	seenDup := make(map[string]bool)
	for _, icon := range icons {
		key := icon.NormalizedName
		if _, exists := idx.byName[key]; exists {
			if !seenDup[key] {
				idx.duplicates = append(idx.duplicates, key)
				seenDup[key] = true
			}
		} else {
			idx.keys = append(idx.keys, key)
		}
		idx.byName[key] = icon
	}

	return idx
}

// Get returns the icon stored under name.
func (idx *Index) Get(name string) (IconMetadata, bool) {
	icon, ok := idx.byName[name]
	return icon, ok
}

// Has reports whether name is present.
func (idx *Index) Has(name string) bool {
	_, ok := idx.byName[name]
	return ok
}

// Len returns the number of distinct names.
func (idx *Index) Len() int {
	return len(idx.keys)
}

// Keys returns the distinct names in first-occurrence order.
func (idx *Index) Keys() []string {
	out := make([]string, len(idx.keys))
	copy(out, idx.keys)
	return out
}

// Each calls fn for every distinct name in first-occurrence order with the
// winning (last) icon for that name.
func (idx *Index) Each(fn func(icon IconMetadata)) {
	for _, key := range idx.keys {
		fn(idx.byName[key])
	}
}

// Duplicates returns the names that occurred more than once.
func (idx *Index) Duplicates() []string {
	out := make([]string, len(idx.duplicates))
	copy(out, idx.duplicates)
	return out
}

// DuplicateNames returns normalized names that appear more than once in m.
func DuplicateNames(m *Manifest) []string {
	if m == nil {
		return nil
	}
	return NewIndex(m.Icons).Duplicates()
}
