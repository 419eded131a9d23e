package manifest

// Merge combines two manifests for migration. Icons from newer take precedence
// by normalized name; icons only present in older are appended after them in
// their original order. Version and GeneratedAt come from newer and TotalCount
// is recomputed. A nil argument behaves like an empty manifest.
func Merge(older, newer *Manifest) *Manifest {
	if older == nil {
		older = Empty()
	}
	if newer == nil {
		newer = Empty()
	}

	icons := make([]IconMetadata, 0, len(newer.Icons)+len(older.Icons))
	icons = append(icons, newer.Icons...)

	newIndex := NewIndex(newer.Icons)
	for _, icon := range older.Icons {
		if !newIndex.Has(icon.NormalizedName) {
			icons = append(icons, icon)
		}
	}

	return &Manifest{
		Version:     newer.Version,
		GeneratedAt: newer.GeneratedAt,
		TotalCount:  len(icons),
		Icons:       icons,
	}
}
