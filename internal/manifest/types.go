package manifest

import "time"

// GeneratedAtLayout is the timestamp layout used for Manifest.GeneratedAt
// when a manifest is built with New.
const GeneratedAtLayout = "2006-01-02T15:04:05.000Z"

// IconMetadata describes one visual asset at one version.
// NormalizedName is the identity key used to match icons across manifests.
// VisualPayload is optional raw graphic content; an empty string means absent.
type IconMetadata struct {
	ID             string `json:"id" yaml:"id" validate:"required"`
	Name           string `json:"name" yaml:"name" validate:"required"`
	OriginalName   string `json:"originalName" yaml:"originalName" validate:"required"`
	NormalizedName string `json:"normalizedName" yaml:"normalizedName" validate:"required"`
	Width          int    `json:"width" yaml:"width" validate:"gt=0"`
	Height         int    `json:"height" yaml:"height" validate:"gt=0"`
	VisualPayload  string `json:"visualPayload,omitempty" yaml:"visualPayload,omitempty"`
}

// HasPayload reports whether the icon carries visual payload content.
func (i IconMetadata) HasPayload() bool {
	return i.VisualPayload != ""
}

// Manifest is an immutable snapshot of the icon catalogue.
// TotalCount is expected to equal len(Icons); icon order carries no meaning.
type Manifest struct {
	Version     string         `json:"version" yaml:"version" validate:"required"`
	GeneratedAt string         `json:"generatedAt" yaml:"generatedAt" validate:"required"`
	TotalCount  int            `json:"totalCount" yaml:"totalCount"`
	Icons       []IconMetadata `json:"icons" yaml:"icons" validate:"dive"`
}

// New builds a manifest with TotalCount computed from icons and GeneratedAt
// formatted in UTC with millisecond precision.
func New(version string, generatedAt time.Time, icons []IconMetadata) *Manifest {
	if icons == nil {
		icons = []IconMetadata{}
	}
	return &Manifest{
		Version:     version,
		GeneratedAt: generatedAt.UTC().Format(GeneratedAtLayout),
		TotalCount:  len(icons),
		Icons:       icons,
	}
}

// Empty returns a manifest with no icons. It is what the diff engine
// compares against when there is no previous snapshot.
func Empty() *Manifest {
	return &Manifest{Icons: []IconMetadata{}}
}

// Names returns the normalized names of all icons in manifest order.
func (m *Manifest) Names() []string {
	if m == nil {
		return nil
	}
	names := make([]string, len(m.Icons))
	for i, icon := range m.Icons {
		names[i] = icon.NormalizedName
	}
	return names
}

// CountMatches reports whether TotalCount agrees with the icon list.
func (m *Manifest) CountMatches() bool {
	return m != nil && m.TotalCount == len(m.Icons)
}
