package changelog

import (
	"fmt"
	"sort"
	"testing"
	"time"

	"github.com/ariel-frischer/iconlog/internal/diff"
	"github.com/ariel-frischer/iconlog/internal/manifest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseEntry(t *testing.T) {
	tests := map[string]struct {
		markdown string
		expected *Entry
	}{
		"full entry": {
			markdown: `## [1.3.0] - 2024-01-15

Settings refresh

### Added
- IconClose

### Modified
- IconCheck
- IconGear

### Removed
- None
`,
			expected: &Entry{
				Version: "1.3.0",
				Date:    "2024-01-15",
				Message: "Settings refresh",
				Changes: Changes{
					Added:    []string{"IconClose"},
					Modified: []string{"IconCheck", "IconGear"},
					Removed:  []string{},
				},
			},
		},
		"no message": {
			markdown: "## [1.0.0] - 2024-01-01\n\n### Added\n- IconA\n",
			expected: &Entry{
				Version: "1.0.0",
				Date:    "2024-01-01",
				Changes: Changes{Added: []string{"IconA"}, Modified: []string{}, Removed: []string{}},
			},
		},
		"missing sections parse as empty": {
			markdown: "## [1.0.0] - 2024-01-01\n\nJust a note\n",
			expected: &Entry{
				Version: "1.0.0",
				Date:    "2024-01-01",
				Message: "Just a note",
				Changes: Changes{Added: []string{}, Modified: []string{}, Removed: []string{}},
			},
		},
		"preamble before header and CRLF": {
			markdown: "# Changelog\r\n\r\n## [2.0.0] - 2024-02-02\r\n\r\nBig one\r\n\r\n### Removed\r\n- IconOld\r\n",
			expected: &Entry{
				Version: "2.0.0",
				Date:    "2024-02-02",
				Message: "Big one",
				Changes: Changes{Added: []string{}, Modified: []string{}, Removed: []string{"IconOld"}},
			},
		},
		"stops at next version": {
			markdown: "## [1.1.0] - 2024-01-02\n\n### Added\n- IconNew\n\n## [1.0.0] - 2024-01-01\n\n### Added\n- IconOld\n",
			expected: &Entry{
				Version: "1.1.0",
				Date:    "2024-01-02",
				Changes: Changes{Added: []string{"IconNew"}, Modified: []string{}, Removed: []string{}},
			},
		},
		"unknown section ignored": {
			markdown: "## [1.0.0] - 2024-01-01\n\n### Notes\n- not an icon\n\n### Added\n- IconA\n",
			expected: &Entry{
				Version: "1.0.0",
				Date:    "2024-01-01",
				Changes: Changes{Added: []string{"IconA"}, Modified: []string{}, Removed: []string{}},
			},
		},
		"v prefixed version kept": {
			markdown: "## [v3.0.0] - 2025-12-31\n",
			expected: &Entry{
				Version: "v3.0.0",
				Date:    "2025-12-31",
				Changes: Changes{Added: []string{}, Modified: []string{}, Removed: []string{}},
			},
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			got := ParseEntry(tt.markdown)
			require.NotNil(t, got)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestParseEntry_NoHeader(t *testing.T) {
	inputs := map[string]string{
		"empty":              "",
		"title only":         "# Changelog\n\nNothing yet.\n",
		"unreleased heading": "## [Unreleased]\n\n### Added\n- IconA\n",
		"bad date":           "## [1.0.0] - January 1st\n",
		"level three":        "### [1.0.0] - 2024-01-01\n",
	}

	for name, input := range inputs {
		t.Run(name, func(t *testing.T) {
			assert.Nil(t, ParseEntry(input))
		})
	}
}

func TestParseDocument(t *testing.T) {
	doc := `# Changelog

Intro text.

## [Unreleased]

### Added
- Pending

## [1.1.0] - 2024-01-02

Second

### Added
- IconB

### Modified
- None

### Removed
- None

## [1.0.0] - 2024-01-01

First

### Added
- IconA
`

	entries := ParseDocument(doc)
	require.Len(t, entries, 2)
	assert.Equal(t, "1.1.0", entries[0].Version)
	assert.Equal(t, "Second", entries[0].Message)
	assert.Equal(t, []string{"IconB"}, entries[0].Changes.Added)
	assert.Equal(t, "1.0.0", entries[1].Version)
	assert.Equal(t, []string{"IconA"}, entries[1].Changes.Added)

	assert.Empty(t, ParseDocument("# Changelog\n"))
}

func TestParseDocument_MessageHeadings(t *testing.T) {
	doc := `# Changelog

## [1.1.0] - 2024-01-15

## Highlights
New close icon

### Added
- IconClose

## [1.0.0] - 2024-01-01

### Added
- IconA
`

	entries := ParseDocument(doc)
	require.Len(t, entries, 2)
	assert.Equal(t, "## Highlights\nNew close icon", entries[0].Message)
	assert.Equal(t, []string{"IconClose"}, entries[0].Changes.Added)
	assert.Equal(t, []string{"IconA"}, entries[1].Changes.Added)
}

func TestRoundTrip(t *testing.T) {
	build := func(names ...string) *manifest.Manifest {
		m := &manifest.Manifest{Version: "1", GeneratedAt: "x"}
		for i, n := range names {
			m.Icons = append(m.Icons, manifest.IconMetadata{
				ID: n, Name: n, OriginalName: n, NormalizedName: n, Width: 24, Height: 24 + i%2,
			})
		}
		return m
	}

	cases := map[string]struct {
		current, previous *manifest.Manifest
		opts              Options
	}{
		"empty diff": {
			current:  build("IconA"),
			previous: build("IconA"),
			opts:     Options{Version: "1.0.1", Message: "No-op", Date: RawDate("2024-01-15")},
		},
		"mixed changes": {
			current:  build("IconA", "IconC", "IconD"),
			previous: build("IconB", "IconD", "IconA"),
			opts:     Options{Version: "2.0.0", Message: "Mixed\n\n", Date: ParsedDate(time.Date(2024, 5, 6, 7, 8, 9, 0, time.UTC))},
		},
		"everything added": {
			current:  build("IconA", "IconB", "IconC"),
			previous: nil,
			opts:     Options{Version: "v0.1.0", Date: RawDate("2024-12-31T23:00:00Z")},
		},
		"everything removed": {
			current:  nil,
			previous: build("IconA", "IconB"),
			opts:     Options{Version: "3.0.0", Message: "  Cleanup  ", Date: RawDate("Jan 2, 2024")},
		},
		"message with level-two heading": {
			current:  build("IconArrowRight", "IconClose", "IconCheck"),
			previous: build("IconArrowRight", "IconCheck", "IconOld"),
			opts:     Options{Version: "1.1.0", Message: "## Highlights\nNew close icon", Date: RawDate("2024-01-15")},
		},
	}

	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			d := diff.Compute(tc.current, tc.previous)
			entry := CreateEntry(d, tc.opts)

			parsed := ParseEntry(GenerateMarkdown(entry))
			require.NotNil(t, parsed)

			assert.Equal(t, entry.Version, parsed.Version)
			assert.Equal(t, entry.Date, parsed.Date)
			assert.Equal(t, entry.Message, parsed.Message)
			assert.ElementsMatch(t, d.AddedNames(), parsed.Changes.Added)
			assert.ElementsMatch(t, d.ModifiedNames(), parsed.Changes.Modified)
			assert.ElementsMatch(t, d.RemovedNames(), parsed.Changes.Removed)
		})
	}
}

func TestRoundTrip_ManyNames(t *testing.T) {
	var names []string
	for i := 0; i < 200; i++ {
		names = append(names, fmt.Sprintf("Icon%03d", i))
	}
	entry := Entry{Version: "9.9.9", Date: "2030-01-01", Changes: Changes{Added: names}}

	parsed := ParseEntry(GenerateMarkdown(entry))
	require.NotNil(t, parsed)
	got := append([]string(nil), parsed.Changes.Added...)
	sort.Strings(got)
	assert.Equal(t, names, got)
}

func TestValidate(t *testing.T) {
	valid := func() *Entry {
		return &Entry{
			Version: "1.0.0",
			Date:    "2024-01-01",
			Changes: Changes{Added: []string{"IconA"}, Removed: []string{"IconB"}},
		}
	}

	tests := map[string]struct {
		mutate    func(e *Entry)
		wantField string
	}{
		"valid":             {mutate: func(e *Entry) {}},
		"v prefix accepted": {mutate: func(e *Entry) { e.Version = "v1.0.0" }},
		"prerelease":        {mutate: func(e *Entry) { e.Version = "1.0.0-rc.1" }},
		"empty version":     {mutate: func(e *Entry) { e.Version = "" }, wantField: "version"},
		"bad version":       {mutate: func(e *Entry) { e.Version = "1.0" }, wantField: "version"},
		"bad date":          {mutate: func(e *Entry) { e.Date = "01/01/2024" }, wantField: "date"},
		"blank name":        {mutate: func(e *Entry) { e.Changes.Added = []string{" "} }, wantField: "changes.added[0]"},
		"name in two lists": {mutate: func(e *Entry) { e.Changes.Modified = []string{"IconA"} }, wantField: "changes.modified[0]"},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			e := valid()
			tt.mutate(e)
			err := Validate(e)
			if tt.wantField == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.True(t, IsValidationError(err))
			var ve *ValidationError
			require.ErrorAs(t, err, &ve)
			assert.Equal(t, tt.wantField, ve.Field)
		})
	}
}

func TestNormalizeVersion(t *testing.T) {
	assert.Equal(t, "1.2.3", NormalizeVersion("v1.2.3"))
	assert.Equal(t, "1.2.3", NormalizeVersion(" V1.2.3 "))
	assert.Equal(t, "1.2.3", NormalizeVersion("1.2.3"))
}
