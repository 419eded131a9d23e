package cli

import (
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/ariel-frischer/iconlog/internal/changelog"
)

const generatedEntry = `## [2.0.0] - 2024-01-15

Settings refresh

### Added
- IconD

### Modified
- IconC

### Removed
- IconB
`

func TestChangelogGenerateCmd(t *testing.T) {
	tests := map[string]struct {
		extra []string
		want  string
	}{
		"suggested version": {
			extra: []string{"--date", "2024-01-15", "-m", "Settings refresh"},
			want:  generatedEntry,
		},
		"explicit version": {
			extra: []string{"--date", "2024-01-15", "-m", "Settings refresh", "--version", "v5.0.0"},
			want:  strings.Replace(generatedEntry, "[2.0.0]", "[5.0.0]", 1),
		},
		"notes only": {
			extra: []string{"--notes", "--date", "2024-01-15"},
			want:  "### Added\n- IconD\n\n### Modified\n- IconC\n\n### Removed\n- IconB\n",
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			env := newCLIEnv(t)
			current := env.writeManifest(t, "current.json", breakingManifest())
			previous := env.writeManifest(t, "previous.json", previousManifest())

			args := append([]string{"changelog", "generate", current, previous}, tt.extra...)
			stdout, _, err := env.run(t, "", args...)
			require.NoError(t, err)
			assert.Equal(t, tt.want, stdout)
		})
	}
}

func TestChangelogGenerateCmd_InvalidDateWarns(t *testing.T) {
	env := newCLIEnv(t)
	current := env.writeManifest(t, "current.json", additiveManifest())
	previous := env.writeManifest(t, "previous.json", previousManifest())

	stdout, stderr, err := env.run(t, "", "changelog", "generate", current, previous, "--date", "someday")
	require.NoError(t, err)

	assert.Contains(t, stdout, "## [1.1.0] - someday\n")
	assert.Contains(t, stderr, "Warning:")
	assert.Contains(t, stderr, "date")
}

func TestChangelogParseCmd_Stdin(t *testing.T) {
	env := newCLIEnv(t)

	stdout, _, err := env.run(t, generatedEntry, "changelog", "parse")
	require.NoError(t, err)

	var entry changelog.Entry
	require.NoError(t, json.Unmarshal([]byte(stdout), &entry))
	assert.Equal(t, changelog.Entry{
		Version: "2.0.0",
		Date:    "2024-01-15",
		Message: "Settings refresh",
		Changes: changelog.Changes{
			Added:    []string{"IconD"},
			Modified: []string{"IconC"},
			Removed:  []string{"IconB"},
		},
	}, entry)
}

func TestChangelogParseCmd_AllYAML(t *testing.T) {
	env := newCLIEnv(t)
	env.writeFile(t, env.changelogPath, sampleChangelog())

	stdout, _, err := env.run(t, "", "changelog", "parse", env.changelogPath, "--all", "-f", "yaml")
	require.NoError(t, err)

	var entries []changelog.Entry
	require.NoError(t, yaml.Unmarshal([]byte(stdout), &entries))
	require.Len(t, entries, 3)
	assert.Equal(t, "2.0.0", entries[0].Version)
	assert.Equal(t, "1.0.0", entries[2].Version)
	assert.Equal(t, []string{"IconB"}, entries[0].Changes.Removed)
}

func TestChangelogParseCmd_NoEntry(t *testing.T) {
	env := newCLIEnv(t)

	_, stderr, err := env.run(t, "# Changelog\n\nNothing yet.\n", "changelog", "parse")

	var exitErr *ExitError
	require.ErrorAs(t, err, &exitErr)
	assert.Equal(t, ExitValidationFailed, exitErr.Code)
	assert.Contains(t, stderr, "No changelog entry found")
}

func TestChangelogParseCmd_MissingFile(t *testing.T) {
	env := newCLIEnv(t)

	_, _, err := env.run(t, "", "changelog", "parse", env.changelogPath)
	require.Error(t, err)
	assert.Contains(t, err.Error(), env.changelogPath)
}

// sampleChangelog is a three-release changelog for IconA and IconB.
func sampleChangelog() string {
	text := changelog.DocumentHeader("acme-icons")
	text = changelog.PrependToChangelog(text, changelog.GenerateMarkdown(changelog.Entry{
		Version: "1.0.0", Date: "2024-01-01", Message: "Initial",
		Changes: changelog.Changes{Added: []string{"IconA", "IconB"}},
	}))
	text = changelog.PrependToChangelog(text, changelog.GenerateMarkdown(changelog.Entry{
		Version: "1.0.1", Date: "2024-01-10",
		Changes: changelog.Changes{Modified: []string{"IconA"}},
	}))
	return changelog.PrependToChangelog(text, changelog.GenerateMarkdown(changelog.Entry{
		Version: "2.0.0", Date: "2024-02-01", Message: "Drop B",
		Changes: changelog.Changes{Removed: []string{"IconB"}},
	}))
}

func TestChangelogShowCmd(t *testing.T) {
	tests := map[string]struct {
		args        []string
		contains    []string
		notContains []string
	}{
		"default shows all": {
			args:        []string{"changelog", "show"},
			contains:    []string{"## v2.0.0 (2024-02-01)", "## v1.0.1 (2024-01-10)", "## v1.0.0 (2024-01-01)"},
			notContains: []string{"entries shown"},
		},
		"last limits and hints": {
			args:        []string{"changelog", "show", "--last", "1"},
			contains:    []string{"## v2.0.0", "(1 of 3 entries shown. Use --last 3 to see all)"},
			notContains: []string{"## v1.0.1"},
		},
		"single version": {
			args:        []string{"changelog", "show", "v1.0.1"},
			contains:    []string{"## v1.0.1 (2024-01-10)", "### Modified\n  - IconA\n"},
			notContains: []string{"## v2.0.0"},
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			env := newCLIEnv(t)
			env.writeFile(t, env.changelogPath, sampleChangelog())

			stdout, _, err := env.run(t, "", tt.args...)
			require.NoError(t, err)

			for _, want := range tt.contains {
				assert.Contains(t, stdout, want)
			}
			for _, unwanted := range tt.notContains {
				assert.NotContains(t, stdout, unwanted)
			}
		})
	}
}

func TestChangelogShowCmd_UnknownVersion(t *testing.T) {
	env := newCLIEnv(t)
	env.writeFile(t, env.changelogPath, sampleChangelog())

	_, stderr, err := env.run(t, "", "changelog", "show", "9.9.9")

	var exitErr *ExitError
	require.ErrorAs(t, err, &exitErr)
	assert.Equal(t, ExitInvalidArguments, exitErr.Code)
	assert.Contains(t, stderr, `Version "9.9.9" not found.`)
	assert.Contains(t, stderr, "Available versions:\n  2.0.0\n  1.0.1\n  1.0.0\n")
}

func TestChangelogShowCmd_FileFlagAndEmpty(t *testing.T) {
	env := newCLIEnv(t)
	other := filepath.Join(env.dir, "OTHER.md")
	env.writeFile(t, other, changelog.DocumentHeader("other"))

	stdout, _, err := env.run(t, "", "changelog", "show", "--file", other)
	require.NoError(t, err)
	assert.Equal(t, "No changelog entries found.\n", stdout)
}

func TestChangelogShowCmd_NegativeLast(t *testing.T) {
	env := newCLIEnv(t)

	_, _, err := env.run(t, "", "changelog", "show", "--last=-1")
	require.Error(t, err)
	assert.Equal(t, ExitInvalidArguments, exitCodeFor(err))
}

func TestChangelogIconCmd(t *testing.T) {
	env := newCLIEnv(t)
	env.writeFile(t, env.changelogPath, sampleChangelog())

	stdout, _, err := env.run(t, "", "changelog", "icon", "IconB")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(stdout), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, []string{"2.0.0", "2024-02-01", "removed"}, strings.Fields(lines[0]))
	assert.Equal(t, []string{"1.0.0", "2024-01-01", "added"}, strings.Fields(lines[1]))

	stdout, _, err = env.run(t, "", "changelog", "icon", "IconZ")
	require.NoError(t, err)
	assert.Equal(t, "IconZ does not appear in the changelog.\n", stdout)
}
