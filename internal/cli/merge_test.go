package cli

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ariel-frischer/iconlog/internal/manifest"
	"github.com/ariel-frischer/iconlog/internal/testutil"
)

func TestMergeCmd_Stdout(t *testing.T) {
	env := newCLIEnv(t)
	older := env.writeManifest(t, "older.json", previousManifest())

	newer := testutil.Manifest("1.1.0", testutil.Icon("IconC", 32), testutil.Icon("IconD", 24))
	newerPath := env.writeManifest(t, "newer.json", newer)

	stdout, _, err := env.run(t, "", "merge", older, newerPath)
	require.NoError(t, err)

	merged, err := manifest.ParseStrict([]byte(stdout))
	require.NoError(t, err)
	assert.Equal(t, "1.1.0", merged.Version)
	assert.Equal(t, 4, merged.TotalCount)
	assert.ElementsMatch(t, []string{"IconA", "IconB", "IconC", "IconD"}, merged.Names())

	idx := manifest.NewIndex(merged.Icons)
	c, ok := idx.Get("IconC")
	require.True(t, ok)
	assert.Equal(t, 32, c.Width, "newer icon wins")
}

func TestMergeCmd_OutputFile(t *testing.T) {
	env := newCLIEnv(t)
	older := env.writeManifest(t, "older.json", previousManifest())
	newer := env.writeManifest(t, "newer.json", additiveManifest())
	out := filepath.Join(env.dir, "dist", "icons.json")

	stdout, stderr, err := env.run(t, "", "merge", older, newer, "-o", out)
	require.NoError(t, err)

	assert.Empty(t, stdout)
	assert.Contains(t, stderr, "Wrote "+out)

	merged, err := manifest.ParseStrict([]byte(readFile(t, out)))
	require.NoError(t, err)
	assert.Len(t, merged.Icons, 4)
}

func TestMergeCmd_MissingInput(t *testing.T) {
	env := newCLIEnv(t)
	older := env.writeManifest(t, "older.json", previousManifest())

	_, _, err := env.run(t, "", "merge", older, filepath.Join(env.dir, "missing.json"))
	require.Error(t, err)
	assert.Equal(t, ExitValidationFailed, exitCodeFor(err))
	assert.Contains(t, err.Error(), "manifest not found")
}
