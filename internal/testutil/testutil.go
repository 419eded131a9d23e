// Package testutil provides fixtures shared by iconlog tests: icon and
// manifest builders, and throwaway git repositories.
package testutil

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/ariel-frischer/iconlog/internal/manifest"
)

// FixtureTime is the generation timestamp of manifests built by Manifest.
var FixtureTime = time.Date(2024, 1, 15, 10, 0, 0, 0, time.UTC)

// Icon returns a square icon whose identity is name.
func Icon(name string, size int) manifest.IconMetadata {
	return manifest.IconMetadata{
		ID:             strings.ToLower(name),
		Name:           strings.ToLower(name),
		OriginalName:   name + ".svg",
		NormalizedName: name,
		Width:          size,
		Height:         size,
	}
}

// IconWithPayload returns Icon(name, size) carrying payload as its artwork.
func IconWithPayload(name string, size int, payload string) manifest.IconMetadata {
	icon := Icon(name, size)
	icon.VisualPayload = payload
	return icon
}

// Manifest builds a manifest at version generated at FixtureTime.
func Manifest(version string, icons ...manifest.IconMetadata) *manifest.Manifest {
	return manifest.New(version, FixtureTime, icons)
}

// WriteManifest serializes m to path, creating parent directories. The file
// is written to a temporary name and renamed so watchers never see a partial write.
func WriteManifest(t *testing.T, path string, m *manifest.Manifest) {
	t.Helper()
	data, err := manifest.Serialize(m, true)
	require.NoError(t, err)
	WriteFile(t, path, string(data))
}

// WriteFile writes content to path atomically, creating parent directories.
func WriteFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))

	tmp := path + ".tmp"
	require.NoError(t, os.WriteFile(tmp, []byte(content), 0o644))
	require.NoError(t, os.Rename(tmp, path))
}
