package cli

import (
	"bytes"
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ariel-frischer/iconlog/internal/config"
	"github.com/ariel-frischer/iconlog/internal/manifest"
)

func TestReleaseVersion(t *testing.T) {
	withVersion := func(v string) *manifest.Manifest {
		m := breakingManifest()
		m.Version = v
		return m
	}

	tests := map[string]struct {
		flags    versionFlags
		pair     *manifestPair
		wantNext string
		wantBase string
		wantErr  bool
	}{
		"bump from previous": {
			pair:     &manifestPair{Current: breakingManifest(), Previous: previousManifest()},
			wantNext: "2.0.0",
			wantBase: "1.0.0",
		},
		"current flag overrides previous": {
			flags:    versionFlags{Current: "v4.1.2"},
			pair:     &manifestPair{Current: breakingManifest(), Previous: previousManifest()},
			wantNext: "5.0.0",
			wantBase: "4.1.2",
		},
		"explicit version wins": {
			flags:    versionFlags{Version: "v9.0.0"},
			pair:     &manifestPair{Current: breakingManifest(), Previous: previousManifest()},
			wantNext: "9.0.0",
			wantBase: "1.0.0",
		},
		"first release uses manifest version": {
			pair:     &manifestPair{Current: withVersion("0.3.0")},
			wantNext: "0.3.0",
		},
		"first release with unparseable version": {
			pair:    &manifestPair{Current: withVersion("latest")},
			wantErr: true,
		},
		"invalid explicit version": {
			flags:   versionFlags{Version: "next"},
			pair:    &manifestPair{Current: breakingManifest(), Previous: previousManifest()},
			wantErr: true,
		},
		"current flag conflicts with from-tag": {
			flags:   versionFlags{Current: "1.0.0", FromTag: true},
			pair:    &manifestPair{Current: breakingManifest(), Previous: previousManifest()},
			wantErr: true,
		},
		"invalid previous version": {
			pair:    &manifestPair{Current: breakingManifest(), Previous: withVersion("1.0")},
			wantErr: true,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			next, base, suggestion, err := releaseVersion(tt.flags, tt.pair, tt.pair.Diff())
			if tt.wantErr {
				require.Error(t, err)
				assert.Equal(t, ExitInvalidArguments, exitCodeFor(err))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantNext, next)
			assert.Equal(t, tt.wantBase, base)
			assert.NotEmpty(t, suggestion.Reason)
		})
	}
}

func TestLoadManifestPair(t *testing.T) {
	env := newCLIEnv(t)
	current := env.writeManifest(t, "icons.json", breakingManifest())
	previous := env.writeManifest(t, "previous.json", previousManifest())

	cfg, err := config.LoadWithOptions(config.LoadOptions{ProjectConfigPath: env.configPath, SkipWarnings: true})
	require.NoError(t, err)

	pair, err := loadManifestPair(cfg, nil, "")
	require.NoError(t, err)
	assert.Equal(t, current, pair.CurrentPath)
	assert.Nil(t, pair.Previous)
	assert.Empty(t, pair.PreviousSource)
	assert.Len(t, pair.Diff().Added, 3)

	pair, err = loadManifestPair(cfg, []string{current, previous}, "")
	require.NoError(t, err)
	require.NotNil(t, pair.Previous)
	assert.Equal(t, previous, pair.PreviousSource)
	assert.True(t, pair.Diff().HasBreakingChanges())
}

func TestLoadManifestPair_ReportsFirstFailure(t *testing.T) {
	env := newCLIEnv(t)
	current := env.writeManifest(t, "icons.json", breakingManifest())

	cfg, err := config.LoadWithOptions(config.LoadOptions{ProjectConfigPath: env.configPath, SkipWarnings: true})
	require.NoError(t, err)

	_, err = loadManifestPair(cfg, []string{current, filepath.Join(env.dir, "gone.json")}, "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "gone.json")
}

func TestNewLogger(t *testing.T) {
	tests := map[string]struct {
		level     string
		debug     bool
		wantDebug bool
		wantWarn  bool
	}{
		"default warn":     {level: "warn", wantWarn: true},
		"debug level":      {level: "debug", wantDebug: true, wantWarn: true},
		"debug flag wins":  {level: "error", debug: true, wantDebug: true, wantWarn: true},
		"error hides warn": {level: "error"},
		"unknown is warn":  {level: "chatty", wantWarn: true},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			var buf bytes.Buffer
			logger := newLogger(&buf, tt.level, tt.debug)

			logger.Debug("debug line")
			logger.Warn("warn line")

			assert.Equal(t, tt.wantDebug, bytes.Contains(buf.Bytes(), []byte("debug line")))
			assert.Equal(t, tt.wantWarn, bytes.Contains(buf.Bytes(), []byte("warn line")))
		})
	}

	assert.Equal(t, slog.LevelInfo, parseLevel("info"))
}
