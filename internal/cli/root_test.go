package cli

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ariel-frischer/iconlog/internal/config"
	clierrors "github.com/ariel-frischer/iconlog/internal/errors"
	"github.com/ariel-frischer/iconlog/internal/manifest"
	"github.com/ariel-frischer/iconlog/internal/testutil"
)

// cliEnv is an isolated home directory with a project config pointing the
// manifest, changelog and state directory into it.
type cliEnv struct {
	dir           string
	configPath    string
	manifestPath  string
	changelogPath string
	stateDir      string
}

func newCLIEnv(t *testing.T) *cliEnv {
	t.Helper()

	dir := t.TempDir()
	t.Setenv("HOME", dir)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, ".config"))
	for _, kv := range os.Environ() {
		key, _, ok := strings.Cut(kv, "=")
		if ok && strings.HasPrefix(key, config.EnvPrefix) {
			t.Setenv(key, "")
			require.NoError(t, os.Unsetenv(key))
		}
	}

	env := &cliEnv{
		dir:           dir,
		configPath:    filepath.Join(dir, ".iconlog", "config.yml"),
		manifestPath:  filepath.Join(dir, "icons.json"),
		changelogPath: filepath.Join(dir, "CHANGELOG.md"),
		stateDir:      filepath.Join(dir, "state"),
	}
	env.writeFile(t, env.configPath, fmt.Sprintf(
		"manifest_path: %q\nchangelog_path: %q\nstate_dir: %q\nproject: acme-icons\n",
		env.manifestPath, env.changelogPath, env.stateDir,
	))
	return env
}

func (e *cliEnv) writeFile(t *testing.T, path, content string) {
	t.Helper()
	testutil.WriteFile(t, path, content)
}

// writeManifest writes a manifest named name in the env directory and returns its path.
func (e *cliEnv) writeManifest(t *testing.T, name string, m *manifest.Manifest) string {
	t.Helper()
	path := filepath.Join(e.dir, name)
	testutil.WriteManifest(t, path, m)
	return path
}

// run executes the root command with args plus the env's --config and --plain.
func (e *cliEnv) run(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()
	return executeCommand(t, stdin, append(args, "--config", e.configPath, "--plain")...)
}

// executeCommand runs rootCmd with fresh flag values and captured output.
func executeCommand(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()
	resetFlags(rootCmd)

	var stdout, stderr bytes.Buffer
	rootCmd.SetOut(&stdout)
	rootCmd.SetErr(&stderr)
	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetArgs(args)

	_, err := rootCmd.ExecuteC()
	return stdout.String(), stderr.String(), err
}

// resetFlags restores every flag in the tree to its default, since cobra
// commands are package-level and keep parsed values between executions.
func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, c := range cmd.Commands() {
		resetFlags(c)
	}
}

// previousManifest is the baseline used across command tests.
func previousManifest() *manifest.Manifest {
	return testutil.Manifest("1.0.0",
		testutil.Icon("IconA", 24), testutil.Icon("IconB", 24), testutil.Icon("IconC", 16),
	)
}

// breakingManifest removes IconB, resizes IconC and adds IconD.
func breakingManifest() *manifest.Manifest {
	return testutil.Manifest("1.0.0",
		testutil.Icon("IconA", 24), testutil.Icon("IconC", 24), testutil.Icon("IconD", 24),
	)
}

// additiveManifest adds IconD and keeps everything else.
func additiveManifest() *manifest.Manifest {
	return testutil.Manifest("1.0.0",
		testutil.Icon("IconA", 24), testutil.Icon("IconB", 24), testutil.Icon("IconC", 16), testutil.Icon("IconD", 24),
	)
}

func TestRootCmd_Structure(t *testing.T) {
	assert.Equal(t, "iconlog", rootCmd.Use)
	assert.True(t, rootCmd.SilenceUsage)
	assert.True(t, rootCmd.SilenceErrors)

	for _, name := range []string{"config", "plain", "debug"} {
		assert.NotNil(t, rootCmd.PersistentFlags().Lookup(name), "missing persistent flag --%s", name)
	}
}

func TestRootCmd_Subcommands(t *testing.T) {
	tests := map[string]struct {
		path  []string
		group string
	}{
		"diff":               {path: []string{"diff"}, group: GroupManifest},
		"suggest":            {path: []string{"suggest"}, group: GroupManifest},
		"validate":           {path: []string{"validate"}, group: GroupManifest},
		"merge":              {path: []string{"merge"}, group: GroupManifest},
		"watch":              {path: []string{"watch"}, group: GroupManifest},
		"release":            {path: []string{"release"}, group: GroupRelease},
		"history":            {path: []string{"history"}, group: GroupRelease},
		"changelog":          {path: []string{"changelog"}, group: GroupRelease},
		"changelog generate": {path: []string{"changelog", "generate"}},
		"changelog parse":    {path: []string{"changelog", "parse"}},
		"changelog show":     {path: []string{"changelog", "show"}},
		"changelog icon":     {path: []string{"changelog", "icon"}},
		"config":             {path: []string{"config"}, group: GroupConfiguration},
		"config show":        {path: []string{"config", "show"}},
		"config init":        {path: []string{"config", "init"}},
		"config set":         {path: []string{"config", "set"}},
		"version":            {path: []string{"version"}, group: GroupConfiguration},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			cmd, _, err := rootCmd.Find(tt.path)
			require.NoError(t, err)
			assert.Equal(t, tt.path[len(tt.path)-1], cmd.Name())
			if tt.group != "" {
				assert.Equal(t, tt.group, cmd.GroupID)
			}
		})
	}
}

func TestExitCodeFor(t *testing.T) {
	tests := map[string]struct {
		err  error
		want int
	}{
		"argument":      {err: clierrors.NewArgumentError("bad"), want: ExitInvalidArguments},
		"configuration": {err: clierrors.NewConfigError("bad"), want: ExitConfigError},
		"manifest":      {err: clierrors.NewManifestError("bad"), want: ExitValidationFailed},
		"runtime":       {err: clierrors.NewRuntimeError("bad"), want: ExitRuntimeError},
		"plain error":   {err: fmt.Errorf("boom"), want: ExitRuntimeError},
		"wrapped": {
			err:  fmt.Errorf("context: %w", clierrors.NewArgumentError("bad")),
			want: ExitInvalidArguments,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, tt.want, exitCodeFor(tt.err))
		})
	}
}

func TestExitError(t *testing.T) {
	err := NewExitError(ExitBreakingChange)

	var exitErr *ExitError
	require.ErrorAs(t, err, &exitErr)
	assert.Equal(t, 2, exitErr.Code)
	assert.Equal(t, "exit status 2", err.Error())
}

func TestArgsRange_ReportsArgumentError(t *testing.T) {
	env := newCLIEnv(t)

	_, _, err := env.run(t, "", "merge", "only-one.json")
	require.Error(t, err)

	cliErr := clierrors.AsCLIError(err)
	require.NotNil(t, cliErr)
	assert.Equal(t, clierrors.Argument, cliErr.Category)
	assert.Contains(t, cliErr.Usage, "merge <older> <newer>")
}

func TestUnknownFlag_ReportsArgumentError(t *testing.T) {
	env := newCLIEnv(t)

	_, _, err := env.run(t, "", "diff", "--no-such-flag")
	require.Error(t, err)
	assert.Equal(t, ExitInvalidArguments, exitCodeFor(err))
}

func TestLoadConfig_InvalidConfig(t *testing.T) {
	env := newCLIEnv(t)
	env.writeFile(t, env.configPath, "log_level: loud\n")

	_, _, err := env.run(t, "", "diff")
	require.Error(t, err)
	assert.Equal(t, ExitConfigError, exitCodeFor(err))
}
