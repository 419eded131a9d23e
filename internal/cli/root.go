// Package cli implements the iconlog command tree with cobra. Commands are
// package-level values registered with rootCmd from their init functions.
package cli

import (
	"errors"
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/ariel-frischer/iconlog/internal/config"
	clierrors "github.com/ariel-frischer/iconlog/internal/errors"
)

// Command groups shown in help output.
const (
	GroupManifest      = "manifest"
	GroupRelease       = "release"
	GroupConfiguration = "configuration"
)

var rootCmd = &cobra.Command{
	Use:   "iconlog",
	Short: "Diff icon manifests, suggest versions and maintain an icon changelog",
	Long: `iconlog compares two snapshots of an icon set's manifest, tells you which
icons were added, modified or removed, recommends the semantic version bump
the change implies, and records it in a Markdown changelog.

Removing an icon is a breaking change (major), adding one is a feature
(minor), and changing an icon's size or artwork is a fix (patch).`,
	Example: `  # What changed since the last commit?
  iconlog diff icons.json --previous-ref HEAD

  # Compare two snapshots and suggest the next version
  iconlog suggest build/icons.json dist/icons.json

  # Record a release in CHANGELOG.md
  iconlog release icons.json --previous-ref v1.2.0 --message "Settings refresh"`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.AddGroup(
		&cobra.Group{ID: GroupManifest, Title: "Manifest Commands:"},
		&cobra.Group{ID: GroupRelease, Title: "Release Commands:"},
		&cobra.Group{ID: GroupConfiguration, Title: "Configuration Commands:"},
	)

	rootCmd.PersistentFlags().String("config", "", "Project config file (default: .iconlog/config.yml)")
	rootCmd.PersistentFlags().Bool("plain", false, "Plain output without colours")
	rootCmd.PersistentFlags().Bool("debug", false, "Enable debug logging")

	rootCmd.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		return clierrors.NewArgumentErrorWithUsage(err.Error(), cmd.UseLine(),
			fmt.Sprintf("Run '%s --help' for usage", cmd.CommandPath()))
	})
}

// Execute runs the command tree and returns the process exit code.
func Execute() int {
	cmd, err := rootCmd.ExecuteC()
	if err == nil {
		return ExitSuccess
	}

	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}

	plain, _ := rootCmd.PersistentFlags().GetBool("plain")
	clierrors.FprintAny(cmd.ErrOrStderr(), err, plain || color.NoColor)
	return exitCodeFor(err)
}

// loadConfig loads the layered configuration for cmd and applies the global
// output settings (colours, logging) it implies.
func loadConfig(cmd *cobra.Command) (*config.Configuration, error) {
	configPath, _ := cmd.Flags().GetString("config")

	cfg, err := config.LoadWithOptions(config.LoadOptions{
		ProjectConfigPath: configPath,
		WarningWriter:     cmd.ErrOrStderr(),
	})
	if err != nil {
		return nil, clierrors.ConfigLoadFailed(err)
	}

	if plain, _ := cmd.Flags().GetBool("plain"); plain {
		cfg.Plain = true
	}
	if cfg.Plain {
		color.NoColor = true
	}

	debug, _ := cmd.Flags().GetBool("debug")
	setupLogging(cmd.ErrOrStderr(), cfg.LogLevel, debug)
	return cfg, nil
}

// argsRange is cobra.RangeArgs reporting failures as argument errors with usage.
func argsRange(min, max int) cobra.PositionalArgs {
	check := cobra.RangeArgs(min, max)
	return func(cmd *cobra.Command, args []string) error {
		if err := check(cmd, args); err != nil {
			return clierrors.NewArgumentErrorWithUsage(err.Error(), cmd.UseLine())
		}
		return nil
	}
}
