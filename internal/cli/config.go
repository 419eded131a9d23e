package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"text/tabwriter"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/ariel-frischer/iconlog/internal/config"
	clierrors "github.com/ariel-frischer/iconlog/internal/errors"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage iconlog configuration",
	Long: `Manage iconlog configuration.

Configuration precedence (highest to lowest):
  1. Environment variables (ICONLOG_*)
  2. Project config (.iconlog/config.yml, or .iconlog/config.json)
  3. User config (~/.config/iconlog/config.yml)
  4. Built-in defaults`,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show effective configuration and where each value comes from",
	Example: `  iconlog config show
  iconlog config show --format yaml`,
	Args: argsRange(0, 0),
	RunE: runConfigShow,
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a commented config file",
	Long: `Write a config file documenting every option with its default.
Creates the project config by default; --user writes the user config instead.
An existing file is left unchanged unless --force is given.`,
	Example: `  iconlog config init
  iconlog config init --user`,
	Args: argsRange(0, 0),
	RunE: runConfigInit,
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a value in the project (or user) config file",
	Example: `  iconlog config set changelog_path docs/CHANGELOG.md
  iconlog config set strict_unique true --user`,
	Args: argsRange(2, 2),
	RunE: runConfigSet,
}

func init() {
	configCmd.GroupID = GroupConfiguration
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configShowCmd, configInitCmd, configSetCmd)

	configShowCmd.Flags().StringP("format", "f", formatText, "Output format: text, json or yaml")

	configInitCmd.Flags().Bool("user", false, "Write the user config instead of the project config")
	configInitCmd.Flags().Bool("force", false, "Overwrite an existing config file")

	configSetCmd.Flags().Bool("user", false, "Write the user config instead of the project config")
}

// configTarget returns the file config init/set write to.
func configTarget(cmd *cobra.Command) (string, error) {
	if user, _ := cmd.Flags().GetBool("user"); user {
		path, err := config.UserConfigPath()
		if err != nil {
			return "", clierrors.WrapWithMessage(err, clierrors.Configuration, "locating user config directory")
		}
		return path, nil
	}
	if path, _ := cmd.Flags().GetString("config"); path != "" {
		return path, nil
	}
	return config.ProjectConfigPath(), nil
}

// configValues returns the effective configuration keyed by config key.
func configValues(cfg *config.Configuration) map[string]interface{} {
	return map[string]interface{}{
		"manifest_path":       cfg.ManifestPath,
		"changelog_path":      cfg.ChangelogPath,
		"project":             cfg.Project,
		"previous_ref":        cfg.PreviousRef,
		"state_dir":           cfg.StateDir,
		"max_history_entries": cfg.MaxHistoryEntries,
		"strict_unique":       cfg.StrictUnique,
		"plain":               cfg.Plain,
		"log_level":           cfg.LogLevel,
	}
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	format, _ := cmd.Flags().GetString("format")
	if err := checkFormat(format, formatText, formatJSON, formatYAML); err != nil {
		return err
	}

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	values := configValues(cfg)

	if format != formatText {
		return writeStructured(cmd.OutOrStdout(), format, values)
	}

	configPath, _ := cmd.Flags().GetString("config")
	sources, err := config.Sources(config.LoadOptions{ProjectConfigPath: configPath})
	if err != nil {
		return clierrors.ConfigLoadFailed(err)
	}

	dim := color.New(color.Faint).SprintFunc()
	tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	for _, key := range config.SortedKeys() {
		fmt.Fprintf(tw, "%s\t%v\t%s\n", key, values[key], dim("("+string(sources[key])+")"))
	}
	return tw.Flush()
}

func runConfigInit(cmd *cobra.Command, args []string) error {
	force, _ := cmd.Flags().GetBool("force")

	path, err := configTarget(cmd)
	if err != nil {
		return err
	}

	if _, err := os.Stat(path); err == nil && !force {
		fmt.Fprintf(cmd.OutOrStdout(), "Config already exists at %s (use --force to overwrite)\n", path)
		return nil
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return clierrors.WrapWithMessage(err, clierrors.Runtime, "creating config directory")
	}
	if err := os.WriteFile(path, []byte(config.GetDefaultConfigTemplate()), 0o644); err != nil {
		return clierrors.WrapWithMessage(err, clierrors.Runtime, "writing "+path)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Created %s\n", path)
	return nil
}

func runConfigSet(cmd *cobra.Command, args []string) error {
	path, err := configTarget(cmd)
	if err != nil {
		return err
	}

	parsed, err := config.SetValue(path, args[0], args[1])
	if err != nil {
		if config.IsValidationError(err) {
			return clierrors.ConfigLoadFailed(err)
		}
		return clierrors.NewArgumentError(err.Error(),
			fmt.Sprintf("Known keys: %v", config.SortedKeys()))
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Set %s = %v in %s\n", args[0], parsed.Parsed, path)
	return nil
}
