// Package config provides hierarchical configuration for iconlog using koanf.
// Configuration is loaded with priority: environment variables (ICONLOG_*) > project config
// (.iconlog/config.yml, or .iconlog/config.json) > user config (~/.config/iconlog/config.yml)
// > defaults.
package config

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// EnvPrefix is the prefix of environment variables that override config keys.
const EnvPrefix = "ICONLOG_"

// ConfigSource tracks where a configuration value came from
type ConfigSource string

const (
	SourceDefault ConfigSource = "default"
	SourceUser    ConfigSource = "user"
	SourceProject ConfigSource = "project"
	SourceEnv     ConfigSource = "env"
)

// Configuration represents the iconlog CLI configuration
type Configuration struct {
	// ManifestPath is the manifest used when a command is given no path.
	ManifestPath string `koanf:"manifest_path" validate:"required"`
	// ChangelogPath is the Markdown changelog that release and changelog show operate on.
	ChangelogPath string `koanf:"changelog_path" validate:"required"`
	// Project names the icon set in a newly created changelog preamble.
	Project string `koanf:"project"`
	// PreviousRef is the git revision holding the previous manifest when none is passed.
	// Empty means "no previous manifest" (first release).
	PreviousRef string `koanf:"previous_ref"`

	StateDir string `koanf:"state_dir" validate:"required"`

	// MaxHistoryEntries caps the release history file. Oldest entries are pruned first.
	// 0 disables pruning.
	MaxHistoryEntries int `koanf:"max_history_entries" validate:"min=0,max=100000"`

	// StrictUnique rejects manifests whose normalized names repeat.
	StrictUnique bool   `koanf:"strict_unique"`
	Plain        bool   `koanf:"plain"`
	LogLevel     string `koanf:"log_level" validate:"oneof=debug info warn error"`
}

// LoadOptions configures how configuration is loaded
type LoadOptions struct {
	// ProjectConfigPath overrides the project config path (default: .iconlog/config.yml)
	ProjectConfigPath string
	// UserConfigPath overrides the user config path (default: ~/.config/iconlog/config.yml)
	UserConfigPath string
	// WarningWriter receives warnings about ignored files (default: os.Stderr)
	WarningWriter io.Writer
	SkipWarnings  bool
}

// Load loads configuration from user, project, and environment sources.
func Load(projectConfigPath string) (*Configuration, error) {
	return LoadWithOptions(LoadOptions{ProjectConfigPath: projectConfigPath})
}

// LoadWithOptions loads configuration with custom options
func LoadWithOptions(opts LoadOptions) (*Configuration, error) {
	k, err := loadLayers(opts)
	if err != nil {
		return nil, err
	}
	return finalizeConfig(k)
}

// loadLayers merges every source into a single koanf instance, lowest priority first.
func loadLayers(opts LoadOptions) (*koanf.Koanf, error) {
	k := koanf.New(".")
	warningWriter := getWarningWriter(opts.WarningWriter)

	loadDefaults(k)

	if err := loadUserConfig(k, opts.UserConfigPath); err != nil {
		return nil, err
	}

	if err := loadProjectConfig(k, opts.ProjectConfigPath, warningWriter, opts.SkipWarnings); err != nil {
		return nil, err
	}

	if err := loadEnvironmentConfig(k); err != nil {
		return nil, err
	}

	return k, nil
}

// getWarningWriter returns the warning writer or defaults to stderr
func getWarningWriter(w io.Writer) io.Writer {
	if w == nil {
		return os.Stderr
	}
	return w
}

// loadDefaults applies default configuration values
func loadDefaults(k *koanf.Koanf) {
	for key, value := range GetDefaults() {
		k.Set(key, value)
	}
}

// loadUserConfig loads the user-level YAML config if present.
func loadUserConfig(k *koanf.Koanf, customPath string) error {
	userPath := customPath
	if userPath == "" {
		userPath, _ = UserConfigPath()
	}
	if !fileExists(userPath) {
		return nil
	}
	if err := loadYAMLConfig(k, userPath, "user"); err != nil {
		return fmt.Errorf("loading user config: %w", err)
	}
	return nil
}

// loadProjectConfig loads project-level config. YAML wins over JSON when both exist.
func loadProjectConfig(k *koanf.Koanf, customPath string, warningWriter io.Writer, skipWarnings bool) error {
	projectPath := ProjectConfigPath()
	if customPath != "" {
		projectPath = customPath
	}

	if strings.EqualFold(filepath.Ext(projectPath), ".json") {
		if !fileExists(projectPath) {
			return nil
		}
		return loadJSONConfig(k, projectPath, "project")
	}

	jsonPath := strings.TrimSuffix(projectPath, filepath.Ext(projectPath)) + ".json"
	yamlExists := fileExists(projectPath)
	jsonExists := fileExists(jsonPath)

	switch {
	case yamlExists:
		if err := loadYAMLConfig(k, projectPath, "project"); err != nil {
			return fmt.Errorf("loading project config: %w", err)
		}
		if jsonExists && !skipWarnings {
			fmt.Fprintf(warningWriter, "Warning: JSON config found at %s (ignored, using %s)\n\n", jsonPath, projectPath)
		}
	case jsonExists:
		if err := loadJSONConfig(k, jsonPath, "project"); err != nil {
			return fmt.Errorf("loading project config: %w", err)
		}
	}
	return nil
}

// loadYAMLConfig validates and loads a YAML config file
func loadYAMLConfig(k *koanf.Koanf, path, configType string) error {
	if err := ValidateYAMLSyntax(path); err != nil {
		return fmt.Errorf("validating YAML syntax for %s config: %w", configType, err)
	}
	if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
		return fmt.Errorf("failed to load %s config %s: %w", configType, path, err)
	}
	return nil
}

// loadJSONConfig loads a JSON config file
func loadJSONConfig(k *koanf.Koanf, path, configType string) error {
	if err := k.Load(file.Provider(path), json.Parser()); err != nil {
		return fmt.Errorf("failed to load %s config %s: %w", configType, path, err)
	}
	return nil
}

// loadEnvironmentConfig loads environment variable overrides
func loadEnvironmentConfig(k *koanf.Koanf) error {
	if err := k.Load(env.Provider(EnvPrefix, ".", envTransform), nil); err != nil {
		return fmt.Errorf("failed to load environment config: %w", err)
	}
	return nil
}

// finalizeConfig unmarshals, validates, and applies final transformations
func finalizeConfig(k *koanf.Koanf) (*Configuration, error) {
	var cfg Configuration
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	cfg.LogLevel = strings.ToLower(strings.TrimSpace(cfg.LogLevel))

	if err := ValidateConfigValues(&cfg, "config"); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	cfg.StateDir = expandHomePath(cfg.StateDir)
	cfg.ManifestPath = expandHomePath(cfg.ManifestPath)
	cfg.ChangelogPath = expandHomePath(cfg.ChangelogPath)

	return &cfg, nil
}

// Sources reports, for each known key, which layer supplied its effective value.
func Sources(opts LoadOptions) (map[string]ConfigSource, error) {
	sources := make(map[string]ConfigSource, len(KnownKeys))
	for key := range KnownKeys {
		sources[key] = SourceDefault
	}

	user := koanf.New(".")
	if err := loadUserConfig(user, opts.UserConfigPath); err != nil {
		return nil, err
	}
	project := koanf.New(".")
	if err := loadProjectConfig(project, opts.ProjectConfigPath, io.Discard, true); err != nil {
		return nil, err
	}
	environ := koanf.New(".")
	if err := loadEnvironmentConfig(environ); err != nil {
		return nil, err
	}

	for key := range sources {
		switch {
		case environ.Exists(key):
			sources[key] = SourceEnv
		case project.Exists(key):
			sources[key] = SourceProject
		case user.Exists(key):
			sources[key] = SourceUser
		}
	}
	return sources, nil
}

// fileExists returns true if the file exists and is readable
func fileExists(path string) bool {
	if path == "" {
		return false
	}
	_, err := os.Stat(path)
	return err == nil
}

// envTransform converts environment variable names to config keys
// Example: ICONLOG_MAX_HISTORY_ENTRIES -> max_history_entries
func envTransform(s string) string {
	return strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
}

// expandHomePath expands ~ to the user's home directory
func expandHomePath(path string) string {
	if strings.HasPrefix(path, "~/") {
		homeDir, err := os.UserHomeDir()
		if err == nil {
			return filepath.Join(homeDir, path[2:])
		}
	}
	return path
}
