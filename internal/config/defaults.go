package config

// GetDefaultConfigTemplate returns a fully commented config template
// that helps users understand all available options
func GetDefaultConfigTemplate() string {
	return `# iconlog configuration
# See 'iconlog config -h' for commands, 'iconlog config show' for effective values

# Inputs and outputs
manifest_path: icons.json             # Manifest used when no path is given
changelog_path: CHANGELOG.md          # Changelog maintained by 'iconlog release'
project: ""                           # Icon set name used in a new changelog preamble

# Previous manifest
previous_ref: ""                      # Git revision holding the previous manifest (e.g. HEAD, v1.2.0)

# Validation
strict_unique: false                  # Reject manifests with repeated normalized names

# History settings
state_dir: ~/.iconlog/state           # Directory for the release history file
max_history_entries: 500              # Max release history entries to retain (0 = unlimited)

# Output
plain: false                          # Disable colours and styling
log_level: warn                       # debug | info | warn | error
`
}

// GetDefaults returns the default configuration values keyed by koanf path.
func GetDefaults() map[string]interface{} {
	return map[string]interface{}{
		"manifest_path":       "icons.json",
		"changelog_path":      "CHANGELOG.md",
		"project":             "",
		"previous_ref":        "",
		"state_dir":           "~/.iconlog/state",
		"max_history_entries": 500,
		"strict_unique":       false,
		"plain":               false,
		"log_level":           "warn",
	}
}
