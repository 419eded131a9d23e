package config

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// ConfigValueType defines the expected type for a configuration value.
type ConfigValueType int

const (
	TypeBool ConfigValueType = iota
	TypeInt
	TypeString
	TypeEnum
)

// String returns the string representation of ConfigValueType.
func (t ConfigValueType) String() string {
	switch t {
	case TypeBool:
		return "bool"
	case TypeInt:
		return "int"
	case TypeString:
		return "string"
	case TypeEnum:
		return "enum"
	default:
		return "unknown"
	}
}

// ConfigKeySchema defines a known configuration key with its expected type and validation rules.
type ConfigKeySchema struct {
	Path          string          // koanf key path
	Type          ConfigValueType // Expected value type for validation
	AllowedValues []string        // Valid values for enum types (empty for non-enums)
	Description   string          // Human-readable description for help text
	Default       interface{}
}

// KnownKeys is the registry of all known configuration keys with their schemas.
var KnownKeys = map[string]ConfigKeySchema{
	"manifest_path": {
		Path:        "manifest_path",
		Type:        TypeString,
		Description: "Manifest used when no path is given",
		Default:     "icons.json",
	},
	"changelog_path": {
		Path:        "changelog_path",
		Type:        TypeString,
		Description: "Markdown changelog maintained by release",
		Default:     "CHANGELOG.md",
	},
	"project": {
		Path:        "project",
		Type:        TypeString,
		Description: "Icon set name used in a new changelog preamble",
		Default:     "",
	},
	"previous_ref": {
		Path:        "previous_ref",
		Type:        TypeString,
		Description: "Git revision holding the previous manifest",
		Default:     "",
	},
	"state_dir": {
		Path:        "state_dir",
		Type:        TypeString,
		Description: "Directory for the release history file",
		Default:     "~/.iconlog/state",
	},
	"max_history_entries": {
		Path:        "max_history_entries",
		Type:        TypeInt,
		Description: "Maximum number of release history entries to retain",
		Default:     500,
	},
	"strict_unique": {
		Path:        "strict_unique",
		Type:        TypeBool,
		Description: "Reject manifests with repeated normalized names",
		Default:     false,
	},
	"plain": {
		Path:        "plain",
		Type:        TypeBool,
		Description: "Disable colours and styling",
		Default:     false,
	},
	"log_level": {
		Path:          "log_level",
		Type:          TypeEnum,
		AllowedValues: []string{"debug", "info", "warn", "error"},
		Description:   "Minimum level of diagnostic log lines",
		Default:       "warn",
	},
}

// ErrUnknownKey is returned when trying to access an unknown configuration key.
type ErrUnknownKey struct {
	Key string
}

func (e ErrUnknownKey) Error() string {
	return "unknown configuration key: " + e.Key
}

// GetKeySchema returns the schema for a known configuration key.
func GetKeySchema(path string) (ConfigKeySchema, error) {
	schema, ok := KnownKeys[path]
	if !ok {
		return ConfigKeySchema{}, ErrUnknownKey{Key: path}
	}
	return schema, nil
}

// SortedKeys returns the known key paths in lexical order.
func SortedKeys() []string {
	keys := make([]string, 0, len(KnownKeys))
	for k := range KnownKeys {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// ParsedValue represents a configuration value after validation.
type ParsedValue struct {
	Raw    string      // Original string input from user
	Parsed interface{} // Value converted to correct type
	Type   ConfigValueType
}

// ValidateValue validates a value against the schema for a given key.
func ValidateValue(key, value string) (ParsedValue, error) {
	schema, err := GetKeySchema(key)
	if err != nil {
		return ParsedValue{}, err
	}

	switch schema.Type {
	case TypeBool:
		switch strings.ToLower(value) {
		case "true":
			return ParsedValue{Raw: value, Parsed: true, Type: TypeBool}, nil
		case "false":
			return ParsedValue{Raw: value, Parsed: false, Type: TypeBool}, nil
		}
		return ParsedValue{}, fmt.Errorf("invalid boolean: %q (expected true or false)", value)
	case TypeInt:
		n, err := strconv.Atoi(value)
		if err != nil {
			return ParsedValue{}, fmt.Errorf("invalid integer: %q", value)
		}
		if n < 0 {
			return ParsedValue{}, fmt.Errorf("invalid value: %d (must be at least 0)", n)
		}
		return ParsedValue{Raw: value, Parsed: n, Type: TypeInt}, nil
	case TypeEnum:
		for _, allowed := range schema.AllowedValues {
			if value == allowed {
				return ParsedValue{Raw: value, Parsed: value, Type: TypeEnum}, nil
			}
		}
		return ParsedValue{}, fmt.Errorf("invalid value: %q (valid options: %s)",
			value, strings.Join(schema.AllowedValues, ", "))
	default:
		return ParsedValue{Raw: value, Parsed: value, Type: TypeString}, nil
	}
}
