package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// SetValue validates value for key and writes it into the YAML config file at
// path, creating the file and its directory when missing. Other keys in the
// file are preserved.
func SetValue(path, key, value string) (ParsedValue, error) {
	parsed, err := ValidateValue(key, value)
	if err != nil {
		return ParsedValue{}, err
	}

	if err := ValidateYAMLSyntax(path); err != nil {
		return ParsedValue{}, err
	}

	values := map[string]interface{}{}
	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, &values); err != nil {
			return ParsedValue{}, fmt.Errorf("reading %s: %w", path, err)
		}
		if values == nil {
			values = map[string]interface{}{}
		}
	case !os.IsNotExist(err):
		return ParsedValue{}, fmt.Errorf("reading %s: %w", path, err)
	}

	values[key] = parsed.Parsed

	out, err := yaml.Marshal(values)
	if err != nil {
		return ParsedValue{}, fmt.Errorf("encoding config: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return ParsedValue{}, fmt.Errorf("creating config directory: %w", err)
	}
	if err := os.WriteFile(path, out, 0o644); err != nil {
		return ParsedValue{}, fmt.Errorf("writing %s: %w", path, err)
	}
	return parsed, nil
}
