package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"slices"

	"gopkg.in/yaml.v3"

	"github.com/ariel-frischer/iconlog/internal/changelog"
	"github.com/ariel-frischer/iconlog/internal/diff"
	clierrors "github.com/ariel-frischer/iconlog/internal/errors"
)

const (
	formatText = "text"
	formatJSON = "json"
	formatYAML = "yaml"
)

// checkFormat returns an argument error unless format is one of allowed.
func checkFormat(format string, allowed ...string) error {
	if slices.Contains(allowed, format) {
		return nil
	}
	return clierrors.InvalidFormat(format, allowed)
}

// writeStructured encodes v as indented JSON or YAML.
func writeStructured(w io.Writer, format string, v any) error {
	switch format {
	case formatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(v); err != nil {
			return fmt.Errorf("encoding JSON: %w", err)
		}
	case formatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return fmt.Errorf("encoding YAML: %w", err)
		}
		if err := enc.Close(); err != nil {
			return fmt.Errorf("encoding YAML: %w", err)
		}
	default:
		return clierrors.InvalidFormat(format, []string{formatJSON, formatYAML})
	}
	return nil
}

// changesOf lists the normalized names of d by category.
func changesOf(d diff.Diff) changelog.Changes {
	return changelog.Changes{
		Added:    d.AddedNames(),
		Modified: d.ModifiedNames(),
		Removed:  d.RemovedNames(),
	}
}

// formatOptions returns terminal options honouring the plain setting.
func formatOptions(plain bool) changelog.FormatOptions {
	return changelog.FormatOptions{Plain: plain}
}
