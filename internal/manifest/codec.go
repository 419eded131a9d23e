package manifest

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Serialize encodes m as JSON. With pretty set the output is indented with two
// spaces and ends in a newline. A nil icon list is written as [].
func Serialize(m *Manifest, pretty bool) ([]byte, error) {
	if m == nil {
		return nil, fmt.Errorf("serializing manifest: manifest is nil")
	}

	out := *m
	if out.Icons == nil {
		out.Icons = []IconMetadata{}
	}

	if !pretty {
		data, err := json.Marshal(&out)
		if err != nil {
			return nil, fmt.Errorf("serializing manifest: %w", err)
		}
		return data, nil
	}

	data, err := json.MarshalIndent(&out, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("serializing manifest: %w", err)
	}
	return append(data, '\n'), nil
}

// ParseStrict decodes a manifest and explains why it was rejected.
// The document must be well-formed JSON, match the manifest schema and pass
// Validate.
func ParseStrict(data []byte) (*Manifest, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, &ValidationError{Message: "manifest is empty"}
	}

	if !json.Valid(data) {
		return nil, &ValidationError{Message: "manifest is not valid JSON"}
	}

	if err := checkSchema(data); err != nil {
		return nil, err
	}

	var m Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("decoding manifest: %w", err)
	}
	if m.Icons == nil {
		m.Icons = []IconMetadata{}
	}

	if err := Validate(&m); err != nil {
		return nil, err
	}

	return &m, nil
}

// Parse decodes a manifest, returning nil for anything ParseStrict rejects.
// Callers decide whether a nil manifest means "no previous snapshot" or a
// fatal configuration problem.
func Parse(data []byte) *Manifest {
	m, err := ParseStrict(data)
	if err != nil {
		return nil
	}
	return m
}
