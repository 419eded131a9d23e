package manifest

import (
	_ "embed"
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

//go:embed manifest.schema.json
var schemaJSON []byte

// FieldError is a single JSON Schema violation.
type FieldError struct {
	Field   string
	Message string
}

// SchemaError lists every JSON Schema violation found in a document.
type SchemaError struct {
	Errors []FieldError
}

func (e *SchemaError) Error() string {
	parts := make([]string, len(e.Errors))
	for i, fe := range e.Errors {
		parts[i] = fmt.Sprintf("%s: %s", fe.Field, fe.Message)
	}
	return "manifest does not match schema: " + strings.Join(parts, "; ")
}

// Schema returns the embedded JSON Schema for the manifest exchange format.
func Schema() []byte {
	return schemaJSON
}

// checkSchema validates raw JSON against the embedded schema. Malformed JSON
// is reported as an error from the loader.
func checkSchema(data []byte) error {
	schemaLoader := gojsonschema.NewBytesLoader(schemaJSON)
	documentLoader := gojsonschema.NewBytesLoader(data)

	result, err := gojsonschema.Validate(schemaLoader, documentLoader)
	if err != nil {
		return fmt.Errorf("checking manifest schema: %w", err)
	}

	if result.Valid() {
		return nil
	}

	schemaErr := &SchemaError{
		Errors: make([]FieldError, 0, len(result.Errors())),
	}
	for _, desc := range result.Errors() {
		field := desc.Field()
		if field == "" {
			field = "(root)"
		}
		schemaErr.Errors = append(schemaErr.Errors, FieldError{
			Field:   field,
			Message: desc.Description(),
		})
	}
	return schemaErr
}
