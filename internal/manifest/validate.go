package manifest

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// ValidationError describes the first structural problem found in a manifest.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("%s: %s", e.Field, e.Message)
	}
	return e.Message
}

// IsValidationError returns true if the error is a ValidationError.
func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// Validate checks that m has a non-empty version and generation timestamp and
// that every icon has non-empty identifiers and positive dimensions.
// It does not check normalized name uniqueness; see ValidateUnique.
func Validate(m *Manifest) error {
	if m == nil {
		return &ValidationError{Message: "manifest is nil"}
	}

	validate := validator.New()
	validate.RegisterTagNameFunc(jsonFieldName)

	if err := validate.Struct(m); err != nil {
		var validationErrors validator.ValidationErrors
		if errors.As(err, &validationErrors) && len(validationErrors) > 0 {
			fieldErr := validationErrors[0]
			return &ValidationError{
				Field:   trimRootNamespace(fieldErr.Namespace()),
				Message: formatValidationError(fieldErr),
			}
		}
		return &ValidationError{Message: err.Error()}
	}

	return nil
}

// IsValid reports whether m passes Validate.
func IsValid(m *Manifest) bool {
	return Validate(m) == nil
}

// ValidateUnique runs Validate and additionally rejects manifests in which a
// normalized name appears more than once.
func ValidateUnique(m *Manifest) error {
	if err := Validate(m); err != nil {
		return err
	}
	if dups := DuplicateNames(m); len(dups) > 0 {
		return &ValidationError{
			Field:   "icons",
			Message: fmt.Sprintf("duplicate normalizedName values: %s", strings.Join(dups, ", ")),
		}
	}
	return nil
}

// jsonFieldName reports struct fields by their JSON key so errors match the
// exchange format rather than Go field names.
func jsonFieldName(fld reflect.StructField) string {
	name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
	if name == "-" || name == "" {
		return fld.Name
	}
	return name
}

// trimRootNamespace drops the leading "Manifest." from a validator namespace.
func trimRootNamespace(ns string) string {
	if idx := strings.Index(ns, "."); idx >= 0 {
		return ns[idx+1:]
	}
	return ns
}

// formatValidationError formats a validation error for a specific field.
func formatValidationError(fieldErr validator.FieldError) string {
	switch fieldErr.Tag() {
	case "required":
		return "is required"
	case "gt":
		return fmt.Sprintf("must be greater than %s", fieldErr.Param())
	default:
		return fmt.Sprintf("failed validation: %s", fieldErr.Tag())
	}
}
