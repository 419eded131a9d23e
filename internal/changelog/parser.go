package changelog

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// entryHeader matches "## [<version>] - YYYY-MM-DD".
var entryHeader = regexp.MustCompile(`^## \[([^\]]+)\] - (\d{4}-\d{2}-\d{2})\s*$`)

// ParseEntry parses the first entry found in markdown. The message is the
// trimmed text between the header and the first "###" heading; list items
// under Added, Modified and Removed are collected, skipping the "None"
// placeholder. Parsing stops at the next "## [" version heading; other
// level-two headings are part of the message.
// It returns nil when no version header is present.
func ParseEntry(markdown string) *Entry {
	lines := splitLines(markdown)

	start := -1
	var match []string
	for i, line := range lines {
		if m := entryHeader.FindStringSubmatch(line); m != nil {
			start, match = i, m
			break
		}
	}
	if start < 0 {
		return nil
	}

	entry := &Entry{
		Version: strings.TrimSpace(match[1]),
		Date:    match[2],
		Changes: Changes{
			Added:    []string{},
			Modified: []string{},
			Removed:  []string{},
		},
	}

	var message []string
	current := ""
	inSections := false

	for _, line := range lines[start+1:] {
		if isVersionHeading(line) {
			break
		}

		if strings.HasPrefix(line, "###") {
			inSections = true
			current = strings.ToLower(strings.TrimSpace(strings.TrimLeft(line, "#")))
			continue
		}

		if !inSections {
			message = append(message, line)
			continue
		}

		item, ok := listItem(line)
		if !ok {
			continue
		}
		switch current {
		case CategoryAdded:
			entry.Changes.Added = append(entry.Changes.Added, item)
		case CategoryModified:
			entry.Changes.Modified = append(entry.Changes.Modified, item)
		case CategoryRemoved:
			entry.Changes.Removed = append(entry.Changes.Removed, item)
		}
	}

	entry.Message = strings.TrimSpace(strings.Join(message, "\n"))
	return entry
}

// ParseDocument parses every version entry in a changelog document, in
// document order. Headings that are not "## [X] - YYYY-MM-DD" (for example an
// Unreleased section) are skipped.
func ParseDocument(text string) []Entry {
	lines := splitLines(text)

	var entries []Entry
	var chunk []string
	flush := func() {
		if len(chunk) == 0 {
			return
		}
		if e := ParseEntry(strings.Join(chunk, "\n")); e != nil {
			entries = append(entries, *e)
		}
		chunk = nil
	}

	for _, line := range lines {
		if isVersionHeading(line) {
			flush()
		}
		if chunk != nil || isVersionHeading(line) {
			chunk = append(chunk, line)
		}
	}
	flush()

	return entries
}

// isVersionHeading reports whether line starts a version section, released
// or not ("## [1.2.0] - ..." or "## [Unreleased]").
func isVersionHeading(line string) bool {
	return strings.HasPrefix(line, "## [")
}

// listItem extracts the text of a "- " list line, rejecting the placeholder.
func listItem(line string) (string, bool) {
	trimmed := strings.TrimSpace(line)
	if !strings.HasPrefix(trimmed, "- ") {
		return "", false
	}
	item := strings.TrimSpace(trimmed[2:])
	if item == "" || item == emptySection {
		return "", false
	}
	return item, true
}

func splitLines(s string) []string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	return strings.Split(s, "\n")
}

// ValidationError represents an entry validation error with context.
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

var (
	semverPattern = regexp.MustCompile(`^\d+\.\d+\.\d+(-[a-zA-Z0-9.-]+)?(\+[a-zA-Z0-9.-]+)?$`)
	datePattern   = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
)

// Validate checks that e can be written and parsed back: a semver version
// (a "v" prefix is accepted), a YYYY-MM-DD date, non-empty names, and no name
// listed in more than one category.
func Validate(e *Entry) error {
	if e.Version == "" {
		return &ValidationError{Field: "version", Message: "required field is empty"}
	}
	if !semverPattern.MatchString(NormalizeVersion(e.Version)) {
		return &ValidationError{
			Field:   "version",
			Message: fmt.Sprintf("invalid semver format %q (expected: X.Y.Z)", e.Version),
		}
	}
	if !datePattern.MatchString(e.Date) {
		return &ValidationError{
			Field:   "date",
			Message: fmt.Sprintf("invalid date format %q (expected: YYYY-MM-DD)", e.Date),
		}
	}

	seen := make(map[string]string)
	for _, s := range e.Changes.sections() {
		for i, name := range s.names {
			if strings.TrimSpace(name) == "" {
				return &ValidationError{
					Field:   fmt.Sprintf("changes.%s[%d]", s.category, i),
					Message: "name cannot be empty",
				}
			}
			if prev, ok := seen[name]; ok && prev != s.category {
				return &ValidationError{
					Field:   fmt.Sprintf("changes.%s[%d]", s.category, i),
					Message: fmt.Sprintf("%q is already listed under %s", name, prev),
				}
			}
			seen[name] = s.category
		}
	}

	return nil
}

// NormalizeVersion normalizes a version string by removing the "v" prefix.
// This allows accepting both "v0.6.0" and "0.6.0" as input.
func NormalizeVersion(version string) string {
	return strings.TrimPrefix(strings.ToLower(strings.TrimSpace(version)), "v")
}
