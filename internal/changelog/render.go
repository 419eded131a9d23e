package changelog

import (
	"fmt"
	"io"
	"strings"
)

// emptySection is the placeholder item written for a category with no names.
const emptySection = "None"

// GenerateMarkdown renders e in the fixed changelog layout:
//
//	## [<version>] - <date>
//
//	<message>
//
//	### Added
//	- <name>
//
//	### Modified
//	- None
//
//	### Removed
//	- None
//
// All three sections are always written, in that order. An empty message
// omits the paragraph. The output ends with a single newline.
func GenerateMarkdown(e Entry) string {
	var b strings.Builder
	_ = RenderEntry(e, &b)
	return b.String()
}

// RenderEntry writes the Markdown for e to w.
func RenderEntry(e Entry, w io.Writer) error {
	if _, err := fmt.Fprintf(w, "%s\n", formatVersionHeader(e)); err != nil {
		return err
	}

	if msg := strings.TrimSpace(e.Message); msg != "" {
		if _, err := fmt.Fprintf(w, "\n%s\n", msg); err != nil {
			return err
		}
	}

	for _, s := range e.Changes.sections() {
		if err := renderSection(s, w); err != nil {
			return fmt.Errorf("rendering %s section: %w", s.category, err)
		}
	}

	return nil
}

// RenderNotes renders only the change sections of e, without the version
// header or message. The output is suitable as a release body.
func RenderNotes(e Entry) string {
	var b strings.Builder
	for i, s := range e.Changes.sections() {
		if i > 0 {
			b.WriteString("\n")
		}
		writeSectionBody(s, &b)
	}
	return b.String()
}

// DocumentHeader returns the preamble of a new changelog document. Entries
// are inserted after it by PrependToChangelog.
func DocumentHeader(project string) string {
	if project == "" {
		project = "this icon set"
	}
	return `# Changelog

All notable changes to ` + project + ` will be documented in this file.

Removing an icon is a breaking change and bumps the major version; adding
icons bumps the minor version; visual updates to existing icons bump the patch.
`
}

// formatVersionHeader formats the version header line.
func formatVersionHeader(e Entry) string {
	return fmt.Sprintf("## [%s] - %s", e.Version, e.Date)
}

// renderSection writes one category, preceded by a blank line.
func renderSection(s section, w io.Writer) error {
	var b strings.Builder
	b.WriteString("\n")
	writeSectionBody(s, &b)
	_, err := io.WriteString(w, b.String())
	return err
}

// writeSectionBody writes the heading and list items of a category.
func writeSectionBody(s section, b *strings.Builder) {
	b.WriteString("### " + s.title + "\n")
	if len(s.names) == 0 {
		b.WriteString("- " + emptySection + "\n")
		return
	}
	for _, name := range s.names {
		b.WriteString("- " + name + "\n")
	}
}
