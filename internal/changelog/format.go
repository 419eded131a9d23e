package changelog

import (
	"fmt"
	"io"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/fatih/color"
	"golang.org/x/term"
)

// CategoryStyle defines the color and icon for a changelog category.
type CategoryStyle struct {
	Color *color.Color
	Icon  string
}

// categoryStyles maps category names to their terminal styling.
var categoryStyles = map[string]CategoryStyle{
	CategoryAdded:    {Color: color.New(color.FgGreen), Icon: "+"},
	CategoryModified: {Color: color.New(color.FgYellow), Icon: "~"},
	CategoryRemoved:  {Color: color.New(color.FgRed), Icon: "-"},
}

// FormatOptions controls the terminal output formatting.
type FormatOptions struct {
	Plain     bool // Disable colors and icons
	MaxWidth  int  // Maximum line width (0 = auto-detect)
	HideEmpty bool // Skip categories with no names
}

// FormatEntries writes several entries separated by blank lines.
func FormatEntries(entries []Entry, w io.Writer, opts FormatOptions) error {
	for i := range entries {
		if i > 0 {
			fmt.Fprintln(w)
		}
		if err := FormatEntry(&entries[i], w, opts); err != nil {
			return fmt.Errorf("formatting version %s: %w", entries[i].Version, err)
		}
	}
	return nil
}

// FormatEntry writes a single entry with terminal styling.
func FormatEntry(e *Entry, w io.Writer, opts FormatOptions) error {
	width := resolveWidth(opts.MaxWidth)

	if err := writeVersionHeader(e.Version, e.Date, w, opts); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	if e.Message != "" {
		if _, err := fmt.Fprintf(w, "%s\n", wrapText(e.Message, width, "")); err != nil {
			return err
		}
	}

	return FormatChanges(e.Changes, w, opts)
}

// FormatChanges writes the categories of c, one name per line.
func FormatChanges(c Changes, w io.Writer, opts FormatOptions) error {
	width := resolveWidth(opts.MaxWidth)

	for _, s := range c.sections() {
		if opts.HideEmpty && len(s.names) == 0 {
			continue
		}
		if err := writeCategorySection(s, w, opts, width); err != nil {
			return err
		}
	}

	return nil
}

// FormatSummary returns a one-line count summary such as "+2 ~1 -0".
func FormatSummary(c Changes, opts FormatOptions) string {
	parts := make([]string, 0, 3)
	for _, s := range c.sections() {
		text := fmt.Sprintf("%s%d", categoryStyles[s.category].Icon, len(s.names))
		if opts.Plain {
			parts = append(parts, fmt.Sprintf("%d %s", len(s.names), s.category))
			continue
		}
		parts = append(parts, categoryStyles[s.category].Color.Sprint(text))
	}
	if opts.Plain {
		return strings.Join(parts, ", ")
	}
	return strings.Join(parts, " ")
}

// writeVersionHeader writes the version header line.
func writeVersionHeader(version, date string, w io.Writer, opts FormatOptions) error {
	header := fmt.Sprintf("v%s", NormalizeVersion(version))
	if date != "" {
		header = fmt.Sprintf("%s (%s)", header, date)
	}

	if opts.Plain {
		_, err := fmt.Fprintf(w, "## %s\n", header)
		return err
	}

	bold := color.New(color.Bold).SprintFunc()
	_, err := fmt.Fprintf(w, "## %s\n", bold(header))
	return err
}

// writeCategorySection writes a single category with its names.
func writeCategorySection(s section, w io.Writer, opts FormatOptions, width int) error {
	style := categoryStyles[s.category]

	if err := writeCategoryHeader(s.title, style, w, opts); err != nil {
		return err
	}

	if len(s.names) == 0 {
		_, err := fmt.Fprintf(w, "  (none)\n")
		return err
	}

	for _, name := range s.names {
		if err := writeName(name, style, w, opts, width); err != nil {
			return err
		}
	}

	return nil
}

// writeCategoryHeader writes the category header line.
func writeCategoryHeader(title string, style CategoryStyle, w io.Writer, opts FormatOptions) error {
	if opts.Plain {
		_, err := fmt.Fprintf(w, "\n### %s\n", title)
		return err
	}

	colored := style.Color.SprintFunc()
	_, err := fmt.Fprintf(w, "\n%s %s\n", colored(style.Icon), colored(title))
	return err
}

// writeName writes a single icon name.
func writeName(name string, style CategoryStyle, w io.Writer, opts FormatOptions, width int) error {
	prefix := "  - "

	if opts.Plain {
		_, err := fmt.Fprintf(w, "%s%s\n", prefix, name)
		return err
	}

	colored := style.Color.SprintFunc()
	_, err := fmt.Fprintf(w, "%s%s\n", prefix, colored(truncateText(name, width-len(prefix))))
	return err
}

// resolveWidth determines the terminal width to use.
func resolveWidth(maxWidth int) int {
	if maxWidth > 0 {
		return maxWidth
	}
	if w, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && w > 0 {
		return w
	}
	return 80
}

// wrapText wraps text to fit within maxWidth, using indent for continuation lines.
func wrapText(text string, maxWidth int, indent string) string {
	if maxWidth <= 0 || len(text) <= maxWidth {
		return text
	}

	var lines []string
	remaining := text

	for len(remaining) > maxWidth {
		breakPoint := maxWidth
		for i := maxWidth - 1; i > 0; i-- {
			if remaining[i] == ' ' {
				breakPoint = i
				break
			}
		}

		lines = append(lines, remaining[:breakPoint])
		remaining = strings.TrimLeft(remaining[breakPoint:], " ")
	}

	if len(remaining) > 0 {
		lines = append(lines, remaining)
	}

	return strings.Join(lines, "\n"+indent)
}

// truncateText truncates text to maxLen runes, adding ellipsis if needed.
func truncateText(text string, maxLen int) string {
	if maxLen <= 3 || utf8.RuneCountInString(text) <= maxLen {
		return text
	}
	runes := []rune(text)
	return string(runes[:maxLen-3]) + "..."
}
