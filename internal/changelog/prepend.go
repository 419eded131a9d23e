package changelog

import (
	"regexp"
	"strings"
)

// versionHeaderLine matches the first line of any version entry.
var versionHeaderLine = regexp.MustCompile(`(?m)^## \[`)

// PrependToChangelog inserts entry immediately before the first "## [" line of
// existing, so the newest version comes first and any title or preamble stays
// on top. When existing has no version header the entry is appended at the
// end, separated by a blank line.
//
// This is a textual splice; existing entries are neither parsed nor reordered.
func PrependToChangelog(existing, entry string) string {
	entry = ensureTrailingNewline(entry)

	loc := versionHeaderLine.FindStringIndex(existing)
	if loc == nil {
		trimmed := strings.TrimRight(existing, "\n")
		if strings.TrimSpace(trimmed) == "" {
			return entry
		}
		return trimmed + "\n\n" + entry
	}

	at := loc[0]
	return existing[:at] + entry + "\n" + existing[at:]
}

func ensureTrailingNewline(s string) string {
	s = strings.TrimRight(s, "\n")
	return s + "\n"
}
