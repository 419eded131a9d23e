package changelog

import (
	"strings"
	"time"

	"github.com/ariel-frischer/iconlog/internal/diff"
)

// DateLayout is the format of Entry.Date.
const DateLayout = "2006-01-02"

// now is the clock used when no release date is supplied.
var now = time.Now

// rawDateLayouts are tried in order when a raw date string is reformatted.
var rawDateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	DateLayout,
	"2006/01/02",
	"January 2, 2006",
	"Jan 2, 2006",
	"02 Jan 2006",
	time.RFC1123,
	time.RFC1123Z,
}

type dateKind int

const (
	dateToday dateKind = iota
	dateParsed
	dateRaw
)

// DateInput is the release date of an entry: either a time value, a raw
// string, or (the zero value) today's date.
type DateInput struct {
	kind  dateKind
	value time.Time
	raw   string
}

// Today returns a DateInput that resolves to the current date.
func Today() DateInput {
	return DateInput{kind: dateToday}
}

// ParsedDate returns a DateInput for a known point in time. The calendar date
// is taken in t's own location.
func ParsedDate(t time.Time) DateInput {
	return DateInput{kind: dateParsed, value: t}
}

// RawDate returns a DateInput for a user supplied string. Strings that parse
// as a date are reformatted as YYYY-MM-DD; anything else is kept verbatim.
// An empty string means today.
func RawDate(s string) DateInput {
	s = strings.TrimSpace(s)
	if s == "" {
		return Today()
	}
	return DateInput{kind: dateRaw, raw: s}
}

// Resolve returns the date text to record, using current for Today.
func (d DateInput) Resolve(current time.Time) string {
	switch d.kind {
	case dateParsed:
		return d.value.Format(DateLayout)
	case dateRaw:
		for _, layout := range rawDateLayouts {
			if t, err := time.Parse(layout, d.raw); err == nil {
				return t.Format(DateLayout)
			}
		}
		return d.raw
	default:
		return current.Format(DateLayout)
	}
}

// String describes the input for logging.
func (d DateInput) String() string {
	switch d.kind {
	case dateParsed:
		return d.value.Format(time.RFC3339)
	case dateRaw:
		return d.raw
	default:
		return "today"
	}
}

// Options is the release metadata attached to an entry.
type Options struct {
	Version string
	Message string
	Date    DateInput
}

// CreateEntry builds a changelog entry for d. Change lists hold normalized
// names in diff order and are never nil.
func CreateEntry(d diff.Diff, opts Options) Entry {
	return Entry{
		Version: strings.TrimSpace(opts.Version),
		Date:    opts.Date.Resolve(now()),
		Message: strings.TrimSpace(opts.Message),
		Changes: Changes{
			Added:    d.AddedNames(),
			Modified: d.ModifiedNames(),
			Removed:  d.RemovedNames(),
		},
	}
}
