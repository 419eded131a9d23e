// Package changelog renders icon diffs as Markdown changelog entries and
// reads them back.
//
// This package implements:
//   - Entry creation from a diff plus release metadata (version, date, message)
//   - Markdown generation in a fixed Added/Modified/Removed layout
//   - Prepending a new entry to an existing changelog document
//   - Parsing single entries and whole documents back into structured form
//   - Version querying and terminal formatting for CLI display
//
// The changelog document itself is treated as opaque text anchored on its
// first "## [" version header; file paths belong to the caller.
package changelog
