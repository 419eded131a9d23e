// Package manifest defines the icon catalogue snapshot shared by the diff engine,
// the version advisor and the changelog renderer.
//
// This package implements:
//   - IconMetadata and Manifest, the JSON exchange format of an icon export
//   - Structural validation (struct tags plus an embedded JSON Schema)
//   - Fail-closed parsing and pretty/compact serialization
//   - An ordered identity index keyed by normalized name
//   - Manifest merging for migration scenarios
//
// Nothing here performs I/O; callers read and write the bytes.
package manifest
