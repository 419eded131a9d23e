// Package history records every release iconlog writes, so that `iconlog history`
// can show what was released when, independently of the changelog text.
package history

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// FileName is the name of the history file inside the state directory.
const FileName = "history.yaml"

// HistoryEntry is one recorded release.
type HistoryEntry struct {
	ID              string    `json:"id" yaml:"id"`
	Timestamp       time.Time `json:"timestamp" yaml:"timestamp"`
	Version         string    `json:"version" yaml:"version"`
	PreviousVersion string    `json:"previous_version,omitempty" yaml:"previous_version,omitempty"`
	BumpType        string    `json:"bump_type" yaml:"bump_type"`
	Reason          string    `json:"reason" yaml:"reason"`
	Added           int       `json:"added" yaml:"added"`
	Modified        int       `json:"modified" yaml:"modified"`
	Removed         int       `json:"removed" yaml:"removed"`
	Manifest        string    `json:"manifest" yaml:"manifest"`
	Branch          string    `json:"branch,omitempty" yaml:"branch,omitempty"`
	Changelog       string    `json:"changelog" yaml:"changelog"`
}

// HistoryFile is the on-disk layout: entries in the order they were logged, oldest first.
type HistoryFile struct {
	Entries []HistoryEntry `yaml:"entries"`
}

// Last returns up to n of the newest entries, newest first.
func (h *HistoryFile) Last(n int) []HistoryEntry {
	if n <= 0 || n > len(h.Entries) {
		n = len(h.Entries)
	}
	out := make([]HistoryEntry, 0, n)
	for i := len(h.Entries) - 1; i >= len(h.Entries)-n; i-- {
		out = append(out, h.Entries[i])
	}
	return out
}

// FindVersion returns the newest entry recording version, or nil.
func (h *HistoryFile) FindVersion(version string) *HistoryEntry {
	for i := len(h.Entries) - 1; i >= 0; i-- {
		if h.Entries[i].Version == version {
			return &h.Entries[i]
		}
	}
	return nil
}

// Path returns the history file path for stateDir.
func Path(stateDir string) string {
	return filepath.Join(stateDir, FileName)
}

// LoadHistory reads the history file. A missing file yields an empty history.
func LoadHistory(stateDir string) (*HistoryFile, error) {
	data, err := os.ReadFile(Path(stateDir))
	if os.IsNotExist(err) {
		return &HistoryFile{Entries: []HistoryEntry{}}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading history file: %w", err)
	}

	var h HistoryFile
	if err := yaml.Unmarshal(data, &h); err != nil {
		return nil, fmt.Errorf("parsing history file %s: %w", Path(stateDir), err)
	}
	if h.Entries == nil {
		h.Entries = []HistoryEntry{}
	}
	return &h, nil
}

// SaveHistory writes the history file, replacing it atomically.
func SaveHistory(stateDir string, h *HistoryFile) error {
	if err := os.MkdirAll(stateDir, 0o755); err != nil {
		return fmt.Errorf("creating state directory: %w", err)
	}

	data, err := yaml.Marshal(h)
	if err != nil {
		return fmt.Errorf("encoding history: %w", err)
	}

	tmp, err := os.CreateTemp(stateDir, FileName+".*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp history file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("writing history: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("writing history: %w", err)
	}
	if err := os.Rename(tmpName, Path(stateDir)); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("replacing history file: %w", err)
	}
	return nil
}

// ClearHistory removes the history file. A missing file is not an error.
func ClearHistory(stateDir string) error {
	if err := os.Remove(Path(stateDir)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("removing history file: %w", err)
	}
	return nil
}
