package history

import (
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Writer appends release entries to the history file with automatic pruning.
type Writer struct {
	// StateDir is the directory containing the history file.
	StateDir string
	// MaxEntries is the maximum number of entries to retain. 0 keeps everything.
	MaxEntries int
	// Warn receives non-fatal logging failures (default: os.Stderr).
	Warn io.Writer

	mu  sync.Mutex
	now func() time.Time
}

// NewWriter creates a new history writer.
func NewWriter(stateDir string, maxEntries int) *Writer {
	return &Writer{
		StateDir:   stateDir,
		MaxEntries: maxEntries,
		now:        time.Now,
	}
}

// LogEntry adds entry to the history file, filling in ID and Timestamp when unset.
// Failures are reported to Warn and never fail the calling command.
func (w *Writer) LogEntry(entry HistoryEntry) {
	if _, err := w.Append(entry); err != nil {
		out := w.Warn
		if out == nil {
			out = os.Stderr
		}
		fmt.Fprintf(out, "Warning: failed to log history: %v\n", err)
	}
}

// Append adds entry to the history file and returns the stored entry.
func (w *Writer) Append(entry HistoryEntry) (HistoryEntry, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if entry.ID == "" {
		entry.ID = uuid.NewString()
	}
	if entry.Timestamp.IsZero() {
		now := w.now
		if now == nil {
			now = time.Now
		}
		entry.Timestamp = now().UTC()
	}

	h, err := LoadHistory(w.StateDir)
	if err != nil {
		return entry, fmt.Errorf("loading history: %w", err)
	}

	h.Entries = append(h.Entries, entry)

	if w.MaxEntries > 0 && len(h.Entries) > w.MaxEntries {
		excess := len(h.Entries) - w.MaxEntries
		h.Entries = h.Entries[excess:]
	}

	if err := SaveHistory(w.StateDir, h); err != nil {
		return entry, fmt.Errorf("saving history: %w", err)
	}
	return entry, nil
}
