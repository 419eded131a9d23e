// Package watch re-diffs a manifest against a fixed baseline every time the
// manifest file changes on disk.
package watch

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/ariel-frischer/iconlog/internal/advisor"
	"github.com/ariel-frischer/iconlog/internal/diff"
	"github.com/ariel-frischer/iconlog/internal/manifest"
)

const (
	defaultDebounce = 50 * time.Millisecond
	defaultPoll     = 100 * time.Millisecond
)

var debugLogger func(format string, args ...any)

// SetDebugLogger configures the debug logger for watch events. Pass nil to disable.
func SetDebugLogger(logger func(format string, args ...any)) {
	debugLogger = logger
}

func logDebug(format string, args ...any) {
	if debugLogger != nil {
		debugLogger(format, args...)
	}
}

// Update is the result of re-reading the watched manifest.
type Update struct {
	At time.Time
	// Manifest is nil when the file could not be read or parsed; Err says why.
	Manifest   *manifest.Manifest
	Diff       diff.Diff
	Suggestion advisor.Suggestion
	Err        error
}

// Watcher streams Updates for one manifest file. It watches the parent
// directory so that editors replacing the file by rename are still seen, and
// polls as a backup for missed events.
type Watcher struct {
	path     string
	baseline *manifest.Manifest
	watcher  *fsnotify.Watcher

	Debounce     time.Duration
	PollInterval time.Duration

	mu     sync.Mutex
	closed bool
}

// New creates a Watcher for path. baseline is what every update is diffed
// against; nil means an empty manifest.
func New(path string, baseline *manifest.Manifest) (*Watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolving %s: %w", path, err)
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating fsnotify watcher: %w", err)
	}

	return &Watcher{
		path:         abs,
		baseline:     baseline,
		watcher:      fw,
		Debounce:     defaultDebounce,
		PollInterval: defaultPoll,
	}, nil
}

// Watch starts watching. The first Update reflects the file as it is now.
// Later Updates are sent only when the file content changes. The channel is
// closed when ctx is cancelled or Close is called.
func (w *Watcher) Watch(ctx context.Context) (<-chan Update, error) {
	if err := w.watcher.Add(filepath.Dir(w.path)); err != nil {
		return nil, fmt.Errorf("watching %s: %w", filepath.Dir(w.path), err)
	}

	updates := make(chan Update, 1)
	go w.loop(ctx, updates)
	return updates, nil
}

// Close stops the watcher.
func (w *Watcher) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		return nil
	}
	w.closed = true
	return w.watcher.Close()
}

// pollInterval returns PollInterval, or the default when it is not positive.
func (w *Watcher) pollInterval() time.Duration {
	if w.PollInterval <= 0 {
		return defaultPoll
	}
	return w.PollInterval
}

func (w *Watcher) loop(ctx context.Context, updates chan<- Update) {
	defer close(updates)

	var last string
	if !w.emit(ctx, updates, &last, true) {
		return
	}

	ticker := time.NewTicker(w.pollInterval())
	defer ticker.Stop()

	var pending <-chan time.Time

	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != w.path {
				continue
			}
			logDebug("[watch] %s", event)
			pending = time.After(w.Debounce)
		case <-pending:
			pending = nil
			if !w.emit(ctx, updates, &last, false) {
				return
			}
		case <-ticker.C:
			if !w.emit(ctx, updates, &last, false) {
				return
			}
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			logDebug("[watch] watcher error: %v", err)
		}
	}
}

// emit re-reads the file and sends an Update unless the outcome matches
// *last. A read failure counts as an outcome, so a missing file is reported
// once. Returns false when ctx is done.
func (w *Watcher) emit(ctx context.Context, updates chan<- Update, last *string, force bool) bool {
	data, err := os.ReadFile(w.path)
	key := string(data)
	if err != nil {
		key = "\x00" + err.Error()
	}
	if !force && key == *last {
		return true
	}
	*last = key

	var update Update
	if err != nil {
		update = Update{At: time.Now(), Err: fmt.Errorf("reading %s: %w", w.path, err)}
	} else {
		update = w.compute(data)
	}

	select {
	case <-ctx.Done():
		return false
	case updates <- update:
		return true
	}
}

// compute parses data and diffs it against the baseline.
func (w *Watcher) compute(data []byte) Update {
	m, err := manifest.ParseStrict(data)
	if err != nil {
		return Update{At: time.Now(), Err: err}
	}
	d := diff.Compute(m, w.baseline)
	return Update{
		At:         time.Now(),
		Manifest:   m,
		Diff:       d,
		Suggestion: advisor.SuggestVersionBump(d),
	}
}
