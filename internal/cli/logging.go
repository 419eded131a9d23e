package cli

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/ariel-frischer/iconlog/internal/git"
	"github.com/ariel-frischer/iconlog/internal/watch"
)

// parseLevel maps a log_level value to a slog level. Unknown values mean warn.
func parseLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "error":
		return slog.LevelError
	default:
		return slog.LevelWarn
	}
}

// newLogger returns a text logger writing to w. debug forces debug level.
func newLogger(w io.Writer, level string, debug bool) *slog.Logger {
	lvl := parseLevel(level)
	if debug {
		lvl = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: lvl}))
}

// setupLogging installs the default logger and routes the git and watch
// debug hooks through it.
func setupLogging(w io.Writer, level string, debug bool) {
	logger := newLogger(w, level, debug)
	slog.SetDefault(logger)

	debugf := func(format string, args ...any) {
		logger.Debug(fmt.Sprintf(format, args...))
	}
	git.SetDebugLogger(debugf)
	watch.SetDebugLogger(debugf)
}
