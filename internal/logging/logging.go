// Package logging builds the process logger: log/slog with a tint handler,
// coloured only when the destination is a terminal.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/lmittmann/tint"
	"github.com/mattn/go-isatty"
)

// New returns a logger writing to w at level.
func New(w io.Writer, level slog.Level) *slog.Logger {
	return slog.New(tint.NewHandler(w, &tint.Options{
		NoColor:    !isTerminal(w),
		TimeFormat: time.Kitchen,
		Level:      level,
	}))
}

// Discard drops every record.
func Discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// Open picks the destination: path when set, otherwise stderr unless
// the terminal is taken over by the TUI, in which case logs are dropped.
// The returned close func is never nil.
func Open(path string, level slog.Level, tuiOwnsTerminal bool) (*slog.Logger, func() error, error) {
	noop := func() error { return nil }
	if path == "" {
		if tuiOwnsTerminal {
			return Discard(), noop, nil
		}
		return New(os.Stderr, level), noop, nil
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, noop, fmt.Errorf("open log file: %w", err)
	}
	return New(f, level), f.Close, nil
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd())
}
