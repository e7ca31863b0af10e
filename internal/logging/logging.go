package logging

import (
	"io"
	"log/slog"
	"os"
)

// NewLogger returns a JSON logger writing to stderr and installs it as the
// slog default. If verbose == true, level = Debug, else Info.
func NewLogger(verbose bool) *slog.Logger {
	log := New(os.Stderr, verbose)
	slog.SetDefault(log)
	return log
}

// New returns a JSON logger writing to w.
func New(w io.Writer, verbose bool) *slog.Logger {
	level := new(slog.LevelVar)
	if verbose {
		level.Set(slog.LevelDebug)
	} else {
		level.Set(slog.LevelInfo)
	}

	handler := slog.NewJSONHandler(w, &slog.HandlerOptions{
		Level: level,
	})
	return slog.New(handler).With("app", "proxystatus")
}
