package config

import (
	"io"
	"log/slog"
)

// NewLogger returns the diagnostics logger for cfg. Debug turns on
// branch-level traces; otherwise only warnings and errors get through.
func NewLogger(w io.Writer, cfg *Config) *slog.Logger {
	level := slog.LevelWarn
	if cfg != nil && cfg.Debug {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}
