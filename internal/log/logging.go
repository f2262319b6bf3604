// Package log wires up the process-wide structured logger. steamswap is a
// short-lived CLI, so log records go to a file rather than stderr to keep
// command output clean.
package log

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/dmaher/steamswap/internal/config"
)

// Setup opens the configured log file and returns a JSON slog logger
// writing to it. An empty file path disables logging entirely.
func Setup(cfg *config.LoggingConfig) (*slog.Logger, error) {
	if cfg.File == "" {
		return NullLogger(), nil
	}
	if err := os.MkdirAll(filepath.Dir(cfg.File), 0755); err != nil {
		return nil, fmt.Errorf("create log directory: %w", err)
	}
	f, err := os.OpenFile(cfg.File, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}
	handler := slog.NewJSONHandler(f, &slog.HandlerOptions{Level: level(cfg.Level)})
	return slog.New(handler), nil
}

// level maps a config string to a slog level. Unknown values fall back
// to info.
func level(s string) slog.Level {
	switch strings.ToUpper(s) {
	case "DEBUG":
		return slog.LevelDebug
	case "WARN", "WARNING":
		return slog.LevelWarn
	case "ERROR":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// NullLogger returns a logger that drops every record.
func NullLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
