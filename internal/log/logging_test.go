package log

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/dmaher/steamswap/internal/config"
)

func TestLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
	}{
		{"DEBUG", slog.LevelDebug},
		{"debug", slog.LevelDebug},
		{"INFO", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"WARNING", slog.LevelWarn},
		{"error", slog.LevelError},
		{"", slog.LevelInfo},
		{"bogus", slog.LevelInfo},
	}
	for _, tt := range tests {
		if got := level(tt.in); got != tt.want {
			t.Errorf("level(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestSetupWritesLogFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "steamswap.log")

	logger, err := Setup(&config.LoggingConfig{File: path, Level: "DEBUG"})
	if err != nil {
		t.Fatalf("Setup() error = %v", err)
	}
	logger.Info("hello", "answer", 42)

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading log file: %v", err)
	}
	if len(data) == 0 {
		t.Fatal("log file is empty")
	}
}

func TestSetupEmptyFileDiscards(t *testing.T) {
	logger, err := Setup(&config.LoggingConfig{})
	if err != nil {
		t.Fatalf("Setup() error = %v", err)
	}
	if logger == nil {
		t.Fatal("Setup() returned nil logger")
	}
	logger.Info("dropped")
}
