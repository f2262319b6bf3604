package config

import (
	"path/filepath"
	"testing"
)

func TestExpandHome(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	tests := []struct {
		name string
		in   string
		want string
	}{
		{"tilde prefix", "~/logs/app.log", filepath.Join(home, "logs", "app.log")},
		{"bare tilde", "~", home},
		{"absolute path untouched", "/var/log/app.log", "/var/log/app.log"},
		{"relative path untouched", "logs/app.log", "logs/app.log"},
		{"empty", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := expandHome(tt.in); got != tt.want {
				t.Fatalf("expandHome(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}
