package main

import (
	"testing"
	"unicode/utf8"
)

func TestTruncateName(t *testing.T) {
	tests := []struct {
		name  string
		in    string
		width int
		want  string
	}{
		{"fits exactly", "Portal", 6, "Portal"},
		{"shorter than width", "Portal", 40, "Portal"},
		{"truncated", "Team Fortress 2", 10, "Team Fort…"},
		{"multibyte kept whole", "ДОТА Underlords Β", 8, "ДОТА Un…"},
		{"multibyte at cut point", "Ökonomie Simulator", 4, "Öko…"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := truncateName(tt.in, tt.width)
			if got != tt.want {
				t.Fatalf("truncateName(%q, %d) = %q, want %q", tt.in, tt.width, got, tt.want)
			}
			if !utf8.ValidString(got) {
				t.Fatalf("truncateName(%q, %d) produced invalid UTF-8: %q", tt.in, tt.width, got)
			}
		})
	}
}

func TestFormatMatchedName(t *testing.T) {
	tests := []struct {
		name      string
		in        string
		matched   []int
		highlight bool
		want      string
	}{
		{"no matches", "Portal", nil, false, "Portal"},
		{"brackets", "Portal", []int{0, 3}, false, "[P]or[t]al"},
		{"underline", "cs", []int{0, 1}, true, "\x1b[4mc\x1b[0m\x1b[4ms\x1b[0m"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := formatMatchedName(tt.in, tt.matched, tt.highlight)
			if got != tt.want {
				t.Fatalf("formatMatchedName(%q, %v, %v) = %q, want %q", tt.in, tt.matched, tt.highlight, got, tt.want)
			}
		})
	}
}
