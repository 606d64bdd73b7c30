package tui

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"

	"github.com/infodaemon/infoterm/internal/shell"
)

func TestHardWrapLine(t *testing.T) {
	tests := []struct {
		name  string
		line  string
		width int
		want  []string
	}{
		{"fits", "hello", 10, []string{"hello"}},
		{"exact", "hello", 5, []string{"hello"}},
		{"split", "abcdefg", 3, []string{"abc", "def", "g"}},
		{"empty", "", 4, []string{""}},
		{"wide runes", "日本語", 4, []string{"日本", "語"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := hardWrapLine(tt.line, tt.width)
			if strings.Join(got, "|") != strings.Join(tt.want, "|") {
				t.Errorf("hardWrapLine(%q, %d) = %q, want %q", tt.line, tt.width, got, tt.want)
			}
		})
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		in    string
		width int
		want  string
	}{
		{"short", 10, "short"},
		{"longer text", 6, "longe…"},
		{"x", 0, ""},
	}
	for _, tt := range tests {
		if got := truncate(tt.in, tt.width); got != tt.want {
			t.Errorf("truncate(%q, %d) = %q, want %q", tt.in, tt.width, got, tt.want)
		}
	}
}

func TestRenderHighlighted(t *testing.T) {
	rows := renderHighlighted("markdown", "# Title\nbody", 80)
	if len(rows) != 2 {
		t.Fatalf("got %d rows, want 2", len(rows))
	}
	if !strings.Contains(rows[0], "1 │") || !strings.Contains(rows[1], "2 │") {
		t.Errorf("missing gutter: %q", rows)
	}
}

func TestRenderOutputKeepsTail(t *testing.T) {
	lines := []shell.Line{
		{Text: "one"},
		{Text: "two\nthree", Kind: shell.LineError},
		{Text: "four", Kind: shell.LinePrompt},
	}
	rows := renderOutput(lines, 20, 3, -1)
	if len(rows) != 3 {
		t.Fatalf("rows = %q", rows)
	}
	if !strings.Contains(rows[0], "two") || !strings.Contains(rows[2], "four") {
		t.Errorf("rows = %q", rows)
	}
	for _, r := range rows {
		if lipgloss.Width(r) > 20 {
			t.Errorf("row too wide: %q", r)
		}
	}
}
