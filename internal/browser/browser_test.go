package browser

import (
	"errors"
	"strings"
	"testing"
)

func TestLauncher(t *testing.T) {
	tests := []struct {
		goos     string
		wantName string
		wantLast string
	}{
		{"windows", "rundll32", "https://x.dev"},
		{"darwin", "open", "https://x.dev"},
		{"linux", "xdg-open", "https://x.dev"},
		{"freebsd", "xdg-open", "https://x.dev"},
	}
	for _, tt := range tests {
		t.Run(tt.goos, func(t *testing.T) {
			name, args := launcher(tt.goos, "https://x.dev")
			if name != tt.wantName {
				t.Errorf("name = %q, want %q", name, tt.wantName)
			}
			if args[len(args)-1] != tt.wantLast {
				t.Errorf("last arg = %q, want %q", args[len(args)-1], tt.wantLast)
			}
		})
	}
}

func TestSystem_Open(t *testing.T) {
	var gotArgs []string
	s := &System{run: func(name string, args ...string) error {
		gotArgs = append([]string{name}, args...)
		return nil
	}}
	if err := s.Open("https://x.dev"); err != nil {
		t.Fatalf("Open: %v", err)
	}
	if gotArgs[len(gotArgs)-1] != "https://x.dev" {
		t.Errorf("launched %v", gotArgs)
	}

	failing := &System{run: func(string, ...string) error { return errors.New("not found") }}
	err := failing.Open("https://x.dev")
	if err == nil || !strings.Contains(err.Error(), "not found") {
		t.Errorf("Open err = %v, want wrapped launcher error", err)
	}
}

func TestQRLines(t *testing.T) {
	lines := QRLines("https://infodaemon.dev")
	if len(lines) < 10 {
		t.Fatalf("expected a multi-row QR code, got %d rows", len(lines))
	}
	for i, l := range lines {
		if l == "" {
			t.Errorf("row %d is empty", i)
		}
	}
}
