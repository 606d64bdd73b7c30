// Package browser opens URLs in the user's browser.
package browser

import (
	"fmt"
	"os/exec"
	"runtime"
	"strings"

	qrcode "github.com/skip2/go-qrcode"
)

// Opener opens a URL in a new browsing context.
type Opener interface {
	Open(url string) error
}

// System launches the platform URL handler.
// Supports Windows (rundll32), macOS (open), and Linux/BSD (xdg-open).
type System struct {
	// run is overridable in tests.
	run func(name string, args ...string) error
}

// NewSystem returns an Opener that uses the platform URL handler.
func NewSystem() *System {
	return &System{run: func(name string, args ...string) error {
		return exec.Command(name, args...).Start()
	}}
}

// Open implements Opener.
func (s *System) Open(url string) error {
	name, args := launcher(runtime.GOOS, url)
	if err := s.run(name, args...); err != nil {
		return fmt.Errorf("launch %s: %w", name, err)
	}
	return nil
}

func launcher(goos, url string) (string, []string) {
	switch goos {
	case "windows":
		return "rundll32", []string{"url.dll,FileProtocolHandler", url}
	case "darwin":
		return "open", []string{url}
	default:
		return "xdg-open", []string{url}
	}
}

// QRLines renders url as a compact terminal QR code, one string per row.
// It returns nil if the URL cannot be encoded.
func QRLines(url string) []string {
	q, err := qrcode.New(url, qrcode.Medium)
	if err != nil {
		return nil
	}
	return strings.Split(strings.TrimRight(q.ToSmallString(false), "\n"), "\n")
}
