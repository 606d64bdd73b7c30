// Package content supplies the terminal's view of the page: a snapshot of
// about text, skills, projects, contact details and links.
package content

import (
	"bytes"
	_ "embed"
	"fmt"
	"io"
	"os"

	"github.com/infodaemon/infoterm/internal/domain"
)

// Adapter returns the page content as of the moment of the call. It never
// fails; missing fields are filled with placeholders.
type Adapter interface {
	Snapshot() domain.ContentSnapshot
}

// Logger receives scrape failures.
type Logger interface {
	Printf(format string, args ...any)
}

// Static is an Adapter that always returns the same snapshot.
type Static struct {
	Content domain.ContentSnapshot
}

// Snapshot implements Adapter.
func (s Static) Snapshot() domain.ContentSnapshot { return s.Content }

//go:embed default_page.html
var defaultPage []byte

// Page scrapes an HTML document every time a snapshot is requested, so
// edits to the document show up the next time the terminal opens.
type Page struct {
	open    func() (io.ReadCloser, error)
	siteURL string
	logger  Logger
	last    domain.ContentSnapshot
}

// NewFilePage scrapes the HTML file at path.
func NewFilePage(path, siteURL string, logger Logger) *Page {
	return &Page{
		open:    func() (io.ReadCloser, error) { return os.Open(path) },
		siteURL: siteURL,
		logger:  logger,
		last:    domain.PlaceholderSnapshot(),
	}
}

// NewDefaultPage scrapes the page bundled with the binary.
func NewDefaultPage(siteURL string, logger Logger) *Page {
	return &Page{
		open:    func() (io.ReadCloser, error) { return io.NopCloser(bytes.NewReader(defaultPage)), nil },
		siteURL: siteURL,
		logger:  logger,
		last:    domain.PlaceholderSnapshot(),
	}
}

// Snapshot implements Adapter. On failure the previous snapshot is kept.
func (p *Page) Snapshot() domain.ContentSnapshot {
	snap, err := p.scrape()
	if err != nil {
		if p.logger != nil {
			p.logger.Printf("content: scrape failed, keeping previous snapshot: %v", err)
		}
		return p.last
	}
	p.last = snap
	return snap
}

func (p *Page) scrape() (domain.ContentSnapshot, error) {
	rc, err := p.open()
	if err != nil {
		return domain.ContentSnapshot{}, fmt.Errorf("open page: %w", err)
	}
	defer rc.Close()
	return Scrape(rc, p.siteURL)
}
