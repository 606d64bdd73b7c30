package domain

import (
	"crypto/rand"
	"fmt"
)

// Effects holds the visual flags owned by the terminal window itself.
// They live for the session only and are never persisted.
type Effects struct {
	Flicker bool
	Warp    bool
}

// Session is the interpreter state for one program run. It is created once
// at startup and mutated only by command handlers.
type Session struct {
	ID      string
	User    string
	Host    string
	Cwd     string // cosmetic, never affects file resolution
	Effects Effects
}

// NewSession creates a session rooted at the home directory "~".
func NewSession(user, host string, effects Effects) *Session {
	return &Session{
		ID:      NewSessionID(),
		User:    user,
		Host:    host,
		Cwd:     "~",
		Effects: effects,
	}
}

// Prompt returns the prompt prefix, e.g. "info-daemon@localhost:~$".
func (s *Session) Prompt() string {
	return fmt.Sprintf("%s@%s:%s$", s.User, s.Host, s.Cwd)
}

// NewSessionID returns 8 random hex bytes for log correlation.
func NewSessionID() string {
	var b [8]byte
	_, _ = rand.Read(b[:])
	return fmt.Sprintf("%x", b[:])
}

// Project is one entry of the page's project list.
type Project struct {
	Key  string `json:"key"`
	Name string `json:"name"`
	Desc string `json:"desc"`
	URL  string `json:"url"`
}

// HasURL reports whether the project links somewhere real.
func (p Project) HasURL() bool {
	return p.URL != "" && p.URL != "#"
}

// Contact holds the page's contact details.
type Contact struct {
	Email    string `json:"email"`
	Location string `json:"location"`
}

// Link is a named outbound link, addressable by key from `open`.
type Link struct {
	Key   string `json:"key"`
	Label string `json:"label"`
	URL   string `json:"url"`
}

// ContentSnapshot is a point-in-time read of the page content.
type ContentSnapshot struct {
	About    string    `json:"about"`
	Skills   []string  `json:"skills"`
	Projects []Project `json:"projects"`
	Contact  Contact   `json:"contact"`
	Links    []Link    `json:"links"`
}

// FindProject returns the project with the given key.
func (c ContentSnapshot) FindProject(key string) (Project, bool) {
	for _, p := range c.Projects {
		if p.Key == key {
			return p, true
		}
	}
	return Project{}, false
}

// FindLink returns the link with the given key.
func (c ContentSnapshot) FindLink(key string) (Link, bool) {
	for _, l := range c.Links {
		if l.Key == key {
			return l, true
		}
	}
	return Link{}, false
}

// PlaceholderSnapshot is used until a real page has been read.
func PlaceholderSnapshot() ContentSnapshot {
	return ContentSnapshot{
		About:    "Placeholder",
		Skills:   []string{"Placeholder"},
		Projects: []Project{{Key: "key", Name: "name", Desc: "placeholder", URL: "#"}},
		Contact:  Contact{Email: "you@example.com", Location: "Night City, Net"},
		Links: []Link{
			{Key: "site", Label: "Website", URL: "https://google.com"},
			{Key: "gh", Label: "GitHub", URL: "#"},
		},
	}
}

// FileKind distinguishes virtual files from directories.
type FileKind int

const (
	KindFile FileKind = iota
	KindDirectory
)

// VirtualFile is an entry in the terminal's read-only filesystem.
type VirtualFile struct {
	Name    string
	Kind    FileKind
	Resolve func() string
}

// IsDir reports whether the entry is a directory.
func (f VirtualFile) IsDir() bool {
	return f.Kind == KindDirectory
}
