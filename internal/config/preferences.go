package config

import (
	"encoding/json"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"
)

// History backends accepted by Preferences.HistoryBackend.
const (
	HistorySQLite = "sqlite"
	HistoryMemory = "memory"
)

// Preferences holds user-configurable terminal settings.
// Persisted to ~/.config/infoterm/config.json.
type Preferences struct {
	User    string `json:"user"`
	Host    string `json:"host,omitempty"`
	Page    string `json:"page,omitempty"`
	SiteURL string `json:"site_url,omitempty"`
	Origin  string `json:"origin,omitempty"`

	// Initial visual effects inside the terminal window.
	Flicker bool `json:"flicker"`
	Warp    bool `json:"warp"`

	// Initial state of the page-level controls.
	Rain  bool `json:"rain"`
	Pulse bool `json:"pulse"`

	HistoryBackend string `json:"history_backend,omitempty"`
}

// PrefEntry holds a single key-value preference entry for display.
type PrefEntry struct {
	Key   string
	Value string
}

// DefaultPreferences returns the default set of preferences.
func DefaultPreferences() Preferences {
	return Preferences{
		User:           "info-daemon",
		SiteURL:        "http://localhost",
		Flicker:        true,
		Warp:           true,
		HistoryBackend: HistorySQLite,
	}
}

// LoadPreferences reads preferences from ~/.config/infoterm/config.json.
// A missing or unreadable file yields the defaults.
func LoadPreferences() Preferences {
	p := DefaultPreferences()
	path := ConfigFilePath()
	if path == "" {
		return p
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return p
	}
	if err := json.Unmarshal(data, &p); err != nil {
		fmt.Fprintf(os.Stderr, "config: parse %s: %v\n", path, err)
		return DefaultPreferences()
	}
	warnInsecurePermissions(path)
	sanitizePreferences(&p)
	return p
}

// sanitizePreferences trims whitespace and restores defaults for fields that
// must never be empty. Reports whether anything changed.
func sanitizePreferences(p *Preferences) bool {
	changed := false
	def := DefaultPreferences()
	for _, f := range []*string{&p.User, &p.Host, &p.Page, &p.SiteURL, &p.Origin, &p.HistoryBackend} {
		if t := strings.TrimSpace(*f); t != *f {
			*f = t
			changed = true
		}
	}
	if p.User == "" {
		p.User = def.User
		changed = true
	}
	switch p.HistoryBackend {
	case HistorySQLite, HistoryMemory:
	default:
		p.HistoryBackend = def.HistoryBackend
		changed = true
	}
	return changed
}

// SavePreferences writes preferences to ~/.config/infoterm/config.json.
func SavePreferences(p Preferences) error {
	dir := ConfigDir()
	if dir == "" {
		return fmt.Errorf("could not determine config directory")
	}
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return fmt.Errorf("creating config dir: %w", err)
	}
	data, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	return os.WriteFile(filepath.Join(dir, "config.json"), data, 0o600)
}

// warnInsecurePermissions prints a warning to stderr if the config file is
// writable by group or others. Skipped on Windows.
func warnInsecurePermissions(path string) {
	if runtime.GOOS == "windows" {
		return
	}
	info, err := os.Stat(path)
	if err != nil {
		return
	}
	if info.Mode().Perm()&0o022 != 0 {
		fmt.Fprintf(os.Stderr, "WARNING: %s is writable by others (mode %o). Run: chmod 600 %s\n",
			path, info.Mode().Perm(), path)
	}
}

// ResolvedHost returns the configured host, falling back to the machine
// hostname and finally to "localhost".
func (p Preferences) ResolvedHost() string {
	if p.Host != "" {
		return p.Host
	}
	if h, err := os.Hostname(); err == nil && h != "" {
		return h
	}
	return "localhost"
}

// ResolvedOrigin returns the storage scope for durable data: the explicit
// origin, else scheme://host of SiteURL, else "local".
func (p Preferences) ResolvedOrigin() string {
	if p.Origin != "" {
		return p.Origin
	}
	if u, err := url.Parse(p.SiteURL); err == nil && u.Host != "" {
		return u.Scheme + "://" + u.Host
	}
	return "local"
}

// All returns all preference entries as a flat list.
func (p Preferences) All() []PrefEntry {
	return []PrefEntry{
		{"user", p.User},
		{"host", p.ResolvedHost()},
		{"page", p.Page},
		{"site_url", p.SiteURL},
		{"origin", p.ResolvedOrigin()},
		{"flicker", strconv.FormatBool(p.Flicker)},
		{"warp", strconv.FormatBool(p.Warp)},
		{"rain", strconv.FormatBool(p.Rain)},
		{"pulse", strconv.FormatBool(p.Pulse)},
		{"history_backend", p.HistoryBackend},
	}
}
