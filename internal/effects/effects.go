// Package effects bridges the terminal to the visual toggles it controls:
// flicker and warp belong to the terminal window, rain and pulse belong to
// controls on the page whose behavior the terminal never runs itself.
package effects

import (
	"errors"
	"fmt"
	"strings"

	"github.com/infodaemon/infoterm/internal/domain"
)

// Toggle keys.
const (
	Flicker = "flicker"
	Warp    = "warp"
	Rain    = "rain"
	Pulse   = "pulse"
)

// ErrToggleNotFound is returned for a key with no control behind it.
var ErrToggleNotFound = errors.New("toggle not found")

// ErrInvalidSwitch is returned by ParseSwitch for anything but on/off.
var ErrInvalidSwitch = errors.New("expected 'on' or 'off'")

// Bridge reads and writes boolean toggles by key.
type Bridge interface {
	Read(key string) (bool, error)
	Write(key string, on bool) error
}

// ParseSwitch parses "on" or "off", case-insensitively.
func ParseSwitch(arg string) (bool, error) {
	switch strings.ToLower(arg) {
	case "on":
		return true, nil
	case "off":
		return false, nil
	}
	return false, ErrInvalidSwitch
}

// FormatSwitch renders a flag as "on" or "off".
func FormatSwitch(on bool) string {
	if on {
		return "on"
	}
	return "off"
}

// Visuals applies the local effect flags to whatever draws the terminal.
type Visuals interface {
	ApplyEffects(domain.Effects)
}

// Local is the Bridge for the flags stored on the session.
type Local struct {
	effects *domain.Effects
	visuals Visuals
}

// NewLocal binds the local flags to the session's effect record.
func NewLocal(effects *domain.Effects, visuals Visuals) *Local {
	return &Local{effects: effects, visuals: visuals}
}

// SetVisuals replaces the renderer the flags are applied to.
func (l *Local) SetVisuals(v Visuals) {
	l.visuals = v
	l.Apply()
}

// Apply pushes the current flags to the renderer.
func (l *Local) Apply() {
	if l.visuals != nil {
		l.visuals.ApplyEffects(*l.effects)
	}
}

// Read implements Bridge.
func (l *Local) Read(key string) (bool, error) {
	switch key {
	case Flicker:
		return l.effects.Flicker, nil
	case Warp:
		return l.effects.Warp, nil
	}
	return false, fmt.Errorf("%s: %w", key, ErrToggleNotFound)
}

// Write implements Bridge.
func (l *Local) Write(key string, on bool) error {
	switch key {
	case Flicker:
		l.effects.Flicker = on
	case Warp:
		l.effects.Warp = on
	default:
		return fmt.Errorf("%s: %w", key, ErrToggleNotFound)
	}
	l.Apply()
	return nil
}

// Mux routes local keys to a Local bridge and everything else to the
// external controls.
type Mux struct {
	local    *Local
	external Bridge
}

// NewMux combines the two bridges. external may be nil.
func NewMux(local *Local, external Bridge) *Mux {
	return &Mux{local: local, external: external}
}

func (m *Mux) route(key string) Bridge {
	if key == Flicker || key == Warp {
		return m.local
	}
	return m.external
}

// Read implements Bridge.
func (m *Mux) Read(key string) (bool, error) {
	b := m.route(key)
	if b == nil {
		return false, fmt.Errorf("%s: %w", key, ErrToggleNotFound)
	}
	return b.Read(key)
}

// Write implements Bridge.
func (m *Mux) Write(key string, on bool) error {
	b := m.route(key)
	if b == nil {
		return fmt.Errorf("%s: %w", key, ErrToggleNotFound)
	}
	return b.Write(key, on)
}
