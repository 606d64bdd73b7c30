package tui

import (
	"math/rand/v2"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/infodaemon/infoterm/internal/modal"
)

const (
	flickerMin    = 500 * time.Millisecond
	flickerSpread = 1200 * time.Millisecond
	flickerHold   = 120 * time.Millisecond
	flickerWindow = 6 // candidate lines, counted from the newest

	rainInterval  = 80 * time.Millisecond
	rainRows      = 4
	pulseInterval = 900 * time.Millisecond
)

type flickerTickMsg struct{}

type flickerEndMsg struct{ seq int }

// Animation ticks carry the generation that scheduled them so a stopped
// animation's in-flight tick is dropped.
type rainTickMsg struct{ gen int }

type pulseTickMsg struct{ gen int }

type drop struct{ x, y int }

type animations struct {
	flickerRow int // screen line index being popped, -1 for none
	flickerSeq int

	rainOn  bool
	rainGen int
	drops   []drop

	pulseOn  bool
	pulseGen int
	accent   int
}

// flickerTick schedules the next pop after a fresh random 500-1700 ms.
func (m *Model) flickerTick() tea.Cmd {
	d := flickerMin + time.Duration(m.rng.Int64N(int64(flickerSpread)))
	return tea.Tick(d, func(time.Time) tea.Msg { return flickerTickMsg{} })
}

// handleFlickerTick pops one of the newest output lines while the overlay is
// open with flicker on. The timer keeps running regardless.
func (m *Model) handleFlickerTick() tea.Cmd {
	next := m.flickerTick()
	n := m.interp.Screen().Len()
	if !m.fx.Flicker || m.ctl.State() != modal.Open || n == 0 {
		return next
	}
	window := min(flickerWindow, n)
	m.anim.flickerRow = n - 1 - m.rng.IntN(window)
	m.anim.flickerSeq++
	seq := m.anim.flickerSeq
	end := tea.Tick(flickerHold, func(time.Time) tea.Msg { return flickerEndMsg{seq: seq} })
	return tea.Batch(next, end)
}

// onRainChange is the rain control's own change listener.
func (m *Model) onRainChange(on bool) {
	if on == m.anim.rainOn {
		return
	}
	if on {
		m.pending = append(m.pending, m.startRain())
		return
	}
	m.anim.rainOn = false
	m.anim.rainGen++
	m.anim.drops = nil
}

func (m *Model) startRain() tea.Cmd {
	m.anim.rainOn = true
	m.anim.rainGen++
	m.anim.resizeRain(m.width, m.rng)
	m.logf("tui: rain started")
	return rainTick(m.anim.rainGen)
}

func rainTick(gen int) tea.Cmd {
	return tea.Tick(rainInterval, func(time.Time) tea.Msg { return rainTickMsg{gen: gen} })
}

func (m *Model) handleRainTick(msg rainTickMsg) tea.Cmd {
	if !m.anim.rainOn || msg.gen != m.anim.rainGen {
		return nil
	}
	for i := range m.anim.drops {
		d := &m.anim.drops[i]
		d.y++
		if d.y >= rainRows {
			d.y = 0
			d.x = m.rng.IntN(max(1, m.width))
		}
	}
	return rainTick(msg.gen)
}

// resizeRain keeps roughly one drop per eight columns.
func (a *animations) resizeRain(width int, rng *rand.Rand) {
	if !a.rainOn {
		return
	}
	want := max(1, width/8)
	for len(a.drops) < want {
		a.drops = append(a.drops, drop{x: rng.IntN(max(1, width)), y: rng.IntN(rainRows)})
	}
	a.drops = a.drops[:want]
	for i := range a.drops {
		if a.drops[i].x >= width {
			a.drops[i].x = rng.IntN(max(1, width))
		}
	}
}

// onPulseChange is the pulse control's own change listener.
func (m *Model) onPulseChange(on bool) {
	if on == m.anim.pulseOn {
		return
	}
	if on {
		m.pending = append(m.pending, m.startPulse())
		return
	}
	m.anim.pulseOn = false
	m.anim.pulseGen++
	m.anim.accent = 0
}

func (m *Model) startPulse() tea.Cmd {
	m.anim.pulseOn = true
	m.anim.pulseGen++
	m.logf("tui: pulse started")
	return pulseTick(m.anim.pulseGen)
}

func pulseTick(gen int) tea.Cmd {
	return tea.Tick(pulseInterval, func(time.Time) tea.Msg { return pulseTickMsg{gen: gen} })
}

func (m *Model) handlePulseTick(msg pulseTickMsg) tea.Cmd {
	if !m.anim.pulseOn || msg.gen != m.anim.pulseGen {
		return nil
	}
	m.anim.accent = (m.anim.accent + 1) % len(accentPalette)
	return pulseTick(msg.gen)
}
