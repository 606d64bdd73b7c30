// Package tui is the Bubble Tea front end: the portfolio page with its
// chrome, and the terminal overlay drawn over it.
package tui

import (
	"math/rand/v2"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/infodaemon/infoterm/internal/content"
	"github.com/infodaemon/infoterm/internal/domain"
	"github.com/infodaemon/infoterm/internal/effects"
	"github.com/infodaemon/infoterm/internal/modal"
	"github.com/infodaemon/infoterm/internal/shell"
)

// Logger receives UI diagnostics.
type Logger interface {
	Printf(format string, args ...any)
}

// Options wires the model to the rest of the program. Rain and Pulse are
// nil when the page has no such control.
type Options struct {
	Interpreter *shell.Interpreter
	Local       *effects.Local
	Content     content.Adapter
	Rain        *effects.Toggle
	Pulse       *effects.Toggle
	Logger      Logger
	Version     string
	Rand        *rand.Rand
}

// Model is the Bubble Tea model. It is used by pointer: modal hooks and
// toggle listeners close over it.
type Model struct {
	interp  *shell.Interpreter
	local   *effects.Local
	content content.Adapter
	logger  Logger
	version string
	rng     *rand.Rand

	page *modal.Page
	ctl  *modal.Controller

	openerEl *modal.Element
	rainEl   *modal.Element
	pulseEl  *modal.Element
	emailEl  *modal.Element
	inputEl  *modal.Element
	closeEl  *modal.Element

	rain  *effects.Toggle
	pulse *effects.Toggle

	input textinput.Model
	email textinput.Model

	pageContent domain.ContentSnapshot
	fx          domain.Effects
	width       int
	height      int
	scroll      int

	anim    animations
	pending []tea.Cmd
}

// New builds the page, the overlay and its controller.
func New(opts Options) *Model {
	m := &Model{
		interp:  opts.Interpreter,
		local:   opts.Local,
		content: opts.Content,
		logger:  opts.Logger,
		version: opts.Version,
		rng:     opts.Rand,
		rain:    opts.Rain,
		pulse:   opts.Pulse,
		width:   80,
		height:  24,
	}
	if m.rng == nil {
		m.rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	m.anim.flickerRow = -1
	m.fx = m.interp.Session().Effects

	m.openerEl = &modal.Element{Name: "opener"}
	m.emailEl = &modal.Element{Name: "email", TextEntry: true}
	m.inputEl = &modal.Element{Name: "term-input", TextEntry: true}
	m.closeEl = &modal.Element{Name: "term-close"}

	chrome := []*modal.Element{m.openerEl}
	if m.rain != nil {
		m.rainEl = &modal.Element{Name: "rain"}
		chrome = append(chrome, m.rainEl)
		m.rain.OnChange(m.onRainChange)
	}
	if m.pulse != nil {
		m.pulseEl = &modal.Element{Name: "pulse"}
		chrome = append(chrome, m.pulseEl)
		m.pulse.OnChange(m.onPulseChange)
	}
	chrome = append(chrome, m.emailEl)

	m.page = modal.NewPage(chrome...)
	overlay := modal.NewOverlay(m.inputEl, m.closeEl)
	m.ctl = modal.NewController(m.page, overlay, m.inputEl, modal.Hooks{
		Refresh:        m.refresh,
		Banner:         m.interp.PrintBanner,
		RecallPrevious: m.recallPrevious,
		RecallNext:     m.recallNext,
		Autocomplete:   m.autocomplete,
		Submit:         m.submit,
		OnStateChange:  m.onStateChange,
	})

	m.input = textinput.New()
	m.input.Prompt = ""
	m.input.CharLimit = 512
	m.input.TextStyle = InputStyle

	m.email = textinput.New()
	m.email.Prompt = ""
	m.email.CharLimit = 254

	if m.content != nil {
		m.pageContent = m.content.Snapshot()
	} else {
		m.pageContent = domain.PlaceholderSnapshot()
	}
	m.email.Placeholder = m.pageContent.Contact.Email

	if m.local != nil {
		m.local.SetVisuals(m)
	}
	return m
}

// ApplyEffects implements effects.Visuals.
func (m *Model) ApplyEffects(e domain.Effects) {
	m.fx = e
	if !e.Flicker {
		m.anim.flickerRow = -1
	}
}

// Init starts the cursor blink, the flicker timer and any animation whose
// control starts checked.
func (m *Model) Init() tea.Cmd {
	cmds := []tea.Cmd{textinput.Blink, m.flickerTick()}
	if m.rain != nil && m.rain.Checked() {
		cmds = append(cmds, m.startRain())
	}
	if m.pulse != nil && m.pulse.Checked() {
		cmds = append(cmds, m.startPulse())
	}
	return tea.Batch(cmds...)
}

// Update handles Bubble Tea messages.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.anim.resizeRain(m.width, m.rng)
		return m, nil

	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return m, tea.Quit
		}
		cmd := m.handleKey(msg)
		return m, tea.Batch(append(m.flush(), cmd)...)

	case tea.MouseMsg:
		m.handleMouse(msg)
		return m, tea.Batch(m.flush()...)

	case flickerTickMsg:
		return m, m.handleFlickerTick()

	case flickerEndMsg:
		if msg.seq == m.anim.flickerSeq {
			m.anim.flickerRow = -1
		}
		return m, nil

	case rainTickMsg:
		return m, m.handleRainTick(msg)

	case pulseTickMsg:
		return m, m.handlePulseTick(msg)
	}

	// Cursor blink and similar belong to whichever field has focus.
	var cmd tea.Cmd
	switch m.page.Active() {
	case m.inputEl:
		m.input, cmd = m.input.Update(msg)
	case m.emailEl:
		m.email, cmd = m.email.Update(msg)
	}
	return m, cmd
}

// handleKey routes a key through the page's listeners first. Only keys no
// listener consumed get their native behaviour.
func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	ev := m.page.DispatchKey(toKey(msg))
	defer m.syncFocus()
	if ev.Prevented() || msg.Type == tea.KeyTab || msg.Type == tea.KeyShiftTab {
		return nil
	}

	active := m.page.Active()
	var cmd tea.Cmd
	switch {
	case active == m.inputEl:
		m.input, cmd = m.input.Update(msg)
	case active == m.emailEl:
		m.email, cmd = m.email.Update(msg)
	case isActivation(msg) && active != nil:
		m.activate(active)
	case m.ctl.State() == modal.Closed && !m.page.ScrollLocked():
		m.scrollPage(msg)
	}
	return cmd
}

// activate is a click or Enter/Space on a button-like element.
func (m *Model) activate(el *modal.Element) {
	switch el {
	case m.openerEl:
		m.ctl.Toggle()
	case m.closeEl:
		m.ctl.Close()
	case m.rainEl:
		m.rain.Click()
	case m.pulseEl:
		m.pulse.Click()
	}
}

func (m *Model) scrollPage(msg tea.KeyMsg) {
	switch msg.Type {
	case tea.KeyUp, tea.KeyPgUp:
		m.scroll = max(0, m.scroll-1)
	case tea.KeyDown, tea.KeyPgDown:
		m.scroll = min(m.scroll+1, m.maxScroll())
	case tea.KeyHome:
		m.scroll = 0
	}
}

// syncFocus mirrors the page's active element onto the text fields.
func (m *Model) syncFocus() {
	if m.page.Active() == m.inputEl {
		if !m.input.Focused() {
			m.pending = append(m.pending, m.input.Focus())
		}
	} else {
		m.input.Blur()
	}
	if m.page.Active() == m.emailEl {
		if !m.email.Focused() {
			m.pending = append(m.pending, m.email.Focus())
		}
	} else {
		m.email.Blur()
	}
}

// flush returns and clears commands queued by hooks and toggle listeners,
// which run synchronously inside Update.
func (m *Model) flush() []tea.Cmd {
	cmds := m.pending
	m.pending = nil
	return cmds
}

func (m *Model) refresh() {
	m.interp.Refresh()
	m.pageContent = m.interp.Snapshot()
}

func (m *Model) recallPrevious() {
	if line, ok := m.interp.History().Previous(); ok {
		m.setInput(line)
	}
}

func (m *Model) recallNext() {
	if line, ok := m.interp.History().Next(); ok {
		m.setInput(line)
	}
}

func (m *Model) autocomplete() {
	m.setInput(m.interp.Complete(m.input.Value()))
}

func (m *Model) submit() {
	raw := m.input.Value()
	m.input.Reset()
	m.interp.Submit(raw)
	if m.anim.flickerRow >= m.interp.Screen().Len() {
		m.anim.flickerRow = -1
	}
}

func (m *Model) setInput(s string) {
	m.input.SetValue(s)
	m.input.CursorEnd()
}

func (m *Model) onStateChange(s modal.State) {
	if s == modal.Open && m.local != nil {
		m.local.Apply()
	}
	m.logf("tui: terminal %s", s)
}

func (m *Model) logf(format string, args ...any) {
	if m.logger != nil {
		m.logger.Printf(format, args...)
	}
}

// toKey maps a Bubble Tea key to the page's key names.
func toKey(msg tea.KeyMsg) modal.Key {
	switch msg.Type {
	case tea.KeyTab:
		return modal.Key{Name: modal.KeyTab}
	case tea.KeyShiftTab:
		return modal.Key{Name: modal.KeyTab, Shift: true}
	case tea.KeyEsc:
		return modal.Key{Name: modal.KeyEscape}
	case tea.KeyUp:
		return modal.Key{Name: modal.KeyUp}
	case tea.KeyDown:
		return modal.Key{Name: modal.KeyDown}
	case tea.KeyEnter:
		return modal.Key{Name: modal.KeyEnter}
	case tea.KeyRunes:
		if !msg.Paste && len(msg.Runes) == 1 {
			return modal.Key{Name: string(msg.Runes)}
		}
	}
	return modal.Key{Name: msg.String()}
}

func isActivation(msg tea.KeyMsg) bool {
	return msg.Type == tea.KeyEnter || msg.Type == tea.KeySpace ||
		(msg.Type == tea.KeyRunes && string(msg.Runes) == " ")
}
