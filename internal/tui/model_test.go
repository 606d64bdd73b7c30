package tui

import (
	"math/rand/v2"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/infodaemon/infoterm/internal/content"
	"github.com/infodaemon/infoterm/internal/domain"
	"github.com/infodaemon/infoterm/internal/effects"
	"github.com/infodaemon/infoterm/internal/history"
	"github.com/infodaemon/infoterm/internal/modal"
	"github.com/infodaemon/infoterm/internal/shell"
)

var fixture = domain.ContentSnapshot{
	About:    "Builder of small, sharp tools.",
	Skills:   []string{"Go: services"},
	Projects: []domain.Project{{Key: "rain-engine", Name: "Rain Engine", Desc: "Canvas rain.", URL: "https://github.com/x/rain"}},
	Contact:  domain.Contact{Email: "hello@infodaemon.dev", Location: "Cyberspace"},
	Links:    []domain.Link{{Key: "gh", Label: "GitHub", URL: "https://github.com/x"}},
}

type nopOpener struct{}

func (nopOpener) Open(string) error { return nil }

func newTestModel(t *testing.T) *Model {
	t.Helper()
	sess := domain.NewSession("info-daemon", "localhost", domain.Effects{Flicker: true, Warp: true})
	local := effects.NewLocal(&sess.Effects, nil)
	rain := effects.NewToggle("Rain", false)
	pulse := effects.NewToggle("Pulse", false)
	controls := effects.NewControls()
	controls.Register(effects.Rain, rain)
	controls.Register(effects.Pulse, pulse)

	in, err := shell.New(shell.Options{
		Session: sess,
		History: history.New(history.NewMemoryStorage(), nil),
		Content: content.Static{Content: fixture},
		Bridge:  effects.NewMux(local, controls),
		Opener:  nopOpener{},
		Clock:   func() time.Time { return time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC) },
	})
	if err != nil {
		t.Fatal(err)
	}
	m := New(Options{
		Interpreter: in,
		Local:       local,
		Content:     content.Static{Content: fixture},
		Rain:        rain,
		Pulse:       pulse,
		Rand:        rand.New(rand.NewPCG(1, 2)),
	})
	m.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	return m
}

func typeText(m *Model, s string) {
	for _, r := range s {
		m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
}

func press(m *Model, k tea.KeyType) tea.Cmd {
	_, cmd := m.Update(tea.KeyMsg{Type: k})
	return cmd
}

func click(m *Model, x, y int) {
	m.Update(tea.MouseMsg{X: x, Y: y, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
}

func lastOutput(m *Model) string {
	lines := m.interp.Screen().Lines()
	if len(lines) == 0 {
		return ""
	}
	return lines[len(lines)-1].Text
}

func TestModel_HotkeyOpensTerminal(t *testing.T) {
	m := newTestModel(t)
	typeText(m, "`")

	if m.ctl.State() != modal.Open {
		t.Fatal("hotkey did not open the terminal")
	}
	if m.page.Active() != m.inputEl || !m.input.Focused() {
		t.Error("terminal input should have focus")
	}
	if m.input.Value() != "" {
		t.Errorf("hotkey leaked into input: %q", m.input.Value())
	}
	if !strings.Contains(m.View(), "Welcome, info-daemon.") {
		t.Error("banner not shown")
	}
}

func TestModel_SubmitRecallComplete(t *testing.T) {
	m := newTestModel(t)
	typeText(m, "~")

	typeText(m, "whoami")
	press(m, tea.KeyEnter)
	if got := lastOutput(m); got != "info-daemon" {
		t.Errorf("output = %q", got)
	}
	if m.input.Value() != "" {
		t.Errorf("input not cleared: %q", m.input.Value())
	}

	press(m, tea.KeyUp)
	if m.input.Value() != "whoami" {
		t.Errorf("recall = %q", m.input.Value())
	}
	press(m, tea.KeyDown)
	if m.input.Value() != "" {
		t.Errorf("recall next = %q", m.input.Value())
	}

	typeText(m, "ab")
	press(m, tea.KeyTab)
	if m.input.Value() != "about " {
		t.Errorf("autocomplete = %q", m.input.Value())
	}
	if m.page.Active() != m.inputEl {
		t.Error("tab moved focus away from the input")
	}
}

func TestModel_EscapeRestoresFocus(t *testing.T) {
	m := newTestModel(t)
	x0 := lipgloss.Width(siteTitle) + 2
	click(m, x0, 0)
	if m.ctl.State() != modal.Open {
		t.Fatal("opener click did not open")
	}
	if !strings.Contains(m.openerLabel(), "▾") {
		t.Error("opener should render expanded")
	}

	press(m, tea.KeyEsc)
	if m.ctl.State() != modal.Closed {
		t.Fatal("escape did not close")
	}
	if m.page.Active() != m.openerEl {
		t.Errorf("focus = %v, want opener", m.page.Active())
	}
	if m.page.ScrollLocked() {
		t.Error("scroll lock not released")
	}
}

func TestModel_HotkeyTypesIntoEmail(t *testing.T) {
	m := newTestModel(t)
	for range 4 { // opener, rain, pulse, email
		press(m, tea.KeyTab)
	}
	if m.page.Active() != m.emailEl {
		t.Fatalf("focus = %v, want email", m.page.Active())
	}
	typeText(m, "a~b")
	if m.ctl.State() != modal.Closed {
		t.Error("hotkey opened the terminal from the email field")
	}
	if m.email.Value() != "a~b" {
		t.Errorf("email = %q", m.email.Value())
	}
}

func TestModel_BackdropClick(t *testing.T) {
	m := newTestModel(t)
	typeText(m, "`")
	click(m, 50, 20) // inside the panel
	if m.ctl.State() != modal.Open {
		t.Fatal("panel click closed the terminal")
	}
	click(m, 0, 0)
	if m.ctl.State() != modal.Closed {
		t.Error("backdrop click did not close")
	}
}

func TestModel_CloseButton(t *testing.T) {
	m := newTestModel(t)
	typeText(m, "`")
	z := m.closeZone()
	click(m, z.x0, z.row)
	if m.ctl.State() != modal.Closed {
		t.Error("close button did not close")
	}
}

func TestModel_RainCommandDrivesAnimation(t *testing.T) {
	m := newTestModel(t)
	typeText(m, "`")
	typeText(m, "rain on")
	cmd := press(m, tea.KeyEnter)

	if !m.rain.Checked() || !m.anim.rainOn {
		t.Fatal("rain control or animation not on")
	}
	if cmd == nil {
		t.Error("expected a rain tick to be scheduled")
	}
	gen := m.anim.rainGen
	if m.handleRainTick(rainTickMsg{gen: gen}) == nil {
		t.Error("live tick should reschedule")
	}

	typeText(m, "rain off")
	press(m, tea.KeyEnter)
	if m.anim.rainOn {
		t.Error("rain still animating")
	}
	if m.handleRainTick(rainTickMsg{gen: gen}) != nil {
		t.Error("stale tick should be dropped")
	}
}

func TestModel_PulseCheckboxClick(t *testing.T) {
	m := newTestModel(t)
	var pulse zone
	for _, z := range m.chromeZones() {
		if z.el == m.pulseEl {
			pulse = z
		}
	}
	click(m, pulse.x0, pulse.row)
	if !m.pulse.Checked() || !m.anim.pulseOn {
		t.Fatal("pulse not started")
	}
	m.handlePulseTick(pulseTickMsg{gen: m.anim.pulseGen})
	if m.anim.accent != 1 {
		t.Errorf("accent = %d", m.anim.accent)
	}
	click(m, pulse.x0, pulse.row)
	if m.pulse.Checked() || m.anim.pulseOn || m.anim.accent != 0 {
		t.Error("pulse not stopped")
	}
}

func TestModel_WarpCommandAppliesVisuals(t *testing.T) {
	m := newTestModel(t)
	typeText(m, "`")
	typeText(m, "warp off")
	press(m, tea.KeyEnter)
	if m.fx.Warp {
		t.Error("warp still applied")
	}
	_, _, _, _, style := m.panelGeometry()
	if style.GetBorderStyle() != PanelStyle.GetBorderStyle() {
		t.Error("expected the plain panel without warp")
	}
}

func TestModel_FlickerPopsRecentLine(t *testing.T) {
	m := newTestModel(t)
	typeText(m, "`")
	for range 10 {
		typeText(m, "date")
		press(m, tea.KeyEnter)
	}
	n := m.interp.Screen().Len()
	for range 20 {
		m.handleFlickerTick()
		if r := m.anim.flickerRow; r < n-flickerWindow || r >= n {
			t.Fatalf("popped row %d of %d", r, n)
		}
	}
	seq := m.anim.flickerSeq
	m.Update(flickerEndMsg{seq: seq})
	if m.anim.flickerRow != -1 {
		t.Error("pop not cleared")
	}

	typeText(m, "flicker off")
	press(m, tea.KeyEnter)
	m.handleFlickerTick()
	if m.anim.flickerRow != -1 {
		t.Error("flicker off should not pop")
	}
}

func TestModel_PageView(t *testing.T) {
	m := newTestModel(t)
	v := m.View()
	for _, want := range []string{"About", "Builder of small, sharp tools.", "Rain Engine", "[ ] rain", "[ ] pulse", "▸"} {
		if !strings.Contains(v, want) {
			t.Errorf("page view missing %q", want)
		}
	}
}

func TestModel_ScrollLockedWhileOpen(t *testing.T) {
	m := newTestModel(t)
	m.Update(tea.WindowSizeMsg{Width: 100, Height: 8})
	press(m, tea.KeyDown)
	if m.scroll != 1 {
		t.Fatalf("scroll = %d", m.scroll)
	}
	typeText(m, "`")
	m.Update(tea.MouseMsg{Button: tea.MouseButtonWheelDown, Action: tea.MouseActionPress})
	if m.scroll != 1 {
		t.Error("page scrolled under the overlay")
	}
}

func TestToKey(t *testing.T) {
	tests := []struct {
		msg  tea.KeyMsg
		want modal.Key
	}{
		{tea.KeyMsg{Type: tea.KeyTab}, modal.Key{Name: modal.KeyTab}},
		{tea.KeyMsg{Type: tea.KeyShiftTab}, modal.Key{Name: modal.KeyTab, Shift: true}},
		{tea.KeyMsg{Type: tea.KeyEsc}, modal.Key{Name: modal.KeyEscape}},
		{tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'~'}}, modal.Key{Name: "~"}},
	}
	for _, tt := range tests {
		if got := toKey(tt.msg); got != tt.want {
			t.Errorf("toKey(%v) = %+v, want %+v", tt.msg, got, tt.want)
		}
	}

	pasted := tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'`'}, Paste: true}
	if modal.IsHotkey(toKey(pasted).Name) {
		t.Error("pasted text must not trigger the hotkey")
	}
}
