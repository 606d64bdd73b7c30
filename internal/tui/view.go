package tui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/infodaemon/infoterm/internal/effects"
	"github.com/infodaemon/infoterm/internal/modal"
)

const (
	siteTitle  = "info•daemon"
	closeLabel = "[×]"
)

// zone is a clickable span of one screen row.
type zone struct {
	el     *modal.Element
	row    int
	x0, x1 int // [x0, x1)
}

func (z zone) hit(x, y int) bool { return y == z.row && x >= z.x0 && x < z.x1 }

func (m *Model) openerLabel() string {
	// The arrow mirrors aria-expanded on the real page.
	if m.ctl.State() == modal.Open {
		return "[ >_ terminal ▾ ]"
	}
	return "[ >_ terminal ▸ ]"
}

func toggleLabel(t *effects.Toggle) string {
	if t.Checked() {
		return "[x] " + strings.ToLower(t.Label())
	}
	return "[ ] " + strings.ToLower(t.Label())
}

// chromeZones lays out the header rows. View and mouse hit-testing share it.
func (m *Model) chromeZones() []zone {
	x := lipgloss.Width(siteTitle) + 2
	zones := []zone{{el: m.openerEl, row: 0, x0: x, x1: x + lipgloss.Width(m.openerLabel())}}
	x = 0
	for _, c := range []struct {
		el *modal.Element
		t  *effects.Toggle
	}{{m.rainEl, m.rain}, {m.pulseEl, m.pulse}} {
		if c.t == nil {
			continue
		}
		w := lipgloss.Width(toggleLabel(c.t))
		zones = append(zones, zone{el: c.el, row: 1, x0: x, x1: x + w})
		x += w + 2
	}
	return zones
}

func (m *Model) styleFocus(el *modal.Element, s string) string {
	if m.page.Active() == el {
		return FocusStyle.Render(s)
	}
	return ButtonStyle.Render(s)
}

// View renders the page, or the terminal overlay over a dimmed backdrop.
func (m *Model) View() string {
	if m.ctl.State() == modal.Open {
		return m.overlayView()
	}
	return m.pageView()
}

func (m *Model) headerRows() []string {
	accent := accentStyle(m.anim.accent)
	rows := []string{accent.Render(siteTitle) + "  " + m.styleFocus(m.openerEl, m.openerLabel())}

	var toggles []string
	if m.rain != nil {
		toggles = append(toggles, m.styleFocus(m.rainEl, toggleLabel(m.rain)))
	}
	if m.pulse != nil {
		toggles = append(toggles, m.styleFocus(m.pulseEl, toggleLabel(m.pulse)))
	}
	rows = append(rows, strings.Join(toggles, "  "))

	if m.anim.rainOn {
		rows = append(rows, m.rainRows()...)
	}
	return rows
}

func (m *Model) rainRows() []string {
	grid := make([][]rune, rainRows)
	for i := range grid {
		grid[i] = []rune(strings.Repeat(" ", max(1, m.width)))
	}
	for _, d := range m.anim.drops {
		if d.y < rainRows && d.x < len(grid[d.y]) {
			grid[d.y][d.x] = '╎'
		}
	}
	rows := make([]string, rainRows)
	for i, g := range grid {
		rows[i] = RainStyle.Render(string(g))
	}
	return rows
}

func (m *Model) bodyRows() []string {
	c := m.pageContent
	accent := accentStyle(m.anim.accent)
	heading := func(s string) string { return HeadingStyle.Inherit(accent).Render(s) }
	w := max(10, m.width-4)

	var rows []string
	add := func(indent, text string, style lipgloss.Style) {
		for _, line := range strings.Split(text, "\n") {
			for _, wl := range hardWrapLine(line, w) {
				rows = append(rows, indent+style.Render(wl))
			}
		}
	}

	rows = append(rows, "", heading("About"))
	add("  ", c.About, BodyStyle)

	rows = append(rows, "", heading("Skills"))
	for _, s := range c.Skills {
		add("  - ", s, BodyStyle)
	}

	rows = append(rows, "", heading("Projects"))
	for _, p := range c.Projects {
		add("  * ", p.Name+" — "+p.Desc, BodyStyle)
		if p.HasURL() {
			add("      ", p.URL, MetaStyle)
		}
	}

	rows = append(rows, "", heading("Contact"))
	email := m.email
	email.Width = min(40, w-10)
	rows = append(rows, "  "+m.styleFocus(m.emailEl, "email:")+" "+email.View())
	add("  ", "location: "+c.Contact.Location, MetaStyle)
	return rows
}

func (m *Model) footer() string {
	hint := "` or ~ terminal · tab focus · enter activate · ctrl+c quit"
	if m.version != "" {
		hint = "infoterm " + m.version + " · " + hint
	}
	return MetaStyle.Render(hint)
}

func (m *Model) maxScroll() int {
	visible := m.height - len(m.headerRows()) - 1
	return max(0, len(m.bodyRows())-visible)
}

func (m *Model) pageView() string {
	header := m.headerRows()
	body := m.bodyRows()
	visible := max(0, m.height-len(header)-1)
	off := min(m.scroll, max(0, len(body)-visible))
	body = body[off:]
	if len(body) > visible {
		body = body[:visible]
	}
	for len(body) < visible {
		body = append(body, "")
	}
	rows := append(header, body...)
	rows = append(rows, m.footer())
	return strings.Join(rows, "\n")
}

// panelGeometry returns the panel's outer size and the inner content size.
func (m *Model) panelGeometry() (outerW, outerH, innerW, innerH int, style lipgloss.Style) {
	style = PanelStyle
	if m.fx.Warp {
		style = WarpPanelStyle
	}
	outerW = max(24, min(m.width-4, 96))
	outerH = max(8, min(m.height-2, 28))
	innerW = outerW - style.GetHorizontalFrameSize()
	innerH = outerH - style.GetVerticalFrameSize()
	return outerW, outerH, innerW, innerH, style
}

// panelOrigin is where lipgloss.Place puts the panel: centred, remainder
// on the right and bottom.
func (m *Model) panelOrigin() (x, y int) {
	w, h, _, _, _ := m.panelGeometry()
	return max(0, m.width-w) / 2, max(0, m.height-h) / 2
}

func (m *Model) closeZone() zone {
	x, y := m.panelOrigin()
	_, _, innerW, _, style := m.panelGeometry()
	left := x + style.GetBorderLeftSize() + style.GetPaddingLeft()
	top := y + style.GetBorderTopSize() + style.GetPaddingTop()
	return zone{el: m.closeEl, row: top, x0: left + innerW - lipgloss.Width(closeLabel), x1: left + innerW}
}

func (m *Model) overlayView() string {
	_, _, innerW, innerH, style := m.panelGeometry()
	sess := m.interp.Session()

	title := truncate(sess.Prompt()+" — terminal", innerW-lipgloss.Width(closeLabel)-1)
	gap := max(1, innerW-lipgloss.Width(title)-lipgloss.Width(closeLabel))
	titleRow := TitleBarStyle.Render(title) + strings.Repeat(" ", gap) + m.styleFocus(m.closeEl, closeLabel)

	prompt := sess.Prompt() + " "
	in := m.input
	in.Width = max(1, innerW-lipgloss.Width(prompt)-1)
	inputRow := PromptStyle.Render(prompt) + in.View()

	outH := max(1, innerH-2)
	pop := -1
	if m.fx.Flicker {
		pop = m.anim.flickerRow
	}
	out := renderOutput(m.interp.Screen().Lines(), innerW, outH, pop)
	for len(out) < outH {
		out = append([]string{""}, out...)
	}

	rows := append([]string{titleRow}, out...)
	rows = append(rows, inputRow)
	panel := style.Width(innerW + style.GetHorizontalPadding()).Render(strings.Join(rows, "\n"))

	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, panel,
		lipgloss.WithWhitespaceChars("░"),
		lipgloss.WithWhitespaceForeground(BackdropColor))
}

// handleMouse turns clicks into activations and focus changes. While the
// overlay is open a click outside the panel is a backdrop click.
func (m *Model) handleMouse(msg tea.MouseMsg) {
	defer m.syncFocus()
	press := msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft

	if m.ctl.State() == modal.Open {
		if !press {
			return
		}
		x, y := m.panelOrigin()
		w, h, _, _, _ := m.panelGeometry()
		switch {
		case msg.X < x || msg.X >= x+w || msg.Y < y || msg.Y >= y+h:
			m.ctl.ClickBackdrop()
		case m.closeZone().hit(msg.X, msg.Y):
			m.ctl.Close()
		default:
			m.page.Focus(m.inputEl)
		}
		return
	}

	switch {
	case msg.Button == tea.MouseButtonWheelUp && !m.page.ScrollLocked():
		m.scroll = max(0, m.scroll-1)
		return
	case msg.Button == tea.MouseButtonWheelDown && !m.page.ScrollLocked():
		m.scroll = min(m.scroll+1, m.maxScroll())
		return
	case !press:
		return
	}
	for _, z := range m.chromeZones() {
		if z.hit(msg.X, msg.Y) {
			m.page.Focus(z.el)
			m.activate(z.el)
			return
		}
	}
	m.page.Blur()
}
