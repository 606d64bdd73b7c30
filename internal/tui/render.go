package tui

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/alecthomas/chroma/v2/quick"
	"github.com/charmbracelet/lipgloss"

	"github.com/infodaemon/infoterm/internal/shell"
)

// renderLine turns one screen line into display rows no wider than width.
func renderLine(l shell.Line, width int, pop bool) []string {
	if l.Lang != "" {
		return renderHighlighted(l.Lang, l.Text, width)
	}
	style := OutputStyle
	switch l.Kind {
	case shell.LineError:
		style = ErrorStyle
	case shell.LinePrompt:
		style = PromptStyle
	case shell.LineBoot:
		style = BootStyle
	}
	if pop {
		style = FlickerStyle
	}

	var rows []string
	for _, line := range strings.Split(l.Text, "\n") {
		for _, wl := range hardWrapLine(line, width) {
			rows = append(rows, style.Render(wl))
		}
	}
	return rows
}

// renderHighlighted syntax-highlights text using Chroma and prepends subtle
// line numbers with a gutter.
func renderHighlighted(lang, text string, width int) []string {
	var highlighted bytes.Buffer
	if err := quick.Highlight(&highlighted, text, lang, "terminal256", "dracula"); err != nil {
		highlighted.Reset()
		highlighted.WriteString(text)
	}
	plain := strings.Split(strings.TrimSuffix(text, "\n"), "\n")
	hlLines := strings.Split(strings.TrimSuffix(highlighted.String(), "\n"), "\n")
	if n := len(plain); len(hlLines) > n {
		// Trailing reset codes can land on a row of their own.
		hlLines[n-1] += strings.Join(hlLines[n:], "")
		hlLines = hlLines[:n]
	}

	out := make([]string, 0, len(hlLines))
	for i, line := range hlLines {
		gutter := CodeGutterStyle.Render(fmt.Sprintf("%3d │ ", i+1))
		if lipgloss.Width(gutter)+lipgloss.Width(line) > width {
			// Highlighted rows carry escape codes; fall back to a plain cut.
			if i < len(plain) {
				line = truncate(plain[i], width-lipgloss.Width(gutter))
			}
		}
		out = append(out, gutter+line)
	}
	return out
}

// renderOutput renders the tail of lines that fits in height rows. pop is the
// index of the line currently flickering, or -1.
func renderOutput(lines []shell.Line, width, height, pop int) []string {
	var rows []string
	for i := len(lines) - 1; i >= 0 && len(rows) < height; i-- {
		rows = append(renderLine(lines[i], width, i == pop), rows...)
	}
	if len(rows) > height {
		rows = rows[len(rows)-height:]
	}
	return rows
}

// hardWrapLine splits line into chunks of at most width display cells.
func hardWrapLine(line string, width int) []string {
	if width < 1 {
		width = 1
	}
	if lipgloss.Width(line) <= width {
		return []string{line}
	}
	var out []string
	var cur []rune
	for _, r := range line {
		if lipgloss.Width(string(append(cur, r))) > width {
			out = append(out, string(cur))
			cur = cur[:0]
		}
		cur = append(cur, r)
	}
	return append(out, string(cur))
}

func truncate(s string, width int) string {
	if width < 1 {
		return ""
	}
	if lipgloss.Width(s) <= width {
		return s
	}
	runes := []rune(s)
	for i := len(runes); i >= 0; i-- {
		if lipgloss.Width(string(runes[:i])+"…") <= width {
			return string(runes[:i]) + "…"
		}
	}
	return ""
}
