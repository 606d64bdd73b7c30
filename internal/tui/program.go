package tui

import (
	tea "github.com/charmbracelet/bubbletea"
)

// NewProgram creates the full-screen program for m with mouse support, so
// backdrop and chrome clicks arrive as messages.
func NewProgram(m *Model, opts ...tea.ProgramOption) *tea.Program {
	opts = append([]tea.ProgramOption{tea.WithAltScreen(), tea.WithMouseCellMotion()}, opts...)
	return tea.NewProgram(m, opts...)
}
