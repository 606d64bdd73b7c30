package tui

import "github.com/charmbracelet/lipgloss"

var (
	BootStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("213"))
	PromptStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("114"))
	OutputStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	ErrorStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("203"))
	FlickerStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("231")).Bold(true)
	InputStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("255"))
	TitleBarStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))

	CodeGutterStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))

	FocusStyle    = lipgloss.NewStyle().Reverse(true)
	ButtonStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("255"))
	HeadingStyle  = lipgloss.NewStyle().Bold(true)
	BodyStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("250"))
	MetaStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	RainStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("67"))
	BackdropColor = lipgloss.Color("236")

	// Panel borders: warp gives the rounded CRT look.
	PanelStyle     = lipgloss.NewStyle().Border(lipgloss.NormalBorder()).BorderForeground(lipgloss.Color("240")).Padding(0, 1)
	WarpPanelStyle = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("114")).Padding(1, 2)
)

// accentPalette is cycled by the pulse effect. Index 0 is the resting accent.
var accentPalette = []lipgloss.Color{"213", "141", "81", "114", "222", "203"}

func accentStyle(i int) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(accentPalette[i%len(accentPalette)]).Bold(true)
}
