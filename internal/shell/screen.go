package shell

// LineKind selects how a line of output is drawn.
type LineKind int

const (
	LineOutput LineKind = iota
	LineError
	LinePrompt
	LineBoot
)

// Line is one printed block. Text may span several rows.
type Line struct {
	Text string
	Kind LineKind
	Lang string // syntax for highlighting, empty for plain text
}

// Screen is the terminal's output area.
type Screen struct {
	lines []Line
}

// Print appends a normal output line.
func (s *Screen) Print(text string) {
	s.lines = append(s.lines, Line{Text: text})
}

// PrintLine appends l as is.
func (s *Screen) PrintLine(l Line) {
	s.lines = append(s.lines, l)
}

// Error appends an error line.
func (s *Screen) Error(text string) {
	s.lines = append(s.lines, Line{Text: text, Kind: LineError})
}

// Clear empties the screen.
func (s *Screen) Clear() {
	s.lines = nil
}

// Lines returns the printed lines, oldest first.
func (s *Screen) Lines() []Line {
	return s.lines
}

// Len returns the number of printed lines.
func (s *Screen) Len() int { return len(s.lines) }
