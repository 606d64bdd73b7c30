// Package shell is the command interpreter hosted in the terminal overlay:
// tokenizing, dispatch, the command vocabulary, and autocompletion.
package shell

import (
	"fmt"
	"time"

	"github.com/infodaemon/infoterm/internal/browser"
	"github.com/infodaemon/infoterm/internal/content"
	"github.com/infodaemon/infoterm/internal/domain"
	"github.com/infodaemon/infoterm/internal/effects"
	"github.com/infodaemon/infoterm/internal/history"
)

// Logger receives diagnostics that are not shown on screen.
type Logger interface {
	Printf(format string, args ...any)
}

// Options configures an Interpreter. Session, History and Content are
// required; the rest fall back to inert defaults.
type Options struct {
	Session *domain.Session
	History *history.History
	Content content.Adapter
	Bridge  effects.Bridge
	Opener  browser.Opener
	Logger  Logger
	Clock   func() time.Time
}

// Interpreter owns the session, the screen and the command registry.
// It is not safe for concurrent use; every call happens on the UI loop.
type Interpreter struct {
	session  *domain.Session
	history  *history.History
	content  content.Adapter
	bridge   effects.Bridge
	opener   browser.Opener
	logger   Logger
	clock    func() time.Time
	registry *Registry
	screen   *Screen
	files    []domain.VirtualFile
	snapshot domain.ContentSnapshot
}

// New builds an interpreter with the full command vocabulary registered.
func New(opts Options) (*Interpreter, error) {
	if opts.Session == nil || opts.History == nil || opts.Content == nil {
		return nil, fmt.Errorf("shell: session, history and content are required")
	}
	in := &Interpreter{
		session:  opts.Session,
		history:  opts.History,
		content:  opts.Content,
		bridge:   opts.Bridge,
		opener:   opts.Opener,
		logger:   opts.Logger,
		clock:    opts.Clock,
		registry: NewRegistry(),
		screen:   &Screen{},
		snapshot: domain.PlaceholderSnapshot(),
	}
	if in.clock == nil {
		in.clock = time.Now
	}
	in.files = in.virtualFiles()
	if err := in.registerBuiltins(); err != nil {
		return nil, err
	}
	return in, nil
}

// Session returns the interpreter's session.
func (in *Interpreter) Session() *domain.Session { return in.session }

// History returns the history manager.
func (in *Interpreter) History() *history.History { return in.history }

// Screen returns the output area.
func (in *Interpreter) Screen() *Screen { return in.screen }

// Registry returns the command registry.
func (in *Interpreter) Registry() *Registry { return in.registry }

// Snapshot returns the content snapshot taken at the last Refresh.
func (in *Interpreter) Snapshot() domain.ContentSnapshot { return in.snapshot }

// Files returns the root of the virtual filesystem.
func (in *Interpreter) Files() []domain.VirtualFile { return in.files }

// Refresh pulls a fresh content snapshot from the adapter.
func (in *Interpreter) Refresh() {
	in.snapshot = in.content.Snapshot()
}

// PrintBanner prints the welcome banner. Callers decide when it is due.
func (in *Interpreter) PrintBanner() {
	in.screen.PrintLine(Line{Kind: LineBoot, Text: fmt.Sprintf("Welcome, %s. Old-school terminal engaged.", in.session.User)})
	in.screen.PrintLine(Line{Kind: LineBoot, Text: "Type help for commands. Use ↑/↓ for history, Tab to autocomplete."})
}

// Submit runs one input line. Blank input is ignored and reports false.
// Otherwise the line is echoed after the prompt, recorded in history
// (unknown commands included) and dispatched.
func (in *Interpreter) Submit(raw string) bool {
	parts := Tokenize(raw)
	if len(parts) == 0 {
		return false
	}

	in.screen.PrintLine(Line{Kind: LinePrompt, Text: in.session.Prompt() + " " + raw})
	in.history.Push(raw)
	in.Dispatch(parts[0], parts[1:])
	return true
}

// Dispatch invokes the command name with args and renders any failure as a
// single error line. It never panics.
func (in *Interpreter) Dispatch(name string, args []string) {
	cmd, ok := in.registry.Lookup(name)
	if !ok {
		in.screen.Error(name + ": command not found")
		in.screen.Print("Type 'help' to see available commands.")
		return
	}
	if err := in.invoke(cmd, args); err != nil {
		if KindOf(err) == HandlerFault {
			in.logf("shell: %s: handler fault: %v", name, err)
			in.screen.Error("error: " + err.Error())
			return
		}
		in.screen.Error(err.Error())
	}
}

func (in *Interpreter) invoke(cmd Command, args []string) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%v", r)
		}
	}()
	return cmd.Handler(args)
}

func (in *Interpreter) logf(format string, args ...any) {
	if in.logger != nil {
		in.logger.Printf(format, args...)
	}
}
