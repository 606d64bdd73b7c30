package shell

import (
	"errors"
	"fmt"
)

// ErrorKind classifies failures surfaced at the dispatch boundary.
type ErrorKind int

const (
	UnknownCommand ErrorKind = iota
	BadArgument
	ResourceNotFound
	HandlerFault
)

func (k ErrorKind) String() string {
	switch k {
	case UnknownCommand:
		return "unknown command"
	case BadArgument:
		return "bad argument"
	case ResourceNotFound:
		return "not found"
	case HandlerFault:
		return "handler fault"
	}
	return fmt.Sprintf("ErrorKind(%d)", int(k))
}

// CommandError is an expected failure of a command, rendered as
// "<command>: <msg>".
type CommandError struct {
	Kind    ErrorKind
	Command string
	Msg     string
}

func (e *CommandError) Error() string {
	return e.Command + ": " + e.Msg
}

func badArgument(cmd, format string, args ...any) error {
	return &CommandError{Kind: BadArgument, Command: cmd, Msg: fmt.Sprintf(format, args...)}
}

func notFound(cmd, format string, args ...any) error {
	return &CommandError{Kind: ResourceNotFound, Command: cmd, Msg: fmt.Sprintf(format, args...)}
}

// KindOf reports the kind of err. Anything that is not a *CommandError is a
// HandlerFault.
func KindOf(err error) ErrorKind {
	var ce *CommandError
	if errors.As(err, &ce) {
		return ce.Kind
	}
	return HandlerFault
}

// ErrDuplicateCommand is returned when registering a name twice.
var ErrDuplicateCommand = errors.New("duplicate command")
