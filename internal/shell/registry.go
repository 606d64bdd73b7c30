package shell

import (
	"errors"
	"fmt"
)

// Handler runs a command with its positional arguments.
type Handler func(args []string) error

// Command is a named entry of the registry.
type Command struct {
	Name        string
	Usage       string
	Description string
	Group       string
	Handler     Handler
}

// Registry maps command names to handlers. Names are exact and
// case-sensitive. It is filled at startup and not changed afterwards.
type Registry struct {
	byName map[string]Command
	order  []string
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{byName: make(map[string]Command)}
}

// Register adds c. Empty names, nil handlers and duplicates are rejected.
func (r *Registry) Register(c Command) error {
	if c.Name == "" {
		return errors.New("register: empty command name")
	}
	if c.Handler == nil {
		return fmt.Errorf("register %s: nil handler", c.Name)
	}
	if _, ok := r.byName[c.Name]; ok {
		return fmt.Errorf("register %s: %w", c.Name, ErrDuplicateCommand)
	}
	r.byName[c.Name] = c
	r.order = append(r.order, c.Name)
	return nil
}

// Lookup returns the command registered under name.
func (r *Registry) Lookup(name string) (Command, bool) {
	c, ok := r.byName[name]
	return c, ok
}

// Names returns the registered names in registration order.
func (r *Registry) Names() []string {
	return append([]string(nil), r.order...)
}

// Commands returns the registered commands in registration order.
func (r *Registry) Commands() []Command {
	out := make([]Command, 0, len(r.order))
	for _, n := range r.order {
		out = append(out, r.byName[n])
	}
	return out
}
