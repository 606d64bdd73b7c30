package shell

import (
	"errors"
	"slices"
	"testing"
)

func noop([]string) error { return nil }

func TestRegistry_Register(t *testing.T) {
	r := NewRegistry()

	if err := r.Register(Command{Name: "help", Handler: noop}); err != nil {
		t.Fatalf("Register(help): %v", err)
	}
	if err := r.Register(Command{Name: "history", Handler: noop}); err != nil {
		t.Fatalf("Register(history): %v", err)
	}

	t.Run("rejects duplicate", func(t *testing.T) {
		err := r.Register(Command{Name: "help", Handler: noop})
		if !errors.Is(err, ErrDuplicateCommand) {
			t.Errorf("err = %v, want ErrDuplicateCommand", err)
		}
	})

	t.Run("rejects empty name", func(t *testing.T) {
		if err := r.Register(Command{Handler: noop}); err == nil {
			t.Error("expected error")
		}
	})

	t.Run("rejects nil handler", func(t *testing.T) {
		if err := r.Register(Command{Name: "ls"}); err == nil {
			t.Error("expected error")
		}
	})

	t.Run("keeps registration order", func(t *testing.T) {
		if got := r.Names(); !slices.Equal(got, []string{"help", "history"}) {
			t.Errorf("Names() = %v", got)
		}
	})

	t.Run("lookup is exact and case-sensitive", func(t *testing.T) {
		if _, ok := r.Lookup("help"); !ok {
			t.Error("help not found")
		}
		for _, name := range []string{"Help", "hel", "help "} {
			if _, ok := r.Lookup(name); ok {
				t.Errorf("Lookup(%q) matched", name)
			}
		}
	})
}

func TestKindOf(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want ErrorKind
	}{
		{"bad argument", badArgument("flicker", "expected 'on' or 'off'"), BadArgument},
		{"not found", notFound("cat", "x: No such file or directory"), ResourceNotFound},
		{"plain error", errors.New("boom"), HandlerFault},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := KindOf(tt.err); got != tt.want {
				t.Errorf("KindOf() = %v, want %v", got, tt.want)
			}
		})
	}
	if got := badArgument("flicker", "expected %s", "on").Error(); got != "flicker: expected on" {
		t.Errorf("Error() = %q", got)
	}
}
