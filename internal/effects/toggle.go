package effects

import "fmt"

// Toggle is a boolean control owned by the page, like a checkbox. Whatever
// the control drives (an animation, a timer) hangs off its change listeners.
type Toggle struct {
	label     string
	checked   bool
	listeners []func(checked bool)
}

// NewToggle returns a toggle in the given state.
func NewToggle(label string, checked bool) *Toggle {
	return &Toggle{label: label, checked: checked}
}

// Label returns the control's display label.
func (t *Toggle) Label() string { return t.label }

// Checked returns the current state.
func (t *Toggle) Checked() bool { return t.checked }

// SetChecked changes the state without notifying listeners.
func (t *Toggle) SetChecked(v bool) { t.checked = v }

// OnChange registers a change listener.
func (t *Toggle) OnChange(fn func(checked bool)) {
	t.listeners = append(t.listeners, fn)
}

// DispatchChange notifies every listener of the current state.
func (t *Toggle) DispatchChange() {
	for _, fn := range t.listeners {
		fn(t.checked)
	}
}

// Click flips the state and notifies listeners, as a user activation would.
func (t *Toggle) Click() {
	t.checked = !t.checked
	t.DispatchChange()
}

// Controls is the Bridge over the page's named toggles.
type Controls struct {
	toggles map[string]*Toggle
}

// NewControls returns an empty control set.
func NewControls() *Controls {
	return &Controls{toggles: make(map[string]*Toggle)}
}

// Register makes t reachable under key. A nil toggle leaves key absent.
func (c *Controls) Register(key string, t *Toggle) {
	if t == nil {
		return
	}
	c.toggles[key] = t
}

// Lookup returns the toggle for key.
func (c *Controls) Lookup(key string) (*Toggle, bool) {
	t, ok := c.toggles[key]
	return t, ok
}

// Read implements Bridge.
func (c *Controls) Read(key string) (bool, error) {
	t, ok := c.toggles[key]
	if !ok {
		return false, fmt.Errorf("%s: %w", key, ErrToggleNotFound)
	}
	return t.Checked(), nil
}

// Write sets the control's state and emits the same change notification a
// user click would, so the control's own listeners do the work.
func (c *Controls) Write(key string, on bool) error {
	t, ok := c.toggles[key]
	if !ok {
		return fmt.Errorf("%s: %w", key, ErrToggleNotFound)
	}
	t.SetChecked(on)
	t.DispatchChange()
	return nil
}
