package modal

// State is the overlay lifecycle state.
type State int

const (
	Closed State = iota
	Open
)

func (s State) String() string {
	if s == Open {
		return "open"
	}
	return "closed"
}

// Hooks are the terminal behaviours the lifecycle triggers. Any may be nil.
type Hooks struct {
	Refresh        func() // pull a fresh content snapshot
	Banner         func() // print the welcome banner
	RecallPrevious func()
	RecallNext     func()
	Autocomplete   func()
	Submit         func()
	OnStateChange  func(State)
}

// TrapFocus returns a listener that wraps Tab at the ends of the overlay.
// Tab presses anywhere else are left to the native order.
func TrapFocus(p *Page, o *Overlay) KeyListener {
	return func(e *KeyEvent) {
		if e.Name != KeyTab {
			return
		}
		var order []*Element
		for _, el := range o.Elements() {
			if p.Contains(el) {
				order = append(order, el)
			}
		}
		if len(order) == 0 {
			return
		}
		first, last := order[0], order[len(order)-1]
		switch active := p.Active(); {
		case e.Shift && active == first:
			e.PreventDefault()
			p.Focus(last)
		case !e.Shift && active == last:
			e.PreventDefault()
			p.Focus(first)
		}
	}
}

// IsHotkey reports whether name is one of the keys that toggle the overlay.
func IsHotkey(name string) bool {
	return name == "`" || name == "~"
}

// Controller is the overlay's open/close state machine.
type Controller struct {
	page      *Page
	overlay   *Overlay
	input     *Element
	hooks     Hooks
	state     State
	lastFocus *Element
	greeted   bool
	detach    []func()
}

// NewController adds overlay to page and installs the global hotkey.
// input is the overlay's text field and receives focus on open.
func NewController(page *Page, overlay *Overlay, input *Element, hooks Hooks) *Controller {
	c := &Controller{page: page, overlay: overlay, input: input, hooks: hooks}
	overlay.Hidden = true
	page.AddOverlay(overlay)
	page.AddKeyListener(c.onHotkey)
	return c
}

// State returns the current lifecycle state.
func (c *Controller) State() State { return c.state }

// Open shows the overlay. Opening an open overlay only refocuses the input.
func (c *Controller) Open() {
	if c.state == Open {
		c.page.Focus(c.input)
		return
	}
	c.lastFocus = c.page.Active()
	c.overlay.Hidden = false
	c.page.LockScroll(true)
	call(c.hooks.Refresh)
	if !c.greeted {
		c.greeted = true
		call(c.hooks.Banner)
	}
	c.page.Focus(c.input)
	c.detach = append(c.detach,
		c.page.AddKeyListener(c.onKey),
		c.overlay.AddKeyListener(TrapFocus(c.page, c.overlay)),
	)
	c.setState(Open)
}

// Close hides the overlay and restores the focus captured by Open, if that
// element is still on the page. Closing a closed overlay does nothing.
func (c *Controller) Close() {
	if c.state == Closed {
		return
	}
	c.overlay.Hidden = true
	c.page.LockScroll(false)
	for _, fn := range c.detach {
		fn()
	}
	c.detach = nil
	if c.lastFocus == nil || !c.page.Focus(c.lastFocus) {
		c.page.Blur()
	}
	c.lastFocus = nil
	c.setState(Closed)
}

// Toggle flips the state, as the opener button does.
func (c *Controller) Toggle() {
	if c.state == Open {
		c.Close()
		return
	}
	c.Open()
}

// ClickBackdrop handles a click on the dimmed area outside the panel.
func (c *Controller) ClickBackdrop() { c.Close() }

func (c *Controller) setState(s State) {
	c.state = s
	if c.hooks.OnStateChange != nil {
		c.hooks.OnStateChange(s)
	}
}

// onHotkey stays attached for the page's lifetime. It is inert while a text
// field other than the terminal input holds focus.
func (c *Controller) onHotkey(e *KeyEvent) {
	if !IsHotkey(e.Name) {
		return
	}
	if a := c.page.Active(); a != nil && a.TextEntry && a != c.input {
		return
	}
	e.PreventDefault()
	c.Toggle()
}

// onKey is attached only while open.
func (c *Controller) onKey(e *KeyEvent) {
	if e.Name == KeyEscape {
		e.PreventDefault()
		c.Close()
		return
	}
	if c.page.Active() != c.input {
		return
	}
	var hook func()
	switch e.Name {
	case KeyUp:
		hook = c.hooks.RecallPrevious
	case KeyDown:
		hook = c.hooks.RecallNext
	case KeyTab:
		hook = c.hooks.Autocomplete
	case KeyEnter:
		hook = c.hooks.Submit
	default:
		return
	}
	e.PreventDefault()
	call(hook)
}

func call(fn func()) {
	if fn != nil {
		fn()
	}
}
