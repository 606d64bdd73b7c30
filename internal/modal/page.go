// Package modal models the focus-locked overlay that hosts the terminal:
// the page's focusable elements, key listeners, and the open/close state
// machine with its focus trap and global hotkey.
package modal

import "slices"

// Key names carried by KeyEvent. Printable keys use the character itself.
const (
	KeyTab    = "tab"
	KeyEscape = "esc"
	KeyUp     = "up"
	KeyDown   = "down"
	KeyEnter  = "enter"
)

// Element is one focusable thing on the page. TextEntry marks fields that
// take typed text, which suppresses the global hotkey.
type Element struct {
	Name      string
	TextEntry bool
}

// Key is a key press as seen by listeners.
type Key struct {
	Name  string
	Shift bool
}

// KeyEvent is a Key in flight through the listeners.
type KeyEvent struct {
	Key
	prevented bool
}

// PreventDefault suppresses the native action and stops further listeners.
func (e *KeyEvent) PreventDefault() { e.prevented = true }

// Prevented reports whether a listener consumed the event.
func (e *KeyEvent) Prevented() bool { return e.prevented }

// KeyListener handles a key event.
type KeyListener func(*KeyEvent)

type listeners struct {
	next  int
	items []listenerEntry
}

type listenerEntry struct {
	id int
	fn KeyListener
}

func (l *listeners) add(fn KeyListener) func() {
	l.next++
	id := l.next
	l.items = append(l.items, listenerEntry{id: id, fn: fn})
	return func() {
		l.items = slices.DeleteFunc(l.items, func(e listenerEntry) bool { return e.id == id })
	}
}

// fire runs a snapshot of the listeners so they may detach themselves.
func (l *listeners) fire(e *KeyEvent) {
	for _, le := range slices.Clone(l.items) {
		if e.prevented {
			return
		}
		le.fn(e)
	}
}

// Overlay is a group of elements that can be hidden as a whole. Hidden
// elements cannot take focus.
type Overlay struct {
	Hidden    bool
	elements  []*Element
	listeners listeners
}

// NewOverlay creates a hidden overlay holding elements in tab order.
func NewOverlay(elements ...*Element) *Overlay {
	return &Overlay{Hidden: true, elements: elements}
}

// Elements returns the overlay's elements in tab order.
func (o *Overlay) Elements() []*Element { return o.elements }

// Contains reports whether el belongs to the overlay.
func (o *Overlay) Contains(el *Element) bool {
	return el != nil && slices.Contains(o.elements, el)
}

// AddKeyListener registers fn for keys pressed while focus is inside the
// overlay. The returned func detaches it.
func (o *Overlay) AddKeyListener(fn KeyListener) (remove func()) {
	return o.listeners.add(fn)
}

// Page is the document: ordered elements, the active one, scroll lock and
// document-level key listeners.
type Page struct {
	elements     []*Element
	overlays     []*Overlay
	active       *Element
	scrollLocked bool
	listeners    listeners
}

// NewPage creates a page with elements in document order.
func NewPage(elements ...*Element) *Page {
	return &Page{elements: elements}
}

// AddOverlay appends the overlay's elements to the end of the document.
func (p *Page) AddOverlay(o *Overlay) {
	p.overlays = append(p.overlays, o)
	p.elements = append(p.elements, o.elements...)
}

// Remove takes el out of the document. Focus on it is lost.
func (p *Page) Remove(el *Element) {
	p.elements = slices.DeleteFunc(p.elements, func(e *Element) bool { return e == el })
	if p.active == el {
		p.active = nil
	}
}

// Contains reports whether el is still in the document.
func (p *Page) Contains(el *Element) bool {
	return el != nil && slices.Contains(p.elements, el)
}

// Active returns the focused element, or nil.
func (p *Page) Active() *Element { return p.active }

// Focus moves focus to el if it is in the document and not hidden.
func (p *Page) Focus(el *Element) bool {
	if !p.focusable(el) {
		return false
	}
	p.active = el
	return true
}

// Blur clears focus.
func (p *Page) Blur() { p.active = nil }

// LockScroll sets the background scroll lock.
func (p *Page) LockScroll(locked bool) { p.scrollLocked = locked }

// ScrollLocked reports whether background scrolling is locked.
func (p *Page) ScrollLocked() bool { return p.scrollLocked }

// Focusable returns the elements that can take focus, in tab order.
func (p *Page) Focusable() []*Element {
	var out []*Element
	for _, el := range p.elements {
		if p.focusable(el) {
			out = append(out, el)
		}
	}
	return out
}

func (p *Page) focusable(el *Element) bool {
	if !p.Contains(el) {
		return false
	}
	for _, o := range p.overlays {
		if o.Hidden && o.Contains(el) {
			return false
		}
	}
	return true
}

// AddKeyListener registers a document-level listener. The returned func
// detaches it.
func (p *Page) AddKeyListener(fn KeyListener) (remove func()) {
	return p.listeners.add(fn)
}

// DispatchKey delivers k to listeners of the visible overlay holding focus,
// then to document listeners. An unprevented Tab moves focus natively.
func (p *Page) DispatchKey(k Key) *KeyEvent {
	e := &KeyEvent{Key: k}
	for _, o := range p.overlays {
		if !o.Hidden && o.Contains(p.active) {
			o.listeners.fire(e)
		}
	}
	p.listeners.fire(e)
	if !e.prevented && k.Name == KeyTab {
		p.TabNatively(k.Shift)
	}
	return e
}

// TabNatively moves focus to the next (or previous, with back) focusable
// element, wrapping at the ends of the document.
func (p *Page) TabNatively(back bool) {
	order := p.Focusable()
	if len(order) == 0 {
		return
	}
	i := slices.Index(order, p.active)
	switch {
	case i < 0 && back:
		i = len(order) - 1
	case i < 0:
		i = 0
	case back:
		i = (i - 1 + len(order)) % len(order)
	default:
		i = (i + 1) % len(order)
	}
	p.active = order[i]
}
