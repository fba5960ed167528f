// Package dom is the narrow view of the rendering framework that widgets
// depend on: measurable elements, document-level input listeners and
// keyboard focus.
package dom

import (
	"github.com/alexisbeaulieu97/widgetry/internal/geometry"
)

// Element is a rendered element a widget holds a reference to.
type Element interface {
	// Bounds returns the current bounding rectangle. An all-zero rectangle
	// means the element is not laid out yet.
	Bounds() geometry.Rect
	// Contains reports whether target is this element or one of its descendants.
	Contains(target Element) bool
	// Focus moves keyboard focus to the element.
	Focus()
}

// PointerEvent is a pointer press, move or release.
type PointerEvent struct {
	X      float64
	Y      float64
	Target Element
}

// KeyEvent is a key press. Key uses Bubble Tea key names ("esc", "enter", "up").
type KeyEvent struct {
	Key string
}

// Key names shared by the widgets.
const (
	KeyEscape = "esc"
	KeyEnter  = "enter"
	KeyUp     = "up"
	KeyDown   = "down"
	KeyHome   = "home"
	KeyEnd    = "end"
)

type listener[E any] struct {
	id int
	fn func(E)
}

type listeners[E any] struct {
	entries []listener[E]
}

func (l *listeners[E]) add(id int, fn func(E)) {
	l.entries = append(l.entries, listener[E]{id: id, fn: fn})
}

func (l *listeners[E]) remove(id int) {
	for i, e := range l.entries {
		if e.id == id {
			l.entries = append(l.entries[:i], l.entries[i+1:]...)
			return
		}
	}
}

func (l *listeners[E]) dispatch(ev E) {
	snapshot := make([]listener[E], len(l.entries))
	copy(snapshot, l.entries)
	for _, e := range snapshot {
		// a listener may detach a later one while handling the event
		if !l.has(e.id) {
			continue
		}
		e.fn(ev)
	}
}

func (l *listeners[E]) has(id int) bool {
	for _, e := range l.entries {
		if e.id == id {
			return true
		}
	}
	return false
}

// Document owns document-level listeners, focus and the hit-testable node tree.
type Document struct {
	nextID      int
	pointerDown listeners[PointerEvent]
	pointerMove listeners[PointerEvent]
	pointerUp   listeners[PointerEvent]
	keyDown     listeners[KeyEvent]

	focused Element
	nodes   []*Node
}

// NewDocument creates an empty document.
func NewDocument() *Document {
	return &Document{}
}

// OnPointerDown registers fn for every pointer press and returns its remover.
func (d *Document) OnPointerDown(fn func(PointerEvent)) func() {
	return register(d, &d.pointerDown, fn)
}

// OnPointerMove registers fn for every pointer move and returns its remover.
func (d *Document) OnPointerMove(fn func(PointerEvent)) func() {
	return register(d, &d.pointerMove, fn)
}

// OnPointerUp registers fn for every pointer release and returns its remover.
func (d *Document) OnPointerUp(fn func(PointerEvent)) func() {
	return register(d, &d.pointerUp, fn)
}

// OnKeyDown registers fn for every key press and returns its remover.
func (d *Document) OnKeyDown(fn func(KeyEvent)) func() {
	return register(d, &d.keyDown, fn)
}

func register[E any](d *Document, l *listeners[E], fn func(E)) func() {
	d.nextID++
	id := d.nextID
	l.add(id, fn)
	removed := false
	return func() {
		if removed {
			return
		}
		removed = true
		l.remove(id)
	}
}

// ListenerCount returns the number of registered document listeners.
func (d *Document) ListenerCount() int {
	return len(d.pointerDown.entries) + len(d.pointerMove.entries) +
		len(d.pointerUp.entries) + len(d.keyDown.entries)
}

// DispatchPointerDown delivers a press. A nil target is resolved by hit testing.
func (d *Document) DispatchPointerDown(ev PointerEvent) {
	d.pointerDown.dispatch(d.resolve(ev))
}

// DispatchPointerMove delivers a move.
func (d *Document) DispatchPointerMove(ev PointerEvent) {
	d.pointerMove.dispatch(d.resolve(ev))
}

// DispatchPointerUp delivers a release.
func (d *Document) DispatchPointerUp(ev PointerEvent) {
	d.pointerUp.dispatch(d.resolve(ev))
}

// DispatchKeyDown delivers a key press.
func (d *Document) DispatchKeyDown(ev KeyEvent) {
	d.keyDown.dispatch(ev)
}

func (d *Document) resolve(ev PointerEvent) PointerEvent {
	if ev.Target == nil {
		if hit := d.HitTest(ev.X, ev.Y); hit != nil {
			ev.Target = hit
		}
	}
	return ev
}

// SetFocus records the focused element.
func (d *Document) SetFocus(el Element) {
	d.focused = el
}

// Focused returns the focused element, or nil.
func (d *Document) Focused() Element {
	return d.focused
}

// HitTest returns the topmost visible node containing the point. Nodes
// created later sit above earlier ones.
func (d *Document) HitTest(x, y float64) *Node {
	for i := len(d.nodes) - 1; i >= 0; i-- {
		n := d.nodes[i]
		if n.Visible() && n.bounds.Contains(x, y) {
			return n
		}
	}
	return nil
}
