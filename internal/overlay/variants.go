package overlay

import (
	"time"

	"github.com/alexisbeaulieu97/widgetry/internal/dom"
	"github.com/alexisbeaulieu97/widgetry/internal/geometry"
)

const (
	// DefaultHoverOpenDelay is the open delay of hover-style surfaces.
	DefaultHoverOpenDelay = 700 * time.Millisecond
	// DefaultHoverCardCloseDelay leaves time to move the pointer onto the card.
	DefaultHoverCardCloseDelay = 300 * time.Millisecond
)

// TooltipDefaults returns tooltip timing and placement.
func TooltipDefaults() Options {
	return Options{
		Name:      "tooltip",
		OpenDelay: DefaultHoverOpenDelay,
		Anchor:    geometry.Anchor{Side: geometry.SideTop, Align: geometry.AlignCenter, Offset: geometry.DefaultOffset},
	}
}

// HoverCardDefaults returns hover card timing and placement.
func HoverCardDefaults() Options {
	return Options{
		Name:       "hover-card",
		OpenDelay:  DefaultHoverOpenDelay,
		CloseDelay: DefaultHoverCardCloseDelay,
		Anchor:     geometry.Anchor{Side: geometry.SideBottom, Align: geometry.AlignCenter, Offset: geometry.DefaultOffset},
	}
}

// DropdownDefaults returns dropdown menu timing and placement.
func DropdownDefaults() Options {
	return Options{
		Name:   "dropdown",
		Anchor: geometry.Anchor{Side: geometry.SideBottom, Align: geometry.AlignStart, Offset: geometry.DefaultOffset},
	}
}

// Tooltip is a hover-style label for its trigger.
type Tooltip struct {
	*Surface
}

// NewTooltip creates a tooltip. Start from TooltipDefaults.
func NewTooltip(opts Options) *Tooltip {
	return &Tooltip{Surface: NewSurface(opts)}
}

// PointerEnter is called when the pointer enters the trigger.
func (t *Tooltip) PointerEnter() { t.state.RequestOpen() }

// PointerLeave is called when the pointer leaves the trigger.
func (t *Tooltip) PointerLeave() { t.state.RequestClose() }

// Focus is called when the trigger gains keyboard focus.
func (t *Tooltip) Focus() { t.state.RequestOpen() }

// Blur is called when the trigger loses keyboard focus.
func (t *Tooltip) Blur() { t.state.RequestClose() }

// TriggerPointerDown hides the tooltip when its trigger is pressed.
func (t *Tooltip) TriggerPointerDown() { t.state.Dismiss() }

// HoverCard is a hover-style preview the pointer can move onto.
type HoverCard struct {
	*Surface
}

// NewHoverCard creates a hover card. Start from HoverCardDefaults.
func NewHoverCard(opts Options) *HoverCard {
	return &HoverCard{Surface: NewSurface(opts)}
}

// PointerEnter is called when the pointer enters the trigger.
func (h *HoverCard) PointerEnter() { h.state.RequestOpen() }

// PointerLeave is called when the pointer leaves the trigger.
func (h *HoverCard) PointerLeave() { h.state.RequestClose() }

// ContentPointerEnter keeps the card open while the pointer is over it.
func (h *HoverCard) ContentPointerEnter() { h.state.CancelPendingClose() }

// ContentPointerLeave is called when the pointer leaves the card.
func (h *HoverCard) ContentPointerLeave() { h.state.RequestClose() }

// Hover tracks pointer enter and leave for one element from document pointer
// moves.
type Hover struct {
	el     dom.Element
	inside bool
	remove func()
}

// TrackHover calls enter and leave as document pointer moves cross el.
// Stop removes the listener.
func TrackHover(doc *dom.Document, el dom.Element, enter, leave func()) *Hover {
	h := &Hover{el: el}
	h.remove = doc.OnPointerMove(func(ev dom.PointerEvent) {
		inside := ev.Target != nil && el.Contains(ev.Target)
		if inside == h.inside {
			return
		}
		h.inside = inside
		if inside {
			enter()
		} else {
			leave()
		}
	})
	return h
}

// Inside reports whether the pointer was last seen over the element.
func (h *Hover) Inside() bool { return h.inside }

// Stop removes the document listener.
func (h *Hover) Stop() { h.remove() }
