// Package geometry places a floating surface next to its trigger.
//
// All coordinates are viewport units (pixels in a browser, cells in a
// terminal). Resolve is pure: callers measure both rectangles fresh on every
// positioning pass and write the returned point into their render state.
package geometry

import (
	"fmt"
	"strings"
)

// Rect is a measured bounding rectangle.
type Rect struct {
	Top    float64
	Left   float64
	Width  float64
	Height float64
}

// Ready reports whether the rectangle looks laid out. An all-zero rectangle
// means the element has not been measured yet.
func (r Rect) Ready() bool {
	return r != Rect{}
}

// Bottom returns the far edge on the vertical axis.
func (r Rect) Bottom() float64 {
	return r.Top + r.Height
}

// Right returns the far edge on the horizontal axis.
func (r Rect) Right() float64 {
	return r.Left + r.Width
}

// Contains reports whether the point lies inside the rectangle. The far
// edges are exclusive.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.Left && x < r.Right() && y >= r.Top && y < r.Bottom()
}

// Point is a resolved top/left position.
type Point struct {
	Top  float64
	Left float64
}

// Rect places a rectangle of the given size at the point.
func (p Point) Rect(width, height float64) Rect {
	return Rect{Top: p.Top, Left: p.Left, Width: width, Height: height}
}

// Side selects which edge of the trigger the surface is placed against.
type Side int

const (
	SideTop Side = iota
	SideRight
	SideBottom
	SideLeft
)

// Align selects the cross-axis alignment relative to the trigger span.
type Align int

const (
	AlignStart Align = iota
	AlignCenter
	AlignEnd
)

var (
	sideNames  = map[Side]string{SideTop: "top", SideRight: "right", SideBottom: "bottom", SideLeft: "left"}
	alignNames = map[Align]string{AlignStart: "start", AlignCenter: "center", AlignEnd: "end"}
)

func (s Side) String() string {
	if name, ok := sideNames[s]; ok {
		return name
	}
	return fmt.Sprintf("Side(%d)", int(s))
}

func (a Align) String() string {
	if name, ok := alignNames[a]; ok {
		return name
	}
	return fmt.Sprintf("Align(%d)", int(a))
}

// Vertical reports whether the side places the surface above or below the trigger.
func (s Side) Vertical() bool {
	return s == SideTop || s == SideBottom
}

// ParseSide converts a config value such as "bottom".
func ParseSide(value string) (Side, error) {
	v := strings.ToLower(strings.TrimSpace(value))
	for side, name := range sideNames {
		if name == v {
			return side, nil
		}
	}
	return SideBottom, fmt.Errorf("unknown side %q", value)
}

// ParseAlign converts a config value such as "center".
func ParseAlign(value string) (Align, error) {
	v := strings.ToLower(strings.TrimSpace(value))
	for align, name := range alignNames {
		if name == v {
			return align, nil
		}
	}
	return AlignCenter, fmt.Errorf("unknown align %q", value)
}

// Anchor relates a surface to its trigger.
type Anchor struct {
	Side   Side
	Align  Align
	Offset float64
}

// DefaultOffset is the gap between trigger and surface when none is configured.
const DefaultOffset = 4

// DefaultAnchor places the surface below the trigger, centred.
func DefaultAnchor() Anchor {
	return Anchor{Side: SideBottom, Align: AlignCenter, Offset: DefaultOffset}
}

// Resolve computes the surface position. The primary axis comes from the
// side: the surface sits fully before or after the trigger, separated by
// the offset. The cross axis comes from the alignment against the trigger's
// span. There is no collision handling; overflow is left to the caller.
func Resolve(trigger, content Rect, anchor Anchor) Point {
	var p Point

	side := anchor.Side
	if _, ok := sideNames[side]; !ok {
		side = SideBottom
	}

	switch side {
	case SideTop:
		p.Top = trigger.Top - content.Height - anchor.Offset
	case SideRight:
		p.Left = trigger.Right() + anchor.Offset
	case SideLeft:
		p.Left = trigger.Left - content.Width - anchor.Offset
	default:
		p.Top = trigger.Bottom() + anchor.Offset
	}

	if side.Vertical() {
		p.Left = cross(trigger.Left, trigger.Width, content.Width, anchor.Align)
	} else {
		p.Top = cross(trigger.Top, trigger.Height, content.Height, anchor.Align)
	}

	return p
}

func cross(start, span, size float64, align Align) float64 {
	switch align {
	case AlignStart:
		return start
	case AlignEnd:
		return start + span - size
	default:
		return start + (span-size)/2
	}
}
