// Package scrollarea drives custom scrollbars over a scrollable viewport:
// thumb size and position derived from scroll metrics, thumb dragging and
// track clicks written back as scroll offsets.
package scrollarea

// Axis selects the vertical or horizontal scroll direction.
type Axis int

const (
	Vertical Axis = iota
	Horizontal
)

func (a Axis) String() string {
	if a == Horizontal {
		return "horizontal"
	}
	return "vertical"
}

// DefaultMinThumbRatio keeps the thumb visible on very long content.
const DefaultMinThumbRatio = 0.1

// Geometry is one axis of scroll metrics.
type Geometry struct {
	Viewport float64
	Content  float64
	Offset   float64
}

// Scrollable reports whether the content overflows the viewport.
func (g Geometry) Scrollable() bool {
	return g.Content > g.Viewport && g.Viewport > 0
}

// MaxOffset returns the largest valid scroll offset.
func (g Geometry) MaxOffset() float64 {
	if !g.Scrollable() {
		return 0
	}
	return g.Content - g.Viewport
}

// Clamp limits offset to [0, MaxOffset].
func (g Geometry) Clamp(offset float64) float64 {
	return max(0, min(offset, g.MaxOffset()))
}

// ThumbRatio returns the thumb length as a fraction of the track.
func (g Geometry) ThumbRatio(minRatio float64) float64 {
	if !g.Scrollable() {
		return 1
	}
	return min(1, max(g.Viewport/g.Content, minRatio))
}

// PositionRatio returns how far through the scrollable range the offset is,
// as a fraction of the track left over by the thumb.
func (g Geometry) PositionRatio() float64 {
	maxOffset := g.MaxOffset()
	if maxOffset == 0 {
		return 0
	}
	return g.Clamp(g.Offset) / maxOffset
}

// Viewport is the scroll container a bar reads metrics from and writes
// offsets to. The offset is the single source of truth for thumb position.
type Viewport interface {
	Metrics(axis Axis) Geometry
	SetScrollOffset(axis Axis, offset float64)
}

// Thumb is the render output for one bar.
type Thumb struct {
	SizePercent     float64
	PositionPercent float64
}
