package scrollarea

import (
	"github.com/alexisbeaulieu97/widgetry/internal/dom"
	"github.com/alexisbeaulieu97/widgetry/internal/logger"
	apperrors "github.com/alexisbeaulieu97/widgetry/pkg/errors"
)

// AreaOptions configures an Area.
type AreaOptions struct {
	Viewport        Viewport
	Document        *dom.Document
	VerticalTrack   dom.Element
	HorizontalTrack dom.Element
	MinThumbRatio   float64
	Logger          *logger.Logger
}

// Area is a scroll container with one bar per axis. Both bars share the
// viewport but keep their own drag state.
type Area struct {
	vp         Viewport
	vertical   *Bar
	horizontal *Bar
}

// NewArea creates the two bars.
func NewArea(opts AreaOptions) *Area {
	if opts.Viewport == nil {
		apperrors.PanicUsage("scrollarea", "NewArea", "viewport is nil")
	}
	bar := func(axis Axis, track dom.Element) *Bar {
		return NewBar(BarOptions{
			Axis:          axis,
			Viewport:      opts.Viewport,
			Document:      opts.Document,
			Track:         track,
			MinThumbRatio: opts.MinThumbRatio,
			Logger:        opts.Logger,
		})
	}
	return &Area{
		vp:         opts.Viewport,
		vertical:   bar(Vertical, opts.VerticalTrack),
		horizontal: bar(Horizontal, opts.HorizontalTrack),
	}
}

// Bar returns the bar for axis.
func (a *Area) Bar(axis Axis) *Bar {
	if axis == Horizontal {
		return a.horizontal
	}
	return a.vertical
}

// Refresh re-reads metrics for both axes.
func (a *Area) Refresh() {
	a.vertical.Refresh()
	a.horizontal.Refresh()
}

// ScrollBy moves the offset on axis by delta, clamped, as wheel input does.
func (a *Area) ScrollBy(axis Axis, delta float64) {
	g := a.vp.Metrics(axis)
	a.vp.SetScrollOffset(axis, g.Clamp(g.Offset+delta))
	a.Bar(axis).Refresh()
}

// ScrollTo sets the offset on axis, clamped.
func (a *Area) ScrollTo(axis Axis, offset float64) {
	g := a.vp.Metrics(axis)
	a.vp.SetScrollOffset(axis, g.Clamp(offset))
	a.Bar(axis).Refresh()
}

// Thumbs returns the vertical and horizontal thumbs.
func (a *Area) Thumbs() (vertical, horizontal Thumb) {
	return a.vertical.Thumb(), a.horizontal.Thumb()
}

// Unmount releases any drag in progress.
func (a *Area) Unmount() {
	a.vertical.Release()
	a.horizontal.Release()
}
