package scrollarea

import (
	"github.com/alexisbeaulieu97/widgetry/internal/dom"
	"github.com/alexisbeaulieu97/widgetry/internal/logger"
	apperrors "github.com/alexisbeaulieu97/widgetry/pkg/errors"
)

// BarOptions configures a Bar.
type BarOptions struct {
	Axis          Axis
	Viewport      Viewport
	Document      *dom.Document
	Track         dom.Element
	MinThumbRatio float64
	Logger        *logger.Logger
}

type drag struct {
	pointer float64
	offset  float64
	release []func()
}

// Bar is the scrollbar for one axis.
type Bar struct {
	axis     Axis
	vp       Viewport
	doc      *dom.Document
	track    dom.Element
	minRatio float64
	log      *logger.Logger

	geom Geometry
	drag *drag
}

// NewBar creates a bar and reads the initial metrics.
func NewBar(opts BarOptions) *Bar {
	if opts.Viewport == nil {
		apperrors.PanicUsage("scrollarea", "NewBar", "viewport is nil")
	}
	if opts.Document == nil || opts.Track == nil {
		apperrors.PanicUsage("scrollarea", "NewBar", "document and track are required")
	}
	minRatio := opts.MinThumbRatio
	if minRatio <= 0 {
		minRatio = DefaultMinThumbRatio
	}
	b := &Bar{
		axis:     opts.Axis,
		vp:       opts.Viewport,
		doc:      opts.Document,
		track:    opts.Track,
		minRatio: minRatio,
		log:      opts.Logger.Component("scrollbar").WithFields(map[string]any{"axis": opts.Axis.String()}),
	}
	b.Refresh()
	return b
}

// Axis returns the bar's axis.
func (b *Bar) Axis() Axis {
	return b.axis
}

// Refresh re-reads the viewport metrics. Call it on scroll, resize and
// content mutation. An offset left out of range by shrinking content is
// clamped and written back.
func (b *Bar) Refresh() {
	g := b.vp.Metrics(b.axis)
	if clamped := g.Clamp(g.Offset); clamped != g.Offset {
		b.vp.SetScrollOffset(b.axis, clamped)
		g.Offset = clamped
	}
	b.geom = g
}

// Geometry returns the metrics from the last refresh.
func (b *Bar) Geometry() Geometry {
	return b.geom
}

// Scrollable reports whether the bar has anything to scroll. Renderers hide
// bars that do not.
func (b *Bar) Scrollable() bool {
	return b.geom.Scrollable()
}

// Thumb returns the thumb size and position as percentages of the track.
func (b *Bar) Thumb() Thumb {
	ratio := b.geom.ThumbRatio(b.minRatio)
	return Thumb{
		SizePercent:     ratio * 100,
		PositionPercent: b.geom.PositionRatio() * (1 - ratio) * 100,
	}
}

// Dragging reports whether a thumb drag is in progress.
func (b *Bar) Dragging() bool {
	return b.drag != nil
}

// PointerDown handles a press on the track. A press on the thumb starts a
// drag; anywhere else on the track jumps so the press point becomes the
// thumb centre.
func (b *Bar) PointerDown(ev dom.PointerEvent) {
	b.Refresh()
	if !b.geom.Scrollable() {
		return
	}
	start, length := b.trackSpan()
	if length <= 0 {
		b.log.Debug("track not measured, press ignored")
		return
	}

	pos := b.coord(ev) - start
	ratio := b.geom.ThumbRatio(b.minRatio)
	thumbSize := ratio * length
	thumbStart := b.geom.PositionRatio() * (length - thumbSize)

	if pos >= thumbStart && pos < thumbStart+thumbSize {
		b.startDrag(b.coord(ev))
		return
	}

	target := max(0, min(pos-thumbSize/2, length-thumbSize))
	offset := 0.0
	if length > thumbSize {
		offset = target / (length - thumbSize) * b.geom.MaxOffset()
	}
	b.log.DebugFields("track click", map[string]any{"offset": offset})
	b.write(offset)
}

// Release ends a drag in progress. It is safe to call when not dragging.
func (b *Bar) Release() {
	if b.drag == nil {
		return
	}
	for _, remove := range b.drag.release {
		remove()
	}
	b.drag = nil
	b.log.Debug("drag released")
}

func (b *Bar) startDrag(pointer float64) {
	b.Release()
	d := &drag{pointer: pointer, offset: b.geom.Offset}
	d.release = []func(){
		b.doc.OnPointerMove(b.onDragMove),
		b.doc.OnPointerUp(func(dom.PointerEvent) { b.Release() }),
	}
	b.drag = d
	b.log.DebugFields("drag started", map[string]any{"offset": d.offset})
}

func (b *Bar) onDragMove(ev dom.PointerEvent) {
	if b.drag == nil {
		return
	}
	_, length := b.trackSpan()
	ratio := b.geom.ThumbRatio(b.minRatio)
	if length <= 0 || ratio >= 1 {
		return
	}
	scale := b.geom.MaxOffset() / (length * (1 - ratio))
	delta := b.coord(ev) - b.drag.pointer
	b.write(b.drag.offset + delta*scale)
}

func (b *Bar) write(offset float64) {
	offset = b.geom.Clamp(offset)
	b.vp.SetScrollOffset(b.axis, offset)
	b.Refresh()
}

func (b *Bar) trackSpan() (start, length float64) {
	r := b.track.Bounds()
	if b.axis == Horizontal {
		return r.Left, r.Width
	}
	return r.Top, r.Height
}

func (b *Bar) coord(ev dom.PointerEvent) float64 {
	if b.axis == Horizontal {
		return ev.X
	}
	return ev.Y
}
