// Package collapsible animates a panel's height between zero and its
// natural height.
package collapsible

import (
	"strconv"
	"time"

	"github.com/alexisbeaulieu97/widgetry/internal/logger"
	"github.com/alexisbeaulieu97/widgetry/internal/schedule"
	apperrors "github.com/alexisbeaulieu97/widgetry/pkg/errors"
)

// DefaultDuration is the animation length used when Options.Duration is zero.
const DefaultDuration = 200 * time.Millisecond

// State is the panel's position in the open/close animation.
type State int

const (
	Closed State = iota
	Opening
	Open
	Closing
)

func (s State) String() string {
	switch s {
	case Opening:
		return "opening"
	case Open:
		return "open"
	case Closing:
		return "closing"
	default:
		return "closed"
	}
}

// Height is the rendered height: a fixed value or auto.
type Height struct {
	auto bool
	px   float64
}

// Auto lets the content size the panel.
func Auto() Height { return Height{auto: true} }

// Px is an explicit height. Px(0) is fully collapsed.
func Px(v float64) Height { return Height{px: max(0, v)} }

// IsAuto reports whether the height follows the content.
func (h Height) IsAuto() bool { return h.auto }

// Value returns the explicit height, or 0 for auto.
func (h Height) Value() float64 { return h.px }

func (h Height) String() string {
	if h.auto {
		return "auto"
	}
	return strconv.FormatFloat(h.px, 'f', -1, 64)
}

// Transition is the height animation a renderer plays.
type Transition struct {
	From Height
	To   Height
}

// Measurer reports the content's natural height.
type Measurer interface {
	NaturalHeight() float64
}

// MeasureFunc adapts a function to Measurer.
type MeasureFunc func() float64

// NaturalHeight calls f.
func (f MeasureFunc) NaturalHeight() float64 { return f() }

// Options configures an Engine.
type Options struct {
	Duration     time.Duration
	DefaultOpen  bool
	OnOpenChange func(open bool)
	Logger       *logger.Logger
}

const taskSettle = "settle"

// Engine is one collapsible panel.
type Engine struct {
	clock    schedule.Clock
	measure  Measurer
	tasks    *schedule.Tasks
	duration time.Duration
	onChange func(bool)
	log      *logger.Logger

	state      State
	measured   float64
	transition Transition
	started    time.Time
	unmounted  bool
}

// New creates a panel. DefaultOpen starts settled open with auto height.
func New(clock schedule.Clock, measure Measurer, opts Options) *Engine {
	if clock == nil || measure == nil {
		apperrors.PanicUsage("collapsible", "New", "clock and measurer are required")
	}
	duration := opts.Duration
	if duration <= 0 {
		duration = DefaultDuration
	}
	e := &Engine{
		clock:      clock,
		measure:    measure,
		tasks:      schedule.NewTasks(clock),
		duration:   duration,
		onChange:   opts.OnOpenChange,
		log:        opts.Logger.Component("collapsible"),
		transition: Transition{From: Px(0), To: Px(0)},
	}
	if opts.DefaultOpen {
		e.state = Open
		e.measured = measure.NaturalHeight()
		e.transition = Transition{From: Auto(), To: Auto()}
	}
	return e
}

// State returns the animation state.
func (e *Engine) State() State {
	return e.state
}

// IsOpen reports the logical open flag, which flips as soon as a transition
// starts.
func (e *Engine) IsOpen() bool {
	return e.state == Opening || e.state == Open
}

// Height returns the height the panel should have now.
func (e *Engine) Height() Height {
	return e.transition.To
}

// Transition returns the animation in progress. Settled states report a
// transition whose ends are equal.
func (e *Engine) Transition() Transition {
	return e.transition
}

// CurrentHeight returns the height at the clock's current time. Auto
// resolves to a fresh measurement so settled panels follow their content.
func (e *Engine) CurrentHeight() float64 {
	switch e.state {
	case Opening, Closing:
		from, to := e.resolve(e.transition.From), e.resolve(e.transition.To)
		return from + (to-from)*e.progress()
	case Open:
		return e.resolve(e.transition.To)
	default:
		return 0
	}
}

func (e *Engine) resolve(h Height) float64 {
	if h.IsAuto() {
		return e.measure.NaturalHeight()
	}
	return h.Value()
}

// progress is the elapsed fraction of the running animation, in [0, 1].
func (e *Engine) progress() float64 {
	elapsed := e.clock.Now().Sub(e.started)
	if elapsed >= e.duration {
		return 1
	}
	return max(0, float64(elapsed)/float64(e.duration))
}

// MeasuredHeight returns the last measurement, or 0 once fully closed.
func (e *Engine) MeasuredHeight() float64 {
	return e.measured
}

// Mounted reports whether the content must stay rendered. It is false only
// when settled closed.
func (e *Engine) Mounted() bool {
	return e.state != Closed
}

// Open measures the natural height and animates from 0 to it. Opening an
// open or opening panel is a no-op; opening a closing panel reverses it from
// the height reached so far.
func (e *Engine) Open() {
	if e.unmounted || e.IsOpen() {
		return
	}
	from := Px(0)
	if e.state == Closing {
		from = Px(e.CurrentHeight())
		e.tasks.Cancel(taskSettle)
	}
	e.measured = e.measure.NaturalHeight()
	e.state = Opening
	e.transition = Transition{From: from, To: Px(e.measured)}
	e.started = e.clock.Now()
	e.log.DebugFields("opening", map[string]any{"height": e.measured})
	e.notify(true)
	e.tasks.Schedule(taskSettle, e.duration, e.settle)
}

// Close pins the current height explicitly and animates it to 0. Closing a
// closed or closing panel is a no-op; closing an opening panel reverses it
// from the height reached so far.
func (e *Engine) Close() {
	if e.unmounted || !e.IsOpen() {
		return
	}
	e.tasks.Cancel(taskSettle)
	e.measured = e.CurrentHeight()
	e.state = Closing
	e.transition = Transition{From: Px(e.measured), To: Px(0)}
	e.started = e.clock.Now()
	e.log.DebugFields("closing", map[string]any{"height": e.measured})
	e.notify(false)
	e.tasks.Schedule(taskSettle, e.duration, e.settle)
}

// SetOpen opens or closes.
func (e *Engine) SetOpen(open bool) {
	if open {
		e.Open()
		return
	}
	e.Close()
}

// Toggle flips the logical open flag.
func (e *Engine) Toggle() {
	e.SetOpen(!e.IsOpen())
}

// Unmount cancels the pending settle and ignores further requests.
func (e *Engine) Unmount() {
	e.tasks.Close()
	e.unmounted = true
}

func (e *Engine) settle() {
	switch e.state {
	case Opening:
		e.state = Open
		e.transition = Transition{From: Auto(), To: Auto()}
	case Closing:
		e.state = Closed
		e.measured = 0
		e.transition = Transition{From: Px(0), To: Px(0)}
	}
	e.log.DebugFields("settled", map[string]any{"state": e.state.String()})
}

func (e *Engine) notify(open bool) {
	if e.onChange != nil {
		e.onChange(open)
	}
}
