// Package openstate is the open/closed state machine shared by every
// floating surface, with optional open and close delays.
package openstate

import (
	"time"

	"github.com/alexisbeaulieu97/widgetry/internal/logger"
	"github.com/alexisbeaulieu97/widgetry/internal/schedule"
	apperrors "github.com/alexisbeaulieu97/widgetry/pkg/errors"
)

// State is the controller's position in the open/close cycle.
type State int

const (
	Closed State = iota
	PendingOpen
	Open
	PendingClose
)

func (s State) String() string {
	switch s {
	case PendingOpen:
		return "pending-open"
	case Open:
		return "open"
	case PendingClose:
		return "pending-close"
	default:
		return "closed"
	}
}

const (
	taskOpen  = "open"
	taskClose = "close"
)

// Options configures a Controller.
type Options struct {
	Name       string
	OpenDelay  time.Duration
	CloseDelay time.Duration

	// Controlled hands ownership of the open flag to the caller, who reports
	// it through SetOpen on every render. The controller then only relays
	// intent through OnOpenChange.
	Controlled  bool
	DefaultOpen bool

	OnOpenChange func(open bool)
	Logger       *logger.Logger
}

// Controller owns one surface's open state.
type Controller struct {
	opts      Options
	tasks     *schedule.Tasks
	log       *logger.Logger
	open      bool
	observers []func(bool)
	unmounted bool
}

// New creates a controller. In uncontrolled mode DefaultOpen seeds the state.
func New(clock schedule.Clock, opts Options) *Controller {
	if clock == nil {
		apperrors.PanicUsage("openstate", "New", "clock is nil")
	}
	name := opts.Name
	if name == "" {
		name = "surface"
	}
	return &Controller{
		opts:  opts,
		tasks: schedule.NewTasks(clock),
		log:   opts.Logger.Component("openstate").WithFields(map[string]any{"surface": name}),
		open:  opts.DefaultOpen,
	}
}

// IsOpen reports the effective open flag.
func (c *Controller) IsOpen() bool {
	return c.open
}

// Controlled reports whether the caller owns the open flag.
func (c *Controller) Controlled() bool {
	return c.opts.Controlled
}

// State returns the four-state tag. Pending states are derived from the
// scheduled tasks, so they can never disagree with the timers.
func (c *Controller) State() State {
	switch {
	case c.tasks.Pending(taskOpen):
		return PendingOpen
	case c.tasks.Pending(taskClose):
		return PendingClose
	case c.open:
		return Open
	default:
		return Closed
	}
}

// Observe registers fn to run whenever the effective open flag changes.
func (c *Controller) Observe(fn func(open bool)) {
	c.observers = append(c.observers, fn)
}

// SetOpen reports the caller-owned open flag in controlled mode.
func (c *Controller) SetOpen(open bool) {
	if !c.opts.Controlled {
		apperrors.PanicUsage("openstate", "SetOpen", "controller is uncontrolled")
	}
	if c.unmounted || c.open == open {
		return
	}
	c.open = open
	c.changed()
}

// RequestOpen opens the surface, after OpenDelay when one is configured.
// A pending close is cancelled first.
func (c *Controller) RequestOpen() {
	if c.unmounted {
		return
	}
	c.tasks.Cancel(taskClose)
	if c.open || c.tasks.Pending(taskOpen) {
		return
	}
	if c.opts.OpenDelay > 0 {
		c.log.DebugFields("open scheduled", map[string]any{"delay_ms": c.opts.OpenDelay.Milliseconds()})
		c.tasks.Schedule(taskOpen, c.opts.OpenDelay, func() { c.commit(true) })
		return
	}
	c.commit(true)
}

// RequestClose closes the surface, after CloseDelay when one is configured.
// A pending open is cancelled first, so an open that has not fired yet never
// happens.
func (c *Controller) RequestClose() {
	if c.unmounted {
		return
	}
	if c.tasks.Cancel(taskOpen) {
		c.log.Debug("pending open cancelled")
	}
	if !c.open || c.tasks.Pending(taskClose) {
		return
	}
	if c.opts.CloseDelay > 0 {
		c.log.DebugFields("close scheduled", map[string]any{"delay_ms": c.opts.CloseDelay.Milliseconds()})
		c.tasks.Schedule(taskClose, c.opts.CloseDelay, func() { c.commit(false) })
		return
	}
	c.commit(false)
}

// Dismiss closes at once, skipping CloseDelay, and drops any pending
// transition. Outside presses and escape go through here.
func (c *Controller) Dismiss() {
	if c.unmounted {
		return
	}
	c.tasks.Cancel(taskOpen)
	c.tasks.Cancel(taskClose)
	c.commit(false)
}

// CancelPendingClose drops a scheduled close without changing state.
func (c *Controller) CancelPendingClose() {
	if c.tasks.Cancel(taskClose) {
		c.log.Debug("pending close cancelled")
	}
}

// Toggle flips the intent: an open or opening surface closes, anything else opens.
func (c *Controller) Toggle() {
	switch c.State() {
	case Open, PendingOpen:
		c.RequestClose()
	default:
		c.RequestOpen()
	}
}

// Unmount cancels every scheduled transition and turns further requests
// into no-ops.
func (c *Controller) Unmount() {
	c.tasks.Close()
	c.unmounted = true
	c.log.Debug("unmounted")
}

// Unmounted reports whether Unmount has been called.
func (c *Controller) Unmounted() bool {
	return c.unmounted
}

func (c *Controller) commit(next bool) {
	if c.open == next {
		return
	}
	c.log.DebugFields("transition", map[string]any{"open": next, "controlled": c.opts.Controlled})

	if c.opts.Controlled {
		if c.opts.OnOpenChange != nil {
			c.opts.OnOpenChange(next)
		}
		return
	}

	c.open = next
	c.changed()
	if c.opts.OnOpenChange != nil {
		c.opts.OnOpenChange(next)
	}
}

func (c *Controller) changed() {
	for _, fn := range c.observers {
		fn(c.open)
	}
}
