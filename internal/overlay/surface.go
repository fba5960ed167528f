// Package overlay implements floating surfaces anchored to a trigger:
// tooltips, hover cards and dropdown menus. Each combines an open-state
// controller, a dismissal coordinator and the geometry resolver.
package overlay

import (
	"time"

	"github.com/alexisbeaulieu97/widgetry/internal/dismiss"
	"github.com/alexisbeaulieu97/widgetry/internal/dom"
	"github.com/alexisbeaulieu97/widgetry/internal/geometry"
	"github.com/alexisbeaulieu97/widgetry/internal/logger"
	"github.com/alexisbeaulieu97/widgetry/internal/openstate"
	"github.com/alexisbeaulieu97/widgetry/internal/schedule"
	apperrors "github.com/alexisbeaulieu97/widgetry/pkg/errors"
)

// Options configures a Surface. Variants fill in their own defaults.
type Options struct {
	Name     string
	Document *dom.Document
	Clock    schedule.Clock
	Trigger  dom.Element
	Content  dom.Element
	Anchor   geometry.Anchor

	OpenDelay   time.Duration
	CloseDelay  time.Duration
	Controlled  bool
	DefaultOpen bool

	OnOpenChange func(open bool)
	Logger       *logger.Logger
}

// Surface is the shared machinery of every floating component.
type Surface struct {
	name    string
	state   *openstate.Controller
	dismiss *dismiss.Coordinator
	trigger dom.Element
	content dom.Element
	anchor  geometry.Anchor
	log     *logger.Logger

	pos    geometry.Point
	placed bool
}

// NewSurface validates the element handles and wires the controller.
func NewSurface(opts Options) *Surface {
	if opts.Trigger == nil || opts.Content == nil {
		apperrors.PanicUsage("overlay", "NewSurface", "trigger and content are required")
	}
	name := opts.Name
	if name == "" {
		name = "surface"
	}
	s := &Surface{
		name:    name,
		dismiss: dismiss.New(opts.Document, opts.Logger),
		trigger: opts.Trigger,
		content: opts.Content,
		anchor:  opts.Anchor,
		log:     opts.Logger.Component("overlay").WithFields(map[string]any{"surface": name}),
	}
	s.state = openstate.New(opts.Clock, openstate.Options{
		Name:         name,
		OpenDelay:    opts.OpenDelay,
		CloseDelay:   opts.CloseDelay,
		Controlled:   opts.Controlled,
		DefaultOpen:  opts.DefaultOpen,
		OnOpenChange: opts.OnOpenChange,
		Logger:       opts.Logger,
	})
	s.state.Observe(s.onOpenChanged)
	if s.state.IsOpen() {
		s.onOpenChanged(true)
	}
	return s
}

func (s *Surface) onOpenChanged(open bool) {
	if !open {
		s.dismiss.Detach()
		s.placed = false
		return
	}
	s.dismiss.Attach(s.content, s.trigger, s.state.Dismiss)
	s.Reposition()
}

// Name returns the surface name used in logs.
func (s *Surface) Name() string { return s.name }

// Controller exposes the open-state controller.
func (s *Surface) Controller() *openstate.Controller { return s.state }

// Trigger returns the trigger element.
func (s *Surface) Trigger() dom.Element { return s.trigger }

// Content returns the content element.
func (s *Surface) Content() dom.Element { return s.content }

// Observe registers fn to run after the surface reacts to an open change.
func (s *Surface) Observe(fn func(open bool)) { s.state.Observe(fn) }

// IsOpen reports whether the surface is shown.
func (s *Surface) IsOpen() bool { return s.state.IsOpen() }

// State returns the open-state tag for conditional rendering.
func (s *Surface) State() openstate.State { return s.state.State() }

// Anchor returns the placement preference.
func (s *Surface) Anchor() geometry.Anchor { return s.anchor }

// SetAnchor changes the placement and repositions an open surface.
func (s *Surface) SetAnchor(a geometry.Anchor) {
	s.anchor = a
	if s.IsOpen() {
		s.Reposition()
	}
}

// SetOpen reports the caller-owned open flag in controlled mode.
func (s *Surface) SetOpen(open bool) { s.state.SetOpen(open) }

// Reposition measures trigger and content and resolves the content position.
// It reports false, keeping the previous position, while either element is
// not laid out yet.
func (s *Surface) Reposition() bool {
	trigger, content := s.trigger.Bounds(), s.content.Bounds()
	if !trigger.Ready() || !content.Ready() {
		s.log.Debug("measurement not ready, positioning deferred")
		return false
	}
	s.pos = geometry.Resolve(trigger, content, s.anchor)
	s.placed = true
	return true
}

// NotifyResize repositions an open surface after a layout change.
func (s *Surface) NotifyResize() {
	if s.IsOpen() {
		s.Reposition()
	}
}

// NotifyMutation repositions an open surface after its content changed.
func (s *Surface) NotifyMutation() {
	if s.IsOpen() {
		s.Reposition()
	}
}

// Position returns the resolved content position. ok is false while closed
// or before the first successful measurement.
func (s *Surface) Position() (geometry.Point, bool) {
	if !s.placed || !s.IsOpen() {
		return geometry.Point{}, false
	}
	return s.pos, true
}

// Unmount cancels pending transitions and removes document listeners.
func (s *Surface) Unmount() {
	s.state.Unmount()
	s.dismiss.Detach()
	s.placed = false
}
