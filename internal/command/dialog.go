package command

import (
	"github.com/alexisbeaulieu97/widgetry/internal/dismiss"
	"github.com/alexisbeaulieu97/widgetry/internal/dom"
	"github.com/alexisbeaulieu97/widgetry/internal/logger"
	"github.com/alexisbeaulieu97/widgetry/internal/openstate"
	"github.com/alexisbeaulieu97/widgetry/internal/schedule"
	apperrors "github.com/alexisbeaulieu97/widgetry/pkg/errors"
)

// DialogOptions configures a Dialog.
type DialogOptions struct {
	Document *dom.Document
	Clock    schedule.Clock
	Trigger  dom.Element
	Content  dom.Element
	Engine   Options

	OnOpenChange func(open bool)
	Logger       *logger.Logger
}

// Dialog is a command palette shown in a modal surface. Opening clears the
// query; activating an item closes the dialog.
type Dialog struct {
	engine  *Engine
	state   *openstate.Controller
	dismiss *dismiss.Coordinator
	trigger dom.Element
	content dom.Element
}

// NewDialog wires an engine, an open-state controller and a dismissal
// coordinator together.
func NewDialog(opts DialogOptions) *Dialog {
	if opts.Trigger == nil || opts.Content == nil {
		apperrors.PanicUsage("command", "NewDialog", "trigger and content are required")
	}
	if opts.Engine.Logger == nil {
		opts.Engine.Logger = opts.Logger
	}

	d := &Dialog{
		engine:  New(opts.Engine),
		dismiss: dismiss.New(opts.Document, opts.Logger),
		trigger: opts.Trigger,
		content: opts.Content,
	}
	d.state = openstate.New(opts.Clock, openstate.Options{
		Name:         "command-dialog",
		OnOpenChange: opts.OnOpenChange,
		Logger:       opts.Logger,
	})
	d.state.Observe(d.onOpenChanged)
	return d
}

func (d *Dialog) onOpenChanged(open bool) {
	if !open {
		d.dismiss.Detach()
		return
	}
	d.engine.SetQuery("")
	d.dismiss.Attach(d.content, d.trigger, d.Close)
	d.content.Focus()
}

// Engine exposes the navigation engine for query input and rendering.
func (d *Dialog) Engine() *Engine {
	return d.engine
}

// Register adds an item whose activation also closes the dialog.
func (d *Dialog) Register(item Item) ItemID {
	onSelect := item.OnSelect
	item.OnSelect = func() {
		if onSelect != nil {
			onSelect()
		}
		d.Close()
	}
	return d.engine.Register(item)
}

// Open shows the dialog.
func (d *Dialog) Open() { d.state.RequestOpen() }

// Close hides the dialog.
func (d *Dialog) Close() { d.state.RequestClose() }

// Toggle flips the dialog, as a keyboard shortcut would.
func (d *Dialog) Toggle() { d.state.Toggle() }

// IsOpen reports whether the dialog is shown.
func (d *Dialog) IsOpen() bool { return d.state.IsOpen() }

// HandleKey routes navigation keys to the engine while open.
func (d *Dialog) HandleKey(key string) bool {
	if !d.IsOpen() {
		return false
	}
	return d.engine.HandleKey(key)
}

// Unmount cancels pending transitions and removes document listeners.
func (d *Dialog) Unmount() {
	d.state.Unmount()
	d.dismiss.Detach()
}
