// Package dismiss closes an open surface on outside pointer presses and on
// escape. Document listeners exist only while a surface is attached.
package dismiss

import (
	"github.com/alexisbeaulieu97/widgetry/internal/dom"
	"github.com/alexisbeaulieu97/widgetry/internal/logger"
	apperrors "github.com/alexisbeaulieu97/widgetry/pkg/errors"
)

// Coordinator wires one surface's dismissal listeners into a document.
type Coordinator struct {
	doc    *dom.Document
	log    *logger.Logger
	detach []func()
}

// New creates a coordinator for doc.
func New(doc *dom.Document, log *logger.Logger) *Coordinator {
	if doc == nil {
		apperrors.PanicUsage("dismiss", "New", "document is nil")
	}
	return &Coordinator{doc: doc, log: log.Component("dismiss")}
}

// Attach starts listening. A pointer press outside both content and trigger
// calls onDismiss; escape calls onDismiss and returns focus to the trigger.
// Attaching an attached coordinator replaces the previous registration.
func (c *Coordinator) Attach(content, trigger dom.Element, onDismiss func()) {
	if content == nil || trigger == nil || onDismiss == nil {
		apperrors.PanicUsage("dismiss", "Attach", "content, trigger and onDismiss are required")
	}
	c.Detach()

	removeDown := c.doc.OnPointerDown(func(ev dom.PointerEvent) {
		if ev.Target != nil && (content.Contains(ev.Target) || trigger.Contains(ev.Target)) {
			return
		}
		c.log.Debug("outside pointer press")
		onDismiss()
	})
	removeKey := c.doc.OnKeyDown(func(ev dom.KeyEvent) {
		if ev.Key != dom.KeyEscape {
			return
		}
		c.log.Debug("escape pressed")
		onDismiss()
		trigger.Focus()
	})

	c.detach = []func(){removeDown, removeKey}
}

// Detach removes the listeners. It is safe to call when not attached.
func (c *Coordinator) Detach() {
	for _, remove := range c.detach {
		remove()
	}
	c.detach = nil
}

// Attached reports whether listeners are registered.
func (c *Coordinator) Attached() bool {
	return len(c.detach) > 0
}
