package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/alexisbeaulieu97/widgetry/internal/dom"
	"github.com/alexisbeaulieu97/widgetry/internal/scrollarea"
)

const (
	footerHeight = 2
	wheelStep    = 3
	sideStep     = 4
)

// Update handles Bubble Tea messages and drives the widget engines.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
	case tickMsg:
		m.w.tick(time.Time(msg))
		cmds = append(cmds, tick())
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		cmds = append(cmds, cmd)
	case tea.MouseMsg:
		m.handleMouse(msg)
	case tea.KeyMsg:
		cmds = append(cmds, m.handleKey(msg))
	}

	m.syncPalette()
	m.w.layout(m.width, max(0, m.height-footerHeight))
	return m, tea.Batch(cmds...)
}

func (m *Model) handleMouse(msg tea.MouseMsg) {
	switch msg.Action {
	case tea.MouseActionPress:
		switch msg.Button {
		case tea.MouseButtonLeft:
			m.w.press(msg.X, msg.Y)
		case tea.MouseButtonWheelUp:
			m.w.wheel(msg.X, msg.Y, -wheelStep, scrollarea.Vertical)
		case tea.MouseButtonWheelDown:
			m.w.wheel(msg.X, msg.Y, wheelStep, scrollarea.Vertical)
		case tea.MouseButtonWheelLeft:
			m.w.wheel(msg.X, msg.Y, -sideStep, scrollarea.Horizontal)
		case tea.MouseButtonWheelRight:
			m.w.wheel(msg.X, msg.Y, sideStep, scrollarea.Horizontal)
		}
	case tea.MouseActionMotion:
		m.w.move(msg.X, msg.Y)
	case tea.MouseActionRelease:
		m.w.release(msg.X, msg.Y)
	}
}

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	k := msg.String()
	if k == "ctrl+c" {
		m.quitting = true
		return tea.Quit
	}
	if m.w.palette.IsOpen() {
		return m.handlePaletteKey(msg)
	}
	if m.w.menu.IsOpen() {
		if k == dom.KeyEscape {
			m.w.doc.DispatchKeyDown(dom.KeyEvent{Key: k})
		} else {
			m.w.menu.HandleKey(k)
		}
		return nil
	}
	if m.w.doc.Focused() == dom.Element(m.w.menuTrigger) && m.w.menu.HandleKey(k) {
		return nil
	}

	area := m.w.area
	switch {
	case key.Matches(msg, m.keys.Palette):
		m.w.palette.Open()
	case key.Matches(msg, m.keys.Dismiss):
		m.w.doc.DispatchKeyDown(dom.KeyEvent{Key: dom.KeyEscape})
	case key.Matches(msg, m.keys.NextFocus):
		m.w.focus(1)
	case key.Matches(msg, m.keys.PrevFocus):
		m.w.focus(-1)
	case key.Matches(msg, m.keys.Activate):
		m.w.activateFocused()
	case key.Matches(msg, m.keys.ScrollUp):
		area.ScrollBy(scrollarea.Vertical, -1)
	case key.Matches(msg, m.keys.ScrollDn):
		area.ScrollBy(scrollarea.Vertical, 1)
	case key.Matches(msg, m.keys.PageUp):
		area.ScrollBy(scrollarea.Vertical, -area.Bar(scrollarea.Vertical).Geometry().Viewport)
	case key.Matches(msg, m.keys.PageDown):
		area.ScrollBy(scrollarea.Vertical, area.Bar(scrollarea.Vertical).Geometry().Viewport)
	case key.Matches(msg, m.keys.Left):
		area.ScrollBy(scrollarea.Horizontal, -sideStep)
	case key.Matches(msg, m.keys.Right):
		area.ScrollBy(scrollarea.Horizontal, sideStep)
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return tea.Quit
	}
	return nil
}

// handlePaletteKey sends navigation keys to the command list and
// everything else to the query input.
func (m *Model) handlePaletteKey(msg tea.KeyMsg) tea.Cmd {
	switch k := msg.String(); k {
	case dom.KeyEscape:
		m.w.doc.DispatchKeyDown(dom.KeyEvent{Key: k})
		return nil
	case dom.KeyUp, "ctrl+p":
		m.w.palette.HandleKey(dom.KeyUp)
		return nil
	case dom.KeyDown, "ctrl+n":
		m.w.palette.HandleKey(dom.KeyDown)
		return nil
	case dom.KeyEnter:
		m.w.palette.HandleKey(dom.KeyEnter)
		return nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	if engine := m.w.palette.Engine(); engine.Query() != m.input.Value() {
		engine.SetQuery(m.input.Value())
	}
	return cmd
}
