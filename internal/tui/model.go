package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/alexisbeaulieu97/widgetry/internal/config"
	"github.com/alexisbeaulieu97/widgetry/internal/logger"
)

const tickInterval = 30 * time.Millisecond

type tickMsg time.Time

// Options configures the playground model.
type Options struct {
	Config *config.Config
	Logger *logger.Logger
	// Now seeds the widget clock. Zero means time.Now.
	Now time.Time
}

// Model is the Bubble Tea model of the widget playground. It drives every
// widget engine from terminal input and renders their state.
type Model struct {
	w       *widgets
	keys    keyMap
	help    help.Model
	input   textinput.Model
	spinner spinner.Model
	scroll  progress.Model

	paletteOpen bool
	width       int
	height      int
	quitting    bool
}

// NewModel constructs the playground.
func NewModel(opts Options) Model {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.Default()
	}
	now := opts.Now
	if now.IsZero() {
		now = time.Now()
	}

	input := textinput.New()
	input.Placeholder = "Type a command or search..."
	input.Prompt = ""
	input.CharLimit = paletteWidth - 6

	return Model{
		w:       newWidgets(cfg, opts.Logger, now),
		keys:    newKeyMap(),
		help:    help.New(),
		input:   input,
		spinner: spinner.New(spinner.WithSpinner(spinner.MiniDot), spinner.WithStyle(lipgloss.NewStyle())),
		scroll:  progress.New(progress.WithDefaultGradient(), progress.WithWidth(20), progress.WithoutPercentage()),
	}
}

// Init starts the widget clock and the spinner.
func (m Model) Init() tea.Cmd {
	return tea.Batch(tick(), m.spinner.Tick)
}

func tick() tea.Cmd {
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg { return tickMsg(t) })
}

// Status returns the last message an activated widget reported.
func (m Model) Status() string {
	return m.w.status
}

// Quitting reports whether the user asked to leave.
func (m Model) Quitting() bool {
	return m.quitting
}

// Close unmounts every widget so no timers or listeners outlive the program.
func (m Model) Close() {
	for _, h := range m.w.hovers {
		h.Stop()
	}
	m.w.tooltip.Unmount()
	m.w.hoverCard.Unmount()
	m.w.menu.Unmount()
	m.w.palette.Unmount()
	m.w.details.Unmount()
	m.w.area.Unmount()
}

// syncPalette resets the query input when the palette opens and blurs it
// when the palette closes.
func (m *Model) syncPalette() {
	open := m.w.palette.IsOpen()
	switch {
	case open && !m.paletteOpen:
		m.input.Reset()
		m.input.Focus()
	case !open && m.paletteOpen:
		m.input.Blur()
	}
	m.paletteOpen = open
}
