package tui

import "github.com/charmbracelet/lipgloss"

var (
	// Colors
	primaryColor = lipgloss.Color("99")  // Purple
	successColor = lipgloss.Color("42")  // Green
	warningColor = lipgloss.Color("226") // Yellow
	mutedColor   = lipgloss.Color("245") // Gray
	accentColor  = lipgloss.Color("212") // Pink
	surfaceColor = lipgloss.Color("236") // Dark gray

	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(primaryColor)
	textStyle  = lipgloss.NewStyle()
	mutedStyle = lipgloss.NewStyle().Foreground(mutedColor)

	triggerStyle        = lipgloss.NewStyle().Foreground(primaryColor)
	focusedTriggerStyle = lipgloss.NewStyle().Foreground(accentColor).Bold(true).Underline(true)

	surfaceStyle  = lipgloss.NewStyle().Background(surfaceColor)
	borderStyle   = lipgloss.NewStyle().Foreground(primaryColor).Background(surfaceColor)
	selectedStyle = lipgloss.NewStyle().Foreground(accentColor).Background(surfaceColor).Bold(true)
	disabledStyle = lipgloss.NewStyle().Foreground(mutedColor).Background(surfaceColor).Faint(true)
	headingStyle  = lipgloss.NewStyle().Foreground(mutedColor).Background(surfaceColor).Bold(true)

	trackStyle   = lipgloss.NewStyle().Foreground(mutedColor)
	thumbStyle   = lipgloss.NewStyle().Foreground(accentColor)
	pendingStyle = lipgloss.NewStyle().Foreground(warningColor)
	statusStyle  = lipgloss.NewStyle().Foreground(successColor)
)

// palette indexes the styles a canvas cell can carry.
var palette = []lipgloss.Style{
	textStyle,
	titleStyle,
	mutedStyle,
	triggerStyle,
	focusedTriggerStyle,
	surfaceStyle,
	borderStyle,
	selectedStyle,
	disabledStyle,
	headingStyle,
	trackStyle,
	thumbStyle,
	pendingStyle,
	statusStyle,
}

type styleID int

const (
	styleText styleID = iota
	styleTitle
	styleMuted
	styleTrigger
	styleFocusedTrigger
	styleSurface
	styleBorder
	styleSelected
	styleDisabled
	styleHeading
	styleTrack
	styleThumb
	stylePending
	styleStatus
)
