package tui

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexisbeaulieu97/widgetry/internal/collapsible"
	"github.com/alexisbeaulieu97/widgetry/internal/dom"
	"github.com/alexisbeaulieu97/widgetry/internal/geometry"
	"github.com/alexisbeaulieu97/widgetry/internal/scrollarea"
)

// At 100x40 the page lays out as:
//
//	triggers on row 8: tooltip x 2..13, hover card x 17..29, menu x 33..42, palette x 46..56
//	details header on row 10
//	scroll area frame at row 15, 72 wide; viewport 69x17; vertical track x 72, rows 16..32
func TestWindowSizeLaysOutTriggers(t *testing.T) {
	t.Parallel()

	m := newTestModel(t)

	assert.Equal(t, geometry.Rect{Top: 8, Left: 2, Width: 12, Height: 1}, m.w.tooltipTrigger.Bounds())
	assert.Equal(t, geometry.Rect{Top: 8, Left: 17, Width: 13, Height: 1}, m.w.hoverTrigger.Bounds())
	assert.Equal(t, geometry.Rect{Top: 8, Left: 33, Width: 10, Height: 1}, m.w.menuTrigger.Bounds())
	assert.Equal(t, geometry.Rect{Top: 8, Left: 46, Width: 11, Height: 1}, m.w.paletteTrigger.Bounds())
	assert.Equal(t, geometry.Rect{Top: 16, Left: 72, Width: 1, Height: 17}, m.w.vTrack.Bounds())
	assert.Equal(t, 17.0, m.w.content.Metrics(scrollarea.Vertical).Viewport)
	assert.False(t, m.w.tooltipContent.Visible())
}

func TestHoveringTriggerOpensTooltipAfterDelay(t *testing.T) {
	t.Parallel()

	m := newTestModel(t)
	m = send(t, m, motion(5, 8))
	require.True(t, pending(m.w.tooltip.State()))

	m = send(t, m, at(699*time.Millisecond))
	require.False(t, m.w.tooltip.IsOpen())

	m = send(t, m, at(700*time.Millisecond))
	require.True(t, m.w.tooltip.IsOpen())
	require.True(t, m.w.tooltipContent.Visible())
	require.Equal(t, 1.0, m.w.tooltipContent.Bounds().Top)

	m = send(t, m, motion(5, 30))
	require.False(t, m.w.tooltip.IsOpen())
	require.False(t, m.w.tooltipContent.Visible())
}

func TestHoverCardStaysOpenWhilePointerOnCard(t *testing.T) {
	t.Parallel()

	m := newTestModel(t)
	m = send(t, m, motion(20, 8), at(700*time.Millisecond))
	require.True(t, m.w.hoverCard.IsOpen())
	require.Equal(t, 13.0, m.w.hoverContent.Bounds().Top)

	m = send(t, m, motion(15, 14), at(1500*time.Millisecond))
	require.True(t, m.w.hoverCard.IsOpen())

	m = send(t, m, motion(90, 30), at(1800*time.Millisecond))
	require.False(t, m.w.hoverCard.IsOpen())
}

func TestMenuKeyboardActivation(t *testing.T) {
	t.Parallel()

	m := newTestModel(t)
	m = send(t, m, press(35, 8))
	require.True(t, m.w.menu.IsOpen())
	require.Equal(t, dom.Element(m.w.menuContent), m.w.doc.Focused())

	m = send(t, m, tea.KeyMsg{Type: tea.KeyDown}, tea.KeyMsg{Type: tea.KeyDown})
	selected := m.w.menu.Items()[2]
	require.True(t, selected.Selected)
	require.Equal(t, "Save", selected.Text)

	m = send(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	require.False(t, m.w.menu.IsOpen())
	require.Equal(t, "saved", m.Status())
}

func TestMenuCheckboxClick(t *testing.T) {
	t.Parallel()

	m := newTestModel(t)
	m = send(t, m, press(35, 8))
	require.Equal(t, 13.0, m.w.menuContent.Bounds().Top)

	m = send(t, m, press(36, 17))
	require.False(t, m.w.menu.IsOpen())
	require.True(t, m.w.menu.Checked(m.w.menuIDs[3]))
	require.True(t, m.w.content.numbers)
	require.Equal(t, "line numbers on", m.Status())
}

func TestMenuEscapeRestoresFocus(t *testing.T) {
	t.Parallel()

	m := newTestModel(t)
	m = send(t, m, press(35, 8), tea.KeyMsg{Type: tea.KeyEsc})
	require.False(t, m.w.menu.IsOpen())
	require.Equal(t, dom.Element(m.w.menuTrigger), m.w.doc.Focused())
	require.Zero(t, m.w.doc.ListenerCount()-len(m.w.hovers))
}

func TestPaletteFiltersAndActivates(t *testing.T) {
	t.Parallel()

	m := newTestModel(t)
	m = send(t, m, tea.KeyMsg{Type: tea.KeyCtrlK})
	require.True(t, m.w.palette.IsOpen())
	require.True(t, m.input.Focused())

	m = send(t, m, runes("calc"))
	require.Equal(t, "calc", m.w.palette.Engine().Query())
	require.Equal(t, 1, m.w.palette.Engine().VisibleCount())

	m = send(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	require.False(t, m.w.palette.IsOpen())
	require.False(t, m.input.Focused())
	require.Equal(t, "opened calculator", m.Status())
}

func TestPaletteReopensWithEmptyQuery(t *testing.T) {
	t.Parallel()

	m := newTestModel(t)
	m = send(t, m, tea.KeyMsg{Type: tea.KeyCtrlK}, runes("bill"), tea.KeyMsg{Type: tea.KeyEsc})
	require.False(t, m.w.palette.IsOpen())
	require.Equal(t, dom.Element(m.w.paletteTrigger), m.w.doc.Focused())

	m = send(t, m, tea.KeyMsg{Type: tea.KeyCtrlK})
	require.Empty(t, m.input.Value())
	require.Empty(t, m.w.palette.Engine().Query())
	require.Equal(t, 9, m.w.palette.Engine().VisibleCount())
}

func TestPaletteWrapsOntoDisabledItem(t *testing.T) {
	t.Parallel()

	m := newTestModel(t)
	m = send(t, m, tea.KeyMsg{Type: tea.KeyCtrlK}, tea.KeyMsg{Type: tea.KeyUp})

	id, ok := m.w.palette.Engine().Selected()
	require.True(t, ok)
	snap := m.w.palette.Engine().Snapshot()
	require.Equal(t, snap.Items[len(snap.Items)-1].ID, id)

	m = send(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	require.True(t, m.w.palette.IsOpen(), "disabled items are not activated")
}

func TestPaletteRowClick(t *testing.T) {
	t.Parallel()

	m := newTestModel(t)
	m = send(t, m, tea.KeyMsg{Type: tea.KeyCtrlK})

	// Row 0 is the "Suggestions" heading; row 1 is Calendar.
	m = send(t, m, press(30, paletteTop+4))
	require.False(t, m.w.palette.IsOpen())
	require.Equal(t, "opened calendar", m.Status())
}

func TestPaletteOutsidePressCloses(t *testing.T) {
	t.Parallel()

	m := newTestModel(t)
	m = send(t, m, tea.KeyMsg{Type: tea.KeyCtrlK}, press(1, 36))
	require.False(t, m.w.palette.IsOpen())
}

func TestDetailsAnimateOpenAndClosed(t *testing.T) {
	t.Parallel()

	m := newTestModel(t)
	m = send(t, m, press(3, 10))
	require.Equal(t, collapsible.Opening, m.w.details.State())
	require.Equal(t, 0.0, m.w.detailsContent.Bounds().Height)

	m = send(t, m, at(100*time.Millisecond))
	require.Equal(t, 2.0, m.w.detailsContent.Bounds().Height)

	m = send(t, m, at(200*time.Millisecond))
	require.Equal(t, collapsible.Open, m.w.details.State())
	require.Equal(t, 3.0, m.w.detailsContent.Bounds().Height)

	m = send(t, m, press(3, 10), at(300*time.Millisecond))
	require.Equal(t, collapsible.Closing, m.w.details.State())
	require.Equal(t, 2.0, m.w.detailsContent.Bounds().Height)

	m = send(t, m, at(400*time.Millisecond))
	require.Equal(t, collapsible.Closed, m.w.details.State())
	require.False(t, m.w.detailsContent.Visible())
}

func TestDetailsReverseMidAnimation(t *testing.T) {
	t.Parallel()

	m := newTestModel(t)
	m = send(t, m, press(3, 10), at(100*time.Millisecond))
	require.Equal(t, 2.0, m.w.detailsContent.Bounds().Height)

	m = send(t, m, press(3, 10), at(150*time.Millisecond))
	require.Equal(t, collapsible.Closing, m.w.details.State())
	require.Equal(t, 1.0, m.w.detailsContent.Bounds().Height, "closing shrinks from the partial height")

	m = send(t, m, at(300*time.Millisecond))
	require.Equal(t, collapsible.Closed, m.w.details.State())
	require.False(t, m.w.detailsContent.Visible())
}

func TestDetailsMeasureWrappedText(t *testing.T) {
	t.Parallel()

	m := NewModel(Options{Now: epoch})
	t.Cleanup(m.Close)
	m = send(t, m, tea.WindowSizeMsg{Width: 40, Height: 40}, press(3, 10), at(200*time.Millisecond))

	require.Equal(t, collapsible.Open, m.w.details.State())
	require.Greater(t, m.w.detailsContent.Bounds().Height, 3.0)
	require.Equal(t, float64(len(m.w.detailsLines())), m.w.detailsContent.Bounds().Height)
}

func TestWheelScrollsOnlyOverArea(t *testing.T) {
	t.Parallel()

	m := newTestModel(t)
	wheel := func(x, y int) tea.MouseMsg {
		return tea.MouseMsg{X: x, Y: y, Action: tea.MouseActionPress, Button: tea.MouseButtonWheelDown}
	}

	m = send(t, m, wheel(90, 20))
	require.Zero(t, m.w.content.Metrics(scrollarea.Vertical).Offset)

	m = send(t, m, wheel(10, 20))
	require.Equal(t, 3.0, m.w.content.Metrics(scrollarea.Vertical).Offset)
}

func TestKeysScroll(t *testing.T) {
	t.Parallel()

	m := newTestModel(t)
	m = send(t, m, runes("j"), tea.KeyMsg{Type: tea.KeyPgDown})
	require.Equal(t, 18.0, m.w.content.Metrics(scrollarea.Vertical).Offset)

	m = send(t, m, runes("l"))
	require.Equal(t, 4.0, m.w.content.Metrics(scrollarea.Horizontal).Offset)

	m = send(t, m, runes("h"), runes("h"))
	require.Zero(t, m.w.content.Metrics(scrollarea.Horizontal).Offset)
}

func TestThumbDragAndTrackClick(t *testing.T) {
	t.Parallel()

	m := newTestModel(t)
	bar := m.w.area.Bar(scrollarea.Vertical)

	m = send(t, m, press(72, 16))
	require.True(t, bar.Dragging())

	// 6 cells on a 17 cell track with a 17/60 thumb scroll 21 of 43 lines.
	m = send(t, m, motion(72, 22))
	require.Equal(t, 21.0, bar.Geometry().Offset)

	m = send(t, m, release(40, 39))
	require.False(t, bar.Dragging())

	m = send(t, m, press(72, 32), release(72, 32))
	require.Equal(t, 43.0, bar.Geometry().Offset)
}

func TestFocusRing(t *testing.T) {
	t.Parallel()

	m := newTestModel(t)
	m = send(t, m, tea.KeyMsg{Type: tea.KeyTab})
	require.Equal(t, dom.Element(m.w.tooltipTrigger), m.w.doc.Focused())
	require.True(t, pending(m.w.tooltip.State()))

	m = send(t, m, tea.KeyMsg{Type: tea.KeyTab})
	require.Equal(t, dom.Element(m.w.hoverTrigger), m.w.doc.Focused())
	require.False(t, pending(m.w.tooltip.State()))

	m = send(t, m, tea.KeyMsg{Type: tea.KeyShiftTab}, tea.KeyMsg{Type: tea.KeyShiftTab})
	require.Equal(t, dom.Element(m.w.detailsHeader), m.w.doc.Focused())

	m = send(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	require.True(t, m.w.details.IsOpen())
}

func TestFocusedPaletteTriggerOpensPalette(t *testing.T) {
	t.Parallel()

	m := newTestModel(t)
	for i := 0; i < 4; i++ {
		m = send(t, m, tea.KeyMsg{Type: tea.KeyTab})
	}
	require.Equal(t, dom.Element(m.w.paletteTrigger), m.w.doc.Focused())

	m = send(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	require.True(t, m.w.palette.IsOpen())
}

func TestQuitKeys(t *testing.T) {
	t.Parallel()

	for _, msg := range []tea.KeyMsg{runes("q"), {Type: tea.KeyCtrlC}} {
		m := newTestModel(t)
		updated, cmd := m.Update(msg)
		require.NotNil(t, cmd)
		require.True(t, updated.(Model).Quitting())
	}
}

func TestQuitKeyTypesIntoOpenPalette(t *testing.T) {
	t.Parallel()

	m := newTestModel(t)
	m = send(t, m, tea.KeyMsg{Type: tea.KeyCtrlK}, runes("q"))
	require.False(t, m.Quitting())
	require.Equal(t, "q", m.input.Value())
}
