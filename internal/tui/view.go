package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/alexisbeaulieu97/widgetry/internal/dom"
	"github.com/alexisbeaulieu97/widgetry/internal/openstate"
	"github.com/alexisbeaulieu97/widgetry/internal/scrollarea"
)

// View renders the current state of the model.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if m.width == 0 || m.height == 0 {
		return "Initializing..."
	}

	c := newCanvas(m.width, max(0, m.height-footerHeight))
	m.paint(c)
	return lipgloss.JoinVertical(lipgloss.Left, c.String(), m.statusLine(), m.help.View(m.keys))
}

// paint draws the page first and the floating surfaces over it.
func (m Model) paint(c *canvas) {
	w := m.w
	c.put(titleRow, pageLeft, "widgetry playground", styleTitle)
	if w.status != "" {
		c.put(titleRow, pageLeft+22, "· "+w.status, styleStatus)
	}

	spin := m.spinner.View()
	for _, t := range []struct {
		node    *dom.Node
		label   string
		pending bool
	}{
		{w.tooltipTrigger, tooltipLabel, pending(w.tooltip.State())},
		{w.hoverTrigger, hoverLabel, pending(w.hoverCard.State())},
		{w.menuTrigger, menuLabel, false},
		{w.paletteTrigger, paletteLabel, false},
	} {
		b := t.node.Bounds()
		style := styleTrigger
		if w.doc.Focused() == dom.Element(t.node) {
			style = styleFocusedTrigger
		}
		n := c.put(int(b.Top), int(b.Left), t.label, style)
		if t.pending {
			c.put(int(b.Top), int(b.Left)+n, spin, stylePending)
		}
	}

	m.paintDetails(c)
	m.paintScrollArea(c)

	paintBox(c, w.tooltipContent, []string{w.tooltipText()}, styleBorder)
	paintBox(c, w.hoverContent, hoverCardLines, styleBorder)
	m.paintMenu(c)
	m.paintPalette(c)
}

func pending(s openstate.State) bool {
	return s == openstate.PendingOpen || s == openstate.PendingClose
}

func (m Model) paintDetails(c *canvas) {
	w := m.w
	b := w.detailsHeader.Bounds()
	marker := "▸"
	if w.details.IsOpen() {
		marker = "▾"
	}
	style := styleTrigger
	if w.doc.Focused() == dom.Element(w.detailsHeader) {
		style = styleFocusedTrigger
	}
	label := fmt.Sprintf("%s Details", marker)
	n := c.put(int(b.Top), int(b.Left), label, style)
	c.put(int(b.Top), int(b.Left)+n+1, w.details.State().String(), styleMuted)

	if !w.detailsContent.Visible() {
		return
	}
	content := w.detailsContent.Bounds()
	lines := w.detailsLines()
	for i := 0; i < int(content.Height) && i < len(lines); i++ {
		c.put(int(content.Top)+i, int(content.Left), truncate(lines[i], int(content.Width)), styleText)
	}
}

func (m Model) paintScrollArea(c *canvas) {
	w := m.w
	f := w.areaFrame.Bounds()
	top, left, width, height := int(f.Top), int(f.Left), int(f.Width), int(f.Height)
	c.box(top, left, width, height, styleMuted)
	c.fill(top+1, left+1, width-2, height-2, styleText)

	for i, line := range strings.Split(w.content.view(), "\n") {
		c.put(top+1+i, left+1, line, styleText)
	}

	vThumb, hThumb := w.area.Thumbs()
	v := w.vTrack.Bounds()
	start, size := thumbCells(vThumb, int(v.Height))
	for i := 0; i < int(v.Height); i++ {
		glyph, style := "│", styleTrack
		if w.area.Bar(scrollarea.Vertical).Scrollable() && i >= start && i < start+size {
			glyph, style = "┃", styleThumb
		}
		c.put(int(v.Top)+i, int(v.Left), glyph, style)
	}

	h := w.hTrack.Bounds()
	start, size = thumbCells(hThumb, int(h.Width))
	for i := 0; i < int(h.Width); i++ {
		glyph, style := "─", styleTrack
		if w.area.Bar(scrollarea.Horizontal).Scrollable() && i >= start && i < start+size {
			glyph, style = "━", styleThumb
		}
		c.put(int(h.Top), int(h.Left)+i, glyph, style)
	}
}

// thumbCells converts thumb percentages into a start cell and a length of
// at least one cell on a track of n cells.
func thumbCells(t scrollarea.Thumb, n int) (int, int) {
	size := max(1, int(t.SizePercent*float64(n)/100+0.5))
	start := min(n-size, int(t.PositionPercent*float64(n)/100+0.5))
	return max(0, start), size
}

// paintBox draws a bordered surface at a content element's bounds when the
// element is visible.
func paintBox(c *canvas, node *dom.Node, lines []string, border styleID) {
	if !node.Visible() {
		return
	}
	b := node.Bounds()
	top, left, width := int(b.Top), int(b.Left), int(b.Width)
	c.box(top, left, width, int(b.Height), border)
	for i, line := range lines {
		c.put(top+1+i, left+2, truncate(line, width-4), styleSurface)
	}
}

func (m Model) paintMenu(c *canvas) {
	w := m.w
	if !w.menuContent.Visible() {
		return
	}
	paintBox(c, w.menuContent, nil, styleBorder)
	b := w.menuContent.Bounds()
	for i, it := range w.menu.Items() {
		prefix := "  "
		if it.Checkbox {
			prefix = "☐ "
			if it.Checked {
				prefix = "☑ "
			}
		}
		style := styleSurface
		switch {
		case it.Disabled:
			style = styleDisabled
		case it.Selected:
			style = styleSelected
		}
		text := truncate(prefix+it.Text, int(b.Width)-4)
		row := text + strings.Repeat(" ", max(0, int(b.Width)-4-runewidth.StringWidth(text)))
		c.put(int(b.Top)+1+i, int(b.Left)+2, row, style)
	}
}

func (m Model) paintPalette(c *canvas) {
	w := m.w
	if !w.paletteContent.Visible() {
		return
	}
	b := w.paletteContent.Bounds()
	top, left, width := int(b.Top), int(b.Left), int(b.Width)
	c.box(top, left, width, int(b.Height), styleBorder)

	query := m.input.Value()
	if query == "" {
		c.put(top+1, left+2, "› ", styleSelected)
		c.put(top+1, left+4, truncate(m.input.Placeholder, width-6), styleDisabled)
	} else {
		c.put(top+1, left+2, "› "+truncate(query, width-7)+"▏", styleSelected)
	}
	c.put(top+2, left+1, strings.Repeat("─", width-2), styleBorder)

	if w.palette.Engine().Empty() {
		c.put(top+3, left+2, "No results found.", styleDisabled)
		return
	}
	for i, line := range w.paletteWindow() {
		style := styleSurface
		text := "  " + line.text
		switch {
		case line.heading:
			style, text = styleHeading, line.text
		case line.disabled:
			style = styleDisabled
		case line.selected:
			style = styleSelected
		}
		text = truncate(text, width-4)
		row := text + strings.Repeat(" ", max(0, width-4-runewidth.StringWidth(text)))
		c.put(top+3+i, left+2, row, style)
	}
}

// statusLine summarizes every widget state and the vertical scroll position.
func (m Model) statusLine() string {
	w := m.w
	parts := []string{
		"tooltip:" + w.tooltip.State().String(),
		"card:" + w.hoverCard.State().String(),
		"menu:" + w.menu.State().String(),
		"palette:" + onOff(w.palette.IsOpen()),
		"details:" + w.details.State().String(),
	}
	ratio := w.area.Bar(scrollarea.Vertical).Geometry().PositionRatio()
	return mutedStyle.Render(strings.Join(parts, "  ")) + "  " + m.scroll.ViewAs(ratio)
}
