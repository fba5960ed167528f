package tui

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	"github.com/mattn/go-runewidth"

	"github.com/alexisbeaulieu97/widgetry/internal/scrollarea"
)

// contentView is the scroll area's viewport: bubbles viewport scrolls
// vertically, horizontal scrolling cuts each line at the cell offset.
type contentView struct {
	vp      viewport.Model
	lines   []string
	xOffset int
	numbers bool
}

func newContentView(lines []string) *contentView {
	c := &contentView{vp: viewport.New(0, 0), lines: lines}
	c.render()
	return c
}

func (c *contentView) setSize(width, height int) {
	c.vp.Width = max(0, width)
	c.vp.Height = max(0, height)
	c.render()
}

func (c *contentView) setLineNumbers(on bool) {
	c.numbers = on
	c.render()
}

func (c *contentView) source() []string {
	if !c.numbers {
		return c.lines
	}
	out := make([]string, len(c.lines))
	for i, line := range c.lines {
		out[i] = fmt.Sprintf("%3d │ %s", i+1, line)
	}
	return out
}

func (c *contentView) contentWidth() int {
	widest := 0
	for _, line := range c.source() {
		widest = max(widest, runewidth.StringWidth(line))
	}
	return widest
}

func (c *contentView) render() {
	lines := c.source()
	visible := make([]string, len(lines))
	for i, line := range lines {
		visible[i] = cutCells(line, c.xOffset, c.vp.Width)
	}
	y := c.vp.YOffset
	c.vp.SetContent(strings.Join(visible, "\n"))
	c.vp.SetYOffset(y)
}

// Metrics implements scrollarea.Viewport.
func (c *contentView) Metrics(axis scrollarea.Axis) scrollarea.Geometry {
	if axis == scrollarea.Horizontal {
		return scrollarea.Geometry{
			Viewport: float64(c.vp.Width),
			Content:  float64(c.contentWidth()),
			Offset:   float64(c.xOffset),
		}
	}
	return scrollarea.Geometry{
		Viewport: float64(c.vp.Height),
		Content:  float64(c.vp.TotalLineCount()),
		Offset:   float64(c.vp.YOffset),
	}
}

// SetScrollOffset implements scrollarea.Viewport. Offsets snap to whole cells.
func (c *contentView) SetScrollOffset(axis scrollarea.Axis, offset float64) {
	cells := int(math.Round(offset))
	if axis == scrollarea.Horizontal {
		c.xOffset = max(0, cells)
		c.render()
		return
	}
	c.vp.SetYOffset(cells)
}

func (c *contentView) view() string {
	return c.vp.View()
}

func sampleLines(n int) []string {
	words := []string{"overlay", "anchor", "trigger", "dismiss", "thumb", "track", "palette", "collapsible"}
	lines := make([]string, n)
	for i := range lines {
		var b strings.Builder
		for j := 0; j <= i%12; j++ {
			if j > 0 {
				b.WriteByte(' ')
			}
			b.WriteString(words[(i+j)%len(words)])
		}
		lines[i] = b.String()
	}
	return lines
}

var _ scrollarea.Viewport = (*contentView)(nil)
