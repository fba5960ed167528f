package tui

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

type cell struct {
	text  string // empty for the trailing half of a wide rune
	style styleID
}

// canvas is a fixed grid of styled cells that later writes overwrite, so
// floating surfaces paint over the page beneath them.
type canvas struct {
	width  int
	height int
	rows   [][]cell
}

func newCanvas(width, height int) *canvas {
	c := &canvas{width: max(0, width), height: max(0, height)}
	c.rows = make([][]cell, c.height)
	for y := range c.rows {
		row := make([]cell, c.width)
		for x := range row {
			row[x] = cell{text: " "}
		}
		c.rows[y] = row
	}
	return c
}

// put writes text starting at (top, left), clipping at the canvas edges. It
// returns the number of cells consumed.
func (c *canvas) put(top, left int, text string, style styleID) int {
	if top < 0 || top >= c.height {
		return runewidth.StringWidth(text)
	}
	x := left
	for _, r := range text {
		w := runewidth.RuneWidth(r)
		if w == 0 {
			continue
		}
		if x >= 0 && x+w <= c.width {
			c.rows[top][x] = cell{text: string(r), style: style}
			for i := 1; i < w; i++ {
				c.rows[top][x+i] = cell{style: style}
			}
		}
		x += w
	}
	return x - left
}

// fill paints a rectangle of blanks.
func (c *canvas) fill(top, left, width, height int, style styleID) {
	blank := strings.Repeat(" ", max(0, width))
	for y := top; y < top+height; y++ {
		c.put(y, left, blank, style)
	}
}

// box paints a bordered rectangle with a filled interior.
func (c *canvas) box(top, left, width, height int, style styleID) {
	if width < 2 || height < 2 {
		return
	}
	c.fill(top, left, width, height, styleSurface)
	inner := strings.Repeat("─", width-2)
	c.put(top, left, "╭"+inner+"╮", style)
	c.put(top+height-1, left, "╰"+inner+"╯", style)
	for y := top + 1; y < top+height-1; y++ {
		c.put(y, left, "│", style)
		c.put(y, left+width-1, "│", style)
	}
}

// String renders each row, grouping runs of equally styled cells.
func (c *canvas) String() string {
	lines := make([]string, 0, c.height)
	for _, row := range c.rows {
		var line strings.Builder
		var run strings.Builder
		current := styleText
		flush := func() {
			if run.Len() == 0 {
				return
			}
			line.WriteString(palette[current].Render(run.String()))
			run.Reset()
		}
		for _, cl := range row {
			if cl.style != current {
				flush()
				current = cl.style
			}
			run.WriteString(cl.text)
		}
		flush()
		lines = append(lines, line.String())
	}
	return strings.Join(lines, "\n")
}

// plain renders the canvas without styling.
func (c *canvas) plain() string {
	lines := make([]string, 0, c.height)
	for _, row := range c.rows {
		var line strings.Builder
		for _, cl := range row {
			line.WriteString(cl.text)
		}
		lines = append(lines, strings.TrimRight(line.String(), " "))
	}
	return strings.Join(lines, "\n")
}

// truncate shortens s to width cells with an ellipsis.
func truncate(s string, width int) string {
	if width <= 0 {
		return ""
	}
	return runewidth.Truncate(s, width, "…")
}

// cutCells returns the part of s that falls in cell columns [start, start+width).
func cutCells(s string, start, width int) string {
	var b strings.Builder
	x := 0
	for _, r := range s {
		w := runewidth.RuneWidth(r)
		if x >= start && x+w <= start+width {
			b.WriteRune(r)
		}
		x += w
		if x >= start+width {
			break
		}
	}
	return b.String()
}
