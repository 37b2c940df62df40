// Package render draws the scene into a coloured character grid.
package render

import (
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

type cell struct {
	ch    rune
	color string
	bold  bool
	depth float64
}

// Canvas is a depth-tested character grid.
type Canvas struct {
	w, h  int
	cells []cell
}

// NewCanvas creates an empty canvas.
func NewCanvas(w, h int) *Canvas {
	c := &Canvas{}
	c.Resize(w, h)
	return c
}

// Resize reallocates the grid and clears it.
func (c *Canvas) Resize(w, h int) {
	if w < 0 {
		w = 0
	}
	if h < 0 {
		h = 0
	}
	c.w, c.h = w, h
	c.cells = make([]cell, w*h)
	c.Clear()
}

// Clear blanks every cell.
func (c *Canvas) Clear() {
	for i := range c.cells {
		c.cells[i] = cell{ch: ' ', depth: math.Inf(1)}
	}
}

// Size returns the canvas dimensions.
func (c *Canvas) Size() (w, h int) {
	return c.w, c.h
}

// In reports whether a cell is on the canvas.
func (c *Canvas) In(col, row int) bool {
	return col >= 0 && row >= 0 && col < c.w && row < c.h
}

// Plot writes ch if the cell is on the canvas and nothing nearer is there.
func (c *Canvas) Plot(col, row int, ch rune, color string, depth float64) bool {
	if !c.In(col, row) {
		return false
	}
	i := row*c.w + col
	if depth > c.cells[i].depth {
		return false
	}
	c.cells[i] = cell{ch: ch, color: color, depth: depth}
	return true
}

// PlotBold is Plot with a bold style.
func (c *Canvas) PlotBold(col, row int, ch rune, color string, depth float64) bool {
	if !c.Plot(col, row, ch, color, depth) {
		return false
	}
	c.cells[row*c.w+col].bold = true
	return true
}

// Background writes ch only into blank cells, behind everything.
func (c *Canvas) Background(col, row int, ch rune, color string) bool {
	if !c.In(col, row) {
		return false
	}
	i := row*c.w + col
	if c.cells[i].ch != ' ' {
		return false
	}
	c.cells[i] = cell{ch: ch, color: color, depth: math.MaxFloat64}
	return true
}

// Overlay writes ch in front of everything.
func (c *Canvas) Overlay(col, row int, ch rune, color string) bool {
	if !c.In(col, row) {
		return false
	}
	c.cells[row*c.w+col] = cell{ch: ch, color: color, depth: math.Inf(-1)}
	return true
}

// Text overlays s starting at a cell, one rune per cell.
func (c *Canvas) Text(col, row int, s, color string) {
	for i, r := range []rune(s) {
		c.Overlay(col+i, row, r, color)
	}
}

// Box overlays a bordered box of lines with one cell of horizontal
// padding, shifted left and up as needed to stay on the canvas. It
// returns the top-left cell used.
func (c *Canvas) Box(col, row int, lines []string, border lipgloss.Border, borderColor, textColor string) (int, int) {
	inner := 0
	for _, l := range lines {
		inner = max(inner, lipgloss.Width(l))
	}
	w, h := inner+4, len(lines)+2

	col = max(0, min(col, c.w-w))
	row = max(0, min(row, c.h-h))

	edge := func(s string, fallback rune) rune {
		if r := []rune(s); len(r) > 0 {
			return r[0]
		}
		return fallback
	}
	top, bottom := edge(border.Top, '-'), edge(border.Bottom, '-')
	left, right := edge(border.Left, '|'), edge(border.Right, '|')

	for x := 1; x < w-1; x++ {
		c.Overlay(col+x, row, top, borderColor)
		c.Overlay(col+x, row+h-1, bottom, borderColor)
	}
	c.Overlay(col, row, edge(border.TopLeft, '+'), borderColor)
	c.Overlay(col+w-1, row, edge(border.TopRight, '+'), borderColor)
	c.Overlay(col, row+h-1, edge(border.BottomLeft, '+'), borderColor)
	c.Overlay(col+w-1, row+h-1, edge(border.BottomRight, '+'), borderColor)

	for i, l := range lines {
		y := row + 1 + i
		c.Overlay(col, y, left, borderColor)
		c.Overlay(col+w-1, y, right, borderColor)
		for x := 1; x < w-1; x++ {
			c.Overlay(col+x, y, ' ', "")
		}
		c.Text(col+2, y, l, textColor)
	}
	return col, row
}

// At returns the rune in a cell, or 0 off canvas.
func (c *Canvas) At(col, row int) rune {
	if !c.In(col, row) {
		return 0
	}
	return c.cells[row*c.w+col].ch
}

// ColorAt returns the colour in a cell.
func (c *Canvas) ColorAt(col, row int) string {
	if !c.In(col, row) {
		return ""
	}
	return c.cells[row*c.w+col].color
}

// Plain returns the grid without styling.
func (c *Canvas) Plain() string {
	var b strings.Builder
	for row := 0; row < c.h; row++ {
		for col := 0; col < c.w; col++ {
			b.WriteRune(c.cells[row*c.w+col].ch)
		}
		if row < c.h-1 {
			b.WriteRune('\n')
		}
	}
	return b.String()
}

// String renders the grid with lipgloss colours. Runs of cells sharing a
// style are rendered together.
func (c *Canvas) String() string {
	styles := map[styleKey]lipgloss.Style{}
	style := func(k styleKey) lipgloss.Style {
		s, ok := styles[k]
		if !ok {
			s = lipgloss.NewStyle().Foreground(lipgloss.Color(k.color)).Bold(k.bold)
			styles[k] = s
		}
		return s
	}

	var b strings.Builder
	var run strings.Builder
	for row := 0; row < c.h; row++ {
		var cur styleKey
		flush := func() {
			if run.Len() == 0 {
				return
			}
			if cur.color == "" {
				b.WriteString(run.String())
			} else {
				b.WriteString(style(cur).Render(run.String()))
			}
			run.Reset()
		}
		for col := 0; col < c.w; col++ {
			cl := c.cells[row*c.w+col]
			k := styleKey{color: cl.color, bold: cl.bold}
			if cl.ch == ' ' {
				k = styleKey{}
			}
			if k != cur {
				flush()
				cur = k
			}
			run.WriteRune(cl.ch)
		}
		flush()
		if row < c.h-1 {
			b.WriteRune('\n')
		}
	}
	return b.String()
}

type styleKey struct {
	color string
	bold  bool
}
