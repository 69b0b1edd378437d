package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

type cell struct {
	r     rune
	style lipgloss.Style
	set   bool
}

// Canvas is a grid of styled terminal cells.
type Canvas struct {
	Width, Height int
	grid          [][]cell
}

func NewCanvas(w, h int) *Canvas {
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	c := &Canvas{Width: w, Height: h, grid: make([][]cell, h)}
	for i := range c.grid {
		c.grid[i] = make([]cell, w)
	}
	return c
}

// Set writes r at column x, row y. Out-of-range cells are ignored.
func (c *Canvas) Set(x, y int, r rune, style lipgloss.Style) {
	if x < 0 || y < 0 || x >= c.Width || y >= c.Height {
		return
	}
	c.grid[y][x] = cell{r: r, style: style, set: true}
}

// Text writes s starting at column x, clipped to the canvas.
func (c *Canvas) Text(x, y int, s string, style lipgloss.Style) {
	for i, r := range []rune(s) {
		c.Set(x+i, y, r, style)
	}
}

func (c *Canvas) Clear() {
	for i := range c.grid {
		for j := range c.grid[i] {
			c.grid[i][j] = cell{}
		}
	}
}

// At returns the rune at (x, y), or a space when unset.
func (c *Canvas) At(x, y int) rune {
	if x < 0 || y < 0 || x >= c.Width || y >= c.Height || !c.grid[y][x].set {
		return ' '
	}
	return c.grid[y][x].r
}

// Project maps percentage coordinates onto the cell grid.
func (c *Canvas) Project(px, py float64) (int, int) {
	x := int(px/100*float64(c.Width-1) + 0.5)
	y := int(py/100*float64(c.Height-1) + 0.5)
	return x, y
}

func (c *Canvas) String() string {
	var b strings.Builder
	for i, row := range c.grid {
		for _, cl := range row {
			if !cl.set {
				b.WriteByte(' ')
				continue
			}
			b.WriteString(cl.style.Render(string(cl.r)))
		}
		if i < len(c.grid)-1 {
			b.WriteByte('\n')
		}
	}
	return b.String()
}
