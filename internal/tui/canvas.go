package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// canvas is a fixed grid of terminal cells. Each cell carries an index into styles; runs of cells
// with the same index are rendered together.
type canvas struct {
	width  int
	height int
	runes  [][]rune
	marks  [][]int
	styles []lipgloss.Style
}

func newCanvas(width, height int) *canvas {
	c := &canvas{
		width:  max(width, 0),
		height: max(height, 0),
		styles: []lipgloss.Style{lipgloss.NewStyle()},
	}
	c.runes = make([][]rune, c.height)
	c.marks = make([][]int, c.height)
	for y := range c.runes {
		c.runes[y] = []rune(strings.Repeat(" ", c.width))
		c.marks[y] = make([]int, c.width)
	}
	return c
}

func (c *canvas) style(s lipgloss.Style) int {
	c.styles = append(c.styles, s)
	return len(c.styles) - 1
}

func (c *canvas) put(x, y int, r rune, style int) {
	if x < 0 || y < 0 || x >= c.width || y >= c.height {
		return
	}
	c.runes[y][x] = r
	c.marks[y][x] = style
}

// text writes s from x, cut at width cells.
func (c *canvas) text(x, y, width int, s string, style int) {
	i := 0
	for _, r := range s {
		if i >= width {
			return
		}
		c.put(x+i, y, r, style)
		i++
	}
}

func (c *canvas) fill(x, y, width, height int, style int) {
	for row := y; row < y+height; row++ {
		for col := x; col < x+width; col++ {
			c.put(col, row, ' ', style)
		}
	}
}

func (c *canvas) String() string {
	var b strings.Builder
	for y := 0; y < c.height; y++ {
		start := 0
		for x := 1; x <= c.width; x++ {
			if x < c.width && c.marks[y][x] == c.marks[y][start] {
				continue
			}
			segment := string(c.runes[y][start:x])
			if c.marks[y][start] == 0 {
				b.WriteString(segment)
			} else {
				b.WriteString(c.styles[c.marks[y][start]].Render(segment))
			}
			start = x
		}
		if y < c.height-1 {
			b.WriteByte('\n')
		}
	}
	return b.String()
}
