package tui

import (
	"fmt"
	"math"

	"github.com/studyplan/studyplan/pkg/timegrid"
	"github.com/studyplan/studyplan/pkg/view"
)

const (
	// headerLines are the title and the day label rows above the grid.
	headerLines = 2
	hourGutter  = 6
	// dayColumns is how many week columns wide the single Day view column is drawn.
	dayColumns = 3
)

// frame is one drawn rendering plus the mapping from screen cells back to grid points.
type frame struct {
	rendering view.Rendering
	gutter    int
	columns   int
	colWidth  int
	rows      int
}

func newFrame(r view.Rendering) frame {
	f := frame{rendering: r}
	switch r.Kind {
	case view.Month:
		g := r.MonthGeometry()
		f.columns = 7
		f.colWidth = max(int(g.CellWidth), 1)
		f.rows = (len(r.Cells) + 6) / 7 * int(g.CellHeight)
	default:
		layout := r.Layout()
		f.gutter = hourGutter
		f.columns = len(r.Columns)
		f.colWidth = max(int(layout.DayWidth), 1)
		if r.Kind == view.Day {
			f.colWidth *= dayColumns
		}
		f.rows = int(math.Ceil(layout.Height()))
	}
	return f
}

func (f frame) width() int {
	return f.gutter + f.columns*f.colWidth
}

// inGrid reports whether the screen cell lies on the grid body.
func (f frame) inGrid(x, y int) bool {
	gx, gy := x-f.gutter, y-headerLines
	return gx >= 0 && gx < f.columns*f.colWidth && gy >= 0 && gy < f.rows
}

// point maps the top-left corner of a screen cell to grid units.
func (f frame) point(x, y int) view.Point {
	unit := float64(f.colWidth)
	switch f.rendering.Kind {
	case view.Month:
		unit = f.rendering.MonthGeometry().CellWidth
	case view.Week:
		unit = f.rendering.Layout().DayWidth
	}
	return view.Point{
		X: float64(x-f.gutter) * unit / float64(f.colWidth),
		Y: float64(y - headerLines),
	}
}

// pressPoint is where a press lands. A task block that only covers the lower part of a cell
// is still pressed when the cell is.
func (f frame) pressPoint(x, y int) view.Point {
	p := f.point(x, y)
	if f.rendering.Kind == view.Month {
		return p
	}
	center := view.Point{X: p.X, Y: p.Y + 0.5}
	if f.rendering.HitTest(center).Target == view.HitTask {
		return center
	}
	return p
}

// dragPoint includes the cell under the pointer when dragging downwards. It never passes the
// bottom edge of the grid.
func (f frame) dragPoint(x, y, pressY int) view.Point {
	p := f.point(x, y)
	if y > pressY {
		p.Y++
	}
	p.Y = math.Min(p.Y, float64(f.rows))
	return p
}

func (f frame) draw(overlay *view.Overlay) string {
	c := newCanvas(f.width(), headerLines+f.rows)
	c.text(0, 0, c.width, f.rendering.Header.Title, c.style(titleStyle))
	if f.rendering.Kind == view.Month {
		f.drawMonth(c)
	} else {
		f.drawGrid(c, overlay)
	}
	return c.String()
}

func (f frame) drawGrid(c *canvas, overlay *view.Overlay) {
	r := f.rendering
	layout := r.Layout()
	label, today, muted, border := c.style(labelStyle), c.style(todayStyle), c.style(mutedStyle), c.style(borderStyle)

	for i, d := range r.Header.Days {
		st := label
		if d.IsToday {
			st = today
		}
		c.text(f.gutter+i*f.colWidth, 1, f.colWidth-1, d.Label, st)
	}
	for _, h := range r.Hours {
		row := int(float64(h-layout.StartHour) * layout.HourHeight)
		c.text(0, headerLines+row, f.gutter, fmt.Sprintf("%02d:00", h), muted)
		for i := 0; i < f.columns; i++ {
			c.text(f.gutter+i*f.colWidth, headerLines+row, f.colWidth-1, "·", border)
		}
	}
	for i := 0; i < f.columns; i++ {
		for row := 0; row < f.rows; row++ {
			c.put(f.gutter+(i+1)*f.colWidth-1, headerLines+row, '│', border)
		}
	}

	for i, column := range r.Columns {
		for _, b := range column.Blocks {
			f.drawBlock(c, i, b)
		}
	}

	if r.NowLine != nil {
		row := int(math.Floor(r.NowLine.Top))
		if row >= f.rows {
			row = f.rows - 1
		}
		now := c.style(nowStyle)
		x := f.gutter + r.NowLine.DayIndex*f.colWidth
		for col := 0; col < f.colWidth-1; col++ {
			c.put(x+col, headerLines+row, '─', now)
		}
	}

	if overlay != nil {
		f.drawOverlay(c, *overlay)
	}
}

func (f frame) drawBlock(c *canvas, column int, b view.Block) {
	x := f.gutter + column*f.colWidth
	width := f.colWidth - 1
	top := int(math.Floor(b.Top))

	if b.Collapsed {
		if top >= 0 && top < f.rows {
			c.text(x, headerLines+top, width, "▔"+b.Task.Title, c.style(accentStyle(b.Style)))
		}
		return
	}

	bottom := min(int(math.Ceil(b.Top+b.Height)), f.rows)
	top = max(top, 0)
	if bottom <= top {
		return
	}
	st := c.style(blockStyle(b.Style))
	c.fill(x, headerLines+top, width, bottom-top, st)
	lines := []string{
		b.Task.Title,
		b.Task.StartTime.Format("15:04") + "-" + b.Task.EndTime.Format("15:04"),
	}
	for i, line := range lines {
		if top+i >= bottom {
			break
		}
		c.text(x, headerLines+top+i, width, line, st)
	}
}

func (f frame) drawOverlay(c *canvas, o view.Overlay) {
	index := o.DayIndex
	if f.rendering.Kind == view.Day {
		index = 0
	}
	if index < 0 || index >= len(f.rendering.Columns) {
		return
	}
	top := max(int(math.Floor(o.Top)), 0)
	bottom := min(int(math.Ceil(o.Top+o.Height)), f.rows)
	if bottom <= top {
		return
	}
	x := f.gutter + index*f.colWidth
	st := c.style(selectionStyle)
	c.fill(x, headerLines+top, f.colWidth-1, bottom-top, st)

	layout := f.rendering.Layout()
	date := f.rendering.Columns[index].Date
	r := timegrid.Range{
		Start: layout.TimeFromOffset(o.Top, date),
		End:   layout.TimeFromOffset(o.Top+o.Height, date),
	}.Normalize()
	c.text(x, headerLines+top, f.colWidth-1, r.Start.Format("15:04")+"-"+r.End.Format("15:04"), st)
}

func (f frame) drawMonth(c *canvas) {
	r := f.rendering
	g := r.MonthGeometry()
	cellHeight := int(g.CellHeight)
	headerRows := int(g.HeaderHeight)
	chipRows := max(int(g.ChipHeight), 1)
	label, today, muted, border := c.style(labelStyle), c.style(todayStyle), c.style(mutedStyle), c.style(borderStyle)

	for i, d := range r.Header.Days {
		c.text(i*f.colWidth, 1, f.colWidth-1, d.Label, muted)
	}

	for index, cell := range r.Cells {
		x := (index % 7) * f.colWidth
		y := headerLines + (index/7)*cellHeight

		st := label
		switch {
		case cell.IsToday:
			st = today
		case !cell.InMonth:
			st = muted
		}
		number := fmt.Sprintf("%2d", cell.Date.Day())
		chips := cell.Tasks
		if limit := g.MaxChips(); len(chips) > limit {
			number += fmt.Sprintf(" +%d", len(chips)-limit)
			chips = chips[:limit]
		}
		c.text(x, y, f.colWidth-1, number, st)

		for j, chip := range chips {
			cy := y + headerRows + j*chipRows
			chipStyle := c.style(blockStyle(chip.Style))
			c.fill(x, cy, f.colWidth-1, chipRows, chipStyle)
			c.text(x, cy, f.colWidth-1, chip.Task.StartTime.Format("15:04")+" "+chip.Task.Title, chipStyle)
		}
		for row := 0; row < cellHeight; row++ {
			c.put(x+f.colWidth-1, y+row, '│', border)
		}
	}
}
