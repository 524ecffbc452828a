package view

import (
	"math"
	"sort"
	"time"

	"github.com/studyplan/studyplan/pkg/tag"
	"github.com/studyplan/studyplan/pkg/task"
	"github.com/studyplan/studyplan/pkg/timegrid"
)

// Point is a pointer position in grid coordinates: X from the left edge of the first day column,
// Y from the top of the first visible hour (or of the first month row).
type Point struct {
	X float64
	Y float64
}

// Rendering is the output of a renderer: everything a shell needs to paint one frame and to
// resolve pointer positions against it.
type Rendering struct {
	Kind      Kind
	Reference time.Time
	Header    Header
	Hours     []int
	Columns   []Column
	Cells     []Cell
	NowLine   *NowLine

	layout timegrid.Layout
	month  MonthGeometry
}

type Column struct {
	Date    time.Time
	IsToday bool
	Blocks  []Block
}

// Block is a task positioned inside a day column. Overlapping tasks get independent blocks.
type Block struct {
	Task      task.Task
	Style     tag.Style
	DayIndex  int
	Top       float64
	Height    float64
	Collapsed bool
}

func (b Block) contains(y float64) bool {
	return !b.Collapsed && y >= b.Top && y < b.Top+b.Height
}

type Cell struct {
	Date    time.Time
	InMonth bool
	IsToday bool
	Tasks   []Chip
}

type Chip struct {
	Task  task.Task
	Style tag.Style
}

// NowLine marks the current time inside today's column.
type NowLine struct {
	DayIndex int
	Top      float64
}

type Target int

const (
	HitNone Target = iota
	HitTask
	HitGrid
	HitCell
)

type Hit struct {
	Target   Target
	Task     task.Task
	DayIndex int
	Date     time.Time
}

// Layout is the time grid the rendering was laid out with.
func (r Rendering) Layout() timegrid.Layout {
	return r.layout
}

// MonthGeometry is the cell geometry of a Month rendering.
func (r Rendering) MonthGeometry() MonthGeometry {
	return r.month
}

// HitTest resolves p against the rendered blocks, columns or cells. When blocks overlap the one
// painted last wins.
func (r Rendering) HitTest(p Point) Hit {
	if r.Kind == Month {
		return r.hitCell(p)
	}
	if len(r.Columns) == 0 || p.Y < 0 || p.Y >= r.layout.Height() {
		return Hit{Target: HitNone}
	}
	index := 0
	if r.Kind == Week {
		index = r.layout.DayIndexFromOffset(p.X)
		if index < 0 || index >= len(r.Columns) {
			return Hit{Target: HitNone}
		}
	}
	column := r.Columns[index]
	for i := len(column.Blocks) - 1; i >= 0; i-- {
		if column.Blocks[i].contains(p.Y) {
			return Hit{Target: HitTask, Task: column.Blocks[i].Task, DayIndex: index, Date: column.Date}
		}
	}
	return Hit{Target: HitGrid, DayIndex: index, Date: column.Date}
}

func (r Rendering) hitCell(p Point) Hit {
	g := r.month
	if p.X < 0 || p.Y < 0 || g.CellWidth <= 0 || g.CellHeight <= 0 {
		return Hit{Target: HitNone}
	}
	col := int(math.Floor(p.X / g.CellWidth))
	row := int(math.Floor(p.Y / g.CellHeight))
	index := row*7 + col
	if col >= 7 || index >= len(r.Cells) {
		return Hit{Target: HitNone}
	}
	cell := r.Cells[index]
	localY := p.Y - float64(row)*g.CellHeight - g.HeaderHeight
	if localY >= 0 && g.ChipHeight > 0 {
		chip := int(math.Floor(localY / g.ChipHeight))
		if chip < len(cell.Tasks) && chip < g.MaxChips() {
			return Hit{Target: HitTask, Task: cell.Tasks[chip].Task, DayIndex: index, Date: cell.Date}
		}
	}
	return Hit{Target: HitCell, DayIndex: index, Date: cell.Date}
}

func tasksOn(day time.Time, tasks []task.Task) []task.Task {
	var result []task.Task
	for _, t := range tasks {
		if timegrid.SameDay(t.Date(), day) {
			result = append(result, t)
		}
	}
	sort.SliceStable(result, func(i, j int) bool {
		return result[i].StartTime.Before(result[j].StartTime)
	})
	return result
}

func resolveStyle(resolve TagResolver, t task.Task) tag.Style {
	if resolve == nil {
		return tag.FallbackStyle
	}
	return resolve(t.TagId)
}

func renderColumns(layout timegrid.Layout, dates []time.Time, tasks []task.Task, resolve TagResolver, now time.Time) ([]Column, *NowLine) {
	columns := make([]Column, 0, len(dates))
	var nowLine *NowLine
	for i, date := range dates {
		column := Column{Date: date, IsToday: timegrid.SameDay(date, now)}
		for _, t := range tasksOn(date, tasks) {
			placement := layout.OffsetFromTask(t.StartTime, t.EndTime)
			block := Block{
				Task:     t,
				Style:    resolveStyle(resolve, t),
				DayIndex: i,
				Top:      placement.Top,
				Height:   placement.Height,
			}
			if block.Height <= 0 {
				block.Height = 0
				block.Collapsed = true
			}
			column.Blocks = append(column.Blocks, block)
		}
		if column.IsToday {
			top := layout.OffsetFromTime(now)
			if top >= 0 && top <= layout.Height() {
				nowLine = &NowLine{DayIndex: i, Top: top}
			}
		}
		columns = append(columns, column)
	}
	return columns, nowLine
}
