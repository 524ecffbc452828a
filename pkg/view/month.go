package view

import (
	"math"
	"time"

	"github.com/studyplan/studyplan/pkg/task"
	"github.com/studyplan/studyplan/pkg/timegrid"
)

// MonthGeometry sizes the month grid cells. HeaderHeight is the day-number strip at the top of a
// cell; task chips are stacked below it.
type MonthGeometry struct {
	CellWidth    float64
	CellHeight   float64
	HeaderHeight float64
	ChipHeight   float64
}

func DefaultMonthGeometry() MonthGeometry {
	return MonthGeometry{CellWidth: 160, CellHeight: 120, HeaderHeight: 24, ChipHeight: 20}
}

// MaxChips is how many task chips fit in a cell.
func (g MonthGeometry) MaxChips() int {
	if g.ChipHeight <= 0 {
		return 0
	}
	return int(math.Max(0, math.Floor((g.CellHeight-g.HeaderHeight)/g.ChipHeight)))
}

// MonthRenderer lays out whole weeks around a month. It has no drag-to-create: pressing a chip
// clicks its task and pressing elsewhere in a cell selects the day.
type MonthRenderer struct {
	geometry  MonthGeometry
	callbacks Callbacks
	last      Rendering
}

func NewMonthRenderer(geometry MonthGeometry, callbacks Callbacks) *MonthRenderer {
	return &MonthRenderer{geometry: geometry, callbacks: callbacks}
}

func (m *MonthRenderer) Kind() Kind {
	return Month
}

func (m *MonthRenderer) Render(ref time.Time, tasks []task.Task, resolve TagResolver, now time.Time) Rendering {
	days := timegrid.MonthGridFor(ref)
	cells := make([]Cell, 0, len(days))
	for _, day := range days {
		cell := Cell{
			Date:    day,
			InMonth: day.Month() == ref.Month() && day.Year() == ref.Year(),
			IsToday: timegrid.SameDay(day, now),
		}
		for _, t := range tasksOn(day, tasks) {
			cell.Tasks = append(cell.Tasks, Chip{Task: t, Style: resolveStyle(resolve, t)})
		}
		cells = append(cells, cell)
	}
	m.last = Rendering{
		Kind:      Month,
		Reference: timegrid.StartOfMonth(ref),
		Header:    HeaderFor(Month, ref, now),
		Cells:     cells,
		month:     m.geometry,
	}
	return m.last
}

func (m *MonthRenderer) PointerDown(p Point) {
	hit := m.last.HitTest(p)
	switch hit.Target {
	case HitTask:
		m.callbacks.taskClick(hit.Task)
	case HitCell:
		m.callbacks.daySelect(hit.Date)
	}
}

func (m *MonthRenderer) PointerMove(Point) {}

func (m *MonthRenderer) PointerUp(Point) {}

func (m *MonthRenderer) ReleaseOutside() {}

func (m *MonthRenderer) Cancel() {}

func (m *MonthRenderer) Overlay() (Overlay, bool) {
	return Overlay{}, false
}
