package view

import (
	"time"

	"github.com/studyplan/studyplan/pkg/task"
	"github.com/studyplan/studyplan/pkg/timegrid"
)

// GridRenderer renders hour grids: a single column for the Day view, seven for the Week view.
// Both support drag-to-create within one column.
type GridRenderer struct {
	kind      Kind
	layout    timegrid.Layout
	callbacks Callbacks
	drag      *DragMachine
	last      Rendering
}

func NewDayRenderer(layout timegrid.Layout, callbacks Callbacks) *GridRenderer {
	return &GridRenderer{kind: Day, layout: layout, callbacks: callbacks, drag: NewDragMachine(layout)}
}

func NewWeekRenderer(layout timegrid.Layout, callbacks Callbacks) *GridRenderer {
	return &GridRenderer{kind: Week, layout: layout, callbacks: callbacks, drag: NewDragMachine(layout)}
}

func (g *GridRenderer) Kind() Kind {
	return g.kind
}

func (g *GridRenderer) dates(ref time.Time) []time.Time {
	if g.kind == Day {
		return []time.Time{timegrid.StartOfDay(ref)}
	}
	week := timegrid.WeekDatesFor(ref)
	return week[:]
}

func (g *GridRenderer) Render(ref time.Time, tasks []task.Task, resolve TagResolver, now time.Time) Rendering {
	columns, nowLine := renderColumns(g.layout, g.dates(ref), tasks, resolve, now)
	g.last = Rendering{
		Kind:      g.kind,
		Reference: timegrid.StartOfDay(ref),
		Header:    HeaderFor(g.kind, ref, now),
		Hours:     g.layout.Hours(),
		Columns:   columns,
		NowLine:   nowLine,
		layout:    g.layout,
	}
	return g.last
}

// PointerDown on a block is a task click. Anywhere else in a column starts a drag; outside the
// columns it is ignored.
func (g *GridRenderer) PointerDown(p Point) {
	hit := g.last.HitTest(p)
	switch hit.Target {
	case HitTask:
		g.callbacks.taskClick(hit.Task)
	case HitGrid:
		g.drag.Down(hit.DayIndex, hit.Date, p.Y)
	}
}

// PointerMove only follows the vertical axis; the column stays locked to the one pressed.
func (g *GridRenderer) PointerMove(p Point) {
	if overlay, ok := g.drag.Move(p.Y); ok {
		g.callbacks.dragUpdate(overlay)
	}
}

func (g *GridRenderer) PointerUp(p Point) {
	if r, dayIndex, ok := g.drag.Up(p.Y); ok {
		g.callbacks.dragFinalize(r, dayIndex)
	}
}

func (g *GridRenderer) ReleaseOutside() {
	if r, dayIndex, ok := g.drag.Release(); ok {
		g.callbacks.dragFinalize(r, dayIndex)
	}
}

func (g *GridRenderer) Cancel() {
	g.drag.Cancel()
}

func (g *GridRenderer) Overlay() (Overlay, bool) {
	if g.drag.Phase() != Dragging {
		return Overlay{}, false
	}
	return g.drag.Overlay(), true
}

// Phase exposes the drag machine phase.
func (g *GridRenderer) Phase() Phase {
	return g.drag.Phase()
}
