package view

import (
	"math"
	"time"

	"github.com/studyplan/studyplan/pkg/task"
	"github.com/studyplan/studyplan/pkg/timegrid"
)

type Phase int

const (
	Idle Phase = iota
	PointerDown
	Dragging
)

func (p Phase) String() string {
	switch p {
	case PointerDown:
		return "pointer-down"
	case Dragging:
		return "dragging"
	default:
		return "idle"
	}
}

// DragState is the transient record of a drag-to-create gesture.
type DragState struct {
	StartTime      time.Time
	CurrentTime    time.Time
	StartPixel     float64
	CurrentPixel   float64
	ActiveDayIndex int
}

// Overlay is the translucent selection painted while dragging.
type Overlay struct {
	DayIndex int
	Top      float64
	Height   float64
}

// Callbacks receive the renderer's outputs. Nil callbacks are skipped.
type Callbacks struct {
	OnTaskClick    func(task.Task)
	OnDragUpdate   func(Overlay)
	OnDragFinalize func(r timegrid.Range, dayIndex int)
	OnDaySelect    func(date time.Time)
}

func (c Callbacks) taskClick(t task.Task) {
	if c.OnTaskClick != nil {
		c.OnTaskClick(t)
	}
}

func (c Callbacks) dragUpdate(o Overlay) {
	if c.OnDragUpdate != nil {
		c.OnDragUpdate(o)
	}
}

func (c Callbacks) dragFinalize(r timegrid.Range, dayIndex int) {
	if c.OnDragFinalize != nil {
		c.OnDragFinalize(r, dayIndex)
	}
}

func (c Callbacks) daySelect(date time.Time) {
	if c.OnDaySelect != nil {
		c.OnDaySelect(date)
	}
}

// DragMachine tracks one drag gesture inside a day column:
// Idle -> PointerDown -> Dragging -> Idle, or Idle -> PointerDown -> Idle for a click without
// movement. The day column is locked when the pointer goes down.
type DragMachine struct {
	layout timegrid.Layout
	phase  Phase
	anchor time.Time
	state  DragState
}

func NewDragMachine(layout timegrid.Layout) *DragMachine {
	return &DragMachine{layout: layout}
}

func (m *DragMachine) Phase() Phase {
	return m.phase
}

// State returns the current drag record; it is meaningful only outside Idle.
func (m *DragMachine) State() DragState {
	return m.state
}

// Down starts tracking a gesture on the column showing anchor. Ignored unless Idle.
func (m *DragMachine) Down(dayIndex int, anchor time.Time, y float64) {
	if m.phase != Idle {
		return
	}
	m.anchor = anchor
	y = m.clamp(y)
	at := m.timeAt(y)
	m.state = DragState{
		StartTime:      at,
		CurrentTime:    at,
		StartPixel:     y,
		CurrentPixel:   y,
		ActiveDayIndex: dayIndex,
	}
	m.phase = PointerDown
}

// Move updates the current position. It returns the overlay to paint once the gesture has become
// a drag.
func (m *DragMachine) Move(y float64) (Overlay, bool) {
	if !m.track(y) {
		return Overlay{}, false
	}
	return m.Overlay(), true
}

// track moves the current position to y, promoting PointerDown to Dragging once y differs from
// the press. It reports whether the gesture is a drag.
func (m *DragMachine) track(y float64) bool {
	y = m.clamp(y)
	switch m.phase {
	case Idle:
		return false
	case PointerDown:
		if y == m.state.StartPixel {
			return false
		}
		m.phase = Dragging
	}
	m.state.CurrentPixel = y
	m.state.CurrentTime = m.timeAt(y)
	return true
}

// clamp keeps y inside the visible hours.
func (m *DragMachine) clamp(y float64) float64 {
	return math.Max(0, math.Min(y, m.layout.Height()))
}

// timeAt maps y to a time on the anchor day. The bottom edge of a grid ending at midnight maps to
// 23:59 so a range never crosses into the next day.
func (m *DragMachine) timeAt(y float64) time.Time {
	at := m.layout.TimeFromOffset(y, m.anchor)
	if !timegrid.SameDay(at, m.anchor) {
		return time.Date(m.anchor.Year(), m.anchor.Month(), m.anchor.Day(), 23, 59, 0, 0, m.anchor.Location())
	}
	return at
}

// Overlay spans the pixels between the start and current positions.
func (m *DragMachine) Overlay() Overlay {
	top := math.Min(m.state.StartPixel, m.state.CurrentPixel)
	bottom := math.Max(m.state.StartPixel, m.state.CurrentPixel)
	return Overlay{DayIndex: m.state.ActiveDayIndex, Top: top, Height: bottom - top}
}

// Up ends the gesture at y. A release away from the press is a drag even without a move in
// between. A drag yields its ordered range and locked column; a plain click yields nothing. The
// machine is Idle afterwards either way.
func (m *DragMachine) Up(y float64) (timegrid.Range, int, bool) {
	m.track(y)
	return m.finish()
}

// Release ends the gesture at the last known position, for releases outside the tracked area.
func (m *DragMachine) Release() (timegrid.Range, int, bool) {
	return m.finish()
}

// Cancel drops any gesture without emitting a result.
func (m *DragMachine) Cancel() {
	m.phase = Idle
	m.state = DragState{}
}

func (m *DragMachine) finish() (timegrid.Range, int, bool) {
	dragging := m.phase == Dragging
	state := m.state
	m.Cancel()
	if !dragging {
		return timegrid.Range{}, 0, false
	}
	r := timegrid.Range{Start: state.StartTime, End: state.CurrentTime}.Normalize()
	return r, state.ActiveDayIndex, true
}
