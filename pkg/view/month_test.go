package view

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/studyplan/studyplan/pkg/task"
)

func TestMonthRenderer_Render(t *testing.T) {
	t.Run("should render whole weeks and keep tasks on out-of-month days", func(t *testing.T) {
		// given
		r := NewMonthRenderer(DefaultMonthGeometry(), Callbacks{})
		aprilTask := newTask("april", time.Date(2025, 4, 29, 9, 0, 0, 0, time.Local), time.Hour)
		mayTask := newTask("may", time.Date(2025, 5, 13, 9, 0, 0, 0, time.Local), time.Hour)

		// when
		rendering := r.Render(anchor, []task.Task{aprilTask, mayTask}, FallbackResolver, anchor)

		// then
		require.Len(t, rendering.Cells, 35)
		first := rendering.Cells[0]
		assert.Equal(t, time.Date(2025, 4, 28, 0, 0, 0, 0, time.Local), first.Date)
		assert.False(t, first.InMonth)
		assert.False(t, rendering.Cells[1].InMonth)
		require.Len(t, rendering.Cells[1].Tasks, 1)
		assert.Equal(t, "april", rendering.Cells[1].Tasks[0].Task.Title)
		may13 := rendering.Cells[15]
		assert.True(t, may13.InMonth)
		assert.True(t, may13.IsToday)
		require.Len(t, may13.Tasks, 1)
		assert.Equal(t, "May 2025", rendering.Header.Title)
		assert.Len(t, rendering.Header.Days, 7)
		assert.Equal(t, time.Monday, rendering.Header.Days[0].Weekday)
	})
}

func TestMonthRenderer_Pointer(t *testing.T) {
	geometry := DefaultMonthGeometry()

	t.Run("should click task chip", func(t *testing.T) {
		// given
		rec := &recorder{}
		r := NewMonthRenderer(geometry, rec.callbacks())
		mayTask := newTask("may", time.Date(2025, 5, 13, 9, 0, 0, 0, time.Local), time.Hour)
		r.Render(anchor, []task.Task{mayTask}, FallbackResolver, anchor)

		// when
		r.PointerDown(Point{X: 1*geometry.CellWidth + 5, Y: 2*geometry.CellHeight + geometry.HeaderHeight + 2})

		// then
		require.Len(t, rec.clicks, 1)
		assert.Equal(t, mayTask.Id, rec.clicks[0].Id)
		assert.Empty(t, rec.selected)
	})

	t.Run("should select day on empty part of cell", func(t *testing.T) {
		// given
		rec := &recorder{}
		r := NewMonthRenderer(geometry, rec.callbacks())
		r.Render(anchor, nil, FallbackResolver, anchor)

		// when
		r.PointerDown(Point{X: 3*geometry.CellWidth + 5, Y: 1*geometry.CellHeight + 50})

		// then
		require.Len(t, rec.selected, 1)
		assert.Equal(t, time.Date(2025, 5, 8, 0, 0, 0, 0, time.Local), rec.selected[0])
	})

	t.Run("should never drag", func(t *testing.T) {
		// given
		rec := &recorder{}
		r := NewMonthRenderer(geometry, rec.callbacks())
		r.Render(anchor, nil, FallbackResolver, anchor)

		// when
		r.PointerDown(Point{X: 5, Y: 50})
		r.PointerMove(Point{X: 5, Y: 90})
		r.PointerUp(Point{X: 5, Y: 90})
		r.ReleaseOutside()

		// then
		assert.Empty(t, rec.finalized)
		_, ok := r.Overlay()
		assert.False(t, ok)
	})

	t.Run("should ignore press below the last row", func(t *testing.T) {
		// given
		rec := &recorder{}
		r := NewMonthRenderer(geometry, rec.callbacks())
		r.Render(anchor, nil, FallbackResolver, anchor)

		// when
		r.PointerDown(Point{X: 5, Y: 5*geometry.CellHeight + 1})

		// then
		assert.Empty(t, rec.selected)
	})
}

func TestMonthGeometry_MaxChips(t *testing.T) {
	assert.Equal(t, 4, DefaultMonthGeometry().MaxChips())
	assert.Equal(t, 0, MonthGeometry{CellHeight: 10, HeaderHeight: 20, ChipHeight: 5}.MaxChips())
}
