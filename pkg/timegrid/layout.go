package timegrid

import (
	"math"
	"time"
)

// epsilon (in minutes) absorbs float rounding so that a time mapped to an offset and back
// lands on the same minute.
const epsilon = 1e-6

// Layout holds the constants of a time grid: how tall an hour is, which hours are shown and,
// for the week view, how wide a day column is. Units are whatever the UI draws in (pixels, rows).
type Layout struct {
	HourHeight float64
	DayWidth   float64
	StartHour  int
	EndHour    int
}

// Block is the vertical placement of something inside a day column.
type Block struct {
	Top    float64
	Height float64
}

// DefaultLayout matches the web calendar: 80px per hour over the whole day.
func DefaultLayout() Layout {
	return Layout{HourHeight: 80, DayWidth: 160, StartHour: 0, EndHour: 24}
}

// TimeFromOffset maps a vertical offset inside a day column to a wall-clock time on anchor's date.
// Offsets outside the visible hours are not clamped; they extrapolate past the grid boundaries.
func (l Layout) TimeFromOffset(offset float64, anchor time.Time) time.Time {
	hourDecimal := offset/l.HourHeight + float64(l.StartHour)
	// floor(hourDecimal*60) splits into floor(hour) and floor(fraction*60) without the two
	// floors disagreeing near a whole hour.
	totalMinutes := math.Floor(hourDecimal*60 + epsilon)
	hour := math.Floor(totalMinutes / 60)
	minute := totalMinutes - hour*60
	return time.Date(anchor.Year(), anchor.Month(), anchor.Day(), int(hour), int(minute), 0, 0, anchor.Location())
}

// OffsetFromTime returns the top offset of t inside its day column.
func (l Layout) OffsetFromTime(t time.Time) float64 {
	return float64(t.Hour()-l.StartHour)*l.HourHeight + float64(t.Minute())/60*l.HourHeight
}

// OffsetFromTask places a task spanning start..end. The height is derived from the task's own
// times, so a zero or negative duration yields a degenerate block.
func (l Layout) OffsetFromTask(start, end time.Time) Block {
	startMinutes := start.Hour()*60 + start.Minute()
	endMinutes := end.Hour()*60 + end.Minute()
	return Block{
		Top:    l.OffsetFromTime(start),
		Height: float64(endMinutes-startMinutes) / 60 * l.HourHeight,
	}
}

// DayIndexFromOffset resolves which day column a horizontal offset falls into.
func (l Layout) DayIndexFromOffset(offset float64) int {
	return int(math.Floor(offset / l.DayWidth))
}

// Height is the total height of the visible hour range.
func (l Layout) Height() float64 {
	return float64(l.EndHour-l.StartHour) * l.HourHeight
}

// Hours lists the visible hours, top to bottom.
func (l Layout) Hours() []int {
	hours := make([]int, 0, l.EndHour-l.StartHour)
	for h := l.StartHour; h < l.EndHour; h++ {
		hours = append(hours, h)
	}
	return hours
}
