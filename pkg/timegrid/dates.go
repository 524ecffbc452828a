package timegrid

import "time"

// Range is a time span produced by drag-to-create.
type Range struct {
	Start time.Time
	End   time.Time
}

// Normalize orders the range so that Start <= End.
func (r Range) Normalize() Range {
	if r.Start.After(r.End) {
		return Range{Start: r.End, End: r.Start}
	}
	return r
}

// StartOfDay returns midnight of t's day in t's location.
func StartOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// SameDay reports whether a and b fall on the same calendar day.
func SameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// StartOfWeek returns the Monday of the week containing t.
func StartOfWeek(t time.Time) time.Time {
	day := StartOfDay(t)
	if day.Weekday() == time.Sunday {
		return day.AddDate(0, 0, -6)
	}
	return day.AddDate(0, 0, -int(day.Weekday()-time.Monday))
}

// EndOfWeek returns the Sunday of the week containing t.
func EndOfWeek(t time.Time) time.Time {
	return StartOfWeek(t).AddDate(0, 0, 6)
}

// StartOfMonth returns the first day of t's month.
func StartOfMonth(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
}

// EndOfMonth returns the last day of t's month.
func EndOfMonth(t time.Time) time.Time {
	return StartOfMonth(t).AddDate(0, 1, -1)
}

// WeekDatesFor returns the seven days, Monday first, of the week containing anchor.
func WeekDatesFor(anchor time.Time) [7]time.Time {
	var dates [7]time.Time
	monday := StartOfWeek(anchor)
	for i := range dates {
		dates[i] = monday.AddDate(0, 0, i)
	}
	return dates
}

// MonthGridFor returns every day from the Monday on or before the first of the month through the
// Sunday on or after its last day. The result always has a multiple of seven entries.
func MonthGridFor(anchor time.Time) []time.Time {
	first := StartOfWeek(StartOfMonth(anchor))
	last := EndOfWeek(EndOfMonth(anchor))
	days := make([]time.Time, 0, 42)
	for d := first; !d.After(last); d = d.AddDate(0, 0, 1) {
		days = append(days, d)
	}
	return days
}
