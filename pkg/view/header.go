package view

import (
	"fmt"
	"time"

	"github.com/studyplan/studyplan/pkg/timegrid"
)

// Header is the title strip above a view.
type Header struct {
	Title string
	Days  []HeaderDay
}

// HeaderDay labels one column. Month headers carry weekday names only, with a zero Date.
type HeaderDay struct {
	Date    time.Time
	Weekday time.Weekday
	Label   string
	IsToday bool
}

func HeaderFor(kind Kind, ref time.Time, today time.Time) Header {
	switch kind {
	case Week:
		week := timegrid.WeekDatesFor(ref)
		days := make([]HeaderDay, 0, len(week))
		for _, d := range week {
			days = append(days, headerDay(d, today))
		}
		return Header{Title: weekTitle(week[0], week[6]), Days: days}
	case Month:
		days := make([]HeaderDay, 0, 7)
		monday := timegrid.StartOfWeek(ref)
		for i := 0; i < 7; i++ {
			weekday := monday.AddDate(0, 0, i).Weekday()
			days = append(days, HeaderDay{Weekday: weekday, Label: weekday.String()[:3]})
		}
		return Header{Title: ref.Format("January 2006"), Days: days}
	default:
		day := timegrid.StartOfDay(ref)
		return Header{Title: day.Format("Monday, January 2 2006"), Days: []HeaderDay{headerDay(day, today)}}
	}
}

func headerDay(d time.Time, today time.Time) HeaderDay {
	return HeaderDay{
		Date:    d,
		Weekday: d.Weekday(),
		Label:   d.Format("Mon 2"),
		IsToday: timegrid.SameDay(d, today),
	}
}

func weekTitle(first, last time.Time) string {
	switch {
	case first.Year() != last.Year():
		return fmt.Sprintf("%s - %s", first.Format("Jan 2 2006"), last.Format("Jan 2 2006"))
	case first.Month() != last.Month():
		return fmt.Sprintf("%s - %s", first.Format("Jan 2"), last.Format("Jan 2 2006"))
	default:
		return fmt.Sprintf("%s - %s", first.Format("Jan 2"), last.Format("2 2006"))
	}
}
