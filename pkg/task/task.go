package task

import (
	"time"

	"github.com/google/uuid"
)

// Task is a time-boxed study item. StartTime and EndTime are wall-clock times in the local zone.
type Task struct {
	Id          uuid.UUID
	Title       string
	Description string
	StartTime   time.Time
	EndTime     time.Time
	TagId       uuid.NullUUID
}

// Date is the calendar day the task belongs to, taken from its start.
func (t Task) Date() time.Time {
	y, m, d := t.StartTime.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.StartTime.Location())
}

func (t Task) Duration() time.Duration {
	return t.EndTime.Sub(t.StartTime)
}

// HasTag reports whether the task is categorized.
func (t Task) HasTag() bool {
	return t.TagId.Valid
}

// TagRef wraps a tag id in the nullable reference stored on tasks.
func TagRef(id uuid.UUID) uuid.NullUUID {
	if id == uuid.Nil {
		return uuid.NullUUID{}
	}
	return uuid.NullUUID{UUID: id, Valid: true}
}
