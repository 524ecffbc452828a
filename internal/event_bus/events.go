package event_bus

import (
	"time"

	"github.com/google/uuid"
	"github.com/studyplan/studyplan/pkg/tag"
	"github.com/studyplan/studyplan/pkg/task"
	"github.com/studyplan/studyplan/pkg/timegrid"
)

const (
	TaskClicked   EventType = "task.clicked"
	DragFinalized EventType = "drag.finalized"
	TagChanged    EventType = "tag.changed"
	Notify        EventType = "notification"
	DaySelected   EventType = "day.selected"
)

type TaskClick struct {
	Task task.Task
}

// DragResult is the normalized range a drag produced. DayIndex is the week column the drag was
// locked to, zero outside the Week view.
type DragResult struct {
	Range    timegrid.Range
	DayIndex int
}

// TagsChanged carries the full tag list after any tag mutation or reload.
type TagsChanged struct {
	Tags []tag.Tag
}

type Severity string

const (
	SeverityInfo  Severity = "info"
	SeverityError Severity = "error"
)

// Notification is a user-facing message, typically raised when a store call fails.
type Notification struct {
	Severity Severity
	Message  string
	TaskId   uuid.NullUUID
}

type DaySelect struct {
	Date time.Time
}
