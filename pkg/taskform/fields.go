package taskform

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/studyplan/studyplan/pkg/task"
)

const (
	DateLayout = "2006-01-02"
	TimeLayout = "15:04"
	// NoTag is the explicit "uncategorized" choice. An empty Tag field means nothing was chosen.
	NoTag = "none"
)

var (
	ErrEmptyTitle       = errors.New("title is required")
	ErrTagNotSelected   = errors.New("select a tag or none")
	ErrInvalidDate      = errors.New("date must look like 2006-01-02")
	ErrInvalidTime      = errors.New("time must look like 15:04")
	ErrInvalidTimeRange = errors.New("start time must be before end time")
)

// ValidationError points at the form field that could not be turned into a task.
type ValidationError struct {
	Field string
	Err   error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %v", e.Field, e.Err)
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

// Fields is the raw text of the task form.
type Fields struct {
	Title       string
	Description string
	Date        string
	Start       string
	End         string
	Tag         string
}

// FieldsFromTask seeds the form with an existing task.
func FieldsFromTask(t task.Task) Fields {
	fields := Fields{
		Title:       t.Title,
		Description: t.Description,
		Date:        t.StartTime.Format(DateLayout),
		Start:       t.StartTime.Format(TimeLayout),
		End:         t.EndTime.Format(TimeLayout),
		Tag:         NoTag,
	}
	if t.TagId.Valid {
		fields.Tag = t.TagId.UUID.String()
	}
	return fields
}

// Task combines the date with both time fields and validates the result. The returned task has
// no id.
func (f Fields) Task() (task.Task, error) {
	title := strings.TrimSpace(f.Title)
	if title == "" {
		return task.Task{}, &ValidationError{Field: "title", Err: ErrEmptyTitle}
	}

	tagId, err := parseTag(f.Tag)
	if err != nil {
		return task.Task{}, err
	}

	date, err := time.ParseInLocation(DateLayout, strings.TrimSpace(f.Date), time.Local)
	if err != nil {
		return task.Task{}, &ValidationError{Field: "date", Err: ErrInvalidDate}
	}
	start, err := combine(date, f.Start)
	if err != nil {
		return task.Task{}, &ValidationError{Field: "start", Err: ErrInvalidTime}
	}
	end, err := combine(date, f.End)
	if err != nil {
		return task.Task{}, &ValidationError{Field: "end", Err: ErrInvalidTime}
	}
	if !start.Before(end) {
		return task.Task{}, &ValidationError{Field: "end", Err: ErrInvalidTimeRange}
	}

	return task.Task{
		Title:       title,
		Description: strings.TrimSpace(f.Description),
		StartTime:   start,
		EndTime:     end,
		TagId:       tagId,
	}, nil
}

func parseTag(value string) (uuid.NullUUID, error) {
	value = strings.TrimSpace(value)
	switch value {
	case "":
		return uuid.NullUUID{}, &ValidationError{Field: "tag", Err: ErrTagNotSelected}
	case NoTag:
		return uuid.NullUUID{}, nil
	}
	id, err := uuid.Parse(value)
	if err != nil {
		return uuid.NullUUID{}, &ValidationError{Field: "tag", Err: ErrTagNotSelected}
	}
	return task.TagRef(id), nil
}

func combine(date time.Time, clock string) (time.Time, error) {
	t, err := time.Parse(TimeLayout, strings.TrimSpace(clock))
	if err != nil {
		return time.Time{}, err
	}
	return time.Date(date.Year(), date.Month(), date.Day(), t.Hour(), t.Minute(), 0, 0, date.Location()), nil
}
