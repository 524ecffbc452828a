package taskform

import (
	"time"

	"github.com/studyplan/studyplan/internal/utils"
	"github.com/studyplan/studyplan/pkg/task"
	"github.com/studyplan/studyplan/pkg/timegrid"
)

// Dialog is the create-task form.
type Dialog struct {
	clock  utils.Clock
	open   bool
	Fields Fields
}

func NewDialog(clock utils.Clock) *Dialog {
	return &Dialog{clock: clock}
}

// Open shows the dialog pre-filled from a drag range, or with today 09:00-10:00 when prefill is
// nil. Title, description and tag are kept from an earlier, unsubmitted opening.
func (d *Dialog) Open(prefill *timegrid.Range) {
	var start, end time.Time
	if prefill != nil {
		r := prefill.Normalize()
		start, end = r.Start, r.End
	} else {
		today := utils.Today(d.clock)
		start = time.Date(today.Year(), today.Month(), today.Day(), 9, 0, 0, 0, today.Location())
		end = start.Add(time.Hour)
	}
	d.Fields.Date = start.Format(DateLayout)
	d.Fields.Start = start.Format(TimeLayout)
	d.Fields.End = end.Format(TimeLayout)
	d.open = true
}

func (d *Dialog) IsOpen() bool {
	return d.open
}

func (d *Dialog) Close() {
	d.open = false
}

// Draft validates the form and returns the task it describes. The dialog is left as is.
func (d *Dialog) Draft() (task.Task, error) {
	return d.Fields.Task()
}

// Reset clears the fields for the next use and closes the dialog.
func (d *Dialog) Reset() {
	d.Fields = Fields{}
	d.open = false
}

// Submit validates the form and returns a draft task. On success the dialog is reset.
func (d *Dialog) Submit() (task.Task, error) {
	draft, err := d.Draft()
	if err != nil {
		return task.Task{}, err
	}
	d.Reset()
	return draft, nil
}
