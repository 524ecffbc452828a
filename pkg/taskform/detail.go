package taskform

import (
	"errors"

	"github.com/google/uuid"
	"github.com/studyplan/studyplan/pkg/task"
)

var (
	ErrNoTaskShown        = errors.New("no task shown")
	ErrNotEditing         = errors.New("task is not being edited")
	ErrDeleteNotRequested = errors.New("delete was not requested")
)

// Detail shows one task read-only and can switch into an edit form seeded from it.
type Detail struct {
	task             task.Task
	visible          bool
	editing          bool
	confirmingDelete bool
	Fields           Fields
}

func NewDetail() *Detail {
	return &Detail{}
}

// Show displays t read-only, dropping any edit in progress.
func (d *Detail) Show(t task.Task) {
	d.task = t
	d.visible = true
	d.editing = false
	d.confirmingDelete = false
	d.Fields = Fields{}
}

func (d *Detail) Hide() {
	d.visible = false
	d.editing = false
	d.confirmingDelete = false
}

// Task returns the shown task.
func (d *Detail) Task() (task.Task, bool) {
	return d.task, d.visible
}

func (d *Detail) IsVisible() bool {
	return d.visible
}

func (d *Detail) IsEditing() bool {
	return d.editing
}

func (d *Detail) IsConfirmingDelete() bool {
	return d.confirmingDelete
}

func (d *Detail) Edit() error {
	if !d.visible {
		return ErrNoTaskShown
	}
	d.Fields = FieldsFromTask(d.task)
	d.editing = true
	d.confirmingDelete = false
	return nil
}

func (d *Detail) CancelEdit() {
	d.editing = false
	d.Fields = Fields{}
}

// Submit rebuilds the task from the edit form and keeps its id. The detail stays in edit mode
// until Show is called with the stored result.
func (d *Detail) Submit() (task.Task, error) {
	if !d.visible || !d.editing {
		return task.Task{}, ErrNotEditing
	}
	updated, err := d.Fields.Task()
	if err != nil {
		return task.Task{}, err
	}
	updated.Id = d.task.Id
	return updated, nil
}

func (d *Detail) RequestDelete() error {
	if !d.visible {
		return ErrNoTaskShown
	}
	d.confirmingDelete = true
	return nil
}

func (d *Detail) CancelDelete() {
	d.confirmingDelete = false
}

// ConfirmDelete returns the id to delete. It fails unless RequestDelete came first.
func (d *Detail) ConfirmDelete() (uuid.UUID, error) {
	if !d.visible || !d.confirmingDelete {
		return uuid.Nil, ErrDeleteNotRequested
	}
	d.confirmingDelete = false
	return d.task.Id, nil
}
