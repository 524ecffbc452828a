package taskform

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/studyplan/studyplan/pkg/task"
)

func shownTask() task.Task {
	return task.Task{
		Id:        uuid.New(),
		Title:     "Read",
		StartTime: time.Date(2025, 5, 13, 9, 0, 0, 0, time.Local),
		EndTime:   time.Date(2025, 5, 13, 10, 0, 0, 0, time.Local),
	}
}

func TestDetail_Edit(t *testing.T) {
	t.Run("should preserve id when submitting edit", func(t *testing.T) {
		// given
		detail := NewDetail()
		original := shownTask()
		detail.Show(original)
		require.NoError(t, detail.Edit())
		detail.Fields.Date = "2025-05-15"
		detail.Fields.End = "11:15"

		// when
		updated, err := detail.Submit()

		// then
		require.NoError(t, err)
		assert.Equal(t, original.Id, updated.Id)
		assert.Equal(t, time.Date(2025, 5, 15, 9, 0, 0, 0, time.Local), updated.StartTime)
		assert.Equal(t, time.Date(2025, 5, 15, 11, 15, 0, 0, time.Local), updated.EndTime)
		assert.True(t, detail.IsEditing())
	})

	t.Run("should seed form from task", func(t *testing.T) {
		// given
		detail := NewDetail()
		original := shownTask()
		detail.Show(original)

		// when
		require.NoError(t, detail.Edit())

		// then
		assert.Equal(t, FieldsFromTask(original), detail.Fields)
	})

	t.Run("should refuse submit outside edit mode", func(t *testing.T) {
		// given
		detail := NewDetail()
		detail.Show(shownTask())

		// when
		_, err := detail.Submit()

		// then
		assert.ErrorIs(t, err, ErrNotEditing)
	})

	t.Run("should return to read-only on cancel", func(t *testing.T) {
		// given
		detail := NewDetail()
		detail.Show(shownTask())
		require.NoError(t, detail.Edit())

		// when
		detail.CancelEdit()

		// then
		assert.False(t, detail.IsEditing())
		assert.True(t, detail.IsVisible())
	})

	t.Run("should refuse edit when nothing shown", func(t *testing.T) {
		assert.ErrorIs(t, NewDetail().Edit(), ErrNoTaskShown)
	})
}

func TestDetail_Delete(t *testing.T) {
	t.Run("should require confirmation", func(t *testing.T) {
		// given
		detail := NewDetail()
		shown := shownTask()
		detail.Show(shown)

		// when
		_, errBefore := detail.ConfirmDelete()
		require.NoError(t, detail.RequestDelete())
		id, err := detail.ConfirmDelete()

		// then
		assert.ErrorIs(t, errBefore, ErrDeleteNotRequested)
		require.NoError(t, err)
		assert.Equal(t, shown.Id, id)
		assert.False(t, detail.IsConfirmingDelete())
	})

	t.Run("should not delete after cancel", func(t *testing.T) {
		// given
		detail := NewDetail()
		detail.Show(shownTask())
		require.NoError(t, detail.RequestDelete())

		// when
		detail.CancelDelete()
		_, err := detail.ConfirmDelete()

		// then
		assert.ErrorIs(t, err, ErrDeleteNotRequested)
	})
}
