package taskform

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/studyplan/studyplan/internal/utils"
	"github.com/studyplan/studyplan/pkg/timegrid"
)

func newDialog() *Dialog {
	clock := &utils.MockClock{}
	clock.SetNow(time.Date(2025, 5, 14, 16, 20, 0, 0, time.Local))
	return NewDialog(clock)
}

func TestDialog_Open(t *testing.T) {
	t.Run("should default to today 09:00-10:00", func(t *testing.T) {
		// given
		dialog := newDialog()

		// when
		dialog.Open(nil)

		// then
		assert.True(t, dialog.IsOpen())
		assert.Equal(t, "2025-05-14", dialog.Fields.Date)
		assert.Equal(t, "09:00", dialog.Fields.Start)
		assert.Equal(t, "10:00", dialog.Fields.End)
		assert.Equal(t, "", dialog.Fields.Tag)
	})

	t.Run("should prefill from drag range", func(t *testing.T) {
		// given
		dialog := newDialog()
		day := time.Date(2025, 5, 13, 0, 0, 0, 0, time.Local)
		layout := timegrid.DefaultLayout()
		r := timegrid.Range{Start: layout.TimeFromOffset(160, day), End: layout.TimeFromOffset(240, day)}

		// when
		dialog.Open(&r)

		// then
		assert.Equal(t, "2025-05-13", dialog.Fields.Date)
		assert.Equal(t, "02:00", dialog.Fields.Start)
		assert.Equal(t, "03:00", dialog.Fields.End)
	})

	t.Run("should order reversed prefill", func(t *testing.T) {
		// given
		dialog := newDialog()
		r := timegrid.Range{
			Start: time.Date(2025, 5, 13, 11, 0, 0, 0, time.Local),
			End:   time.Date(2025, 5, 13, 10, 0, 0, 0, time.Local),
		}

		// when
		dialog.Open(&r)

		// then
		assert.Equal(t, "10:00", dialog.Fields.Start)
		assert.Equal(t, "11:00", dialog.Fields.End)
	})
}

func TestDialog_Submit(t *testing.T) {
	t.Run("should return draft and reset fields", func(t *testing.T) {
		// given
		dialog := newDialog()
		dialog.Open(nil)
		dialog.Fields.Title = "Read"
		dialog.Fields.Tag = NoTag

		// when
		draft, err := dialog.Submit()

		// then
		require.NoError(t, err)
		assert.Equal(t, "Read", draft.Title)
		assert.Equal(t, time.Date(2025, 5, 14, 9, 0, 0, 0, time.Local), draft.StartTime)
		assert.Equal(t, Fields{}, dialog.Fields)
		assert.False(t, dialog.IsOpen())
	})

	t.Run("should reject start equal to end and keep the form", func(t *testing.T) {
		// given
		dialog := newDialog()
		dialog.Open(nil)
		dialog.Fields.Title = "Read"
		dialog.Fields.Tag = NoTag
		dialog.Fields.End = dialog.Fields.Start

		// when
		_, err := dialog.Submit()

		// then
		var validationErr *ValidationError
		require.ErrorAs(t, err, &validationErr)
		assert.ErrorIs(t, err, ErrInvalidTimeRange)
		assert.True(t, dialog.IsOpen())
		assert.Equal(t, "Read", dialog.Fields.Title)
	})

	t.Run("should require tag choice", func(t *testing.T) {
		// given
		dialog := newDialog()
		dialog.Open(nil)
		dialog.Fields.Title = "Read"

		// when
		_, err := dialog.Submit()

		// then
		assert.ErrorIs(t, err, ErrTagNotSelected)
	})
}

func TestDialog_Draft(t *testing.T) {
	// given
	dialog := newDialog()
	dialog.Open(nil)
	dialog.Fields.Title = "Read"
	dialog.Fields.Tag = NoTag

	// when
	draft, err := dialog.Draft()

	// then
	require.NoError(t, err)
	assert.Equal(t, "Read", draft.Title)
	assert.True(t, dialog.IsOpen())
	assert.Equal(t, "Read", dialog.Fields.Title)

	// when
	dialog.Reset()

	// then
	assert.False(t, dialog.IsOpen())
	assert.Equal(t, Fields{}, dialog.Fields)
}
