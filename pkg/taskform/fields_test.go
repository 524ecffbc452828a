package taskform

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/studyplan/studyplan/pkg/task"
)

func validFields() Fields {
	return Fields{
		Title: "Read chapter 3",
		Date:  "2025-05-13",
		Start: "09:00",
		End:   "10:30",
		Tag:   NoTag,
	}
}

func TestFields_Task(t *testing.T) {
	t.Run("should combine date with both times", func(t *testing.T) {
		// when
		draft, err := validFields().Task()

		// then
		require.NoError(t, err)
		assert.Equal(t, uuid.Nil, draft.Id)
		assert.Equal(t, "Read chapter 3", draft.Title)
		assert.Equal(t, time.Date(2025, 5, 13, 9, 0, 0, 0, time.Local), draft.StartTime)
		assert.Equal(t, time.Date(2025, 5, 13, 10, 30, 0, 0, time.Local), draft.EndTime)
		assert.False(t, draft.TagId.Valid)
	})

	t.Run("should keep selected tag", func(t *testing.T) {
		// given
		fields := validFields()
		tagId := uuid.New()
		fields.Tag = tagId.String()

		// when
		draft, err := fields.Task()

		// then
		require.NoError(t, err)
		assert.Equal(t, task.TagRef(tagId), draft.TagId)
	})

	testCases := []struct {
		name   string
		modify func(*Fields)
		field  string
		want   error
	}{
		{"empty title", func(f *Fields) { f.Title = "   " }, "title", ErrEmptyTitle},
		{"no tag chosen", func(f *Fields) { f.Tag = "" }, "tag", ErrTagNotSelected},
		{"garbage tag", func(f *Fields) { f.Tag = "math" }, "tag", ErrTagNotSelected},
		{"bad date", func(f *Fields) { f.Date = "13/05/2025" }, "date", ErrInvalidDate},
		{"missing date", func(f *Fields) { f.Date = "" }, "date", ErrInvalidDate},
		{"bad start", func(f *Fields) { f.Start = "9am" }, "start", ErrInvalidTime},
		{"bad end", func(f *Fields) { f.End = "25:00" }, "end", ErrInvalidTime},
		{"start equals end", func(f *Fields) { f.End = f.Start }, "end", ErrInvalidTimeRange},
		{"start after end", func(f *Fields) { f.Start, f.End = "11:00", "10:00" }, "end", ErrInvalidTimeRange},
	}
	for _, tc := range testCases {
		t.Run("should reject "+tc.name, func(t *testing.T) {
			// given
			fields := validFields()
			tc.modify(&fields)

			// when
			_, err := fields.Task()

			// then
			var validationErr *ValidationError
			require.ErrorAs(t, err, &validationErr)
			assert.Equal(t, tc.field, validationErr.Field)
			assert.ErrorIs(t, err, tc.want)
		})
	}
}

func TestFieldsFromTask(t *testing.T) {
	tagId := uuid.New()
	source := task.Task{
		Id:          uuid.New(),
		Title:       "Read",
		Description: "notes",
		StartTime:   time.Date(2025, 5, 13, 14, 5, 0, 0, time.Local),
		EndTime:     time.Date(2025, 5, 13, 15, 45, 0, 0, time.Local),
		TagId:       task.TagRef(tagId),
	}

	fields := FieldsFromTask(source)

	assert.Equal(t, Fields{
		Title:       "Read",
		Description: "notes",
		Date:        "2025-05-13",
		Start:       "14:05",
		End:         "15:45",
		Tag:         tagId.String(),
	}, fields)

	source.TagId = uuid.NullUUID{}
	assert.Equal(t, NoTag, FieldsFromTask(source).Tag)
}
