package task

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var repoStub = NewRepositoryStub()

func setupServiceTest(t *testing.T) (Service, context.Context) {
	t.Cleanup(repoStub.Reset)
	return NewService(repoStub), context.Background()
}

func sampleTask(title string, start time.Time) Task {
	return Task{
		Title:       title,
		Description: "chapter 3",
		StartTime:   start,
		EndTime:     start.Add(time.Hour),
	}
}

func TestServiceImpl_Create(t *testing.T) {
	start := time.Date(2025, 5, 13, 9, 0, 0, 0, time.Local)

	t.Run("should assign id and keep fields", func(t *testing.T) {
		// given
		service, ctx := setupServiceTest(t)
		draft := sampleTask("Read", start)
		draft.TagId = TagRef(uuid.New())

		// when
		created, err := service.Create(ctx, draft)

		// then
		require.NoError(t, err)
		assert.NotEqual(t, uuid.Nil, created.Id)
		assert.Equal(t, draft.Title, created.Title)
		assert.Equal(t, draft.TagId, created.TagId)
		assert.True(t, draft.StartTime.Equal(created.StartTime))
	})

	t.Run("should reject zero-length task", func(t *testing.T) {
		// given
		service, ctx := setupServiceTest(t)
		draft := sampleTask("Read", start)
		draft.EndTime = draft.StartTime

		// when
		_, err := service.Create(ctx, draft)

		// then
		assert.ErrorIs(t, err, ErrInvalidTask)
		tasks, _ := service.List(ctx)
		assert.Empty(t, tasks)
	})
}

func TestServiceImpl_List(t *testing.T) {
	t.Run("should return tasks ordered by start time", func(t *testing.T) {
		// given
		service, ctx := setupServiceTest(t)
		day := time.Date(2025, 5, 13, 0, 0, 0, 0, time.Local)
		_, _ = service.Create(ctx, sampleTask("Late", day.Add(15*time.Hour)))
		_, _ = service.Create(ctx, sampleTask("Early", day.Add(8*time.Hour)))

		// when
		tasks, err := service.List(ctx)

		// then
		require.NoError(t, err)
		require.Len(t, tasks, 2)
		assert.Equal(t, "Early", tasks[0].Title)
		assert.Equal(t, "Late", tasks[1].Title)
	})
}

func TestServiceImpl_Update(t *testing.T) {
	start := time.Date(2025, 5, 13, 9, 0, 0, 0, time.Local)

	t.Run("should update task under given id", func(t *testing.T) {
		// given
		service, ctx := setupServiceTest(t)
		created, _ := service.Create(ctx, sampleTask("Read", start))
		changed := sampleTask("Read again", start.Add(2*time.Hour))

		// when
		updated, err := service.Update(ctx, created.Id, changed)

		// then
		require.NoError(t, err)
		assert.Equal(t, created.Id, updated.Id)
		assert.Equal(t, "Read again", updated.Title)
		assert.True(t, start.Add(2*time.Hour).Equal(updated.StartTime))
	})

	t.Run("should return not found for unknown id", func(t *testing.T) {
		// given
		service, ctx := setupServiceTest(t)

		// when
		_, err := service.Update(ctx, uuid.New(), sampleTask("Read", start))

		// then
		assert.ErrorIs(t, err, ErrTaskNotFound)
	})
}

func TestServiceImpl_Delete(t *testing.T) {
	t.Run("should delete existing task", func(t *testing.T) {
		// given
		service, ctx := setupServiceTest(t)
		created, _ := service.Create(ctx, sampleTask("Read", time.Date(2025, 5, 13, 9, 0, 0, 0, time.Local)))

		// when
		err := service.Delete(ctx, created.Id)

		// then
		require.NoError(t, err)
		tasks, _ := service.List(ctx)
		assert.Empty(t, tasks)
	})

	t.Run("should return not found for missing task", func(t *testing.T) {
		// given
		service, ctx := setupServiceTest(t)

		// when
		err := service.Delete(ctx, uuid.New())

		// then
		assert.ErrorIs(t, err, ErrTaskNotFound)
	})
}
