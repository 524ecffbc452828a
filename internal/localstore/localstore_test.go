package localstore

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/studyplan/studyplan/pkg/tag"
	"github.com/studyplan/studyplan/pkg/task"
	"gorm.io/gorm"
)

var ctx = context.Background()

func setupDB(t *testing.T) *gorm.DB {
	db, err := Open(InMemory)
	require.NoError(t, err)
	t.Cleanup(func() {
		require.NoError(t, Close(db))
	})
	return db
}

func at(day, hour, minute int) time.Time {
	return time.Date(2025, time.May, day, hour, minute, 0, 0, time.Local)
}

func TestTaskRepository_StoreAndGet(t *testing.T) {
	t.Run("should keep wall clock times and tag", func(t *testing.T) {
		// given
		repo := NewTaskRepo(setupDB(t))
		tagId := uuid.New()
		draft := task.Task{Title: "Read", Description: "notes", StartTime: at(13, 2, 0), EndTime: at(13, 3, 30), TagId: task.TagRef(tagId)}

		// when
		stored, err := repo.StoreTask(ctx, draft)

		// then
		require.NoError(t, err)
		assert.NotEqual(t, uuid.Nil, stored.Id)
		found, err := repo.GetTask(ctx, stored.Id)
		require.NoError(t, err)
		assert.Equal(t, "Read", found.Title)
		assert.Equal(t, "notes", found.Description)
		assert.True(t, found.StartTime.Equal(at(13, 2, 0)))
		assert.True(t, found.EndTime.Equal(at(13, 3, 30)))
		assert.Equal(t, time.Local, found.StartTime.Location())
		assert.Equal(t, task.TagRef(tagId), found.TagId)
	})

	t.Run("should report missing task", func(t *testing.T) {
		// given
		repo := NewTaskRepo(setupDB(t))

		// when
		_, err := repo.GetTask(ctx, uuid.New())

		// then
		assert.ErrorIs(t, err, task.ErrTaskNotFound)
	})
}

func TestTaskRepository_GetTasks(t *testing.T) {
	// given
	repo := NewTaskRepo(setupDB(t))
	_, err := repo.StoreTask(ctx, task.Task{Title: "Later", StartTime: at(14, 9, 0), EndTime: at(14, 10, 0)})
	require.NoError(t, err)
	_, err = repo.StoreTask(ctx, task.Task{Title: "Earlier", StartTime: at(13, 9, 0), EndTime: at(13, 10, 0)})
	require.NoError(t, err)

	// when
	tasks, err := repo.GetTasks(ctx)

	// then
	require.NoError(t, err)
	require.Len(t, tasks, 2)
	assert.Equal(t, "Earlier", tasks[0].Title)
	assert.Equal(t, "Later", tasks[1].Title)
}

func TestTaskRepository_UpdateTask(t *testing.T) {
	t.Run("should replace all fields and clear the tag", func(t *testing.T) {
		// given
		repo := NewTaskRepo(setupDB(t))
		stored, err := repo.StoreTask(ctx, task.Task{Title: "Read", StartTime: at(13, 9, 0), EndTime: at(13, 10, 0), TagId: task.TagRef(uuid.New())})
		require.NoError(t, err)

		// when
		stored.Title = "Write"
		stored.StartTime = at(15, 14, 0)
		stored.EndTime = at(15, 15, 0)
		stored.TagId = uuid.NullUUID{}
		_, err = repo.UpdateTask(ctx, stored)

		// then
		require.NoError(t, err)
		found, err := repo.GetTask(ctx, stored.Id)
		require.NoError(t, err)
		assert.Equal(t, "Write", found.Title)
		assert.True(t, found.StartTime.Equal(at(15, 14, 0)))
		assert.False(t, found.HasTag())
	})

	t.Run("should report missing task", func(t *testing.T) {
		// given
		repo := NewTaskRepo(setupDB(t))

		// when
		_, err := repo.UpdateTask(ctx, task.Task{Id: uuid.New(), Title: "Ghost", StartTime: at(13, 9, 0), EndTime: at(13, 10, 0)})

		// then
		assert.ErrorIs(t, err, task.ErrTaskNotFound)
	})
}

func TestTaskRepository_DeleteTask(t *testing.T) {
	// given
	repo := NewTaskRepo(setupDB(t))
	stored, err := repo.StoreTask(ctx, task.Task{Title: "Read", StartTime: at(13, 9, 0), EndTime: at(13, 10, 0)})
	require.NoError(t, err)

	// when
	deleted, err := repo.DeleteTask(ctx, stored.Id)
	deletedAgain, errAgain := repo.DeleteTask(ctx, stored.Id)

	// then
	require.NoError(t, err)
	require.NoError(t, errAgain)
	assert.True(t, deleted)
	assert.False(t, deletedAgain)
}

func TestTagRepository(t *testing.T) {
	t.Run("should store, rename and list tags by name", func(t *testing.T) {
		// given
		repo := NewTagRepo(setupDB(t))
		blue := tag.DeriveStyle(tag.MustParseColor("#3b82f6"))
		red := tag.DeriveStyle(tag.MustParseColor("#ef4444"))

		// when
		physics, err := repo.StoreTag(ctx, tag.Tag{Name: "Physics", Style: blue})
		require.NoError(t, err)
		_, err = repo.StoreTag(ctx, tag.Tag{Name: "Math", Style: blue})
		require.NoError(t, err)
		physics.Name = "Chemistry"
		physics.Style = red
		_, err = repo.UpdateTag(ctx, physics)
		require.NoError(t, err)

		// then
		tags, err := repo.GetTags(ctx)
		require.NoError(t, err)
		require.Len(t, tags, 2)
		assert.Equal(t, "Chemistry", tags[0].Name)
		assert.Equal(t, red, tags[0].Style)
		assert.Equal(t, "Math", tags[1].Name)
		assert.Equal(t, blue, tags[1].Style)
	})

	t.Run("should report missing tag", func(t *testing.T) {
		// given
		repo := NewTagRepo(setupDB(t))

		// when
		_, getErr := repo.GetTag(ctx, uuid.New())
		_, updateErr := repo.UpdateTag(ctx, tag.Tag{Id: uuid.New(), Name: "Ghost"})
		deleted, deleteErr := repo.DeleteTag(ctx, uuid.New())

		// then
		assert.ErrorIs(t, getErr, tag.ErrTagNotFound)
		assert.ErrorIs(t, updateErr, tag.ErrTagNotFound)
		require.NoError(t, deleteErr)
		assert.False(t, deleted)
	})
}

func TestTagDelete_KeepsTaskReference(t *testing.T) {
	// given
	db := setupDB(t)
	tags := NewTagRepo(db)
	tasks := NewTaskRepo(db)
	math, err := tags.StoreTag(ctx, tag.Tag{Name: "Math", Style: tag.DeriveStyle(tag.MustParseColor("#3b82f6"))})
	require.NoError(t, err)
	stored, err := tasks.StoreTask(ctx, task.Task{Title: "Algebra", StartTime: at(13, 9, 0), EndTime: at(13, 10, 0), TagId: task.TagRef(math.Id)})
	require.NoError(t, err)

	// when
	deleted, err := tags.DeleteTag(ctx, math.Id)

	// then
	require.NoError(t, err)
	assert.True(t, deleted)
	found, err := tasks.GetTask(ctx, stored.Id)
	require.NoError(t, err)
	assert.Equal(t, task.TagRef(math.Id), found.TagId)
}

func TestOpen_CreatesDirectory(t *testing.T) {
	// given
	path := filepath.Join(t.TempDir(), "nested", "studyplan.db")

	// when
	db, err := Open(path)

	// then
	require.NoError(t, err)
	require.NoError(t, Close(db))
	assert.FileExists(t, path)
}

func TestServices_OnLocalStore(t *testing.T) {
	// given
	db := setupDB(t)
	service := task.NewService(NewTaskRepo(db))

	// when
	_, err := service.Create(ctx, task.Task{Title: "Backwards", StartTime: at(13, 10, 0), EndTime: at(13, 9, 0)})

	// then
	assert.ErrorIs(t, err, task.ErrInvalidTask)
	tasks, err := service.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, tasks)
}
