package task

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	log "github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/studyplan/studyplan/internal/test_utils"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
)

var pgContainer *postgres.PostgresContainer
var openDb func() *pgxpool.Pool

func TestMain(m *testing.M) {
	pgContainer, openDb = test_utils.TestWithDB()
	code := m.Run()
	if err := testcontainers.TerminateContainer(pgContainer); err != nil {
		log.Errorf("failed to terminate container: %s", err)
	}
	os.Exit(code)
}

func setupTestRepository(t *testing.T) (context.Context, Repository) {
	ctx := context.Background()
	db := openDb()
	t.Cleanup(func() {
		db.Close()
		err := pgContainer.Restore(ctx)
		require.NoError(t, err)
	})
	return ctx, NewRepo(db)
}

func TestRepositoryImpl_StoreTask(t *testing.T) {
	t.Run("should keep wall clock times", func(t *testing.T) {
		// given
		ctx, repo := setupTestRepository(t)
		start := time.Date(2025, 5, 13, 2, 0, 0, 0, time.Local)
		draft := Task{Title: "Read", Description: "notes", StartTime: start, EndTime: start.Add(time.Hour), TagId: TagRef(uuid.New())}

		// when
		stored, err := repo.StoreTask(ctx, draft)

		// then
		require.NoError(t, err)
		found, err := repo.GetTask(ctx, stored.Id)
		require.NoError(t, err)
		assert.Equal(t, stored.Id, found.Id)
		assert.Equal(t, "Read", found.Title)
		assert.Equal(t, "notes", found.Description)
		assert.Equal(t, start, found.StartTime)
		assert.Equal(t, start.Add(time.Hour), found.EndTime)
		assert.Equal(t, draft.TagId, found.TagId)
	})

	t.Run("should store uncategorized task", func(t *testing.T) {
		// given
		ctx, repo := setupTestRepository(t)
		start := time.Date(2025, 5, 13, 9, 0, 0, 0, time.Local)

		// when
		stored, err := repo.StoreTask(ctx, Task{Title: "Read", StartTime: start, EndTime: start.Add(time.Hour)})

		// then
		require.NoError(t, err)
		found, err := repo.GetTask(ctx, stored.Id)
		require.NoError(t, err)
		assert.False(t, found.TagId.Valid)
	})
}

func TestRepositoryImpl_GetTasks(t *testing.T) {
	t.Run("should return tasks ordered by start time", func(t *testing.T) {
		// given
		ctx, repo := setupTestRepository(t)
		day := time.Date(2025, 5, 13, 0, 0, 0, 0, time.Local)
		_, err := repo.StoreTask(ctx, Task{Title: "Late", StartTime: day.Add(15 * time.Hour), EndTime: day.Add(16 * time.Hour)})
		require.NoError(t, err)
		_, err = repo.StoreTask(ctx, Task{Title: "Early", StartTime: day.Add(8 * time.Hour), EndTime: day.Add(9 * time.Hour)})
		require.NoError(t, err)

		// when
		tasks, err := repo.GetTasks(ctx)

		// then
		require.NoError(t, err)
		require.Len(t, tasks, 2)
		assert.Equal(t, "Early", tasks[0].Title)
		assert.Equal(t, "Late", tasks[1].Title)
	})
}

func TestRepositoryImpl_UpdateTask(t *testing.T) {
	t.Run("should update all fields", func(t *testing.T) {
		// given
		ctx, repo := setupTestRepository(t)
		start := time.Date(2025, 5, 13, 9, 0, 0, 0, time.Local)
		stored, _ := repo.StoreTask(ctx, Task{Title: "Read", StartTime: start, EndTime: start.Add(time.Hour)})
		stored.Title = "Write"
		stored.StartTime = start.Add(24 * time.Hour)
		stored.EndTime = start.Add(25 * time.Hour)
		stored.TagId = TagRef(uuid.New())

		// when
		_, err := repo.UpdateTask(ctx, stored)

		// then
		require.NoError(t, err)
		found, err := repo.GetTask(ctx, stored.Id)
		require.NoError(t, err)
		assert.Equal(t, stored, found)
	})

	t.Run("should return not found for missing task", func(t *testing.T) {
		// given
		ctx, repo := setupTestRepository(t)
		start := time.Date(2025, 5, 13, 9, 0, 0, 0, time.Local)

		// when
		_, err := repo.UpdateTask(ctx, Task{Id: uuid.New(), Title: "Ghost", StartTime: start, EndTime: start.Add(time.Hour)})

		// then
		assert.ErrorIs(t, err, ErrTaskNotFound)
	})
}

func TestRepositoryImpl_DeleteTask(t *testing.T) {
	t.Run("should delete task", func(t *testing.T) {
		// given
		ctx, repo := setupTestRepository(t)
		start := time.Date(2025, 5, 13, 9, 0, 0, 0, time.Local)
		stored, _ := repo.StoreTask(ctx, Task{Title: "Read", StartTime: start, EndTime: start.Add(time.Hour)})

		// when
		deleted, err := repo.DeleteTask(ctx, stored.Id)

		// then
		require.NoError(t, err)
		assert.True(t, deleted)
		_, err = repo.GetTask(ctx, stored.Id)
		assert.ErrorIs(t, err, ErrTaskNotFound)
	})
}
