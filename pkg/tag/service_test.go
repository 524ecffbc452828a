package tag

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var repoStub = NewRepositoryStub()

func setupServiceTest(t *testing.T) (Service, context.Context) {
	t.Cleanup(repoStub.Reset)
	return NewService(repoStub), context.Background()
}

func TestServiceImpl_Create(t *testing.T) {
	t.Run("should create tag with trimmed name", func(t *testing.T) {
		// given
		service, ctx := setupServiceTest(t)
		style := DeriveStyle(MustParseColor("#3b82f6"))

		// when
		created, err := service.Create(ctx, "  Math  ", style)

		// then
		require.NoError(t, err)
		assert.NotEqual(t, uuid.Nil, created.Id)
		assert.Equal(t, "Math", created.Name)
		assert.Equal(t, style, created.Style)
	})

	t.Run("should reject blank name", func(t *testing.T) {
		// given
		service, ctx := setupServiceTest(t)

		// when
		_, err := service.Create(ctx, "   ", FallbackStyle)

		// then
		assert.ErrorIs(t, err, ErrInvalidTag)
		tags, _ := service.List(ctx)
		assert.Empty(t, tags)
	})
}

func TestServiceImpl_List(t *testing.T) {
	t.Run("should list tags sorted by name", func(t *testing.T) {
		// given
		service, ctx := setupServiceTest(t)
		_, _ = service.Create(ctx, "Physics", FallbackStyle)
		_, _ = service.Create(ctx, "Biology", FallbackStyle)
		_, _ = service.Create(ctx, "Math", FallbackStyle)

		// when
		tags, err := service.List(ctx)

		// then
		require.NoError(t, err)
		require.Len(t, tags, 3)
		assert.Equal(t, "Biology", tags[0].Name)
		assert.Equal(t, "Math", tags[1].Name)
		assert.Equal(t, "Physics", tags[2].Name)
	})
}

func TestServiceImpl_Update(t *testing.T) {
	t.Run("should replace name and style", func(t *testing.T) {
		// given
		service, ctx := setupServiceTest(t)
		created, _ := service.Create(ctx, "Math", FallbackStyle)
		newStyle := DeriveStyle(MustParseColor("#10b981"))

		// when
		updated, err := service.Update(ctx, created.Id, "Algebra", newStyle)

		// then
		require.NoError(t, err)
		assert.Equal(t, created.Id, updated.Id)
		assert.Equal(t, "Algebra", updated.Name)
		assert.Equal(t, newStyle, updated.Style)
	})

	t.Run("should return not found for unknown tag", func(t *testing.T) {
		// given
		service, ctx := setupServiceTest(t)

		// when
		_, err := service.Update(ctx, uuid.New(), "Algebra", FallbackStyle)

		// then
		assert.ErrorIs(t, err, ErrTagNotFound)
	})
}

func TestServiceImpl_Delete(t *testing.T) {
	t.Run("should delete existing tag", func(t *testing.T) {
		// given
		service, ctx := setupServiceTest(t)
		created, _ := service.Create(ctx, "Math", FallbackStyle)

		// when
		err := service.Delete(ctx, created.Id)

		// then
		require.NoError(t, err)
		tags, _ := service.List(ctx)
		assert.Empty(t, tags)
	})

	t.Run("should return not found when deleting twice", func(t *testing.T) {
		// given
		service, ctx := setupServiceTest(t)
		created, _ := service.Create(ctx, "Math", FallbackStyle)
		require.NoError(t, service.Delete(ctx, created.Id))

		// when
		err := service.Delete(ctx, created.Id)

		// then
		assert.ErrorIs(t, err, ErrTagNotFound)
	})
}
