package postgres

import (
	"context"
	"os"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/adanyl0v/go-todo-json/internal/models"
	"github.com/adanyl0v/go-todo-json/internal/storage"
)

func setupStore(t *testing.T) *Store {
	t.Helper()

	connURL := os.Getenv("TEST_POSTGRES_URL")
	if connURL == "" {
		t.Skip("TEST_POSTGRES_URL is not set")
	}

	pool, err := pgxpool.New(context.Background(), connURL)
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	s := New(zerolog.Nop(), pool)
	require.NoError(t, s.Migrate(context.Background()))
	return s
}

func TestStore_CRUD(t *testing.T) {
	s := setupStore(t)
	ctx := context.Background()

	todo := models.Todo{
		ID:          uuid.NewString(),
		Title:       "Buy groceries",
		Description: "I should buy groceries",
	}
	_, err := s.Append(ctx, todo)
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = s.Remove(context.Background(), todo.ID)
	})

	found, ok, err := s.Find(ctx, todo.ID)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, todo, found)

	completed := true
	merged, err := s.Merge(ctx, todo.ID, models.TodoPatch{Completed: &completed})
	require.NoError(t, err)
	assert.Equal(t, todo.Title, merged.Title)
	assert.Equal(t, todo.Description, merged.Description)
	assert.True(t, merged.Completed)

	todos, err := s.List(ctx)
	require.NoError(t, err)
	assert.Contains(t, todos, merged)

	require.NoError(t, s.Remove(ctx, todo.ID))
	_, ok, err = s.Find(ctx, todo.ID)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestStore_NotFound(t *testing.T) {
	s := setupStore(t)
	ctx := context.Background()
	id := uuid.NewString()

	_, err := s.Merge(ctx, id, models.TodoPatch{})
	assert.ErrorIs(t, err, storage.ErrTodoNotFound)

	err = s.Remove(ctx, id)
	assert.ErrorIs(t, err, storage.ErrTodoNotFound)
}
