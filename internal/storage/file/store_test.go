package file

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/adanyl0v/go-todo-json/internal/models"
	"github.com/adanyl0v/go-todo-json/internal/storage"
)

func setupStore(t *testing.T, content string) *Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "todos.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return New(zerolog.Nop(), path)
}

func readDocument(t *testing.T, s *Store) []models.Todo {
	t.Helper()
	data, err := os.ReadFile(s.Path())
	require.NoError(t, err)
	var todos []models.Todo
	require.NoError(t, json.Unmarshal(data, &todos))
	return todos
}

func TestStore_List(t *testing.T) {
	s := setupStore(t, `[
  {"id": "1", "title": "a", "description": "first", "completed": false},
  {"id": "2", "title": "b", "description": "second", "completed": true}
]`)

	todos, err := s.List(context.Background())
	require.NoError(t, err)
	require.Len(t, todos, 2)
	assert.Equal(t, "1", todos[0].ID)
	assert.Equal(t, "2", todos[1].ID)
	assert.True(t, todos[1].Completed)
}

func TestStore_ListEmpty(t *testing.T) {
	s := setupStore(t, "[]")

	todos, err := s.List(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, todos)
	assert.Empty(t, todos)
}

func TestStore_ListStorageErrors(t *testing.T) {
	tests := []struct {
		name    string
		content *string
	}{
		{name: "missing document"},
		{name: "invalid json", content: ptr("{not json")},
		{name: "object instead of array", content: ptr(`{"id": "1"}`)},
		{name: "null document", content: ptr("null")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "todos.json")
			if tt.content != nil {
				require.NoError(t, os.WriteFile(path, []byte(*tt.content), 0o644))
			}
			s := New(zerolog.Nop(), path)

			_, err := s.List(context.Background())
			require.Error(t, err)
			assert.True(t, storage.IsStorageError(err))
		})
	}
}

func TestStore_Find(t *testing.T) {
	s := setupStore(t, `[{"id": "1", "title": "a", "description": "b", "completed": false}]`)

	todo, ok, err := s.Find(context.Background(), "1")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "a", todo.Title)

	_, ok, err = s.Find(context.Background(), "missing")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestStore_Append(t *testing.T) {
	s := setupStore(t, `[{"id": "1", "title": "a", "description": "b", "completed": false}]`)
	todo := models.Todo{ID: "2", Title: "Buy groceries", Description: "I should buy groceries"}

	got, err := s.Append(context.Background(), todo)
	require.NoError(t, err)
	assert.Equal(t, todo, got)

	stored := readDocument(t, s)
	require.Len(t, stored, 2)
	assert.Equal(t, todo, stored[1])
}

func TestStore_AppendMissingDocument(t *testing.T) {
	s := New(zerolog.Nop(), filepath.Join(t.TempDir(), "todos.json"))

	_, err := s.Append(context.Background(), models.Todo{ID: "1", Title: "a", Description: "b"})
	require.Error(t, err)
	assert.True(t, storage.IsStorageError(err))

	_, statErr := os.Stat(s.Path())
	assert.True(t, os.IsNotExist(statErr))
}

func TestStore_Merge(t *testing.T) {
	s := setupStore(t, `[
  {"id": "1", "title": "a", "description": "first", "completed": false},
  {"id": "2", "title": "b", "description": "second", "completed": false}
]`)

	merged, err := s.Merge(context.Background(), "2", models.TodoPatch{Completed: ptr(true)})
	require.NoError(t, err)
	assert.Equal(t, models.Todo{ID: "2", Title: "b", Description: "second", Completed: true}, merged)

	stored := readDocument(t, s)
	require.Len(t, stored, 2)
	assert.Equal(t, "1", stored[0].ID)
	assert.Equal(t, merged, stored[1])
}

func TestStore_MergeNotFound(t *testing.T) {
	const content = `[{"id": "1", "title": "a", "description": "b", "completed": false}]`
	s := setupStore(t, content)

	_, err := s.Merge(context.Background(), "missing", models.TodoPatch{Title: ptr("x")})
	assert.ErrorIs(t, err, storage.ErrTodoNotFound)

	data, err := os.ReadFile(s.Path())
	require.NoError(t, err)
	assert.Equal(t, content, string(data))
}

func TestStore_Remove(t *testing.T) {
	s := setupStore(t, `[
  {"id": "1", "title": "a", "description": "first", "completed": false},
  {"id": "2", "title": "b", "description": "second", "completed": false},
  {"id": "3", "title": "c", "description": "third", "completed": false}
]`)

	require.NoError(t, s.Remove(context.Background(), "2"))

	stored := readDocument(t, s)
	require.Len(t, stored, 2)
	assert.Equal(t, "1", stored[0].ID)
	assert.Equal(t, "3", stored[1].ID)

	err := s.Remove(context.Background(), "2")
	assert.ErrorIs(t, err, storage.ErrTodoNotFound)
}

func TestStore_ConcurrentAppends(t *testing.T) {
	s := setupStore(t, "[]")

	const n = 20
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, err := s.Append(context.Background(), models.Todo{
				ID:          fmt.Sprintf("id-%d", i),
				Title:       "title",
				Description: "description",
			})
			assert.NoError(t, err)
		}(i)
	}
	wg.Wait()

	assert.Len(t, readDocument(t, s), n)
}

func TestStore_SaveLeavesNoTempFiles(t *testing.T) {
	s := setupStore(t, "[]")

	_, err := s.Append(context.Background(), models.Todo{ID: "1", Title: "a", Description: "b"})
	require.NoError(t, err)

	entries, err := os.ReadDir(filepath.Dir(s.Path()))
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "todos.json", entries[0].Name())
}

func TestEnsureDocument(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data", "todos.json")

	created, err := EnsureDocument(path)
	require.NoError(t, err)
	assert.True(t, created)

	s := New(zerolog.Nop(), path)
	todos, err := s.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, todos)

	_, err = s.Append(context.Background(), models.Todo{ID: "1", Title: "a", Description: "b"})
	require.NoError(t, err)

	created, err = EnsureDocument(path)
	require.NoError(t, err)
	assert.False(t, created)
	assert.Len(t, readDocument(t, s), 1)
}

func ptr[T any](v T) *T {
	return &v
}
