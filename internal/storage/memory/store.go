// Package memory implements storage.TodoStore over an in-process slice.
package memory

import (
	"context"
	"slices"
	"sync"

	"github.com/adanyl0v/go-todo-json/internal/models"
	"github.com/adanyl0v/go-todo-json/internal/storage"
)

type Store struct {
	mu    sync.RWMutex
	todos []models.Todo
}

var _ storage.TodoStore = (*Store)(nil)

// New returns a store seeded with a copy of todos.
func New(todos ...models.Todo) *Store {
	return &Store{todos: slices.Clone(todos)}
}

func (s *Store) List(_ context.Context) ([]models.Todo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	todos := make([]models.Todo, len(s.todos))
	copy(todos, s.todos)
	return todos, nil
}

func (s *Store) Find(_ context.Context, id string) (models.Todo, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	i := s.indexOf(id)
	if i < 0 {
		return models.Todo{}, false, nil
	}
	return s.todos[i], true, nil
}

func (s *Store) Append(_ context.Context, todo models.Todo) (models.Todo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.todos = append(s.todos, todo)
	return todo, nil
}

func (s *Store) Merge(_ context.Context, id string, patch models.TodoPatch) (models.Todo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return models.Todo{}, storage.ErrTodoNotFound
	}
	s.todos[i] = s.todos[i].Apply(patch)
	return s.todos[i], nil
}

func (s *Store) Remove(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return storage.ErrTodoNotFound
	}
	s.todos = slices.Delete(s.todos, i, i+1)
	return nil
}

func (s *Store) indexOf(id string) int {
	return slices.IndexFunc(s.todos, func(todo models.Todo) bool {
		return todo.ID == id
	})
}
