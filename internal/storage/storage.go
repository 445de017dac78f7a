// Package storage defines the record store contract shared by every backend.
package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/adanyl0v/go-todo-json/internal/models"
)

var ErrTodoNotFound = errors.New("todo not found")

// TodoStore owns the persisted todo collection. No other component
// reads or writes the underlying document directly.
type TodoStore interface {
	// List returns every stored todo in document order.
	List(ctx context.Context) ([]models.Todo, error)

	// Find returns the first todo with the given id. The boolean is
	// false when no such todo exists; that is not an error.
	Find(ctx context.Context, id string) (models.Todo, bool, error)

	// Append adds the todo to the end of the collection and returns it.
	Append(ctx context.Context, todo models.Todo) (models.Todo, error)

	// Merge applies patch to the todo with the given id and returns the
	// merged record. It returns ErrTodoNotFound if the id is absent.
	Merge(ctx context.Context, id string, patch models.TodoPatch) (models.Todo, error)

	// Remove deletes the todo with the given id. It returns
	// ErrTodoNotFound if the id is absent.
	Remove(ctx context.Context, id string) error
}

// Error reports a failure of the backing document or database,
// as opposed to a domain condition such as a missing todo.
type Error struct {
	Op   string
	Path string
	Err  error
}

func (e *Error) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("storage %s %s: %v", e.Op, e.Path, e.Err)
	}
	return fmt.Sprintf("storage %s: %v", e.Op, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

func IsStorageError(err error) bool {
	var storageErr *Error
	return errors.As(err, &storageErr)
}
