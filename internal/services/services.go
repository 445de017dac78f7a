package services

import (
	"context"

	"github.com/adanyl0v/go-todo-json/internal/models"
	"github.com/adanyl0v/go-todo-json/internal/storage"
)

var ErrTodoNotFound = storage.ErrTodoNotFound

type TodoService interface {
	// ListTodos returns every todo in storage order.
	ListTodos(ctx context.Context) ([]models.Todo, error)

	// GetTodo returns ErrTodoNotFound if no todo has the given id.
	GetTodo(ctx context.Context, id string) (*models.Todo, error)

	// CreateTodo assigns a fresh UUID to the todo and persists it.
	CreateTodo(ctx context.Context, params CreateTodoParams) (*models.Todo, error)

	// UpdateTodo merges the given fields into the stored todo.
	// Fields left nil keep their stored values.
	//
	// It returns ErrTodoNotFound if no todo has the given id.
	UpdateTodo(ctx context.Context, params UpdateTodoParams) (*models.Todo, error)

	// DeleteTodo returns ErrTodoNotFound if no todo has the given id.
	DeleteTodo(ctx context.Context, id string) error
}

type CreateTodoParams struct {
	Title       string
	Description string
	Completed   bool
}

type UpdateTodoParams struct {
	ID    string
	Patch models.TodoPatch
}
