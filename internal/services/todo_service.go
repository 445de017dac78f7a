package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/adanyl0v/go-todo-json/internal/models"
	"github.com/adanyl0v/go-todo-json/internal/storage"
)

type todoServiceImpl struct {
	logger zerolog.Logger
	store  storage.TodoStore
	newID  func() (uuid.UUID, error)
}

func NewTodoService(
	logger zerolog.Logger,
	store storage.TodoStore,
) TodoService {
	return &todoServiceImpl{
		logger: logger,
		store:  store,
		newID:  uuid.NewRandom,
	}
}

func (s *todoServiceImpl) ListTodos(ctx context.Context) ([]models.Todo, error) {
	todos, err := s.store.List(ctx)
	if err != nil {
		s.logger.Error().
			Err(err).
			Msg("failed to list todos")
		return nil, fmt.Errorf("failed to list todos: %w", err)
	}

	s.logger.Info().
		Int("count", len(todos)).
		Msg("listed todos")
	return todos, nil
}

func (s *todoServiceImpl) GetTodo(ctx context.Context, id string) (*models.Todo, error) {
	todo, ok, err := s.store.Find(ctx, id)
	if err != nil {
		s.logger.Error().
			Err(err).
			Str("todo_id", id).
			Msg("failed to find todo")
		return nil, fmt.Errorf("failed to find todo: %w", err)
	}
	if !ok {
		s.logger.Info().
			Str("todo_id", id).
			Msg("todo not found")
		return nil, ErrTodoNotFound
	}

	s.logger.Info().
		Str("todo_id", id).
		Msg("found todo")
	return &todo, nil
}

func (s *todoServiceImpl) CreateTodo(ctx context.Context, params CreateTodoParams) (*models.Todo, error) {
	todoUUID, err := s.newID()
	if err != nil {
		s.logger.Error().
			Err(err).
			Msg("failed to generate todo uuid")
		return nil, fmt.Errorf("failed to generate todo uuid: %w", err)
	}

	todo, err := s.store.Append(ctx, models.Todo{
		ID:          todoUUID.String(),
		Title:       params.Title,
		Description: params.Description,
		Completed:   params.Completed,
	})
	if err != nil {
		s.logger.Error().
			Err(err).
			Str("todo_id", todoUUID.String()).
			Msg("failed to append todo")
		return nil, fmt.Errorf("failed to create todo: %w", err)
	}

	s.logger.Info().
		Str("todo_id", todo.ID).
		Msg("created todo")
	return &todo, nil
}

func (s *todoServiceImpl) UpdateTodo(ctx context.Context, params UpdateTodoParams) (*models.Todo, error) {
	todo, err := s.store.Merge(ctx, params.ID, params.Patch)
	if err != nil {
		if errors.Is(err, storage.ErrTodoNotFound) {
			s.logger.Info().
				Str("todo_id", params.ID).
				Msg("todo not found")
			return nil, ErrTodoNotFound
		}

		s.logger.Error().
			Err(err).
			Str("todo_id", params.ID).
			Msg("failed to merge todo")
		return nil, fmt.Errorf("failed to update todo: %w", err)
	}

	s.logger.Info().
		Str("todo_id", todo.ID).
		Msg("updated todo")
	return &todo, nil
}

func (s *todoServiceImpl) DeleteTodo(ctx context.Context, id string) error {
	err := s.store.Remove(ctx, id)
	if err != nil {
		if errors.Is(err, storage.ErrTodoNotFound) {
			s.logger.Info().
				Str("todo_id", id).
				Msg("todo not found")
			return ErrTodoNotFound
		}

		s.logger.Error().
			Err(err).
			Str("todo_id", id).
			Msg("failed to remove todo")
		return fmt.Errorf("failed to delete todo: %w", err)
	}

	s.logger.Info().
		Str("todo_id", id).
		Msg("deleted todo")
	return nil
}
