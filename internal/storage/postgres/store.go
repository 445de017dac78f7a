// Package postgres implements storage.TodoStore on a PostgreSQL table.
package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"github.com/adanyl0v/go-todo-json/internal/models"
	"github.com/adanyl0v/go-todo-json/internal/storage"
)

type Store struct {
	logger zerolog.Logger
	pgPool *pgxpool.Pool
}

var _ storage.TodoStore = (*Store)(nil)

func New(logger zerolog.Logger, pgPool *pgxpool.Pool) *Store {
	return &Store{
		logger: logger,
		pgPool: pgPool,
	}
}

// Migrate creates the todos table if it does not exist yet.
// The position column keeps insertion order for List.
func (s *Store) Migrate(ctx context.Context) error {
	const createTableQuery = `
CREATE TABLE IF NOT EXISTS todos (
    position    BIGSERIAL,
    id          TEXT PRIMARY KEY,
    title       TEXT    NOT NULL,
    description TEXT    NOT NULL,
    completed   BOOLEAN NOT NULL DEFAULT FALSE
)
`
	_, err := s.pgPool.Exec(ctx, createTableQuery)
	if err != nil {
		s.logger.Error().
			Err(err).
			Msg("failed to create todos table")
		return &storage.Error{Op: "migrate", Err: err}
	}
	s.logger.Debug().Msg("migrated todos table")
	return nil
}

func (s *Store) List(ctx context.Context) ([]models.Todo, error) {
	const selectTodosQuery = `
SELECT id,
       title,
       description,
       completed
FROM todos
ORDER BY position
`
	rows, err := s.pgPool.Query(ctx, selectTodosQuery)
	if err != nil {
		s.logger.Error().
			Err(err).
			Msg("failed to select todos")
		return nil, &storage.Error{Op: "query", Err: err}
	}
	defer rows.Close()

	todos := make([]models.Todo, 0)
	for rows.Next() {
		var todo models.Todo
		err = rows.Scan(
			&todo.ID,
			&todo.Title,
			&todo.Description,
			&todo.Completed,
		)
		if err != nil {
			s.logger.Error().
				Err(err).
				Msg("failed to scan todo")
			return nil, &storage.Error{Op: "scan", Err: err}
		}
		todos = append(todos, todo)
	}

	err = rows.Err()
	if err != nil {
		s.logger.Error().
			Err(err).
			Msg("failed to iterate over rows")
		return nil, &storage.Error{Op: "query", Err: err}
	}
	s.logger.Debug().
		Int("count", len(todos)).
		Msg("selected todos")
	return todos, nil
}

func (s *Store) Find(ctx context.Context, id string) (models.Todo, bool, error) {
	const selectTodoQuery = `
SELECT title,
       description,
       completed
FROM todos
WHERE id = $1
`
	todo := models.Todo{ID: id}
	err := s.pgPool.QueryRow(
		ctx,
		selectTodoQuery,
		id,
	).Scan(
		&todo.Title,
		&todo.Description,
		&todo.Completed,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.Todo{}, false, nil
		}

		s.logger.Error().
			Err(err).
			Str("todo_id", id).
			Msg("failed to select todo")
		return models.Todo{}, false, &storage.Error{Op: "query", Err: err}
	}
	return todo, true, nil
}

func (s *Store) Append(ctx context.Context, todo models.Todo) (models.Todo, error) {
	const insertTodoQuery = `
INSERT INTO todos (id,
                   title,
                   description,
                   completed)
VALUES ($1, $2, $3, $4)
`
	_, err := s.pgPool.Exec(
		ctx,
		insertTodoQuery,
		todo.ID,
		todo.Title,
		todo.Description,
		todo.Completed,
	)
	if err != nil {
		s.logger.Error().
			Err(err).
			Str("todo_id", todo.ID).
			Msg("failed to insert todo")
		return models.Todo{}, &storage.Error{Op: "insert", Err: err}
	}
	s.logger.Debug().
		Str("todo_id", todo.ID).
		Msg("inserted todo")
	return todo, nil
}

func (s *Store) Merge(ctx context.Context, id string, patch models.TodoPatch) (models.Todo, error) {
	const updateTodoQuery = `
UPDATE todos
SET title = COALESCE($1, title),
    description = COALESCE($2, description),
    completed = COALESCE($3, completed)
WHERE id = $4
RETURNING title, description, completed
`
	todo := models.Todo{ID: id}
	err := s.pgPool.QueryRow(
		ctx,
		updateTodoQuery,
		patch.Title,
		patch.Description,
		patch.Completed,
		id,
	).Scan(
		&todo.Title,
		&todo.Description,
		&todo.Completed,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.Todo{}, storage.ErrTodoNotFound
		}

		s.logger.Error().
			Err(err).
			Str("todo_id", id).
			Msg("failed to update todo")
		return models.Todo{}, &storage.Error{Op: "update", Err: err}
	}
	s.logger.Debug().
		Str("todo_id", id).
		Msg("updated todo")
	return todo, nil
}

func (s *Store) Remove(ctx context.Context, id string) error {
	const deleteTodoQuery = `
DELETE FROM todos
WHERE id = $1
`
	tag, err := s.pgPool.Exec(
		ctx,
		deleteTodoQuery,
		id,
	)
	if err != nil {
		s.logger.Error().
			Err(err).
			Str("todo_id", id).
			Msg("failed to delete todo")
		return &storage.Error{Op: "delete", Err: err}
	}
	if tag.RowsAffected() == 0 {
		return storage.ErrTodoNotFound
	}
	s.logger.Debug().
		Str("todo_id", id).
		Msg("deleted todo")
	return nil
}
