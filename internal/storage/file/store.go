// Package file implements storage.TodoStore on top of a single JSON
// document holding an array of todos.
package file

import (
	"context"
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/rs/zerolog"

	"github.com/adanyl0v/go-todo-json/internal/models"
	"github.com/adanyl0v/go-todo-json/internal/storage"
)

var errNotArray = errors.New("document is not a json array")

// Store re-reads the whole document on every call and rewrites it on
// every mutation. Mutations are serialized within the process; writers
// in other processes are not coordinated with.
type Store struct {
	logger zerolog.Logger
	path   string
	mu     sync.Mutex
}

var _ storage.TodoStore = (*Store)(nil)

func New(logger zerolog.Logger, path string) *Store {
	return &Store{
		logger: logger,
		path:   path,
	}
}

func (s *Store) Path() string {
	return s.path
}

func (s *Store) List(_ context.Context) ([]models.Todo, error) {
	todos, err := s.load()
	if err != nil {
		return nil, err
	}
	s.logger.Debug().
		Int("count", len(todos)).
		Str("path", s.path).
		Msg("loaded todos")
	return todos, nil
}

func (s *Store) Find(ctx context.Context, id string) (models.Todo, bool, error) {
	todos, err := s.List(ctx)
	if err != nil {
		return models.Todo{}, false, err
	}
	for _, todo := range todos {
		if todo.ID == id {
			return todo, true, nil
		}
	}
	return models.Todo{}, false, nil
}

func (s *Store) Append(_ context.Context, todo models.Todo) (models.Todo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	todos, err := s.load()
	if err != nil {
		return models.Todo{}, err
	}

	todos = append(todos, todo)
	err = s.save(todos)
	if err != nil {
		return models.Todo{}, err
	}
	s.logger.Debug().
		Str("id", todo.ID).
		Msg("appended todo")
	return todo, nil
}

func (s *Store) Merge(_ context.Context, id string, patch models.TodoPatch) (models.Todo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	todos, err := s.load()
	if err != nil {
		return models.Todo{}, err
	}

	i := indexOf(todos, id)
	if i < 0 {
		return models.Todo{}, storage.ErrTodoNotFound
	}

	merged := todos[i].Apply(patch)
	todos[i] = merged
	err = s.save(todos)
	if err != nil {
		return models.Todo{}, err
	}
	s.logger.Debug().
		Str("id", id).
		Msg("merged todo")
	return merged, nil
}

func (s *Store) Remove(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	todos, err := s.load()
	if err != nil {
		return err
	}

	i := indexOf(todos, id)
	if i < 0 {
		return storage.ErrTodoNotFound
	}

	todos = append(todos[:i], todos[i+1:]...)
	err = s.save(todos)
	if err != nil {
		return err
	}
	s.logger.Debug().
		Str("id", id).
		Msg("removed todo")
	return nil
}

func (s *Store) load() ([]models.Todo, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, &storage.Error{Op: "read", Path: s.path, Err: err}
	}

	var todos []models.Todo
	err = json.Unmarshal(data, &todos)
	if err != nil {
		return nil, &storage.Error{Op: "decode", Path: s.path, Err: err}
	}
	// "null" decodes without error but is not a collection.
	if todos == nil {
		return nil, &storage.Error{Op: "decode", Path: s.path, Err: errNotArray}
	}
	return todos, nil
}

// save replaces the document through a temporary file in the same
// directory, so a failed write leaves the previous content in place.
func (s *Store) save(todos []models.Todo) error {
	data, err := json.MarshalIndent(todos, "", "  ")
	if err != nil {
		return &storage.Error{Op: "encode", Path: s.path, Err: err}
	}
	data = append(data, '\n')

	err = writeFileAtomic(s.path, data)
	if err != nil {
		return &storage.Error{Op: "write", Path: s.path, Err: err}
	}
	return nil
}

func writeFileAtomic(path string, data []byte) error {
	dir, base := filepath.Split(path)
	if dir == "" {
		dir = "."
	}

	tmp, err := os.CreateTemp(dir, base+".*.tmp")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	defer func() {
		// No-op once the rename succeeded.
		_ = os.Remove(tmpName)
	}()

	_, err = tmp.Write(data)
	if err != nil {
		_ = tmp.Close()
		return err
	}
	err = tmp.Sync()
	if err != nil {
		_ = tmp.Close()
		return err
	}
	err = tmp.Close()
	if err != nil {
		return err
	}

	err = os.Chmod(tmpName, 0o644)
	if err != nil {
		return err
	}
	return os.Rename(tmpName, path)
}

func indexOf(todos []models.Todo, id string) int {
	for i, todo := range todos {
		if todo.ID == id {
			return i
		}
	}
	return -1
}

// EnsureDocument writes an empty collection to path unless a file
// already exists there. It reports whether a document was created.
func EnsureDocument(path string) (bool, error) {
	_, err := os.Stat(path)
	if err == nil {
		return false, nil
	}
	if !errors.Is(err, fs.ErrNotExist) {
		return false, &storage.Error{Op: "stat", Path: path, Err: err}
	}

	err = os.MkdirAll(filepath.Dir(path), 0o755)
	if err != nil {
		return false, &storage.Error{Op: "mkdir", Path: path, Err: err}
	}
	err = writeFileAtomic(path, []byte("[]\n"))
	if err != nil {
		return false, &storage.Error{Op: "write", Path: path, Err: err}
	}
	return true, nil
}
