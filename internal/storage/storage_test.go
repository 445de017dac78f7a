package storage

import (
	"errors"
	"fmt"
	"io/fs"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestError(t *testing.T) {
	err := &Error{Op: "read", Path: "todos.json", Err: fs.ErrNotExist}

	assert.Equal(t, "storage read todos.json: file does not exist", err.Error())
	assert.ErrorIs(t, err, fs.ErrNotExist)

	wrapped := fmt.Errorf("failed to list todos: %w", err)
	assert.True(t, IsStorageError(wrapped))
	assert.False(t, IsStorageError(ErrTodoNotFound))
	assert.False(t, IsStorageError(errors.New("boom")))
}

func TestError_WithoutPath(t *testing.T) {
	err := &Error{Op: "query", Err: errors.New("connection refused")}
	assert.Equal(t, "storage query: connection refused", err.Error())
}
