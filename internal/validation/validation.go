// Package validation checks todo payloads against the create and update
// schemas before they reach the service layer.
package validation

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/adanyl0v/go-todo-json/internal/models"
)

var (
	createSchema = jsonschema.MustCompileString("create_todo.json", createTodoSchema)
	updateSchema = jsonschema.MustCompileString("update_todo.json", updateTodoSchema)
)

// fieldOrder decides which violation is reported first.
var fieldOrder = map[string]int{
	"":            0,
	"title":       1,
	"description": 2,
	"completed":   3,
}

// FieldError is a single violated constraint. Field is empty when the
// constraint applies to the payload as a whole.
type FieldError struct {
	Field   string `json:"field,omitempty"`
	Message string `json:"message"`
}

func (e FieldError) String() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

type Error struct {
	Fields []FieldError
}

// Error reports the first violated constraint.
func (e *Error) Error() string {
	if len(e.Fields) == 0 {
		return "invalid request body"
	}
	return e.Fields[0].String()
}

// CreateInput is a validated create payload with defaults applied.
type CreateInput struct {
	Title       string
	Description string
	Completed   bool
}

type createTodoRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Completed   *bool  `json:"completed"`
}

func ValidateCreate(body []byte) (CreateInput, error) {
	err := validate(createSchema, body)
	if err != nil {
		return CreateInput{}, err
	}

	var req createTodoRequest
	err = json.Unmarshal(body, &req)
	if err != nil {
		return CreateInput{}, newBodyError(err)
	}

	input := CreateInput{
		Title:       req.Title,
		Description: req.Description,
	}
	if req.Completed != nil {
		input.Completed = *req.Completed
	}
	return input, nil
}

// ValidateUpdate returns a patch holding only the fields present in body.
func ValidateUpdate(body []byte) (models.TodoPatch, error) {
	err := validate(updateSchema, body)
	if err != nil {
		return models.TodoPatch{}, err
	}

	var patch models.TodoPatch
	err = json.Unmarshal(body, &patch)
	if err != nil {
		return models.TodoPatch{}, newBodyError(err)
	}
	return patch, nil
}

func validate(schema *jsonschema.Schema, body []byte) error {
	var doc any
	err := json.Unmarshal(body, &doc)
	if err != nil {
		return newBodyError(err)
	}

	err = schema.Validate(doc)
	if err == nil {
		return nil
	}

	var schemaErr *jsonschema.ValidationError
	if !errors.As(err, &schemaErr) {
		return &Error{Fields: []FieldError{{Message: err.Error()}}}
	}

	var fields []FieldError
	collectFieldErrors(schemaErr, &fields)
	sort.SliceStable(fields, func(i, j int) bool {
		return rank(fields[i].Field) < rank(fields[j].Field)
	})
	return &Error{Fields: fields}
}

// collectFieldErrors flattens the error tree into its leaves.
func collectFieldErrors(err *jsonschema.ValidationError, fields *[]FieldError) {
	if len(err.Causes) == 0 {
		*fields = append(*fields, FieldError{
			Field:   pointerToField(err.InstanceLocation),
			Message: err.Message,
		})
		return
	}
	for _, cause := range err.Causes {
		collectFieldErrors(cause, fields)
	}
}

func pointerToField(pointer string) string {
	pointer = strings.TrimPrefix(pointer, "/")
	return strings.ReplaceAll(pointer, "/", ".")
}

func rank(field string) int {
	r, ok := fieldOrder[field]
	if !ok {
		return len(fieldOrder)
	}
	return r
}

func newBodyError(err error) *Error {
	return &Error{Fields: []FieldError{{
		Message: fmt.Sprintf("request body must be a valid json object: %v", err),
	}}}
}
