package v1

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/adanyl0v/go-todo-json/internal/models"
	"github.com/adanyl0v/go-todo-json/internal/services"
	"github.com/adanyl0v/go-todo-json/internal/validation"
)

type getTodoResponse struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Completed   bool   `json:"completed"`
}

func newGetTodoResponse(todo *models.Todo) getTodoResponse {
	return getTodoResponse{
		ID:          todo.ID,
		Title:       todo.Title,
		Description: todo.Description,
		Completed:   todo.Completed,
	}
}

type todoIDResponse struct {
	ID string `json:"id"`
}

func (h *handlerImpl) HandleListTodos(c *gin.Context) {
	todos, err := h.todos.ListTodos(c)
	if err != nil {
		h.logger.Error().
			Err(err).
			Msg("failed to list todos")
		abort(c, newStatusTextError(http.StatusInternalServerError))
		return
	}
	h.logger.Debug().
		Int("count", len(todos)).
		Msg("listed todos")

	response := make([]getTodoResponse, len(todos))
	for i, todo := range todos {
		response[i] = newGetTodoResponse(&todo)
	}

	c.JSON(http.StatusOK, response)
}

func (h *handlerImpl) HandleGetTodo(c *gin.Context) {
	todoID := c.Param("id")

	todo, err := h.todos.GetTodo(c, todoID)
	if err != nil {
		if errors.Is(err, services.ErrTodoNotFound) {
			h.logger.Warn().
				Str("id", todoID).
				Msg("todo not found")
			c.AbortWithStatus(http.StatusNotFound)
			return
		}

		h.logger.Error().
			Err(err).
			Str("id", todoID).
			Msg("failed to get todo")
		abort(c, newStatusTextError(http.StatusInternalServerError))
		return
	}

	c.JSON(http.StatusOK, newGetTodoResponse(todo))
}

func (h *handlerImpl) HandleCreateTodo(c *gin.Context) {
	body, err := c.GetRawData()
	if err != nil {
		h.logger.Error().
			Err(err).
			Msg("failed to read request body")
		abort(c, newBadRequestError(errInvalidRequestBody.Error()))
		return
	}

	input, err := validation.ValidateCreate(body)
	if err != nil {
		h.logger.Warn().
			Err(err).
			Msg("invalid create todo request")
		abort(c, newBadRequestError(err.Error()))
		return
	}

	todo, err := h.todos.CreateTodo(c, services.CreateTodoParams{
		Title:       input.Title,
		Description: input.Description,
		Completed:   input.Completed,
	})
	if err != nil {
		h.logger.Error().
			Err(err).
			Msg("failed to create todo")
		abort(c, newStatusTextError(http.StatusInternalServerError))
		return
	}
	h.logger.Debug().
		Str("id", todo.ID).
		Msg("created todo")

	c.JSON(http.StatusCreated, todoIDResponse{ID: todo.ID})
}

func (h *handlerImpl) HandleUpdateTodo(c *gin.Context) {
	todoID := c.Param("id")

	body, err := c.GetRawData()
	if err != nil {
		h.logger.Error().
			Err(err).
			Msg("failed to read request body")
		abort(c, newBadRequestError(errInvalidRequestBody.Error()))
		return
	}

	patch, err := validation.ValidateUpdate(body)
	if err != nil {
		h.logger.Warn().
			Err(err).
			Str("id", todoID).
			Msg("invalid update todo request")
		abort(c, newBadRequestError(err.Error()))
		return
	}

	todo, err := h.todos.UpdateTodo(c, services.UpdateTodoParams{
		ID:    todoID,
		Patch: patch,
	})
	if err != nil {
		if errors.Is(err, services.ErrTodoNotFound) {
			h.logger.Warn().
				Str("id", todoID).
				Msg("todo not found")
			c.AbortWithStatus(http.StatusNotFound)
			return
		}

		h.logger.Error().
			Err(err).
			Str("id", todoID).
			Msg("failed to update todo")
		abort(c, newStatusTextError(http.StatusInternalServerError))
		return
	}
	h.logger.Debug().
		Str("id", todo.ID).
		Msg("updated todo")

	c.JSON(http.StatusOK, todoIDResponse{ID: todo.ID})
}

func (h *handlerImpl) HandleDeleteTodo(c *gin.Context) {
	todoID := c.Param("id")

	err := h.todos.DeleteTodo(c, todoID)
	if err != nil {
		if errors.Is(err, services.ErrTodoNotFound) {
			h.logger.Warn().
				Str("id", todoID).
				Msg("todo not found")
			c.AbortWithStatus(http.StatusNotFound)
			return
		}

		h.logger.Error().
			Err(err).
			Str("id", todoID).
			Msg("failed to delete todo")
		abort(c, newStatusTextError(http.StatusInternalServerError))
		return
	}
	h.logger.Debug().
		Str("id", todoID).
		Msg("deleted todo")

	c.Status(http.StatusOK)
}
