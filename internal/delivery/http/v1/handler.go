package v1

import (
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/adanyl0v/go-todo-json/internal/services"
)

type Handler interface {
	HandleRequestLogger(c *gin.Context)
	HandleNoRoute(c *gin.Context)

	HandleListTodos(c *gin.Context)
	HandleGetTodo(c *gin.Context)
	HandleCreateTodo(c *gin.Context)
	HandleUpdateTodo(c *gin.Context)
	HandleDeleteTodo(c *gin.Context)
}

type handlerImpl struct {
	logger zerolog.Logger
	todos  services.TodoService
}

func New(
	logger zerolog.Logger,
	todoService services.TodoService,
) Handler {
	return &handlerImpl{
		logger: logger,
		todos:  todoService,
	}
}

// RegisterRoutes mounts the todo endpoints on the engine root.
// Any other path or verb falls through to HandleNoRoute.
func RegisterRoutes(router *gin.Engine, h Handler) {
	router.Use(h.HandleRequestLogger)

	todosRouter := router.Group("/todos")
	todosRouter.GET("", h.HandleListTodos)
	todosRouter.POST("", h.HandleCreateTodo)
	todosRouter.GET("/:id", h.HandleGetTodo)
	todosRouter.PUT("/:id", h.HandleUpdateTodo)
	todosRouter.DELETE("/:id", h.HandleDeleteTodo)

	router.NoRoute(h.HandleNoRoute)
}
