package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/todo-api/internal/application"
	"github.com/oksasatya/todo-api/internal/interface/middleware"
	"github.com/oksasatya/todo-api/pkg/response"
)

type TodoHandler struct {
	Todos  *application.TodoService
	Logger *logrus.Logger
}

func NewTodoHandler(todos *application.TodoService, logger *logrus.Logger) *TodoHandler {
	return &TodoHandler{Todos: todos, Logger: logger}
}

// All GET /todos/all (admin)
func (h *TodoHandler) All(c *gin.Context) {
	todos, err := h.Todos.ListAll(c.Request.Context(), middleware.CurrentUser(c))
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, toTodoOuts(todos), "todos", nil)
}

// Create POST /todos/
func (h *TodoHandler) Create(c *gin.Context) {
	var req createTodoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	t, err := h.Todos.CreateWithOwner(c.Request.Context(), application.TodoInput{
		Title:       req.Title,
		Description: req.Description,
		Priority:    req.Priority,
		IsCompleted: req.IsCompleted,
	}, middleware.CurrentUser(c).ID)
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusCreated, toTodoOut(t), "todo created", nil)
}

// Mine GET /todos/
func (h *TodoHandler) Mine(c *gin.Context) {
	todos, err := h.Todos.ListOwned(c.Request.Context(), middleware.CurrentUser(c).ID)
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, toTodoOuts(todos), "todos", nil)
}

// Get GET /todos/:id
func (h *TodoHandler) Get(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	t, err := h.Todos.GetOwned(c.Request.Context(), id, middleware.CurrentUser(c))
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, toTodoOut(t), "todo", nil)
}

// Update PATCH /todos/:id
func (h *TodoHandler) Update(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req updateTodoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	t, err := h.Todos.UpdateOwned(c.Request.Context(), id, middleware.CurrentUser(c), req.patch())
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, toTodoOut(t), "todo updated", nil)
}

// Delete DELETE /todos/:id
func (h *TodoHandler) Delete(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	t, err := h.Todos.DeleteOwned(c.Request.Context(), id, middleware.CurrentUser(c))
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, toTodoOut(t), "todo deleted", nil)
}
