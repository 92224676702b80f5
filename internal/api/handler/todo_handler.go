package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/taskvault/todo-api/internal/api/metrics"
	"github.com/taskvault/todo-api/internal/core/domain"
	"github.com/taskvault/todo-api/internal/core/ports"
)

// TodoHandler handles the owner-scoped todo routes. The acting user comes
// from the Auth middleware; the handler never reads an owner id from the
// request itself.
//
// Historical status-code quirk, preserved on purpose: a malformed id is 404
// on GET and DELETE but 400 on PATCH. Clients exist that rely on each.
type TodoHandler struct {
	todos ports.TodoService
}

func NewTodoHandler(todos ports.TodoService) *TodoHandler {
	return &TodoHandler{todos: todos}
}

// Create adds a todo owned by the caller.
//
// @Summary      Create a todo
// @Tags         todos
// @Accept       json
// @Produce      json
// @Param        x-auth  header    string             true  "Session token"
// @Param        body    body      createTodoRequest  true  "Todo text"
// @Success      200     {object}  domain.Todo
// @Failure      400     {object}  errorResponse
// @Failure      401     "Missing or invalid token"
// @Router       /todos [post]
func (h *TodoHandler) Create(c echo.Context) error {
	user, err := principal(c)
	if err != nil {
		return err
	}

	var req createTodoRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid payload"})
	}

	todo, err := h.todos.Create(c.Request().Context(), user.ID, req.Text)
	if err != nil {
		if errors.Is(err, domain.ErrValidation) {
			return c.JSON(http.StatusBadRequest, errorResponse{Error: "text is required"})
		}
		return err
	}

	metrics.TodosCreatedTotal.Inc()
	return c.JSON(http.StatusOK, todo)
}

// List returns all todos owned by the caller, in store order.
//
// @Summary      List todos
// @Tags         todos
// @Produce      json
// @Param        x-auth  header    string  true  "Session token"
// @Success      200     {object}  todoListResponse
// @Failure      401     "Missing or invalid token"
// @Router       /todos [get]
func (h *TodoHandler) List(c echo.Context) error {
	user, err := principal(c)
	if err != nil {
		return err
	}

	todos, err := h.todos.List(c.Request().Context(), user.ID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, todoListResponse{Todos: todos})
}

// Get returns a single todo owned by the caller. A foreign or unknown id is
// the same 404; cross-tenant existence is not observable.
//
// @Summary      Get a todo
// @Tags         todos
// @Produce      json
// @Param        x-auth  header    string  true  "Session token"
// @Param        id      path      string  true  "Todo id"
// @Success      200     {object}  todoEnvelope
// @Failure      401     "Missing or invalid token"
// @Failure      404     "Unknown, foreign or malformed id"
// @Router       /todos/{id} [get]
func (h *TodoHandler) Get(c echo.Context) error {
	user, err := principal(c)
	if err != nil {
		return err
	}

	id := c.Param("id")
	if !primitive.IsValidObjectID(id) {
		return c.NoContent(http.StatusNotFound)
	}

	todo, err := h.todos.Get(c.Request().Context(), user.ID, id)
	if err != nil {
		if errors.Is(err, domain.ErrTodoNotFound) {
			return c.NoContent(http.StatusNotFound)
		}
		return err
	}
	return c.JSON(http.StatusOK, todoEnvelope{Todo: todo})
}

// Update applies a partial update. completed=true stamps completedAt server
// side; completed false or omitted resets the todo to incomplete.
//
// @Summary      Update a todo
// @Tags         todos
// @Accept       json
// @Produce      json
// @Param        x-auth  header    string             true  "Session token"
// @Param        id      path      string             true  "Todo id"
// @Param        body    body      updateTodoRequest  true  "Fields to change"
// @Success      200     {object}  todoEnvelope
// @Failure      400     "Malformed id or empty text"
// @Failure      401     "Missing or invalid token"
// @Failure      404     "Unknown or foreign id"
// @Router       /todos/{id} [patch]
func (h *TodoHandler) Update(c echo.Context) error {
	user, err := principal(c)
	if err != nil {
		return err
	}

	id := c.Param("id")
	if !primitive.IsValidObjectID(id) {
		return c.NoContent(http.StatusBadRequest)
	}

	var req updateTodoRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid payload"})
	}

	todo, err := h.todos.Update(c.Request().Context(), user.ID, id, ports.TodoPatch{
		Text:      req.Text,
		Completed: req.Completed,
	})
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrTodoNotFound):
			return c.NoContent(http.StatusNotFound)
		case errors.Is(err, domain.ErrValidation):
			return c.JSON(http.StatusBadRequest, errorResponse{Error: "text must not be empty"})
		}
		return err
	}

	if todo.Completed {
		metrics.TodosCompletedTotal.Inc()
	}
	return c.JSON(http.StatusOK, todoEnvelope{Todo: todo})
}

// Delete removes a todo owned by the caller and returns it.
//
// @Summary      Delete a todo
// @Tags         todos
// @Produce      json
// @Param        x-auth  header    string  true  "Session token"
// @Param        id      path      string  true  "Todo id"
// @Success      200     {object}  todoEnvelope
// @Failure      401     "Missing or invalid token"
// @Failure      404     "Unknown, foreign or malformed id"
// @Router       /todos/{id} [delete]
func (h *TodoHandler) Delete(c echo.Context) error {
	user, err := principal(c)
	if err != nil {
		return err
	}

	id := c.Param("id")
	if !primitive.IsValidObjectID(id) {
		return c.NoContent(http.StatusNotFound)
	}

	todo, err := h.todos.Remove(c.Request().Context(), user.ID, id)
	if err != nil {
		if errors.Is(err, domain.ErrTodoNotFound) {
			return c.NoContent(http.StatusNotFound)
		}
		return err
	}

	metrics.TodosDeletedTotal.Inc()
	return c.JSON(http.StatusOK, todoEnvelope{Todo: todo})
}
