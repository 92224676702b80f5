package handler

import "github.com/taskvault/todo-api/internal/core/domain"

// --- Request / Response types ---

type createTodoRequest struct {
	Text string `json:"text" validate:"required"`
}

// updateTodoRequest is the typed patch for PATCH /todos/:id. Nil means the
// field was omitted. Any completedAt sent by the client is ignored; the
// server owns that timestamp.
type updateTodoRequest struct {
	Text      *string `json:"text"`
	Completed *bool   `json:"completed"`
}

// todoEnvelope wraps a single todo, matching the {todo} body shape of the
// GET/PATCH/DELETE routes. POST /todos historically returns the bare
// document instead.
type todoEnvelope struct {
	Todo *domain.Todo `json:"todo"`
}

type todoListResponse struct {
	Todos []domain.Todo `json:"todos"`
}
