package ports

import (
	"context"

	"github.com/taskvault/todo-api/internal/core/domain"
)

// TodoPatch is the typed partial update accepted from clients. A nil field
// was omitted from the request.
//
// Note the completion contract: a patch that omits Completed resets the todo
// to incomplete. This mirrors the historical API behavior and is covered by
// tests; see the service implementation before changing it.
type TodoPatch struct {
	Text      *string
	Completed *bool
}

// TodoService is the ownership-scoped gate over the todo collection. The
// owner argument is the authenticated user's id; implementations must scope
// every operation to it.
type TodoService interface {
	Create(ctx context.Context, owner, text string) (*domain.Todo, error)
	List(ctx context.Context, owner string) ([]domain.Todo, error)
	Get(ctx context.Context, owner, id string) (*domain.Todo, error)
	Update(ctx context.Context, owner, id string, patch TodoPatch) (*domain.Todo, error)
	Remove(ctx context.Context, owner, id string) (*domain.Todo, error)
}
