package ports

import (
	"context"

	"github.com/taskvault/todo-api/internal/core/domain"
)

// TodoChange is the validated mutation the service layer hands to the store.
// Arbitrary client patches never reach the repository: the service resolves
// them into this struct field by field.
type TodoChange struct {
	// Text replaces the todo text when non-nil.
	Text *string
	// Completed and CompletedAt are always written as a pair.
	Completed   bool
	CompletedAt *int64
}

// TodoRepository defines the persistence interface for to-do items. Every
// single-item operation takes the owner id and must include it in the store
// filter; a missing id and a foreign id are both domain.ErrTodoNotFound.
type TodoRepository interface {
	Insert(ctx context.Context, todo *domain.Todo) (*domain.Todo, error)
	FindByOwner(ctx context.Context, owner string) ([]domain.Todo, error)
	FindByID(ctx context.Context, id, owner string) (*domain.Todo, error)
	// Update applies the change atomically and returns the updated document.
	Update(ctx context.Context, id, owner string, change TodoChange) (*domain.Todo, error)
	// Delete removes the document and returns it.
	Delete(ctx context.Context, id, owner string) (*domain.Todo, error)
}
