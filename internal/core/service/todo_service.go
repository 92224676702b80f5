package service

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/taskvault/todo-api/internal/core/domain"
	"github.com/taskvault/todo-api/internal/core/ports"
)

// TodoService is the ownership-scoped gate over the todo collection. It holds
// no state of its own; isolation comes from passing the owner id into every
// repository call.
type TodoService struct {
	repo   ports.TodoRepository
	logger zerolog.Logger
}

func NewTodoService(repo ports.TodoRepository, logger zerolog.Logger) *TodoService {
	return &TodoService{repo: repo, logger: logger}
}

func (s *TodoService) Create(ctx context.Context, owner, text string) (*domain.Todo, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, domain.ErrValidation
	}

	todo, err := s.repo.Insert(ctx, &domain.Todo{
		Owner:     owner,
		Text:      text,
		Completed: false,
	})
	if err != nil {
		s.logger.Error().Err(err).Str("owner", owner).Msg("failed to create todo")
		return nil, err
	}
	return todo, nil
}

func (s *TodoService) List(ctx context.Context, owner string) ([]domain.Todo, error) {
	return s.repo.FindByOwner(ctx, owner)
}

func (s *TodoService) Get(ctx context.Context, owner, id string) (*domain.Todo, error) {
	return s.repo.FindByID(ctx, id, owner)
}

// Update applies a typed patch. Completion is always resolved to a definite
// state: true stamps completedAt with the server clock, false clears it, and
// an omitted completed field resets the todo to incomplete. The last case is
// long-standing API behavior that clients depend on, so a patch never leaves
// completion untouched.
func (s *TodoService) Update(ctx context.Context, owner, id string, patch ports.TodoPatch) (*domain.Todo, error) {
	change := ports.TodoChange{}

	if patch.Text != nil {
		text := strings.TrimSpace(*patch.Text)
		if text == "" {
			return nil, domain.ErrValidation
		}
		change.Text = &text
	}

	wantCompleted := patch.Completed != nil && *patch.Completed
	change.Completed, change.CompletedAt = domain.CompletionChange(wantCompleted, time.Now().UnixMilli())

	return s.repo.Update(ctx, id, owner, change)
}

func (s *TodoService) Remove(ctx context.Context, owner, id string) (*domain.Todo, error) {
	return s.repo.Delete(ctx, id, owner)
}
