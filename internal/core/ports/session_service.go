package ports

import (
	"context"

	"github.com/taskvault/todo-api/internal/core/domain"
)

// SessionService issues and revokes authentication tokens.
type SessionService interface {
	// Register creates the account and returns it with a freshly issued
	// token. Fails with domain.ErrValidation or domain.ErrEmailTaken.
	Register(ctx context.Context, email, password string) (*domain.User, string, error)
	// Login verifies credentials and appends a new token; previously issued
	// tokens for the same user stay valid.
	Login(ctx context.Context, email, password string) (*domain.User, string, error)
	// Logout revokes exactly the given token. Revoking an already-absent
	// token still succeeds.
	Logout(ctx context.Context, userID, token string) error
}
