package ports

import (
	"context"

	"github.com/taskvault/todo-api/internal/core/domain"
)

// UserRepository defines the persistence interface for user accounts and
// their token lists.
type UserRepository interface {
	// Create inserts a new user. Returns domain.ErrEmailTaken when the email
	// is already registered.
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	// FindByToken resolves the user holding the exact token string with the
	// given purpose. Returns domain.ErrUserNotFound when no user matches,
	// including when the user exists but the token has been revoked.
	FindByToken(ctx context.Context, id, token, access string) (*domain.User, error)
	AppendToken(ctx context.Context, id string, token domain.AuthToken) error
	// RemoveToken pulls the exact token string from the user's token list.
	// Removing an absent token is not an error.
	RemoveToken(ctx context.Context, id, token string) error
}
