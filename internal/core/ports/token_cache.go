package ports

import "context"

// TokenCache is an optional read-through cache in front of the token-presence
// lookup. The user store remains the source of truth: a hit is advisory and
// the resolver re-verifies the token against the loaded user's token list, so
// a stale entry can never authenticate a revoked token. Logout calls
// Invalidate and fails loudly when it cannot, keeping the cache tidy.
type TokenCache interface {
	// Get returns the user id bound to the token, with ok=false on a miss.
	Get(ctx context.Context, token string) (userID string, ok bool, err error)
	Set(ctx context.Context, token, userID string) error
	Invalidate(ctx context.Context, token string) error
}
