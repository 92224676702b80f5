package redis

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const tokenCacheTTL = 5 * time.Minute

// TokenCache is a read-through cache for token resolution, keyed by a SHA-256
// fingerprint of the token so raw credentials never land in Redis.
// Key format: session:<fingerprint> → user id.
//
// The user store remains authoritative: logout invalidates the entry before
// answering, and the TTL bounds staleness should an invalidation be missed.
type TokenCache struct {
	client *redis.Client
}

func NewTokenCache(client *redis.Client) *TokenCache {
	return &TokenCache{client: client}
}

func (c *TokenCache) Get(ctx context.Context, token string) (string, bool, error) {
	userID, err := c.client.Get(ctx, c.key(token)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("token cache get: %w", err)
	}
	return userID, true, nil
}

func (c *TokenCache) Set(ctx context.Context, token, userID string) error {
	return c.client.Set(ctx, c.key(token), userID, tokenCacheTTL).Err()
}

func (c *TokenCache) Invalidate(ctx context.Context, token string) error {
	return c.client.Del(ctx, c.key(token)).Err()
}

func (c *TokenCache) key(token string) string {
	sum := sha256.Sum256([]byte(token))
	return "session:" + hex.EncodeToString(sum[:])
}
