package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/taskvault/todo-api/internal/api/metrics"
	"github.com/taskvault/todo-api/internal/core/domain"
	"github.com/taskvault/todo-api/internal/core/ports"
)

// HeaderAuthToken is the request header carrying the session token.
const HeaderAuthToken = "x-auth"

// Context keys set by Auth for downstream handlers.
const (
	ContextKeyUser  = "user"
	ContextKeyToken = "token"
)

// Auth resolves the x-auth header to a user and injects it into the request
// context. A token is accepted only when its signature verifies AND the exact
// token string is still present in the user's stored token list; logout pulls
// the entry, so a cryptographically valid token dies the moment it is
// revoked.
//
// Every failure mode answers 401 with an empty body. The client is never told
// whether the signature, the user, or the revocation was at fault.
func Auth(codec ports.TokenCodec, users ports.UserRepository, cache ports.TokenCache) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token := c.Request().Header.Get(HeaderAuthToken)
			if token == "" {
				metrics.AuthFailuresTotal.WithLabelValues("missing_token").Inc()
				return c.NoContent(http.StatusUnauthorized)
			}

			userID, purpose, err := codec.Verify(token)
			if err != nil {
				metrics.AuthFailuresTotal.WithLabelValues("bad_signature").Inc()
				return c.NoContent(http.StatusUnauthorized)
			}
			if purpose != domain.TokenPurposeAuth {
				metrics.AuthFailuresTotal.WithLabelValues("wrong_purpose").Inc()
				return c.NoContent(http.StatusUnauthorized)
			}

			ctx := c.Request().Context()
			user := resolveCached(c, cache, users, token, userID)
			if user == nil {
				user, err = users.FindByToken(ctx, userID, token, domain.TokenPurposeAuth)
				if err != nil {
					metrics.AuthFailuresTotal.WithLabelValues("revoked").Inc()
					return c.NoContent(http.StatusUnauthorized)
				}
				if cache != nil {
					_ = cache.Set(ctx, token, userID)
				}
			}

			c.Set(ContextKeyUser, user)
			c.Set(ContextKeyToken, token)
			return next(c)
		}
	}
}

// resolveCached short-cuts the token-list lookup when the cache still binds
// this token to the same user id. The loaded user is re-checked against its
// stored token list before the hit counts: a cache entry that outlives a
// logout (failed invalidation, or a Set racing a concurrent $pull) must not
// resurrect the revoked token. Any cache failure falls through to the store;
// the cache can only make a valid request cheaper, never an invalid one pass.
func resolveCached(c echo.Context, cache ports.TokenCache, users ports.UserRepository, token, userID string) *domain.User {
	if cache == nil {
		return nil
	}

	ctx := c.Request().Context()
	cachedID, ok, err := cache.Get(ctx, token)
	if err != nil || !ok || cachedID != userID {
		metrics.TokenCacheTotal.WithLabelValues("miss").Inc()
		return nil
	}

	user, err := users.FindByID(ctx, userID)
	if err != nil || !user.HasToken(token, domain.TokenPurposeAuth) {
		metrics.TokenCacheTotal.WithLabelValues("miss").Inc()
		return nil
	}

	metrics.TokenCacheTotal.WithLabelValues("hit").Inc()
	return user
}
