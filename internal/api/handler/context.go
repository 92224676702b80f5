package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/taskvault/todo-api/internal/api/middleware"
	"github.com/taskvault/todo-api/internal/core/domain"
)

// principal extracts the authenticated user injected by the Auth middleware.
// A missing user means the route was wired without the middleware; fail
// closed with 401 rather than serve unscoped data.
func principal(c echo.Context) (*domain.User, error) {
	user, _ := c.Get(middleware.ContextKeyUser).(*domain.User)
	if user == nil {
		return nil, echo.NewHTTPError(http.StatusUnauthorized)
	}
	return user, nil
}

// principalToken additionally returns the exact token string the request
// authenticated with, for operations that act on that one credential.
func principalToken(c echo.Context) (*domain.User, string, error) {
	user, err := principal(c)
	if err != nil {
		return nil, "", err
	}
	token, _ := c.Get(middleware.ContextKeyToken).(string)
	if token == "" {
		return nil, "", echo.NewHTTPError(http.StatusUnauthorized)
	}
	return user, token, nil
}
