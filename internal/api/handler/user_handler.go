package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/taskvault/todo-api/internal/api/metrics"
	"github.com/taskvault/todo-api/internal/api/middleware"
	"github.com/taskvault/todo-api/internal/core/domain"
	"github.com/taskvault/todo-api/internal/core/ports"
)

// UserHandler handles account registration, login and session management.
type UserHandler struct {
	sessions ports.SessionService
}

func NewUserHandler(sessions ports.SessionService) *UserHandler {
	return &UserHandler{sessions: sessions}
}

// Register creates a new account and opens its first session.
//
// @Summary      Register a new user
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        body  body      registerRequest  true  "Email and password"
// @Success      200   {object}  userResponse  "Session token in the x-auth response header"
// @Failure      400   {object}  errorResponse
// @Router       /users [post]
func (h *UserHandler) Register(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
	}

	user, token, err := h.sessions.Register(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrEmailTaken):
			return c.JSON(http.StatusBadRequest, errorResponse{Error: "email already registered"})
		case errors.Is(err, domain.ErrValidation):
			return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid email or password"})
		}
		return err
	}

	metrics.SessionsIssuedTotal.WithLabelValues("register").Inc()
	c.Response().Header().Set(middleware.HeaderAuthToken, token)
	return c.JSON(http.StatusOK, toUserResponse(user))
}

// Login opens a new session for an existing account. Previously issued
// tokens stay valid, so each device holds its own.
//
// @Summary      Login
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Email and password"
// @Success      200   {object}  userResponse  "Session token in the x-auth response header"
// @Failure      400   "Invalid credentials: empty body, no x-auth header"
// @Router       /users/login [post]
func (h *UserHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return c.NoContent(http.StatusBadRequest)
	}
	if err := c.Validate(&req); err != nil {
		return c.NoContent(http.StatusBadRequest)
	}

	user, token, err := h.sessions.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidCredentials) {
			return c.NoContent(http.StatusBadRequest)
		}
		return err
	}

	metrics.SessionsIssuedTotal.WithLabelValues("login").Inc()
	c.Response().Header().Set(middleware.HeaderAuthToken, token)
	return c.JSON(http.StatusOK, toUserResponse(user))
}

// Me returns the authenticated account.
//
// @Summary      Current user
// @Tags         users
// @Produce      json
// @Param        x-auth  header    string  true  "Session token"
// @Success      200     {object}  userResponse
// @Failure      401     "Missing or invalid token"
// @Router       /users/me [get]
func (h *UserHandler) Me(c echo.Context) error {
	user, err := principal(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toUserResponse(user))
}

// Logout revokes the token the request authenticated with. Tokens held by
// other devices are untouched.
//
// @Summary      Logout
// @Tags         users
// @Param        x-auth  header  string  true  "Session token"
// @Success      200  "Token revoked"
// @Failure      400  "Revocation failed"
// @Failure      401  "Missing or invalid token"
// @Router       /users/me/token [delete]
func (h *UserHandler) Logout(c echo.Context) error {
	user, token, err := principalToken(c)
	if err != nil {
		return err
	}

	if err := h.sessions.Logout(c.Request().Context(), user.ID, token); err != nil {
		return c.NoContent(http.StatusBadRequest)
	}
	return c.NoContent(http.StatusOK)
}
