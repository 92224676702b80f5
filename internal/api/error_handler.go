package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/taskvault/todo-api/internal/core/domain"
)

// errorResponse is the canonical error envelope for API errors that carry a
// body. 401 and 404 responses are deliberately empty.
type errorResponse struct {
	Error string `json:"error"`
}

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that:
//   - Maps known domain errors to their appropriate HTTP status codes.
//   - Renders empty bodies for 401/404 (the API contract for auth and
//     lookup failures).
//   - Logs unexpected errors internally without leaking details to the
//     client; raw store errors never reach the wire.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code, msg := resolveError(err, log, c)
		if msg == "" {
			_ = c.NoContent(code)
			return
		}
		_ = c.JSON(code, errorResponse{Error: msg})
	}
}

func resolveError(err error, log zerolog.Logger, c echo.Context) (int, string) {
	// Echo's own errors (bind failures, 404 from router, etc.)
	var he *echo.HTTPError
	if errors.As(err, &he) {
		switch he.Code {
		case http.StatusUnauthorized, http.StatusNotFound:
			return he.Code, ""
		}
		return he.Code, fmt.Sprintf("%v", he.Message)
	}

	// Known domain errors → deterministic HTTP codes.
	switch {
	case errors.Is(err, domain.ErrValidation), errors.Is(err, domain.ErrEmailTaken):
		return http.StatusBadRequest, err.Error()
	case errors.Is(err, domain.ErrInvalidCredentials):
		return http.StatusBadRequest, ""
	case errors.Is(err, domain.ErrUnauthenticated), errors.Is(err, domain.ErrInvalidSignature):
		return http.StatusUnauthorized, ""
	case errors.Is(err, domain.ErrTodoNotFound):
		return http.StatusNotFound, ""
	}

	// Unexpected error: log the real cause, return a generic message.
	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Msg("unhandled error")

	return http.StatusInternalServerError, "internal server error"
}
