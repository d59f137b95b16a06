package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/beka-birhanu/distributed-systems/internal/core/domain"
)

// errorResponse is the canonical error envelope for all API errors.
type errorResponse struct {
	Error string `json:"error"`
}

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that:
//   - Maps known domain errors to their appropriate HTTP status codes.
//   - Logs unexpected errors internally without leaking details to the client.
//   - Renders a consistent JSON envelope: {"error": "<message>"}.
//
// Handlers render most domain failures themselves; this is the backstop for
// middleware errors and anything that escapes a handler.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code, msg := resolveError(err, log, c)
		_ = c.JSON(code, errorResponse{Error: msg})
	}
}

func resolveError(err error, log zerolog.Logger, c echo.Context) (int, string) {
	// Echo's own errors (bind failures, 404 from router, etc.)
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code, fmt.Sprintf("%v", he.Message)
	}

	// Known domain errors → deterministic HTTP codes and wire messages.
	switch {
	case errors.Is(err, domain.ErrUsernameTooShort):
		return http.StatusBadRequest, "Username is too short"
	case errors.Is(err, domain.ErrUsernameTooLong):
		return http.StatusBadRequest, "Username is too long"
	case errors.Is(err, domain.ErrUsernameInvalidFormat):
		return http.StatusBadRequest, "Username is invalid format"
	case errors.Is(err, domain.ErrWeakPassword):
		return http.StatusBadRequest, "Password is too weak"
	case errors.Is(err, domain.ErrUsernameTaken):
		return http.StatusBadRequest, "Username already exists"
	case errors.Is(err, domain.ErrInvalidCredentials):
		return http.StatusBadRequest, "Invalid username or password"
	case errors.Is(err, domain.ErrUserNotFound):
		return http.StatusNotFound, "User not found"
	case errors.Is(err, domain.ErrInvalidToken):
		return http.StatusUnauthorized, "Invalid or expired token"
	}

	// Unexpected error (including ErrMissingID precondition violations):
	// log the real cause, return a generic message.
	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Msg("unhandled error")

	return http.StatusInternalServerError, "internal server error"
}
