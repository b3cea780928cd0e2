package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/petcare/petcare-client/internal/api/middleware"
	"github.com/petcare/petcare-client/internal/core/domain"
)

// errorResponse is the canonical error envelope for all view errors. Fields
// carries per-input messages so forms can render them next to the input.
type errorResponse struct {
	Error  string              `json:"error"`
	Kind   domain.ErrorKind    `json:"kind,omitempty"`
	Fields map[string][]string `json:"fields,omitempty"`
}

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that:
//   - Redirects to the login view when the backend rejected the session token.
//   - Maps *domain.Error kinds to HTTP status codes.
//   - Logs unexpected errors internally without leaking details to the client.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		// An expired session is a normal flow: no banner, straight to login.
		if errors.Is(err, domain.ErrSessionExpired) {
			_ = c.Redirect(http.StatusSeeOther, middleware.LoginRedirect(c.Request().URL.RequestURI()))
			return
		}

		code, resp := resolveError(err, log, c)
		if c.Request().Method == http.MethodHead {
			_ = c.NoContent(code)
			return
		}
		_ = c.JSON(code, resp)
	}
}

func resolveError(err error, log zerolog.Logger, c echo.Context) (int, errorResponse) {
	// Echo's own errors (bind failures, 404 from router, etc.)
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code, errorResponse{Error: fmt.Sprintf("%v", he.Message)}
	}

	var de *domain.Error
	if !errors.As(err, &de) {
		// Unexpected error: log the real cause, return a generic message.
		log.Error().
			Err(err).
			Str("method", c.Request().Method).
			Str("path", c.Path()).
			Msg("unhandled error")
		return http.StatusInternalServerError, errorResponse{Error: "internal server error"}
	}

	resp := errorResponse{Error: de.Message, Kind: de.Kind, Fields: de.Fields}
	switch {
	case errors.Is(de, domain.ErrNotFound):
		return http.StatusNotFound, resp
	case errors.Is(de, domain.ErrForbidden):
		return http.StatusForbidden, resp
	case errors.Is(de, domain.ErrInitializing):
		c.Response().Header().Set("Retry-After", "1")
		return http.StatusServiceUnavailable, resp
	case errors.Is(de, domain.ErrOperationInProgress):
		return http.StatusConflict, resp
	case errors.Is(de, domain.ErrUnauthenticated):
		return http.StatusUnauthorized, resp
	}

	switch de.Kind {
	case domain.KindValidation:
		return http.StatusBadRequest, resp
	case domain.KindAuthentication:
		return http.StatusUnauthorized, resp
	case domain.KindNetwork:
		log.Warn().
			Err(de.Err).
			Str("method", c.Request().Method).
			Str("path", c.Path()).
			Msg("backend unavailable")
		return http.StatusBadGateway, resp
	default:
		log.Error().
			Err(err).
			Str("method", c.Request().Method).
			Str("path", c.Path()).
			Msg("unexpected session precondition failure")
		return http.StatusInternalServerError, resp
	}
}
