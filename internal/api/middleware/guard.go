package middleware

import (
	"net/http"
	"net/url"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/petcare/petcare-client/internal/core/domain"
	"github.com/petcare/petcare-client/internal/core/ports"
	"github.com/petcare/petcare-client/internal/pkg/metrics"
)

const (
	// UserKey is the echo context key holding the signed-in *domain.Profile.
	UserKey = "user"

	LoginPath    = "/login"
	// FallbackPath is where authenticated users without the required role go.
	FallbackPath = "/dashboard"

	// retryAfter is the Retry-After value, in seconds, sent while the session
	// is still initializing.
	retryAfter = 1
)

// loadingResponse is rendered while the startup session check is running.
type loadingResponse struct {
	State string          `json:"state"`
	User  *domain.Profile `json:"cached_user,omitempty"`
}

// RequireSession lets the request through only for an authenticated session.
// While the session is initializing it answers 503 so the caller retries;
// anonymous callers are redirected to the login view.
func RequireSession(sessions ports.SessionReader) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			snap := sessions.Snapshot()
			switch {
			case snap.Status == domain.StatusInitializing:
				metrics.GuardDecisionsTotal.WithLabelValues("session", "loading").Inc()
				c.Response().Header().Set("Retry-After", strconv.Itoa(retryAfter))
				return c.JSON(http.StatusServiceUnavailable, loadingResponse{State: "loading", User: snap.Cached})
			case !snap.Authenticated():
				metrics.GuardDecisionsTotal.WithLabelValues("session", "login").Inc()
				return c.Redirect(http.StatusSeeOther, LoginRedirect(c.Request().URL.RequestURI()))
			}

			metrics.GuardDecisionsTotal.WithLabelValues("session", "allow").Inc()
			c.Set(UserKey, snap.User)
			return next(c)
		}
	}
}

// RequireRole lets the request through only when the signed-in user holds
// role. Signed-in users without it are sent to the fallback view.
func RequireRole(sessions ports.SessionReader, role string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return RequireSession(sessions)(func(c echo.Context) error {
			if !sessions.HasRole(role) {
				metrics.GuardDecisionsTotal.WithLabelValues("role", "fallback").Inc()
				return c.Redirect(http.StatusSeeOther, FallbackPath)
			}
			metrics.GuardDecisionsTotal.WithLabelValues("role", "allow").Inc()
			return next(c)
		})
	}
}

// LoginRedirect returns the login view URL that leads back to next after a
// successful login.
func LoginRedirect(next string) string {
	if next == "" || next == LoginPath {
		return LoginPath
	}
	return LoginPath + "?next=" + url.QueryEscape(next)
}

// CurrentUser returns the profile stored by RequireSession.
func CurrentUser(c echo.Context) *domain.Profile {
	u, _ := c.Get(UserKey).(*domain.Profile)
	return u
}
