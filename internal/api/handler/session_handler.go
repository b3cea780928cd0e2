package handler

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/petcare/petcare-client/internal/api/middleware"
	"github.com/petcare/petcare-client/internal/core/domain"
	"github.com/petcare/petcare-client/internal/core/ports"
)

type SessionHandler struct {
	sessions ports.SessionService
}

func NewSessionHandler(sessions ports.SessionService) *SessionHandler {
	return &SessionHandler{sessions: sessions}
}

type sessionResponse struct {
	Status      domain.Status   `json:"status"`
	User        *domain.Profile `json:"user,omitempty"`
	CachedUser  *domain.Profile `json:"cached_user,omitempty"`
	DisplayName string          `json:"display_name,omitempty"`
	IsAdmin     bool            `json:"is_admin"`
}

type loginResponse struct {
	User *domain.Profile `json:"user"`
	Next string          `json:"next"`
}

type registerResponse struct {
	User     *domain.Profile `json:"user"`
	SignedIn bool            `json:"signed_in"`
	Next     string          `json:"next"`
}

func (h *SessionHandler) snapshot() sessionResponse {
	snap := h.sessions.Snapshot()
	return sessionResponse{
		Status:      snap.Status,
		User:        snap.User,
		CachedUser:  snap.Cached,
		DisplayName: snap.User.DisplayName(),
		IsAdmin:     h.sessions.IsAdmin(),
	}
}

// Home is the landing view; it only reports who is signed in.
func (h *SessionHandler) Home(c echo.Context) error {
	return c.JSON(http.StatusOK, h.snapshot())
}

// Session reports the current session state. It never redirects, so callers
// can poll it while the startup check runs.
func (h *SessionHandler) Session(c echo.Context) error {
	return c.JSON(http.StatusOK, h.snapshot())
}

// Login signs in and tells the caller where to go next: the ?next= target of
// the guard redirect, or the dashboard.
func (h *SessionHandler) Login(c echo.Context) error {
	var creds domain.Credentials
	if err := c.Bind(&creds); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	user, err := h.sessions.Login(c.Request().Context(), creds)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, loginResponse{User: user, Next: nextPath(c, "/dashboard")})
}

func (h *SessionHandler) Logout(c echo.Context) error {
	h.sessions.Logout(c.Request().Context())
	return c.Redirect(http.StatusSeeOther, middleware.LoginPath)
}

// Register creates an account. When the backend did not sign the user in the
// caller is sent to the login view.
func (h *SessionHandler) Register(c echo.Context) error {
	var reg domain.Registration
	if err := c.Bind(&reg); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	out, err := h.sessions.Register(c.Request().Context(), reg)
	if err != nil {
		return err
	}
	next := middleware.LoginPath
	if out.SignedIn {
		next = "/dashboard"
	}
	return c.JSON(http.StatusCreated, registerResponse{User: out.User, SignedIn: out.SignedIn, Next: next})
}

func (h *SessionHandler) Profile(c echo.Context) error {
	return c.JSON(http.StatusOK, middleware.CurrentUser(c))
}

func (h *SessionHandler) UpdateProfile(c echo.Context) error {
	var update domain.ProfileUpdate
	if err := c.Bind(&update); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	user, err := h.sessions.UpdateProfile(c.Request().Context(), update)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, user)
}

func (h *SessionHandler) ChangePassword(c echo.Context) error {
	var change domain.PasswordChange
	if err := c.Bind(&change); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	if err := h.sessions.ChangePassword(c.Request().Context(), change); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]string{"detail": "password updated"})
}

// nextPath returns the local path in ?next=, or fallback. Absolute and
// protocol-relative URLs are ignored; browsers read "/\host" as "//host".
func nextPath(c echo.Context, fallback string) string {
	next := c.QueryParam("next")
	if !strings.HasPrefix(next, "/") || strings.HasPrefix(next, "//") || strings.HasPrefix(next, `/\`) {
		return fallback
	}
	return next
}
