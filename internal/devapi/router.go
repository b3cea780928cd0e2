package devapi

import (
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"

	"github.com/petcare/petcare-client/internal/pkg/validate"
)

// NewRouter builds the development backend with every route under /api/.
func NewRouter(svc *AuthService, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = validate.New()
	e.HTTPErrorHandler = newErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())

	h := NewHandler(svc)
	auth := TokenAuth(svc)

	api := e.Group("/api")
	api.GET("/", h.Root)
	api.HEAD("/", h.Root)

	// --- Auth routes ---
	api.POST("/register/", h.Register)
	api.POST("/login/", h.Login)
	api.POST("/logout/", h.Logout, auth)
	api.GET("/profile/", h.Profile, auth)
	api.PATCH("/profile/", h.UpdateProfile, auth)
	api.PUT("/profile/", h.UpdateProfile, auth)
	api.POST("/change-password/", h.ChangePassword, auth)

	// --- Administrator routes ---
	api.GET("/admin/users/", h.ListUsers, auth, AdminOnly)
	api.POST("/admin/users/:id/assign-role/", h.AssignRole, auth, AdminOnly)

	return e
}
