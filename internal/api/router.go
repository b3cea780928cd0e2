package api

import (
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/petcare/petcare-client/internal/api/handler"
	"github.com/petcare/petcare-client/internal/api/middleware"
	"github.com/petcare/petcare-client/internal/core/ports"
	"github.com/petcare/petcare-client/internal/pkg/validate"
)

// Backend is the REST surface the views read through.
type Backend interface {
	ports.PetsAPI
	ports.StoreAPI
	ports.ReservationsAPI
	ports.UsersAPI
	handler.Pinger
}

// Deps are the collaborators the companion server is built from.
type Deps struct {
	Sessions  ports.SessionService
	Backend   Backend
	AdminRole string
	// Checks are extra readiness dependencies keyed by name.
	Checks map[string]handler.Pinger
	Log    zerolog.Logger
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(d Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = validate.New()
	e.HTTPErrorHandler = NewHTTPErrorHandler(d.Log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(requestLogger(d.Log))

	// --- Dependencies ---
	sessionHandler := handler.NewSessionHandler(d.Sessions)
	petsHandler := handler.NewPetsHandler(d.Backend)
	storeHandler := handler.NewStoreHandler(d.Backend)
	reservationsHandler := handler.NewReservationsHandler(d.Backend)
	usersHandler := handler.NewUsersHandler(d.Backend)

	checks := map[string]handler.Pinger{"backend": d.Backend}
	for name, p := range d.Checks {
		checks[name] = p
	}
	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(d.Sessions, checks)

	// --- Public views ---
	e.GET("/", sessionHandler.Home)
	e.GET("/session", sessionHandler.Session)
	e.POST("/login", sessionHandler.Login)
	e.POST("/register", sessionHandler.Register)
	e.POST("/logout", sessionHandler.Logout)

	e.GET("/store/products", storeHandler.Products)
	e.GET("/store/products/:id", storeHandler.Product)
	e.GET("/store/categories", storeHandler.Categories)

	// --- Health probes and metrics (no session required) ---
	e.GET("/health", healthHandler.Liveness)            // liveness
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	// --- Protected views ---
	// The guard is attached per route so unknown paths still answer 404.
	guard := middleware.RequireSession(d.Sessions)
	e.GET("/dashboard", sessionHandler.Home, guard)
	e.GET("/profile", sessionHandler.Profile, guard)
	e.PATCH("/profile", sessionHandler.UpdateProfile, guard)
	e.POST("/profile/change-password", sessionHandler.ChangePassword, guard)

	e.GET("/pets", petsHandler.List, guard)
	e.POST("/pets", petsHandler.Create, guard)
	e.GET("/pets/:id", petsHandler.Get, guard)
	e.PATCH("/pets/:id", petsHandler.Update, guard)
	e.DELETE("/pets/:id", petsHandler.Delete, guard)
	e.GET("/pet-types", petsHandler.Types, guard)

	e.GET("/my-reservations", reservationsHandler.List, guard)
	e.POST("/reservations", reservationsHandler.Create, guard)
	e.GET("/reservations/:id", reservationsHandler.Get, guard)
	e.PUT("/reservations/:id", reservationsHandler.Update, guard)
	e.DELETE("/reservations/:id", reservationsHandler.Delete, guard)
	e.GET("/reservation-statuses", reservationsHandler.Statuses, guard)

	// --- Administrator views ---
	admin := e.Group("/admin", middleware.RequireRole(d.Sessions, d.AdminRole))
	admin.GET("/users", usersHandler.List)
	admin.POST("/users/:id/assign-role", usersHandler.AssignRole)
	admin.GET("/reservations", reservationsHandler.List)
	admin.GET("/reservations/analytics", reservationsHandler.Analytics)
	admin.GET("/categories", storeHandler.Categories)
	admin.POST("/products", storeHandler.CreateProduct)
	admin.PUT("/products/:id", storeHandler.UpdateProduct)
	admin.DELETE("/products/:id", storeHandler.DeleteProduct)

	return e
}

// requestLogger logs one line per request through zerolog.
func requestLogger(log zerolog.Logger) echo.MiddlewareFunc {
	return echomiddleware.RequestLoggerWithConfig(echomiddleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v echomiddleware.RequestLoggerValues) error {
			ev := log.Info()
			if v.Error != nil {
				ev = log.Warn().Err(v.Error)
			}
			ev.Str("method", v.Method).
				Str("uri", v.URI).
				Int("status", v.Status).
				Dur("latency", v.Latency).
				Str("request_id", v.RequestID).
				Msg("request")
			return nil
		},
	})
}
