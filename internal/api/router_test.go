package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/petcare/petcare-client/internal/core/domain"
	"github.com/petcare/petcare-client/internal/core/service"
	"github.com/petcare/petcare-client/internal/infrastructure/apiclient"
	"github.com/petcare/petcare-client/internal/infrastructure/storage/memory"
)

// fakeBackend answers the profile endpoint for "good" and rejects every pets
// call and every profile change with 401, as the backend does once a token
// was revoked elsewhere.
func fakeBackend(t *testing.T, role string) string {
	t.Helper()
	e := echo.New()
	e.GET("/api/profile/", func(c echo.Context) error {
		if c.Request().Header.Get("Authorization") != "Token good" {
			return c.JSON(http.StatusUnauthorized, map[string]string{"detail": "Token inválido."})
		}
		return c.JSON(http.StatusOK, domain.Profile{ID: 7, Username: "alice", Role: role})
	})
	revoked := func(c echo.Context) error {
		return c.JSON(http.StatusUnauthorized, map[string]string{"detail": "Token inválido."})
	}
	e.GET("/api/pets/", revoked)
	e.PATCH("/api/profile/", revoked)
	e.POST("/api/change-password/", revoked)
	e.GET("/api/reservations/:id/", func(c echo.Context) error {
		return c.JSON(http.StatusOK, domain.Reservation{Observations: "Baño"})
	})
	e.GET("/api/reservations/analytics/", func(c echo.Context) error {
		return c.JSON(http.StatusOK, []domain.ReservationCount{})
	})
	e.HEAD("/api/", func(c echo.Context) error { return c.NoContent(http.StatusOK) })

	srv := httptest.NewServer(e)
	t.Cleanup(srv.Close)
	return srv.URL + "/api/"
}

func newTestServer(t *testing.T, role string, seedToken string) (*echo.Echo, *service.SessionManager, *memory.SessionStore) {
	t.Helper()
	client, err := apiclient.New(apiclient.Config{BaseURL: fakeBackend(t, role)}, zerolog.Nop())
	if err != nil {
		t.Fatalf("apiclient.New: %v", err)
	}
	store := memory.NewSessionStore()
	if seedToken != "" {
		store.Seed(seedToken, &domain.Profile{ID: 7, Username: "alice"})
	}
	sessions := service.NewSessionManager(client, store, domain.RoleAdministrator, zerolog.Nop())
	client.SetTokenSource(sessions)
	client.OnUnauthorized(sessions.Expire)

	e := NewRouter(Deps{Sessions: sessions, Backend: client, AdminRole: domain.RoleAdministrator, Log: zerolog.Nop()})
	return e, sessions, store
}

func get(e *echo.Echo, target string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec
}

func TestRouter_LoadingBeforeInitialize(t *testing.T) {
	e, _, _ := newTestServer(t, domain.RoleCustomer, "good")

	if rec := get(e, "/pets"); rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503 while initializing, got %d", rec.Code)
	}
	if rec := get(e, "/health/ready"); rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected not ready while initializing, got %d", rec.Code)
	}
}

func TestRouter_AnonymousRedirectsToLogin(t *testing.T) {
	e, sessions, _ := newTestServer(t, domain.RoleCustomer, "")
	sessions.Initialize(context.Background())

	rec := get(e, "/pets")
	if rec.Code != http.StatusSeeOther || rec.Header().Get(echo.HeaderLocation) != "/login?next=%2Fpets" {
		t.Fatalf("expected login redirect, got %d %q", rec.Code, rec.Header().Get(echo.HeaderLocation))
	}
	if rec := get(e, "/health/ready"); rec.Code != http.StatusOK {
		t.Fatalf("expected ready, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestRouter_RejectedTokenExpiresSession(t *testing.T) {
	e, sessions, store := newTestServer(t, domain.RoleCustomer, "good")
	if snap := sessions.Initialize(context.Background()); snap.Status != domain.StatusAuthenticated {
		t.Fatalf("expected authenticated, got %s", snap.Status)
	}

	rec := get(e, "/pets")

	if rec.Code != http.StatusSeeOther || !strings.HasPrefix(rec.Header().Get(echo.HeaderLocation), "/login") {
		t.Fatalf("expected silent redirect to login, got %d %q", rec.Code, rec.Header().Get(echo.HeaderLocation))
	}
	if sessions.Snapshot().Status != domain.StatusAnonymous {
		t.Fatalf("expected session expired")
	}
	if stored, _ := store.Load(context.Background()); stored.Token != "" {
		t.Fatalf("expected storage cleared")
	}
}

func TestRouter_RejectedTokenOnProfileChangeRedirects(t *testing.T) {
	tests := []struct {
		name, method, target, body string
	}{
		{"update profile", http.MethodPatch, "/profile", `{"first_name":"Al"}`},
		{"change password", http.MethodPost, "/profile/change-password",
			`{"old_password":"secret123","new_password":"newpassword","confirm_new_password":"newpassword"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e, sessions, store := newTestServer(t, domain.RoleCustomer, "good")
			if snap := sessions.Initialize(context.Background()); snap.Status != domain.StatusAuthenticated {
				t.Fatalf("expected authenticated, got %s", snap.Status)
			}

			req := httptest.NewRequest(tt.method, tt.target, strings.NewReader(tt.body))
			req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
			rec := httptest.NewRecorder()
			e.ServeHTTP(rec, req)

			if rec.Code != http.StatusSeeOther || !strings.HasPrefix(rec.Header().Get(echo.HeaderLocation), "/login") {
				t.Fatalf("expected silent redirect to login, got %d %q %s", rec.Code, rec.Header().Get(echo.HeaderLocation), rec.Body.String())
			}
			if sessions.Snapshot().Status != domain.StatusAnonymous {
				t.Fatalf("expected session expired")
			}
			if stored, _ := store.Load(context.Background()); stored.Token != "" {
				t.Fatalf("expected storage cleared")
			}
		})
	}
}

func TestRouter_ReservationDetail(t *testing.T) {
	e, sessions, _ := newTestServer(t, domain.RoleCustomer, "good")
	sessions.Initialize(context.Background())

	rec := get(e, "/reservations/"+uuid.NewString())
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), "Baño") {
		t.Fatalf("expected reservation, got %d %s", rec.Code, rec.Body.String())
	}
}

func TestRouter_AdminRoutes(t *testing.T) {
	e, sessions, _ := newTestServer(t, domain.RoleCustomer, "good")
	sessions.Initialize(context.Background())

	rec := get(e, "/admin/reservations/analytics")
	if rec.Code != http.StatusSeeOther || rec.Header().Get(echo.HeaderLocation) != "/dashboard" {
		t.Fatalf("expected fallback redirect for customer, got %d %q", rec.Code, rec.Header().Get(echo.HeaderLocation))
	}

	e, sessions, _ = newTestServer(t, domain.RoleAdministrator, "good")
	sessions.Initialize(context.Background())
	if rec := get(e, "/admin/reservations/analytics"); rec.Code != http.StatusOK {
		t.Fatalf("expected 200 for administrator, got %d", rec.Code)
	}
}

func TestRouter_UnknownPathIsNotFound(t *testing.T) {
	e, sessions, _ := newTestServer(t, domain.RoleCustomer, "")
	sessions.Initialize(context.Background())

	if rec := get(e, "/nope"); rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestRouter_Metrics(t *testing.T) {
	e, _, _ := newTestServer(t, domain.RoleCustomer, "")

	rec := get(e, "/metrics")
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), "petcare_") {
		t.Fatalf("expected petcare metrics, got %d", rec.Code)
	}
}
