package app

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/petcare/petcare-client/internal/infrastructure/config"
	"github.com/petcare/petcare-client/pkg/logger"
)

func TestNewServer_MemoryStore(t *testing.T) {
	t.Cleanup(logger.Reset)
	cfg := &config.Config{
		Port:     "0",
		LogLevel: "error",
		API:      config.APIConfig{BaseURL: "http://127.0.0.1:1/api/", Timeout: time.Second, AdminRole: "Administrador"},
		Session:  config.SessionConfig{Store: config.StoreMemory},
	}

	a, err := NewServer(context.Background(), cfg)
	if err != nil {
		t.Fatalf("NewServer: %v", err)
	}

	rec := httptest.NewRecorder()
	a.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 from liveness, got %d", rec.Code)
	}

	// Nothing has run Initialize yet.
	rec = httptest.NewRecorder()
	a.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health/ready", nil))
	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503 before initialization, got %d", rec.Code)
	}
}

func TestNewServer_RejectsBadBaseURL(t *testing.T) {
	t.Cleanup(logger.Reset)
	cfg := &config.Config{
		Port:    "0",
		API:     config.APIConfig{BaseURL: "ftp://backend", AdminRole: "Administrador"},
		Session: config.SessionConfig{Store: config.StoreMemory},
	}

	if _, err := NewServer(context.Background(), cfg); err == nil {
		t.Fatalf("expected error for unsupported scheme")
	}
}

func TestNewDevAPI_SeedsAdministrator(t *testing.T) {
	t.Cleanup(logger.Reset)
	cfg := &config.DevAPIConfig{
		Port:       "0",
		LogLevel:   "error",
		JWTSecret:  "secret",
		TokenTTL:   time.Hour,
		Storage:    "memory",
		Revocation: "memory",
		Admin:      config.AdminSeedConfig{Username: "root", Email: "root@example.com", Password: "rootpass"},
	}

	a, err := NewDevAPI(context.Background(), cfg)
	if err != nil {
		t.Fatalf("NewDevAPI: %v", err)
	}

	body := strings.NewReader(`{"username_or_email":"root","password":"rootpass"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/login/", body)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	a.Handler().ServeHTTP(rec, req)
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), `"token"`) {
		t.Fatalf("expected seeded admin to log in, got %d %s", rec.Code, rec.Body.String())
	}
}

func TestRun_StopsOnCancel(t *testing.T) {
	t.Cleanup(logger.Reset)
	cfg := &config.DevAPIConfig{
		Port:       "0",
		LogLevel:   "error",
		JWTSecret:  "secret",
		Storage:    "memory",
		Revocation: "memory",
	}
	a, err := NewDevAPI(context.Background(), cfg)
	if err != nil {
		t.Fatalf("NewDevAPI: %v", err)
	}

	closed := false
	a.closers = append(a.closers, func(context.Context) error { closed = true; return nil })

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- a.Run(ctx) }()
	cancel()

	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("Run returned error: %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatalf("Run did not return after cancel")
	}
	if !closed {
		t.Fatalf("expected closers to run")
	}
}
