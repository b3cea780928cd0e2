package handler

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/petcare/petcare-client/internal/core/domain"
)

type stubUsersAPI struct {
	assignedID   int64
	assignedRole string
}

func (s *stubUsersAPI) ListUsers(context.Context) ([]domain.UserSummary, error) {
	return []domain.UserSummary{{ID: 7, Username: "alice", Role: domain.RoleCustomer}}, nil
}

func (s *stubUsersAPI) AssignRole(_ context.Context, id int64, role string) error {
	s.assignedID, s.assignedRole = id, role
	return nil
}

func TestUsersHandler_AssignRole(t *testing.T) {
	e := newValidatingEcho()
	stub := &stubUsersAPI{}
	handler := NewUsersHandler(stub)

	rec := httptest.NewRecorder()
	c := e.NewContext(jsonRequest(http.MethodPost, "/admin/users/7/assign-role", `{"role_name":"Administrador"}`), rec)
	c.SetParamNames("id")
	c.SetParamValues("7")

	if err := handler.AssignRole(c); err != nil {
		t.Fatalf("AssignRole returned error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if stub.assignedID != 7 || stub.assignedRole != domain.RoleAdministrator {
		t.Fatalf("unexpected backend call: %d %q", stub.assignedID, stub.assignedRole)
	}
}

func TestUsersHandler_AssignRole_RejectsBadInput(t *testing.T) {
	e := newValidatingEcho()
	stub := &stubUsersAPI{}
	handler := NewUsersHandler(stub)

	tests := []struct {
		name, id, body string
	}{
		{"non numeric id", "abc", `{"role_name":"Administrador"}`},
		{"zero id", "0", `{"role_name":"Administrador"}`},
		{"missing role", "7", `{}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := e.NewContext(jsonRequest(http.MethodPost, "/admin/users/x/assign-role", tt.body), httptest.NewRecorder())
			c.SetParamNames("id")
			c.SetParamValues(tt.id)

			err := handler.AssignRole(c)
			var he *echo.HTTPError
			if !errors.As(err, &he) && !domain.IsKind(err, domain.KindValidation) {
				t.Fatalf("expected a 400-class error, got %v", err)
			}
			if stub.assignedID != 0 {
				t.Fatalf("backend must not be called")
			}
		})
	}
}

func TestUsersHandler_List(t *testing.T) {
	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/admin/users", nil), rec)

	if err := NewUsersHandler(&stubUsersAPI{}).List(c); err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}
