package apiclient

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/petcare/petcare-client/internal/core/domain"
)

func TestLogin_SendsIdentifier(t *testing.T) {
	e := echo.New()
	e.POST("/api/login/", func(c echo.Context) error {
		var body map[string]string
		if err := json.NewDecoder(c.Request().Body).Decode(&body); err != nil {
			t.Fatalf("decode body: %v", err)
		}
		if body["username_or_email"] != "alice" || body["password"] != "secret" {
			t.Fatalf("unexpected body: %+v", body)
		}
		if c.Request().Header.Get("Authorization") != "" {
			t.Fatalf("login must not carry a token")
		}
		return c.JSON(http.StatusOK, map[string]any{"token": "tok-1", "user_id": 7})
	})
	client := newTestClient(t, e)

	token, err := client.Login(context.Background(), domain.Credentials{Identifier: "alice", Password: "secret"})
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if token != "tok-1" {
		t.Fatalf("expected tok-1, got %q", token)
	}
}

func TestRegister_OmitsConfirmation(t *testing.T) {
	e := echo.New()
	e.POST("/api/register/", func(c echo.Context) error {
		var body map[string]any
		if err := json.NewDecoder(c.Request().Body).Decode(&body); err != nil {
			t.Fatalf("decode body: %v", err)
		}
		if _, ok := body["password_confirmation"]; ok {
			t.Fatalf("confirmation must not be sent: %+v", body)
		}
		return c.JSON(http.StatusCreated, map[string]any{
			"token": "tok-2",
			"user":  map[string]any{"id": 9, "username": "bob", "email": "bob@example.com"},
		})
	})
	client := newTestClient(t, e)

	resp, err := client.Register(context.Background(), domain.Registration{
		Username: "bob", Email: "bob@example.com", Password: "pw", PasswordConfirmation: "pw",
	})
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if resp.Token != "tok-2" || resp.User == nil || resp.User.ID != 9 {
		t.Fatalf("unexpected response: %+v", resp)
	}
}

func TestUpdateProfile_SendsOnlyChangedFields(t *testing.T) {
	e := echo.New()
	e.PATCH("/api/profile/", func(c echo.Context) error {
		if c.Request().Header.Get("Authorization") != "Token tok-7" {
			t.Fatalf("unexpected auth header %q", c.Request().Header.Get("Authorization"))
		}
		var body map[string]any
		if err := json.NewDecoder(c.Request().Body).Decode(&body); err != nil {
			t.Fatalf("decode body: %v", err)
		}
		if len(body) != 1 || body["email"] != "new@x.com" {
			t.Fatalf("expected only email, got %+v", body)
		}
		return c.JSON(http.StatusOK, domain.Profile{ID: 7, Username: "alice", Email: "new@x.com"})
	})
	client := newTestClient(t, e)

	email := "new@x.com"
	p, err := client.UpdateProfile(context.Background(), "tok-7", domain.ProfileUpdate{Email: &email})
	if err != nil {
		t.Fatalf("UpdateProfile: %v", err)
	}
	if p.Email != "new@x.com" {
		t.Fatalf("unexpected profile: %+v", p)
	}
}

func TestChangePassword_FieldErrors(t *testing.T) {
	e := echo.New()
	e.POST("/api/change-password/", func(c echo.Context) error {
		return c.JSON(http.StatusBadRequest, map[string]string{"old_password": "La contraseña actual es incorrecta."})
	})
	client := newTestClient(t, e)

	err := client.ChangePassword(context.Background(), "tok", domain.PasswordChange{
		OldPassword: "wrong", NewPassword: "newpassword", ConfirmNewPassword: "newpassword",
	})
	de := domain.AsError(err)
	if de == nil || de.Kind != domain.KindValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
	if de.Field("old_password") != "La contraseña actual es incorrecta." {
		t.Fatalf("unexpected fields: %+v", de.Fields)
	}
}

func TestAssignRole(t *testing.T) {
	e := echo.New()
	e.POST("/api/admin/users/:id/assign-role/", func(c echo.Context) error {
		if c.Param("id") != "12" {
			t.Fatalf("unexpected id %q", c.Param("id"))
		}
		var body map[string]string
		_ = json.NewDecoder(c.Request().Body).Decode(&body)
		if body["role_name"] != domain.RoleAdministrator {
			t.Fatalf("unexpected body %+v", body)
		}
		return c.JSON(http.StatusOK, map[string]string{"detail": "ok"})
	})
	client := newTestClient(t, e)
	client.SetTokenSource(staticToken("admin-token"))

	if err := client.AssignRole(context.Background(), 12, domain.RoleAdministrator); err != nil {
		t.Fatalf("AssignRole: %v", err)
	}
}
