package validate

import (
	"errors"
	"testing"

	"github.com/petcare/petcare-client/internal/core/domain"
)

func TestStruct_RegistrationMismatchNamesConfirmation(t *testing.T) {
	v := New()
	err := v.Struct(domain.Registration{
		Username:             "alice",
		Email:                "alice@example.com",
		Password:             "secret123",
		PasswordConfirmation: "secret124",
	})

	var de *domain.Error
	if !errors.As(err, &de) {
		t.Fatalf("expected *domain.Error, got %T", err)
	}
	if de.Kind != domain.KindValidation {
		t.Fatalf("expected validation kind, got %s", de.Kind)
	}
	if got := de.Field("password_confirmation"); got != "password_confirmation must match password" {
		t.Fatalf("unexpected field message: %q", got)
	}
	if len(de.Fields) != 1 {
		t.Fatalf("expected only the confirmation field, got %+v", de.Fields)
	}
}

func TestStruct_CredentialsRequired(t *testing.T) {
	v := New()
	err := v.Struct(domain.Credentials{})

	var de *domain.Error
	if !errors.As(err, &de) {
		t.Fatalf("expected *domain.Error, got %v", err)
	}
	if de.Field("username_or_email") != "username_or_email is required" {
		t.Fatalf("unexpected identifier message: %+v", de.Fields)
	}
	if de.Field("password") != "password is required" {
		t.Fatalf("unexpected password message: %+v", de.Fields)
	}
}

func TestStruct_ProfileUpdateEmail(t *testing.T) {
	v := New()
	bad := "not-an-email"
	if err := v.Struct(domain.ProfileUpdate{Email: &bad}); !domain.IsKind(err, domain.KindValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}

	good := "new@x.com"
	if err := v.Struct(domain.ProfileUpdate{Email: &good}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := v.Struct(domain.ProfileUpdate{}); err != nil {
		t.Fatalf("empty update should pass validation: %v", err)
	}
}

func TestStruct_PasswordChange(t *testing.T) {
	v := New()
	err := v.Struct(domain.PasswordChange{OldPassword: "old", NewPassword: "longenough", ConfirmNewPassword: "different1"})

	var de *domain.Error
	if !errors.As(err, &de) {
		t.Fatalf("expected *domain.Error, got %v", err)
	}
	if de.Field("confirm_new_password") != "confirm_new_password must match new_password" {
		t.Fatalf("unexpected message: %+v", de.Fields)
	}
}
