package domain

import (
	"strings"
	"time"
)

const (
	RoleAdministrator = "Administrador"
	RoleCustomer      = "Cliente Regular"
)

// Profile is the backend's representation of the signed-in user.
type Profile struct {
	ID          int64  `json:"id"`
	Username    string `json:"username"`
	Email       string `json:"email"`
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	PhoneNumber string `json:"phone_number,omitempty"`
	Role        string `json:"role"`
}

// DisplayName returns "First Last", falling back to the username.
func (p *Profile) DisplayName() string {
	if p == nil {
		return ""
	}
	name := strings.TrimSpace(p.FirstName + " " + p.LastName)
	if name == "" {
		return p.Username
	}
	return name
}

// Clone returns a copy that can be handed to callers without sharing memory.
func (p *Profile) Clone() *Profile {
	if p == nil {
		return nil
	}
	c := *p
	return &c
}

// Credentials is the login input. Identifier is a username or an email.
type Credentials struct {
	Identifier string `json:"username_or_email" validate:"required"`
	Password   string `json:"password"          validate:"required"`
}

// Registration is the sign-up input. PasswordConfirmation is checked locally
// and never sent to the backend.
type Registration struct {
	Username             string `json:"username"              validate:"required"`
	Email                string `json:"email"                 validate:"required,email"`
	Password             string `json:"password"              validate:"required"`
	PasswordConfirmation string `json:"password_confirmation" validate:"required,eqfield=Password"`
	FirstName            string `json:"first_name,omitempty"`
	LastName             string `json:"last_name,omitempty"`
	PhoneNumber          string `json:"phone_number,omitempty"`
}

// RegisterOutcome reports the created profile and whether the session was
// signed in as part of the registration.
type RegisterOutcome struct {
	User     *Profile
	SignedIn bool
}

// ProfileUpdate is a partial profile; nil fields are left untouched.
type ProfileUpdate struct {
	Email       *string `json:"email,omitempty"        validate:"omitempty,email"`
	FirstName   *string `json:"first_name,omitempty"`
	LastName    *string `json:"last_name,omitempty"`
	PhoneNumber *string `json:"phone_number,omitempty"`
}

// Empty reports whether the update carries no field at all.
func (u ProfileUpdate) Empty() bool {
	return u.Email == nil && u.FirstName == nil && u.LastName == nil && u.PhoneNumber == nil
}

// PasswordChange is the change-password input.
type PasswordChange struct {
	OldPassword        string `json:"old_password"         validate:"required"`
	NewPassword        string `json:"new_password"         validate:"required,min=8"`
	ConfirmNewPassword string `json:"confirm_new_password" validate:"required,eqfield=NewPassword"`
}

// UserSummary is a row of the administrator user listing.
type UserSummary struct {
	ID          int64     `json:"id"`
	Username    string    `json:"username"`
	Email       string    `json:"email"`
	FirstName   string    `json:"first_name"`
	LastName    string    `json:"last_name"`
	PhoneNumber string    `json:"phone_number,omitempty"`
	Role        string    `json:"role"`
	IsActive    bool      `json:"is_active"`
	DateJoined  time.Time `json:"date_joined"`
}
