package ports

import (
	"context"

	"github.com/petcare/petcare-client/internal/core/domain"
)

// RegisterResponse is what the backend answers to a sign-up. Token is empty
// when the backend does not sign the new user in.
type RegisterResponse struct {
	Token string          `json:"token,omitempty"`
	User  *domain.Profile `json:"user,omitempty"`
}

// AuthAPI is the part of the backend the session manager talks to. Calls that
// need a token receive it explicitly; these calls never trigger the client's
// unauthorized hook.
type AuthAPI interface {
	Login(ctx context.Context, creds domain.Credentials) (string, error)
	Profile(ctx context.Context, token string) (*domain.Profile, error)
	Register(ctx context.Context, reg domain.Registration) (*RegisterResponse, error)
	UpdateProfile(ctx context.Context, token string, update domain.ProfileUpdate) (*domain.Profile, error)
	Logout(ctx context.Context, token string) error
	ChangePassword(ctx context.Context, token string, change domain.PasswordChange) error
}
