package ports

import (
	"context"

	"github.com/petcare/petcare-client/internal/core/domain"
)

// SessionReader is the read side of the session used by route guards and the
// API client.
type SessionReader interface {
	Snapshot() domain.Session
	Token() string
	HasRole(role string) bool
	IsAdmin() bool
}

// SessionService is the full session manager contract consumed by views.
type SessionService interface {
	SessionReader

	Initialize(ctx context.Context) domain.Session
	Login(ctx context.Context, creds domain.Credentials) (*domain.Profile, error)
	Logout(ctx context.Context)
	Register(ctx context.Context, reg domain.Registration) (*domain.RegisterOutcome, error)
	UpdateProfile(ctx context.Context, update domain.ProfileUpdate) (*domain.Profile, error)
	ChangePassword(ctx context.Context, change domain.PasswordChange) error
	Expire(ctx context.Context)
	Subscribe(fn func(domain.Session)) (unsubscribe func())
}
