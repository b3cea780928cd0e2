package ports

import (
	"context"

	"github.com/petcare/petcare-client/internal/core/domain"
)

// SessionStore persists the bearer token and the cached profile between runs.
//
// Save and Clear always act on both keys at once; an implementation must not
// leave a token without its profile or the reverse.
type SessionStore interface {
	// Load returns the stored session. A missing session is not an error: it
	// yields a zero StoredSession.
	Load(ctx context.Context) (domain.StoredSession, error)
	Save(ctx context.Context, token string, user *domain.Profile) error
	Clear(ctx context.Context) error
}
