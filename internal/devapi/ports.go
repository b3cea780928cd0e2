package devapi

import (
	"context"
	"time"
)

// AccountRepository persists accounts. IDs are assigned by the repository
// and are positive and increasing.
type AccountRepository interface {
	Create(ctx context.Context, acct *Account) (*Account, error)
	FindByID(ctx context.Context, id int64) (*Account, error)
	FindByUsername(ctx context.Context, username string) (*Account, error)
	FindByEmail(ctx context.Context, email string) (*Account, error)
	Update(ctx context.Context, acct *Account) error
	List(ctx context.Context) ([]*Account, error)
}

// RevocationList remembers logged-out token ids.
type RevocationList interface {
	IsRevoked(ctx context.Context, id string) (bool, error)
	Revoke(ctx context.Context, id string, expiresAt time.Time) error
}
