package devapi

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"
)

// MemoryAccountRepository keeps accounts in process memory.
type MemoryAccountRepository struct {
	mu     sync.RWMutex
	byID   map[int64]*Account
	nextID int64
}

func NewMemoryAccountRepository() *MemoryAccountRepository {
	return &MemoryAccountRepository{byID: make(map[int64]*Account)}
}

func (r *MemoryAccountRepository) Create(_ context.Context, acct *Account) (*Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, a := range r.byID {
		if a.Username == acct.Username || strings.EqualFold(a.Email, acct.Email) {
			return nil, ErrAccountExists
		}
	}
	r.nextID++
	created := cloneAccount(acct)
	created.ID = r.nextID
	r.byID[created.ID] = created
	return cloneAccount(created), nil
}

func (r *MemoryAccountRepository) FindByID(_ context.Context, id int64) (*Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	a, ok := r.byID[id]
	if !ok {
		return nil, ErrAccountNotFound
	}
	return cloneAccount(a), nil
}

func (r *MemoryAccountRepository) FindByUsername(_ context.Context, username string) (*Account, error) {
	return r.find(func(a *Account) bool { return a.Username == username })
}

func (r *MemoryAccountRepository) FindByEmail(_ context.Context, email string) (*Account, error) {
	return r.find(func(a *Account) bool { return strings.EqualFold(a.Email, email) })
}

func (r *MemoryAccountRepository) Update(_ context.Context, acct *Account) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byID[acct.ID]; !ok {
		return ErrAccountNotFound
	}
	r.byID[acct.ID] = cloneAccount(acct)
	return nil
}

func (r *MemoryAccountRepository) List(_ context.Context) ([]*Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*Account, 0, len(r.byID))
	for _, a := range r.byID {
		out = append(out, cloneAccount(a))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *MemoryAccountRepository) find(match func(*Account) bool) (*Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, a := range r.byID {
		if match(a) {
			return cloneAccount(a), nil
		}
	}
	return nil, ErrAccountNotFound
}

// MemoryRevocationList keeps revoked token ids until they expire.
type MemoryRevocationList struct {
	mu      sync.Mutex
	entries map[string]time.Time
	now     func() time.Time
}

func NewMemoryRevocationList() *MemoryRevocationList {
	return &MemoryRevocationList{entries: make(map[string]time.Time), now: time.Now}
}

func (l *MemoryRevocationList) IsRevoked(_ context.Context, id string) (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	exp, ok := l.entries[id]
	if !ok {
		return false, nil
	}
	if !l.now().Before(exp) {
		delete(l.entries, id)
		return false, nil
	}
	return true, nil
}

func (l *MemoryRevocationList) Revoke(_ context.Context, id string, expiresAt time.Time) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.entries[id] = expiresAt
	return nil
}
