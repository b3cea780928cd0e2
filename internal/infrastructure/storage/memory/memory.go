// Package memory keeps the session in process memory. Nothing survives a
// restart; it backs tests and SESSION_STORE=memory.
package memory

import (
	"context"
	"sync"

	"github.com/petcare/petcare-client/internal/core/domain"
)

type SessionStore struct {
	mu      sync.RWMutex
	session domain.StoredSession

	// Saves and Clears count calls, for tests.
	Saves  int
	Clears int
}

func NewSessionStore() *SessionStore {
	return &SessionStore{}
}

// Seed sets the stored session as if a previous run had saved it.
func (s *SessionStore) Seed(token string, user *domain.Profile) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.session = domain.StoredSession{Token: token, User: user.Clone()}
}

func (s *SessionStore) Load(_ context.Context) (domain.StoredSession, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return domain.StoredSession{Token: s.session.Token, User: s.session.User.Clone()}, nil
}

func (s *SessionStore) Save(_ context.Context, token string, user *domain.Profile) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.session = domain.StoredSession{Token: token, User: user.Clone()}
	s.Saves++
	return nil
}

func (s *SessionStore) Clear(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.session = domain.StoredSession{}
	s.Clears++
	return nil
}
