// Package file persists the session as a small JSON document holding the
// bearer token and the cached profile.
package file

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/petcare/petcare-client/internal/core/domain"
)

type SessionStore struct {
	path string
	mu   sync.Mutex
}

func NewSessionStore(path string) (*SessionStore, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, fmt.Errorf("session file path is required")
	}
	return &SessionStore{path: path}, nil
}

func (s *SessionStore) Load(_ context.Context) (domain.StoredSession, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	b, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return domain.StoredSession{}, nil
		}
		return domain.StoredSession{}, fmt.Errorf("read session file: %w", err)
	}
	if len(b) == 0 {
		return domain.StoredSession{}, nil
	}

	var stored domain.StoredSession
	if err := json.Unmarshal(b, &stored); err != nil {
		return domain.StoredSession{}, fmt.Errorf("decode session file: %w", err)
	}
	return stored, nil
}

func (s *SessionStore) Save(_ context.Context, token string, user *domain.Profile) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	b, err := json.MarshalIndent(domain.StoredSession{Token: token, User: user}, "", "  ")
	if err != nil {
		return fmt.Errorf("encode session file: %w", err)
	}
	return s.writeLocked(b)
}

func (s *SessionStore) Clear(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove session file: %w", err)
	}
	return nil
}

// writeLocked replaces the file through a rename so readers see either the
// old pair or the new one.
func (s *SessionStore) writeLocked(b []byte) error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return fmt.Errorf("mkdir session dir: %w", err)
	}
	tmp, err := os.CreateTemp(dir, ".session-*.json")
	if err != nil {
		return fmt.Errorf("create temp session file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(b); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("write session file: %w", err)
	}
	if err := tmp.Chmod(0o600); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("chmod session file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close session file: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return fmt.Errorf("replace session file: %w", err)
	}
	return nil
}
