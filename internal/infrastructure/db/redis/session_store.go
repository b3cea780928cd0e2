package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/petcare/petcare-client/internal/core/domain"
)

const defaultPrefix = "petcare:session"

// SessionStore keeps the session under two keys:
// <prefix>:authToken and <prefix>:user. Both are written in one MULTI/EXEC.
type SessionStore struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
}

// NewSessionStore wraps client. A zero ttl keeps the keys until cleared.
func NewSessionStore(client *redis.Client, prefix string, ttl time.Duration) *SessionStore {
	if prefix == "" {
		prefix = defaultPrefix
	}
	return &SessionStore{client: client, prefix: prefix, ttl: ttl}
}

func (s *SessionStore) Load(ctx context.Context) (domain.StoredSession, error) {
	vals, err := s.client.MGet(ctx, s.tokenKey(), s.userKey()).Result()
	if err != nil {
		return domain.StoredSession{}, fmt.Errorf("load session: %w", err)
	}

	var stored domain.StoredSession
	if tok, ok := vals[0].(string); ok {
		stored.Token = tok
	}
	if raw, ok := vals[1].(string); ok && raw != "" {
		var user domain.Profile
		if err := json.Unmarshal([]byte(raw), &user); err != nil {
			return domain.StoredSession{}, fmt.Errorf("decode stored profile: %w", err)
		}
		stored.User = &user
	}
	return stored, nil
}

func (s *SessionStore) Save(ctx context.Context, token string, user *domain.Profile) error {
	if user == nil {
		return errors.New("save session: profile is required")
	}
	raw, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("encode profile: %w", err)
	}
	_, err = s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, s.tokenKey(), token, s.ttl)
		pipe.Set(ctx, s.userKey(), raw, s.ttl)
		return nil
	})
	if err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}

func (s *SessionStore) Clear(ctx context.Context) error {
	if err := s.client.Del(ctx, s.tokenKey(), s.userKey()).Err(); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	return nil
}

// Ping reports whether Redis is reachable; used by the readiness probe.
func (s *SessionStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

func (s *SessionStore) tokenKey() string { return s.prefix + ":authToken" }
func (s *SessionStore) userKey() string  { return s.prefix + ":user" }
