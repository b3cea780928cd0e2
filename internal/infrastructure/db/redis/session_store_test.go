package redis

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/petcare/petcare-client/internal/core/domain"
)

// These tests need a live Redis; set REDIS_TEST_ADDR to run them.
func testStore(t *testing.T) *SessionStore {
	t.Helper()
	addr := os.Getenv("REDIS_TEST_ADDR")
	if addr == "" {
		t.Skip("REDIS_TEST_ADDR not set")
	}
	client, err := Connect(context.Background(), Config{Addr: addr, DB: 15, ClientName: "petcare-test"})
	if err != nil {
		t.Fatalf("connect: %v", err)
	}
	t.Cleanup(func() { _ = client.Close() })
	store := NewSessionStore(client, "petcare:test:"+t.Name(), time.Minute)
	t.Cleanup(func() { _ = store.Clear(context.Background()) })
	return store
}

func TestSessionStore_SaveLoadClear(t *testing.T) {
	store := testStore(t)
	ctx := context.Background()

	user := &domain.Profile{ID: 7, Username: "alice", Email: "alice@example.com"}
	if err := store.Save(ctx, "tok-1", user); err != nil {
		t.Fatalf("Save: %v", err)
	}

	got, err := store.Load(ctx)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got.Token != "tok-1" || got.User == nil || got.User.Email != "alice@example.com" {
		t.Fatalf("unexpected session: %+v", got)
	}

	if err := store.Clear(ctx); err != nil {
		t.Fatalf("Clear: %v", err)
	}
	got, err = store.Load(ctx)
	if err != nil {
		t.Fatalf("Load after clear: %v", err)
	}
	if got.Token != "" || got.User != nil {
		t.Fatalf("expected empty session, got %+v", got)
	}
}

func TestRevocationList(t *testing.T) {
	store := testStore(t)
	ctx := context.Background()
	list := NewRevocationList(store.client)

	if err := list.Revoke(ctx, t.Name(), time.Now().Add(time.Minute)); err != nil {
		t.Fatalf("Revoke: %v", err)
	}
	revoked, err := list.IsRevoked(ctx, t.Name())
	if err != nil || !revoked {
		t.Fatalf("expected revoked, got %v %v", revoked, err)
	}
	t.Cleanup(func() { _ = store.client.Del(ctx, list.key(t.Name())).Err() })
}
