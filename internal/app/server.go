package app

import (
	"context"
	"fmt"

	"github.com/petcare/petcare-client/internal/api"
	"github.com/petcare/petcare-client/internal/api/handler"
	"github.com/petcare/petcare-client/internal/core/ports"
	"github.com/petcare/petcare-client/internal/core/service"
	"github.com/petcare/petcare-client/internal/infrastructure/apiclient"
	"github.com/petcare/petcare-client/internal/infrastructure/config"
	redisdb "github.com/petcare/petcare-client/internal/infrastructure/db/redis"
	"github.com/petcare/petcare-client/internal/infrastructure/storage/file"
	"github.com/petcare/petcare-client/internal/infrastructure/storage/memory"
	"github.com/petcare/petcare-client/pkg/logger"
)

// NewServer builds the companion server. The session manager starts in the
// initializing state; Run resolves the stored session in the background while
// the guards answer "loading".
func NewServer(ctx context.Context, cfg *config.Config) (*App, error) {
	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  cfg.IsDevelopment(),
		Service: "petcare",
	})

	a := &App{
		name:            "companion server",
		addr:            ":" + cfg.Port,
		log:             log,
		shutdownTimeout: cfg.ShutdownTimeout,
	}

	checks := map[string]handler.Pinger{}
	var store ports.SessionStore
	switch cfg.Session.Store {
	case config.StoreFile:
		fs, err := file.NewSessionStore(cfg.Session.File)
		if err != nil {
			return nil, fmt.Errorf("create file session store: %w", err)
		}
		store = fs
	case config.StoreRedis:
		client, err := redisdb.Connect(ctx, redisdb.Config{
			Addr:       cfg.Redis.Addr,
			Password:   cfg.Redis.Password,
			DB:         cfg.Redis.DB,
			ClientName: "petcare",
		})
		if err != nil {
			return nil, fmt.Errorf("connect redis: %w", err)
		}
		a.closers = append(a.closers, func(context.Context) error { return client.Close() })
		rs := redisdb.NewSessionStore(client, cfg.Session.KeyPrefix, cfg.Session.TTL)
		checks["session_store"] = rs
		store = rs
	default:
		store = memory.NewSessionStore()
	}

	client, err := apiclient.New(apiclient.Config{
		BaseURL: cfg.API.BaseURL,
		Timeout: cfg.API.Timeout,
	}, log)
	if err != nil {
		a.close()
		return nil, fmt.Errorf("create api client: %w", err)
	}

	sessions := service.NewSessionManager(client, store, cfg.API.AdminRole, log)
	client.SetTokenSource(sessions)
	client.OnUnauthorized(sessions.Expire)

	a.echo = api.NewRouter(api.Deps{
		Sessions:  sessions,
		Backend:   client,
		AdminRole: cfg.API.AdminRole,
		Checks:    checks,
		Log:       log,
	})
	a.onStart = func(ctx context.Context) {
		go func() {
			snap := sessions.Initialize(ctx)
			log.Info().Str("status", string(snap.Status)).Msg("session initialized")
		}()
	}

	log.Info().
		Str("store", cfg.Session.Store).
		Str("backend", cfg.API.BaseURL).
		Msg("companion server configured")
	return a, nil
}
