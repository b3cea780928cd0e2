package app

import (
	"context"
	"fmt"

	"github.com/petcare/petcare-client/internal/devapi"
	"github.com/petcare/petcare-client/internal/infrastructure/config"
	mongodb "github.com/petcare/petcare-client/internal/infrastructure/db/mongo"
	redisdb "github.com/petcare/petcare-client/internal/infrastructure/db/redis"
	"github.com/petcare/petcare-client/pkg/logger"
)

// NewDevAPI builds the development backend.
func NewDevAPI(ctx context.Context, cfg *config.DevAPIConfig) (*App, error) {
	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  cfg.IsDevelopment(),
		Service: "petcare-devapi",
	})

	a := &App{
		name:            "development backend",
		addr:            ":" + cfg.Port,
		log:             log,
		shutdownTimeout: cfg.ShutdownTimeout,
	}

	var repo devapi.AccountRepository = devapi.NewMemoryAccountRepository()
	if cfg.Storage == "mongo" {
		store, err := mongodb.Connect(ctx, mongodb.Config{
			URI:      cfg.Mongo.URI,
			Database: cfg.Mongo.Database,
			AppName:  "petcare-devapi",
		})
		if err != nil {
			return nil, err
		}
		a.closers = append(a.closers, store.Close)

		accounts := mongodb.NewAccountRepository(store.DB)
		if err := accounts.EnsureIndexes(ctx); err != nil {
			a.close()
			return nil, fmt.Errorf("ensure indexes: %w", err)
		}
		repo = accounts
	}

	var revoked devapi.RevocationList = devapi.NewMemoryRevocationList()
	if cfg.Revocation == "redis" {
		client, err := redisdb.Connect(ctx, redisdb.Config{
			Addr:       cfg.Redis.Addr,
			Password:   cfg.Redis.Password,
			DB:         cfg.Redis.DB,
			ClientName: "petcare-devapi",
		})
		if err != nil {
			a.close()
			return nil, fmt.Errorf("connect redis: %w", err)
		}
		a.closers = append(a.closers, func(context.Context) error { return client.Close() })
		revoked = redisdb.NewRevocationList(client)
	}

	svc := devapi.NewAuthService(repo, revoked, cfg.JWTSecret, cfg.TokenTTL)
	if cfg.Admin.Username != "" {
		admin, err := svc.EnsureAdmin(ctx, cfg.Admin.Username, cfg.Admin.Email, cfg.Admin.Password)
		if err != nil {
			a.close()
			return nil, fmt.Errorf("seed administrator: %w", err)
		}
		log.Info().Str("username", admin.Username).Msg("administrator ready")
	}

	a.echo = devapi.NewRouter(svc, log)

	log.Info().
		Str("storage", cfg.Storage).
		Str("revocation", cfg.Revocation).
		Msg("development backend configured")
	return a, nil
}
