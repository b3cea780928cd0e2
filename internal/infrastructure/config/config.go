package config

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/sethvargo/go-envconfig"
)

// Session store back-ends selectable with SESSION_STORE.
const (
	StoreFile   = "file"
	StoreRedis  = "redis"
	StoreMemory = "memory"
)

// Config is the companion server configuration.
type Config struct {
	Port     string `env:"PORT,      default=3000"`
	Env      string `env:"ENV,       default=development"`
	LogLevel string `env:"LOG_LEVEL, default=info"`
	// ShutdownTimeout bounds graceful shutdown after SIGINT or SIGTERM.
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT, default=10s"`

	API     APIConfig
	Session SessionConfig
	Redis   RedisConfig
}

type APIConfig struct {
	BaseURL string        `env:"API_BASE_URL, default=http://localhost:8000/api/"`
	Timeout time.Duration `env:"API_TIMEOUT,  default=10s"`
	// AdminRole is the role name that unlocks the administrator views.
	AdminRole string `env:"ADMIN_ROLE, default=Administrador"`
}

type SessionConfig struct {
	Store     string `env:"SESSION_STORE,      default=file"`
	File      string `env:"SESSION_FILE,       default=.petcare/session.json"`
	KeyPrefix string `env:"SESSION_KEY_PREFIX, default=petcare:session"`
	// TTL bounds how long Redis keeps the stored session; zero keeps it until logout.
	TTL time.Duration `env:"SESSION_TTL, default=0s"`
}

type RedisConfig struct {
	Addr     string `env:"REDIS_ADDR,     default=localhost:6379"`
	Password string `env:"REDIS_PASSWORD"`
	DB       int    `env:"REDIS_DB,       default=0"`
}

// DevAPIConfig is the development backend configuration.
type DevAPIConfig struct {
	Port      string        `env:"DEVAPI_PORT, default=8000"`
	Env       string        `env:"ENV,         default=development"`
	LogLevel  string        `env:"LOG_LEVEL,   default=info"`
	JWTSecret string        `env:"JWT_SECRET,  default=petcare-dev-secret"`
	TokenTTL  time.Duration `env:"TOKEN_TTL,   default=24h"`

	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT, default=10s"`
	// Storage selects the user repository: "memory" or "mongo".
	Storage string `env:"DEVAPI_STORAGE, default=memory"`

	Mongo MongoConfig
	Redis RedisConfig
	// Revocation selects the token revocation list: "memory" or "redis".
	Revocation string `env:"DEVAPI_REVOCATION, default=memory"`

	Admin AdminSeedConfig
}

// AdminSeedConfig describes the administrator created at startup. Seeding is
// skipped when Username is empty.
type AdminSeedConfig struct {
	Username string `env:"DEVAPI_ADMIN_USERNAME"`
	Email    string `env:"DEVAPI_ADMIN_EMAIL"`
	Password string `env:"DEVAPI_ADMIN_PASSWORD"`
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=petcare"`
}

// Load reads the companion server configuration from environment variables
// using go-envconfig. A .env file in the working directory is loaded first
// when present; variables already set in the environment win.
func Load(ctx context.Context) (*Config, error) {
	_ = godotenv.Load()
	return load(ctx, envconfig.OsLookuper())
}

func load(ctx context.Context, l envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{Target: &cfg, Lookuper: l}); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// LoadDevAPI reads the development backend configuration.
func LoadDevAPI(ctx context.Context) (*DevAPIConfig, error) {
	_ = godotenv.Load()
	return loadDevAPI(ctx, envconfig.OsLookuper())
}

func loadDevAPI(ctx context.Context, l envconfig.Lookuper) (*DevAPIConfig, error) {
	var cfg DevAPIConfig
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{Target: &cfg, Lookuper: l}); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	if cfg.Storage != "memory" && cfg.Storage != "mongo" {
		return nil, fmt.Errorf("config: DEVAPI_STORAGE must be memory or mongo, got %q", cfg.Storage)
	}
	if cfg.Revocation != "memory" && cfg.Revocation != "redis" {
		return nil, fmt.Errorf("config: DEVAPI_REVOCATION must be memory or redis, got %q", cfg.Revocation)
	}
	if cfg.Admin.Username != "" && (cfg.Admin.Email == "" || cfg.Admin.Password == "") {
		return nil, fmt.Errorf("config: DEVAPI_ADMIN_EMAIL and DEVAPI_ADMIN_PASSWORD are required with DEVAPI_ADMIN_USERNAME")
	}
	return &cfg, nil
}

// IsDevelopment reports whether console-friendly logging should be used.
func (c *Config) IsDevelopment() bool {
	return strings.EqualFold(c.Env, "development")
}

func (c *DevAPIConfig) IsDevelopment() bool {
	return strings.EqualFold(c.Env, "development")
}

func (c *Config) validate() error {
	switch c.Session.Store {
	case StoreFile:
		if strings.TrimSpace(c.Session.File) == "" {
			return fmt.Errorf("config: SESSION_FILE is required when SESSION_STORE=%s", StoreFile)
		}
	case StoreRedis, StoreMemory:
	default:
		return fmt.Errorf("config: unknown SESSION_STORE %q", c.Session.Store)
	}
	if c.API.AdminRole == "" {
		return fmt.Errorf("config: ADMIN_ROLE must not be empty")
	}
	return nil
}
