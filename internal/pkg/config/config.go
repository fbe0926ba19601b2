package config

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

// Storage drivers.
const (
	DriverMemory = "memory"
	DriverRedis  = "redis"
	DriverMongo  = "mongo"
)

const devSecret = "dev-secret-change-me"

type Config struct {
	Port      string        `env:"PORT,      default=8080"`
	Env       string        `env:"ENV,       default=development"`
	LogLevel  string        `env:"LOG_LEVEL, default=info"`
	JWTSecret string        `env:"JWT_SECRET"`
	TokenTTL  time.Duration `env:"TOKEN_TTL, default=720h"`

	StorageDriver string `env:"STORAGE_DRIVER, default=memory"`

	Mongo   MongoConfig
	Redis   RedisConfig
	Catalog CatalogConfig
	Admin   AdminConfig

	NoticeTTL          time.Duration `env:"NOTICE_TTL,           default=3s"`
	EmailCheckDebounce time.Duration `env:"EMAIL_CHECK_DEBOUNCE, default=500ms"`
	BcryptCost         int           `env:"BCRYPT_COST,          default=10"`
	ActivityWorkers    int           `env:"ACTIVITY_WORKERS,     default=4"`
	WorkspaceIdle      time.Duration `env:"WORKSPACE_IDLE,       default=30m"`
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=telemedicina"`
}

type RedisConfig struct {
	Addr     string `env:"REDIS_ADDR,     default=localhost:6379"`
	Password string `env:"REDIS_PASSWORD"`
	DB       int    `env:"REDIS_DB,       default=0"`
	Prefix   string `env:"REDIS_PREFIX,   default=telemed:"`
}

// CatalogConfig points at the mock REST backend. An empty BaseURL disables
// remote seeding and the specialty catalogue answers with empty lists.
type CatalogConfig struct {
	BaseURL string        `env:"CATALOG_BASE_URL"`
	Timeout time.Duration `env:"CATALOG_TIMEOUT, default=5s"`
}

type AdminConfig struct {
	Email    string `env:"ADMIN_EMAIL,    default=admin@telemedicina.cl"`
	Password string `env:"ADMIN_PASSWORD, default=Admin1234"`
	Name     string `env:"ADMIN_NAME,     default=Administrador"`
	Handle   string `env:"ADMIN_HANDLE,   default=admin"`
}

// IsDevelopment reports whether the service runs in a development environment.
func (c *Config) IsDevelopment() bool {
	return c.Env == "development" || c.Env == "dev" || c.Env == "local"
}

// Validate checks cross-field rules envconfig cannot express.
func (c *Config) Validate() error {
	var errs []error
	switch c.StorageDriver {
	case DriverMemory, DriverRedis, DriverMongo:
	default:
		errs = append(errs, fmt.Errorf("STORAGE_DRIVER must be one of memory, redis, mongo (got %q)", c.StorageDriver))
	}
	if c.JWTSecret == "" {
		if !c.IsDevelopment() {
			errs = append(errs, errors.New("JWT_SECRET is required outside development"))
		}
		c.JWTSecret = devSecret
	}
	if c.TokenTTL <= 0 {
		errs = append(errs, errors.New("TOKEN_TTL must be positive"))
	}
	if c.ActivityWorkers <= 0 {
		errs = append(errs, errors.New("ACTIVITY_WORKERS must be positive"))
	}
	return errors.Join(errs...)
}

// Process reads configuration through lookuper and validates it.
func Process(ctx context.Context, lookuper envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{Target: &cfg, Lookuper: lookuper}); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Load reads configuration from environment variables using go-envconfig.
func Load() *Config {
	cfg, err := Process(context.Background(), envconfig.OsLookuper())
	if err != nil {
		panic(fmt.Sprintf("config: failed to load configuration: %v", err))
	}
	return cfg
}
