package config

import (
	"context"
	"fmt"
	"time"

	"github.com/joho/godotenv"
	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port     string `env:"PORT,      default=8080"`
	Env      string `env:"ENV,       default=development"`
	LogLevel string `env:"LOG_LEVEL, default=info"`

	Backend    BackendConfig
	Session    SessionConfig
	Lists      ListConfig
	Uploads    UploadConfig
	Cloudinary CloudinaryConfig
	RateLimit  RateLimitConfig
	Mongo      MongoConfig
	Redis      RedisConfig

	AuditEnabled bool `env:"AUDIT_ENABLED, default=true"`
	AuditWorkers int  `env:"AUDIT_WORKERS, default=4"`
}

type BackendConfig struct {
	BaseURL string        `env:"BACKEND_BASE_URL, default=http://localhost:5000"`
	Timeout time.Duration `env:"BACKEND_TIMEOUT,  default=15s"`
}

type SessionConfig struct {
	IdleTTL         time.Duration `env:"SESSION_IDLE_TTL,         default=30m"`
	Cookie          string        `env:"SESSION_COOKIE,           default=newsdesk_sid"`
	RefreshInterval time.Duration `env:"PROFILE_REFRESH_INTERVAL, default=5m"`
	ConfirmTTL      time.Duration `env:"CONFIRM_TTL,              default=2m"`
}

type ListConfig struct {
	CacheTTL time.Duration `env:"LIST_CACHE_TTL, default=30s"`
}

type UploadConfig struct {
	MaxBytes int64 `env:"UPLOAD_MAX_BYTES, default=5242880"`
}

type CloudinaryConfig struct {
	Name         string `env:"CLOUDINARY_NAME"`
	UploadPreset string `env:"CLOUDINARY_UPLOAD_PRESET"`
	BaseURL      string `env:"CLOUDINARY_BASE_URL, default=https://api.cloudinary.com/v1_1"`
}

type RateLimitConfig struct {
	LoginMax         int64         `env:"RATE_LIMIT_LOGIN_MAX,         default=10"`
	LoginWindow      time.Duration `env:"RATE_LIMIT_LOGIN_WINDOW,      default=15m"`
	NewsletterMax    int64         `env:"RATE_LIMIT_NEWSLETTER_MAX,    default=5"`
	NewsletterWindow time.Duration `env:"RATE_LIMIT_NEWSLETTER_WINDOW, default=1h"`
	ContactMax       int64         `env:"RATE_LIMIT_CONTACT_MAX,       default=5"`
	ContactWindow    time.Duration `env:"RATE_LIMIT_CONTACT_WINDOW,    default=1h"`
}

type MongoConfig struct {
	URI         string `env:"MONGO_URI,           default=mongodb://localhost:27017"`
	Database    string `env:"MONGO_DB,            default=newsdesk"`
	MaxPoolSize uint64 `env:"MONGO_MAX_POOL_SIZE, default=20"`
}

type RedisConfig struct {
	URL  string `env:"REDIS_URL"`
	Addr string `env:"REDIS_ADDR, default=localhost:6379"`
	DB   int    `env:"REDIS_DB,   default=0"`
}

// Production reports whether the process runs with ENV=production.
func (c *Config) Production() bool { return c.Env == "production" }

// Load reads configuration from environment variables using go-envconfig.
// A .env file in the working directory, when present, seeds variables that
// are not already set.
func Load() *Config {
	_ = godotenv.Load()

	cfg, err := load(context.Background(), envconfig.OsLookuper())
	if err != nil {
		panic(fmt.Sprintf("config: failed to load configuration: %v", err))
	}
	return cfg
}

func load(ctx context.Context, lookuper envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{Target: &cfg, Lookuper: lookuper}); err != nil {
		return nil, err
	}
	return &cfg, nil
}
