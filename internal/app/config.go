package app

import (
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/metinatakli/movie-catalog/internal/auth"
	"github.com/robfig/cron/v3"
)

const (
	StorageLocal = "local"
	StorageMinio = "minio"
)

type Config struct {
	Port             int
	Env              string
	BaseUrl          string
	OtelCollectorUrl string
	DB               DBConfig
	Redis            RedisConfig
	Auth             AuthConfig
	Storage          StorageConfig
	AMQP             AMQPConfig
	RateLimit        RateLimitConfig
	Jobs             JobsConfig
}

type DBConfig struct {
	DSN          string
	MaxOpenConns int
	MaxIdleTime  time.Duration
}

type RedisConfig struct {
	URL          string
	MaxOpenConns int
	MaxIdleConns int
	MaxIdleTime  time.Duration
}

type AuthConfig struct {
	Secret              string
	AccessTokenTTL      time.Duration
	RefreshTokenTTL     time.Duration
	RotateRefreshTokens bool
}

type StorageConfig struct {
	Driver         string
	Path           string
	MinioEndpoint  string
	MinioAccessKey string
	MinioSecretKey string
	MinioBucket    string
	MinioUseSSL    bool
}

type AMQPConfig struct {
	URL      string
	Exchange string
}

type RateLimitConfig struct {
	Enabled  bool
	Requests int
	Window   time.Duration
}

type JobsConfig struct {
	TokenPurgeSchedule string
}

func (c AuthConfig) toServiceConfig() auth.Config {
	return auth.Config{
		Secret:              c.Secret,
		AccessTokenTTL:      c.AccessTokenTTL,
		RefreshTokenTTL:     c.RefreshTokenTTL,
		RotateRefreshTokens: c.RotateRefreshTokens,
	}
}

// parseConfig reads the configuration from command line flags. Every flag
// defaults to an environment variable, which may come from a .env file.
func parseConfig(args []string) (Config, bool, error) {
	err := godotenv.Load()
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, false, fmt.Errorf("load .env: %w", err)
	}

	var cfg Config

	flags := flag.NewFlagSet("movie-catalog", flag.ContinueOnError)

	flags.IntVar(&cfg.Port, "port", envInt("PORT", 8080), "server port")
	flags.StringVar(&cfg.Env, "env", envString("ENV", "dev"), "Environment (dev|staging|prod)")
	flags.StringVar(&cfg.BaseUrl, "base-url", envString("BASE_URL", ""), "Public base URL used to build poster URLs")
	flags.StringVar(&cfg.OtelCollectorUrl, "otel-collector-url", envString("OTEL_COLLECTOR_URL", ""), "OpenTelemetry collector gRPC endpoint")

	flags.StringVar(&cfg.DB.DSN, "db-dsn", envString("DB_DSN", ""), "PostgreSQL DSN")
	flags.IntVar(&cfg.DB.MaxOpenConns, "db-max-open-conns", envInt("DB_MAX_OPEN_CONNS", 25), "PostgreSQL max open connections")
	flags.DurationVar(&cfg.DB.MaxIdleTime, "db-max-idle-time", envDuration("DB_MAX_IDLE_TIME", 15*time.Minute), "PostgreSQL max idle time for connections")

	flags.StringVar(&cfg.Redis.URL, "redis-url", envString("REDIS_URL", ""), "Redis address")
	flags.IntVar(&cfg.Redis.MaxOpenConns, "redis-max-open-conns", envInt("REDIS_MAX_OPEN_CONNS", 25), "Redis max open connections")
	flags.IntVar(&cfg.Redis.MaxIdleConns, "redis-max-idle-conns", envInt("REDIS_MAX_IDLE_CONNS", 10), "Redis max idle connections")
	flags.DurationVar(&cfg.Redis.MaxIdleTime, "redis-max-idle-time", envDuration("REDIS_MAX_IDLE_TIME", 2*time.Minute), "Redis max idle time for connections")

	flags.StringVar(&cfg.Auth.Secret, "auth-secret", envString("AUTH_SECRET", ""), "HMAC key for access tokens (at least 32 bytes)")
	flags.DurationVar(&cfg.Auth.AccessTokenTTL, "auth-access-ttl", envDuration("AUTH_ACCESS_TTL", 15*time.Minute), "Access token lifetime")
	flags.DurationVar(&cfg.Auth.RefreshTokenTTL, "auth-refresh-ttl", envDuration("AUTH_REFRESH_TTL", 7*24*time.Hour), "Refresh token lifetime")
	flags.BoolVar(&cfg.Auth.RotateRefreshTokens, "auth-rotate-refresh", envBool("AUTH_ROTATE_REFRESH", false), "Replace the refresh token on every refresh")

	flags.StringVar(&cfg.Storage.Driver, "storage-driver", envString("STORAGE_DRIVER", StorageLocal), "Poster storage (local|minio)")
	flags.StringVar(&cfg.Storage.Path, "storage-path", envString("STORAGE_PATH", "./uploads"), "Poster directory for local storage")
	flags.StringVar(&cfg.Storage.MinioEndpoint, "minio-endpoint", envString("MINIO_ENDPOINT", ""), "MinIO endpoint")
	flags.StringVar(&cfg.Storage.MinioAccessKey, "minio-access-key", envString("MINIO_ACCESS_KEY", ""), "MinIO access key")
	flags.StringVar(&cfg.Storage.MinioSecretKey, "minio-secret-key", envString("MINIO_SECRET_KEY", ""), "MinIO secret key")
	flags.StringVar(&cfg.Storage.MinioBucket, "minio-bucket", envString("MINIO_BUCKET", "posters"), "MinIO bucket")
	flags.BoolVar(&cfg.Storage.MinioUseSSL, "minio-use-ssl", envBool("MINIO_USE_SSL", false), "Connect to MinIO over TLS")

	flags.StringVar(&cfg.AMQP.URL, "amqp-url", envString("AMQP_URL", ""), "RabbitMQ URL, events are not published when empty")
	flags.StringVar(&cfg.AMQP.Exchange, "amqp-exchange", envString("AMQP_EXCHANGE", "movie-catalog.events"), "RabbitMQ topic exchange")

	flags.BoolVar(&cfg.RateLimit.Enabled, "ratelimit-enabled", envBool("RATELIMIT_ENABLED", true), "Rate limit the auth endpoints")
	flags.IntVar(&cfg.RateLimit.Requests, "ratelimit-requests", envInt("RATELIMIT_REQUESTS", 20), "Requests allowed per client and window")
	flags.DurationVar(&cfg.RateLimit.Window, "ratelimit-window", envDuration("RATELIMIT_WINDOW", time.Minute), "Rate limit window")

	flags.StringVar(&cfg.Jobs.TokenPurgeSchedule, "token-purge-schedule", envString("TOKEN_PURGE_SCHEDULE", "@hourly"), "Cron schedule for purging expired refresh tokens")

	displayVersion := flags.Bool("version", false, "Display version and exit")

	err = flags.Parse(args)
	if err != nil {
		return Config{}, false, err
	}

	if cfg.BaseUrl == "" {
		cfg.BaseUrl = fmt.Sprintf("http://localhost:%d", cfg.Port)
	}

	return cfg, *displayVersion, nil
}

func (c Config) Validate() error {
	var errs []error

	if c.Port < 1 || c.Port > 65535 {
		errs = append(errs, fmt.Errorf("invalid port %d", c.Port))
	}

	u, err := url.Parse(c.BaseUrl)
	if err != nil || u.Scheme == "" || u.Host == "" {
		errs = append(errs, fmt.Errorf("invalid base url %q", c.BaseUrl))
	}

	if c.DB.DSN == "" {
		errs = append(errs, errors.New("db dsn is required"))
	}

	if c.Redis.URL == "" {
		errs = append(errs, errors.New("redis url is required"))
	}

	err = c.Auth.toServiceConfig().Validate()
	if err != nil {
		errs = append(errs, err)
	}

	switch c.Storage.Driver {
	case StorageLocal:
		if c.Storage.Path == "" {
			errs = append(errs, errors.New("storage path is required"))
		}
	case StorageMinio:
		if c.Storage.MinioEndpoint == "" || c.Storage.MinioBucket == "" {
			errs = append(errs, errors.New("minio endpoint and bucket are required"))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown storage driver %q", c.Storage.Driver))
	}

	if c.RateLimit.Enabled && (c.RateLimit.Requests < 1 || c.RateLimit.Window <= 0) {
		errs = append(errs, errors.New("rate limit requires positive requests and window"))
	}

	_, err = cron.ParseStandard(c.Jobs.TokenPurgeSchedule)
	if err != nil {
		errs = append(errs, fmt.Errorf("invalid token purge schedule: %w", err))
	}

	return errors.Join(errs...)
}

func envString(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok {
		return strings.TrimSpace(v)
	}

	return fallback
}

func envInt(key string, fallback int) int {
	v, err := strconv.Atoi(envString(key, ""))
	if err != nil {
		return fallback
	}

	return v
}

func envDuration(key string, fallback time.Duration) time.Duration {
	v, err := time.ParseDuration(envString(key, ""))
	if err != nil {
		return fallback
	}

	return v
}

func envBool(key string, fallback bool) bool {
	v, err := strconv.ParseBool(envString(key, ""))
	if err != nil {
		return fallback
	}

	return v
}
