package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config aggregates runtime configuration for the service.
type Config struct {
	App          AppConfig
	Postgres     PostgresConfig
	Redis        RedisConfig
	Logger       LoggerConfig
	Auth         AuthConfig
	Session      SessionConfig
	CORS         CORSConfig
	Notification NotificationConfig
}

// AppConfig controls server level behavior.
type AppConfig struct {
	Name                  string
	Env                   string
	Host                  string
	Port                  string
	Version               string
	RequestTimeoutSeconds int
}

// PostgresConfig holds DB connection values.
type PostgresConfig struct {
	DSN             string
	ApplicationName string
	MaxConns        int32
	MinConns        int32
	RunMigrations   bool
	MigrationsDir   string
	ConnMaxIdleSec  int32
	ConnMaxLifeSec  int32
}

// RedisConfig holds Redis connection values.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// LoggerConfig configures logging behavior.
type LoggerConfig struct {
	Level string
}

// AuthConfig defines authentication parameters.
type AuthConfig struct {
	AdminUsername string
	AdminPassword string
	BcryptCost    int
}

// SessionBackend selects where session tokens live.
type SessionBackend string

const (
	SessionBackendMemory SessionBackend = "memory"
	SessionBackendRedis  SessionBackend = "redis"
)

// SessionConfig controls session lifetimes and storage.
type SessionConfig struct {
	AdminTTL      time.Duration
	UserTTL       time.Duration
	Backend       SessionBackend
	SweepInterval time.Duration
}

// CORSConfig lists browser origins allowed to call the API.
type CORSConfig struct {
	AllowOrigins []string
}

// NotificationConfig holds stub notification endpoints.
type NotificationConfig struct {
	EmailFrom  string
	WebhookURL string
}

var defaultOrigins = []string{
	"http://localhost:7600",
	"http://localhost",
	"http://localhost:8000",
	"http://127.0.0.1",
	"http://127.0.0.1:8000",
}

// Load reads configuration from environment variables, applying defaults where possible.
func Load() (*Config, error) {
	_ = godotenv.Load()

	redisDB, err := getEnvAsInt("REDIS_DB", 0)
	if err != nil {
		return nil, err
	}

	adminTTL, err := getEnvAsDuration("SESSION_ADMIN_TTL", 30*time.Minute)
	if err != nil {
		return nil, err
	}
	userTTL, err := getEnvAsDuration("SESSION_USER_TTL", 8*time.Hour)
	if err != nil {
		return nil, err
	}
	sweepInterval, err := getEnvAsDuration("SESSION_SWEEP_INTERVAL", time.Minute)
	if err != nil {
		return nil, err
	}

	backend := SessionBackend(strings.ToLower(getEnv("SESSION_BACKEND", string(SessionBackendMemory))))
	if backend != SessionBackendMemory && backend != SessionBackendRedis {
		return nil, fmt.Errorf("invalid SESSION_BACKEND %q", backend)
	}

	maxConns, err := getEnvAsInt("POSTGRES_MAX_CONNS", 10)
	if err != nil {
		return nil, err
	}
	minConns, err := getEnvAsInt("POSTGRES_MIN_CONNS", 2)
	if err != nil {
		return nil, err
	}
	runMigrations, err := getEnvAsBool("POSTGRES_RUN_MIGRATIONS", true)
	if err != nil {
		return nil, err
	}
	connMaxIdle, err := getEnvAsInt("POSTGRES_CONN_MAX_IDLE_SECONDS", 30)
	if err != nil {
		return nil, err
	}
	connMaxLife, err := getEnvAsInt("POSTGRES_CONN_MAX_LIFE_SECONDS", 300)
	if err != nil {
		return nil, err
	}
	requestTimeout, err := getEnvAsInt("HTTP_REQUEST_TIMEOUT_SECONDS", 30)
	if err != nil {
		return nil, err
	}
	bcryptCost, err := getEnvAsInt("AUTH_BCRYPT_COST", 12)
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		App: AppConfig{
			Name:                  getEnv("APP_NAME", "supply-portal"),
			Env:                   getEnv("APP_ENV", "development"),
			Host:                  getEnv("APP_HOST", "0.0.0.0"),
			Port:                  getEnv("APP_PORT", "8001"),
			Version:               getEnv("APP_VERSION", "1.0.0"),
			RequestTimeoutSeconds: requestTimeout,
		},
		Postgres: PostgresConfig{
			DSN:             os.Getenv("POSTGRES_DSN"),
			ApplicationName: getEnv("APP_NAME", "supply-portal"),
			MaxConns:        int32(maxConns),
			MinConns:        int32(minConns),
			RunMigrations:   runMigrations,
			MigrationsDir:   getEnv("POSTGRES_MIGRATIONS_DIR", "migrations"),
			ConnMaxIdleSec:  int32(connMaxIdle),
			ConnMaxLifeSec:  int32(connMaxLife),
		},
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", "127.0.0.1:6379"),
			Password: os.Getenv("REDIS_PASSWORD"),
			DB:       redisDB,
		},
		Logger: LoggerConfig{
			Level: getEnv("LOG_LEVEL", "info"),
		},
		Auth: AuthConfig{
			AdminUsername: os.Getenv("ADMIN_USERNAME"),
			AdminPassword: os.Getenv("ADMIN_PASSWORD"),
			BcryptCost:    bcryptCost,
		},
		Session: SessionConfig{
			AdminTTL:      adminTTL,
			UserTTL:       userTTL,
			Backend:       backend,
			SweepInterval: sweepInterval,
		},
		CORS: CORSConfig{
			AllowOrigins: getEnvAsList("CORS_ALLOW_ORIGINS", defaultOrigins),
		},
		Notification: NotificationConfig{
			EmailFrom:  getEnv("NOTIFY_EMAIL_FROM", "noreply@example.com"),
			WebhookURL: getEnv("NOTIFY_WEBHOOK_URL", ""),
		},
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	var missing []string
	if c.Auth.AdminUsername == "" {
		missing = append(missing, "ADMIN_USERNAME")
	}
	if c.Auth.AdminPassword == "" {
		missing = append(missing, "ADMIN_PASSWORD")
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing required environment variables: %s", strings.Join(missing, ", "))
	}
	if c.Session.AdminTTL <= 0 || c.Session.UserTTL <= 0 {
		return errors.New("session TTLs must be positive")
	}
	return nil
}

// Addr returns the HTTP bind address.
func (a AppConfig) Addr() string {
	return fmt.Sprintf("%s:%s", a.Host, a.Port)
}

// RequestTimeout returns the configured request timeout duration.
func (a AppConfig) RequestTimeout() time.Duration {
	if a.RequestTimeoutSeconds <= 0 {
		return 0
	}
	return time.Duration(a.RequestTimeoutSeconds) * time.Second
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) (int, error) {
	val := os.Getenv(key)
	if val == "" {
		return fallback, nil
	}
	parsed, err := strconv.Atoi(val)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return parsed, nil
}

func getEnvAsBool(key string, fallback bool) (bool, error) {
	val := os.Getenv(key)
	if val == "" {
		return fallback, nil
	}
	parsed, err := strconv.ParseBool(val)
	if err != nil {
		return false, fmt.Errorf("invalid %s: %w", key, err)
	}
	return parsed, nil
}

func getEnvAsDuration(key string, fallback time.Duration) (time.Duration, error) {
	val := os.Getenv(key)
	if val == "" {
		return fallback, nil
	}
	parsed, err := time.ParseDuration(val)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return parsed, nil
}

func getEnvAsList(key string, fallback []string) []string {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	parts := strings.Split(val, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
