package config

import (
	"fmt"
	"os"
	"strconv"
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
	Mailer       MailerConfig
	Invites      InviteConfig
	Verification VerificationConfig
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
	DSN            string
	MaxConns       int32
	MinConns       int32
	RunMigrations  bool
	ConnMaxIdleSec int32
	ConnMaxLifeSec int32
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
	JWTSecret             string
	AccessTokenTTLMinutes int
	BcryptCost            int
}

// MailerConfig holds SMTP transport credentials.
type MailerConfig struct {
	Host     string
	Port     string
	Username string
	Password string
	From     string
}

// InviteConfig controls admin invitation links.
type InviteConfig struct {
	FrontendBaseURL       string
	TokenTTLHours         int
	PendingMarkerTTLHours int
}

// VerificationConfig bounds the email-verification poll.
type VerificationConfig struct {
	PollIntervalSeconds int
	MaxAttempts         int
	TokenTTLHours       int
}

// Load reads configuration from environment variables, applying defaults where possible.
func Load() (*Config, error) {
	_ = godotenv.Load()

	redisDB, err := strconv.Atoi(getEnv("REDIS_DB", "0"))
	if err != nil {
		return nil, fmt.Errorf("invalid REDIS_DB: %w", err)
	}

	maxConns := int32(getEnvAsInt("POSTGRES_MAX_CONNS", 10))
	minConns := int32(getEnvAsInt("POSTGRES_MIN_CONNS", 2))
	runMigrations := getEnvAsBool("POSTGRES_RUN_MIGRATIONS", true)
	connMaxIdle := int32(getEnvAsInt("POSTGRES_CONN_MAX_IDLE_SECONDS", 30))
	connMaxLife := int32(getEnvAsInt("POSTGRES_CONN_MAX_LIFE_SECONDS", 300))

	cfg := &Config{
		App: AppConfig{
			Name:                  getEnv("APP_NAME", "carmotorfix-admin-service"),
			Env:                   getEnv("APP_ENV", "development"),
			Host:                  getEnv("APP_HOST", "0.0.0.0"),
			Port:                  getEnv("APP_PORT", "5001"),
			Version:               getEnv("APP_VERSION", "dev"),
			RequestTimeoutSeconds: getEnvAsInt("HTTP_REQUEST_TIMEOUT_SECONDS", 30),
		},
		Postgres: PostgresConfig{
			DSN:            os.Getenv("POSTGRES_DSN"),
			MaxConns:       maxConns,
			MinConns:       minConns,
			RunMigrations:  runMigrations,
			ConnMaxIdleSec: connMaxIdle,
			ConnMaxLifeSec: connMaxLife,
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
			JWTSecret:             getEnv("AUTH_JWT_SECRET", "dev-secret"),
			AccessTokenTTLMinutes: getEnvAsInt("AUTH_ACCESS_TOKEN_TTL_MINUTES", 60),
			BcryptCost:            getEnvAsInt("AUTH_BCRYPT_COST", 12),
		},
		Mailer: MailerConfig{
			Host:     getEnv("EMAIL_HOST", "smtp.gmail.com"),
			Port:     getEnv("EMAIL_PORT", "587"),
			Username: os.Getenv("EMAIL_USER"),
			Password: os.Getenv("EMAIL_PASS"),
			From:     getEnv("EMAIL_FROM", os.Getenv("EMAIL_USER")),
		},
		Invites: InviteConfig{
			FrontendBaseURL:       getEnv("FRONTEND_URL", "http://localhost:3001"),
			TokenTTLHours:         getEnvAsInt("INVITE_TOKEN_TTL_HOURS", 72),
			PendingMarkerTTLHours: getEnvAsInt("INVITE_PENDING_MARKER_TTL_HOURS", 168),
		},
		Verification: VerificationConfig{
			PollIntervalSeconds: getEnvAsInt("VERIFICATION_POLL_INTERVAL_SECONDS", 3),
			MaxAttempts:         getEnvAsInt("VERIFICATION_MAX_ATTEMPTS", 100),
			TokenTTLHours:       getEnvAsInt("VERIFICATION_TOKEN_TTL_HOURS", 24),
		},
	}

	return cfg, nil
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

// PollInterval returns the verification poll cadence.
func (v VerificationConfig) PollInterval() time.Duration {
	if v.PollIntervalSeconds <= 0 {
		return 3 * time.Second
	}
	return time.Duration(v.PollIntervalSeconds) * time.Second
}

// VerificationTokenTTL returns the email-verification token lifetime.
func (v VerificationConfig) VerificationTokenTTL() time.Duration {
	if v.TokenTTLHours <= 0 {
		return 24 * time.Hour
	}
	return time.Duration(v.TokenTTLHours) * time.Hour
}

// TokenTTL returns the invite token lifetime.
func (i InviteConfig) TokenTTL() time.Duration {
	if i.TokenTTLHours <= 0 {
		return 72 * time.Hour
	}
	return time.Duration(i.TokenTTLHours) * time.Hour
}

// PendingMarkerTTL returns how long undelivered-invite markers are retained.
func (i InviteConfig) PendingMarkerTTL() time.Duration {
	if i.PendingMarkerTTLHours <= 0 {
		return 7 * 24 * time.Hour
	}
	return time.Duration(i.PendingMarkerTTLHours) * time.Hour
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(val)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvAsBool(key string, fallback bool) bool {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(val)
	if err != nil {
		return fallback
	}
	return parsed
}
