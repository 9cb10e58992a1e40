package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
)

// Config holds all application configuration loaded from environment variables.
type Config struct {
	Database DatabaseConfig
	Redis    RedisConfig
	JWT      JWTConfig
	Server   ServerConfig
	Platform PlatformConfig
	Provider ProviderConfig
	Slack    SlackConfig
}

// DatabaseConfig holds PostgreSQL connection settings.
type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string //nolint:gosec // G117: DB connection config
	DBName   string
	SSLMode  string
	MaxConns int
}

// RedisConfig holds Redis connection settings for the hostname lookup cache.
// An empty Addr disables the cache and the router resolves against the
// directory on every request.
type RedisConfig struct {
	Addr     string
	Password string //nolint:gosec // G117: Redis connection config
	DB       int
	CacheTTL time.Duration
}

// JWTConfig holds JWT authentication settings.
type JWTConfig struct {
	Secret    string //nolint:gosec // G117: JWT signing secret config
	AccessTTL time.Duration
}

// ServerConfig holds HTTP server settings. The rate limit applies per
// client IP on the authenticated API group.
type ServerConfig struct {
	Addr           string
	ReadTimeout    time.Duration
	WriteTimeout   time.Duration
	CORSOrigins    []string
	RateLimitRPS   float64
	RateLimitBurst int
}

// PlatformConfig holds the hosted-platform identity settings.
type PlatformConfig struct {
	AppDomain     string
	LookupTimeout time.Duration
}

// ProviderConfig holds domain provider (Vercel) API settings.
type ProviderConfig struct {
	Token     string //nolint:gosec // G117: provider API token config
	ProjectID string
	TeamID    string
	Timeout   time.Duration
}

// SlackConfig holds operator alerting settings. Both fields empty disables
// Slack alerts.
type SlackConfig struct {
	BotToken     string
	AlertChannel string
}

// Load reads configuration from environment variables.
// Defaults are safe for local development only. In production,
// sensitive values (JWT secret, DB password, provider token) must be
// set explicitly.
func Load() (*Config, error) {
	dbPort, err := getEnvInt("FOLIO_DB_PORT", 5432)
	if err != nil {
		return nil, fmt.Errorf("config.Load: %w", err)
	}

	dbMaxConns, err := getEnvInt("FOLIO_DB_MAX_CONNS", 25)
	if err != nil {
		return nil, fmt.Errorf("config.Load: %w", err)
	}

	redisDB, err := getEnvInt("FOLIO_REDIS_DB", 0)
	if err != nil {
		return nil, fmt.Errorf("config.Load: %w", err)
	}

	cacheTTL, err := getEnvDuration("FOLIO_REDIS_CACHE_TTL", 30*time.Second)
	if err != nil {
		return nil, fmt.Errorf("config.Load: %w", err)
	}

	accessTTL, err := getEnvDuration("FOLIO_JWT_ACCESS_TTL", 24*time.Hour)
	if err != nil {
		return nil, fmt.Errorf("config.Load: %w", err)
	}

	readTimeout, err := getEnvDuration("FOLIO_SERVER_READ_TIMEOUT", 10*time.Second)
	if err != nil {
		return nil, fmt.Errorf("config.Load: %w", err)
	}

	writeTimeout, err := getEnvDuration("FOLIO_SERVER_WRITE_TIMEOUT", 30*time.Second)
	if err != nil {
		return nil, fmt.Errorf("config.Load: %w", err)
	}

	lookupTimeout, err := getEnvDuration("FOLIO_LOOKUP_TIMEOUT", 250*time.Millisecond)
	if err != nil {
		return nil, fmt.Errorf("config.Load: %w", err)
	}

	providerTimeout, err := getEnvDuration("FOLIO_VERCEL_TIMEOUT", 10*time.Second)
	if err != nil {
		return nil, fmt.Errorf("config.Load: %w", err)
	}

	rateLimitRPS, err := getEnvFloat("FOLIO_RATE_LIMIT_RPS", 5)
	if err != nil {
		return nil, fmt.Errorf("config.Load: %w", err)
	}

	rateLimitBurst, err := getEnvInt("FOLIO_RATE_LIMIT_BURST", 10)
	if err != nil {
		return nil, fmt.Errorf("config.Load: %w", err)
	}

	corsOrigins := getEnvList("FOLIO_CORS_ORIGINS", []string{"http://localhost:5173"})

	cfg := &Config{
		Database: DatabaseConfig{
			Host:     getEnv("FOLIO_DB_HOST", "localhost"),
			Port:     dbPort,
			User:     getEnv("FOLIO_DB_USER", "folio"),
			Password: getEnv("FOLIO_DB_PASSWORD", ""),
			DBName:   getEnv("FOLIO_DB_NAME", "folio_dev"),
			SSLMode:  getEnv("FOLIO_DB_SSLMODE", "disable"),
			MaxConns: dbMaxConns,
		},
		Redis: RedisConfig{
			Addr:     getEnv("FOLIO_REDIS_ADDR", ""),
			Password: getEnv("FOLIO_REDIS_PASSWORD", ""),
			DB:       redisDB,
			CacheTTL: cacheTTL,
		},
		JWT: JWTConfig{
			Secret:    getEnv("FOLIO_JWT_SECRET", ""),
			AccessTTL: accessTTL,
		},
		Server: ServerConfig{
			Addr:           getEnv("FOLIO_SERVER_ADDR", ":8080"),
			ReadTimeout:    readTimeout,
			WriteTimeout:   writeTimeout,
			CORSOrigins:    corsOrigins,
			RateLimitRPS:   rateLimitRPS,
			RateLimitBurst: rateLimitBurst,
		},
		Platform: PlatformConfig{
			AppDomain:     getEnv("FOLIO_APP_DOMAIN", "folio.site"),
			LookupTimeout: lookupTimeout,
		},
		Provider: ProviderConfig{
			Token:     getEnv("FOLIO_VERCEL_TOKEN", ""),
			ProjectID: getEnv("FOLIO_VERCEL_PROJECT_ID", ""),
			TeamID:    getEnv("FOLIO_VERCEL_TEAM_ID", ""),
			Timeout:   providerTimeout,
		},
		Slack: SlackConfig{
			BotToken:     getEnv("FOLIO_SLACK_BOT_TOKEN", ""),
			AlertChannel: getEnv("FOLIO_SLACK_ALERT_CHANNEL", ""),
		},
	}

	err = cfg.validate()
	if err != nil {
		return nil, fmt.Errorf("config.Load: %w", err)
	}

	return cfg, nil
}

// validate checks required fields and value bounds.
func (c *Config) validate() error {
	// JWT secret is required (no insecure default).
	if c.JWT.Secret == "" {
		return errors.New("FOLIO_JWT_SECRET is required")
	}
	if len(c.JWT.Secret) < 32 {
		return errors.New("FOLIO_JWT_SECRET must be at least 32 characters")
	}

	if c.Platform.AppDomain == "" {
		return errors.New("FOLIO_APP_DOMAIN is required")
	}

	// The provider token and project are both needed or both absent;
	// half-configured credentials fail every attach with a 403.
	if (c.Provider.Token == "") != (c.Provider.ProjectID == "") {
		return errors.New("FOLIO_VERCEL_TOKEN and FOLIO_VERCEL_PROJECT_ID must be set together")
	}

	if c.Database.SSLMode == "disable" {
		log.Warn().Msg("FOLIO_DB_SSLMODE=disable is insecure for production; set to 'require' or 'verify-full'")
	}

	// Bounds checks.
	if c.Database.Port < 1 || c.Database.Port > 65535 {
		return fmt.Errorf("FOLIO_DB_PORT must be 1-65535, got %d", c.Database.Port)
	}
	if c.Database.MaxConns < 1 {
		return fmt.Errorf("FOLIO_DB_MAX_CONNS must be >= 1, got %d", c.Database.MaxConns)
	}
	if c.JWT.AccessTTL <= 0 {
		return fmt.Errorf("FOLIO_JWT_ACCESS_TTL must be positive, got %s", c.JWT.AccessTTL)
	}
	if c.Redis.CacheTTL <= 0 {
		return fmt.Errorf("FOLIO_REDIS_CACHE_TTL must be positive, got %s", c.Redis.CacheTTL)
	}
	if c.Platform.LookupTimeout <= 0 {
		return fmt.Errorf("FOLIO_LOOKUP_TIMEOUT must be positive, got %s", c.Platform.LookupTimeout)
	}
	if c.Provider.Timeout <= 0 {
		return fmt.Errorf("FOLIO_VERCEL_TIMEOUT must be positive, got %s", c.Provider.Timeout)
	}
	if c.Server.ReadTimeout <= 0 {
		return fmt.Errorf("FOLIO_SERVER_READ_TIMEOUT must be positive, got %s", c.Server.ReadTimeout)
	}
	if c.Server.WriteTimeout <= 0 {
		return fmt.Errorf("FOLIO_SERVER_WRITE_TIMEOUT must be positive, got %s", c.Server.WriteTimeout)
	}
	if c.Server.RateLimitRPS <= 0 {
		return fmt.Errorf("FOLIO_RATE_LIMIT_RPS must be positive, got %g", c.Server.RateLimitRPS)
	}
	if c.Server.RateLimitBurst < 1 {
		return fmt.Errorf("FOLIO_RATE_LIMIT_BURST must be >= 1, got %d", c.Server.RateLimitBurst)
	}

	return nil
}

// DSN returns the PostgreSQL connection string.
func (c *DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode,
	)
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("parsing %s=%q as int: %w", key, v, err)
	}
	return n, nil
}

func getEnvFloat(key string, fallback float64) (float64, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, fmt.Errorf("parsing %s=%q as float: %w", key, v, err)
	}
	return f, nil
}

func getEnvDuration(key string, fallback time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("parsing %s=%q as duration: %w", key, v, err)
	}
	return d, nil
}

func getEnvList(key string, fallback []string) []string {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	parts := strings.Split(v, ",")
	result := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			result = append(result, p)
		}
	}
	return result
}
