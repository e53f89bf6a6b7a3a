package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/viper"
)

// Config aggregates application settings that may be sourced from files or environment variables.
type Config struct {
	API      APIConfig      `mapstructure:"api"`
	Database DatabaseConfig `mapstructure:"database"`
	Redis    RedisConfig    `mapstructure:"redis"`
	Session  SessionConfig  `mapstructure:"session"`
	Login    LoginConfig    `mapstructure:"login"`
	Upload   UploadConfig   `mapstructure:"upload"`
	Seed     SeedConfig     `mapstructure:"seed"`
}

// APIConfig contains HTTP server settings.
type APIConfig struct {
	Port         int    `mapstructure:"port"`
	CookieDomain string `mapstructure:"cookie_domain"`
}

// DatabaseConfig contains connection options for PostgreSQL.
type DatabaseConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Name     string `mapstructure:"name"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	SSLMode  string `mapstructure:"sslmode"`
}

// RedisConfig contains Redis connection settings. An empty host disables
// Redis and falls the session store back to the in-process implementation.
type RedisConfig struct {
	Host string `mapstructure:"host"`
	Port int    `mapstructure:"port"`
}

// SessionConfig controls session lifetime.
type SessionConfig struct {
	TTLMinutes int `mapstructure:"ttl_minutes"`
}

// LoginConfig controls brute-force protection on the login endpoint.
type LoginConfig struct {
	RateLimitPerHour int `mapstructure:"rate_limit_per_hour"`
	LockThreshold    int `mapstructure:"lock_threshold"`
	LockTTLMinutes   int `mapstructure:"lock_ttl_minutes"`
}

// UploadConfig bounds résumé uploads on the public application endpoint.
type UploadConfig struct {
	MaxResumeBytes int64  `mapstructure:"max_resume_bytes"`
	ClamdAddr      string `mapstructure:"clamd_addr"`
}

// SeedConfig holds the fixture admin credentials used by the idempotent seed step.
type SeedConfig struct {
	AdminUsername string `mapstructure:"admin_username"`
	AdminPassword string `mapstructure:"admin_password"`
}

// DSN builds a lib/pq compatible connection string.
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host,
		d.Port,
		d.User,
		d.Password,
		d.Name,
		d.SSLMode,
	)
}

// Addr returns the host:port pair for the Redis client.
func (r RedisConfig) Addr() string {
	return fmt.Sprintf("%s:%d", r.Host, r.Port)
}

// Enabled reports whether a Redis backend was configured at all.
func (r RedisConfig) Enabled() bool {
	return r.Host != ""
}

// TTL returns the session lifetime as a duration.
func (s SessionConfig) TTL() time.Duration {
	return time.Duration(s.TTLMinutes) * time.Minute
}

// LockTTL returns the login lockout window as a duration.
func (l LoginConfig) LockTTL() time.Duration {
	return time.Duration(l.LockTTLMinutes) * time.Minute
}

// Load reads configuration solely from environment variables (with optional defaults).
func Load() (*Config, error) {
	v := viper.New()
	setDefaults(v)
	v.AutomaticEnv()

	if err := bindEnv(v); err != nil {
		return nil, fmt.Errorf("bind env: %w", err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := validate(cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// MustLoad wraps Load and panics on failure.
func MustLoad() *Config {
	cfg, err := Load()
	if err != nil {
		panic(err)
	}
	return cfg
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("api.port", 8080)
	v.SetDefault("api.cookie_domain", "")
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.name", "pixelperfect")
	v.SetDefault("database.user", "pixelperfect")
	v.SetDefault("database.password", "pixelperfect")
	v.SetDefault("database.sslmode", "disable")
	v.SetDefault("redis.host", "")
	v.SetDefault("redis.port", 6379)
	v.SetDefault("session.ttl_minutes", 7*24*60)
	v.SetDefault("login.rate_limit_per_hour", 10)
	v.SetDefault("login.lock_threshold", 5)
	v.SetDefault("login.lock_ttl_minutes", 15)
	v.SetDefault("upload.max_resume_bytes", 5*1024*1024)
	v.SetDefault("upload.clamd_addr", "")
	v.SetDefault("seed.admin_username", "admin@pixelperfect.com")
	v.SetDefault("seed.admin_password", "")
}

func bindEnv(v *viper.Viper) error {
	mappings := map[string]string{
		"api.port":                  "API_PORT",
		"api.cookie_domain":         "COOKIE_DOMAIN",
		"database.host":             "DATABASE_HOST",
		"database.port":             "DATABASE_PORT",
		"database.name":             "POSTGRES_DB",
		"database.user":             "POSTGRES_USER",
		"database.password":         "POSTGRES_PASSWORD",
		"database.sslmode":          "DATABASE_SSLMODE",
		"redis.host":                "REDIS_HOST",
		"redis.port":                "REDIS_PORT",
		"session.ttl_minutes":       "SESSION_TTL_MINUTES",
		"login.rate_limit_per_hour": "LOGIN_RATE_LIMIT_PER_HOUR",
		"login.lock_threshold":      "LOGIN_LOCK_THRESHOLD",
		"login.lock_ttl_minutes":    "LOGIN_LOCK_TTL_MINUTES",
		"upload.max_resume_bytes":   "UPLOAD_MAX_RESUME_BYTES",
		"upload.clamd_addr":         "REDACTED_CLAMD_ADDRESS",
		"seed.admin_username":       "SEED_ADMIN_USERNAME",
		"seed.admin_password":       "SEED_ADMIN_PASSWORD",
	}

	for key, env := range mappings {
		if err := v.BindEnv(key, env); err != nil {
			return fmt.Errorf("bind %s to %s: %w", key, env, err)
		}
	}

	return nil
}

func validate(cfg Config) error {
	if cfg.API.Port <= 0 {
		return errors.New("api port must be positive")
	}
	if cfg.Database.Host == "" {
		return errors.New("database host is required")
	}
	if cfg.Database.Port <= 0 {
		return errors.New("database port must be positive")
	}
	if cfg.Database.Name == "" {
		return errors.New("database name is required")
	}
	if cfg.Database.User == "" {
		return errors.New("database user is required")
	}
	if cfg.Database.Password == "" {
		return errors.New("database password is required")
	}
	if cfg.Database.SSLMode == "" {
		return errors.New("database sslmode is required")
	}
	if cfg.Redis.Enabled() && cfg.Redis.Port <= 0 {
		return errors.New("redis port must be positive")
	}
	if cfg.Session.TTLMinutes <= 0 {
		return errors.New("session ttl must be positive")
	}
	if cfg.Login.RateLimitPerHour <= 0 {
		return errors.New("login rate limit must be positive")
	}
	if cfg.Login.LockThreshold <= 0 {
		return errors.New("login lock threshold must be positive")
	}
	if cfg.Login.LockTTLMinutes <= 0 {
		return errors.New("login lock ttl must be positive")
	}
	if cfg.Upload.MaxResumeBytes <= 0 {
		return errors.New("max resume bytes must be positive")
	}
	return nil
}
