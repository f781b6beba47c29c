// Package config provides configuration loading and validation for the advisor.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config is the full advisor configuration. Values come from, in increasing
// precedence: built-in defaults, an optional YAML file, and the environment.
type Config struct {
	Server     ServerConfig    `mapstructure:"server"`
	Database   DatabaseConfig  `mapstructure:"database"`
	Redis      RedisConfig     `mapstructure:"redis"`
	Logging    LoggingConfig   `mapstructure:"logging"`
	Auth       AuthConfig      `mapstructure:"auth"`
	RateLimit  RateLimitConfig `mapstructure:"rate_limit"`
	SampleData bool            `mapstructure:"sample_data"` // seed the in-memory store with a demo profile
}

// ServerConfig configures the HTTP listener.
type ServerConfig struct {
	Port          int           `mapstructure:"port"`
	ReadTimeout   time.Duration `mapstructure:"read_timeout"`
	WriteTimeout  time.Duration `mapstructure:"write_timeout"`
	IdleTimeout   time.Duration `mapstructure:"idle_timeout"`
	AllowedOrigin string        `mapstructure:"allowed_origin"`
}

// DatabaseConfig selects the PostgreSQL profile store. An empty URL selects the in-memory store.
type DatabaseConfig struct {
	URL string `mapstructure:"url"`
}

// RedisConfig configures the draft store. An empty address selects the in-memory draft store.
type RedisConfig struct {
	Address  string        `mapstructure:"address"`
	Password string        `mapstructure:"password"`
	DB       int           `mapstructure:"db"`
	DraftTTL time.Duration `mapstructure:"draft_ttl"`
}

// LoggingConfig configures the zap logger.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// AuthConfig configures bearer token signing.
type AuthConfig struct {
	JWTSecret       string `mapstructure:"jwt_secret"`
	ExpirationHours int    `mapstructure:"expiration_hours"`
}

// RateLimitConfig configures the per-client token bucket.
type RateLimitConfig struct {
	Enabled           bool     `mapstructure:"enabled"`
	RequestsPerMinute int      `mapstructure:"requests_per_minute"`
	Burst             int      `mapstructure:"burst"`
	Whitelist         []string `mapstructure:"whitelist"` // client IPs exempt from limiting
}

const envPrefix = "ADVISOR"

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.read_timeout", 15*time.Second)
	v.SetDefault("server.write_timeout", 15*time.Second)
	v.SetDefault("server.idle_timeout", 60*time.Second)
	v.SetDefault("server.allowed_origin", "*")

	v.SetDefault("database.url", "")

	v.SetDefault("redis.address", "")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("redis.draft_ttl", 24*time.Hour)

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")

	v.SetDefault("auth.jwt_secret", "")
	v.SetDefault("auth.expiration_hours", 24)

	v.SetDefault("rate_limit.enabled", true)
	v.SetDefault("rate_limit.requests_per_minute", 60)
	v.SetDefault("rate_limit.burst", 20)
	v.SetDefault("rate_limit.whitelist", []string{})

	v.SetDefault("sample_data", false)
}

// Load reads configuration. path may be empty, in which case only defaults and
// the environment apply. Environment variables use the ADVISOR_ prefix with
// dots replaced by underscores (ADVISOR_SERVER_PORT); DATABASE_URL, REDIS_ADDR
// and JWT_SECRET are also honoured.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	// Conventional unprefixed names used by hosting platforms.
	_ = v.BindEnv("database.url", envPrefix+"_DATABASE_URL", "DATABASE_URL")
	_ = v.BindEnv("redis.address", envPrefix+"_REDIS_ADDRESS", "REDIS_ADDR")
	_ = v.BindEnv("auth.jwt_secret", envPrefix+"_AUTH_JWT_SECRET", "JWT_SECRET")
	_ = v.BindEnv("auth.expiration_hours", envPrefix+"_AUTH_EXPIRATION_HOURS", "JWT_EXPIRATION_HOURS")

	if path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	return &cfg, nil
}

// Validate checks that the configuration has usable, consistent values.
// It does not require an auth secret; commands that sign or verify tokens call JWT().
func (c *Config) Validate() error {
	var errs []error

	if c.Server.Port < 1 || c.Server.Port > 65535 {
		errs = append(errs, fmt.Errorf("server.port must be within 1..65535, got %d", c.Server.Port))
	}
	if c.Server.ReadTimeout < 0 || c.Server.WriteTimeout < 0 || c.Server.IdleTimeout < 0 {
		errs = append(errs, errors.New("server timeouts must be non-negative"))
	}

	if c.SampleData && c.Database.URL != "" {
		errs = append(errs, errors.New("sample_data only applies to the in-memory store; unset database.url or sample_data"))
	}

	if c.Redis.Address != "" && c.Redis.DraftTTL < time.Minute {
		errs = append(errs, fmt.Errorf("redis.draft_ttl must be at least 1m, got %s", c.Redis.DraftTTL))
	}
	if c.Redis.DB < 0 {
		errs = append(errs, fmt.Errorf("redis.db must be non-negative, got %d", c.Redis.DB))
	}

	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		errs = append(errs, fmt.Errorf("logging.level must be one of debug, info, warn, error, got %q", c.Logging.Level))
	}
	switch c.Logging.Format {
	case "json", "console":
	default:
		errs = append(errs, fmt.Errorf("logging.format must be json or console, got %q", c.Logging.Format))
	}

	if c.RateLimit.Enabled {
		if c.RateLimit.RequestsPerMinute < 1 {
			errs = append(errs, fmt.Errorf("rate_limit.requests_per_minute must be positive, got %d", c.RateLimit.RequestsPerMinute))
		}
		if c.RateLimit.Burst < 1 {
			errs = append(errs, fmt.Errorf("rate_limit.burst must be positive, got %d", c.RateLimit.Burst))
		}
	}

	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("config error: %w", err)
	}
	return nil
}

// Addr returns the listen address for the HTTP server.
func (c *Config) Addr() string {
	return fmt.Sprintf(":%d", c.Server.Port)
}

// JWT returns the validated token settings.
func (c *Config) JWT() (*JWTConfig, error) {
	return NewJWTConfig(c.Auth.JWTSecret, c.Auth.ExpirationHours)
}
