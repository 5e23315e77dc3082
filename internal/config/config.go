package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Log      LogConfig      `mapstructure:"log"`
	Storage  StorageConfig  `mapstructure:"storage"`
	Redis    RedisConfig    `mapstructure:"redis"`
	Auth     AuthConfig     `mapstructure:"auth"`
	CORS     CORSConfig     `mapstructure:"cors"`
	Analysis AnalysisConfig `mapstructure:"analysis"`
	Tracing  TracingConfig  `mapstructure:"tracing"`
}

// ServerConfig holds server-specific configuration
type ServerConfig struct {
	Port string `mapstructure:"port"`
	Env  string `mapstructure:"env"`
	// RateLimit is requests per second per client; 0 disables limiting.
	RateLimit float64 `mapstructure:"rate_limit"`
	RateBurst int     `mapstructure:"rate_burst"`
}

// LogConfig selects the logging backend
type LogConfig struct {
	Level   string `mapstructure:"level"`
	Format  string `mapstructure:"format"`
	Backend string `mapstructure:"backend"`
}

// StorageConfig selects where observations, results and links live
type StorageConfig struct {
	Driver     string `mapstructure:"driver"`
	BadgerDir  string `mapstructure:"badger_dir"`
	DSN        string `mapstructure:"dsn"`
	SQLitePath string `mapstructure:"sqlite_path"`
}

// RedisConfig holds the idempotency cache connection. An empty Addr keeps
// the cache in process.
type RedisConfig struct {
	Addr           string        `mapstructure:"addr"`
	Password       string        `mapstructure:"password"`
	DB             int           `mapstructure:"db"`
	IdempotencyTTL time.Duration `mapstructure:"idempotency_ttl"`
}

// AuthConfig holds JWT verification settings
type AuthConfig struct {
	JWTSecret string `mapstructure:"jwt_secret"`
	Issuer    string `mapstructure:"issuer"`
}

// CORSConfig holds the browser origins allowed to call the API
type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// AnalysisConfig tunes the analysis engine
type AnalysisConfig struct {
	// Timezone is an IANA name used to bucket observations by hour.
	// Empty means the process local zone.
	Timezone string `mapstructure:"timezone"`
}

// TracingConfig controls OpenTelemetry span export
type TracingConfig struct {
	Enabled     bool   `mapstructure:"enabled"`
	ServiceName string `mapstructure:"service_name"`
}

// Storage drivers
const (
	DriverMemory   = "memory"
	DriverBadger   = "badger"
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// Load reads configuration from environment variables and config files
func Load() (*Config, error) {
	v := viper.New()

	// Set default values
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.env", "development")
	v.SetDefault("server.rate_limit", 20.0)
	v.SetDefault("server.rate_burst", 40)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
	v.SetDefault("log.backend", "slog")
	v.SetDefault("storage.driver", DriverMemory)
	v.SetDefault("storage.badger_dir", "./data/badger")
	v.SetDefault("storage.sqlite_path", "./data/kreativium.db")
	v.SetDefault("storage.dsn", "")
	v.SetDefault("redis.addr", "")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("redis.idempotency_ttl", "24h")
	v.SetDefault("auth.jwt_secret", "")
	v.SetDefault("auth.issuer", "kreativium")
	v.SetDefault("cors.allowed_origins", []string{"http://localhost:5173"})
	v.SetDefault("tracing.enabled", false)
	v.SetDefault("tracing.service_name", "kreativium-api")
	v.SetDefault("analysis.timezone", "")

	// Read from environment variables
	v.SetEnvPrefix("KREATIVIUM")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Also bind to non-prefixed environment variables for container platforms
	_ = v.BindEnv("server.port", "KREATIVIUM_SERVER_PORT", "PORT")
	_ = v.BindEnv("storage.dsn", "KREATIVIUM_STORAGE_DSN", "DATABASE_URL")
	_ = v.BindEnv("redis.addr", "KREATIVIUM_REDIS_ADDR", "REDIS_ADDR")

	// Read from config file if it exists
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")

	// It's okay if config file doesn't exist
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	// Origins from the environment are comma separated
	config.CORS.AllowedOrigins = splitAndTrim(strings.Join(config.CORS.AllowedOrigins, ","))

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &config, nil
}

// Validate checks the storage and analysis settings every command needs
func (c *Config) Validate() error {
	switch c.Storage.Driver {
	case DriverMemory, DriverBadger, DriverSQLite:
	case DriverPostgres:
		if c.Storage.DSN == "" {
			return fmt.Errorf("KREATIVIUM_STORAGE_DSN is required for the postgres driver")
		}
	default:
		return fmt.Errorf("unknown storage driver %q", c.Storage.Driver)
	}

	if _, err := c.Location(); err != nil {
		return err
	}
	return nil
}

// ValidateServe additionally checks the settings only the HTTP server needs
func (c *Config) ValidateServe() error {
	if err := c.Validate(); err != nil {
		return err
	}
	if c.Auth.JWTSecret == "" {
		return fmt.Errorf("KREATIVIUM_AUTH_JWT_SECRET is required")
	}
	return nil
}

// Location resolves the analysis timezone
func (c *Config) Location() (*time.Location, error) {
	if c.Analysis.Timezone == "" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(c.Analysis.Timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid analysis timezone %q: %w", c.Analysis.Timezone, err)
	}
	return loc, nil
}

func splitAndTrim(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
