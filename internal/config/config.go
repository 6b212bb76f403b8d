package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Config holds the application configuration
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Cache    CacheConfig
	Share    ShareConfig
	Logging  LoggingConfig
}

// ServerConfig holds server-related configuration
type ServerConfig struct {
	Port      string
	ServerURL string
}

// DatabaseConfig holds database-related configuration
type DatabaseConfig struct {
	Path string
}

// CacheConfig holds share-result cache configuration
type CacheConfig struct {
	TTL        time.Duration
	MaxEntries int
}

// ShareConfig holds the share configuration file settings
type ShareConfig struct {
	ConfigPath string
	Watch      bool
}

// LoggingConfig holds logging-related configuration
type LoggingConfig struct {
	Level string
}

// New creates a new config with the given parameters
func New(port, serverURL, dbPath string, cacheTTL time.Duration, cacheMaxEntries int, shareConfigPath string, watch bool, logLevel string) (*Config, error) {
	cfg := &Config{
		Server: ServerConfig{
			Port:      port,
			ServerURL: serverURL,
		},
		Database: DatabaseConfig{
			Path: dbPath,
		},
		Cache: CacheConfig{
			TTL:        cacheTTL,
			MaxEntries: cacheMaxEntries,
		},
		Share: ShareConfig{
			ConfigPath: shareConfigPath,
			Watch:      watch,
		},
		Logging: LoggingConfig{
			Level: logLevel,
		},
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// validate validates the configuration values
func (c *Config) validate() error {
	if c.Server.Port == "" {
		return fmt.Errorf("server port cannot be empty")
	}

	if c.Server.ServerURL == "" {
		return fmt.Errorf("server URL cannot be empty")
	}

	if c.Database.Path == "" {
		return fmt.Errorf("database path cannot be empty")
	}

	if c.Cache.TTL <= 0 {
		return fmt.Errorf("cache TTL must be positive, got: %v", c.Cache.TTL)
	}

	if c.Cache.MaxEntries <= 0 {
		return fmt.Errorf("cache max entries must be positive, got: %d", c.Cache.MaxEntries)
	}

	if c.Share.ConfigPath == "" {
		return fmt.Errorf("share config path cannot be empty")
	}

	return nil
}

// Env holds the environment-variable defaults for the command-line flags
type Env struct {
	Port            string        `envconfig:"EVENTSHARE_PORT" default:"8080"`
	ServerURL       string        `envconfig:"EVENTSHARE_SERVER_URL" default:"http://localhost:8080"`
	DatabasePath    string        `envconfig:"EVENTSHARE_DATABASE_PATH" default:"events.db"`
	CacheTTL        time.Duration `envconfig:"EVENTSHARE_CACHE_TTL" default:"5m"`
	CacheMaxEntries int           `envconfig:"EVENTSHARE_CACHE_MAX_ENTRIES" default:"10"`
	ShareConfigPath string        `envconfig:"EVENTSHARE_SHARE_CONFIG" default:"share.yaml"`
	WatchConfig     bool          `envconfig:"EVENTSHARE_WATCH_CONFIG" default:"false"`
	LogLevel        string        `envconfig:"EVENTSHARE_LOG_LEVEL" default:"info"`
}

// FromEnv reads settings from EVENTSHARE_* environment variables
func FromEnv() (Env, error) {
	var env Env
	if err := envconfig.Process("", &env); err != nil {
		return Env{}, fmt.Errorf("failed to process environment: %w", err)
	}
	return env, nil
}
