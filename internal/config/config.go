// Package config loads server settings from defaults, an optional YAML file
// and ROSTER_* environment variables, in that order of precedence.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"

	"github.com/mcoot/rpgroster/internal/api"
	mongostorage "github.com/mcoot/rpgroster/internal/storage/mongo"
	redisstorage "github.com/mcoot/rpgroster/internal/storage/redis"
	sqlitestorage "github.com/mcoot/rpgroster/internal/storage/sqlite"
)

// EnvPrefix is prepended to every environment variable name
const EnvPrefix = "ROSTER_"

// Config holds the complete server configuration
type Config struct {
	Server  api.ServerConfig `yaml:"server" envPrefix:"SERVER_"`
	Log     LogConfig        `yaml:"log" envPrefix:"LOG_"`
	Storage StorageConfig    `yaml:"storage" envPrefix:"STORAGE_"`
	Seed    SeedConfig       `yaml:"seed" envPrefix:"SEED_"`
	Metrics MetricsConfig    `yaml:"metrics" envPrefix:"METRICS_"`
}

// LogConfig holds logger settings
type LogConfig struct {
	// Level is one of debug, info, warn, error
	Level string `yaml:"level" env:"LEVEL"`
}

// StorageConfig selects and configures the storage backend
type StorageConfig struct {
	// Type is one of memory, redis, sqlite, mongo
	Type   string               `yaml:"type" env:"TYPE"`
	Redis  redisstorage.Config  `yaml:"redis" envPrefix:"REDIS_"`
	SQLite sqlitestorage.Config `yaml:"sqlite" envPrefix:"SQLITE_"`
	Mongo  mongostorage.Config  `yaml:"mongo" envPrefix:"MONGO_"`
}

// SeedConfig controls populating an empty store at startup
type SeedConfig struct {
	// File is a YAML roster imported when the store is empty
	File string `yaml:"file" env:"FILE"`
	// Random is the number of generated players added when the store is
	// empty and no file is configured
	Random int `yaml:"random" env:"RANDOM"`
}

// MetricsConfig controls the Prometheus endpoint
type MetricsConfig struct {
	Enabled bool `yaml:"enabled" env:"ENABLED"`
}

// Default returns the configuration used when nothing is overridden
func Default() Config {
	return Config{
		Server: api.DefaultServerConfig(),
		Log:    LogConfig{Level: "info"},
		Storage: StorageConfig{
			Type:   "memory",
			Redis:  redisstorage.DefaultConfig(),
			SQLite: sqlitestorage.DefaultConfig(),
			Mongo:  mongostorage.DefaultConfig(),
		},
		Metrics: MetricsConfig{Enabled: true},
	}
}

// Load builds the configuration. path may be empty, in which case only
// defaults and the environment apply.
func Load(path string) (Config, error) {
	return load(path, nil)
}

// load reads environment overrides from environ when non-nil, otherwise from the process
func load(path string, environ map[string]string) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("read config %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	opts := env.Options{Prefix: EnvPrefix}
	if environ != nil {
		opts.Environment = environ
	}
	if err := env.ParseWithOptions(&cfg, opts); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks enumerated settings
func (c Config) Validate() error {
	switch c.Storage.Type {
	case "memory", "redis", "sqlite", "mongo":
	default:
		return fmt.Errorf("invalid storage type %q: must be memory, redis, sqlite or mongo", c.Storage.Type)
	}
	if _, err := ParseLevel(c.Log.Level); err != nil {
		return err
	}
	if c.Server.Port < 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port %d", c.Server.Port)
	}
	if c.Seed.Random < 0 {
		return fmt.Errorf("invalid seed.random %d: must not be negative", c.Seed.Random)
	}
	return nil
}

// ParseLevel converts a level name to a slog.Level
func ParseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return slog.LevelInfo, fmt.Errorf("invalid log level %q", s)
}
