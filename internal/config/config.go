// Package config loads pagepoolctl's runtime settings from a YAML file,
// with environment-variable overrides, in the viper idiom.
package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Config holds everything a pagepoolctl invocation needs to open a pool
// and, optionally, serve the admin surface over it.
type Config struct {
	Storage StorageConfig `mapstructure:"storage"`
	Pool    PoolConfig    `mapstructure:"pool"`
	Admin   AdminConfig   `mapstructure:"admin"`
	Log     LogConfig     `mapstructure:"log"`
}

// StorageConfig names the backing page file.
type StorageConfig struct {
	File string `mapstructure:"file"`
}

// PoolConfig sizes the buffer pool and picks its replacement strategy.
type PoolConfig struct {
	Capacity int    `mapstructure:"capacity"`
	Strategy string `mapstructure:"strategy"` // "fifo" | "lru" | "clock"
}

// AdminConfig configures the read-only introspection server.
type AdminConfig struct {
	Host            string `mapstructure:"host"`
	Port            int    `mapstructure:"port"`
	PollIntervalMs  int    `mapstructure:"poll_interval_ms"`
}

// LogConfig configures the zap logger.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"` // "console" | "json"
}

// Default returns a configuration with sensible defaults, mirroring the
// shape (if not the domain) of a document-store server's DefaultConfig.
func Default() *Config {
	return &Config{
		Storage: StorageConfig{File: "./pool.pagefile"},
		Pool:    PoolConfig{Capacity: 1000, Strategy: "clock"},
		Admin:   AdminConfig{Host: "localhost", Port: 8080, PollIntervalMs: 1000},
		Log:     LogConfig{Level: "info", Format: "console"},
	}
}

// Load reads path (YAML) into a Config seeded with Default, applying
// PAGEPOOL_-prefixed environment overrides (e.g. PAGEPOOL_POOL_CAPACITY).
// An override only takes effect for a key that is present in the file;
// keys the file omits keep their Default value.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	v.SetEnvPrefix("pagepool")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	cfg := Default()
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config %s: %w", path, err)
	}
	if cfg.Pool.Capacity <= 0 {
		return nil, fmt.Errorf("config %s: pool.capacity must be > 0, got %d", path, cfg.Pool.Capacity)
	}
	return cfg, nil
}
