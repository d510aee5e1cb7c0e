// Package config loads and validates the proxy's YAML configuration.
package config

import (
	"fmt"
	"os"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"gopkg.in/yaml.v3"

	"github.com/davenforce/SnowflakeProxy/cache"
	"github.com/davenforce/SnowflakeProxy/snowflake"
)

// Cache backend names accepted by CacheConfig.Backend.
const (
	BackendMemory  = "memory"
	BackendSturdyc = "sturdyc"
)

// Duration wraps time.Duration so YAML configs can use Go duration strings
// such as "5m" or "90s".
type Duration time.Duration

// UnmarshalYAML implements yaml.Unmarshaler.
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var raw string
	if err := value.Decode(&raw); err != nil {
		return err
	}
	parsed, err := time.ParseDuration(raw)
	if err != nil {
		return fmt.Errorf("config: invalid duration %q: %w", raw, err)
	}
	*d = Duration(parsed)
	return nil
}

// Std returns the wrapped time.Duration.
func (d Duration) Std() time.Duration {
	return time.Duration(d)
}

// CacheConfig selects and sizes the result cache.
type CacheConfig struct {
	Backend            string   `yaml:"backend"`
	Capacity           int      `yaml:"capacity"`
	NumShards          int      `yaml:"num_shards"`
	TTL                Duration `yaml:"ttl"`
	EvictionPercentage int      `yaml:"eviction_percentage"`
	EvictionInterval   Duration `yaml:"eviction_interval"`
}

// LoggingConfig controls the zap logger the container builds.
type LoggingConfig struct {
	Level       string `yaml:"level"`
	Development bool   `yaml:"development"`
}

// Config is the complete proxy configuration.
type Config struct {
	Snowflake snowflake.Config `yaml:"snowflake"`
	Cache     CacheConfig      `yaml:"cache"`
	Logging   LoggingConfig    `yaml:"logging"`
}

// Default returns the configuration used when a field is absent from the
// loaded file. Snowflake credentials have no default.
func Default() Config {
	cacheDefaults := cache.DefaultConfig()
	return Config{
		Cache: CacheConfig{
			Backend:            BackendMemory,
			Capacity:           cacheDefaults.Capacity,
			NumShards:          cacheDefaults.NumShards,
			TTL:                Duration(cacheDefaults.TTL),
			EvictionPercentage: cacheDefaults.EvictionPercentage,
			EvictionInterval:   Duration(cacheDefaults.EvictionInterval),
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// Load reads, parses and validates the YAML file at path, applying defaults
// for absent fields.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks the cache and logging sections. Snowflake credentials are
// validated when a connection is actually opened, so configurations that
// only exercise custom executors stay loadable.
func (c Config) Validate() error {
	if err := validation.ValidateStruct(&c.Cache,
		validation.Field(&c.Cache.Backend, validation.Required, validation.In(BackendMemory, BackendSturdyc)),
	); err != nil {
		return fmt.Errorf("config: cache: %w", err)
	}

	if err := c.Cache.toStore().Validate(); err != nil {
		return fmt.Errorf("config: cache: %w", err)
	}

	if err := validation.ValidateStruct(&c.Logging,
		validation.Field(&c.Logging.Level, validation.In("debug", "info", "warn", "error")),
	); err != nil {
		return fmt.Errorf("config: logging: %w", err)
	}

	return nil
}

// StoreConfig converts the cache section to the cache package's Config.
func (c CacheConfig) StoreConfig() cache.Config {
	return c.toStore()
}

func (c CacheConfig) toStore() cache.Config {
	return cache.Config{
		Capacity:           c.Capacity,
		NumShards:          c.NumShards,
		TTL:                c.TTL.Std(),
		EvictionPercentage: c.EvictionPercentage,
		EvictionInterval:   c.EvictionInterval.Std(),
	}
}
