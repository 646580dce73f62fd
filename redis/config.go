package redis

import (
	"fmt"
	"time"
)

// Config holds the Redis connection settings.
type Config struct {
	// Enabled turns on the persistent exclusion ledger.
	Enabled bool `yaml:"enabled" mapstructure:"enabled"`

	// Addr is the server address (host:port).
	Addr     string `yaml:"addr" mapstructure:"addr"`
	Password string `yaml:"password" mapstructure:"password"`
	DB       int    `yaml:"db" mapstructure:"db"`

	PoolSize     int `yaml:"pool_size" mapstructure:"pool_size"`
	MinIdleConns int `yaml:"min_idle_conns" mapstructure:"min_idle_conns"`
	MaxRetries   int `yaml:"max_retries" mapstructure:"max_retries"`

	DialTimeout  time.Duration `yaml:"dial_timeout" mapstructure:"dial_timeout"`
	ReadTimeout  time.Duration `yaml:"read_timeout" mapstructure:"read_timeout"`
	WriteTimeout time.Duration `yaml:"write_timeout" mapstructure:"write_timeout"`

	// KeyPrefix namespaces every key calabi writes.
	KeyPrefix string `yaml:"key_prefix" mapstructure:"key_prefix"`

	// ExclusionTTL is how long the exclusion set lives after its last write.
	// Markets close daily so a few days is plenty. 0 keeps it forever.
	ExclusionTTL time.Duration `yaml:"exclusion_ttl" mapstructure:"exclusion_ttl"`
}

// ApplyDefaults sets defaults for zero-valued fields.
func (c *Config) ApplyDefaults() {
	if c.Addr == "" {
		c.Addr = "localhost:6379"
	}
	if c.PoolSize <= 0 {
		c.PoolSize = 10
	}
	if c.MinIdleConns <= 0 {
		c.MinIdleConns = 2
	}
	if c.MaxRetries <= 0 {
		c.MaxRetries = 3
	}
	if c.DialTimeout <= 0 {
		c.DialTimeout = 5 * time.Second
	}
	if c.ReadTimeout <= 0 {
		c.ReadTimeout = 3 * time.Second
	}
	if c.WriteTimeout <= 0 {
		c.WriteTimeout = 3 * time.Second
	}
	if c.KeyPrefix == "" {
		c.KeyPrefix = "calabi"
	}
	if c.ExclusionTTL == 0 {
		c.ExclusionTTL = 72 * time.Hour
	}
}

// Validate checks the settings. A disabled config is always valid.
func (c *Config) Validate() error {
	if !c.Enabled {
		return nil
	}
	if c.Addr == "" {
		return fmt.Errorf("redis addr is required")
	}
	if c.PoolSize <= 0 {
		return fmt.Errorf("pool_size must be > 0")
	}
	if c.DB < 0 {
		return fmt.Errorf("db must be >= 0, got %d", c.DB)
	}
	if c.ExclusionTTL < 0 {
		return fmt.Errorf("exclusion_ttl must be >= 0, got %s", c.ExclusionTTL)
	}
	return nil
}

// ExclusionsKey is the key of the exclusion set.
func (c *Config) ExclusionsKey() string {
	return c.KeyPrefix + ":exclusions"
}
