package githubstatus

import (
	"fmt"
	"time"
)

const (
	// DefaultStatusURL is the Statuspage summary for github.com.
	DefaultStatusURL = "https://www.githubstatus.com/api/v2/status.json"
	defaultTimeout   = 10 * time.Second
)

// Config configures the status client.
type Config struct {
	StatusURL string        `yaml:"status_url" mapstructure:"status_url" validate:"required,url"`
	Timeout   time.Duration `yaml:"timeout" mapstructure:"timeout" validate:"gt=0"`
	// RetryFor bounds how long 429 answers are retried.
	RetryFor time.Duration `yaml:"retry_for" mapstructure:"retry_for" validate:"gte=0"`
}

// ApplyDefaults fills in unset fields.
func (c *Config) ApplyDefaults() {
	if c.StatusURL == "" {
		c.StatusURL = DefaultStatusURL
	}
	if c.Timeout <= 0 {
		c.Timeout = defaultTimeout
	}
	if c.RetryFor <= 0 {
		c.RetryFor = 15 * time.Minute
	}
}

// Validate checks the config after defaults are applied.
func (c *Config) Validate() error {
	if c.StatusURL == "" {
		return fmt.Errorf("github.status_url is required")
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("github.timeout must be positive (got: %s)", c.Timeout)
	}
	return nil
}
