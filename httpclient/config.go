package httpclient

import (
	"fmt"
	"time"

	"github.com/alextes/calabi/resilience"
)

const (
	defaultTimeout   = 30 * time.Second
	defaultUserAgent = "calabi"
)

// Config configures the HTTP client.
type Config struct {
	// Name identifies the upstream in logs, errors and health output.
	Name string `yaml:"name" mapstructure:"name"`

	// BaseURL is the base URL prepended to all request paths.
	BaseURL string `yaml:"base_url" mapstructure:"base_url"`

	// Timeout is the default request timeout. Defaults to 30s.
	Timeout time.Duration `yaml:"timeout" mapstructure:"timeout"`

	// UserAgent is sent with every request. Defaults to "calabi".
	UserAgent string `yaml:"user_agent" mapstructure:"user_agent"`

	// Headers are default headers applied to all requests.
	Headers map[string]string `yaml:"headers" mapstructure:"headers"`

	// Auth configures default authentication applied to all requests.
	// Individual requests can override this.
	Auth *AuthConfig `yaml:"-" mapstructure:"-"`

	// Retry configures retry behavior. Nil disables retry.
	Retry *resilience.RetryConfig `yaml:"-" mapstructure:"-"`

	// RateLimiter paces outbound requests. Nil disables it.
	RateLimiter *resilience.RateLimiterConfig `yaml:"-" mapstructure:"-"`
}

// ApplyDefaults fills in zero-value fields with sensible defaults.
func (c *Config) ApplyDefaults() {
	if c.Name == "" {
		c.Name = "http"
	}
	if c.Timeout <= 0 {
		c.Timeout = defaultTimeout
	}
	if c.UserAgent == "" {
		c.UserAgent = defaultUserAgent
	}
}

// Validate checks that the configuration is valid.
func (c *Config) Validate() error {
	if c.Timeout <= 0 {
		return fmt.Errorf("httpclient: timeout must be positive")
	}
	if c.Auth != nil && c.Auth.Key == "" {
		return fmt.Errorf("httpclient: %s: api key is empty", c.Name)
	}
	return nil
}

// DefaultRetryConfig retries transient failures (timeouts, connection errors,
// 429 and 5xx) with the default backoff.
func DefaultRetryConfig() *resilience.RetryConfig {
	cfg := resilience.DefaultRetryConfig()
	cfg.RetryIf = IsRetryable
	return &cfg
}

// RateLimitRetryConfig retries only 429 answers. Every other failure is
// returned on the first attempt.
func RateLimitRetryConfig(b resilience.Backoff) *resilience.RetryConfig {
	return &resilience.RetryConfig{Backoff: b, RetryIf: IsRateLimit}
}

// DefaultRateLimiterConfig returns a default rate limiter config.
func DefaultRateLimiterConfig(name string) *resilience.RateLimiterConfig {
	cfg := resilience.DefaultRateLimiterConfig(name)
	return &cfg
}
