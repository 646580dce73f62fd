package manifold

import (
	"fmt"
	"time"
)

const (
	// DefaultBaseURL is the Manifold API root.
	DefaultBaseURL = "https://manifold.markets/api"

	defaultTimeout           = 10 * time.Second
	defaultMaxConcurrentBets = 8
	defaultRequestsPerSecond = 10
	defaultBurst             = 20
	defaultMarketsLimit      = 500
	maxMarketsLimit          = 1000
)

// DefaultTrustedCreators are the accounts whose incident markets are tracked.
var DefaultTrustedCreators = []string{
	"HBlWMFF8XkcatdnIfNt0RPoCrXy1",
	"fwGK5b9peFQbclczNeQdgCtjlYT2",
}

// Config configures the Manifold client.
type Config struct {
	BaseURL string        `yaml:"base_url" mapstructure:"base_url" validate:"required,url"`
	APIKey  string        `yaml:"api_key" mapstructure:"api_key" validate:"required"`
	Timeout time.Duration `yaml:"timeout" mapstructure:"timeout" validate:"gt=0"`
	// MaxConcurrentBets caps bets in flight at once.
	MaxConcurrentBets int `yaml:"max_concurrent_bets" mapstructure:"max_concurrent_bets" validate:"gte=1"`
	// RequestsPerSecond and Burst pace all outbound calls.
	RequestsPerSecond float64  `yaml:"requests_per_second" mapstructure:"requests_per_second" validate:"gt=0"`
	Burst             int      `yaml:"burst" mapstructure:"burst" validate:"gte=1"`
	TrustedCreators   []string `yaml:"trusted_creators" mapstructure:"trusted_creators" validate:"min=1"`
	// MarketsLimit is how many of the newest markets one refresh lists.
	MarketsLimit int `yaml:"markets_limit" mapstructure:"markets_limit" validate:"gte=1,lte=1000"`
}

// ApplyDefaults fills in unset fields. The API key has no default.
func (c *Config) ApplyDefaults() {
	if c.BaseURL == "" {
		c.BaseURL = DefaultBaseURL
	}
	if c.Timeout <= 0 {
		c.Timeout = defaultTimeout
	}
	if c.MaxConcurrentBets <= 0 {
		c.MaxConcurrentBets = defaultMaxConcurrentBets
	}
	if c.RequestsPerSecond <= 0 {
		c.RequestsPerSecond = defaultRequestsPerSecond
	}
	if c.Burst <= 0 {
		c.Burst = defaultBurst
	}
	if c.MarketsLimit <= 0 {
		c.MarketsLimit = defaultMarketsLimit
	}
	if len(c.TrustedCreators) == 0 {
		c.TrustedCreators = append([]string(nil), DefaultTrustedCreators...)
	}
}

// Validate checks the config after defaults are applied.
func (c *Config) Validate() error {
	if c.APIKey == "" {
		return fmt.Errorf("manifold.api_key is required (set MANIFOLD_API_KEY)")
	}
	if c.BaseURL == "" {
		return fmt.Errorf("manifold.base_url is required")
	}
	if c.MarketsLimit > maxMarketsLimit {
		return fmt.Errorf("manifold.markets_limit must be at most %d, got %d", maxMarketsLimit, c.MarketsLimit)
	}
	return nil
}
