package bot

import (
	"fmt"
	"time"

	"github.com/alextes/calabi/incident"
)

// Config tunes the loops and the bets.
type Config struct {
	// MarketsInterval is the pause between market refreshes.
	MarketsInterval time.Duration `yaml:"markets_interval" mapstructure:"markets_interval" validate:"gt=0"`
	// PollInterval is the pause between GitHub status polls.
	PollInterval time.Duration `yaml:"poll_interval" mapstructure:"poll_interval" validate:"gt=0"`
	// ExclusionDaySleep is how long the scanner sleeps on an excluded day.
	ExclusionDaySleep time.Duration `yaml:"exclusion_day_sleep" mapstructure:"exclusion_day_sleep" validate:"gt=0"`
	BetsPerTarget     int           `yaml:"bets_per_target" mapstructure:"bets_per_target" validate:"gte=1"`
	BetSize           int           `yaml:"bet_size" mapstructure:"bet_size" validate:"gte=1"`
	// ExcludedDays are YYYY-MM-DD days on which no bets are placed.
	ExcludedDays []string `yaml:"excluded_days" mapstructure:"excluded_days"`
	// ExactTypeMatch only bets on markets of the live incident's own type,
	// so a red incident no longer settles "any incident" markets.
	ExactTypeMatch bool `yaml:"exact_type_match" mapstructure:"exact_type_match"`
}

// ApplyDefaults fills in unset fields.
func (c *Config) ApplyDefaults() {
	if c.MarketsInterval <= 0 {
		c.MarketsInterval = 6 * time.Second
	}
	if c.PollInterval <= 0 {
		c.PollInterval = 500 * time.Millisecond
	}
	if c.ExclusionDaySleep <= 0 {
		c.ExclusionDaySleep = 20 * time.Minute
	}
	if c.BetsPerTarget <= 0 {
		c.BetsPerTarget = 2
	}
	if c.BetSize <= 0 {
		c.BetSize = 500
	}
	if c.ExcludedDays == nil {
		c.ExcludedDays = append([]string(nil), incident.DefaultExcludedDays...)
	}
}

// Validate checks the config after defaults are applied.
func (c *Config) Validate() error {
	if _, err := incident.ParseDateExclusions(c.ExcludedDays); err != nil {
		return fmt.Errorf("bot.excluded_days: %w", err)
	}
	return nil
}
