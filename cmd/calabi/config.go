package main

import (
	"fmt"

	"github.com/alextes/calabi/bot"
	"github.com/alextes/calabi/config"
	"github.com/alextes/calabi/githubstatus"
	"github.com/alextes/calabi/manifold"
	"github.com/alextes/calabi/observability"
	"github.com/alextes/calabi/redis"
	"github.com/alextes/calabi/server"
	"github.com/alextes/calabi/util"
	"github.com/alextes/calabi/validation"
	"github.com/alextes/calabi/version"
)

const serviceName = "calabi"

// Config is calabi's configuration file and environment.
type Config struct {
	config.ServiceConfig `yaml:",inline" mapstructure:",squash"`

	Manifold      manifold.Config      `yaml:"manifold" mapstructure:"manifold"`
	GitHub        githubstatus.Config  `yaml:"github" mapstructure:"github"`
	Bot           bot.Config           `yaml:"bot" mapstructure:"bot"`
	Observability observability.Config `yaml:"observability" mapstructure:"observability"`
	Server        server.Config        `yaml:"server" mapstructure:"server"`
	Redis         redis.Config         `yaml:"redis" mapstructure:"redis"`
}

// ApplyDefaults fills in every section.
func (c *Config) ApplyDefaults() {
	c.Name = util.Coalesce(c.Name, serviceName)
	c.Version = util.Coalesce(c.Version, version.Version)
	c.ServiceConfig.ApplyDefaults()
	c.Manifold.ApplyDefaults()
	c.GitHub.ApplyDefaults()
	c.Bot.ApplyDefaults()
	c.Observability.ApplyDefaults()
	c.Server.ApplyDefaults()
	c.Redis.ApplyDefaults()
}

// Validate checks every section. The Manifold API key is required.
func (c *Config) Validate() error {
	if err := c.ServiceConfig.Validate(); err != nil {
		return err
	}
	checks := []struct {
		section string
		fn      func() error
	}{
		{"manifold", c.Manifold.Validate},
		{"github", c.GitHub.Validate},
		{"bot", c.Bot.Validate},
		{"observability", c.Observability.Validate},
		{"server", c.Server.Validate},
		{"redis", c.Redis.Validate},
	}
	for _, check := range checks {
		if err := check.fn(); err != nil {
			return fmt.Errorf("%s: %w", check.section, err)
		}
	}
	return validation.Validate(c)
}

// loadConfig reads the config file, the env file and the environment.
// LOG_JSON and LOG_LEVEL keep their historical names.
func loadConfig(flags *rootFlags) (*Config, error) {
	cfg := &Config{}
	opts := []config.LoaderOption{
		config.WithEnvAlias("LOG_JSON", "logging.json"),
		config.WithEnvAlias("LOG_LEVEL", "logging.level"),
	}
	if flags.configFile != "" {
		opts = append(opts, config.WithConfigFile(flags.configFile))
	}
	if flags.envFile != "" {
		opts = append(opts, config.WithEnvFile(flags.envFile))
	}
	if err := config.LoadConfig(serviceName, cfg, opts...); err != nil {
		return nil, err
	}
	return cfg, nil
}
