// Package config loads calabi's configuration.
//
// LoadConfig reads a YAML file (cmd/calabi/config.yml, config/config.yml or
// ./config.yml unless one is given explicitly), then a .env file, then the
// process environment, and unmarshals the merged result with Viper.
// Environment variables win over the file: MANIFOLD_API_KEY fills
// manifold.api_key, BOT_POLL_INTERVAL fills bot.poll_interval, and so on.
// Variables whose name does not follow the key path are mapped with
// WithEnvAlias.
package config
