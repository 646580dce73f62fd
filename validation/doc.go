// Package validation checks calabi's configuration and parsed inputs.
//
// Struct tag validation (go-playground/validator) reports fields by their
// config key:
//
//	type Config struct {
//	    BaseURL string `mapstructure:"base_url" validate:"required,url"`
//	}
//	err := validation.Validate(cfg) // "base_url: must be a valid URL"
//
// Programmatic validation collects errors for values that do not live in a
// struct:
//
//	err := validation.New().Range("day", day, 1, 31).Validate()
package validation
