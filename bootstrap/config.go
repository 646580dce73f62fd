package bootstrap

import (
	"github.com/alextes/calabi/config"
)

// Config is the constraint for application config types. Any struct that
// embeds config.ServiceConfig satisfies it through promoted methods, and may
// shadow ApplyDefaults and Validate to cover its own sections.
type Config interface {
	GetServiceConfig() *config.ServiceConfig
	ApplyDefaults()
	Validate() error
}
