// Package component defines the lifecycle contract shared by calabi's
// infrastructure pieces: the upstream API clients, the status server and the
// telemetry providers.
//
// Components are registered with a Registry, started in registration order
// and stopped in reverse order by the bootstrap package.
package component
