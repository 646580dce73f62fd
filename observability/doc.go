// Package observability wires OpenTelemetry tracing and metrics into calabi.
//
// Export is off by default. With observability.enabled set, Telemetry
// installs OTLP/HTTP trace and metric providers as the global providers and
// shuts them down with the application:
//
//	tel := observability.NewTelemetry(cfg.Observability, "calabi", version.GetVersionInfo().Version)
//	app.RegisterComponent(tel)
//
// The bot records its activity through BotMetrics and wraps upstream calls in
// spans with StartOperation. Both work against the global providers, which
// are no-ops until Telemetry starts.
package observability
