// Package server is calabi's optional status server: a Gin engine behind an
// h2c handler that reports health, build info and the bot's targets.
//
// # Middleware
//
// Built-in middleware (server/middleware):
//
//   - Recovery: panic recovery with structured logging
//   - RequestID: X-Request-Id generation and propagation
//   - RequestLogger: request logging, probes excluded
//   - RateLimit: token bucket limiting per client IP
//
// # Endpoints
//
// Built-in endpoints (server/endpoint):
//
//   - /health: component health aggregation
//   - /ready: readiness probe
//   - /alive: liveness probe
//   - /version: build version information
//   - /targets: markets the bot is tracking
//   - /exclusions: contracts and days the bot will not bet on
package server
