// Package testutil holds helpers shared by calabi's tests: component
// lifecycle with automatic cleanup, health assertions and market fixtures.
package testutil
