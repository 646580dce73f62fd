package testutil

import (
	"context"
	"testing"

	"github.com/alextes/calabi/component"
)

// Setup starts c and stops it when the test ends.
//
//	srv := server.NewComponent(s)
//	testutil.Setup(t, srv)
func Setup(t testing.TB, c component.Component) {
	t.Helper()
	SetupWithContext(t, context.Background(), c)
}

// SetupWithContext is Setup with a caller-supplied start context.
func SetupWithContext(t testing.TB, ctx context.Context, c component.Component) {
	t.Helper()
	if err := c.Start(ctx); err != nil {
		t.Fatalf("failed to start component %s: %v", c.Name(), err)
	}
	t.Cleanup(func() {
		if err := c.Stop(context.Background()); err != nil {
			t.Errorf("failed to stop component %s: %v", c.Name(), err)
		}
	})
}

// AssertHealth fails the test unless c reports status want.
func AssertHealth(t testing.TB, c component.Component, want component.HealthStatus) component.Health {
	t.Helper()
	h := c.Health(context.Background())
	if h.Status != want {
		t.Errorf("component %s: expected %s, got %s (%s)", c.Name(), want, h.Status, h.Message)
	}
	return h
}
