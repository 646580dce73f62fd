package httpclient

import (
	"context"
	"fmt"

	"github.com/alextes/calabi/component"
)

var (
	_ component.Component   = (*Component)(nil)
	_ component.Describable = (*Component)(nil)
)

// Component puts a Client under lifecycle management. Health reflects the
// outcome of the client's most recent request.
type Component struct {
	client *Client
}

// NewComponent wraps client.
func NewComponent(client *Client) *Component {
	return &Component{client: client}
}

// Name returns the upstream name.
func (c *Component) Name() string {
	return c.client.Name()
}

// Start is a no-op; the client is ready once constructed.
func (c *Component) Start(_ context.Context) error {
	return nil
}

// Stop releases idle connections.
func (c *Component) Stop(_ context.Context) error {
	c.client.CloseIdleConnections()
	return nil
}

// Health is healthy until a request fails, degraded while the upstream rate
// limits us, and unhealthy after any other failure.
func (c *Component) Health(_ context.Context) component.Health {
	h := component.Health{Name: c.Name(), Status: component.StatusHealthy}
	at, err := c.client.LastResult()
	switch {
	case err == nil:
	case IsRateLimit(err):
		h.Status = component.StatusDegraded
		h.Message = fmt.Sprintf("rate limited at %s", at.UTC().Format("15:04:05"))
	default:
		h.Status = component.StatusUnhealthy
		h.Message = err.Error()
	}
	return h
}

// Describe returns the summary line for the bootstrap display.
func (c *Component) Describe() component.Description {
	return component.Description{
		Name:    c.Name(),
		Type:    "client",
		Details: fmt.Sprintf("%s timeout=%s", c.client.BaseURL(), c.client.config.Timeout),
	}
}

// Client returns the wrapped client.
func (c *Component) Client() *Client {
	return c.client
}
