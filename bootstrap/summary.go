package bootstrap

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/alextes/calabi/component"
)

// InfrastructureInfo is one described component in the summary.
type InfrastructureInfo struct {
	Name    string
	Type    string
	Details string
	Port    int
	Health  component.Health
}

// Summary is the startup report printed once the app is ready.
type Summary struct {
	serviceName     string
	version         string
	startupDuration time.Duration
	infrastructure  []InfrastructureInfo
	routes          []component.Route
	health          []component.Health
}

// NewSummary creates an empty summary.
func NewSummary(serviceName, version string) *Summary {
	return &Summary{serviceName: serviceName, version: version}
}

// SetStartupDuration records the total startup time.
func (s *Summary) SetStartupDuration(d time.Duration) {
	s.startupDuration = d
}

// Collect gathers descriptions, routes and live health from the registry,
// replacing anything collected before.
func (s *Summary) Collect(ctx context.Context, registry *component.Registry) {
	s.infrastructure = s.infrastructure[:0]
	s.routes = s.routes[:0]
	s.health = registry.HealthAll(ctx)

	byName := make(map[string]component.Health, len(s.health))
	for _, h := range s.health {
		byName[h.Name] = h
	}

	for _, c := range registry.All() {
		if d, ok := c.(component.Describable); ok {
			desc := d.Describe()
			name := desc.Name
			if name == "" {
				name = c.Name()
			}
			s.infrastructure = append(s.infrastructure, InfrastructureInfo{
				Name:    name,
				Type:    desc.Type,
				Details: desc.Details,
				Port:    desc.Port,
				Health:  byName[c.Name()],
			})
		}
		if rp, ok := c.(component.RouteProvider); ok {
			s.routes = append(s.routes, rp.Routes()...)
		}
	}
}

// Infrastructure returns the collected component descriptions.
func (s *Summary) Infrastructure() []InfrastructureInfo { return s.infrastructure }

// Routes returns the collected HTTP routes.
func (s *Summary) Routes() []component.Route { return s.routes }

// Write renders the summary as a tree.
func (s *Summary) Write(w io.Writer) error {
	_, err := io.WriteString(w, s.String())
	return err
}

// String renders the summary as a tree.
func (s *Summary) String() string {
	var b strings.Builder
	w := &b
	fmt.Fprintf(w, "\n🚀 %s %s started in %.2fs\n", s.serviceName, s.version, s.startupDuration.Seconds())

	if len(s.infrastructure) > 0 {
		fmt.Fprintf(w, "\n📊 Infrastructure\n")
		for i, inf := range s.infrastructure {
			details := inf.Details
			if inf.Port > 0 {
				details = fmt.Sprintf("%s (:%d)", details, inf.Port)
			}
			fmt.Fprintf(w, "   %s %s %s [%s]: %s\n",
				branch(i, len(s.infrastructure)), healthIcon(inf.Health.Status), inf.Name, inf.Type, details)
		}
	}

	if len(s.routes) > 0 {
		fmt.Fprintf(w, "\n🌐 Routes (%d)\n", len(s.routes))
		for i, r := range s.routes {
			fmt.Fprintf(w, "   %s %-6s %s → %s\n", branch(i, len(s.routes)), r.Method, r.Path, r.Handler)
		}
	}

	if len(s.health) > 0 {
		healthy := 0
		for _, h := range s.health {
			if h.Healthy() {
				healthy++
			}
		}
		if healthy == len(s.health) {
			fmt.Fprintf(w, "\n✅ All components healthy (%d/%d)\n", healthy, len(s.health))
		} else {
			fmt.Fprintf(w, "\n⚠️  Some components have issues (%d/%d healthy)\n", healthy, len(s.health))
			for _, h := range s.health {
				if !h.Healthy() && h.Message != "" {
					fmt.Fprintf(w, "   %s %s: %s\n", healthIcon(h.Status), h.Name, h.Message)
				}
			}
		}
	} else {
		fmt.Fprintf(w, "   └── No components registered\n")
	}

	fmt.Fprintln(w)
	return b.String()
}

func branch(i, n int) string {
	if i == n-1 {
		return "└──"
	}
	return "├──"
}

func healthIcon(status component.HealthStatus) string {
	switch status {
	case component.StatusHealthy:
		return "✅"
	case component.StatusDegraded:
		return "⚠️"
	case component.StatusUnhealthy:
		return "❌"
	default:
		return "❓"
	}
}
