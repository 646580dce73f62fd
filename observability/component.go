package observability

import (
	"context"
	"errors"
	"fmt"
	"sync"

	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"

	"github.com/alextes/calabi/component"
	"github.com/alextes/calabi/logger"
)

var (
	_ component.Component   = (*Telemetry)(nil)
	_ component.Describable = (*Telemetry)(nil)
)

// Telemetry owns the trace and meter providers for the process lifetime.
type Telemetry struct {
	cfg            Config
	serviceName    string
	serviceVersion string
	log            *logger.Logger

	mu sync.Mutex
	tp *sdktrace.TracerProvider
	mp *sdkmetric.MeterProvider
}

// NewTelemetry creates the telemetry component.
func NewTelemetry(cfg Config, serviceName, serviceVersion string) *Telemetry {
	cfg.ApplyDefaults()
	return &Telemetry{
		cfg:            cfg,
		serviceName:    serviceName,
		serviceVersion: serviceVersion,
		log:            logger.WithComponent("telemetry"),
	}
}

// Name returns the component name.
func (t *Telemetry) Name() string { return "telemetry" }

// Start installs the OTLP providers when export is enabled.
func (t *Telemetry) Start(ctx context.Context) error {
	if !t.cfg.Enabled {
		t.log.Debug("Telemetry export disabled")
		return nil
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	tp, err := InitTracer(ctx, t.cfg, t.serviceName, t.serviceVersion)
	if err != nil {
		return err
	}
	mp, err := InitMeter(ctx, t.cfg, t.serviceName, t.serviceVersion)
	if err != nil {
		_ = tp.Shutdown(ctx)
		return err
	}
	t.tp, t.mp = tp, mp

	t.log.Info("Telemetry export enabled", logger.Fields(
		"endpoint", t.cfg.Endpoint,
		"sample_rate", t.cfg.SampleRate,
		"metric_interval", t.cfg.MetricInterval.String(),
	))
	return nil
}

// Stop flushes and shuts down the providers.
func (t *Telemetry) Stop(ctx context.Context) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	var errs []error
	if t.tp != nil {
		errs = append(errs, t.tp.Shutdown(ctx))
		t.tp = nil
	}
	if t.mp != nil {
		errs = append(errs, t.mp.Shutdown(ctx))
		t.mp = nil
	}
	return errors.Join(errs...)
}

// Health reports healthy; export failures surface through the OTel error handler.
func (t *Telemetry) Health(_ context.Context) component.Health {
	return component.Health{Name: t.Name(), Status: component.StatusHealthy}
}

// Describe returns the summary line for the bootstrap display.
func (t *Telemetry) Describe() component.Description {
	details := "disabled"
	if t.cfg.Enabled {
		details = fmt.Sprintf("otlp http://%s sample=%.2f", t.cfg.Endpoint, t.cfg.SampleRate)
	}
	return component.Description{Name: t.Name(), Type: "telemetry", Details: details}
}
