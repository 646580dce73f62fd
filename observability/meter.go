package observability

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetrichttp"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
)

// InitMeter creates an OTLP/HTTP meter provider and installs it globally.
// The caller shuts it down on exit.
func InitMeter(ctx context.Context, cfg Config, serviceName, serviceVersion string) (*sdkmetric.MeterProvider, error) {
	opts := []otlpmetrichttp.Option{
		otlpmetrichttp.WithEndpoint(cfg.Endpoint),
	}
	if cfg.Insecure {
		opts = append(opts, otlpmetrichttp.WithInsecure())
	}

	exporter, err := otlpmetrichttp.New(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("creating metric exporter: %w", err)
	}

	res, err := newResource(serviceName, serviceVersion)
	if err != nil {
		return nil, fmt.Errorf("creating resource: %w", err)
	}

	var readerOpts []sdkmetric.PeriodicReaderOption
	if cfg.MetricInterval > 0 {
		readerOpts = append(readerOpts, sdkmetric.WithInterval(cfg.MetricInterval))
	}

	mp := sdkmetric.NewMeterProvider(
		sdkmetric.WithReader(sdkmetric.NewPeriodicReader(exporter, readerOpts...)),
		sdkmetric.WithResource(res),
	)
	otel.SetMeterProvider(mp)
	return mp, nil
}

// Meter returns the calabi meter from the global provider.
func Meter() metric.Meter {
	return otel.Meter(instrumentationName)
}

// BotMetrics holds the instruments the bot records into. A nil *BotMetrics
// records nothing.
type BotMetrics struct {
	statusPolls       metric.Int64Counter
	incidentsDetected metric.Int64Counter
	betsPlaced        metric.Int64Counter
	betsFailed        metric.Int64Counter
	targetsTracked    metric.Int64Gauge
}

// NewBotMetrics creates the bot instruments on meter.
func NewBotMetrics(meter metric.Meter) (*BotMetrics, error) {
	statusPolls, err := meter.Int64Counter("calabi.status.polls",
		metric.WithDescription("GitHub status polls by indicator"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating calabi.status.polls counter: %w", err)
	}

	incidentsDetected, err := meter.Int64Counter("calabi.incidents.detected",
		metric.WithDescription("Polls that reported a live incident, by incident type"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating calabi.incidents.detected counter: %w", err)
	}

	betsPlaced, err := meter.Int64Counter("calabi.bets.placed",
		metric.WithDescription("Bets accepted by Manifold"),
		metric.WithUnit("{bet}"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating calabi.bets.placed counter: %w", err)
	}

	betsFailed, err := meter.Int64Counter("calabi.bets.failed",
		metric.WithDescription("Bets rejected by Manifold or lost in transit"),
		metric.WithUnit("{bet}"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating calabi.bets.failed counter: %w", err)
	}

	targetsTracked, err := meter.Int64Gauge("calabi.targets.tracked",
		metric.WithDescription("Incident markets currently tracked"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating calabi.targets.tracked gauge: %w", err)
	}

	return &BotMetrics{
		statusPolls:       statusPolls,
		incidentsDetected: incidentsDetected,
		betsPlaced:        betsPlaced,
		betsFailed:        betsFailed,
		targetsTracked:    targetsTracked,
	}, nil
}

// RecordStatusPoll counts one GitHub status poll. A failed poll is recorded
// with indicator "error".
func (m *BotMetrics) RecordStatusPoll(ctx context.Context, indicator string, err error) {
	if m == nil {
		return
	}
	if err != nil {
		indicator = "error"
	}
	m.statusPolls.Add(ctx, 1, metric.WithAttributes(attribute.String(AttrIndicator, indicator)))
}

// RecordIncident counts a poll that reported an incident of the given type.
func (m *BotMetrics) RecordIncident(ctx context.Context, incidentType string) {
	if m == nil {
		return
	}
	m.incidentsDetected.Add(ctx, 1, metric.WithAttributes(attribute.String(AttrIncident, incidentType)))
}

// RecordBet counts a placed or failed bet.
func (m *BotMetrics) RecordBet(ctx context.Context, outcome string, err error) {
	if m == nil {
		return
	}
	attrs := metric.WithAttributes(attribute.String(AttrOutcome, outcome))
	if err != nil {
		m.betsFailed.Add(ctx, 1, attrs)
		return
	}
	m.betsPlaced.Add(ctx, 1, attrs)
}

// SetTargetsTracked records the current number of tracked targets.
func (m *BotMetrics) SetTargetsTracked(ctx context.Context, n int) {
	if m == nil {
		return
	}
	m.targetsTracked.Record(ctx, int64(n))
}
