package bot

import (
	"context"
	"fmt"

	"github.com/alextes/calabi/incident"
	"github.com/alextes/calabi/logger"
	"github.com/alextes/calabi/manifold"
	"github.com/alextes/calabi/observability"
	"github.com/alextes/calabi/resilience"
)

// Deps are the upstreams the bot talks to.
type Deps struct {
	Markets    MarketSource
	Bettor     Bettor
	Status     StatusSource
	Classifier *manifold.Classifier
}

// Ledger persists the contracts already bet on across restarts.
type Ledger interface {
	Load(ctx context.Context) ([]string, error)
	Record(ctx context.Context, ids ...string) error
}

// Option configures a Bot.
type Option func(*Bot)

// WithClock replaces the UTC wall clock.
func WithClock(c Clock) Option {
	return func(b *Bot) { b.clock = c }
}

// WithMetrics records loop activity into m.
func WithMetrics(m *observability.BotMetrics) Option {
	return func(b *Bot) { b.metrics = m }
}

// WithLedger restores exclusions from l on Run and records new ones.
func WithLedger(l Ledger) Option {
	return func(b *Bot) { b.ledger = l }
}

// Bot owns the shared target state and both loops.
type Bot struct {
	cfg        Config
	registry   *incident.Registry
	exclusions *incident.ExclusionSet
	dates      *incident.DateExclusions
	clock      Clock
	metrics    *observability.BotMetrics
	ledger     Ledger
	log        *logger.Logger

	updater *Updater
	scanner *Scanner
}

// New wires the loops around fresh target state.
func New(cfg Config, deps Deps, opts ...Option) (*Bot, error) {
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if deps.Markets == nil || deps.Bettor == nil || deps.Status == nil {
		return nil, fmt.Errorf("bot: markets, bettor and status sources are required")
	}
	if deps.Classifier == nil {
		deps.Classifier = manifold.NewClassifier()
	}

	dates, err := incident.ParseDateExclusions(cfg.ExcludedDays)
	if err != nil {
		return nil, err
	}

	b := &Bot{
		cfg:        cfg,
		registry:   incident.NewRegistry(),
		exclusions: incident.NewExclusionSet(),
		dates:      dates,
		clock:      UTCClock{},
		log:        logger.WithComponent("bot"),
	}
	for _, opt := range opts {
		opt(b)
	}

	b.updater = NewUpdater(deps.Markets, deps.Classifier, b.registry, b.clock, cfg.MarketsInterval)
	b.updater.metrics = b.metrics
	b.scanner = NewScanner(deps.Status, deps.Bettor, b.registry, b.exclusions, b.dates, b.clock, cfg)
	b.scanner.metrics = b.metrics
	b.scanner.ledger = b.ledger
	return b, nil
}

// Run runs the updater and the scanner until one of them fails or ctx ends.
// The first failure cancels the other loop and is returned.
func (b *Bot) Run(ctx context.Context) error {
	b.log.Info("starting calabi, where's yau?", logger.Fields(
		"poll_interval", b.cfg.PollInterval.String(),
		"markets_interval", b.cfg.MarketsInterval.String(),
		"bet_size", b.cfg.BetSize,
		"bets_per_target", b.cfg.BetsPerTarget,
	))

	if err := b.restore(ctx); err != nil {
		return err
	}

	loops := resilience.NewBulkhead(resilience.BulkheadConfig{Name: "bot-loops", MaxConcurrent: 2})
	err := loops.RunAll(ctx, b.updater.Run, b.scanner.Run)
	if err != nil && ctx.Err() == nil {
		b.log.Error("bot stopped", logger.ErrorFields("run", err))
	}
	return err
}

// restore loads previously bet-on contracts so they are not bet on again.
func (b *Bot) restore(ctx context.Context) error {
	if b.ledger == nil {
		return nil
	}
	ids, err := b.ledger.Load(ctx)
	if err != nil {
		return err
	}
	b.exclusions.Add(ids...)
	if len(ids) > 0 {
		b.log.Info("restored exclusions", logger.Fields(logger.FieldCount, len(ids)))
	}
	return nil
}

// Snapshot is the bot's state as shown by the status server.
type Snapshot struct {
	Targets      []incident.Target `json:"targets" yaml:"targets"`
	Exclusions   []string          `json:"exclusions" yaml:"exclusions"`
	ExcludedDays []string          `json:"excluded_days" yaml:"excluded_days"`
	LastStatus   *StatusReport     `json:"last_status,omitempty" yaml:"last_status,omitempty"`
}

// Snapshot returns a copy of the current state.
func (b *Bot) Snapshot() Snapshot {
	return Snapshot{
		Targets:      b.registry.Targets(),
		Exclusions:   b.exclusions.List(),
		ExcludedDays: b.dates.Days(),
		LastStatus:   b.scanner.LastStatus(),
	}
}

// Registry exposes the live targets.
func (b *Bot) Registry() *incident.Registry { return b.registry }

// Updater returns the market loop.
func (b *Bot) Updater() *Updater { return b.updater }

// Scanner returns the status loop.
func (b *Bot) Scanner() *Scanner { return b.scanner }
