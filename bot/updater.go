package bot

import (
	"context"
	"time"

	"github.com/alextes/calabi/incident"
	"github.com/alextes/calabi/logger"
	"github.com/alextes/calabi/manifold"
	"github.com/alextes/calabi/observability"
)

// MarketSource lists Manifold markets.
type MarketSource interface {
	FetchMarkets(ctx context.Context) ([]manifold.Market, error)
}

// Updater keeps the target registry in sync with Manifold.
type Updater struct {
	markets    MarketSource
	classifier *manifold.Classifier
	registry   *incident.Registry
	clock      Clock
	interval   time.Duration
	metrics    *observability.BotMetrics
	log        *logger.Logger
}

// NewUpdater creates an updater that refreshes registry every interval.
func NewUpdater(markets MarketSource, classifier *manifold.Classifier, registry *incident.Registry, clock Clock, interval time.Duration) *Updater {
	return &Updater{
		markets:    markets,
		classifier: classifier,
		registry:   registry,
		clock:      clock,
		interval:   interval,
		log:        logger.WithComponent("updater"),
	}
}

// Run refreshes targets until ctx ends or a market fetch fails.
func (u *Updater) Run(ctx context.Context) error {
	for {
		if err := u.Update(ctx); err != nil {
			return err
		}
		if err := u.clock.Sleep(ctx, u.interval); err != nil {
			return err
		}
	}
}

// Update runs one refresh: drop past targets, then add every new incident
// market that is not past yet. Markets whose question cannot be parsed are
// skipped with a warning.
func (u *Updater) Update(ctx context.Context) error {
	u.log.Debug("checking for new targets")
	for _, t := range u.registry.Targets() {
		u.log.Debug("current target", targetFields(t))
	}

	markets, err := u.markets.FetchMarkets(ctx)
	if err != nil {
		return err
	}

	now := u.clock.Now()
	if removed := u.registry.ClearOld(now); removed > 0 {
		u.log.Debug("cleared past targets", logger.Fields(logger.FieldCount, removed))
	}

	for _, m := range markets {
		kind, ok := u.classifier.Classify(m)
		if !ok {
			continue
		}

		target, err := incident.ParseTarget(m.ID, m.Question, kind)
		if err != nil {
			u.log.Warn("skipping market with unparsable question", logger.Fields(
				logger.FieldContractID, m.ID,
				"question", m.Question,
				logger.FieldError, err.Error(),
			))
			continue
		}

		if target.IsPast(now) {
			u.log.Trace("found past target, skipping", targetFields(target))
			continue
		}
		if u.registry.Exists(target.ContractID) {
			continue
		}

		u.log.Debug("found new "+kind.String()+" incident target", targetFields(target))
		u.registry.Add(target)
	}

	u.metrics.SetTargetsTracked(ctx, u.registry.Len())
	return nil
}

func targetFields(t incident.Target) map[string]interface{} {
	return logger.Fields(
		logger.FieldContractID, t.ContractID,
		logger.FieldIncidentType, t.Type.String(),
		logger.FieldTargetMonth, t.Month,
		logger.FieldTargetDay, t.Day,
	)
}
