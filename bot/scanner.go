package bot

import (
	"context"
	"slices"
	"sync"
	"time"

	"github.com/alextes/calabi/githubstatus"
	"github.com/alextes/calabi/incident"
	"github.com/alextes/calabi/logger"
	"github.com/alextes/calabi/manifold"
	"github.com/alextes/calabi/observability"
)

// StatusSource reports GitHub's current status.
type StatusSource interface {
	IncidentStatus(ctx context.Context) (*githubstatus.StatusEnvelope, error)
}

// Bettor places a batch of bets and returns the first failure.
type Bettor interface {
	PlaceBets(ctx context.Context, bets []manifold.BetRequest) error
}

// StatusReport is the outcome of the most recent status poll.
type StatusReport struct {
	Indicator   string    `json:"indicator" yaml:"indicator"`
	Description string    `json:"description" yaml:"description"`
	CheckedAt   time.Time `json:"checked_at" yaml:"checked_at"`
}

// Scanner polls GitHub and bets on matching targets during incidents.
type Scanner struct {
	status     StatusSource
	bettor     Bettor
	registry   *incident.Registry
	exclusions *incident.ExclusionSet
	dates      *incident.DateExclusions
	clock      Clock
	cfg        Config
	metrics    *observability.BotMetrics
	ledger     Ledger
	log        *logger.Logger

	mu   sync.RWMutex
	last *StatusReport
}

// NewScanner creates a scanner. cfg must have defaults applied.
func NewScanner(status StatusSource, bettor Bettor, registry *incident.Registry, exclusions *incident.ExclusionSet, dates *incident.DateExclusions, clock Clock, cfg Config) *Scanner {
	return &Scanner{
		status:     status,
		bettor:     bettor,
		registry:   registry,
		exclusions: exclusions,
		dates:      dates,
		clock:      clock,
		cfg:        cfg,
		log:        logger.WithComponent("scanner"),
	}
}

// Run scans until ctx ends or a step fails.
func (s *Scanner) Run(ctx context.Context) error {
	for {
		wait, err := s.Step(ctx)
		if err != nil {
			return err
		}
		if err := s.clock.Sleep(ctx, wait); err != nil {
			return err
		}
	}
}

// Step runs one scan and returns how long to sleep before the next. A
// status failure, an unknown indicator or a failed bet ends the loop.
func (s *Scanner) Step(ctx context.Context) (time.Duration, error) {
	now := s.clock.Now()

	if s.dates.Contains(now) {
		s.log.Info("today is on the exclusion list, sleeping", logger.Fields(
			logger.FieldTodayMonth, int(now.Month()),
			logger.FieldTodayDay, now.Day(),
			"sleep", s.cfg.ExclusionDaySleep.String(),
		))
		return s.cfg.ExclusionDaySleep, nil
	}

	env, err := s.status.IncidentStatus(ctx)
	if err != nil {
		s.metrics.RecordStatusPoll(ctx, "", err)
		return 0, err
	}
	s.metrics.RecordStatusPoll(ctx, env.Indicator(), nil)
	s.record(env, now)

	if env.IsOK() {
		s.log.Debug("GitHub is working fine, nothing to do, sleeping")
		return s.cfg.PollInterval, nil
	}

	live, err := incident.ParseIndicator(env.Indicator())
	if err != nil {
		return 0, err
	}
	s.metrics.RecordIncident(ctx, live.String())

	s.log.Debug("GitHub has an incident!", logger.Fields(
		logger.FieldIndicator, live.String(),
		"description", env.Description(),
	))
	if live == incident.Red {
		s.log.Info("It's a red incident 🤑!")
	}

	s.log.Debug("have live targets", logger.Fields(logger.FieldCount, s.registry.Len()))
	matching := s.registry.Matching(now, live)
	if s.cfg.ExactTypeMatch {
		matching = slices.DeleteFunc(matching, func(t incident.Target) bool { return t.Type != live })
	}
	s.log.Debug("have matching targets", logger.Fields(logger.FieldCount, len(matching)))

	fresh := matching[:0:0]
	for _, t := range matching {
		if !s.exclusions.Contains(t.ContractID) {
			fresh = append(fresh, t)
		}
	}
	s.log.Debug("have matching targets not on exclusion list", logger.Fields(logger.FieldCount, len(fresh)))
	if len(fresh) == 0 {
		return s.cfg.PollInterval, nil
	}

	bets := make([]manifold.BetRequest, 0, len(fresh)*s.cfg.BetsPerTarget)
	ids := make([]string, 0, len(fresh))
	for _, t := range fresh {
		s.log.Debug("target matches incident, queuing bet", logger.Fields(
			logger.FieldIncidentType, live.String(),
			logger.FieldContractID, t.ContractID,
			logger.FieldTodayMonth, int(now.Month()),
			logger.FieldTodayDay, now.Day(),
			logger.FieldTargetMonth, t.Month,
			logger.FieldTargetDay, t.Day,
		))
		// The balance is unknown, so the stake is split over several bets.
		for range s.cfg.BetsPerTarget {
			bets = append(bets, manifold.BetRequest{
				Amount:     s.cfg.BetSize,
				Outcome:    incident.Yes,
				ContractID: t.ContractID,
			})
		}
		ids = append(ids, t.ContractID)
	}

	if err := s.bettor.PlaceBets(ctx, bets); err != nil {
		return 0, err
	}
	s.log.Info("bets placed", logger.Fields(
		logger.FieldCount, len(bets),
		"targets", ids,
	))
	s.exclusions.Add(ids...)
	if s.ledger != nil {
		// The in-memory set still guards this run.
		if err := s.ledger.Record(ctx, ids...); err != nil {
			s.log.Warn("failed to persist exclusions", logger.ErrorFields("record_exclusions", err))
		}
	}

	return s.cfg.PollInterval, nil
}

// LastStatus returns the most recent successful poll, or nil before the first.
func (s *Scanner) LastStatus() *StatusReport {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.last == nil {
		return nil
	}
	r := *s.last
	return &r
}

func (s *Scanner) record(env *githubstatus.StatusEnvelope, at time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.last = &StatusReport{Indicator: env.Indicator(), Description: env.Description(), CheckedAt: at}
}
