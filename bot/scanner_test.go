package bot

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	apperrors "github.com/alextes/calabi/errors"
	"github.com/alextes/calabi/incident"
)

type scannerFixture struct {
	scanner    *Scanner
	status     *fakeStatus
	bettor     *fakeBettor
	registry   *incident.Registry
	exclusions *incident.ExclusionSet
	clock      *fakeClock
}

func newScannerFixture(t *testing.T, now time.Time, indicators ...string) *scannerFixture {
	t.Helper()
	cfg := Config{}
	cfg.ApplyDefaults()
	dates, err := incident.ParseDateExclusions(cfg.ExcludedDays)
	if err != nil {
		t.Fatalf("ParseDateExclusions: %v", err)
	}
	f := &scannerFixture{
		status:     &fakeStatus{indicators: indicators},
		bettor:     &fakeBettor{},
		registry:   incident.NewRegistry(),
		exclusions: incident.NewExclusionSet(),
		clock:      &fakeClock{now: now},
	}
	f.scanner = NewScanner(f.status, f.bettor, f.registry, f.exclusions, dates, f.clock, cfg)
	return f
}

var aug30 = time.Date(2023, 8, 30, 14, 0, 0, 0, time.UTC)

func TestScanner_NoIncident(t *testing.T) {
	f := newScannerFixture(t, aug30, "none")
	f.registry.Add(incident.Target{ContractID: "c1", Month: 8, Day: 30, Type: incident.Any})

	wait, err := f.scanner.Step(context.Background())
	if err != nil {
		t.Fatalf("Step: %v", err)
	}
	if wait != 500*time.Millisecond {
		t.Errorf("expected poll interval, got %v", wait)
	}
	if len(f.bettor.Batches()) != 0 {
		t.Error("expected no bets")
	}
	if last := f.scanner.LastStatus(); last == nil || last.Indicator != "none" || !last.CheckedAt.Equal(aug30) {
		t.Errorf("unexpected last status %+v", last)
	}
}

func TestScanner_BetsOnMatchingTargets(t *testing.T) {
	f := newScannerFixture(t, aug30, "minor")
	f.registry.Add(incident.Target{ContractID: "any-today", Month: 8, Day: 30, Type: incident.Any})
	f.registry.Add(incident.Target{ContractID: "red-today", Month: 8, Day: 30, Type: incident.Red})
	f.registry.Add(incident.Target{ContractID: "any-tomorrow", Month: 8, Day: 31, Type: incident.Any})

	if _, err := f.scanner.Step(context.Background()); err != nil {
		t.Fatalf("Step: %v", err)
	}

	batches := f.bettor.Batches()
	if len(batches) != 1 {
		t.Fatalf("expected one batch, got %d", len(batches))
	}
	bets := batches[0]
	if len(bets) != 2 {
		t.Fatalf("expected 2 bets, got %+v", bets)
	}
	for _, b := range bets {
		if b.ContractID != "any-today" || b.Amount != 500 || b.Outcome != incident.Yes {
			t.Errorf("unexpected bet %+v", b)
		}
	}
	if !f.exclusions.Contains("any-today") || f.exclusions.Contains("red-today") {
		t.Errorf("unexpected exclusions %v", f.exclusions.List())
	}
}

func TestScanner_RedIncidentSettlesBothMarketTypes(t *testing.T) {
	f := newScannerFixture(t, aug30, "critical")
	f.registry.Add(incident.Target{ContractID: "any-today", Month: 8, Day: 30, Type: incident.Any})
	f.registry.Add(incident.Target{ContractID: "red-today", Month: 8, Day: 30, Type: incident.Red})

	if _, err := f.scanner.Step(context.Background()); err != nil {
		t.Fatalf("Step: %v", err)
	}
	bets := f.bettor.Batches()[0]
	if len(bets) != 4 {
		t.Fatalf("expected 4 bets, got %d", len(bets))
	}
	if got := strings.Join(f.exclusions.List(), ","); got != "any-today,red-today" {
		t.Errorf("unexpected exclusions %q", got)
	}
}

func TestScanner_ExactTypeMatch(t *testing.T) {
	tests := []struct {
		indicator string
		want      string
	}{
		{"critical", "red-today"},
		{"major", "any-today"},
	}
	for _, tc := range tests {
		t.Run(tc.indicator, func(t *testing.T) {
			f := newScannerFixture(t, aug30, tc.indicator)
			f.scanner.cfg.ExactTypeMatch = true
			f.registry.Add(incident.Target{ContractID: "any-today", Month: 8, Day: 30, Type: incident.Any})
			f.registry.Add(incident.Target{ContractID: "red-today", Month: 8, Day: 30, Type: incident.Red})

			if _, err := f.scanner.Step(context.Background()); err != nil {
				t.Fatalf("Step: %v", err)
			}
			bets := f.bettor.Batches()[0]
			if len(bets) != 2 {
				t.Fatalf("expected 2 bets, got %d", len(bets))
			}
			for _, b := range bets {
				if b.ContractID != tc.want {
					t.Errorf("unexpected bet on %s", b.ContractID)
				}
			}
			if got := strings.Join(f.exclusions.List(), ","); got != tc.want {
				t.Errorf("unexpected exclusions %q", got)
			}
		})
	}
}

func TestScanner_SkipsExcludedContracts(t *testing.T) {
	f := newScannerFixture(t, aug30, "major")
	f.registry.Add(incident.Target{ContractID: "c1", Month: 8, Day: 30, Type: incident.Any})

	for i := 0; i < 3; i++ {
		if _, err := f.scanner.Step(context.Background()); err != nil {
			t.Fatalf("Step %d: %v", i, err)
		}
	}
	if n := len(f.bettor.Batches()); n != 1 {
		t.Errorf("expected a single batch across repeated incidents, got %d", n)
	}
}

func TestScanner_ExcludedDay(t *testing.T) {
	f := newScannerFixture(t, time.Date(2023, 9, 6, 9, 0, 0, 0, time.UTC), "critical")
	f.registry.Add(incident.Target{ContractID: "c1", Month: 9, Day: 6, Type: incident.Any})

	wait, err := f.scanner.Step(context.Background())
	if err != nil {
		t.Fatalf("Step: %v", err)
	}
	if wait != 20*time.Minute {
		t.Errorf("expected 20m sleep, got %v", wait)
	}
	if f.status.calls != 0 {
		t.Error("expected no status poll on an excluded day")
	}
	if len(f.bettor.Batches()) != 0 {
		t.Error("expected no bets on an excluded day")
	}
}

func TestScanner_Errors(t *testing.T) {
	t.Run("status failure", func(t *testing.T) {
		f := newScannerFixture(t, aug30)
		f.status.err = errors.New("failed to get GitHub status: HTTP 500")
		if _, err := f.scanner.Step(context.Background()); err == nil || !strings.Contains(err.Error(), "failed to get GitHub status") {
			t.Errorf("expected status error, got %v", err)
		}
	})

	t.Run("unknown indicator", func(t *testing.T) {
		f := newScannerFixture(t, aug30, "maintenance")
		_, err := f.scanner.Step(context.Background())
		if !apperrors.HasCode(err, apperrors.ErrCodeUnknownIndicator) {
			t.Errorf("expected unknown indicator, got %v", err)
		}
		if !strings.Contains(err.Error(), "unknown incident type: maintenance") {
			t.Errorf("unexpected message %q", err.Error())
		}
	})

	t.Run("bet failure", func(t *testing.T) {
		f := newScannerFixture(t, aug30, "minor")
		f.registry.Add(incident.Target{ContractID: "c1", Month: 8, Day: 30, Type: incident.Any})
		f.bettor.err = errors.New("placing bet on c1: HTTP 400")
		if _, err := f.scanner.Step(context.Background()); err == nil {
			t.Fatal("expected bet error")
		}
		if f.exclusions.Contains("c1") {
			t.Error("failed targets must not be excluded")
		}
	})
}

func TestScanner_RunEndsOnError(t *testing.T) {
	f := newScannerFixture(t, aug30, "none", "none", "bogus")
	err := f.scanner.Run(context.Background())
	if !apperrors.HasCode(err, apperrors.ErrCodeUnknownIndicator) {
		t.Fatalf("expected unknown indicator, got %v", err)
	}
	if n := len(f.clock.Sleeps()); n != 2 {
		t.Errorf("expected 2 sleeps before the failure, got %d", n)
	}
}

func TestScanner_RecordsExclusionsInLedger(t *testing.T) {
	f := newScannerFixture(t, aug30, "minor")
	ledger := &fakeLedger{}
	f.scanner.ledger = ledger
	f.registry.Add(incident.Target{ContractID: "c1", Month: 8, Day: 30, Type: incident.Any})

	if _, err := f.scanner.Step(context.Background()); err != nil {
		t.Fatalf("Step: %v", err)
	}
	if got := strings.Join(ledger.IDs(), ","); got != "c1" {
		t.Errorf("expected c1 recorded, got %q", got)
	}
}

func TestScanner_LedgerFailureKeepsRunning(t *testing.T) {
	f := newScannerFixture(t, aug30, "minor", "minor")
	f.scanner.ledger = &fakeLedger{recordErr: errors.New("connection refused")}
	f.registry.Add(incident.Target{ContractID: "c1", Month: 8, Day: 30, Type: incident.Any})

	for i := 0; i < 2; i++ {
		if _, err := f.scanner.Step(context.Background()); err != nil {
			t.Fatalf("Step %d: %v", i, err)
		}
	}
	if !f.exclusions.Contains("c1") {
		t.Error("expected c1 excluded in memory")
	}
	if n := len(f.bettor.Batches()); n != 1 {
		t.Errorf("expected a single batch, got %d", n)
	}
}
