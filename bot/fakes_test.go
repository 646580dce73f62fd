package bot

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/alextes/calabi/githubstatus"
	"github.com/alextes/calabi/manifold"
)

const trusted = "HBlWMFF8XkcatdnIfNt0RPoCrXy1"

type fakeClock struct {
	mu     sync.Mutex
	now    time.Time
	sleeps []time.Duration
	// stopAfter cancels via errStop after this many sleeps; 0 never stops.
	stopAfter int
}

var errStop = errors.New("stop")

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Sleep(ctx context.Context, d time.Duration) error {
	c.mu.Lock()
	c.sleeps = append(c.sleeps, d)
	n := len(c.sleeps)
	c.mu.Unlock()
	if err := ctx.Err(); err != nil {
		return err
	}
	if c.stopAfter > 0 && n >= c.stopAfter {
		return errStop
	}
	return nil
}

func (c *fakeClock) Sleeps() []time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]time.Duration(nil), c.sleeps...)
}

type fakeMarkets struct {
	mu      sync.Mutex
	markets []manifold.Market
	err     error
	calls   int
}

func (f *fakeMarkets) FetchMarkets(ctx context.Context) ([]manifold.Market, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	return f.markets, f.err
}

type fakeStatus struct {
	mu         sync.Mutex
	indicators []string
	err        error
	calls      int
}

func (f *fakeStatus) IncidentStatus(ctx context.Context) (*githubstatus.StatusEnvelope, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	ind := "none"
	if len(f.indicators) > 0 {
		ind = f.indicators[0]
		if len(f.indicators) > 1 {
			f.indicators = f.indicators[1:]
		}
	}
	return &githubstatus.StatusEnvelope{Status: githubstatus.Status{Indicator: ind, Description: "desc " + ind}}, nil
}

type fakeBettor struct {
	mu      sync.Mutex
	batches [][]manifold.BetRequest
	err     error
}

func (f *fakeBettor) PlaceBets(ctx context.Context, bets []manifold.BetRequest) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.batches = append(f.batches, bets)
	return f.err
}

func (f *fakeBettor) Batches() [][]manifold.BetRequest {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([][]manifold.BetRequest(nil), f.batches...)
}

func market(id, question string) manifold.Market {
	return manifold.Market{ID: id, CreatorID: trusted, Question: question}
}

type fakeLedger struct {
	mu        sync.Mutex
	ids       []string
	loadErr   error
	recordErr error
}

func (f *fakeLedger) Load(ctx context.Context) ([]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.loadErr != nil {
		return nil, f.loadErr
	}
	return append([]string(nil), f.ids...), nil
}

func (f *fakeLedger) Record(ctx context.Context, ids ...string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.recordErr != nil {
		return f.recordErr
	}
	f.ids = append(f.ids, ids...)
	return nil
}

func (f *fakeLedger) IDs() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.ids...)
}
