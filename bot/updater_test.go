package bot

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alextes/calabi/incident"
	"github.com/alextes/calabi/manifold"
)

func newTestUpdater(markets *fakeMarkets, now time.Time) (*Updater, *incident.Registry, *fakeClock) {
	reg := incident.NewRegistry()
	clock := &fakeClock{now: now}
	return NewUpdater(markets, manifold.NewClassifier(), reg, clock, 6*time.Second), reg, clock
}

func TestUpdater_Update(t *testing.T) {
	markets := &fakeMarkets{markets: []manifold.Market{
		market("today-any", "Will GitHub have any incident on August 30th 2023?"),
		market("today-red", "Will GitHub have a red incident on August 30th 2023?"),
		market("tomorrow", "Will GitHub have any incident on August 31st 2023?"),
		market("yesterday", "Will GitHub have any incident on August 29th 2023?"),
		market("garbled", "Will GitHub have any incident soon?"),
		{ID: "stranger", CreatorID: "nobody", Question: "Will GitHub have any incident on August 30th 2023?"},
		market("unrelated", "Will it rain on August 30th?"),
	}}
	u, reg, _ := newTestUpdater(markets, time.Date(2023, 8, 30, 10, 0, 0, 0, time.UTC))

	if err := u.Update(context.Background()); err != nil {
		t.Fatalf("Update: %v", err)
	}

	var ids []string
	for _, tgt := range reg.Targets() {
		ids = append(ids, tgt.ContractID)
	}
	want := []string{"today-any", "today-red", "tomorrow"}
	if len(ids) != len(want) {
		t.Fatalf("expected %v, got %v", want, ids)
	}
	for i := range want {
		if ids[i] != want[i] {
			t.Errorf("expected %v, got %v", want, ids)
			break
		}
	}

	targets := reg.Targets()
	if targets[1].Type != incident.Red {
		t.Errorf("expected red target, got %+v", targets[1])
	}
}

func TestUpdater_ClearsOldAndKeepsExisting(t *testing.T) {
	markets := &fakeMarkets{}
	u, reg, _ := newTestUpdater(markets, time.Date(2023, 8, 31, 0, 0, 1, 0, time.UTC))
	reg.Add(incident.Target{ContractID: "old", Month: 8, Day: 30, Type: incident.Any})
	reg.Add(incident.Target{ContractID: "today", Month: 8, Day: 31, Type: incident.Any})

	if err := u.Update(context.Background()); err != nil {
		t.Fatalf("Update: %v", err)
	}
	if reg.Exists("old") || !reg.Exists("today") {
		t.Errorf("unexpected targets %+v", reg.Targets())
	}

	markets.markets = []manifold.Market{market("today", "Will GitHub have a red incident on August 31st 2023?")}
	if err := u.Update(context.Background()); err != nil {
		t.Fatalf("Update: %v", err)
	}
	if got := reg.Targets()[0].Type; got != incident.Any {
		t.Errorf("known targets must not be replaced, got type %v", got)
	}
}

func TestUpdater_RunStopsOnFetchError(t *testing.T) {
	fetchErr := errors.New("fetching markets: HTTP 502")
	markets := &fakeMarkets{err: fetchErr}
	u, _, clock := newTestUpdater(markets, time.Now().UTC())

	err := u.Run(context.Background())
	if !errors.Is(err, fetchErr) {
		t.Errorf("expected fetch error, got %v", err)
	}
	if len(clock.Sleeps()) != 0 {
		t.Error("expected no sleep after a failed fetch")
	}
}

func TestUpdater_RunSleepsBetweenRefreshes(t *testing.T) {
	markets := &fakeMarkets{}
	u, _, clock := newTestUpdater(markets, time.Now().UTC())
	clock.stopAfter = 3

	if err := u.Run(context.Background()); !errors.Is(err, errStop) {
		t.Fatalf("expected stop, got %v", err)
	}
	if markets.calls != 3 {
		t.Errorf("expected 3 fetches, got %d", markets.calls)
	}
	for _, d := range clock.Sleeps() {
		if d != 6*time.Second {
			t.Errorf("expected 6s interval, got %v", d)
		}
	}
}
