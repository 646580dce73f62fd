package incident

import (
	"cmp"
	"slices"
	"sync"
	"time"
)

// Registry is the set of live targets keyed by contract id. It is safe for
// concurrent use by the updater and the scanner.
type Registry struct {
	mu      sync.RWMutex
	targets map[string]Target
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{targets: make(map[string]Target)}
}

// Add inserts or replaces a target.
func (r *Registry) Add(t Target) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.targets[t.ContractID] = t
}

// Exists reports whether a target with this contract id is tracked.
func (r *Registry) Exists(contractID string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.targets[contractID]
	return ok
}

// Len returns the number of tracked targets.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.targets)
}

// Targets returns a snapshot of all targets ordered by date, then contract id.
func (r *Registry) Targets() []Target {
	r.mu.RLock()
	out := make([]Target, 0, len(r.targets))
	for _, t := range r.targets {
		out = append(out, t)
	}
	r.mu.RUnlock()

	sortTargets(out)
	return out
}

// ClearOld drops targets whose day has passed at now and returns how many
// were dropped. Today's targets stay.
func (r *Registry) ClearOld(now time.Time) int {
	r.mu.Lock()
	defer r.mu.Unlock()

	removed := 0
	for id, t := range r.targets {
		if t.IsPast(now) {
			delete(r.targets, id)
			removed++
		}
	}
	return removed
}

// Matching returns the targets a live incident of type live settles YES today.
func (r *Registry) Matching(now time.Time, live Type) []Target {
	r.mu.RLock()
	var out []Target
	for _, t := range r.targets {
		if t.Matches(now, live) {
			out = append(out, t)
		}
	}
	r.mu.RUnlock()

	sortTargets(out)
	return out
}

func sortTargets(ts []Target) {
	slices.SortFunc(ts, func(a, b Target) int {
		return cmp.Or(
			cmp.Compare(a.Year, b.Year),
			cmp.Compare(a.Month, b.Month),
			cmp.Compare(a.Day, b.Day),
			cmp.Compare(a.ContractID, b.ContractID),
		)
	})
}
