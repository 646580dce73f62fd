package incident

import (
	"fmt"
	"slices"
	"sync"
	"time"
)

// ExclusionSet holds contract ids the bot has already bet on.
type ExclusionSet struct {
	mu  sync.RWMutex
	ids map[string]struct{}
}

// NewExclusionSet creates an empty set.
func NewExclusionSet() *ExclusionSet {
	return &ExclusionSet{ids: make(map[string]struct{})}
}

// Add adds contract ids to the set.
func (s *ExclusionSet) Add(ids ...string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, id := range ids {
		s.ids[id] = struct{}{}
	}
}

// Contains reports whether id is excluded.
func (s *ExclusionSet) Contains(id string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.ids[id]
	return ok
}

// Len returns the number of excluded ids.
func (s *ExclusionSet) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.ids)
}

// List returns the excluded ids in sorted order.
func (s *ExclusionSet) List() []string {
	s.mu.RLock()
	out := make([]string, 0, len(s.ids))
	for id := range s.ids {
		out = append(out, id)
	}
	s.mu.RUnlock()

	slices.Sort(out)
	return out
}

// DateLayout is the format of configured exclusion days.
const DateLayout = "2006-01-02"

// DefaultExcludedDays are the days the scanner sits out unless configured.
var DefaultExcludedDays = []string{"2023-09-06"}

// DateExclusions is a set of calendar days on which the scanner does not bet.
type DateExclusions struct {
	days map[string]struct{}
}

// ParseDateExclusions builds the set from YYYY-MM-DD strings.
func ParseDateExclusions(days []string) (*DateExclusions, error) {
	d := &DateExclusions{days: make(map[string]struct{}, len(days))}
	for _, s := range days {
		t, err := time.Parse(DateLayout, s)
		if err != nil {
			return nil, fmt.Errorf("invalid excluded day %q: %w", s, err)
		}
		d.days[t.Format(DateLayout)] = struct{}{}
	}
	return d, nil
}

// Contains reports whether the calendar day of t, in t's location, is excluded.
func (d *DateExclusions) Contains(t time.Time) bool {
	if d == nil {
		return false
	}
	_, ok := d.days[t.Format(DateLayout)]
	return ok
}

// Days returns the excluded days in sorted order.
func (d *DateExclusions) Days() []string {
	if d == nil {
		return nil
	}
	out := make([]string, 0, len(d.days))
	for day := range d.days {
		out = append(out, day)
	}
	slices.Sort(out)
	return out
}
