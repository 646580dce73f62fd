package redis

import (
	"context"
	"fmt"
	"slices"
	"time"

	goredis "github.com/redis/go-redis/v9"
)

// Ledger stores the contracts already bet on in a Redis set.
type Ledger struct {
	comp *Component
	key  string
	ttl  time.Duration
}

// NewLedger creates a ledger over comp's client. The set expires ttl after
// its last write; ttl 0 keeps it forever.
func NewLedger(comp *Component, key string, ttl time.Duration) *Ledger {
	return &Ledger{comp: comp, key: key, ttl: ttl}
}

// Load returns every recorded contract ID, sorted.
func (l *Ledger) Load(ctx context.Context) ([]string, error) {
	client := l.comp.Client()
	if client == nil {
		return nil, fmt.Errorf("loading exclusions: redis not started")
	}
	ids, err := client.Unwrap().SMembers(ctx, l.key).Result()
	if err != nil {
		return nil, fmt.Errorf("loading exclusions: %w", err)
	}
	slices.Sort(ids)
	return ids, nil
}

// Record adds ids to the set and refreshes its expiry.
func (l *Ledger) Record(ctx context.Context, ids ...string) error {
	if len(ids) == 0 {
		return nil
	}
	client := l.comp.Client()
	if client == nil {
		return fmt.Errorf("recording exclusions: redis not started")
	}

	members := make([]interface{}, len(ids))
	for i, id := range ids {
		members[i] = id
	}
	_, err := client.Unwrap().TxPipelined(ctx, func(p goredis.Pipeliner) error {
		p.SAdd(ctx, l.key, members...)
		if l.ttl > 0 {
			p.Expire(ctx, l.key, l.ttl)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("recording exclusions: %w", err)
	}
	return nil
}
