// Package redis connects calabi to Redis for state that must outlive a
// restart.
//
// The Component owns a pooled go-redis client and plugs into the component
// registry. The Ledger keeps the set of contracts already bet on:
//
//	comp := redis.NewComponent(cfg, log)
//	ledger := redis.NewLedger(comp, cfg.ExclusionsKey(), cfg.ExclusionTTL)
package redis
