package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/alextes/calabi/resilience"
)

// RateLimitConfig configures the rate limiting middleware.
type RateLimitConfig struct {
	// Limiter configures the token bucket given to each key.
	Limiter resilience.RateLimiterConfig
	// KeyFunc extracts the rate limit key from a request. Defaults to client IP.
	KeyFunc func(*gin.Context) string
	// IdleTTL drops a key's bucket once it has seen no request for this long.
	// Defaults to DefaultLimiterIdleTTL.
	IdleTTL time.Duration
	// Now defaults to time.Now.
	Now func() time.Time
}

// DefaultLimiterIdleTTL is how long an unused per-key bucket is kept.
const DefaultLimiterIdleTTL = 10 * time.Minute

type keyedLimiter struct {
	limiter  *resilience.RateLimiter
	lastSeen time.Time
}

// RateLimit returns a Gin middleware that gives each key its own token
// bucket and answers 429 once it is empty. Buckets idle for longer than
// IdleTTL are swept, at most once per IdleTTL.
func RateLimit(cfg RateLimitConfig) gin.HandlerFunc {
	if cfg.KeyFunc == nil {
		cfg.KeyFunc = IPBasedKey
	}
	if cfg.IdleTTL <= 0 {
		cfg.IdleTTL = DefaultLimiterIdleTTL
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}

	var (
		mu        sync.Mutex
		limiters  = make(map[string]*keyedLimiter)
		lastSweep = cfg.Now()
	)
	limiterFor := func(key string) *resilience.RateLimiter {
		mu.Lock()
		defer mu.Unlock()
		now := cfg.Now()
		if now.Sub(lastSweep) >= cfg.IdleTTL {
			for k, kl := range limiters {
				if now.Sub(kl.lastSeen) >= cfg.IdleTTL {
					delete(limiters, k)
				}
			}
			lastSweep = now
		}
		kl, ok := limiters[key]
		if !ok {
			kl = &keyedLimiter{limiter: resilience.NewRateLimiter(cfg.Limiter)}
			limiters[key] = kl
		}
		kl.lastSeen = now
		return kl.limiter
	}

	return func(c *gin.Context) {
		if !limiterFor(cfg.KeyFunc(c)).Allow() {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"error": "Rate limit exceeded",
			})
			return
		}
		c.Next()
	}
}

// IPBasedKey extracts the client IP for use as a rate limit key.
func IPBasedKey(c *gin.Context) string {
	return c.ClientIP()
}
