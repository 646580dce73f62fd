// Package resilience provides the fault-tolerance primitives calabi wraps
// around its upstream calls:
//
//   - Retry with exponential Backoff, used for GitHub status 429s
//   - Bulkhead, which caps concurrent bets and joins them (RunAll)
//   - RateLimiter, a token bucket pacing Manifold requests
//
// Errors wrapped with Permanent stop a retry loop immediately:
//
//	status, err := resilience.Retry(ctx, resilience.DefaultRetryConfig(), func() (*Status, error) {
//	    s, err := fetch(ctx)
//	    if err != nil && !isRateLimit(err) {
//	        return nil, resilience.Permanent(err)
//	    }
//	    return s, err
//	})
package resilience
