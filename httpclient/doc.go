// Package httpclient is the HTTP client calabi uses to talk to upstream APIs.
//
// A Client owns a base URL, default headers, authentication, a timeout and
// optional retry and rate limiting. Non-2xx answers come back as *Error
// values classified by status code, so callers can tell a 429 from a 500:
//
//	client, _ := httpclient.New(httpclient.Config{
//	    BaseURL:     "https://manifold.markets/api",
//	    Auth:        httpclient.APIKeyAuthScheme(key, "Authorization", "Key"),
//	    RateLimiter: httpclient.DefaultRateLimiterConfig("manifold"),
//	})
//
//	markets, err := httpclient.Get[[]Market](client, ctx, "/v0/markets")
package httpclient
