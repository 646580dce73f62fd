// Package githubstatus reads the overall status of github.com from the
// public Statuspage API.
//
// Only a 429 answer is treated as transient; it is retried with exponential
// backoff for up to 15 minutes. Every other failure is returned at once,
// prefixed with "failed to get GitHub status".
package githubstatus
