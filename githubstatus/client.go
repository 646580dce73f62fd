package githubstatus

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"github.com/alextes/calabi/httpclient"
	"github.com/alextes/calabi/logger"
	"github.com/alextes/calabi/observability"
	"github.com/alextes/calabi/resilience"
	"github.com/alextes/calabi/version"
)

// ServiceName names the upstream in logs, errors and health output.
const ServiceName = "github-status"

// Client polls the GitHub status page.
type Client struct {
	http *httpclient.Client
	url  string
	log  *logger.Logger
}

// Option configures a Client.
type Option func(*options)

type options struct {
	backoff *resilience.Backoff
	log     *logger.Logger
}

// WithBackoff overrides the retry policy for 429 answers. MaxElapsedTime
// still comes from Config.RetryFor when unset.
func WithBackoff(b resilience.Backoff) Option {
	return func(o *options) { o.backoff = &b }
}

// WithLogger sets the client logger.
func WithLogger(l *logger.Logger) Option {
	return func(o *options) { o.log = l }
}

// New creates a status client.
func New(cfg Config, opts ...Option) (*Client, error) {
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	o := &options{}
	for _, opt := range opts {
		opt(o)
	}
	b := resilience.DefaultBackoff()
	if o.backoff != nil {
		b = *o.backoff
	}
	if b.MaxElapsedTime == 0 {
		b.MaxElapsedTime = cfg.RetryFor
	}
	log := o.log
	if log == nil {
		log = logger.WithComponent(ServiceName)
	}

	retry := httpclient.RateLimitRetryConfig(b)
	retry.OnRetry = func(attempt int, err error, wait time.Duration) {
		log.Warn("GitHub status rate limited, backing off", logger.Fields(
			"attempt", attempt,
			"wait", wait.String(),
		))
	}

	hc, err := httpclient.New(httpclient.Config{
		Name:      ServiceName,
		BaseURL:   cfg.StatusURL,
		Timeout:   cfg.Timeout,
		UserAgent: version.UserAgent(),
		Retry:     retry,
	})
	if err != nil {
		return nil, fmt.Errorf("creating GitHub status client: %w", err)
	}

	return &Client{http: hc, url: cfg.StatusURL, log: log}, nil
}

// IncidentStatus fetches the current status. A 429 is retried with backoff;
// any other failure is returned immediately. Caches are asked for a fresh copy.
func (c *Client) IncidentStatus(ctx context.Context) (*StatusEnvelope, error) {
	ctx, op := observability.StartOperation(ctx, "github.status")

	resp, err := httpclient.Get[StatusEnvelope](c.http, ctx, c.url,
		httpclient.WithHeader("Cache-Control", "no-cache"))
	if err != nil {
		err = fmt.Errorf("failed to get GitHub status: %w", httpclient.ToAppError(ServiceName, err))
		op.End(err)
		return nil, err
	}

	env := resp.Data
	op.SetAttributes(attribute.String(observability.AttrIndicator, env.Indicator()))
	op.End(nil)
	return &env, nil
}

// HTTPClient returns the underlying client, for lifecycle registration.
func (c *Client) HTTPClient() *httpclient.Client {
	return c.http
}
