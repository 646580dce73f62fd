package manifold

import (
	"context"
	"fmt"
	"strconv"

	"go.opentelemetry.io/otel/attribute"

	apperrors "github.com/alextes/calabi/errors"
	"github.com/alextes/calabi/httpclient"
	"github.com/alextes/calabi/incident"
	"github.com/alextes/calabi/logger"
	"github.com/alextes/calabi/observability"
	"github.com/alextes/calabi/resilience"
	"github.com/alextes/calabi/version"
)

// ServiceName names the upstream in logs, errors and health output.
const ServiceName = "manifold"

const (
	marketsPath = "/v0/markets"
	betPath     = "/v0/bet"
)

// BetRequest is the body of POST /v0/bet.
type BetRequest struct {
	Amount     int              `json:"amount"`
	Outcome    incident.Outcome `json:"outcome"`
	ContractID string           `json:"contractId"`
}

// BetResult is the part of the POST /v0/bet answer calabi logs.
type BetResult struct {
	BetID string `json:"betId"`
}

// Client talks to the Manifold API with the configured API key.
type Client struct {
	http     *httpclient.Client
	bulkhead *resilience.Bulkhead
	metrics  *observability.BotMetrics
	log      *logger.Logger
	limit    int
	readOnly bool
}

// Option configures a Client.
type Option func(*Client)

// WithMetrics records every bet into m.
func WithMetrics(m *observability.BotMetrics) Option {
	return func(c *Client) { c.metrics = m }
}

// WithLogger sets the client logger.
func WithLogger(l *logger.Logger) Option {
	return func(c *Client) { c.log = l }
}

// New creates a Manifold client. Every request carries
// "Authorization: Key <api key>".
func New(cfg Config, opts ...Option) (*Client, error) {
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return newClient(cfg, false, opts)
}

// NewReadOnly creates a client without credentials. It can list markets;
// bets fail with UNAUTHORIZED before any request is sent.
func NewReadOnly(cfg Config, opts ...Option) (*Client, error) {
	cfg.APIKey = ""
	cfg.ApplyDefaults()
	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("manifold.base_url is required")
	}
	return newClient(cfg, true, opts)
}

func newClient(cfg Config, readOnly bool, opts []Option) (*Client, error) {
	var auth *httpclient.AuthConfig
	if !readOnly {
		auth = httpclient.APIKeyAuthScheme(cfg.APIKey, "Authorization", "Key")
	}

	hc, err := httpclient.New(httpclient.Config{
		Name:      ServiceName,
		BaseURL:   cfg.BaseURL,
		Timeout:   cfg.Timeout,
		UserAgent: version.UserAgent(),
		Auth:      auth,
		RateLimiter: &resilience.RateLimiterConfig{
			Name:  ServiceName,
			Rate:  cfg.RequestsPerSecond,
			Burst: cfg.Burst,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("creating Manifold client: %w", err)
	}

	c := &Client{
		http:     hc,
		limit:    cfg.MarketsLimit,
		readOnly: readOnly,
		bulkhead: resilience.NewBulkhead(resilience.BulkheadConfig{
			Name:          "manifold-bets",
			MaxConcurrent: cfg.MaxConcurrentBets,
		}),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.log == nil {
		c.log = logger.WithComponent(ServiceName)
	}
	return c, nil
}

// FetchMarkets lists the newest MarketsLimit markets.
func (c *Client) FetchMarkets(ctx context.Context) ([]Market, error) {
	ctx, op := observability.StartOperation(ctx, "manifold.markets")

	resp, err := httpclient.Get[[]Market](c.http, ctx, marketsPath,
		httpclient.WithQueryParam("limit", strconv.Itoa(c.limit)))
	if err != nil {
		err = fmt.Errorf("fetching markets: %w", httpclient.ToAppError(ServiceName, err))
		op.End(err)
		return nil, err
	}

	op.SetAttributes(attribute.Int("markets", len(resp.Data)))
	op.End(nil)
	return resp.Data, nil
}

// Bet places a single bet.
func (c *Client) Bet(ctx context.Context, contractID string, outcome incident.Outcome, amount int) (err error) {
	ctx, op := observability.StartOperation(ctx, "manifold.bet",
		attribute.String(observability.AttrContractID, contractID),
		attribute.String(observability.AttrOutcome, string(outcome)),
		attribute.Int("bet.amount", amount),
	)
	defer func() {
		c.metrics.RecordBet(ctx, string(outcome), err)
		op.End(err)
	}()

	if c.readOnly {
		return apperrors.Unauthorized(ServiceName).WithDetail("reason", "read-only client")
	}
	if !outcome.Valid() {
		return apperrors.InvalidFormat("outcome", "YES or NO")
	}
	if amount <= 0 {
		return apperrors.Validation(fmt.Sprintf("bet amount must be positive (got: %d)", amount))
	}

	resp, err := httpclient.Post[BetResult](c.http, ctx, betPath,
		BetRequest{Amount: amount, Outcome: outcome, ContractID: contractID})
	if err != nil {
		return fmt.Errorf("placing bet on %s: %w", contractID, httpclient.ToAppError(ServiceName, err))
	}

	c.log.Debug("bet placed", logger.Fields(
		logger.FieldContractID, contractID,
		"bet_id", resp.Data.BetID,
		"status", resp.StatusCode,
	))
	return nil
}

// PlaceBets places all bets concurrently, at most MaxConcurrentBets at a
// time. It waits for every bet and returns the first failure.
func (c *Client) PlaceBets(ctx context.Context, bets []BetRequest) error {
	tasks := make([]func(context.Context) error, 0, len(bets))
	for _, b := range bets {
		tasks = append(tasks, func(ctx context.Context) error {
			return c.Bet(ctx, b.ContractID, b.Outcome, b.Amount)
		})
	}
	return c.bulkhead.RunAll(ctx, tasks...)
}

// HTTPClient returns the underlying client, for lifecycle registration.
func (c *Client) HTTPClient() *httpclient.Client {
	return c.http
}
