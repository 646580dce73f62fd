package githubstatus

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	apperrors "github.com/alextes/calabi/errors"
	"github.com/alextes/calabi/httpclient"
	"github.com/alextes/calabi/resilience"
)

func fastBackoff() resilience.Backoff {
	return resilience.Backoff{
		InitialInterval:     time.Millisecond,
		Multiplier:          1.5,
		RandomizationFactor: 0,
		MaxInterval:         5 * time.Millisecond,
		MaxElapsedTime:      time.Second,
	}
}

func newTestClient(t *testing.T, url string) *Client {
	t.Helper()
	c, err := New(Config{StatusURL: url}, WithBackoff(fastBackoff()))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return c
}

func TestIncidentStatus(t *testing.T) {
	tests := []struct {
		name      string
		body      string
		indicator string
		ok        bool
	}{
		{"operational", `{"page":{"id":"kctbh9vrtdwd"},"status":{"indicator":"none","description":"All Systems Operational"}}`, "none", true},
		{"minor", `{"status":{"indicator":"minor","description":"Partially Degraded Service"}}`, "minor", false},
		{"critical", `{"status":{"indicator":"critical","description":"Major Service Outage"}}`, "critical", false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if r.Method != http.MethodGet {
					t.Errorf("expected GET, got %s", r.Method)
				}
				if !strings.HasPrefix(r.Header.Get("User-Agent"), "calabi/") {
					t.Errorf("unexpected user agent %q", r.Header.Get("User-Agent"))
				}
				if got := r.Header.Get("Cache-Control"); got != "no-cache" {
					t.Errorf("expected no-cache, got %q", got)
				}
				w.Header().Set("Content-Type", "application/json")
				_, _ = w.Write([]byte(tc.body))
			}))
			defer srv.Close()

			env, err := newTestClient(t, srv.URL+"/api/v2/status.json").IncidentStatus(context.Background())
			if err != nil {
				t.Fatalf("IncidentStatus: %v", err)
			}
			if env.Indicator() != tc.indicator || env.IsOK() != tc.ok {
				t.Errorf("got indicator=%q ok=%v", env.Indicator(), env.IsOK())
			}
			if env.Description() == "" {
				t.Error("expected description")
			}
		})
	}
}

func TestIncidentStatus_RetriesRateLimit(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) <= 2 {
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		_, _ = w.Write([]byte(`{"status":{"indicator":"none","description":"All Systems Operational"}}`))
	}))
	defer srv.Close()

	env, err := newTestClient(t, srv.URL).IncidentStatus(context.Background())
	if err != nil {
		t.Fatalf("IncidentStatus: %v", err)
	}
	if !env.IsOK() {
		t.Error("expected OK status after retries")
	}
	if n := calls.Load(); n != 3 {
		t.Errorf("expected 3 calls, got %d", n)
	}
}

func TestIncidentStatus_PermanentFailures(t *testing.T) {
	tests := []struct {
		name     string
		status   int
		body     string
		wantCode apperrors.ErrorCode
	}{
		{"server error", http.StatusInternalServerError, "", apperrors.ErrCodeExternalService},
		{"not found", http.StatusNotFound, "", apperrors.ErrCodeExternalService},
		{"bad json", http.StatusOK, "<html>", apperrors.ErrCodeExternalService},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var calls atomic.Int32
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				calls.Add(1)
				w.WriteHeader(tc.status)
				_, _ = w.Write([]byte(tc.body))
			}))
			defer srv.Close()

			_, err := newTestClient(t, srv.URL).IncidentStatus(context.Background())
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.HasPrefix(err.Error(), "failed to get GitHub status: ") {
				t.Errorf("unexpected message %q", err.Error())
			}
			if !apperrors.HasCode(err, tc.wantCode) {
				t.Errorf("expected %s, got %v", tc.wantCode, err)
			}
			if n := calls.Load(); n != 1 {
				t.Errorf("expected a single attempt, got %d", n)
			}
		})
	}
}

func TestIncidentStatus_RateLimitGivesUp(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer srv.Close()

	b := fastBackoff()
	b.MaxElapsedTime = 20 * time.Millisecond
	c, err := New(Config{StatusURL: srv.URL}, WithBackoff(b))
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	_, err = c.IncidentStatus(context.Background())
	if !errors.Is(err, resilience.ErrRetryTimeout) {
		t.Errorf("expected retry timeout, got %v", err)
	}
	if !apperrors.HasCode(err, apperrors.ErrCodeRateLimited) {
		t.Errorf("expected RATE_LIMITED, got %v", err)
	}
	if !httpclient.IsRateLimit(err) {
		t.Error("expected the 429 to stay visible in the chain")
	}
}

func TestIncidentStatus_ConnectionRefused(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	_, err := newTestClient(t, url).IncidentStatus(context.Background())
	if err == nil || !strings.HasPrefix(err.Error(), "failed to get GitHub status: ") {
		t.Fatalf("expected wrapped error, got %v", err)
	}
	if !apperrors.HasCode(err, apperrors.ErrCodeConnectionFailed) {
		t.Errorf("expected CONNECTION_FAILED, got %v", err)
	}
}

func TestIncidentStatus_ContextCanceled(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := newTestClient(t, srv.URL).IncidentStatus(ctx)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}

func TestConfig(t *testing.T) {
	var cfg Config
	cfg.ApplyDefaults()
	if cfg.StatusURL != DefaultStatusURL || cfg.Timeout != 10*time.Second || cfg.RetryFor != 15*time.Minute {
		t.Errorf("unexpected defaults %+v", cfg)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	if err := (&Config{}).Validate(); err == nil {
		t.Error("expected error for empty config")
	}
}
