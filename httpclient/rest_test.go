package httpclient

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

type market struct {
	ID       string `json:"id"`
	Question string `json:"question"`
}

func TestGet_Decodes(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("limit") != "10" {
			t.Errorf("expected limit query, got %q", r.URL.RawQuery)
		}
		if r.Header.Get("X-Trace") != "1" {
			t.Error("expected X-Trace header")
		}
		_ = json.NewEncoder(w).Encode([]market{{ID: "a", Question: "Will GitHub have any incident on May 3?"}})
	}))
	defer srv.Close()

	c := newTestClient(t, Config{BaseURL: srv.URL})
	resp, err := Get[[]market](c, context.Background(), "/v0/markets",
		WithQueryParam("limit", "10"), WithHeader("X-Trace", "1"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(resp.Data) != 1 || resp.Data[0].ID != "a" {
		t.Errorf("unexpected data: %+v", resp.Data)
	}
}

func TestPost_EmptyBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	c := newTestClient(t, Config{BaseURL: srv.URL})
	resp, err := Post[map[string]any](c, context.Background(), "/v0/bet", map[string]any{"amount": 1})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.StatusCode != http.StatusOK || resp.Data != nil {
		t.Errorf("unexpected response: %+v", resp)
	}
}

func TestGet_DecodeError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("<html>maintenance</html>"))
	}))
	defer srv.Close()

	c := newTestClient(t, Config{BaseURL: srv.URL})
	_, err := Get[[]market](c, context.Background(), "/v0/markets")
	var e *Error
	if !asErrorValue(err, &e) || e.Code != ErrCodeDecode {
		t.Fatalf("expected decode error, got %v", err)
	}
}

func TestGet_ErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer srv.Close()

	c := newTestClient(t, Config{BaseURL: srv.URL})
	resp, err := Get[[]market](c, context.Background(), "/v0/markets")
	if !IsAuth(err) {
		t.Fatalf("expected auth error, got %v", err)
	}
	if resp != nil {
		t.Error("expected nil typed response on error")
	}
}

func asErrorValue(err error, target **Error) bool {
	e, ok := err.(*Error)
	if ok {
		*target = e
	}
	return ok
}
