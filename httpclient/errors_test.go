package httpclient

import (
	"errors"
	"fmt"
	"testing"

	apperrors "github.com/alextes/calabi/errors"
)

func TestErrorCode_String(t *testing.T) {
	tests := []struct {
		code ErrorCode
		want string
	}{
		{ErrCodeTimeout, "timeout"},
		{ErrCodeConnection, "connection"},
		{ErrCodeAuth, "auth"},
		{ErrCodeNotFound, "not_found"},
		{ErrCodeRateLimit, "rate_limit"},
		{ErrCodeValidation, "validation"},
		{ErrCodeServer, "server"},
		{ErrCodeDecode, "decode"},
		{ErrorCode(99), "unknown"},
	}
	for _, tt := range tests {
		if got := tt.code.String(); got != tt.want {
			t.Errorf("ErrorCode(%d).String() = %q, want %q", tt.code, got, tt.want)
		}
	}
}

func TestError_Error(t *testing.T) {
	e := ClassifyStatusCode(404, nil)
	want := "httpclient: not_found (HTTP 404): HTTP 404 Not Found"
	if got := e.Error(); got != want {
		t.Errorf("got %q, want %q", got, want)
	}

	e2 := &Error{Code: ErrCodeConnection, Message: "connection refused"}
	want2 := "httpclient: connection: connection refused"
	if got := e2.Error(); got != want2 {
		t.Errorf("got %q, want %q", got, want2)
	}
}

func TestError_Unwrap(t *testing.T) {
	inner := errors.New("dial tcp: refused")
	outer := NewConnectionError(inner)
	if !errors.Is(outer, inner) {
		t.Error("expected errors.Is to reach the inner error")
	}
}

func TestClassifyStatusCode(t *testing.T) {
	tests := []struct {
		code    int
		wantNil bool
		errCode ErrorCode
		retry   bool
	}{
		{200, true, 0, false},
		{204, true, 0, false},
		{400, false, ErrCodeValidation, false},
		{401, false, ErrCodeAuth, false},
		{403, false, ErrCodeAuth, false},
		{404, false, ErrCodeNotFound, false},
		{429, false, ErrCodeRateLimit, true},
		{500, false, ErrCodeServer, true},
		{503, false, ErrCodeServer, true},
		{302, false, ErrCodeServer, false},
	}
	for _, tt := range tests {
		e := ClassifyStatusCode(tt.code, nil)
		if tt.wantNil {
			if e != nil {
				t.Errorf("ClassifyStatusCode(%d): expected nil, got %v", tt.code, e)
			}
			continue
		}
		if e == nil {
			t.Errorf("ClassifyStatusCode(%d): expected error, got nil", tt.code)
			continue
		}
		if e.Code != tt.errCode {
			t.Errorf("ClassifyStatusCode(%d): code = %v, want %v", tt.code, e.Code, tt.errCode)
		}
		if e.Retryable != tt.retry {
			t.Errorf("ClassifyStatusCode(%d): retryable = %v, want %v", tt.code, e.Retryable, tt.retry)
		}
	}
}

func TestIsHelpers(t *testing.T) {
	timeout := NewTimeoutError(fmt.Errorf("timed out"))
	conn := NewConnectionError(fmt.Errorf("connection refused"))
	wrapped := fmt.Errorf("fetch markets: %w", ClassifyStatusCode(429, nil))

	if !IsTimeout(timeout) || !IsRetryable(timeout) {
		t.Error("timeout should match and be retryable")
	}
	if !IsConnection(conn) || !IsRetryable(conn) {
		t.Error("connection should match and be retryable")
	}
	if !IsRateLimit(wrapped) {
		t.Error("IsRateLimit should see through wrapping")
	}
	if IsRetryable(NewValidationError("bad")) {
		t.Error("validation should not be retryable")
	}
	if IsRetryable(errors.New("plain")) {
		t.Error("plain errors are not retryable")
	}
	if StatusCode(errors.New("plain")) != 0 {
		t.Error("expected 0 status for plain errors")
	}
}

func TestToAppError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		code apperrors.ErrorCode
	}{
		{"rate limit", ClassifyStatusCode(429, nil), apperrors.ErrCodeRateLimited},
		{"auth", ClassifyStatusCode(401, nil), apperrors.ErrCodeUnauthorized},
		{"timeout", NewTimeoutError(errors.New("slow")), apperrors.ErrCodeTimeout},
		{"connection", NewConnectionError(errors.New("refused")), apperrors.ErrCodeConnectionFailed},
		{"server", ClassifyStatusCode(502, nil), apperrors.ErrCodeExternalService},
		{"decode", NewDecodeError(200, []byte("<html>"), errors.New("invalid character")), apperrors.ErrCodeExternalService},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := ToAppError("manifold", tc.err)
			if !apperrors.HasCode(err, tc.code) {
				t.Errorf("expected %s, got %v", tc.code, err)
			}
			if !errors.Is(err, tc.err) {
				t.Error("expected the httpclient error to stay in the chain")
			}
		})
	}

	if ToAppError("manifold", nil) != nil {
		t.Error("expected nil to stay nil")
	}
	plain := errors.New("plain")
	if ToAppError("manifold", plain) != plain {
		t.Error("expected non-http errors to pass through")
	}
	appErr, _ := apperrors.AsAppError(ToAppError("manifold", ClassifyStatusCode(502, nil)))
	if appErr.Details["status"] != 502 {
		t.Errorf("expected status detail, got %v", appErr.Details)
	}
}
