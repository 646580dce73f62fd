package httpclient

import (
	"context"
	"encoding/json"
	"net/http"
)

// TypedResponse is a Response whose JSON body was decoded into Data.
// Data is the zero value when the body is empty.
type TypedResponse[T any] struct {
	StatusCode int
	Headers    map[string]string
	Data       T
}

// RequestOption adjusts one request made through Get or Post.
type RequestOption func(*Request)

// WithHeader sets a request header, overriding the client defaults.
func WithHeader(key, value string) RequestOption {
	return func(r *Request) {
		if r.Headers == nil {
			r.Headers = make(map[string]string)
		}
		r.Headers[key] = value
	}
}

// WithQueryParam sets a URL query parameter.
func WithQueryParam(key, value string) RequestOption {
	return func(r *Request) {
		if r.Query == nil {
			r.Query = make(map[string]string)
		}
		r.Query[key] = value
	}
}

// Get fetches path and decodes the JSON answer into T.
func Get[T any](c *Client, ctx context.Context, path string, opts ...RequestOption) (*TypedResponse[T], error) {
	return send[T](c, ctx, Request{Method: http.MethodGet, Path: path}, opts)
}

// Post sends body as JSON to path and decodes the answer into T.
func Post[T any](c *Client, ctx context.Context, path string, body any, opts ...RequestOption) (*TypedResponse[T], error) {
	return send[T](c, ctx, Request{Method: http.MethodPost, Path: path, Body: body}, opts)
}

func send[T any](c *Client, ctx context.Context, req Request, opts []RequestOption) (*TypedResponse[T], error) {
	for _, opt := range opts {
		opt(&req)
	}

	resp, err := c.Do(ctx, req)
	if err != nil {
		return nil, err
	}

	var data T
	if len(resp.Body) > 0 {
		if err := json.Unmarshal(resp.Body, &data); err != nil {
			return nil, NewDecodeError(resp.StatusCode, resp.Body, err)
		}
	}
	return &TypedResponse[T]{StatusCode: resp.StatusCode, Headers: resp.Headers, Data: data}, nil
}
