package httpclient

// Request is one outbound call. Path is joined to the client's BaseURL
// unless it is an absolute http(s) URL.
type Request struct {
	Method  string
	Path    string
	Headers map[string]string
	Query   map[string]string
	// Body is sent as is for io.Reader, []byte and string; anything else is
	// encoded as JSON.
	Body any
}

// Response is a fully read answer. Headers keep the first value of each.
type Response struct {
	StatusCode int
	Headers    map[string]string
	Body       []byte
}
