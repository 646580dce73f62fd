package httpclient

import "net/http"

const defaultAuthHeader = "Authorization"

// AuthConfig puts an API key into a request header.
type AuthConfig struct {
	Key string
	// Header defaults to Authorization.
	Header string
	// Scheme prefixes the key: "Key" sends "Key <key>".
	Scheme string
}

// APIKeyAuthScheme sends the key as "<scheme> <key>" in header.
// Manifold expects APIKeyAuthScheme(key, "Authorization", "Key").
func APIKeyAuthScheme(key, header, scheme string) *AuthConfig {
	return &AuthConfig{Key: key, Header: header, Scheme: scheme}
}

func (a *AuthConfig) apply(req *http.Request) {
	if a == nil {
		return
	}
	header := a.Header
	if header == "" {
		header = defaultAuthHeader
	}
	value := a.Key
	if a.Scheme != "" {
		value = a.Scheme + " " + a.Key
	}
	req.Header.Set(header, value)
}
