package httpclient

import (
	"net/http"
	"time"
)

// NewDefaultHTTPClient creates a simple HTTP client with a timeout
func NewDefaultHTTPClient(timeout time.Duration) *http.Client {
	return &http.Client{
		Timeout: timeout,
	}
}

// basicAuthTransport injects HTTP basic auth into every request. Telephony
// platforms (Twilio in particular) protect recording URLs this way.
type basicAuthTransport struct {
	username string
	password string
	base     http.RoundTripper
}

func (t *basicAuthTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	cloned := req.Clone(req.Context())
	cloned.SetBasicAuth(t.username, t.password)
	return t.base.RoundTrip(cloned)
}

// NewBasicAuthHTTPClient creates an HTTP client that authenticates every
// request with the given credentials. Empty credentials yield a plain client.
func NewBasicAuthHTTPClient(username, password string, timeout time.Duration) *http.Client {
	if username == "" && password == "" {
		return NewDefaultHTTPClient(timeout)
	}
	return &http.Client{
		Timeout: timeout,
		Transport: &basicAuthTransport{
			username: username,
			password: password,
			base:     http.DefaultTransport,
		},
	}
}
