package transport

import (
	"net/http"

	"github.com/agentstation/modelprobe/pkg/constants"
)

// Authenticator applies authentication to HTTP requests.
type Authenticator interface {
	Apply(req *http.Request, apiKey string)
}

// NoAuth implements no authentication.
type NoAuth struct{}

// Apply implements the Authenticator interface for NoAuth.
func (a *NoAuth) Apply(_ *http.Request, _ string) {}

// HeaderAuth sends the key verbatim in a custom header.
type HeaderAuth struct {
	Header string
}

// Apply implements the Authenticator interface for HeaderAuth.
func (a *HeaderAuth) Apply(req *http.Request, apiKey string) {
	if apiKey == "" {
		return
	}
	req.Header.Set(a.Header, apiKey)
}

// APIKeyAuth returns the authenticator used by the generative-language API.
// The key travels in a header so it never appears in URLs, proxy logs or
// error messages that echo the request URL.
func APIKeyAuth() Authenticator {
	return &HeaderAuth{Header: constants.APIKeyHeader}
}
