// Package transport is the HTTP layer shared by the catalog and generation
// clients: URL construction, credential headers, JSON bodies and decoding.
package transport

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/agentstation/modelprobe/pkg/constants"
	"github.com/agentstation/modelprobe/pkg/errors"
	"github.com/agentstation/modelprobe/pkg/logging"
)

// Client provides HTTP client functionality with authentication.
// It is safe for concurrent use and holds no per-request state.
type Client struct {
	http       *http.Client
	auth       Authenticator
	baseURL    string
	apiVersion string
	userAgent  string
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.http = hc
		}
	}
}

// WithBaseURL overrides the provider root URL.
func WithBaseURL(baseURL string) Option {
	return func(c *Client) {
		if baseURL != "" {
			c.baseURL = strings.TrimRight(baseURL, "/")
		}
	}
}

// WithAPIVersion overrides the version path segment.
func WithAPIVersion(version string) Option {
	return func(c *Client) {
		if version != "" {
			c.apiVersion = strings.Trim(version, "/")
		}
	}
}

// WithAuthenticator replaces the credential scheme.
func WithAuthenticator(auth Authenticator) Option {
	return func(c *Client) {
		if auth != nil {
			c.auth = auth
		}
	}
}

// WithUserAgent sets the User-Agent header.
func WithUserAgent(ua string) Option {
	return func(c *Client) {
		c.userAgent = ua
	}
}

// New creates a new transport client. The default http.Client carries no
// overall timeout; deadlines come from the caller's context.
func New(opts ...Option) *Client {
	c := &Client{
		http:       &http.Client{},
		auth:       APIKeyAuth(),
		baseURL:    constants.DefaultBaseURL,
		apiVersion: constants.DefaultAPIVersion,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BaseURL returns the configured provider root.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// APIVersion returns the configured version segment.
func (c *Client) APIVersion() string {
	return c.apiVersion
}

// URL joins the base URL, version and resource path. Each path segment is
// escaped; a trailing ":method" suffix is left intact.
func (c *Client) URL(resource string) string {
	segments := strings.Split(strings.Trim(resource, "/"), "/")
	for i, seg := range segments {
		name, method, hasMethod := strings.Cut(seg, ":")
		segments[i] = url.PathEscape(name)
		if hasMethod {
			segments[i] += ":" + method
		}
	}
	return c.baseURL + "/" + c.apiVersion + "/" + strings.Join(segments, "/")
}

// Get performs an authenticated GET against resource. A request that cannot
// be built returns *errors.ConfigError; anything else comes from Do.
func (c *Client) Get(ctx context.Context, resource, apiKey string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.URL(resource), nil)
	if err != nil {
		return nil, errors.NewConfigError("base_url", "cannot build request for "+resource, err)
	}
	return c.Do(ctx, req, apiKey)
}

// PostJSON performs an authenticated POST of body encoded as JSON.
func (c *Client) PostJSON(ctx context.Context, resource, apiKey string, body any) (*http.Response, error) {
	payload, err := json.Marshal(body)
	if err != nil {
		return nil, errors.WrapParse("json", "request body", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.URL(resource), bytes.NewReader(payload))
	if err != nil {
		return nil, errors.NewConfigError("base_url", "cannot build request for "+resource, err)
	}
	return c.Do(ctx, req, apiKey)
}

// Do performs an HTTP request with authentication applied. Transport errors
// are returned unwrapped so callers can classify them.
func (c *Client) Do(ctx context.Context, req *http.Request, apiKey string) (*http.Response, error) {
	c.auth.Apply(req, apiKey)

	req.Header.Set("Accept", "application/json")
	if req.Method == http.MethodPost || req.Method == http.MethodPut || req.Method == http.MethodPatch {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	start := time.Now()
	resp, err := c.http.Do(req)

	event := logging.FromContext(ctx).Debug().
		Str("method", req.Method).
		Str("path", req.URL.Path).
		Dur("duration", time.Since(start))
	if err != nil {
		event.Err(err).Msg("provider request failed")
		return nil, err
	}
	event.Int("status", resp.StatusCode).Msg("provider request")

	return resp, nil
}
