package modelprobe

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/agentstation/modelprobe/pkg/constants"
	"github.com/agentstation/modelprobe/pkg/errors"
)

// Backend selects the wire path used by a Client.
type Backend string

const (
	// BackendREST calls the HTTP endpoints directly.
	BackendREST Backend = "rest"
	// BackendSDK goes through the google.golang.org/genai client.
	BackendSDK Backend = "sdk"
)

// ParseBackend converts a configuration string into a Backend.
// The empty string selects BackendREST.
func ParseBackend(s string) (Backend, error) {
	switch Backend(strings.ToLower(strings.TrimSpace(s))) {
	case "", BackendREST:
		return BackendREST, nil
	case BackendSDK:
		return BackendSDK, nil
	}
	return "", errors.NewValidationError("backend", s, "must be one of: rest, sdk")
}

// String returns the backend name.
func (b Backend) String() string {
	return string(b)
}

// config holds the options applied by New.
type config struct {
	baseURL    string
	apiVersion string
	backend    Backend
	httpClient *http.Client
	userAgent  string
}

func defaultConfig() *config {
	return &config{
		baseURL:    constants.DefaultBaseURL,
		apiVersion: constants.DefaultAPIVersion,
		backend:    BackendREST,
		userAgent:  "modelprobe",
	}
}

// Option is a function that configures a Client.
type Option func(*config) error

// WithBaseURL points the client at a different provider root. Only http and
// https URLs are accepted.
func WithBaseURL(baseURL string) Option {
	return func(c *config) error {
		u, err := url.Parse(baseURL)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			return errors.NewValidationError("base_url", baseURL, "must be an absolute http(s) URL")
		}
		c.baseURL = strings.TrimRight(baseURL, "/")
		return nil
	}
}

// WithAPIVersion sets the API version path segment, for example "v1beta".
func WithAPIVersion(version string) Option {
	return func(c *config) error {
		version = strings.Trim(version, "/ ")
		if version == "" {
			return errors.NewValidationError("api_version", version, "cannot be empty")
		}
		c.apiVersion = version
		return nil
	}
}

// WithBackend selects the REST or SDK backend.
func WithBackend(backend Backend) Option {
	return func(c *config) error {
		parsed, err := ParseBackend(string(backend))
		if err != nil {
			return err
		}
		c.backend = parsed
		return nil
	}
}

// WithHTTPClient sets the http.Client used for every request.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *config) error {
		c.httpClient = hc
		return nil
	}
}

// WithUserAgent sets the User-Agent sent by the REST backend.
func WithUserAgent(ua string) Option {
	return func(c *config) error {
		c.userAgent = ua
		return nil
	}
}
