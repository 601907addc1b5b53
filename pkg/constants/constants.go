// Package constants provides shared constants used throughout the modelprobe codebase.
// This includes provider endpoints, header names, timeouts, file permissions and
// user-facing messages that should be consistent across the application.
package constants

import "time"

// Provider endpoint constants
const (
	// DefaultBaseURL is the root of the generative-language HTTP service
	DefaultBaseURL = "https://generativelanguage.googleapis.com"

	// DefaultAPIVersion is the path segment placed between the base URL and the resource
	DefaultAPIVersion = "v1"

	// ModelsResource is the collection path for model listing and per-model methods
	ModelsResource = "models"

	// ModelNamePrefix is the canonical prefix of model resource names in catalog responses
	ModelNamePrefix = "models/"

	// GenerateContentMethod is the custom method name appended to a model resource
	GenerateContentMethod = "generateContent"

	// APIKeyHeader carries the credential; it is never sent as a query parameter
	APIKeyHeader = "x-goog-api-key"
)

// Capability constants name the generation methods a model can advertise
const (
	// CapabilityGenerateContent is the capability required for prompt testing
	CapabilityGenerateContent = "generateContent"

	// CapabilityEmbedContent marks embedding models
	CapabilityEmbedContent = "embedContent"
)

// Timeout constants define various timeout durations used in the application
const (
	// DefaultCommandTimeout is the CLI deadline applied when --timeout is not set.
	// Zero means no deadline; the transport defaults apply.
	DefaultCommandTimeout time.Duration = 0

	// ShutdownTimeout bounds graceful shutdown after a failed command
	ShutdownTimeout = 5 * time.Second
)

// File permission constants define standard Unix file permissions
const (
	// FilePermissions is the default permission for created files (rw-r--r--)
	FilePermissions = 0644
)

// Environment variable constants
const (
	// EnvGeminiAPIKey is the preferred credential variable
	EnvGeminiAPIKey = "GEMINI_API_KEY"

	// EnvGoogleAPIKey is the fallback credential variable
	EnvGoogleAPIKey = "GOOGLE_API_KEY"

	// EnvPrefix prefixes all other modelprobe settings (MODELPROBE_BASE_URL, ...)
	EnvPrefix = "MODELPROBE"
)

// Error messages
const (
	// ErrMsgListModels is used when a failed listing carries no provider message
	ErrMsgListModels = "failed to list models"

	// ErrMsgGenerateContent is used when a failed generation carries no provider message
	ErrMsgGenerateContent = "failed to generate content"

	// ErrMsgAPIKeyRequired is returned before any request when the credential is empty
	ErrMsgAPIKeyRequired = "API key is required"

	// ErrMsgNetworkBlocked replaces transport failures that never produced an HTTP response
	ErrMsgNetworkBlocked = "The request never reached the API. This is usually caused by a network policy " +
		"or firewall, a proxy or VPN, or a browser extension or security software intercepting traffic. " +
		"Check that generativelanguage.googleapis.com is reachable from this machine " +
		"(for example `curl -I https://generativelanguage.googleapis.com`), " +
		"disable any proxy or VPN, and try again from a different network."
)
