// Package errors provides custom error types for the modelprobe system.
// These errors enable programmatic error checking by callers, a single
// user-facing message taxonomy, and improved debugging throughout the application.
package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// New returns an error that formats as the given text.
// It's an alias for the standard library errors.New for convenience.
var New = errors.New

// Is and As mirror the standard library so callers need a single import.
var (
	Is = errors.Is
	As = errors.As
)

// Common sentinel errors for the modelprobe system
var (
	// ErrNotFound indicates that a requested resource was not found
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates that provided input was invalid
	ErrInvalidInput = errors.New("invalid input")

	// ErrAPIKeyRequired indicates that an API key is required but not provided
	ErrAPIKeyRequired = errors.New("API key required")

	// ErrAPIKeyInvalid indicates that the provider refused the API key
	ErrAPIKeyInvalid = errors.New("API key invalid")

	// ErrNetwork indicates a transport failure before any HTTP response was received
	ErrNetwork = errors.New("network failure")

	// ErrProviderRejected indicates a well-formed non-success HTTP response
	ErrProviderRejected = errors.New("provider rejected request")

	// ErrProviderUnavailable indicates that a provider is temporarily unavailable
	ErrProviderUnavailable = errors.New("provider unavailable")

	// ErrRateLimited indicates that the API rate limit has been exceeded
	ErrRateLimited = errors.New("rate limited")

	// ErrEmptyResponse indicates a successful call that produced no usable text
	ErrEmptyResponse = errors.New("empty response")
)

// Kind classifies a ClientError.
type Kind int

const (
	// KindUnknown is the zero value and never produced by the clients.
	KindUnknown Kind = iota
	// KindNetwork is a transport failure before any HTTP response.
	KindNetwork
	// KindAuth is a missing credential or a 401/403 response.
	KindAuth
	// KindNotFound is a catalog with no model supporting the required capability.
	KindNotFound
	// KindProviderRejected is any other well-formed non-success HTTP response.
	KindProviderRejected
	// KindEmptyResponse is a success without usable content.
	KindEmptyResponse
)

// String returns the lower-case name of the kind.
func (k Kind) String() string {
	switch k {
	case KindNetwork:
		return "network"
	case KindAuth:
		return "auth"
	case KindNotFound:
		return "not_found"
	case KindProviderRejected:
		return "provider_rejected"
	case KindEmptyResponse:
		return "empty_response"
	default:
		return "unknown"
	}
}

// ClientError is the typed failure returned by the catalog and generation clients.
// Error returns Message verbatim so callers can render it directly.
type ClientError struct {
	Kind       Kind
	Message    string
	Operation  string // "list_models", "generate_content"
	StatusCode int    // zero when no HTTP response was received
	Err        error
}

// Error implements the error interface
func (e *ClientError) Error() string {
	if e.Message == "" && e.Err != nil {
		return e.Err.Error()
	}
	return e.Message
}

// Unwrap implements errors.Unwrap
func (e *ClientError) Unwrap() error {
	return e.Err
}

// Is implements errors.Is support
func (e *ClientError) Is(target error) bool {
	switch e.Kind {
	case KindNetwork:
		return target == ErrNetwork
	case KindAuth:
		if e.StatusCode == 0 {
			return target == ErrAPIKeyRequired
		}
		return target == ErrAPIKeyInvalid
	case KindNotFound:
		return target == ErrNotFound
	case KindEmptyResponse:
		return target == ErrEmptyResponse
	case KindProviderRejected:
		switch {
		case target == ErrProviderRejected:
			return true
		case e.StatusCode == http.StatusTooManyRequests:
			return target == ErrRateLimited
		case e.StatusCode >= http.StatusInternalServerError:
			return target == ErrProviderUnavailable
		}
	}
	return false
}

// NewNetworkError creates a ClientError for a request that never got a response.
func NewNetworkError(operation string, err error) *ClientError {
	return &ClientError{
		Kind:      KindNetwork,
		Message:   fmt.Sprintf("%s: request failed: %v", operation, err),
		Operation: operation,
		Err:       err,
	}
}

// NewAuthError creates a ClientError for a missing or refused credential.
func NewAuthError(operation string, statusCode int, message string) *ClientError {
	return &ClientError{
		Kind:       KindAuth,
		Message:    message,
		Operation:  operation,
		StatusCode: statusCode,
	}
}

// NewNotFoundError creates a ClientError for an empty filtered result.
func NewNotFoundError(operation, message string) *ClientError {
	return &ClientError{
		Kind:      KindNotFound,
		Message:   message,
		Operation: operation,
	}
}

// NewEmptyResponseError creates a ClientError describing a result without text.
// The clients never return it; results expose it through their Err method.
func NewEmptyResponseError(operation, message string) *ClientError {
	return &ClientError{
		Kind:      KindEmptyResponse,
		Message:   message,
		Operation: operation,
	}
}

// FromAPIError classifies a non-success HTTP response.
// 401 and 403 become KindAuth, everything else KindProviderRejected.
func FromAPIError(operation string, apiErr *APIError) *ClientError {
	kind := KindProviderRejected
	if apiErr.StatusCode == http.StatusUnauthorized || apiErr.StatusCode == http.StatusForbidden {
		kind = KindAuth
	}
	return &ClientError{
		Kind:       kind,
		Message:    apiErr.Message,
		Operation:  operation,
		StatusCode: apiErr.StatusCode,
		Err:        apiErr,
	}
}

// KindOf returns the Kind of the first ClientError in err's chain.
func KindOf(err error) Kind {
	var ce *ClientError
	if errors.As(err, &ce) {
		return ce.Kind
	}
	return KindUnknown
}

// StatusCode returns the HTTP status captured in err's chain, or zero.
func StatusCode(err error) int {
	var ce *ClientError
	if errors.As(err, &ce) && ce.StatusCode != 0 {
		return ce.StatusCode
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode
	}
	return 0
}

// NotFoundError represents an error when a resource is not found
type NotFoundError struct {
	Resource string
	ID       string
}

// Error implements the error interface
func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s with ID %s not found", e.Resource, e.ID)
}

// Is implements errors.Is support
func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// ValidationError represents a validation failure
type ValidationError struct {
	Field   string
	Value   interface{}
	Message string
}

// Error implements the error interface
func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("validation failed for field %s: %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation failed: %s", e.Message)
}

// Is implements errors.Is support
func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidInput
}

// NewValidationError creates a new ValidationError
func NewValidationError(field string, value interface{}, message string) *ValidationError {
	return &ValidationError{Field: field, Value: value, Message: message}
}

// APIError represents an error response from the provider API
type APIError struct {
	Provider   string
	StatusCode int
	Message    string
	Status     string // provider status string, e.g. RESOURCE_EXHAUSTED
	Endpoint   string
	Err        error
}

// Error implements the error interface
func (e *APIError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("API error from %s (status %d): %s", e.Provider, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("API error from %s: %s", e.Provider, e.Message)
}

// Unwrap implements errors.Unwrap
func (e *APIError) Unwrap() error {
	return e.Err
}

// Is implements errors.Is support
func (e *APIError) Is(target error) bool {
	if e.StatusCode == http.StatusTooManyRequests {
		return target == ErrRateLimited
	}
	if e.StatusCode >= http.StatusInternalServerError {
		return target == ErrProviderUnavailable
	}
	return false
}

// ConfigError represents a configuration error
type ConfigError struct {
	Component string
	Message   string
	Err       error
}

// Error implements the error interface
func (e *ConfigError) Error() string {
	if e.Component != "" {
		return fmt.Sprintf("configuration error in %s: %s", e.Component, e.Message)
	}
	return fmt.Sprintf("configuration error: %s", e.Message)
}

// Unwrap implements errors.Unwrap
func (e *ConfigError) Unwrap() error {
	return e.Err
}

// NewConfigError creates a new ConfigError
func NewConfigError(component, message string, err error) *ConfigError {
	return &ConfigError{
		Component: component,
		Message:   message,
		Err:       err,
	}
}

// ParseError represents an error when parsing data formats
type ParseError struct {
	Format  string // "json", "yaml"
	File    string
	Message string
	Err     error
}

// Error implements the error interface
func (e *ParseError) Error() string {
	if e.File != "" {
		return fmt.Sprintf("parse error in %s %s: %s", e.Format, e.File, e.Message)
	}
	return fmt.Sprintf("%s parse error: %s", e.Format, e.Message)
}

// Unwrap implements errors.Unwrap
func (e *ParseError) Unwrap() error {
	return e.Err
}

// IOError represents an error during I/O operations
type IOError struct {
	Operation string // "read", "write", "open", "close"
	Path      string
	Message   string
	Err       error
}

// Error implements the error interface
func (e *IOError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("IO error during %s of %s: %s", e.Operation, e.Path, e.Message)
	}
	return fmt.Sprintf("IO error during %s: %s", e.Operation, e.Message)
}

// Unwrap implements errors.Unwrap
func (e *IOError) Unwrap() error {
	return e.Err
}

// ResourceError represents an error during resource operations
type ResourceError struct {
	Operation string // "create", "load", "fetch"
	Resource  string // "config", "client", "session"
	ID        string
	Message   string
	Err       error
}

// Error implements the error interface
func (e *ResourceError) Error() string {
	if e.ID != "" {
		return fmt.Sprintf("failed to %s %s %s: %s", e.Operation, e.Resource, e.ID, e.Message)
	}
	return fmt.Sprintf("failed to %s %s: %s", e.Operation, e.Resource, e.Message)
}

// Unwrap implements errors.Unwrap
func (e *ResourceError) Unwrap() error {
	return e.Err
}

// Helper functions for error checking

// IsNotFound checks if an error is a not found error
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsValidationError checks if an error is a validation error
func IsValidationError(err error) bool {
	return errors.Is(err, ErrInvalidInput)
}

// IsAPIKeyError checks if an error is related to API keys
func IsAPIKeyError(err error) bool {
	return errors.Is(err, ErrAPIKeyRequired) || errors.Is(err, ErrAPIKeyInvalid)
}

// IsNetwork checks if an error is a transport failure
func IsNetwork(err error) bool {
	return errors.Is(err, ErrNetwork)
}

// IsRateLimited checks if an error is a rate limit error
func IsRateLimited(err error) bool {
	return errors.Is(err, ErrRateLimited)
}

// IsProviderUnavailable checks if an error indicates provider unavailability
func IsProviderUnavailable(err error) bool {
	return errors.Is(err, ErrProviderUnavailable)
}

// Helper wrapping functions for common patterns

// WrapIO wraps an error as an IOError
func WrapIO(operation, path string, err error) error {
	if err == nil {
		return nil
	}
	return &IOError{Operation: operation, Path: path, Message: err.Error(), Err: err}
}

// WrapParse wraps an error as a ParseError
func WrapParse(format, file string, err error) error {
	if err == nil {
		return nil
	}
	return &ParseError{Format: format, File: file, Message: err.Error(), Err: err}
}

// WrapResource wraps an error as a ResourceError
func WrapResource(operation, resource, id string, err error) error {
	if err == nil {
		return nil
	}
	return &ResourceError{Operation: operation, Resource: resource, ID: id, Message: err.Error(), Err: err}
}
