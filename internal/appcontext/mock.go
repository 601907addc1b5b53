package appcontext

import (
	"io"
	"strings"

	"github.com/rs/zerolog"

	"github.com/agentstation/modelprobe"
)

var _ Interface = (*Mock)(nil)

// Mock provides a mock implementation of Interface for testing.
// Each method can be customized by setting the corresponding function field.
// If a function field is nil, the method returns a default/zero value.
//
// Example Usage:
//
//	mock := &appcontext.Mock{
//	    ClientFunc: func() (modelprobe.Client, error) {
//	        return modelprobe.New(modelprobe.WithBaseURL(server.URL))
//	    },
//	    APIKeyFunc: func() string { return "test-key" },
//	}
//	cmd := models.NewCommand(mock)
type Mock struct {
	ClientFunc       func() (modelprobe.Client, error)
	APIKeyFunc       func() string
	LoggerFunc       func() *zerolog.Logger
	OutputFormatFunc func() string
	InFunc           func() io.Reader
	VersionFunc      func() string
	CommitFunc       func() string
	DateFunc         func() string
	BuiltByFunc      func() string
}

// Client returns a client using the mock function or a default REST client.
func (m *Mock) Client() (modelprobe.Client, error) {
	if m.ClientFunc != nil {
		return m.ClientFunc()
	}
	return modelprobe.New()
}

// APIKey returns the API key using the mock function or "".
func (m *Mock) APIKey() string {
	if m.APIKeyFunc != nil {
		return m.APIKeyFunc()
	}
	return ""
}

// Logger returns a logger using the mock function or a no-op logger.
func (m *Mock) Logger() *zerolog.Logger {
	if m.LoggerFunc != nil {
		return m.LoggerFunc()
	}
	logger := zerolog.Nop()
	return &logger
}

// OutputFormat returns output format using the mock function or "table".
func (m *Mock) OutputFormat() string {
	if m.OutputFormatFunc != nil {
		return m.OutputFormatFunc()
	}
	return "table"
}

// In returns the input reader using the mock function or an empty reader.
func (m *Mock) In() io.Reader {
	if m.InFunc != nil {
		return m.InFunc()
	}
	return strings.NewReader("")
}

// Version returns version using the mock function or "dev".
func (m *Mock) Version() string {
	if m.VersionFunc != nil {
		return m.VersionFunc()
	}
	return "dev"
}

// Commit returns commit using the mock function or "unknown".
func (m *Mock) Commit() string {
	if m.CommitFunc != nil {
		return m.CommitFunc()
	}
	return "unknown"
}

// Date returns date using the mock function or "unknown".
func (m *Mock) Date() string {
	if m.DateFunc != nil {
		return m.DateFunc()
	}
	return "unknown"
}

// BuiltBy returns builder using the mock function or "unknown".
func (m *Mock) BuiltBy() string {
	if m.BuiltByFunc != nil {
		return m.BuiltByFunc()
	}
	return "unknown"
}
