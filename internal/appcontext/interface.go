// Package appcontext provides the shared application context interface
// used by all commands. Commands accept Interface rather than the concrete
// App so they can be tested with Mock.
package appcontext

import (
	"io"

	"github.com/rs/zerolog"

	"github.com/agentstation/modelprobe"
)

// Interface defines what commands need from the application.
type Interface interface {
	// Client returns the API client built from the current configuration.
	Client() (modelprobe.Client, error)

	// APIKey returns the API key resolved from flags, environment or
	// config file. The key lives in memory only.
	APIKey() string

	// Logger returns the configured logger instance.
	Logger() *zerolog.Logger

	// OutputFormat returns the configured output format (json, yaml, table, wide).
	OutputFormat() string

	// In returns the reader interactive commands read from.
	In() io.Reader

	// Version returns the application version string.
	Version() string

	// Commit returns the git commit hash.
	Commit() string

	// Date returns the build date.
	Date() string

	// BuiltBy returns the build system identifier.
	BuiltBy() string
}
