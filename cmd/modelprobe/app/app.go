// Package app provides the application context and dependency management
// for the modelprobe CLI. It centralizes configuration, logging and the
// API client, and hands them to commands through appcontext.Interface.
package app

import (
	"context"
	"io"
	"os"
	"sync"

	"github.com/rs/zerolog"
	"github.com/spf13/viper"

	"github.com/agentstation/modelprobe"
	"github.com/agentstation/modelprobe/internal/appcontext"
	"github.com/agentstation/modelprobe/internal/config"
	"github.com/agentstation/modelprobe/pkg/errors"
)

// Ensure App implements appcontext.Interface at compile time.
var _ appcontext.Interface = (*App)(nil)

// App represents the modelprobe application with all its dependencies.
type App struct {
	// Version information
	version string
	commit  string
	date    string
	builtBy string

	viper  *viper.Viper
	config *Config
	logger *zerolog.Logger
	in     io.Reader
	out    io.Writer

	// cancel releases the per-command context set up in setupCommand.
	cancel context.CancelFunc

	// Client instance (lazy-initialized, singleton)
	mu     sync.RWMutex
	client modelprobe.Client
}

// New creates a new App instance with the given version information.
func New(version, commit, date, builtBy string, opts ...Option) (*App, error) {
	app := &App{
		version: version,
		commit:  commit,
		date:    date,
		builtBy: builtBy,
		viper:   config.New(),
		in:      os.Stdin,
		out:     os.Stdout,
	}

	cfg, err := LoadConfig(app.viper)
	if err != nil {
		return nil, errors.WrapResource("load", "config", "", err)
	}
	app.config = cfg

	logger := NewLogger(cfg)
	app.logger = &logger

	for _, opt := range opts {
		if err := opt(app); err != nil {
			return nil, err
		}
	}

	return app, nil
}

// Version returns the version information.
func (a *App) Version() string {
	return a.version
}

// Commit returns the git commit hash.
func (a *App) Commit() string {
	return a.commit
}

// Date returns the build date.
func (a *App) Date() string {
	return a.date
}

// BuiltBy returns the build system identifier.
func (a *App) BuiltBy() string {
	return a.builtBy
}

// Config returns the application configuration.
func (a *App) Config() *Config {
	return a.config
}

// Logger returns the application logger.
func (a *App) Logger() *zerolog.Logger {
	return a.logger
}

// OutputFormat returns the configured output format.
func (a *App) OutputFormat() string {
	return a.config.Format
}

// In returns the reader used by interactive commands.
func (a *App) In() io.Reader {
	return a.in
}

// APIKey returns the resolved API key. It is never logged.
func (a *App) APIKey() string {
	key, source := config.ResolveAPIKey(a.viper)
	if key != "" {
		a.logger.Debug().Str("source", source).Msg("using API key")
	}
	return key
}

// Client returns the API client, creating it lazily if needed.
// This is thread-safe and ensures only one instance is created.
func (a *App) Client() (modelprobe.Client, error) {
	a.mu.RLock()
	if a.client != nil {
		c := a.client
		a.mu.RUnlock()
		return c, nil
	}
	a.mu.RUnlock()

	a.mu.Lock()
	defer a.mu.Unlock()

	if a.client != nil {
		return a.client, nil
	}

	c, err := modelprobe.New(a.buildClientOptions()...)
	if err != nil {
		return nil, errors.WrapResource("create", "client", "", err)
	}

	a.client = c
	return c, nil
}

// Shutdown releases the per-command context.
func (a *App) Shutdown(_ context.Context) error {
	if a.cancel != nil {
		a.cancel()
		a.cancel = nil
	}
	return nil
}

// buildClientOptions constructs client options from the app configuration.
func (a *App) buildClientOptions() []modelprobe.Option {
	opts := []modelprobe.Option{
		modelprobe.WithUserAgent("modelprobe/" + a.version),
	}
	if a.config.BaseURL != "" {
		opts = append(opts, modelprobe.WithBaseURL(a.config.BaseURL))
	}
	if a.config.APIVersion != "" {
		opts = append(opts, modelprobe.WithAPIVersion(a.config.APIVersion))
	}
	if a.config.Backend != "" {
		opts = append(opts, modelprobe.WithBackend(modelprobe.Backend(a.config.Backend)))
	}
	return opts
}

// Option is a functional option for configuring the App.
type Option func(*App) error

// WithConfig sets a custom configuration.
func WithConfig(cfg *Config) Option {
	return func(a *App) error {
		a.config = cfg
		return nil
	}
}

// WithLogger sets a custom logger.
func WithLogger(logger *zerolog.Logger) Option {
	return func(a *App) error {
		a.logger = logger
		return nil
	}
}

// WithClient sets a custom client instance (useful for testing).
func WithClient(c modelprobe.Client) Option {
	return func(a *App) error {
		a.client = c
		return nil
	}
}

// WithInput sets the reader used by interactive commands.
func WithInput(r io.Reader) Option {
	return func(a *App) error {
		a.in = r
		return nil
	}
}

// WithOutput sets the writer commands print to.
func WithOutput(w io.Writer) Option {
	return func(a *App) error {
		a.out = w
		return nil
	}
}
