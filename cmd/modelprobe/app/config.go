package app

import (
	"time"

	"github.com/spf13/viper"

	"github.com/agentstation/modelprobe"
	"github.com/agentstation/modelprobe/internal/cmd/output"
	"github.com/agentstation/modelprobe/internal/config"
)

// Config holds the application configuration loaded from flags, the
// environment, .env files and the config file. The API key is not part of
// it; App.APIKey resolves it on demand.
type Config struct {
	// Global flags
	Verbose bool
	Quiet   bool
	NoColor bool
	Format  string

	// Config file
	ConfigFile string

	// Client configuration
	BaseURL    string
	APIVersion string
	Backend    string
	Timeout    time.Duration

	// Logging configuration
	LogLevel  string
	LogFormat string
	LogOutput string
}

// LoadConfig builds a Config from v. Precedence, highest first:
//  1. Command-line flags (bound to v by the root command)
//  2. Environment variables (MODELPROBE_*, LOG_*)
//  3. .env files
//  4. Config file (~/.modelprobe.yaml)
//  5. Defaults
func LoadConfig(v *viper.Viper) (*Config, error) {
	cfg := &Config{
		Verbose:    v.GetBool(config.KeyVerbose),
		Quiet:      v.GetBool(config.KeyQuiet),
		NoColor:    v.GetBool(config.KeyNoColor),
		Format:     v.GetString(config.KeyFormat),
		ConfigFile: v.ConfigFileUsed(),
		BaseURL:    v.GetString(config.KeyBaseURL),
		APIVersion: v.GetString(config.KeyAPIVersion),
		Backend:    v.GetString(config.KeyBackend),
		Timeout:    v.GetDuration(config.KeyTimeout),
		LogLevel:   v.GetString(config.KeyLogLevel),
		LogFormat:  v.GetString(config.KeyLogFormat),
		LogOutput:  v.GetString(config.KeyLogOutput),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the values that have a closed set of choices.
func (c *Config) Validate() error {
	if _, err := output.ParseFormat(c.Format); err != nil {
		return err
	}
	if _, err := modelprobe.ParseBackend(c.Backend); err != nil {
		return err
	}
	return nil
}
