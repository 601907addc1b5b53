// Package config builds the viper instance behind the CLI and resolves the
// API key from the places a user may have put it.
package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/agentstation/modelprobe/pkg/constants"
	"github.com/agentstation/modelprobe/pkg/errors"
)

// Keys shared by flags, environment and config file.
const (
	KeyConfig     = "config"
	KeyAPIKey     = "api-key"
	KeyBaseURL    = "base-url"
	KeyAPIVersion = "api-version"
	KeyBackend    = "backend"
	KeyTimeout    = "timeout"
	KeyFormat     = "format"
	KeyVerbose    = "verbose"
	KeyQuiet      = "quiet"
	KeyNoColor    = "no-color"
	KeyLogLevel   = "log-level"
	KeyLogFormat  = "log-format"
	KeyLogOutput  = "log-output"
)

// ConfigName is the base name of the config file searched in $HOME and ".".
const ConfigName = ".modelprobe"

// APIKeyVars lists the variables consulted for the API key, in order.
var APIKeyVars = []string{
	constants.EnvGeminiAPIKey,
	constants.EnvGoogleAPIKey,
}

// EnvFiles are loaded in order; variables already set are never overridden.
var EnvFiles = []string{".env.local", ".env"}

// New returns a viper instance reading MODELPROBE_* variables, the logging
// variables and the API key variables. .env files are loaded first.
func New() *viper.Viper {
	LoadEnvFiles()

	v := viper.New()
	v.SetEnvPrefix(constants.EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	v.AutomaticEnv()

	// Unprefixed variables shared with other tools.
	_ = v.BindEnv(KeyLogLevel, "LOG_LEVEL")
	_ = v.BindEnv(KeyLogFormat, "LOG_FORMAT")
	_ = v.BindEnv(KeyLogOutput, "LOG_OUTPUT")

	v.SetDefault(KeyBaseURL, constants.DefaultBaseURL)
	v.SetDefault(KeyAPIVersion, constants.DefaultAPIVersion)
	v.SetDefault(KeyBackend, "rest")
	v.SetDefault(KeyTimeout, constants.DefaultCommandTimeout)
	v.SetDefault(KeyLogFormat, "auto")
	v.SetDefault(KeyLogOutput, "stderr")

	return v
}

// LoadEnvFiles loads .env.local then .env from the working directory.
func LoadEnvFiles() {
	for _, f := range EnvFiles {
		_ = godotenv.Load(f)
	}
}

// ReadConfigFile reads path, or searches $HOME and "." for .modelprobe.yaml
// when path is empty. A missing file is only an error when path was given.
func ReadConfigFile(v *viper.Viper, path string) error {
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return errors.NewConfigError("config", "failed to read "+filepath.Base(path), err)
		}
		return nil
	}

	if home, err := os.UserHomeDir(); err == nil {
		v.AddConfigPath(home)
	}
	v.AddConfigPath(".")
	v.SetConfigType("yaml")
	v.SetConfigName(ConfigName)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return nil
		}
		return errors.NewConfigError("config", "failed to parse config file", err)
	}
	return nil
}

// ResolveAPIKey returns the first non-empty key among the api-key setting
// (flag, MODELPROBE_API_KEY, config file) and APIKeyVars, along with where
// it was found.
func ResolveAPIKey(v *viper.Viper) (key, source string) {
	if k := strings.TrimSpace(v.GetString(KeyAPIKey)); k != "" {
		return k, KeyAPIKey
	}
	for _, name := range APIKeyVars {
		if k := strings.TrimSpace(os.Getenv(name)); k != "" {
			return k, name
		}
	}
	return "", ""
}
