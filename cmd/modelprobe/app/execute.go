package app

import (
	"context"
	"os"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/agentstation/modelprobe/internal/config"
	"github.com/agentstation/modelprobe/pkg/errors"
	"github.com/agentstation/modelprobe/pkg/logging"
)

// Execute runs the modelprobe CLI application with the given arguments.
// This is the main entry point called from main.go.
func (a *App) Execute(ctx context.Context, args []string) error {
	rootCmd := a.createRootCommand()
	rootCmd.SetArgs(args)
	defer func() { _ = a.Shutdown(ctx) }()
	return rootCmd.ExecuteContext(ctx)
}

// createRootCommand creates the root cobra command with all subcommands.
func (a *App) createRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:     "modelprobe",
		Short:   "Check which generative models an API key can use",
		Version: a.version,
		Long: `modelprobe lists the generative-language models available to an API key
and sends a test prompt to one of them.

The key is read from --api-key, MODELPROBE_API_KEY, GEMINI_API_KEY or
GOOGLE_API_KEY (including .env files). It is kept in memory only.`,
		PersistentPreRunE: a.setupCommand,
		SilenceUsage:      true,
		SilenceErrors:     true,
	}

	rootCmd.AddGroup(&cobra.Group{
		ID:    "core",
		Title: "Core Commands:",
	})

	flags := rootCmd.PersistentFlags()
	flags.String(config.KeyConfig, "", "config file (default is $HOME/.modelprobe.yaml)")
	flags.BoolP(config.KeyVerbose, "v", false, "verbose output (shortcut for --log-level=debug)")
	flags.BoolP(config.KeyQuiet, "q", false, "minimal output (shortcut for --log-level=warn)")
	flags.Bool(config.KeyNoColor, false, "disable colored output")
	flags.StringP(config.KeyFormat, "o", "", "output format: table, json, yaml, wide")
	flags.String(config.KeyLogLevel, "", "log level: trace, debug, info, warn, error (overrides -v/-q)")
	flags.String(config.KeyAPIKey, "", "API key (prefer GEMINI_API_KEY; flags are visible in process lists)")
	flags.String(config.KeyBaseURL, "", "API base URL")
	flags.String(config.KeyAPIVersion, "", "API version path segment (v1, v1beta)")
	flags.String(config.KeyBackend, "", "wire path: rest or sdk")
	flags.Duration(config.KeyTimeout, 0, "overall deadline for each request (0 disables)")

	if err := a.viper.BindPFlags(flags); err != nil {
		panic("programming error: failed to bind flags: " + err.Error())
	}

	rootCmd.SetVersionTemplate("modelprobe {{.Version}}\n")
	rootCmd.SetIn(a.in)
	rootCmd.SetOut(a.out)

	a.registerCommands(rootCmd)

	return rootCmd
}

// setupCommand is called before any command runs. It re-reads the config
// with parsed flags, rebuilds the logger and prepares the command context.
func (a *App) setupCommand(cmd *cobra.Command, _ []string) error {
	if err := config.ReadConfigFile(a.viper, a.viper.GetString(config.KeyConfig)); err != nil {
		return err
	}

	cfg, err := LoadConfig(a.viper)
	if err != nil {
		return err
	}
	a.config = cfg

	logger := NewLogger(cfg)
	a.logger = &logger

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	ctx = logging.WithLogger(ctx, a.logger)
	ctx = logging.WithRequestID(ctx, uuid.NewString())
	ctx = logging.WithBackend(ctx, cfg.Backend)
	if cfg.Timeout > 0 {
		ctx, a.cancel = context.WithTimeout(ctx, cfg.Timeout)
	}
	cmd.SetContext(ctx)

	logging.FromContext(ctx).Debug().
		Str("command", cmd.Name()).
		Str("config_file", cfg.ConfigFile).
		Msg("command starting")

	return nil
}

// ExitOnError prints the user-facing form of err and exits with status 1.
func ExitOnError(err error) {
	if err != nil {
		_, _ = os.Stderr.WriteString("Error: " + errors.Normalize(err) + "\n")
		os.Exit(1)
	}
}
