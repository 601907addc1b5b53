package app

import (
	"github.com/spf13/cobra"

	"github.com/agentstation/modelprobe/cmd/modelprobe/cmd/generate"
	"github.com/agentstation/modelprobe/cmd/modelprobe/cmd/models"
	"github.com/agentstation/modelprobe/cmd/modelprobe/cmd/probe"
	"github.com/agentstation/modelprobe/cmd/modelprobe/cmd/version"
)

// registerCommands registers all subcommands with the root command.
func (a *App) registerCommands(rootCmd *cobra.Command) {
	rootCmd.AddCommand(models.NewCommand(a))
	rootCmd.AddCommand(generate.NewCommand(a))
	rootCmd.AddCommand(probe.NewCommand(a))
	rootCmd.AddCommand(version.NewCommand(a))
}
