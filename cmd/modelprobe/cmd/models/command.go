// Package models provides the models command.
package models

import (
	"github.com/spf13/cobra"

	"github.com/agentstation/modelprobe/internal/appcontext"
	"github.com/agentstation/modelprobe/internal/cmd/output"
	"github.com/agentstation/modelprobe/pkg/constants"
)

// NewCommand creates the models command.
func NewCommand(app appcontext.Interface) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "models",
		Aliases: []string{"ls", "list"},
		GroupID: "core",
		Short:   "List the models an API key can use",
		Long: `List the models available to the configured API key that support a
generation method, ordered by display name.`,
		Example: `  modelprobe models                              # Models that support generateContent
  modelprobe models --capability embedContent    # Embedding models
  modelprobe models -o wide                      # Include token limits
  modelprobe models -o json                      # Machine-readable output`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			capability, err := cmd.Flags().GetString("capability")
			if err != nil {
				return err
			}
			return listModels(cmd, app, capability)
		},
	}

	cmd.Flags().String("capability", constants.CapabilityGenerateContent,
		"Generation method the models must support")

	return cmd
}

func listModels(cmd *cobra.Command, app appcontext.Interface, capability string) error {
	client, err := app.Client()
	if err != nil {
		return err
	}

	list, err := client.List(cmd.Context(), app.APIKey(), capability)
	if err != nil {
		return err
	}

	format := output.DetectFormat(app.OutputFormat())
	return output.FormatModels(cmd.OutOrStdout(), format, list)
}
