// Package generate provides the generate command.
package generate

import (
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/agentstation/modelprobe/internal/appcontext"
	"github.com/agentstation/modelprobe/internal/cmd/output"
	"github.com/agentstation/modelprobe/pkg/errors"
	"github.com/agentstation/modelprobe/pkg/logging"
)

// NewCommand creates the generate command.
func NewCommand(app appcontext.Interface) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "generate [prompt...]",
		Aliases: []string{"gen"},
		GroupID: "core",
		Short:   "Send a test prompt to a model",
		Long: `Send one prompt to a model and print the first text candidate.

Without --model the first model returned by "modelprobe models" is used.
Without prompt arguments the prompt is read from standard input.`,
		Example: `  modelprobe generate "Say hello"
  modelprobe generate -m gemini-2.0-flash "Write a haiku"
  echo "Summarize: ..." | modelprobe generate -m models/gemini-pro
  modelprobe generate -o json "Say hello"       # Include finish reason and usage`,
		RunE: func(cmd *cobra.Command, args []string) error {
			model, err := cmd.Flags().GetString("model")
			if err != nil {
				return err
			}
			failOnEmpty, err := cmd.Flags().GetBool("fail-on-empty")
			if err != nil {
				return err
			}
			return generate(cmd, app, model, args, failOnEmpty)
		},
	}

	cmd.Flags().StringP("model", "m", "", "Model name, with or without the models/ prefix")
	cmd.Flags().Bool("fail-on-empty", false, "Exit with an error when the model returns no text")

	return cmd
}

func generate(cmd *cobra.Command, app appcontext.Interface, model string, args []string, failOnEmpty bool) error {
	ctx := cmd.Context()
	apiKey := app.APIKey()

	prompt, err := readPrompt(app.In(), args)
	if err != nil {
		return err
	}

	client, err := app.Client()
	if err != nil {
		return err
	}

	if model == "" {
		list, err := client.ListModels(ctx, apiKey)
		if err != nil {
			return err
		}
		model = list[0].Name
		logging.FromContext(ctx).Debug().Str("model", model).Msg("selected first available model")
	}

	result, err := client.Generate(ctx, apiKey, model, prompt)
	if err != nil {
		return err
	}

	format := output.DetectFormat(app.OutputFormat())
	if err := output.FormatResult(cmd.OutOrStdout(), format, result); err != nil {
		return err
	}
	if failOnEmpty {
		return result.Err()
	}
	return nil
}

// readPrompt joins args, or reads in when there are none.
func readPrompt(in io.Reader, args []string) (string, error) {
	if len(args) > 0 {
		return strings.Join(args, " "), nil
	}
	data, err := io.ReadAll(in)
	if err != nil {
		return "", errors.WrapIO("read", "stdin", err)
	}
	prompt := strings.TrimSpace(string(data))
	if prompt == "" {
		return "", errors.NewValidationError("prompt", "", "prompt is required (pass it as arguments or on stdin)")
	}
	return prompt, nil
}
