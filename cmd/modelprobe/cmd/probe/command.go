// Package probe provides the interactive probe command: enter a key, pick a
// model, send prompts, read the answers.
package probe

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/agentstation/modelprobe/internal/appcontext"
	"github.com/agentstation/modelprobe/internal/cmd/output"
	"github.com/agentstation/modelprobe/internal/session"
	"github.com/agentstation/modelprobe/pkg/errors"
)

const help = `Type a prompt and press enter to send it to the selected model.
  :models        reload the model list
  :use <n|name>  select a model by number or name
  :key           enter a different API key
  :help          show this help
  :quit          exit`

// NewCommand creates the probe command.
func NewCommand(app appcontext.Interface) *cobra.Command {
	return &cobra.Command{
		Use:     "probe",
		GroupID: "core",
		Short:   "Interactively list models and send test prompts",
		Long: `Start an interactive session. If no API key is configured you are asked
for one; it is kept in memory for the session only. The model list is loaded
and the first model is selected; every other line you type is sent as a
prompt.

` + help,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			client, err := app.Client()
			if err != nil {
				return err
			}
			p := &prober{
				cmd:     cmd,
				session: session.New(client, client),
				in:      bufio.NewScanner(app.In()),
				out:     cmd.OutOrStdout(),
			}
			return p.run(app.APIKey())
		},
	}
}

type prober struct {
	cmd     *cobra.Command
	session *session.Session
	in      *bufio.Scanner
	out     io.Writer
}

func (p *prober) run(apiKey string) error {
	if apiKey == "" {
		var ok bool
		if apiKey, ok = p.ask("API key: "); !ok {
			return nil
		}
	}
	p.session.SetCredential(apiKey)
	p.load()

	for {
		line, ok := p.ask(p.prompt())
		if !ok {
			return nil
		}
		switch {
		case line == "":
			continue
		case line == ":quit" || line == ":q":
			return nil
		case line == ":help":
			p.println(help)
		case line == ":models":
			p.load()
		case line == ":key":
			key, ok := p.ask("API key: ")
			if !ok {
				return nil
			}
			p.session.SetCredential(key)
			p.load()
		case strings.HasPrefix(line, ":use"):
			p.use(strings.TrimSpace(strings.TrimPrefix(line, ":use")))
		default:
			p.send(line)
		}
	}
}

func (p *prober) load() {
	if !p.session.HasCredential() {
		p.println("Enter an API key with :key to load models.")
		return
	}
	list, err := p.session.LoadModels(p.cmd.Context())
	if err != nil {
		switch p.session.State() {
		case session.StateNoneUsable:
			p.println("No usable models: " + p.session.CatalogMessage())
		default:
			p.println("Could not load models: " + p.session.CatalogMessage())
		}
		return
	}

	selected := p.session.Selected()
	for i, d := range list {
		marker := " "
		if d.Name == selected {
			marker = "*"
		}
		p.println(fmt.Sprintf("%s %2d. %s (%s)", marker, i+1, d.Label(), d.Name))
	}
}

func (p *prober) use(arg string) {
	if arg == "" {
		p.println("usage: :use <n|name>")
		return
	}
	name := arg
	if n, err := strconv.Atoi(arg); err == nil {
		list := p.session.Models()
		if n < 1 || n > len(list) {
			p.println(fmt.Sprintf("no model number %d", n))
			return
		}
		name = list[n-1].Name
	}
	if err := p.session.Select(name); err != nil {
		p.println(errors.Normalize(err))
		return
	}
	p.println("Using " + p.session.Selected())
}

func (p *prober) send(prompt string) {
	if p.session.Selected() == "" {
		p.println("No model selected. Load models with :models or pick one with :use.")
		return
	}
	outcome, err := p.session.Send(p.cmd.Context(), prompt)
	switch {
	case outcome.Text != "":
		p.println(outcome.Text)
	case outcome.Empty:
		p.println(output.EmptyResultNotice(outcome.Result))
	case outcome.Message != "":
		p.println("Error: " + outcome.Message)
	case err != nil:
		p.println("Error: " + errors.Normalize(err))
	}
}

func (p *prober) prompt() string {
	if selected := p.session.Selected(); selected != "" {
		return selected + "> "
	}
	return "> "
}

// ask prints label and reads one trimmed line. It reports false at EOF.
func (p *prober) ask(label string) (string, bool) {
	_, _ = io.WriteString(p.out, label)
	if !p.in.Scan() {
		_, _ = io.WriteString(p.out, "\n")
		return "", false
	}
	return strings.TrimSpace(p.in.Text()), true
}

func (p *prober) println(s string) {
	_, _ = fmt.Fprintln(p.out, s)
}
