package probe

import (
	"bytes"
	"context"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/modelprobe"
	"github.com/agentstation/modelprobe/internal/appcontext"
	"github.com/agentstation/modelprobe/internal/testutil"
	"github.com/agentstation/modelprobe/pkg/constants"
	"github.com/agentstation/modelprobe/pkg/models"
)

func newServer(t *testing.T) *testutil.Server {
	server := testutil.NewServer(t, "key",
		models.Descriptor{Name: "models/beta", DisplayName: "Beta", SupportedGenerationMethods: []string{"generateContent"}},
		models.Descriptor{Name: "models/alpha", DisplayName: "Alpha", SupportedGenerationMethods: []string{"generateContent"}},
	)
	server.Reply("models/alpha", "hello from alpha")
	server.Reply("models/beta", "hello from beta")
	return server
}

func run(t *testing.T, baseURL, key, input string) string {
	t.Helper()
	app := &appcontext.Mock{
		ClientFunc: func() (modelprobe.Client, error) {
			return modelprobe.New(modelprobe.WithBaseURL(baseURL))
		},
		APIKeyFunc: func() string { return key },
		InFunc:     func() io.Reader { return strings.NewReader(input) },
	}
	cmd := NewCommand(app)
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{})
	require.NoError(t, cmd.ExecuteContext(context.Background()))
	return out.String()
}

func TestProbeSession(t *testing.T) {
	server := newServer(t)

	out := run(t, server.URL, "key", "hi\n:use 2\nagain\n:quit\n")

	assert.Contains(t, out, "*  1. Alpha (models/alpha)")
	assert.Contains(t, out, "   2. Beta (models/beta)")
	assert.Contains(t, out, "hello from alpha")
	assert.Contains(t, out, "Using models/beta")
	assert.Contains(t, out, "hello from beta")
	assert.Equal(t, []string{"hi", "again"}, server.Prompts())
}

func TestProbeAsksForKey(t *testing.T) {
	server := newServer(t)

	out := run(t, server.URL, "", "key\nhi\n")
	assert.Contains(t, out, "API key: ")
	assert.Contains(t, out, "hello from alpha")
}

func TestProbeInvalidKeyThenFix(t *testing.T) {
	server := newServer(t)

	out := run(t, server.URL, "wrong", "hi\n:key\nkey\nhi\n")
	assert.Contains(t, out, "Could not load models: API key not valid")
	assert.Contains(t, out, "No model selected")
	assert.Contains(t, out, "hello from alpha")
}

func TestProbeNetworkFailure(t *testing.T) {
	server := newServer(t)
	baseURL := server.URL
	server.Close()

	out := run(t, baseURL, "key", "")
	assert.Contains(t, out, constants.ErrMsgNetworkBlocked)
}

func TestProbeUseErrors(t *testing.T) {
	server := newServer(t)

	out := run(t, server.URL, "key", ":use 9\n:use models/gamma\n:use\n")
	assert.Contains(t, out, "no model number 9")
	assert.Contains(t, out, "not one of the loaded models")
	assert.Contains(t, out, "usage: :use")
}
