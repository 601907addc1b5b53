package genlang

import (
	"context"
	"strings"

	"github.com/agentstation/modelprobe/internal/transport"
	"github.com/agentstation/modelprobe/pkg/constants"
	"github.com/agentstation/modelprobe/pkg/errors"
	"github.com/agentstation/modelprobe/pkg/logging"
	"github.com/agentstation/modelprobe/pkg/models"
)

// GenerationClient sends single-turn prompts to a model.
type GenerationClient struct {
	transport *transport.Client
}

var _ Generator = (*GenerationClient)(nil)

// NewGenerationClient creates a generation client.
func NewGenerationClient(opts ...Option) *GenerationClient {
	return &GenerationClient{transport: transport.New(opts...)}
}

// Generate posts prompt to modelName and returns the first text candidate.
// modelName may be "foo" or "models/foo". A well-formed response without
// text yields a Result whose Empty method reports true, with a nil error.
func (c *GenerationClient) Generate(ctx context.Context, credential, modelName, prompt string) (*Result, error) {
	if strings.TrimSpace(credential) == "" {
		return nil, errors.NewAuthError(OperationGenerateContent, 0, constants.ErrMsgAPIKeyRequired)
	}
	resource := models.ResourceName(modelName)
	if resource == "" {
		return nil, errors.NewValidationError("model", modelName, "model name is required")
	}
	if prompt == "" {
		return nil, errors.NewValidationError("prompt", prompt, "prompt is required")
	}

	ctx = logging.WithModel(logging.WithOperation(ctx, OperationGenerateContent), resource)

	resp, err := c.transport.PostJSON(ctx, resource+":"+constants.GenerateContentMethod, credential, newGenerateRequest(prompt))
	if err != nil {
		return nil, requestFailure(OperationGenerateContent, err)
	}

	var body generateResponse
	if err := transport.DecodeResponse(ctx, resp, &body); err != nil {
		return nil, classify(OperationGenerateContent, constants.ErrMsgGenerateContent, err)
	}

	result := body.toResult()
	logging.FromContext(ctx).Debug().
		Bool("empty", result.Empty()).
		Str("finish_reason", result.FinishReason).
		Msg("generated content")

	return result, nil
}

// Do runs req through Generate.
func (c *GenerationClient) Do(ctx context.Context, credential string, req Request) (*Result, error) {
	return c.Generate(ctx, credential, req.ModelName, req.PromptText)
}
