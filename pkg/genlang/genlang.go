// Package genlang contains the typed clients for the generative-language
// API: model discovery through CatalogClient and single-turn prompts through
// GenerationClient.
//
// Both clients are stateless and safe for concurrent use. They never retry,
// never cache and never log errors; failures are returned as
// *errors.ClientError values that errors.Normalize turns into user-facing
// text.
package genlang

import (
	"context"

	"github.com/agentstation/modelprobe/internal/transport"
	"github.com/agentstation/modelprobe/pkg/models"
)

// Operation names recorded on ClientError values.
const (
	OperationListModels      = "list_models"
	OperationGenerateContent = "generate_content"
)

// Catalog lists the models usable for a capability.
type Catalog interface {
	List(ctx context.Context, credential, capability string) ([]models.Descriptor, error)
}

// Generator submits one prompt to one model.
type Generator interface {
	Generate(ctx context.Context, credential, modelName, prompt string) (*Result, error)
}

// Option configures the underlying transport of a client.
type Option = transport.Option

// Re-exported transport options so callers outside this module can point the
// clients at a different endpoint.
var (
	WithBaseURL    = transport.WithBaseURL
	WithAPIVersion = transport.WithAPIVersion
	WithHTTPClient = transport.WithHTTPClient
	WithUserAgent  = transport.WithUserAgent
)
