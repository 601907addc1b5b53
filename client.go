// Package modelprobe provides a typed client for the generative-language API:
// discover the models a key can use, then send a test prompt to one of them.
//
// Two interchangeable backends are available. The default REST backend talks
// to the HTTP endpoints directly through pkg/genlang; the SDK backend goes
// through google.golang.org/genai. Both return the same result types and the
// same *errors.ClientError values, so errors.Normalize produces identical
// messages for either.
//
// Example usage:
//
//	client, err := modelprobe.New()
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	models, err := client.ListModels(ctx, apiKey)
//	if err != nil {
//	    fmt.Println(errors.Normalize(err))
//	    return
//	}
//
//	result, err := client.Generate(ctx, apiKey, models[0].Name, "Say hello")
//	if err != nil {
//	    fmt.Println(errors.Normalize(err))
//	    return
//	}
//	if result.Empty() {
//	    fmt.Println("the model returned no text")
//	    return
//	}
//	fmt.Println(result.Text)
package modelprobe

import (
	"context"

	"github.com/agentstation/modelprobe/internal/sdk"
	"github.com/agentstation/modelprobe/pkg/constants"
	"github.com/agentstation/modelprobe/pkg/errors"
	"github.com/agentstation/modelprobe/pkg/genlang"
	"github.com/agentstation/modelprobe/pkg/models"
)

// Compile-time interface checks.
var (
	_ Client            = (*client)(nil)
	_ genlang.Catalog   = (*client)(nil)
	_ genlang.Generator = (*client)(nil)
)

// Client lists models and generates content for a caller-supplied API key.
// The key is passed on every call and never stored.
type Client interface {
	genlang.Catalog
	genlang.Generator

	// ListModels returns the models that support generateContent.
	ListModels(ctx context.Context, credential string) ([]models.Descriptor, error)

	// Backend reports which wire path the client uses.
	Backend() Backend
}

// client is the implementation of Client.
type client struct {
	config    *config
	catalog   genlang.Catalog
	generator genlang.Generator
}

// New creates a Client configured by opts.
func New(opts ...Option) (Client, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		if err := opt(cfg); err != nil {
			return nil, err
		}
	}

	c := &client{config: cfg}
	switch cfg.backend {
	case BackendREST:
		transportOpts := []genlang.Option{
			genlang.WithBaseURL(cfg.baseURL),
			genlang.WithAPIVersion(cfg.apiVersion),
			genlang.WithUserAgent(cfg.userAgent),
		}
		if cfg.httpClient != nil {
			transportOpts = append(transportOpts, genlang.WithHTTPClient(cfg.httpClient))
		}
		c.catalog = genlang.NewCatalogClient(transportOpts...)
		c.generator = genlang.NewGenerationClient(transportOpts...)
	case BackendSDK:
		backend := sdk.New(
			sdk.WithBaseURL(cfg.baseURL),
			sdk.WithAPIVersion(cfg.apiVersion),
			sdk.WithHTTPClient(cfg.httpClient),
		)
		c.catalog = backend
		c.generator = backend
	default:
		return nil, errors.NewConfigError("backend", "unknown backend "+string(cfg.backend), nil)
	}

	return c, nil
}

// List implements genlang.Catalog.
func (c *client) List(ctx context.Context, credential, capability string) ([]models.Descriptor, error) {
	return c.catalog.List(ctx, credential, capability)
}

// ListModels implements Client.
func (c *client) ListModels(ctx context.Context, credential string) ([]models.Descriptor, error) {
	return c.catalog.List(ctx, credential, constants.CapabilityGenerateContent)
}

// Generate implements genlang.Generator.
func (c *client) Generate(ctx context.Context, credential, modelName, prompt string) (*genlang.Result, error) {
	return c.generator.Generate(ctx, credential, modelName, prompt)
}

// Backend implements Client.
func (c *client) Backend() Backend {
	return c.config.backend
}
