// Package sdk implements the catalog and generation contracts on top of the
// official google.golang.org/genai client. It is an alternate wire path to
// pkg/genlang; results and errors are shaped identically so callers and
// errors.Normalize cannot tell the two apart.
package sdk

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"google.golang.org/genai"

	"github.com/agentstation/modelprobe/pkg/constants"
	"github.com/agentstation/modelprobe/pkg/errors"
	"github.com/agentstation/modelprobe/pkg/genlang"
	"github.com/agentstation/modelprobe/pkg/logging"
	"github.com/agentstation/modelprobe/pkg/models"
)

// ProviderName identifies this backend in APIError values.
const ProviderName = "genai"

// listPageSize is the page size requested while walking the catalog.
const listPageSize = 100

// Backend lists models and generates content through the genai SDK.
// A genai.Client is bound to one API key, so one is built per call.
type Backend struct {
	baseURL    string
	apiVersion string
	httpClient *http.Client
}

var (
	_ genlang.Catalog   = (*Backend)(nil)
	_ genlang.Generator = (*Backend)(nil)
)

// Option configures a Backend.
type Option func(*Backend)

// WithBaseURL overrides the provider root URL.
func WithBaseURL(baseURL string) Option {
	return func(b *Backend) {
		if baseURL != "" {
			b.baseURL = strings.TrimRight(baseURL, "/")
		}
	}
}

// WithAPIVersion overrides the version path segment.
func WithAPIVersion(version string) Option {
	return func(b *Backend) {
		if version != "" {
			b.apiVersion = strings.Trim(version, "/")
		}
	}
}

// WithHTTPClient sets the http.Client whose settings and transport the SDK
// uses. It is copied, never modified.
func WithHTTPClient(hc *http.Client) Option {
	return func(b *Backend) {
		b.httpClient = hc
	}
}

// New creates an SDK backend.
func New(opts ...Option) *Backend {
	b := &Backend{
		baseURL:    constants.DefaultBaseURL,
		apiVersion: constants.DefaultAPIVersion,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

func (b *Backend) client(ctx context.Context, credential string) (*genai.Client, *exchange, error) {
	ex, hc := newExchange(b.httpClient)
	config := &genai.ClientConfig{
		Backend: genai.BackendGeminiAPI,
		APIKey:  credential,
		HTTPOptions: genai.HTTPOptions{
			BaseURL:    b.baseURL + "/",
			APIVersion: b.apiVersion,
		},
		HTTPClient: hc,
	}

	client, err := genai.NewClient(ctx, config)
	if err != nil {
		return nil, nil, errors.NewConfigError("genai", "failed to create client", err)
	}
	return client, ex, nil
}

// List walks every catalog page and returns the models that support
// capability, ordered by display name.
func (b *Backend) List(ctx context.Context, credential, capability string) ([]models.Descriptor, error) {
	if strings.TrimSpace(credential) == "" {
		return nil, errors.NewAuthError(genlang.OperationListModels, 0, constants.ErrMsgAPIKeyRequired)
	}
	if capability == "" {
		capability = constants.CapabilityGenerateContent
	}

	ctx = logging.WithOperation(ctx, genlang.OperationListModels)

	client, ex, err := b.client(ctx, credential)
	if err != nil {
		return nil, err
	}

	var all []models.Descriptor
	pageToken := ""
	for {
		config := &genai.ListModelsConfig{
			QueryBase: genai.Ptr(true),
			PageSize:  listPageSize,
			PageToken: pageToken,
		}

		var page genai.Page[genai.Model]
		err := guard(func() (err error) {
			page, err = client.Models.List(ctx, config)
			return err
		})
		if err != nil {
			return nil, mapError(genlang.OperationListModels, constants.ErrMsgListModels, ex, err)
		}
		for _, m := range page.Items {
			all = append(all, convertModel(m))
		}

		if page.NextPageToken == "" {
			break
		}
		pageToken = page.NextPageToken
	}

	usable := models.FilterByCapability(all, capability)
	if len(usable) == 0 {
		return nil, errors.NewNotFoundError(genlang.OperationListModels,
			fmt.Sprintf("no models support capability %s", capability))
	}
	models.SortByDisplayName(usable)

	logging.FromContext(ctx).Debug().
		Int("total", len(all)).
		Int("usable", len(usable)).
		Msg("listed models via sdk")

	return usable, nil
}

// Generate sends prompt to modelName and returns the first text candidate.
func (b *Backend) Generate(ctx context.Context, credential, modelName, prompt string) (*genlang.Result, error) {
	if strings.TrimSpace(credential) == "" {
		return nil, errors.NewAuthError(genlang.OperationGenerateContent, 0, constants.ErrMsgAPIKeyRequired)
	}
	resource := models.ResourceName(modelName)
	if resource == "" {
		return nil, errors.NewValidationError("model", modelName, "model name is required")
	}
	if prompt == "" {
		return nil, errors.NewValidationError("prompt", prompt, "prompt is required")
	}

	ctx = logging.WithModel(logging.WithOperation(ctx, genlang.OperationGenerateContent), resource)

	client, ex, err := b.client(ctx, credential)
	if err != nil {
		return nil, err
	}

	var resp *genai.GenerateContentResponse
	err = guard(func() (err error) {
		resp, err = client.Models.GenerateContent(ctx, resource, genai.Text(prompt), nil)
		return err
	})
	if err != nil {
		return nil, mapError(genlang.OperationGenerateContent, constants.ErrMsgGenerateContent, ex, err)
	}

	return convertResponse(resp), nil
}
