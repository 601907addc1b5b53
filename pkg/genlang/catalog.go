package genlang

import (
	"context"
	"fmt"
	"strings"

	"github.com/agentstation/modelprobe/internal/transport"
	"github.com/agentstation/modelprobe/pkg/constants"
	"github.com/agentstation/modelprobe/pkg/errors"
	"github.com/agentstation/modelprobe/pkg/logging"
	"github.com/agentstation/modelprobe/pkg/models"
)

// listResponse is the body of GET /models.
type listResponse struct {
	Models        []models.Descriptor `json:"models"`
	NextPageToken string              `json:"nextPageToken,omitempty"`
}

// CatalogClient lists the models offered by the provider.
type CatalogClient struct {
	transport *transport.Client
}

var _ Catalog = (*CatalogClient)(nil)

// NewCatalogClient creates a catalog client.
func NewCatalogClient(opts ...Option) *CatalogClient {
	return &CatalogClient{transport: transport.New(opts...)}
}

// List fetches the catalog with one request and returns the models that
// support capability, ordered by display name. An empty capability means
// generateContent. A catalog with no matching model is a NotFound error.
func (c *CatalogClient) List(ctx context.Context, credential, capability string) ([]models.Descriptor, error) {
	if strings.TrimSpace(credential) == "" {
		return nil, errors.NewAuthError(OperationListModels, 0, constants.ErrMsgAPIKeyRequired)
	}
	if capability == "" {
		capability = constants.CapabilityGenerateContent
	}

	ctx = logging.WithOperation(ctx, OperationListModels)

	resp, err := c.transport.Get(ctx, constants.ModelsResource, credential)
	if err != nil {
		return nil, requestFailure(OperationListModels, err)
	}

	var result listResponse
	if err := transport.DecodeResponse(ctx, resp, &result); err != nil {
		return nil, classify(OperationListModels, constants.ErrMsgListModels, err)
	}

	usable := models.FilterByCapability(result.Models, capability)
	if len(usable) == 0 {
		return nil, errors.NewNotFoundError(OperationListModels,
			fmt.Sprintf("no models support capability %s", capability))
	}
	models.SortByDisplayName(usable)

	logging.FromContext(ctx).Debug().
		Int("total", len(result.Models)).
		Int("usable", len(usable)).
		Str("capability", capability).
		Msg("listed models")

	return usable, nil
}

// requestFailure classifies an error returned before any response arrived.
// Requests that could not be built are configuration problems; the rest
// failed in flight.
func requestFailure(operation string, err error) error {
	var (
		cfgErr   *errors.ConfigError
		parseErr *errors.ParseError
	)
	if errors.As(err, &cfgErr) || errors.As(err, &parseErr) {
		return err
	}
	return errors.NewNetworkError(operation, err)
}

// classify converts a DecodeResponse failure into a ClientError. Provider
// rejections keep the provider's message, or fallback when it sent none.
func classify(operation, fallback string, err error) error {
	var apiErr *errors.APIError
	if errors.As(err, &apiErr) {
		if apiErr.Message == "" {
			apiErr.Message = fallback
		}
		return errors.FromAPIError(operation, apiErr)
	}
	return &errors.ClientError{
		Kind:      errors.KindProviderRejected,
		Message:   fmt.Sprintf("%s: %v", fallback, err),
		Operation: operation,
		Err:       err,
	}
}
