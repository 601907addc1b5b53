package sdk

import (
	"context"
	"fmt"
	"strings"

	"google.golang.org/genai"

	"github.com/agentstation/modelprobe/internal/transport"
	"github.com/agentstation/modelprobe/pkg/errors"
	"github.com/agentstation/modelprobe/pkg/genlang"
	"github.com/agentstation/modelprobe/pkg/models"
)

// convertModel maps an SDK model onto a catalog descriptor.
func convertModel(m *genai.Model) models.Descriptor {
	if m == nil {
		return models.Descriptor{}
	}
	return models.Descriptor{
		Name:                       m.Name,
		DisplayName:                m.DisplayName,
		SupportedGenerationMethods: append([]string(nil), m.SupportedActions...),
		Version:                    m.Version,
		Description:                m.Description,
		InputTokenLimit:            int64(m.InputTokenLimit),
		OutputTokenLimit:           int64(m.OutputTokenLimit),
	}
}

// convertResponse picks the first candidate with text. Thought parts are
// skipped.
func convertResponse(resp *genai.GenerateContentResponse) *genlang.Result {
	result := &genlang.Result{}
	if resp == nil {
		return result
	}

	result.ModelVersion = resp.ModelVersion
	if resp.PromptFeedback != nil {
		result.BlockReason = string(resp.PromptFeedback.BlockReason)
	}
	if u := resp.UsageMetadata; u != nil {
		result.Usage = &genlang.Usage{
			PromptTokens:     int(u.PromptTokenCount),
			CandidatesTokens: int(u.CandidatesTokenCount),
			TotalTokens:      int(u.TotalTokenCount),
		}
	}

	for _, c := range resp.Candidates {
		if c == nil {
			continue
		}
		if text := candidateText(c); text != "" {
			result.Text = text
			result.FinishReason = string(c.FinishReason)
			return result
		}
	}
	if len(resp.Candidates) > 0 && resp.Candidates[0] != nil {
		result.FinishReason = string(resp.Candidates[0].FinishReason)
	}
	return result
}

func candidateText(c *genai.Candidate) string {
	if c.Content == nil {
		return ""
	}
	var sb strings.Builder
	for _, p := range c.Content.Parts {
		if p == nil || p.Thought {
			continue
		}
		sb.WriteString(p.Text)
	}
	return sb.String()
}

// mapError classifies an SDK failure the same way the REST clients do. When
// the provider answered with a non-2xx status, the recorded status and body
// decide; genai's own APIError is used only when no response was recorded.
func mapError(operation, fallback string, ex *exchange, err error) error {
	if status, body := ex.failure(); status != 0 {
		message, providerStatus := transport.ErrorMessage(body)
		if message == "" {
			message = fallback
		}
		return errors.FromAPIError(operation, &errors.APIError{
			Provider:   ProviderName,
			StatusCode: status,
			Message:    message,
			Status:     providerStatus,
			Err:        err,
		})
	}

	if apiErr, ok := asAPIError(err); ok {
		message := apiErr.Message
		if message == "" {
			message = fallback
		}
		return errors.FromAPIError(operation, &errors.APIError{
			Provider:   ProviderName,
			StatusCode: apiErr.Code,
			Message:    message,
			Status:     apiErr.Status,
			Err:        err,
		})
	}

	if errors.IsTransportFailure(err) ||
		errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return errors.NewNetworkError(operation, err)
	}

	return &errors.ClientError{
		Kind:      errors.KindProviderRejected,
		Message:   fmt.Sprintf("%s: %v", fallback, err),
		Operation: operation,
		Err:       err,
	}
}

func asAPIError(err error) (genai.APIError, bool) {
	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		return apiErr, true
	}
	var apiErrPtr *genai.APIError
	if errors.As(err, &apiErrPtr) && apiErrPtr != nil {
		return *apiErrPtr, true
	}
	return genai.APIError{}, false
}
