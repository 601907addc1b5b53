package transport

import (
	"context"
	"encoding/json"
	"io"
	"net/http"

	"github.com/agentstation/modelprobe/pkg/errors"
	"github.com/agentstation/modelprobe/pkg/logging"
)

// ProviderName identifies the API in APIError values.
const ProviderName = "generativelanguage"

// errorEnvelope is the provider's failure body: {"error": {"message": ...}}.
type errorEnvelope struct {
	Error *struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
		Status  string `json:"status"`
	} `json:"error"`
	Message string `json:"message"`
}

// DecodeResponse decodes a JSON response into the target structure.
// Non-2xx responses become *errors.APIError carrying the provider's embedded
// message when one is present; Message is empty otherwise.
func DecodeResponse(ctx context.Context, resp *http.Response, target any) error {
	defer func() {
		if err := resp.Body.Close(); err != nil {
			logging.FromContext(ctx).Warn().Err(err).Msg("failed to close response body")
		}
	}()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return errors.WrapIO("read", "response body", err)
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		message, status := ErrorMessage(body)
		apiErr := &errors.APIError{
			Provider:   ProviderName,
			StatusCode: resp.StatusCode,
			Message:    message,
			Status:     status,
		}
		if resp.Request != nil && resp.Request.URL != nil {
			apiErr.Endpoint = resp.Request.URL.Path
		}
		return apiErr
	}

	if err := json.Unmarshal(body, target); err != nil {
		return errors.WrapParse("json", "response", err)
	}

	return nil
}

// ErrorMessage extracts error.message (and error.status) from a provider
// failure body. Bodies that are not JSON, or lack a message, yield "".
func ErrorMessage(body []byte) (message, status string) {
	var env errorEnvelope
	if err := json.Unmarshal(body, &env); err != nil {
		return "", ""
	}
	if env.Error != nil && env.Error.Message != "" {
		return env.Error.Message, env.Error.Status
	}
	return env.Message, ""
}
