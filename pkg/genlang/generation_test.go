package genlang

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/modelprobe/pkg/constants"
	"github.com/agentstation/modelprobe/pkg/errors"
)

const helloBody = `{
  "candidates": [{"content": {"role": "model", "parts": [{"text": "hello"}]}, "finishReason": "STOP"}],
  "usageMetadata": {"promptTokenCount": 3, "candidatesTokenCount": 1, "totalTokenCount": 4},
  "modelVersion": "gemini-2.0-flash-001"
}`

func TestGenerationClientGenerate(t *testing.T) {
	server, hits := newServer(t, http.StatusOK, helloBody)
	client := NewGenerationClient(WithBaseURL(server.URL))

	result, err := client.Generate(context.Background(), testKey, "models/gemini-2.0-flash", "Say hello")
	require.NoError(t, err)

	assert.Equal(t, int32(1), hits.Load())
	assert.False(t, result.Empty())
	assert.Equal(t, "hello", result.Text)
	assert.Equal(t, "STOP", result.FinishReason)
	assert.Equal(t, "gemini-2.0-flash-001", result.ModelVersion)
	require.NotNil(t, result.Usage)
	assert.Equal(t, 4, result.Usage.TotalTokens)
	assert.NoError(t, result.Err())
}

func TestGenerationClientRequestShape(t *testing.T) {
	tests := []struct {
		name     string
		model    string
		wantPath string
	}{
		{name: "prefixed", model: "models/gemini-pro", wantPath: "/v1/models/gemini-pro:generateContent"},
		{name: "bare", model: "gemini-pro", wantPath: "/v1/models/gemini-pro:generateContent"},
		{name: "tuned", model: "tunedModels/my-model", wantPath: "/v1/tunedModels/my-model:generateContent"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, http.MethodPost, r.Method)
				assert.Equal(t, tt.wantPath, r.URL.Path)
				assert.Equal(t, testKey, r.Header.Get(constants.APIKeyHeader))
				assert.NotContains(t, r.URL.String(), testKey)

				raw, err := io.ReadAll(r.Body)
				require.NoError(t, err)
				assert.JSONEq(t, `{"contents":[{"parts":[{"text":"ping"}]}]}`, string(raw))

				_, _ = w.Write([]byte(helloBody))
			}))
			defer server.Close()

			_, err := NewGenerationClient(WithBaseURL(server.URL)).Generate(context.Background(), testKey, tt.model, "ping")
			require.NoError(t, err)
		})
	}
}

func TestGenerationClientEmptyResponse(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		wantFinish string
		wantBlock  string
	}{
		{name: "no candidates", body: `{"candidates": []}`},
		{name: "empty object", body: `{}`},
		{name: "no content", body: `{"candidates": [{"finishReason": "SAFETY"}]}`, wantFinish: "SAFETY"},
		{name: "empty parts", body: `{"candidates": [{"content": {"parts": []}, "finishReason": "MAX_TOKENS"}]}`, wantFinish: "MAX_TOKENS"},
		{name: "blocked prompt", body: `{"promptFeedback": {"blockReason": "SAFETY"}}`, wantBlock: "SAFETY"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server, _ := newServer(t, http.StatusOK, tt.body)

			result, err := NewGenerationClient(WithBaseURL(server.URL)).Generate(context.Background(), testKey, "gemini-pro", "hi")
			require.NoError(t, err)
			require.NotNil(t, result)
			assert.True(t, result.Empty())
			assert.Equal(t, tt.wantFinish, result.FinishReason)
			assert.Equal(t, tt.wantBlock, result.BlockReason)

			emptyErr := result.Err()
			assert.ErrorIs(t, emptyErr, errors.ErrEmptyResponse)
			assert.Equal(t, errors.KindEmptyResponse, errors.KindOf(emptyErr))
		})
	}
}

func TestGenerationClientCandidateSelection(t *testing.T) {
	body := map[string]any{
		"candidates": []any{
			map[string]any{"content": map[string]any{"parts": []any{}}, "finishReason": "RECITATION"},
			map[string]any{
				"content":      map[string]any{"parts": []any{map[string]any{"text": "foo"}, map[string]any{"text": "bar"}}},
				"finishReason": "STOP",
			},
			map[string]any{"content": map[string]any{"parts": []any{map[string]any{"text": "ignored"}}}},
		},
	}
	raw, err := json.Marshal(body)
	require.NoError(t, err)
	server, _ := newServer(t, http.StatusOK, string(raw))

	result, err := NewGenerationClient(WithBaseURL(server.URL)).Generate(context.Background(), testKey, "gemini-pro", "hi")
	require.NoError(t, err)
	assert.Equal(t, "foobar", result.Text)
	assert.Equal(t, "STOP", result.FinishReason)
}

func TestGenerationClientValidation(t *testing.T) {
	server, hits := newServer(t, http.StatusOK, helloBody)
	client := NewGenerationClient(WithBaseURL(server.URL))
	ctx := context.Background()

	_, err := client.Generate(ctx, "", "gemini-pro", "hi")
	assert.Equal(t, errors.KindAuth, errors.KindOf(err))
	assert.ErrorIs(t, err, errors.ErrAPIKeyRequired)

	_, err = client.Generate(ctx, testKey, "", "hi")
	assert.ErrorIs(t, err, errors.ErrInvalidInput)

	_, err = client.Generate(ctx, testKey, "  ", "hi")
	assert.ErrorIs(t, err, errors.ErrInvalidInput)

	_, err = client.Generate(ctx, testKey, "gemini-pro", "")
	assert.ErrorIs(t, err, errors.ErrInvalidInput)

	assert.Equal(t, int32(0), hits.Load())
}

func TestGenerationClientProviderErrors(t *testing.T) {
	tests := []struct {
		name        string
		status      int
		body        string
		wantKind    errors.Kind
		wantMessage string
	}{
		{
			name:        "quota",
			status:      http.StatusTooManyRequests,
			body:        `{"error":{"code":429,"message":"quota exceeded","status":"RESOURCE_EXHAUSTED"}}`,
			wantKind:    errors.KindProviderRejected,
			wantMessage: "quota exceeded",
		},
		{
			name:        "unknown model",
			status:      http.StatusNotFound,
			body:        `{"error":{"code":404,"message":"models/nope is not found"}}`,
			wantKind:    errors.KindProviderRejected,
			wantMessage: "models/nope is not found",
		},
		{
			name:        "unauthorized",
			status:      http.StatusUnauthorized,
			body:        `{"error":{"message":"bad key"}}`,
			wantKind:    errors.KindAuth,
			wantMessage: "bad key",
		},
		{
			name:        "fallback",
			status:      http.StatusServiceUnavailable,
			body:        ``,
			wantKind:    errors.KindProviderRejected,
			wantMessage: constants.ErrMsgGenerateContent,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server, _ := newServer(t, tt.status, tt.body)

			result, err := NewGenerationClient(WithBaseURL(server.URL)).Generate(context.Background(), testKey, "gemini-pro", "hi")
			require.Error(t, err)
			assert.Nil(t, result)
			assert.Equal(t, tt.wantKind, errors.KindOf(err))
			assert.Equal(t, tt.status, errors.StatusCode(err))
			assert.Equal(t, tt.wantMessage, errors.Normalize(err))
		})
	}
}

func TestGenerationClientNetworkFailure(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	baseURL := server.URL
	server.Close()

	_, err := NewGenerationClient(WithBaseURL(baseURL)).Generate(context.Background(), testKey, "gemini-pro", "hi")
	require.Error(t, err)
	assert.Equal(t, errors.KindNetwork, errors.KindOf(err))
	assert.Equal(t, constants.ErrMsgNetworkBlocked, errors.Normalize(err))
}

func TestGenerationClientMalformedBaseURL(t *testing.T) {
	_, err := NewGenerationClient(WithBaseURL("http://%zz")).Generate(context.Background(), testKey, "gemini-pro", "hi")
	require.Error(t, err)

	var cfgErr *errors.ConfigError
	require.ErrorAs(t, err, &cfgErr)
	assert.NotEqual(t, constants.ErrMsgNetworkBlocked, errors.Normalize(err))
}

func TestGenerationClientCanceledContext(t *testing.T) {
	server, _ := newServer(t, http.StatusOK, helloBody)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewGenerationClient(WithBaseURL(server.URL)).Generate(ctx, testKey, "gemini-pro", "hi")
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
	assert.NotEqual(t, constants.ErrMsgNetworkBlocked, errors.Normalize(err))
}

func TestGenerationClientDo(t *testing.T) {
	server, _ := newServer(t, http.StatusOK, helloBody)

	result, err := NewGenerationClient(WithBaseURL(server.URL)).Do(context.Background(), testKey, Request{ModelName: "gemini-pro", PromptText: "hi"})
	require.NoError(t, err)
	assert.Equal(t, "hello", result.Text)
}

func TestResultEmptyNil(t *testing.T) {
	var r *Result
	assert.True(t, r.Empty())
	assert.ErrorIs(t, r.Err(), errors.ErrEmptyResponse)
}
