// Package testutil provides a fake generative-language server for command
// and client tests.
package testutil

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/agentstation/modelprobe/pkg/constants"
	"github.com/agentstation/modelprobe/pkg/models"
)

// Server fakes the models and generateContent endpoints.
type Server struct {
	*httptest.Server

	// Key is the only API key accepted; other keys get a 400 like the real API.
	Key string

	mu      sync.Mutex
	models  []models.Descriptor
	replies map[string]string
	prompts []string
}

// NewServer starts a server that accepts key and serves descs. It is closed
// when the test ends.
func NewServer(t testing.TB, key string, descs ...models.Descriptor) *Server {
	t.Helper()
	s := &Server{Key: key, models: descs, replies: map[string]string{}}
	s.Server = httptest.NewServer(http.HandlerFunc(s.handle))
	t.Cleanup(s.Close)
	return s
}

// Reply sets the text returned for model ("models/x"). An empty reply
// produces a response with no candidates.
func (s *Server) Reply(model, text string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.replies[model] = text
}

// Prompts returns the prompts received so far.
func (s *Server) Prompts() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.prompts...)
}

func (s *Server) handle(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	if r.Header.Get(constants.APIKeyHeader) != s.Key {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error":{"code":400,"message":"API key not valid. Please pass a valid API key.","status":"INVALID_ARGUMENT"}}`))
		return
	}

	path := strings.TrimPrefix(r.URL.Path, "/v1/")
	switch {
	case r.Method == http.MethodGet && path == "models":
		s.mu.Lock()
		defer s.mu.Unlock()
		_ = json.NewEncoder(w).Encode(map[string]any{"models": s.models})
	case r.Method == http.MethodPost && strings.HasSuffix(path, ":generateContent"):
		s.generate(w, r, strings.TrimSuffix(path, ":generateContent"))
	default:
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"error":{"code":404,"message":"not found"}}`))
	}
}

func (s *Server) generate(w http.ResponseWriter, r *http.Request, model string) {
	var req struct {
		Contents []struct {
			Parts []struct {
				Text string `json:"text"`
			} `json:"parts"`
		} `json:"contents"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || len(req.Contents) == 0 || len(req.Contents[0].Parts) == 0 {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error":{"code":400,"message":"contents is not specified"}}`))
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.prompts = append(s.prompts, req.Contents[0].Parts[0].Text)

	reply, ok := s.replies[model]
	if !ok {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"error":{"code":404,"message":"` + model + ` is not found"}}`))
		return
	}
	if reply == "" {
		_, _ = w.Write([]byte(`{"candidates":[],"promptFeedback":{"blockReason":"SAFETY"}}`))
		return
	}
	_ = json.NewEncoder(w).Encode(map[string]any{
		"candidates": []any{map[string]any{
			"content":      map[string]any{"role": "model", "parts": []any{map[string]any{"text": reply}}},
			"finishReason": "STOP",
		}},
	})
}
