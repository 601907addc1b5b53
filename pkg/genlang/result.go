package genlang

import (
	"fmt"

	"github.com/agentstation/modelprobe/pkg/errors"
)

// Request is a single-turn generation request.
type Request struct {
	ModelName  string `json:"model" yaml:"model"`
	PromptText string `json:"prompt" yaml:"prompt"`
}

// Usage reports the token accounting of a generation call.
type Usage struct {
	PromptTokens     int `json:"promptTokens" yaml:"prompt_tokens"`
	CandidatesTokens int `json:"candidatesTokens" yaml:"candidates_tokens"`
	TotalTokens      int `json:"totalTokens" yaml:"total_tokens"`
}

// Result is the outcome of a successful generation call. A Result with no
// text is the empty-response variant: the provider answered, but no
// candidate carried a text part. That is not an error.
type Result struct {
	Text         string `json:"text" yaml:"text"`
	FinishReason string `json:"finishReason,omitempty" yaml:"finish_reason,omitempty"`
	BlockReason  string `json:"blockReason,omitempty" yaml:"block_reason,omitempty"`
	ModelVersion string `json:"modelVersion,omitempty" yaml:"model_version,omitempty"`
	Usage        *Usage `json:"usage,omitempty" yaml:"usage,omitempty"`
}

// Empty reports whether the result is the empty-response variant.
func (r *Result) Empty() bool {
	return r == nil || r.Text == ""
}

// Err returns an EmptyResponse ClientError for the empty variant and nil
// otherwise, for callers that prefer to treat an empty answer as a failure.
func (r *Result) Err() error {
	if !r.Empty() {
		return nil
	}
	return errors.NewEmptyResponseError(OperationGenerateContent, r.emptyMessage())
}

func (r *Result) emptyMessage() string {
	switch {
	case r == nil:
		return "no response"
	case r.BlockReason != "":
		return fmt.Sprintf("response contained no text (prompt blocked: %s)", r.BlockReason)
	case r.FinishReason != "":
		return fmt.Sprintf("response contained no text (finish reason: %s)", r.FinishReason)
	}
	return "response contained no text"
}
