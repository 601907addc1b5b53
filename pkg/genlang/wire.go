package genlang

// Wire shapes of the generateContent call. Only the fields the client reads
// are declared.

type part struct {
	Text string `json:"text,omitempty"`
}

type content struct {
	Role  string `json:"role,omitempty"`
	Parts []part `json:"parts"`
}

type generateRequest struct {
	Contents []content `json:"contents"`
}

type candidate struct {
	Content      *content `json:"content,omitempty"`
	FinishReason string   `json:"finishReason,omitempty"`
}

type promptFeedback struct {
	BlockReason string `json:"blockReason,omitempty"`
}

type usageMetadata struct {
	PromptTokenCount     int `json:"promptTokenCount"`
	CandidatesTokenCount int `json:"candidatesTokenCount"`
	TotalTokenCount      int `json:"totalTokenCount"`
}

type generateResponse struct {
	Candidates     []candidate     `json:"candidates"`
	PromptFeedback *promptFeedback `json:"promptFeedback,omitempty"`
	UsageMetadata  *usageMetadata  `json:"usageMetadata,omitempty"`
	ModelVersion   string          `json:"modelVersion,omitempty"`
}

func newGenerateRequest(prompt string) generateRequest {
	return generateRequest{
		Contents: []content{{Parts: []part{{Text: prompt}}}},
	}
}

// text returns the concatenated text parts of c and whether any existed.
func (c candidate) text() (string, bool) {
	if c.Content == nil {
		return "", false
	}
	var (
		out   string
		found bool
	)
	for _, p := range c.Content.Parts {
		if p.Text == "" {
			continue
		}
		out += p.Text
		found = true
	}
	return out, found
}

// toResult picks the first candidate carrying text.
func (r *generateResponse) toResult() *Result {
	result := &Result{ModelVersion: r.ModelVersion}
	if r.PromptFeedback != nil {
		result.BlockReason = r.PromptFeedback.BlockReason
	}
	if r.UsageMetadata != nil {
		result.Usage = &Usage{
			PromptTokens:     r.UsageMetadata.PromptTokenCount,
			CandidatesTokens: r.UsageMetadata.CandidatesTokenCount,
			TotalTokens:      r.UsageMetadata.TotalTokenCount,
		}
	}

	for _, c := range r.Candidates {
		if text, ok := c.text(); ok {
			result.Text = text
			result.FinishReason = c.FinishReason
			return result
		}
	}
	if len(r.Candidates) > 0 {
		result.FinishReason = r.Candidates[0].FinishReason
	}
	return result
}
