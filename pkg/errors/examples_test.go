package errors_test

import (
	"fmt"

	"github.com/agentstation/modelprobe/pkg/errors"
)

// Example demonstrates classifying a provider failure.
func Example() {
	err := errors.FromAPIError("generate_content", &errors.APIError{
		Provider:   "generativelanguage",
		StatusCode: 429,
		Message:    "quota exceeded",
	})

	fmt.Println(err.Kind)
	fmt.Println(errors.IsRateLimited(err))
	fmt.Println(errors.Normalize(err))

	// Output:
	// provider_rejected
	// true
	// quota exceeded
}

// Example_missingKey shows the local credential check.
func Example_missingKey() {
	err := errors.NewAuthError("list_models", 0, "API key is required")
	if errors.IsAPIKeyError(err) {
		fmt.Println("set GEMINI_API_KEY")
	}

	// Output: set GEMINI_API_KEY
}
