// Package llm wraps the text-generation providers behind a single chat interface.
package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// DefaultTemperature favors deterministic output over creative output.
const DefaultTemperature float32 = 0.1

// ErrNoChoices is returned when the provider answered without any generated text.
var ErrNoChoices = errors.New("no choices returned from LLM")

// LLMClient sends one system prompt and one user prompt and returns the
// first generated text.
type LLMClient interface {
	Generate(ctx context.Context, systemPrompt, userPrompt string) (string, error)
}

// APIError is a non-success answer from the provider endpoint.
type APIError struct {
	StatusCode int
	Body       string
	Err        error
}

func (e *APIError) Error() string {
	return fmt.Sprintf("LLM API error (HTTP %d): %s", e.StatusCode, e.Body)
}

func (e *APIError) Unwrap() error {
	return e.Err
}

// ChatCompletionsURL appends the chat completions path to baseURL, adding a
// separator only when baseURL lacks a trailing one.
func ChatCompletionsURL(baseURL string) string {
	if strings.HasSuffix(baseURL, "/") {
		return baseURL + "chat/completions"
	}
	return baseURL + "/chat/completions"
}
