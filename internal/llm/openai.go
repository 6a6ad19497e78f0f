package llm

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/sashabaranov/go-openai"
)

// OpenAIClient talks to any OpenAI-compatible chat completions endpoint
// (OpenAI, OpenRouter, Ollama, vLLM, ...).
type OpenAIClient struct {
	client   *openai.Client
	model    string
	endpoint string
}

// OpenAIOption configures an OpenAIClient.
type OpenAIOption func(*openai.ClientConfig)

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(c *http.Client) OpenAIOption {
	return func(cfg *openai.ClientConfig) {
		cfg.HTTPClient = c
	}
}

func NewOpenAIClient(apiKey string, model string, baseURL string, opts ...OpenAIOption) *OpenAIClient {
	config := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		config.BaseURL = strings.TrimSuffix(baseURL, "/")
	}
	for _, opt := range opts {
		opt(&config)
	}
	if hc, ok := config.HTTPClient.(*http.Client); ok {
		config.HTTPClient = captureClient(hc)
	}

	return &OpenAIClient{
		client:   openai.NewClientWithConfig(config),
		model:    model,
		endpoint: ChatCompletionsURL(config.BaseURL),
	}
}

// Endpoint is the chat completions URL requests are sent to.
func (c *OpenAIClient) Endpoint() string {
	return c.endpoint
}

func (c *OpenAIClient) Generate(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	req := openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleSystem,
				Content: systemPrompt,
			},
			{
				Role:    openai.ChatMessageRoleUser,
				Content: userPrompt,
			},
		},
		Temperature: DefaultTemperature,
	}

	ctx, failed := captureFailure(ctx)
	resp, err := c.client.CreateChatCompletion(ctx, req)
	if err != nil {
		return "", openAIError(err, failed)
	}
	if len(resp.Choices) == 0 {
		return "", ErrNoChoices
	}
	return resp.Choices[0].Message.Content, nil
}

// openAIError keeps the upstream status code and body of failed calls. The
// captured bytes win over whatever go-openai managed to decode.
func openAIError(err error, failed *failure) error {
	if failed.captured() {
		return failed.apiError(err)
	}

	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		body := string(reqErr.Body)
		if body == "" && reqErr.Err != nil {
			body = reqErr.Err.Error()
		}
		return &APIError{StatusCode: reqErr.HTTPStatusCode, Body: body, Err: err}
	}

	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		return &APIError{StatusCode: apiErr.HTTPStatusCode, Body: apiErr.Message, Err: err}
	}
	return err
}
