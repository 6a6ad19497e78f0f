package llm

import (
	"context"
	"errors"
	"fmt"

	"github.com/liushuangls/go-anthropic/v2"
)

const claudeMaxTokens = 1024

type ClaudeClient struct {
	client  *anthropic.Client
	model   string
	baseURL string
}

// NewClaudeClient talks to the Anthropic messages API. A blank baseURL keeps
// the SDK default host.
func NewClaudeClient(apiKey string, model string, baseURL string) *ClaudeClient {
	opts := []anthropic.ClientOption{
		anthropic.WithHTTPClient(captureClient(nil)),
	}
	if baseURL != "" {
		opts = append(opts, anthropic.WithBaseURL(baseURL))
	}

	return &ClaudeClient{
		client:  anthropic.NewClient(apiKey, opts...),
		model:   model,
		baseURL: baseURL,
	}
}

func (c *ClaudeClient) Generate(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	ctx, failed := captureFailure(ctx)
	temperature := DefaultTemperature
	resp, err := c.client.CreateMessages(ctx, anthropic.MessagesRequest{
		Model:  anthropic.Model(c.model),
		System: systemPrompt,
		Messages: []anthropic.Message{
			{
				Role: anthropic.RoleUser,
				Content: []anthropic.MessageContent{
					anthropic.NewTextMessageContent(userPrompt),
				},
			},
		},
		MaxTokens:   claudeMaxTokens,
		Temperature: &temperature,
	})
	if err != nil {
		return "", claudeError(err, failed)
	}

	for _, content := range resp.Content {
		if content.Text != nil {
			return *content.Text, nil
		}
	}
	return "", ErrNoChoices
}

// claudeError maps SDK failures onto APIError. The SDK drops the status
// code once it has decoded a JSON error envelope, so captured bytes come first.
func claudeError(err error, failed *failure) error {
	if failed.captured() {
		return failed.apiError(err)
	}

	var reqErr *anthropic.RequestError
	if errors.As(err, &reqErr) {
		return &APIError{StatusCode: reqErr.StatusCode, Body: string(reqErr.Body), Err: err}
	}
	return fmt.Errorf("claude request failed: %w", err)
}
