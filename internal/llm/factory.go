package llm

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/agenthands/owlgraph/internal/config"
)

// NewClient builds the chat client for the configured provider.
func NewClient(ctx context.Context, cfg config.LLMConfig, logger *slog.Logger) (LLMClient, error) {
	if logger == nil {
		logger = slog.Default()
	}
	provider := strings.ToLower(cfg.Provider)
	model := cfg.Model
	if model == "" {
		model = config.DefaultLLMModel
	}

	switch provider {
	case "", "openai":
		baseURL := cfg.BaseURL
		if baseURL == "" {
			baseURL = config.DefaultLLMBaseURL
		}
		return NewOpenAIClient(cfg.APIKey, model, baseURL), nil

	case "gemini":
		return NewGeminiClient(ctx, cfg.APIKey, model)

	case "claude":
		return NewClaudeClient(cfg.APIKey, model, cfg.BaseURL), nil

	case "ollama":
		baseURL := cfg.BaseURL
		if baseURL == "" {
			baseURL = config.DefaultOllamaURL
		}
		baseURL = OllamaBaseURL(baseURL)
		logger.Info("using Ollama through the OpenAI-compatible API", "base_url", baseURL)

		// Ollama ignores the key but the client sends one.
		apiKey := cfg.APIKey
		if apiKey == "" {
			apiKey = "ollama"
		}
		return NewOpenAIClient(apiKey, model, baseURL), nil

	default:
		return nil, fmt.Errorf("unsupported llm provider: %s", provider)
	}
}

// OllamaBaseURL points a bare Ollama address at its /v1 API.
func OllamaBaseURL(baseURL string) string {
	if strings.HasSuffix(baseURL, "/v1") {
		return baseURL
	}
	return strings.TrimRight(baseURL, "/") + "/v1"
}
