package translate

import (
	"context"
)

type MockLLM struct {
	Response string
	Err      error

	Calls        int
	SystemPrompt string
	UserPrompt   string
}

func (m *MockLLM) Generate(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	m.Calls++
	m.SystemPrompt = systemPrompt
	m.UserPrompt = userPrompt
	if m.Err != nil {
		return "", m.Err
	}
	return m.Response, nil
}
