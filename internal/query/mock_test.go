package query

import (
	"context"

	"github.com/agenthands/owlgraph/internal/driver"
)

type MockDriver struct {
	ReadResults map[string][]driver.Record
	ReadErr     error
	RunResult   *driver.Result
	RunErr      error

	Writes []string
	Runs   []string
}

func (m *MockDriver) ExecuteRead(ctx context.Context, query string, params map[string]any) ([]driver.Record, error) {
	if m.ReadErr != nil {
		return nil, m.ReadErr
	}
	return m.ReadResults[query], nil
}

func (m *MockDriver) ExecuteWrite(ctx context.Context, query string, params map[string]any) (driver.Counters, error) {
	m.Writes = append(m.Writes, query)
	return driver.Counters{PropertiesSet: 1}, nil
}

func (m *MockDriver) Run(ctx context.Context, query string, params map[string]any) (*driver.Result, error) {
	m.Runs = append(m.Runs, query)
	if m.RunErr != nil {
		return nil, m.RunErr
	}
	if m.RunResult == nil {
		return &driver.Result{}, nil
	}
	return m.RunResult, nil
}

func (m *MockDriver) Ping(ctx context.Context) error {
	return m.ReadErr
}

func (m *MockDriver) Close(ctx context.Context) error {
	return nil
}

type MockLLM struct {
	Response     string
	Err          error
	SystemPrompt string
}

func (m *MockLLM) Generate(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	m.SystemPrompt = systemPrompt
	return m.Response, m.Err
}
