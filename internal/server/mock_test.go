package server

import (
	"context"

	"github.com/agenthands/owlgraph/internal/driver"
)

type MockDriver struct {
	ReadResults map[string][]driver.Record
	PingErr     error
	WriteErr    error
	RunResult   *driver.Result

	Writes []string
}

func (m *MockDriver) ExecuteRead(ctx context.Context, query string, params map[string]any) ([]driver.Record, error) {
	return m.ReadResults[query], nil
}

func (m *MockDriver) ExecuteWrite(ctx context.Context, query string, params map[string]any) (driver.Counters, error) {
	m.Writes = append(m.Writes, query)
	if m.WriteErr != nil {
		return driver.Counters{}, m.WriteErr
	}
	return driver.Counters{NodesCreated: 1}, nil
}

func (m *MockDriver) Run(ctx context.Context, query string, params map[string]any) (*driver.Result, error) {
	if m.RunResult == nil {
		return &driver.Result{}, nil
	}
	return m.RunResult, nil
}

func (m *MockDriver) Ping(ctx context.Context) error {
	return m.PingErr
}

func (m *MockDriver) Close(ctx context.Context) error {
	return nil
}

type MockLLM struct {
	Response string
	Err      error
}

func (m *MockLLM) Generate(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	return m.Response, m.Err
}
