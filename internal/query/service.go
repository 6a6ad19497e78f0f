// Package query runs the three user-facing operations: natural-language
// questions, direct Cypher, and ontology export.
package query

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/agenthands/owlgraph/internal/driver"
	"github.com/agenthands/owlgraph/internal/export"
	"github.com/agenthands/owlgraph/internal/metrics"
	"github.com/agenthands/owlgraph/internal/ontology"
	"github.com/agenthands/owlgraph/internal/schema"
	"github.com/agenthands/owlgraph/internal/translate"
)

// Mode selects an operation.
type Mode string

const (
	ModeNaturalLanguage Mode = "natural-language"
	ModeCypher          Mode = "cypher"
	ModeExport          Mode = "export"
)

var (
	ErrEmptyInput       = errors.New("please enter a query")
	ErrLLMNotConfigured = errors.New("language model is not configured")
	ErrNoSnapshot       = errors.New("no ontology snapshot to export")
	ErrUnknownMode      = errors.New("unknown mode")
)

// ParseMode accepts the canonical names and a few short aliases.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "natural-language", "nl", "ask":
		return ModeNaturalLanguage, nil
	case "cypher", "direct", "":
		return ModeCypher, nil
	case "export":
		return ModeExport, nil
	}
	return "", fmt.Errorf("%w %q", ErrUnknownMode, s)
}

// CheckInput rejects blank input and input that is only a "//" comment.
func CheckInput(input string) (string, error) {
	input = strings.TrimSpace(input)
	if input == "" || strings.HasPrefix(input, "//") {
		return "", ErrEmptyInput
	}
	return input, nil
}

type Request struct {
	Mode     Mode
	Input    string
	Execute  bool
	Snapshot *ontology.Snapshot
}

type Response struct {
	Mode      Mode            `json:"mode"`
	Query     string          `json:"query,omitempty"`
	Executed  bool            `json:"executed"`
	Result    *driver.Result  `json:"result,omitempty"`
	Formatted string          `json:"formatted,omitempty"`
	Summary   *export.Summary `json:"summary,omitempty"`
	Report    string          `json:"report,omitempty"`
}

type Service struct {
	Driver     driver.GraphDriver
	Translator *translate.Translator
	Mapper     *export.Mapper
	Logger     *slog.Logger
	Metrics    *metrics.Metrics
}

// NewService wires the pipelines around one store. A nil translator
// disables natural-language mode.
func NewService(d driver.GraphDriver, tr *translate.Translator, logger *slog.Logger, m *metrics.Metrics) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		Driver:     d,
		Translator: tr,
		Mapper:     export.NewCypherMapper(d, logger, m),
		Logger:     logger,
		Metrics:    m,
	}
}

// Do dispatches req by mode.
func (s *Service) Do(ctx context.Context, req Request) (resp *Response, err error) {
	defer func() { s.Metrics.RecordQuery(string(req.Mode), err) }()

	switch req.Mode {
	case ModeNaturalLanguage:
		return s.Ask(ctx, req.Input, req.Execute)
	case ModeCypher:
		return s.RunCypher(ctx, req.Input)
	case ModeExport:
		if req.Snapshot == nil {
			return nil, ErrNoSnapshot
		}
		sum, err := s.Export(ctx, req.Snapshot)
		return &Response{Mode: ModeExport, Executed: true, Summary: &sum, Report: sum.String()}, err
	}
	return nil, fmt.Errorf("%w %q", ErrUnknownMode, req.Mode)
}

// Schema describes the store vocabulary, or "" when it cannot be read.
func (s *Service) Schema(ctx context.Context) string {
	return schema.Describe(ctx, s.Driver, s.Logger)
}

// Translate grounds question on the live schema and returns validated Cypher.
func (s *Service) Translate(ctx context.Context, question string) (string, error) {
	if s.Translator == nil {
		return "", ErrLLMNotConfigured
	}
	question, err := CheckInput(question)
	if err != nil {
		return "", err
	}
	return s.Translator.Translate(ctx, question, s.Schema(ctx))
}

// Ask translates question and runs the result only when execute is set.
func (s *Service) Ask(ctx context.Context, question string, execute bool) (*Response, error) {
	q, err := s.Translate(ctx, question)
	if err != nil {
		return nil, err
	}

	resp := &Response{Mode: ModeNaturalLanguage, Query: q}
	if !execute {
		return resp, nil
	}
	if err := s.run(ctx, resp); err != nil {
		return resp, err
	}
	return resp, nil
}

// RunCypher executes a statement typed by the user.
func (s *Service) RunCypher(ctx context.Context, stmt string) (*Response, error) {
	stmt, err := CheckInput(stmt)
	if err != nil {
		return nil, err
	}

	resp := &Response{Mode: ModeCypher, Query: stmt}
	if err := s.run(ctx, resp); err != nil {
		return nil, err
	}
	return resp, nil
}

// Export writes snap to the store.
func (s *Service) Export(ctx context.Context, snap *ontology.Snapshot) (export.Summary, error) {
	return s.Mapper.Export(ctx, snap)
}

func (s *Service) run(ctx context.Context, resp *Response) error {
	result, err := s.Driver.Run(ctx, resp.Query, nil)
	if err != nil {
		return fmt.Errorf("query execution failed: %w", err)
	}

	resp.Executed = true
	resp.Result = result
	resp.Formatted = FormatRecords(result.Keys, result.Records)
	s.Logger.Info("query executed", "records", len(result.Records), "nodes_created", result.Counters.NodesCreated)
	return nil
}
