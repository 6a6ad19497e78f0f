// Package translate turns natural-language questions into validated Cypher
// using a chat model grounded on the current graph schema.
package translate

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/agenthands/owlgraph/internal/llm"
	"github.com/agenthands/owlgraph/internal/metrics"
	"github.com/google/uuid"
)

var ErrEmptyQuestion = errors.New("empty question")

type Translator struct {
	LLM     llm.LLMClient
	Logger  *slog.Logger
	Metrics *metrics.Metrics
}

func NewTranslator(client llm.LLMClient, logger *slog.Logger, m *metrics.Metrics) *Translator {
	if logger == nil {
		logger = slog.Default()
	}
	return &Translator{
		LLM:     client,
		Logger:  logger,
		Metrics: m,
	}
}

// Translate runs one question through compose, send, receive, sanitize and
// validate. It makes exactly one model call and never retries.
func (t *Translator) Translate(ctx context.Context, question, schema string) (query string, err error) {
	started := time.Now()
	stage := StageComposed
	log := t.Logger.With("translation_id", uuid.NewString())
	defer func() {
		t.Metrics.RecordTranslation(string(stage), err, time.Since(started))
	}()

	if strings.TrimSpace(question) == "" {
		return "", newTranslationError(stage, ErrEmptyQuestion)
	}
	prompt := BuildPrompt(question, schema)
	log.Debug("prompt composed", "question", question, "schema_chars", len(schema))

	stage = StageSent
	raw, err := t.LLM.Generate(ctx, prompt.System, prompt.User)
	if err != nil {
		var apiErr *llm.APIError
		if errors.As(err, &apiErr) || errors.Is(err, llm.ErrNoChoices) {
			stage = StageReceived
		}
		log.Error("model call failed", "stage", stage, "error", err)
		return "", newTranslationError(stage, err)
	}

	stage = StageReceived
	log.Debug("model answered", "response", raw)

	stage = StageSanitized
	query = StripFences(raw)

	stage = StageValidated
	if err := Validate(query); err != nil {
		log.Warn("model response rejected", "error", err, "response", raw)
		return "", newTranslationError(stage, err)
	}

	log.Info("question translated", "query", query, "elapsed", time.Since(started))
	return query, nil
}
