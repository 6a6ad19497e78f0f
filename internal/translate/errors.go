package translate

import (
	"errors"
	"fmt"

	"github.com/agenthands/owlgraph/internal/llm"
)

// Stage names one step of a translation.
type Stage string

const (
	StageComposed  Stage = "composed"
	StageSent      Stage = "sent"
	StageReceived  Stage = "received"
	StageSanitized Stage = "sanitized"
	StageValidated Stage = "validated"
)

// TranslationError reports the stage a translation failed at. StatusCode and
// Body carry the upstream answer when the model endpoint rejected the call.
type TranslationError struct {
	Stage      Stage
	StatusCode int
	Body       string
	Err        error
}

func (e *TranslationError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("translation failed at %s: HTTP %d: %s", e.Stage, e.StatusCode, e.Body)
	}
	return fmt.Sprintf("translation failed at %s: %v", e.Stage, e.Err)
}

func (e *TranslationError) Unwrap() error {
	return e.Err
}

func newTranslationError(stage Stage, err error) *TranslationError {
	te := &TranslationError{Stage: stage, Err: err}
	var apiErr *llm.APIError
	if errors.As(err, &apiErr) {
		te.StatusCode = apiErr.StatusCode
		te.Body = apiErr.Body
	}
	return te
}

// IsTranslationError reports whether err came from a failed translation.
func IsTranslationError(err error) bool {
	var te *TranslationError
	return errors.As(err, &te)
}
