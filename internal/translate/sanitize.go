package translate

import (
	"errors"
	"strings"
)

const fence = "```"

var (
	ErrEmptyResponse = errors.New("empty response")
	ErrNotAQuery     = errors.New("not a valid query")
)

// Keywords is the set a sanitized response must contain at least one of.
var Keywords = []string{"MATCH", "CREATE", "MERGE", "RETURN", "DELETE"}

// StripFences removes markdown code fences around a model response. A leading
// fence, with or without a language tag, keeps only the text between the first
// newline and the last fence; without a closing fence everything after the
// first newline is kept. Stray fences elsewhere are dropped.
func StripFences(text string) string {
	query := strings.TrimSpace(text)

	if strings.HasPrefix(query, fence) {
		start := strings.Index(query, "\n")
		end := strings.LastIndex(query, fence)
		switch {
		case start > 0 && end > start:
			query = query[start+1 : end]
		case start > 0:
			query = query[start+1:]
		}
	}

	return strings.TrimSpace(strings.ReplaceAll(query, fence, ""))
}

// Validate checks that a sanitized response looks like a Cypher statement.
func Validate(query string) error {
	if query == "" {
		return ErrEmptyResponse
	}
	upper := strings.ToUpper(query)
	for _, kw := range Keywords {
		if strings.Contains(upper, kw) {
			return nil
		}
	}
	return ErrNotAQuery
}
