package export

import (
	"errors"
	"fmt"

	"github.com/agenthands/owlgraph/internal/ontology"
)

// MappingError is a single mutation the store rejected. The export carries on
// with the remaining mutations.
type MappingError struct {
	Stage string
	IRI   ontology.IRI
	Err   error
}

func (e *MappingError) Error() string {
	return fmt.Sprintf("export %s: %s: %v", e.Stage, e.IRI, e.Err)
}

func (e *MappingError) Unwrap() error {
	return e.Err
}

// MappingErrors extracts every MappingError joined into err.
func MappingErrors(err error) []*MappingError {
	if err == nil {
		return nil
	}
	var out []*MappingError
	if joined, ok := err.(interface{ Unwrap() []error }); ok {
		for _, e := range joined.Unwrap() {
			out = append(out, MappingErrors(e)...)
		}
		return out
	}
	var me *MappingError
	if errors.As(err, &me) {
		out = append(out, me)
	}
	return out
}
