package export

import (
	"fmt"

	"github.com/agenthands/owlgraph/internal/driver"
)

// Summary counts what one export run processed. Counters only grow.
type Summary struct {
	Classes          int `json:"classes"`
	Individuals      int `json:"individuals"`
	ObjectProperties int `json:"object_properties"`
	DataProperties   int `json:"data_properties"`

	// Writes is what the store reported for the applied statements.
	Writes driver.Counters `json:"writes"`
}

func (s Summary) add(o Summary) Summary {
	return Summary{
		Classes:          s.Classes + o.Classes,
		Individuals:      s.Individuals + o.Individuals,
		ObjectProperties: s.ObjectProperties + o.ObjectProperties,
		DataProperties:   s.DataProperties + o.DataProperties,
		Writes:           s.Writes.Add(o.Writes),
	}
}

func (s Summary) String() string {
	return fmt.Sprintf(
		"Export Summary:\n"+
			"  Classes exported: %d\n"+
			"  Individuals exported: %d\n"+
			"  Object properties exported: %d\n"+
			"  Data properties exported: %d",
		s.Classes, s.Individuals, s.ObjectProperties, s.DataProperties,
	)
}
