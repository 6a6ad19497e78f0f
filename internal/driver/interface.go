package driver

import (
	"context"
	"fmt"
	"strings"
)

// Record is one result row keyed by column name.
type Record map[string]any

// Counters reports what a write statement changed in the store.
type Counters struct {
	NodesCreated         int `json:"nodes_created"`
	NodesDeleted         int `json:"nodes_deleted"`
	RelationshipsCreated int `json:"relationships_created"`
	RelationshipsDeleted int `json:"relationships_deleted"`
	PropertiesSet        int `json:"properties_set"`
	LabelsAdded          int `json:"labels_added"`
}

// Add returns the field-wise sum of c and o.
func (c Counters) Add(o Counters) Counters {
	return Counters{
		NodesCreated:         c.NodesCreated + o.NodesCreated,
		NodesDeleted:         c.NodesDeleted + o.NodesDeleted,
		RelationshipsCreated: c.RelationshipsCreated + o.RelationshipsCreated,
		RelationshipsDeleted: c.RelationshipsDeleted + o.RelationshipsDeleted,
		PropertiesSet:        c.PropertiesSet + o.PropertiesSet,
		LabelsAdded:          c.LabelsAdded + o.LabelsAdded,
	}
}

func (c Counters) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Nodes created: %d\n", c.NodesCreated)
	fmt.Fprintf(&sb, "Nodes deleted: %d\n", c.NodesDeleted)
	fmt.Fprintf(&sb, "Relationships created: %d\n", c.RelationshipsCreated)
	fmt.Fprintf(&sb, "Relationships deleted: %d\n", c.RelationshipsDeleted)
	fmt.Fprintf(&sb, "Properties set: %d\n", c.PropertiesSet)
	return sb.String()
}

// Result is the full outcome of an arbitrary statement.
type Result struct {
	Keys     []string `json:"keys"`
	Records  []Record `json:"records"`
	Counters Counters `json:"counters"`
}

// Reader runs read-only statements.
type Reader interface {
	ExecuteRead(ctx context.Context, query string, params map[string]any) ([]Record, error)
}

// Writer runs mutating statements.
type Writer interface {
	ExecuteWrite(ctx context.Context, query string, params map[string]any) (Counters, error)
}

// GraphDriver is the full store surface used by the services.
type GraphDriver interface {
	Reader
	Writer
	Run(ctx context.Context, query string, params map[string]any) (*Result, error)
	Ping(ctx context.Context) error
	Close(ctx context.Context) error
}
