// Package schema renders the graph store's vocabulary as prompt context.
package schema

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/agenthands/owlgraph/internal/driver"
)

type section struct {
	title  string
	query  string
	column string
}

// sections are rendered in this order.
var sections = []section{
	{title: "Node Labels", query: driver.LabelsQuery, column: "label"},
	{title: "Relationship Types", query: driver.RelationshipTypesQuery, column: "relationshipType"},
	{title: "Property Keys", query: driver.PropertyKeysQuery, column: "propertyKey"},
}

// Describe lists labels, relationship types and property keys in store order.
// It is best effort: any failure is logged and yields "".
func Describe(ctx context.Context, store driver.Reader, logger *slog.Logger) string {
	if logger == nil {
		logger = slog.Default()
	}

	var sb strings.Builder
	for i, s := range sections {
		rows, err := store.ExecuteRead(ctx, s.query, nil)
		if err != nil {
			logger.Warn("Failed to retrieve graph schema", "section", s.title, "error", err)
			return ""
		}

		if i > 0 {
			sb.WriteString("\n")
		}
		sb.WriteString(s.title)
		sb.WriteString(":\n")
		for _, row := range rows {
			fmt.Fprintf(&sb, "  - %v\n", row[s.column])
		}
	}

	return sb.String()
}
