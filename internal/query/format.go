package query

import (
	"fmt"
	"sort"
	"strings"

	"github.com/agenthands/owlgraph/internal/driver"
	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
)

// NoResults is printed for an empty result set.
const NoResults = "No results."

// FormatRecords renders rows as numbered key/value blocks. Columns follow
// keys when given, otherwise each record's keys sorted.
func FormatRecords(keys []string, records []driver.Record) string {
	if len(records) == 0 {
		return NoResults + "\n"
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Total Records: %d\n", len(records))
	sb.WriteString(strings.Repeat("=", 80) + "\n\n")

	for i, rec := range records {
		fmt.Fprintf(&sb, "Record %d:\n", i+1)
		sb.WriteString(strings.Repeat("-", 40) + "\n")

		cols := keys
		if len(cols) == 0 {
			cols = sortedKeys(rec)
		}
		for _, k := range cols {
			fmt.Fprintf(&sb, "  %-20s : %s\n", k, FormatValue(rec[k]))
		}
		sb.WriteString("\n")
	}
	return sb.String()
}

// FormatValue renders a single result value on one line.
func FormatValue(v any) string {
	switch val := v.(type) {
	case nil:
		return "null"
	case string:
		return val
	case neo4j.Node:
		return fmt.Sprintf("(%s %s)", labelList(val.Labels), formatMap(val.Props))
	case neo4j.Relationship:
		return fmt.Sprintf("[:%s %s]", val.Type, formatMap(val.Props))
	case neo4j.Path:
		parts := make([]string, 0, len(val.Nodes)+len(val.Relationships))
		for i, n := range val.Nodes {
			parts = append(parts, FormatValue(n))
			if i < len(val.Relationships) {
				parts = append(parts, FormatValue(val.Relationships[i]))
			}
		}
		return strings.Join(parts, "-")
	case map[string]any:
		return formatMap(val)
	case []any:
		items := make([]string, len(val))
		for i, item := range val {
			items[i] = FormatValue(item)
		}
		return "[" + strings.Join(items, ", ") + "]"
	default:
		return fmt.Sprint(val)
	}
}

func labelList(labels []string) string {
	if len(labels) == 0 {
		return ""
	}
	return ":" + strings.Join(labels, ":")
}

func formatMap(m map[string]any) string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = k + ": " + FormatValue(m[k])
	}
	return "{" + strings.Join(parts, ", ") + "}"
}

func sortedKeys(rec driver.Record) []string {
	keys := make([]string, 0, len(rec))
	for k := range rec {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
