package export

import (
	"fmt"

	"github.com/agenthands/owlgraph/internal/ontology"
)

// Label is the node label a merge targets.
type Label string

const (
	LabelClass      Label = "OWLClass"
	LabelIndividual Label = "OWLIndividual"
)

// Reserved relationship types. Property names never map onto these.
const (
	RelSubclassOf = "SUBCLASS_OF"
	RelInstanceOf = "INSTANCE_OF"
)

// Node property keys that data properties must not overwrite.
const (
	KeyIRI  = "iri"
	KeyName = "name"
	KeyType = "type"
)

// Mutation is a single idempotent write: a NodeMerge or an EdgeMerge.
type Mutation interface {
	// Cypher renders the statement and its parameters. Values are always
	// passed as parameters; only labels and relationship types are inlined.
	Cypher() (string, map[string]any)
	// Subject is the IRI reported when the mutation is rejected.
	Subject() ontology.IRI
	isMutation()
}

// NodeRef addresses a node by label and IRI.
type NodeRef struct {
	Label Label
	IRI   ontology.IRI
}

// NodeMerge creates the node keyed by IRI if absent and sets Properties on it.
type NodeMerge struct {
	Label      Label
	IRI        ontology.IRI
	Properties map[string]any
}

// EdgeMerge creates a relationship of Type between two existing nodes if it
// is absent. The natural key is (From, Type, To).
type EdgeMerge struct {
	Type       string
	From       NodeRef
	To         NodeRef
	Properties map[string]any
}

func (NodeMerge) isMutation() {}
func (EdgeMerge) isMutation() {}

func (m NodeMerge) Subject() ontology.IRI { return m.IRI }
func (m EdgeMerge) Subject() ontology.IRI { return m.From.IRI }

func (m NodeMerge) Ref() NodeRef {
	return NodeRef{Label: m.Label, IRI: m.IRI}
}

func (m NodeMerge) Cypher() (string, map[string]any) {
	props := make(map[string]any, len(m.Properties)+1)
	for k, v := range m.Properties {
		props[k] = v
	}
	props[KeyIRI] = string(m.IRI)

	query := fmt.Sprintf("MERGE (n:%s {iri: $iri}) SET n += $props", m.Label)
	return query, map[string]any{
		"iri":   string(m.IRI),
		"props": props,
	}
}

func (m EdgeMerge) Cypher() (string, map[string]any) {
	query := fmt.Sprintf(
		"MATCH (a:%s {iri: $from}), (b:%s {iri: $to}) MERGE (a)-[r:%s]->(b)",
		m.From.Label, m.To.Label, quoteIdent(m.Type),
	)
	params := map[string]any{
		"from": string(m.From.IRI),
		"to":   string(m.To.IRI),
	}
	if len(m.Properties) > 0 {
		query += " SET r += $props"
		params["props"] = m.Properties
	}
	return query, params
}
