// Package ontology holds the read-only ontology snapshot consumed by the graph
// exporter, and a loader for snapshot documents.
package ontology

import (
	"strconv"
	"strings"
)

// ClassExpression is either a NamedClass or an AnonymousClass.
type ClassExpression interface {
	isClassExpression()
}

// NamedClass is a class referenced by IRI.
type NamedClass struct {
	IRI IRI
}

// AnonymousClass is a complex class expression (restriction, union, ...).
// Only its textual form is retained.
type AnonymousClass struct {
	Expression string
}

func (NamedClass) isClassExpression()     {}
func (AnonymousClass) isClassExpression() {}

// Individual is either a NamedIndividual or an AnonymousIndividual.
type Individual interface {
	isIndividual()
}

// NamedIndividual is an individual referenced by IRI.
type NamedIndividual struct {
	IRI IRI
}

// AnonymousIndividual is a blank node individual.
type AnonymousIndividual struct {
	NodeID string
}

func (NamedIndividual) isIndividual()     {}
func (AnonymousIndividual) isIndividual() {}

// AnnotationValue is either a Literal or an IRIValue.
type AnnotationValue interface {
	isAnnotationValue()
}

// Literal is a lexical value with an optional datatype and language tag.
type Literal struct {
	Lexical  string
	Datatype IRI
	Lang     string
}

// IRIValue is an annotation whose value points at another resource.
type IRIValue struct {
	IRI IRI
}

func (Literal) isAnnotationValue()  {}
func (IRIValue) isAnnotationValue() {}

// Value converts the literal to a Go scalar according to its XSD datatype.
// Untyped literals, unknown datatypes and unparsable lexical forms stay strings.
func (l Literal) Value() any {
	dt, ok := strings.CutPrefix(string(l.Datatype), XSDNamespace)
	if !ok {
		return l.Lexical
	}
	switch dt {
	case "integer", "int", "long", "short", "byte",
		"nonNegativeInteger", "positiveInteger", "negativeInteger", "nonPositiveInteger":
		if v, err := strconv.ParseInt(l.Lexical, 10, 64); err == nil {
			return v
		}
	case "decimal", "double", "float":
		if v, err := strconv.ParseFloat(l.Lexical, 64); err == nil {
			return v
		}
	case "boolean":
		if v, err := strconv.ParseBool(l.Lexical); err == nil {
			return v
		}
	}
	return l.Lexical
}

// SubClassOf states that Sub is a subclass of Super.
type SubClassOf struct {
	Sub   ClassExpression
	Super ClassExpression
}

// ClassAssertion states that Individual is an instance of Class.
type ClassAssertion struct {
	Individual Individual
	Class      ClassExpression
}

// ObjectPropertyAssertion links two individuals through Property.
type ObjectPropertyAssertion struct {
	Subject  Individual
	Property IRI
	Object   Individual
}

// DataPropertyAssertion attaches a literal to an individual through Property.
type DataPropertyAssertion struct {
	Subject  Individual
	Property IRI
	Value    Literal
}

// AnnotationAssertion annotates the resource Subject.
type AnnotationAssertion struct {
	Subject  IRI
	Property IRI
	Value    AnnotationValue
}

// Snapshot is an immutable view of an ontology. Entity slices are kept in
// signature order; the exporter relies on that order being stable.
type Snapshot struct {
	IRI IRI

	Classes          []IRI
	Individuals      []IRI
	ObjectProperties []IRI
	DataProperties   []IRI

	SubClassOf               []SubClassOf
	ClassAssertions          []ClassAssertion
	ObjectPropertyAssertions []ObjectPropertyAssertion
	DataPropertyAssertions   []DataPropertyAssertion
	Annotations              []AnnotationAssertion
}

// DeclareReferenced adds every named entity used by an axiom to the matching
// signature slice, after the explicitly declared ones.
func (s *Snapshot) DeclareReferenced() {
	classes := newSignature(s.Classes)
	individuals := newSignature(s.Individuals)
	objectProps := newSignature(s.ObjectProperties)
	dataProps := newSignature(s.DataProperties)

	addClass := func(ce ClassExpression) {
		if nc, ok := ce.(NamedClass); ok {
			classes.add(nc.IRI)
		}
	}
	addIndividual := func(ind Individual) {
		if ni, ok := ind.(NamedIndividual); ok {
			individuals.add(ni.IRI)
		}
	}

	for _, ax := range s.SubClassOf {
		addClass(ax.Sub)
		addClass(ax.Super)
	}
	for _, ax := range s.ClassAssertions {
		addIndividual(ax.Individual)
		addClass(ax.Class)
	}
	for _, ax := range s.ObjectPropertyAssertions {
		addIndividual(ax.Subject)
		objectProps.add(ax.Property)
		addIndividual(ax.Object)
	}
	for _, ax := range s.DataPropertyAssertions {
		addIndividual(ax.Subject)
		dataProps.add(ax.Property)
	}

	s.Classes = classes.iris
	s.Individuals = individuals.iris
	s.ObjectProperties = objectProps.iris
	s.DataProperties = dataProps.iris
}

type signature struct {
	iris []IRI
	seen map[IRI]struct{}
}

func newSignature(declared []IRI) *signature {
	sig := &signature{seen: make(map[IRI]struct{}, len(declared))}
	for _, iri := range declared {
		sig.add(iri)
	}
	return sig
}

func (s *signature) add(iri IRI) {
	if iri == "" {
		return
	}
	if _, ok := s.seen[iri]; ok {
		return
	}
	s.seen[iri] = struct{}{}
	s.iris = append(s.iris, iri)
}
