package ontology

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// ErrInvalidSnapshot is returned for documents that cannot be turned into a Snapshot.
var ErrInvalidSnapshot = errors.New("invalid ontology snapshot")

// document is the YAML (or JSON) layout of a snapshot file.
//
//	ontology: http://example.org/med
//	prefixes: {ex: "http://example.org/med#"}
//	classes: [ex:Disease]
//	individuals: [ex:flu]
//	subClassOf:
//	  - {sub: ex:Flu, super: ex:Disease}
//	  - {sub: ex:Flu, super: {expression: "ex:hasSymptom some ex:Fever"}}
//	classAssertions:
//	  - {individual: ex:flu, class: ex:Disease}
//	annotations:
//	  - {subject: ex:Disease, property: rdfs:label, value: Disease}
type document struct {
	Ontology         string            `yaml:"ontology"`
	Prefixes         map[string]string `yaml:"prefixes"`
	Classes          []string          `yaml:"classes"`
	Individuals      []string          `yaml:"individuals"`
	ObjectProperties []string          `yaml:"objectProperties"`
	DataProperties   []string          `yaml:"dataProperties"`

	SubClassOf []struct {
		Sub   yaml.Node `yaml:"sub"`
		Super yaml.Node `yaml:"super"`
	} `yaml:"subClassOf"`

	ClassAssertions []struct {
		Individual string    `yaml:"individual"`
		Class      yaml.Node `yaml:"class"`
	} `yaml:"classAssertions"`

	ObjectPropertyAssertions []struct {
		Subject  string `yaml:"subject"`
		Property string `yaml:"property"`
		Object   string `yaml:"object"`
	} `yaml:"objectPropertyAssertions"`

	DataPropertyAssertions []struct {
		Subject  string    `yaml:"subject"`
		Property string    `yaml:"property"`
		Value    yaml.Node `yaml:"value"`
		Datatype string    `yaml:"datatype"`
		Lang     string    `yaml:"lang"`
	} `yaml:"dataPropertyAssertions"`

	Annotations []struct {
		Subject  string    `yaml:"subject"`
		Property string    `yaml:"property"`
		Value    yaml.Node `yaml:"value"`
		Datatype string    `yaml:"datatype"`
		Lang     string    `yaml:"lang"`
	} `yaml:"annotations"`
}

// Load reads a snapshot document from path.
func Load(path string) (*Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read snapshot file '%s': %w", path, err)
	}
	return Parse(data)
}

// Parse decodes a snapshot document. Entities referenced only from axioms are
// added to the signature.
func Parse(data []byte) (*Snapshot, error) {
	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSnapshot, err)
	}

	r := resolver{prefixes: doc.Prefixes}
	snap := &Snapshot{IRI: r.iri(doc.Ontology)}

	var err error
	if snap.Classes, err = r.iris("classes", doc.Classes); err != nil {
		return nil, err
	}
	if snap.Individuals, err = r.iris("individuals", doc.Individuals); err != nil {
		return nil, err
	}
	if snap.ObjectProperties, err = r.iris("objectProperties", doc.ObjectProperties); err != nil {
		return nil, err
	}
	if snap.DataProperties, err = r.iris("dataProperties", doc.DataProperties); err != nil {
		return nil, err
	}

	for i, ax := range doc.SubClassOf {
		sub, err := r.classExpression(&ax.Sub)
		if err != nil {
			return nil, invalid("subClassOf", i, "sub", err)
		}
		super, err := r.classExpression(&ax.Super)
		if err != nil {
			return nil, invalid("subClassOf", i, "super", err)
		}
		snap.SubClassOf = append(snap.SubClassOf, SubClassOf{Sub: sub, Super: super})
	}

	for i, ax := range doc.ClassAssertions {
		ind, err := r.individual(ax.Individual)
		if err != nil {
			return nil, invalid("classAssertions", i, "individual", err)
		}
		cls, err := r.classExpression(&ax.Class)
		if err != nil {
			return nil, invalid("classAssertions", i, "class", err)
		}
		snap.ClassAssertions = append(snap.ClassAssertions, ClassAssertion{Individual: ind, Class: cls})
	}

	for i, ax := range doc.ObjectPropertyAssertions {
		subj, err := r.individual(ax.Subject)
		if err != nil {
			return nil, invalid("objectPropertyAssertions", i, "subject", err)
		}
		obj, err := r.individual(ax.Object)
		if err != nil {
			return nil, invalid("objectPropertyAssertions", i, "object", err)
		}
		if strings.TrimSpace(ax.Property) == "" {
			return nil, invalid("objectPropertyAssertions", i, "property", errMissing)
		}
		snap.ObjectPropertyAssertions = append(snap.ObjectPropertyAssertions, ObjectPropertyAssertion{
			Subject:  subj,
			Property: r.iri(ax.Property),
			Object:   obj,
		})
	}

	for i, ax := range doc.DataPropertyAssertions {
		subj, err := r.individual(ax.Subject)
		if err != nil {
			return nil, invalid("dataPropertyAssertions", i, "subject", err)
		}
		if strings.TrimSpace(ax.Property) == "" {
			return nil, invalid("dataPropertyAssertions", i, "property", errMissing)
		}
		lit, err := r.literal(&ax.Value, ax.Datatype, ax.Lang)
		if err != nil {
			return nil, invalid("dataPropertyAssertions", i, "value", err)
		}
		snap.DataPropertyAssertions = append(snap.DataPropertyAssertions, DataPropertyAssertion{
			Subject:  subj,
			Property: r.iri(ax.Property),
			Value:    lit,
		})
	}

	for i, ax := range doc.Annotations {
		if strings.TrimSpace(ax.Subject) == "" {
			return nil, invalid("annotations", i, "subject", errMissing)
		}
		if strings.TrimSpace(ax.Property) == "" {
			return nil, invalid("annotations", i, "property", errMissing)
		}
		val, err := r.annotationValue(&ax.Value, ax.Datatype, ax.Lang)
		if err != nil {
			return nil, invalid("annotations", i, "value", err)
		}
		snap.Annotations = append(snap.Annotations, AnnotationAssertion{
			Subject:  r.iri(ax.Subject),
			Property: r.iri(ax.Property),
			Value:    val,
		})
	}

	snap.DeclareReferenced()
	return snap, nil
}

var errMissing = errors.New("missing value")

func invalid(section string, index int, field string, err error) error {
	return fmt.Errorf("%w: %s[%d].%s: %v", ErrInvalidSnapshot, section, index, field, err)
}

type resolver struct {
	prefixes map[string]string
}

func (r resolver) iri(name string) IRI {
	return expand(name, r.prefixes)
}

func (r resolver) iris(section string, names []string) ([]IRI, error) {
	out := make([]IRI, 0, len(names))
	for i, name := range names {
		if strings.TrimSpace(name) == "" {
			return nil, invalid(section, i, "iri", errMissing)
		}
		out = append(out, r.iri(name))
	}
	return out, nil
}

// classExpression accepts a scalar (named class) or a mapping with an
// "expression" key (anonymous class).
func (r resolver) classExpression(n *yaml.Node) (ClassExpression, error) {
	switch n.Kind {
	case yaml.ScalarNode:
		if strings.TrimSpace(n.Value) == "" {
			return nil, errMissing
		}
		return NamedClass{IRI: r.iri(n.Value)}, nil
	case yaml.MappingNode:
		var v struct {
			Expression string `yaml:"expression"`
		}
		if err := n.Decode(&v); err != nil {
			return nil, err
		}
		if strings.TrimSpace(v.Expression) == "" {
			return nil, errMissing
		}
		return AnonymousClass{Expression: v.Expression}, nil
	case 0:
		return nil, errMissing
	default:
		return nil, fmt.Errorf("unsupported class expression at line %d", n.Line)
	}
}

// individual treats "_:" prefixed names as blank nodes.
func (r resolver) individual(name string) (Individual, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, errMissing
	}
	if id, ok := strings.CutPrefix(name, "_:"); ok {
		return AnonymousIndividual{NodeID: id}, nil
	}
	return NamedIndividual{IRI: r.iri(name)}, nil
}

func (r resolver) literal(n *yaml.Node, datatype, lang string) (Literal, error) {
	switch n.Kind {
	case yaml.ScalarNode:
		lit := Literal{Lexical: n.Value, Lang: lang}
		if datatype != "" {
			lit.Datatype = r.iri(datatype)
		} else {
			lit.Datatype = inferDatatype(n)
		}
		return lit, nil
	case yaml.MappingNode:
		var v struct {
			Literal  string `yaml:"literal"`
			Datatype string `yaml:"datatype"`
			Lang     string `yaml:"lang"`
		}
		if err := n.Decode(&v); err != nil {
			return Literal{}, err
		}
		lit := Literal{Lexical: v.Literal, Lang: v.Lang}
		if v.Datatype != "" {
			lit.Datatype = r.iri(v.Datatype)
		}
		return lit, nil
	case 0:
		return Literal{}, errMissing
	default:
		return Literal{}, fmt.Errorf("unsupported literal at line %d", n.Line)
	}
}

// annotationValue accepts a literal or a mapping with an "iri" key.
func (r resolver) annotationValue(n *yaml.Node, datatype, lang string) (AnnotationValue, error) {
	if n.Kind == yaml.MappingNode {
		var v struct {
			IRI string `yaml:"iri"`
		}
		if err := n.Decode(&v); err != nil {
			return nil, err
		}
		if v.IRI != "" {
			return IRIValue{IRI: r.iri(v.IRI)}, nil
		}
	}
	return r.literal(n, datatype, lang)
}

func inferDatatype(n *yaml.Node) IRI {
	switch n.ShortTag() {
	case "!!int":
		return IRI(XSDNamespace + "integer")
	case "!!float":
		return IRI(XSDNamespace + "double")
	case "!!bool":
		return IRI(XSDNamespace + "boolean")
	}
	return ""
}
