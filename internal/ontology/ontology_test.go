package ontology

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalName(t *testing.T) {
	tests := []struct {
		name string
		iri  string
		want string
	}{
		{name: "hash separator", iri: "http://example.org/med#Disease", want: "Disease"},
		{name: "slash separator", iri: "http://example.org/med/Disease", want: "Disease"},
		{name: "last separator wins", iri: "http://example.org/a#b/c", want: "c"},
		{name: "hash after slash", iri: "http://example.org/a/b#c", want: "c"},
		{name: "no separator", iri: "urn:isbn:0451450523", want: "urn:isbn:0451450523"},
		{name: "trailing separator keeps full iri", iri: "http://example.org/med#", want: "http://example.org/med#"},
		{name: "empty", iri: "", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, LocalName(tt.iri))
			assert.Equal(t, tt.want, IRI(tt.iri).LocalName())
		})
	}
}

func TestLiteralValue(t *testing.T) {
	xsd := func(s string) IRI { return IRI(XSDNamespace + s) }

	assert.Equal(t, int64(3), Literal{Lexical: "3", Datatype: xsd("integer")}.Value())
	assert.Equal(t, 2.5, Literal{Lexical: "2.5", Datatype: xsd("decimal")}.Value())
	assert.Equal(t, true, Literal{Lexical: "true", Datatype: xsd("boolean")}.Value())
	assert.Equal(t, "abc", Literal{Lexical: "abc", Datatype: xsd("integer")}.Value())
	assert.Equal(t, "2024-01-01", Literal{Lexical: "2024-01-01", Datatype: xsd("date")}.Value())
	assert.Equal(t, "plain", Literal{Lexical: "plain"}.Value())
}

const medYAML = `
ontology: http://example.org/med
prefixes:
  ex: "http://example.org/med#"
classes: [ex:Disease, ex:Flu]
dataProperties: [ex:severity]
subClassOf:
  - {sub: ex:Flu, super: ex:Disease}
  - {sub: ex:Flu, super: {expression: "ex:hasSymptom some ex:Fever"}}
classAssertions:
  - {individual: ex:flu, class: ex:Flu}
  - {individual: "_:b0", class: ex:Disease}
objectPropertyAssertions:
  - {subject: ex:flu, property: ex:hasSymptom, object: ex:fever}
dataPropertyAssertions:
  - {subject: ex:flu, property: ex:severity, value: 3}
  - {subject: ex:flu, property: ex:code, value: "J11", datatype: xsd:string}
annotations:
  - {subject: ex:Disease, property: rdfs:label, value: Disease}
  - {subject: ex:Disease, property: rdfs:seeAlso, value: {iri: ex:Illness}}
`

func TestParse(t *testing.T) {
	snap, err := Parse([]byte(medYAML))
	require.NoError(t, err)

	ex := func(s string) IRI { return IRI("http://example.org/med#" + s) }

	assert.Equal(t, IRI("http://example.org/med"), snap.IRI)
	assert.Equal(t, []IRI{ex("Disease"), ex("Flu")}, snap.Classes)
	assert.Equal(t, []IRI{ex("flu"), ex("fever")}, snap.Individuals, "referenced individuals are declared, blank nodes are not")
	assert.Equal(t, []IRI{ex("hasSymptom")}, snap.ObjectProperties)
	assert.Equal(t, []IRI{ex("severity"), ex("code")}, snap.DataProperties)

	require.Len(t, snap.SubClassOf, 2)
	assert.Equal(t, NamedClass{IRI: ex("Disease")}, snap.SubClassOf[0].Super)
	assert.Equal(t, AnonymousClass{Expression: "ex:hasSymptom some ex:Fever"}, snap.SubClassOf[1].Super)

	require.Len(t, snap.ClassAssertions, 2)
	assert.Equal(t, AnonymousIndividual{NodeID: "b0"}, snap.ClassAssertions[1].Individual)

	require.Len(t, snap.DataPropertyAssertions, 2)
	assert.Equal(t, int64(3), snap.DataPropertyAssertions[0].Value.Value())
	assert.Equal(t, IRI(XSDNamespace+"string"), snap.DataPropertyAssertions[1].Value.Datatype)

	require.Len(t, snap.Annotations, 2)
	assert.Equal(t, RDFSLabel, snap.Annotations[0].Property)
	assert.Equal(t, Literal{Lexical: "Disease"}, snap.Annotations[0].Value)
	assert.Equal(t, IRIValue{IRI: ex("Illness")}, snap.Annotations[1].Value)
}

func TestParse_JSON(t *testing.T) {
	data := `{"classes": ["http://example.org/med#Disease"], "classAssertions": [{"individual": "http://example.org/med#flu", "class": "http://example.org/med#Disease"}]}`

	snap, err := Parse([]byte(data))
	require.NoError(t, err)
	assert.Equal(t, []IRI{"http://example.org/med#Disease"}, snap.Classes)
	assert.Equal(t, []IRI{"http://example.org/med#flu"}, snap.Individuals)
}

func TestParse_Invalid(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{name: "malformed yaml", doc: "classes: [unterminated"},
		{name: "missing super", doc: "subClassOf:\n  - {sub: ex:A}"},
		{name: "empty anonymous expression", doc: "subClassOf:\n  - {sub: ex:A, super: {expression: ''}}"},
		{name: "missing property", doc: "objectPropertyAssertions:\n  - {subject: ex:a, object: ex:b}"},
		{name: "blank class iri", doc: "classes: ['']"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.doc))
			assert.ErrorIs(t, err, ErrInvalidSnapshot)
		})
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "med.yaml")
	require.NoError(t, os.WriteFile(path, []byte(medYAML), 0o600))

	snap, err := Load(path)
	require.NoError(t, err)
	assert.Len(t, snap.Classes, 2)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestExpand(t *testing.T) {
	prefixes := map[string]string{"ex": "http://example.org/med#"}

	assert.Equal(t, IRI("http://example.org/med#Disease"), expand("ex:Disease", prefixes))
	assert.Equal(t, OWLThing, expand("owl:Thing", prefixes))
	assert.Equal(t, IRI("http://example.org/x"), expand("http://example.org/x", prefixes))
	assert.Equal(t, IRI("urn:isbn:1"), expand("urn:isbn:1", prefixes))
}
