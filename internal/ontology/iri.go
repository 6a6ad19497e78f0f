package ontology

import "strings"

// IRI identifies an ontology entity.
type IRI string

// Well-known vocabulary IRIs.
const (
	OWLThing    IRI = "http://www.w3.org/2002/07/owl#Thing"
	OWLNothing  IRI = "http://www.w3.org/2002/07/owl#Nothing"
	RDFSLabel   IRI = "http://www.w3.org/2000/01/rdf-schema#label"
	RDFSComment IRI = "http://www.w3.org/2000/01/rdf-schema#comment"

	XSDNamespace = "http://www.w3.org/2001/XMLSchema#"
)

// builtinPrefixes are always available to the snapshot loader.
var builtinPrefixes = map[string]string{
	"owl":  "http://www.w3.org/2002/07/owl#",
	"rdf":  "http://www.w3.org/1999/02/22-rdf-syntax-ns#",
	"rdfs": "http://www.w3.org/2000/01/rdf-schema#",
	"xsd":  XSDNamespace,
}

func (i IRI) String() string {
	return string(i)
}

// LocalName returns the part of the IRI after the last '#' or '/'.
func (i IRI) LocalName() string {
	return LocalName(string(i))
}

// IsTop reports whether the IRI is owl:Thing.
func (i IRI) IsTop() bool {
	return i == OWLThing
}

// IsBottom reports whether the IRI is owl:Nothing.
func (i IRI) IsBottom() bool {
	return i == OWLNothing
}

// LocalName extracts the substring after the last '#' or '/' of iri. When iri
// has no separator, or ends with one, the whole iri is returned so the result
// is never empty for a non-empty input.
func LocalName(iri string) string {
	idx := strings.LastIndexAny(iri, "#/")
	if idx >= 0 && idx < len(iri)-1 {
		return iri[idx+1:]
	}
	return iri
}

// expand resolves a prefixed name such as "ex:Disease" against prefixes.
// Absolute IRIs and unknown prefixes are returned unchanged.
func expand(name string, prefixes map[string]string) IRI {
	name = strings.TrimSpace(name)
	prefix, local, ok := strings.Cut(name, ":")
	if !ok || strings.HasPrefix(local, "//") {
		return IRI(name)
	}
	if ns, found := prefixes[prefix]; found {
		return IRI(ns + local)
	}
	if ns, found := builtinPrefixes[prefix]; found {
		return IRI(ns + local)
	}
	return IRI(name)
}
