package export

import (
	"github.com/agenthands/owlgraph/internal/ontology"
)

// Stage is one pass of an export. Every mutation of a stage is applied before
// the next stage is planned, because later stages match nodes merged earlier.
type Stage struct {
	Name string
	Plan func(v *view) Batch
}

// Batch is what a stage wants applied and what it counts toward the summary.
type Batch struct {
	Mutations []Mutation
	Counts    Summary
}

// Stage names.
const (
	StageClasses          = "classes"
	StageIndividuals      = "individuals"
	StageObjectProperties = "object_properties"
	StageHierarchy        = "hierarchy"
	StageTypeAssertions   = "type_assertions"
)

// Stages returns the export passes in the order they must run.
func Stages() []Stage {
	return []Stage{
		{Name: StageClasses, Plan: planClasses},
		{Name: StageIndividuals, Plan: planIndividuals},
		{Name: StageObjectProperties, Plan: planObjectProperties},
		{Name: StageHierarchy, Plan: planHierarchy},
		{Name: StageTypeAssertions, Plan: planTypeAssertions},
	}
}

// view indexes a snapshot by subject for the stage planners.
type view struct {
	snap *ontology.Snapshot

	annotations map[ontology.IRI][]ontology.AnnotationAssertion
	dataValues  map[ontology.IRI][]ontology.DataPropertyAssertion
	superOf     map[ontology.IRI][]ontology.ClassExpression
	typesOf     map[ontology.IRI][]ontology.ClassExpression
	objectFacts map[ontology.IRI][]ontology.ObjectPropertyAssertion
}

func newView(snap *ontology.Snapshot) *view {
	v := &view{
		snap:        snap,
		annotations: make(map[ontology.IRI][]ontology.AnnotationAssertion),
		dataValues:  make(map[ontology.IRI][]ontology.DataPropertyAssertion),
		superOf:     make(map[ontology.IRI][]ontology.ClassExpression),
		typesOf:     make(map[ontology.IRI][]ontology.ClassExpression),
		objectFacts: make(map[ontology.IRI][]ontology.ObjectPropertyAssertion),
	}

	for _, ax := range snap.Annotations {
		v.annotations[ax.Subject] = append(v.annotations[ax.Subject], ax)
	}
	for _, ax := range snap.DataPropertyAssertions {
		if ind, ok := named(ax.Subject); ok {
			v.dataValues[ind] = append(v.dataValues[ind], ax)
		}
	}
	for _, ax := range snap.SubClassOf {
		switch sub := ax.Sub.(type) {
		case ontology.NamedClass:
			v.superOf[sub.IRI] = append(v.superOf[sub.IRI], ax.Super)
		case ontology.AnonymousClass:
			// general class axioms have no node to start from
		}
	}
	for _, ax := range snap.ClassAssertions {
		if ind, ok := named(ax.Individual); ok {
			v.typesOf[ind] = append(v.typesOf[ind], ax.Class)
		}
	}
	for _, ax := range snap.ObjectPropertyAssertions {
		v.objectFacts[ax.Property] = append(v.objectFacts[ax.Property], ax)
	}
	return v
}

func named(ind ontology.Individual) (ontology.IRI, bool) {
	switch i := ind.(type) {
	case ontology.NamedIndividual:
		return i.IRI, true
	case ontology.AnonymousIndividual:
		return "", false
	}
	return "", false
}

func namedClass(ce ontology.ClassExpression) (ontology.IRI, bool) {
	switch c := ce.(type) {
	case ontology.NamedClass:
		return c.IRI, true
	case ontology.AnonymousClass:
		return "", false
	}
	return "", false
}

// exported reports whether a class gets a node of its own.
func exported(class ontology.IRI) bool {
	return !class.IsTop() && !class.IsBottom()
}

// baseProperties returns name, type and the literal label and comment of
// subject. Later annotations win; IRI-valued annotations are ignored.
func (v *view) baseProperties(subject ontology.IRI, label Label) map[string]any {
	props := map[string]any{
		KeyName: subject.LocalName(),
		KeyType: string(label),
	}
	for _, ax := range v.annotations[subject] {
		var key string
		switch ax.Property {
		case ontology.RDFSLabel:
			key = "label"
		case ontology.RDFSComment:
			key = "comment"
		default:
			continue
		}
		switch val := ax.Value.(type) {
		case ontology.Literal:
			props[key] = val.Lexical
		case ontology.IRIValue:
		}
	}
	return props
}

func planClasses(v *view) Batch {
	var b Batch
	for _, class := range v.snap.Classes {
		if !exported(class) {
			continue
		}
		b.Mutations = append(b.Mutations, NodeMerge{
			Label:      LabelClass,
			IRI:        class,
			Properties: v.baseProperties(class, LabelClass),
		})
		b.Counts.Classes++
	}
	return b
}

func planIndividuals(v *view) Batch {
	var b Batch
	for _, ind := range v.snap.Individuals {
		props := v.baseProperties(ind, LabelIndividual)

		// Declared data properties in signature order, so a sanitized-name
		// collision resolves the same way on every run.
		for _, dp := range v.snap.DataProperties {
			key := SanitizePropertyName(dp.LocalName())
			if key == KeyIRI || key == KeyName || key == KeyType {
				continue
			}
			for _, ax := range v.dataValues[ind] {
				if ax.Property == dp {
					props[key] = ax.Value.Value()
				}
			}
		}

		b.Mutations = append(b.Mutations, NodeMerge{
			Label:      LabelIndividual,
			IRI:        ind,
			Properties: props,
		})
		b.Counts.Individuals++
	}
	b.Counts.DataProperties = len(v.snap.DataProperties)
	return b
}

func planObjectProperties(v *view) Batch {
	var b Batch
	for _, prop := range v.snap.ObjectProperties {
		local := prop.LocalName()
		relType := SanitizeRelationshipName(local)

		for _, ax := range v.objectFacts[prop] {
			subject, ok := named(ax.Subject)
			if !ok {
				continue
			}
			object, ok := named(ax.Object)
			if !ok {
				continue
			}
			b.Mutations = append(b.Mutations, EdgeMerge{
				Type:       relType,
				From:       NodeRef{Label: LabelIndividual, IRI: subject},
				To:         NodeRef{Label: LabelIndividual, IRI: object},
				Properties: map[string]any{"propertyName": local},
			})
		}
		b.Counts.ObjectProperties++
	}
	return b
}

func planHierarchy(v *view) Batch {
	var b Batch
	for _, class := range v.snap.Classes {
		if !exported(class) {
			continue
		}
		for _, sup := range v.superOf[class] {
			super, ok := namedClass(sup)
			if !ok || !exported(super) {
				continue
			}
			b.Mutations = append(b.Mutations, EdgeMerge{
				Type: RelSubclassOf,
				From: NodeRef{Label: LabelClass, IRI: class},
				To:   NodeRef{Label: LabelClass, IRI: super},
			})
		}
	}
	return b
}

func planTypeAssertions(v *view) Batch {
	var b Batch
	for _, ind := range v.snap.Individuals {
		for _, ce := range v.typesOf[ind] {
			class, ok := namedClass(ce)
			if !ok || !exported(class) {
				continue
			}
			b.Mutations = append(b.Mutations, EdgeMerge{
				Type: RelInstanceOf,
				From: NodeRef{Label: LabelIndividual, IRI: ind},
				To:   NodeRef{Label: LabelClass, IRI: class},
			})
		}
	}
	return b
}
