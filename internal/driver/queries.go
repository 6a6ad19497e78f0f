package driver

const (
	LabelsQuery            = "CALL db.labels()"
	RelationshipTypesQuery = "CALL db.relationshipTypes()"
	PropertyKeysQuery      = "CALL db.propertyKeys()"

	PingQuery = "RETURN 1 AS test"

	ClassIRIIndexQuery      = "CREATE INDEX owl_class_iri IF NOT EXISTS FOR (n:OWLClass) ON (n.iri)"
	IndividualIRIIndexQuery = "CREATE INDEX owl_individual_iri IF NOT EXISTS FOR (n:OWLIndividual) ON (n.iri)"
)
