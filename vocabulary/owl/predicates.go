package owl

import "github.com/c360studio/semstreams/vocabulary"

// Dotted predicate aliases used when reasoning output is published into a
// semstreams graph. Each alias maps to exactly one OWL/RDFS IRI.
const (
	// Class axioms
	PredicateType            = "owl.individual.type"
	PredicateSubClassOf      = "owl.class.subclass_of"
	PredicateEquivalentClass = "owl.class.equivalent_class"
	PredicateDisjointWith    = "owl.class.disjoint_with"
	PredicateUnionOf         = "owl.class.union_of"
	PredicateIntersectionOf  = "owl.class.intersection_of"
	PredicateComplementOf    = "owl.class.complement_of"
	PredicateOneOf           = "owl.class.one_of"
	PredicateHasKey          = "owl.class.has_key"

	// Property axioms
	PredicateSubPropertyOf        = "owl.property.subproperty_of"
	PredicateEquivalentProperty   = "owl.property.equivalent_property"
	PredicatePropertyDisjointWith = "owl.property.disjoint_with"
	PredicateInverseOf            = "owl.property.inverse_of"
	PredicatePropertyChainAxiom   = "owl.property.chain_axiom"

	// Individual axioms
	PredicateSameAs        = "owl.individual.same_as"
	PredicateDifferentFrom = "owl.individual.different_from"
)

// aliases is the single source of truth for alias <-> IRI translation.
var aliases = []struct {
	name        string
	iri         string
	description string
}{
	{PredicateType, RDFType, "Individual is a member of the object class"},
	{PredicateSubClassOf, RDFSSubClassOf, "Subject class is subsumed by the object class"},
	{PredicateEquivalentClass, EquivalentClass, "Subject and object classes have the same extension"},
	{PredicateDisjointWith, DisjointWith, "Subject and object classes share no members"},
	{PredicateUnionOf, UnionOf, "Subject class is the union of its operand classes"},
	{PredicateIntersectionOf, IntersectionOf, "Subject class is the intersection of its operand classes"},
	{PredicateComplementOf, ComplementOf, "Subject class is the complement of the object class"},
	{PredicateOneOf, OneOf, "Subject class enumerates the object member"},
	{PredicateHasKey, HasKey, "Object property is a key of the subject class"},
	{PredicateSubPropertyOf, RDFSSubPropertyOf, "Subject property is subsumed by the object property"},
	{PredicateEquivalentProperty, EquivalentProperty, "Subject and object properties have the same extension"},
	{PredicatePropertyDisjointWith, PropertyDisjointWith, "Subject and object properties never link the same pair"},
	{PredicateInverseOf, InverseOf, "Subject property is the inverse of the object property"},
	{PredicatePropertyChainAxiom, PropertyChainAxiom, "Subject property is implied by the object property chain"},
	{PredicateSameAs, SameAs, "Subject and object individuals denote the same thing"},
	{PredicateDifferentFrom, DifferentFrom, "Subject and object individuals denote different things"},
}

var (
	byAlias = make(map[string]string, len(aliases))
	byIRI   = make(map[string]string, len(aliases))
)

// PredicateForIRI returns the dotted alias for an OWL/RDFS IRI.
// The IRI itself is returned when no alias exists.
func PredicateForIRI(iri string) string {
	if name, ok := byIRI[iri]; ok {
		return name
	}
	return iri
}

// IRIForPredicate returns the IRI behind a dotted alias.
// Unknown names are returned unchanged so that full IRIs pass through.
func IRIForPredicate(name string) string {
	if iri, ok := byAlias[name]; ok {
		return iri
	}
	return name
}

func init() {
	for _, a := range aliases {
		byAlias[a.name] = a.iri
		byIRI[a.iri] = a.name
		vocabulary.Register(a.name,
			vocabulary.WithDescription(a.description),
			vocabulary.WithDataType("entity_id"),
			vocabulary.WithIRI(a.iri))
	}
}
