package owl

// Namespaces of the W3C vocabularies the reasoner understands.
const (
	RDFNamespace  = "http://www.w3.org/1999/02/22-rdf-syntax-ns#"
	RDFSNamespace = "http://www.w3.org/2000/01/rdf-schema#"
	OWLNamespace  = "http://www.w3.org/2002/07/owl#"
	XSDNamespace  = "http://www.w3.org/2001/XMLSchema#"
)

// Namespace is the base IRI for semtax-internal terms (list nodes, run ids).
const Namespace = "https://semtax.dev/ontology/"

// DeclaresLiteral links an ontology IRI to a literal it registers in its data
// universe without asserting it about any individual.
const DeclaresLiteral = Namespace + "declaresLiteral"

// RDF and RDFS terms.
const (
	RDFType         = RDFNamespace + "type"
	RDFFirst        = RDFNamespace + "first"
	RDFRest         = RDFNamespace + "rest"
	RDFNil          = RDFNamespace + "nil"
	RDFLangString   = RDFNamespace + "langString"
	RDFPlainLiteral = RDFNamespace + "PlainLiteral"

	RDFSSubClassOf    = RDFSNamespace + "subClassOf"
	RDFSSubPropertyOf = RDFSNamespace + "subPropertyOf"
	RDFSLiteral       = RDFSNamespace + "Literal"
	RDFSDatatype      = RDFSNamespace + "Datatype"
	RDFSClass         = RDFSNamespace + "Class"
	RDFSLabel         = RDFSNamespace + "label"
	RDFSComment       = RDFSNamespace + "comment"
)

// OWL class-level terms.
const (
	Class                   = OWLNamespace + "Class"
	Thing                   = OWLNamespace + "Thing"
	Nothing                 = OWLNamespace + "Nothing"
	Restriction             = OWLNamespace + "Restriction"
	EquivalentClass         = OWLNamespace + "equivalentClass"
	DisjointWith            = OWLNamespace + "disjointWith"
	UnionOf                 = OWLNamespace + "unionOf"
	IntersectionOf          = OWLNamespace + "intersectionOf"
	ComplementOf            = OWLNamespace + "complementOf"
	OneOf                   = OWLNamespace + "oneOf"
	HasKey                  = OWLNamespace + "hasKey"
	OnProperty              = OWLNamespace + "onProperty"
	OnClass                 = OWLNamespace + "onClass"
	OnDataRange             = OWLNamespace + "onDataRange"
	Cardinality             = OWLNamespace + "cardinality"
	MinCardinality          = OWLNamespace + "minCardinality"
	MaxCardinality          = OWLNamespace + "maxCardinality"
	QualifiedCardinality    = OWLNamespace + "qualifiedCardinality"
	MinQualifiedCardinality = OWLNamespace + "minQualifiedCardinality"
	MaxQualifiedCardinality = OWLNamespace + "maxQualifiedCardinality"
	AllValuesFrom           = OWLNamespace + "allValuesFrom"
	SomeValuesFrom          = OWLNamespace + "someValuesFrom"
	HasValue                = OWLNamespace + "hasValue"
	HasSelf                 = OWLNamespace + "hasSelf"
)

// OWL property-level terms.
const (
	ObjectProperty       = OWLNamespace + "ObjectProperty"
	DatatypeProperty     = OWLNamespace + "DatatypeProperty"
	AnnotationProperty   = OWLNamespace + "AnnotationProperty"
	TransitiveProperty   = OWLNamespace + "TransitiveProperty"
	SymmetricProperty    = OWLNamespace + "SymmetricProperty"
	FunctionalProperty   = OWLNamespace + "FunctionalProperty"
	EquivalentProperty   = OWLNamespace + "equivalentProperty"
	PropertyDisjointWith = OWLNamespace + "propertyDisjointWith"
	InverseOf            = OWLNamespace + "inverseOf"
	PropertyChainAxiom   = OWLNamespace + "propertyChainAxiom"
)

// OWL individual-level terms.
const (
	NamedIndividual = OWLNamespace + "NamedIndividual"
	SameAs          = OWLNamespace + "sameAs"
	DifferentFrom   = OWLNamespace + "differentFrom"

	NegativePropertyAssertion = OWLNamespace + "NegativePropertyAssertion"
	SourceIndividual          = OWLNamespace + "sourceIndividual"
	AssertionProperty         = OWLNamespace + "assertionProperty"
	TargetIndividual          = OWLNamespace + "targetIndividual"
	TargetValue               = OWLNamespace + "targetValue"
)

// XSD datatypes seeded into every ontology.
const (
	XSDString             = XSDNamespace + "string"
	XSDNormalizedString   = XSDNamespace + "normalizedString"
	XSDToken              = XSDNamespace + "token"
	XSDLanguage           = XSDNamespace + "language"
	XSDName               = XSDNamespace + "Name"
	XSDNCName             = XSDNamespace + "NCName"
	XSDNMTOKEN            = XSDNamespace + "NMTOKEN"
	XSDBoolean            = XSDNamespace + "boolean"
	XSDDecimal            = XSDNamespace + "decimal"
	XSDInteger            = XSDNamespace + "integer"
	XSDLong               = XSDNamespace + "long"
	XSDInt                = XSDNamespace + "int"
	XSDShort              = XSDNamespace + "short"
	XSDByte               = XSDNamespace + "byte"
	XSDNonNegativeInteger = XSDNamespace + "nonNegativeInteger"
	XSDPositiveInteger    = XSDNamespace + "positiveInteger"
	XSDNonPositiveInteger = XSDNamespace + "nonPositiveInteger"
	XSDNegativeInteger    = XSDNamespace + "negativeInteger"
	XSDUnsignedLong       = XSDNamespace + "unsignedLong"
	XSDUnsignedInt        = XSDNamespace + "unsignedInt"
	XSDUnsignedShort      = XSDNamespace + "unsignedShort"
	XSDUnsignedByte       = XSDNamespace + "unsignedByte"
	XSDFloat              = XSDNamespace + "float"
	XSDDouble             = XSDNamespace + "double"
	XSDDateTime           = XSDNamespace + "dateTime"
	XSDDateTimeStamp      = XSDNamespace + "dateTimeStamp"
	XSDDate               = XSDNamespace + "date"
	XSDTime               = XSDNamespace + "time"
	XSDDuration           = XSDNamespace + "duration"
	XSDGYear              = XSDNamespace + "gYear"
	XSDGYearMonth         = XSDNamespace + "gYearMonth"
	XSDAnyURI             = XSDNamespace + "anyURI"
	XSDBase64Binary       = XSDNamespace + "base64Binary"
	XSDHexBinary          = XSDNamespace + "hexBinary"
)
