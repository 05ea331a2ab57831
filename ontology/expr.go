package ontology

import (
	"strconv"

	"github.com/c360studio/semtax/resource"
	"github.com/c360studio/semtax/taxonomy"
	"github.com/c360studio/semtax/vocabulary/owl"
)

// ClassExpr is the decoded shape of a class. The set of implementations is
// closed: Atomic, Union, Intersection, Complement, Enumeration, DataRange and
// Restriction.
type ClassExpr interface {
	// Name returns the resource naming the expression.
	Name() resource.Resource
	classExpr()
}

// Atomic is a named class with no structural definition.
type Atomic struct {
	IRI resource.Resource
}

// Union is a class whose members belong to any operand.
type Union struct {
	IRI      resource.Resource
	Operands []resource.Resource
}

// Intersection is a class whose members belong to every operand.
type Intersection struct {
	IRI      resource.Resource
	Operands []resource.Resource
}

// Complement is a class whose members are the individuals outside Operand.
type Complement struct {
	IRI     resource.Resource
	Operand resource.Resource
}

// Enumeration is a class with an explicit list of individuals.
type Enumeration struct {
	IRI     resource.Resource
	Members []resource.Resource
}

// DataRange is a literal-range class. With Enumerated unset it matches
// literals by datatype; otherwise it holds exactly the listed values.
type DataRange struct {
	IRI        resource.Resource
	Enumerated bool
	Values     []resource.Resource
}

// RestrictionKind selects how a Restriction constrains its property.
type RestrictionKind uint8

const (
	// Cardinality bounds the number of assertions.
	Cardinality RestrictionKind = iota + 1
	// QualifiedCardinality bounds the number of assertions into Class.
	QualifiedCardinality
	// AllValuesFrom requires every asserted value to be in Class.
	AllValuesFrom
	// SomeValuesFrom requires at least one asserted value in Class.
	SomeValuesFrom
	// HasSelf requires a reflexive assertion.
	HasSelf
	// HasValue requires an assertion to Value.
	HasValue
)

// String returns the string representation of RestrictionKind.
func (k RestrictionKind) String() string {
	switch k {
	case Cardinality:
		return "cardinality"
	case QualifiedCardinality:
		return "qualified_cardinality"
	case AllValuesFrom:
		return "all_values_from"
	case SomeValuesFrom:
		return "some_values_from"
	case HasSelf:
		return "has_self"
	case HasValue:
		return "has_value"
	default:
		return "restriction(" + strconv.Itoa(int(k)) + ")"
	}
}

// Restriction is a class defined by a constraint on Property's assertions.
// Min and Max are bounds only when greater than zero.
type Restriction struct {
	IRI      resource.Resource
	Property resource.Resource
	Kind     RestrictionKind
	Min      int
	Max      int
	// Class is the filler of qualified, all and some restrictions.
	Class resource.Resource
	// Value is the required object of a HasValue restriction.
	Value resource.Resource
}

func (e Atomic) Name() resource.Resource       { return e.IRI }
func (e Union) Name() resource.Resource        { return e.IRI }
func (e Intersection) Name() resource.Resource { return e.IRI }
func (e Complement) Name() resource.Resource   { return e.IRI }
func (e Enumeration) Name() resource.Resource  { return e.IRI }
func (e DataRange) Name() resource.Resource    { return e.IRI }
func (e Restriction) Name() resource.Resource  { return e.IRI }

func (Atomic) classExpr()       {}
func (Union) classExpr()        {}
func (Intersection) classExpr() {}
func (Complement) classExpr()   {}
func (Enumeration) classExpr()  {}
func (DataRange) classExpr()    {}
func (Restriction) classExpr()  {}

// ClassModel is the register of class relations and class definitions.
type ClassModel struct {
	*taxonomy.Taxonomy
}

// Expression decodes how c is defined. Classes with no recognised definition
// decode as Atomic.
func (m *ClassModel) Expression(c resource.Resource) ClassExpr {
	if c.IsZero() {
		return Atomic{IRI: c}
	}
	if c.Equal(rdfsLiteral) {
		return DataRange{IRI: c}
	}
	if r, ok := m.restriction(c); ok {
		return r
	}
	if ops, ok := readOwnedList(m.Taxonomy, c, owlUnionOf); ok {
		return Union{IRI: c, Operands: ops}
	}
	if ops, ok := readOwnedList(m.Taxonomy, c, owlIntersectionOf); ok {
		return Intersection{IRI: c, Operands: ops}
	}
	if ops := m.Objects(c, owlComplementOf); len(ops) > 0 {
		return Complement{IRI: c, Operand: ops[0]}
	}
	isDatatype := m.IsDatatype(c)
	if members, ok := readOwnedList(m.Taxonomy, c, owlOneOf); ok {
		if isDatatype {
			return DataRange{IRI: c, Enumerated: true, Values: members}
		}
		return Enumeration{IRI: c, Members: members}
	}
	if isDatatype {
		return DataRange{IRI: c}
	}
	return Atomic{IRI: c}
}

// IsDatatype reports whether c is rdfs:Literal or declared rdfs:Datatype.
func (m *ClassModel) IsDatatype(c resource.Resource) bool {
	return c.Equal(rdfsLiteral) || m.ContainsTriple(c, rdfType, rdfsDatatype)
}

// IsRestriction reports whether c is declared owl:Restriction.
func (m *ClassModel) IsRestriction(c resource.Resource) bool {
	return m.ContainsTriple(c, rdfType, owlRestriction)
}

func (m *ClassModel) firstObject(s, p resource.Resource) (resource.Resource, bool) {
	objs := m.Objects(s, p)
	if len(objs) == 0 {
		return resource.Resource{}, false
	}
	return objs[0], true
}

func (m *ClassModel) count(s, p resource.Resource) (int, bool) {
	v, ok := m.firstObject(s, p)
	if !ok {
		return 0, false
	}
	n, err := strconv.Atoi(v.Value())
	if err != nil || n < 0 {
		return 0, true
	}
	return n, true
}

func (m *ClassModel) restriction(c resource.Resource) (Restriction, bool) {
	prop, ok := m.firstObject(c, owlOnProperty)
	if !ok || !m.IsRestriction(c) {
		return Restriction{}, false
	}
	r := Restriction{IRI: c, Property: prop}

	onClass, hasOnClass := m.firstObject(c, owlOnClass)
	if !hasOnClass {
		onClass, hasOnClass = m.firstObject(c, owlOnDataRange)
	}
	if hasOnClass {
		exact, hasExact := m.count(c, owlQualifiedCardinality)
		lo, hasLo := m.count(c, owlMinQualified)
		hi, hasHi := m.count(c, owlMaxQualified)
		if hasExact || hasLo || hasHi {
			r.Kind = QualifiedCardinality
			r.Class = onClass
			r.Min, r.Max = bounds(exact, hasExact, lo, hi)
			return r, true
		}
	}

	exact, hasExact := m.count(c, owlCardinality)
	lo, hasLo := m.count(c, owlMinCardinality)
	hi, hasHi := m.count(c, owlMaxCardinality)
	if hasExact || hasLo || hasHi {
		r.Kind = Cardinality
		r.Min, r.Max = bounds(exact, hasExact, lo, hi)
		return r, true
	}

	if from, ok := m.firstObject(c, owlAllValuesFrom); ok {
		r.Kind = AllValuesFrom
		r.Class = from
		return r, true
	}
	if from, ok := m.firstObject(c, owlSomeValuesFrom); ok {
		r.Kind = SomeValuesFrom
		r.Class = from
		return r, true
	}
	if v, ok := m.firstObject(c, owlHasSelf); ok && v.Value() == "true" {
		r.Kind = HasSelf
		return r, true
	}
	if v, ok := m.firstObject(c, owlHasValue); ok {
		r.Kind = HasValue
		r.Value = v
		return r, true
	}
	return Restriction{}, false
}

func bounds(exact int, hasExact bool, lo, hi int) (int, int) {
	if hasExact {
		return exact, exact
	}
	return lo, hi
}

// Keys returns the key properties declared for c with owl:hasKey.
func (m *ClassModel) Keys(c resource.Resource) []resource.Resource {
	keys, _ := readOwnedList(m.Taxonomy, c, owlHasKey)
	return keys
}

// KeyedClasses returns every class with a declared key.
func (m *ClassModel) KeyedClasses() []resource.Resource {
	return subjectsOf(m.Taxonomy, owlHasKey)
}

// Classes returns every resource the class model treats as a class: declared
// classes, restrictions and datatypes plus both ends of class relations.
func (m *ClassModel) Classes() []resource.Resource {
	set := resource.NewSet()
	for _, kind := range []resource.Resource{owlClass, owlRestriction, rdfsDatatype} {
		for _, c := range m.Subjects(rdfType, kind) {
			set.Add(c)
		}
	}
	for _, e := range m.Entries() {
		switch e.Predicate.Key() {
		case rdfsSubClassOf.Key(), owlEquivalentClass.Key(), owlDisjointWith.Key():
			set.Add(e.Subject)
			set.Add(e.Object)
		case owlUnionOf.Key(), owlIntersectionOf.Key(), owlComplementOf.Key(), owlOneOf.Key(), owlHasKey.Key():
			set.Add(e.Subject)
		}
	}
	return set.Slice()
}

func subjectsOf(tx *taxonomy.Taxonomy, p resource.Resource) []resource.Resource {
	set := resource.NewSet()
	for _, e := range tx.Match(resource.Resource{}, p, resource.Resource{}) {
		set.Add(e.Subject)
	}
	return set.Slice()
}

func nonNegative(n int) resource.Resource {
	return resource.NewTypedLiteral(strconv.Itoa(n), owl.XSDNonNegativeInteger)
}
