package ontology

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/c360studio/semtax/resource"
	"github.com/c360studio/semtax/taxonomy"
	"github.com/c360studio/semtax/vocabulary/owl"
)

func ex(s string) resource.Resource { return resource.NewURI("http://example.org/" + s) }

func TestNewSeedsDatatypeLattice(t *testing.T) {
	o := New("http://example.org/onto")

	assert.True(t, o.Classes.ContainsTriple(iri(owl.XSDInt), rdfsSubClassOf, iri(owl.XSDLong)))
	assert.True(t, o.Classes.ContainsTriple(iri(owl.XSDDecimal), rdfsSubClassOf, rdfsLiteral))
	assert.True(t, o.Classes.IsDatatype(iri(owl.XSDString)))
	assert.True(t, o.Classes.ContainsTriple(iri(owl.Thing), rdfType, owlClass))

	bare := New("http://example.org/bare", WithoutSeed())
	assert.Equal(t, 0, bare.Len())
}

func TestSeedIsolation(t *testing.T) {
	a := New("http://example.org/a")
	b := New("http://example.org/b")
	before := b.Classes.Len()

	require.True(t, a.Classes.RemoveTriple(iri(owl.XSDInt), rdfsSubClassOf, iri(owl.XSDLong)))
	require.NoError(t, a.AddSubClassOf(iri(owl.XSDByte), ex("Custom")))

	assert.Equal(t, before, b.Classes.Len())
	assert.True(t, b.Classes.ContainsTriple(iri(owl.XSDInt), rdfsSubClassOf, iri(owl.XSDLong)))
	assert.True(t, New("http://example.org/c").Classes.ContainsTriple(iri(owl.XSDInt), rdfsSubClassOf, iri(owl.XSDLong)))
}

func TestHelpersRejectMissingComponents(t *testing.T) {
	o := New("http://example.org/onto", WithoutSeed())
	zero := resource.Resource{}

	tests := []struct {
		name string
		call func() error
	}{
		{"subclass", func() error { return o.AddSubClassOf(zero, ex("B")) }},
		{"equivalent", func() error { return o.AddEquivalentClass(ex("A"), zero) }},
		{"union operand", func() error { return o.DeclareUnion(ex("U"), ex("A"), zero) }},
		{"assertion", func() error { return o.AddAssertion(ex("i"), zero, ex("j")) }},
		{"chain", func() error { return o.AddPropertyChain(zero, ex("p")) }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.call()
			require.Error(t, err)
			assert.True(t, errors.Is(err, taxonomy.ErrMissingComponent))
		})
	}
}

func TestSymmetricRestatement(t *testing.T) {
	o := New("http://example.org/onto", WithoutSeed())
	require.NoError(t, o.AddEquivalentClass(ex("A"), ex("B")))

	fwd, ok := o.Classes.Lookup(taxonomy.HashTriple(ex("A"), owlEquivalentClass, ex("B")))
	require.True(t, ok)
	assert.Equal(t, taxonomy.Asserted, fwd.Provenance)

	rev, ok := o.Classes.Lookup(taxonomy.HashTriple(ex("B"), owlEquivalentClass, ex("A")))
	require.True(t, ok)
	assert.Equal(t, taxonomy.DerivedByConstruction, rev.Provenance)

	assert.True(t, o.RemoveEquivalentClass(ex("B"), ex("A")))
	assert.Equal(t, 0, o.Classes.Len())
}

func TestExpressionDecoding(t *testing.T) {
	o := New("http://example.org/onto")
	require.NoError(t, o.DeclareClass(ex("Plain")))
	require.NoError(t, o.DeclareUnion(ex("U"), ex("A"), ex("B")))
	require.NoError(t, o.DeclareIntersection(ex("I"), ex("A"), ex("B"), ex("C")))
	require.NoError(t, o.DeclareComplement(ex("N"), ex("A")))
	require.NoError(t, o.DeclareEnumeration(ex("E"), ex("i1"), ex("i2")))
	require.NoError(t, o.DeclareDataRange(ex("Small"),
		resource.NewTypedLiteral("1", owl.XSDInt), resource.NewTypedLiteral("2", owl.XSDInt)))

	tests := []struct {
		name string
		c    resource.Resource
		want ClassExpr
	}{
		{"atomic", ex("Plain"), Atomic{IRI: ex("Plain")}},
		{"undeclared", ex("Nowhere"), Atomic{IRI: ex("Nowhere")}},
		{"union", ex("U"), Union{IRI: ex("U"), Operands: []resource.Resource{ex("A"), ex("B")}}},
		{"intersection", ex("I"), Intersection{IRI: ex("I"), Operands: []resource.Resource{ex("A"), ex("B"), ex("C")}}},
		{"complement", ex("N"), Complement{IRI: ex("N"), Operand: ex("A")}},
		{"enumeration", ex("E"), Enumeration{IRI: ex("E"), Members: []resource.Resource{ex("i1"), ex("i2")}}},
		{"data range", ex("Small"), DataRange{IRI: ex("Small"), Enumerated: true, Values: []resource.Resource{
			resource.NewTypedLiteral("1", owl.XSDInt), resource.NewTypedLiteral("2", owl.XSDInt)}}},
		{"datatype", iri(owl.XSDInt), DataRange{IRI: iri(owl.XSDInt)}},
		{"rdfs literal", rdfsLiteral, DataRange{IRI: rdfsLiteral}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, o.Classes.Expression(tt.c))
		})
	}
}

func TestRedeclareCompositeReplacesList(t *testing.T) {
	o := New("http://example.org/onto", WithoutSeed())
	require.NoError(t, o.DeclareUnion(ex("U"), ex("A"), ex("B"), ex("C")))
	require.NoError(t, o.DeclareUnion(ex("U"), ex("D")))

	assert.Equal(t, Union{IRI: ex("U"), Operands: []resource.Resource{ex("D")}}, o.Classes.Expression(ex("U")))
	// declaration + head + one cell (first, rest)
	assert.Equal(t, 4, o.Classes.Len())
}

func TestRestrictionDecoding(t *testing.T) {
	o := New("http://example.org/onto")
	p := ex("p")

	tests := []struct {
		name string
		r    Restriction
	}{
		{"min cardinality", Restriction{IRI: ex("R1"), Property: p, Kind: Cardinality, Min: 2}},
		{"max cardinality", Restriction{IRI: ex("R2"), Property: p, Kind: Cardinality, Max: 3}},
		{"exact cardinality", Restriction{IRI: ex("R3"), Property: p, Kind: Cardinality, Min: 1, Max: 1}},
		{"range cardinality", Restriction{IRI: ex("R4"), Property: p, Kind: Cardinality, Min: 1, Max: 4}},
		{"qualified", Restriction{IRI: ex("R5"), Property: p, Kind: QualifiedCardinality, Min: 1, Class: ex("C")}},
		{"qualified data", Restriction{IRI: ex("R6"), Property: p, Kind: QualifiedCardinality, Max: 2, Class: iri(owl.XSDInt)}},
		{"all values", Restriction{IRI: ex("R7"), Property: p, Kind: AllValuesFrom, Class: ex("C")}},
		{"some values", Restriction{IRI: ex("R8"), Property: p, Kind: SomeValuesFrom, Class: ex("C")}},
		{"has self", Restriction{IRI: ex("R9"), Property: p, Kind: HasSelf}},
		{"has value", Restriction{IRI: ex("R10"), Property: p, Kind: HasValue, Value: resource.NewPlainLiteral("x", "en")}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.NoError(t, o.DeclareRestriction(tt.r))
			assert.Equal(t, tt.r, o.Classes.Expression(tt.r.IRI))
		})
	}

	t.Run("unknown kind", func(t *testing.T) {
		err := o.DeclareRestriction(Restriction{IRI: ex("Bad"), Property: p})
		require.Error(t, err)
	})
	t.Run("missing filler", func(t *testing.T) {
		err := o.DeclareRestriction(Restriction{IRI: ex("Bad2"), Property: p, Kind: AllValuesFrom})
		assert.True(t, errors.Is(err, taxonomy.ErrMissingComponent))
	})
}

func TestRejectedRestrictionLeavesNoEntries(t *testing.T) {
	p := ex("p")
	tests := []struct {
		name string
		r    Restriction
	}{
		{"zero property", Restriction{IRI: ex("R"), Kind: Cardinality, Max: 1}},
		{"zero iri", Restriction{Property: p, Kind: HasSelf}},
		{"some without filler", Restriction{IRI: ex("R"), Property: p, Kind: SomeValuesFrom}},
		{"qualified without filler", Restriction{IRI: ex("R"), Property: p, Kind: QualifiedCardinality, Min: 1}},
		{"has value without value", Restriction{IRI: ex("R"), Property: p, Kind: HasValue}},
		{"unknown kind", Restriction{IRI: ex("R"), Property: p}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o := New("http://example.org/onto", WithoutSeed())
			require.Error(t, o.DeclareRestriction(tt.r))
			assert.False(t, o.Classes.IsRestriction(ex("R")))
			assert.Equal(t, 0, o.Classes.Len())
		})
	}

	o := New("http://example.org/onto", WithoutSeed())
	err := o.DeclareRestriction(Restriction{IRI: ex("R"), Kind: Cardinality, Max: 1})
	assert.True(t, errors.Is(err, taxonomy.ErrMissingComponent))

	r := Restriction{IRI: ex("R"), Property: p, Kind: SomeValuesFrom, Class: ex("C")}
	require.NoError(t, o.DeclareRestriction(r))
	expr := o.Classes.Expression(ex("R"))
	assert.Equal(t, ex("R"), expr.Name())
	assert.Equal(t, ex("C"), expr.(Restriction).Class)
}

func TestKeysAndChains(t *testing.T) {
	o := New("http://example.org/onto", WithoutSeed())
	require.NoError(t, o.AddHasKey(ex("Person"), ex("ssn"), ex("country")))
	assert.Equal(t, []resource.Resource{ex("ssn"), ex("country")}, o.Classes.Keys(ex("Person")))
	assert.Equal(t, []resource.Resource{ex("Person")}, o.Classes.KeyedClasses())
	assert.Empty(t, o.Classes.Keys(ex("Other")))

	require.NoError(t, o.AddPropertyChain(ex("grandparent"), ex("parent"), ex("parent")))
	assert.Equal(t, []resource.Resource{ex("parent"), ex("parent")}, o.Properties.Chain(ex("grandparent")))
	assert.Equal(t, []resource.Resource{ex("grandparent")}, o.Properties.ChainedProperties())

	o.RemovePropertyChain(ex("grandparent"))
	assert.Empty(t, o.Properties.Chain(ex("grandparent")))
	assert.Equal(t, 0, o.Properties.Len())
}

func TestCyclicListTerminates(t *testing.T) {
	o := New("http://example.org/onto", WithoutSeed())
	cell := ex("cell")
	o.Properties.AddTriple(ex("p"), owlPropertyChainAxiom, cell, taxonomy.Asserted)
	o.Properties.AddTriple(cell, rdfFirst, ex("q"), taxonomy.Asserted)
	o.Properties.AddTriple(cell, rdfRest, cell, taxonomy.Asserted)

	assert.Equal(t, []resource.Resource{ex("q")}, o.Properties.Chain(ex("p")))
}

func TestUniverses(t *testing.T) {
	o := New("http://example.org/onto")
	require.NoError(t, o.DeclareIndividual(ex("a")))
	require.NoError(t, o.AddClassType(ex("b"), ex("C")))
	require.NoError(t, o.AddAssertion(ex("c"), ex("knows"), ex("d")))
	require.NoError(t, o.AddAssertion(ex("c"), ex("age"), resource.NewTypedLiteral("4", owl.XSDInt)))
	require.NoError(t, o.DeclareLiteral(resource.NewPlainLiteral("hi", "")))
	require.NoError(t, o.AddNegativeAssertion(ex("e"), ex("knows"), ex("a")))

	individuals := o.Individuals()
	for _, name := range []string{"a", "b", "c", "d", "e"} {
		assert.True(t, individuals.Has(ex(name)), name)
	}
	assert.False(t, individuals.Has(ex("C")), "classes are not individuals")
	assert.False(t, individuals.Has(o.IRI))

	literals := o.Literals()
	assert.Len(t, literals, 2)

	assert.Len(t, o.Data.Assertions(resource.Resource{}), 2)
	assert.Len(t, o.Data.Assertions(ex("knows")), 1)
	assert.Nil(t, o.Data.Assertions(rdfType))

	err := o.AddAssertion(ex("x"), owlSameAs, ex("y"))
	assert.Error(t, err)
	assert.Error(t, o.DeclareLiteral(ex("notALiteral")))
}

func TestInferencesAndClear(t *testing.T) {
	o := New("http://example.org/onto")
	require.NoError(t, o.AddSubClassOf(ex("A"), ex("B")))
	require.NoError(t, o.AddSameAs(ex("i"), ex("j")))
	o.Classes.AddTriple(ex("A"), rdfsSubClassOf, ex("Z"), taxonomy.DerivedByReasoner)
	o.Data.AddTriple(ex("i"), rdfType, ex("B"), taxonomy.DerivedByReasoner)
	o.Data.Negatives.AddTriple(ex("i"), ex("p"), ex("k"), taxonomy.DerivedByReasoner)

	inf := o.Inferences()
	assert.Equal(t, 1, inf.Classes.Len())
	assert.Equal(t, 2, inf.Data.Len(), "reasoner type plus construction sameAs")
	assert.Equal(t, 1, inf.Data.Negatives.Len())

	total := o.Len()
	assert.Equal(t, 3, o.ClearInferences())
	assert.Equal(t, total-3, o.Len())
	assert.True(t, o.Classes.ContainsTriple(ex("A"), rdfsSubClassOf, ex("B")))
	assert.True(t, o.Data.ContainsTriple(ex("j"), owlSameAs, ex("i")), "construction entries survive")
	assert.Equal(t, 0, o.ClearInferences())
}

func TestCloneAndMerge(t *testing.T) {
	o := New("http://example.org/onto")
	require.NoError(t, o.AddSubClassOf(ex("A"), ex("B")))

	c := o.Clone()
	require.NoError(t, c.AddSubClassOf(ex("B"), ex("C")))
	assert.False(t, o.Classes.ContainsTriple(ex("B"), rdfsSubClassOf, ex("C")))
	assert.Equal(t, 1, o.Merge(c))
	assert.Equal(t, o.Len(), c.Len())

	reg, ok := o.RegisterByName(RegisterNegatives)
	require.True(t, ok)
	assert.Same(t, o.Data.Negatives, reg)
	_, ok = o.RegisterByName("nope")
	assert.False(t, ok)
}
