package reasoner

import (
	"bytes"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckerClasses(t *testing.T) {
	o := newOntology()
	require.NoError(t, o.AddSubClassOf(ex("A"), ex("B")))
	require.NoError(t, o.AddEquivalentClass(ex("B"), ex("C")))
	require.NoError(t, o.AddDisjointWith(ex("C"), ex("D")))
	c := New(o).Checker()

	tests := []struct {
		name string
		got  bool
		want bool
	}{
		{"subclass reversing a hierarchy", c.CanSubClassOf(ex("B"), ex("A")), false},
		{"subclass of an equivalent", c.CanSubClassOf(ex("C"), ex("B")), false},
		{"subclass of a disjoint class", c.CanSubClassOf(ex("A"), ex("D")), false},
		{"fresh subclass", c.CanSubClassOf(ex("A"), ex("E")), true},
		{"equivalent to a superclass", c.CanEquivalentClass(ex("A"), ex("B")), false},
		{"equivalent to a disjoint class", c.CanEquivalentClass(ex("A"), ex("D")), false},
		{"fresh equivalence", c.CanEquivalentClass(ex("A"), ex("E")), true},
		{"disjoint with a superclass", c.CanDisjointWith(ex("A"), ex("C")), false},
		{"disjoint with a subclass", c.CanDisjointWith(ex("C"), ex("A")), false},
		{"disjoint with an equivalent", c.CanDisjointWith(ex("B"), ex("C")), false},
		{"disjoint with itself", c.CanDisjointWith(ex("E"), ex("E")), false},
		{"fresh disjointness", c.CanDisjointWith(ex("A"), ex("E")), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.got)
		})
	}
}

func TestCheckerProperties(t *testing.T) {
	o := newOntology()
	require.NoError(t, o.AddSubPropertyOf(ex("p"), ex("q")))
	require.NoError(t, o.AddEquivalentProperty(ex("q"), ex("r")))
	require.NoError(t, o.AddPropertyDisjointWith(ex("r"), ex("s")))
	c := New(o).Checker()

	assert.False(t, c.CanSubPropertyOf(ex("q"), ex("p")))
	assert.False(t, c.CanSubPropertyOf(ex("p"), ex("s")))
	assert.True(t, c.CanSubPropertyOf(ex("p"), ex("t")))
	assert.False(t, c.CanEquivalentProperty(ex("p"), ex("q")))
	assert.True(t, c.CanEquivalentProperty(ex("p"), ex("t")))
	assert.False(t, c.CanPropertyDisjointWith(ex("p"), ex("r")))
	assert.True(t, c.CanPropertyDisjointWith(ex("p"), ex("t")))
	assert.False(t, c.CanInverseOf(ex("p"), ex("q")))
	assert.False(t, c.CanInverseOf(ex("r"), ex("q")))
	assert.True(t, c.CanInverseOf(ex("p"), ex("t")))
}

func TestCheckerIndividuals(t *testing.T) {
	o := newOntology()
	require.NoError(t, o.AddSameAs(ex("a"), ex("b")))
	require.NoError(t, o.AddDifferentFrom(ex("b"), ex("c")))
	require.NoError(t, o.AddDisjointWith(ex("Cat"), ex("Dog")))
	require.NoError(t, o.AddSubClassOf(ex("Puppy"), ex("Dog")))
	require.NoError(t, o.AddClassType(ex("rex"), ex("Puppy")))
	require.NoError(t, o.AddAssertion(ex("a"), ex("knows"), ex("c")))
	require.NoError(t, o.AddNegativeAssertion(ex("a"), ex("hates"), ex("c")))
	c := New(o).Checker()

	assert.False(t, c.CanSameAs(ex("a"), ex("c")))
	assert.True(t, c.CanSameAs(ex("a"), ex("d")))
	assert.False(t, c.CanDifferentFrom(ex("a"), ex("b")))
	assert.False(t, c.CanDifferentFrom(ex("a"), ex("a")))
	assert.True(t, c.CanDifferentFrom(ex("a"), ex("d")))

	assert.False(t, c.CanClassType(ex("rex"), ex("Cat")))
	assert.True(t, c.CanClassType(ex("rex"), ex("Dog")))
	assert.True(t, c.CanClassType(ex("tom"), ex("Cat")))

	assert.False(t, c.CanAssert(ex("a"), ex("hates"), ex("c")))
	assert.True(t, c.CanAssert(ex("a"), ex("likes"), ex("c")))
	assert.False(t, c.CanNegativeAssert(ex("a"), ex("knows"), ex("c")))
	assert.True(t, c.CanNegativeAssert(ex("a"), ex("likes"), ex("c")))
}

func TestCanTransitiveAssert(t *testing.T) {
	o := newOntology()
	anc := ex("ancestorOf")
	require.NoError(t, o.DeclareTransitive(anc))
	require.NoError(t, o.AddAssertion(ex("a"), anc, ex("b")))
	require.NoError(t, o.AddAssertion(ex("b"), anc, ex("c")))
	require.NoError(t, o.AddAssertion(ex("x"), ex("plain"), ex("y")))
	c := New(o).Checker()

	assert.False(t, c.CanTransitiveAssert(ex("c"), anc, ex("a")))
	assert.False(t, c.CanTransitiveAssert(ex("b"), anc, ex("a")))
	assert.False(t, c.CanTransitiveAssert(ex("a"), anc, ex("a")))
	assert.True(t, c.CanTransitiveAssert(ex("a"), anc, ex("c")))
	assert.True(t, c.CanTransitiveAssert(ex("y"), ex("plain"), ex("x")), "non-transitive properties pass")
}

func TestCanPropertyChainMemberNotImplemented(t *testing.T) {
	ok, err := New(newOntology()).Checker().CanPropertyChainMember(ex("p"), ex("q"))
	assert.False(t, ok)
	assert.True(t, errors.Is(err, ErrNotImplemented))
}

func TestModeler(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))
	o := newOntology()
	m := NewModeler(New(o, WithLogger(logger)))

	require.NoError(t, m.AddSubClassOf(ex("A"), ex("B")))
	err := m.AddSubClassOf(ex("B"), ex("A"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInconsistent))
	assert.Contains(t, buf.String(), "Rejected inconsistent relation")
	assert.False(t, o.Classes.ContainsTriple(ex("B"), rdfsSubClassOf, ex("A")))

	require.NoError(t, m.AddDisjointWith(ex("A"), ex("C")))
	require.NoError(t, m.AddClassType(ex("i"), ex("A")))
	assert.ErrorIs(t, m.AddClassType(ex("i"), ex("C")), ErrInconsistent)
	assert.ErrorIs(t, m.AddEquivalentClass(ex("A"), ex("B")), ErrInconsistent)

	require.NoError(t, m.AddSubPropertyOf(ex("p"), ex("q")))
	assert.ErrorIs(t, m.AddEquivalentProperty(ex("p"), ex("q")), ErrInconsistent)
	assert.ErrorIs(t, m.AddPropertyDisjointWith(ex("p"), ex("q")), ErrInconsistent)
	assert.ErrorIs(t, m.AddInverseOf(ex("p"), ex("q")), ErrInconsistent)
	require.NoError(t, m.AddInverseOf(ex("p"), ex("r")))

	require.NoError(t, m.AddSameAs(ex("i"), ex("j")))
	assert.ErrorIs(t, m.AddDifferentFrom(ex("i"), ex("j")), ErrInconsistent)
	require.NoError(t, m.AddDifferentFrom(ex("i"), ex("k")))
	assert.ErrorIs(t, m.AddSameAs(ex("j"), ex("k")), ErrInconsistent)

	require.NoError(t, m.AddAssertion(ex("i"), ex("likes"), ex("k")))
	assert.ErrorIs(t, m.AddNegativeAssertion(ex("i"), ex("likes"), ex("k")), ErrInconsistent)
	require.NoError(t, m.AddNegativeAssertion(ex("i"), ex("hates"), ex("k")))
	assert.ErrorIs(t, m.AddAssertion(ex("i"), ex("hates"), ex("k")), ErrInconsistent)

	require.NoError(t, o.DeclareTransitive(ex("partOf")))
	require.NoError(t, m.AddAssertion(ex("wheel"), ex("partOf"), ex("car")))
	assert.ErrorIs(t, m.AddAssertion(ex("car"), ex("partOf"), ex("wheel")), ErrInconsistent)
}
