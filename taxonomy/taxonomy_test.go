package taxonomy

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/c360studio/semtax/resource"
)

func uri(s string) resource.Resource { return resource.NewURI("http://example.org/" + s) }

func TestNewEntryMissingComponent(t *testing.T) {
	tests := []struct {
		name      string
		s, p, o   resource.Resource
		component string
	}{
		{"subject", resource.Resource{}, uri("p"), uri("o"), "subject"},
		{"predicate", uri("s"), resource.Resource{}, uri("o"), "predicate"},
		{"object", uri("s"), uri("p"), resource.Resource{}, "object"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewEntry(tt.s, tt.p, tt.o, Asserted)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrMissingComponent))

			var me *ModelError
			require.True(t, errors.As(err, &me))
			assert.Equal(t, tt.component, me.Component)
			assert.Equal(t, "missing "+tt.component, err.Error())
		})
	}
}

func TestEntryIdentity(t *testing.T) {
	a := MustEntry(uri("a"), uri("p"), uri("b"), Asserted)
	b := MustEntry(uri("a"), uri("p"), uri("b"), DerivedByReasoner)
	c := MustEntry(uri("b"), uri("p"), uri("a"), Asserted)

	assert.Equal(t, a.ID(), b.ID(), "provenance is not part of identity")
	assert.NotEqual(t, a.ID(), c.ID())
	assert.Len(t, a.ID().String(), 16)

	lit := MustEntry(uri("a"), uri("p"), resource.NewTypedLiteral("1", "http://www.w3.org/2001/XMLSchema#int"), Asserted)
	str := MustEntry(uri("a"), uri("p"), resource.NewPlainLiteral("1", ""), Asserted)
	assert.NotEqual(t, lit.ID(), str.ID(), "literal datatype is part of identity")
}

func TestAddDuplicates(t *testing.T) {
	e := MustEntry(uri("a"), uri("p"), uri("b"), Asserted)

	t.Run("disallowed", func(t *testing.T) {
		tx := New(Model, false)
		assert.True(t, tx.Add(e))
		assert.False(t, tx.Add(e))
		assert.Equal(t, 1, tx.Len())
		assert.Equal(t, 1, tx.Occurrences(e.ID()))
	})

	t.Run("allowed", func(t *testing.T) {
		tx := New(Data, true)
		assert.True(t, tx.Add(e))
		assert.True(t, tx.Add(e))
		assert.Equal(t, 1, tx.Len())
		assert.Equal(t, 2, tx.Occurrences(e.ID()))
		assert.True(t, tx.Remove(e))
		assert.Equal(t, 0, tx.Occurrences(e.ID()))
	})

	t.Run("asserted upgrades derived", func(t *testing.T) {
		tx := New(Model, false)
		tx.Add(e.WithProvenance(DerivedByReasoner))
		assert.False(t, tx.Add(e))
		got, ok := tx.Lookup(e.ID())
		require.True(t, ok)
		assert.Equal(t, Asserted, got.Provenance)

		assert.False(t, tx.Add(e.WithProvenance(DerivedByReasoner)))
		got, _ = tx.Lookup(e.ID())
		assert.Equal(t, Asserted, got.Provenance)
	})
}

func TestRemoveAndIndexes(t *testing.T) {
	tx := New(Model, false)
	tx.AddTriple(uri("a"), uri("p"), uri("b"), Asserted)
	tx.AddTriple(uri("a"), uri("p"), uri("c"), Asserted)
	tx.AddTriple(uri("d"), uri("p"), uri("c"), Asserted)
	tx.AddTriple(uri("a"), uri("q"), uri("c"), Asserted)

	assert.Equal(t, []resource.Resource{uri("b"), uri("c")}, tx.Objects(uri("a"), uri("p")))
	assert.Equal(t, []resource.Resource{uri("a"), uri("d")}, tx.Subjects(uri("p"), uri("c")))
	assert.Equal(t, 3, tx.SelectBySubject(uri("a")).Len())
	assert.Equal(t, 3, tx.SelectByPredicate(uri("p")).Len())
	assert.Equal(t, 3, tx.SelectByObject(uri("c")).Len())
	assert.Equal(t, 0, tx.SelectBySubject(uri("zzz")).Len())

	assert.True(t, tx.RemoveTriple(uri("a"), uri("p"), uri("c")))
	assert.False(t, tx.RemoveTriple(uri("a"), uri("p"), uri("c")))
	assert.False(t, tx.ContainsTriple(uri("a"), uri("p"), uri("c")))
	assert.Equal(t, []resource.Resource{uri("b")}, tx.Objects(uri("a"), uri("p")))
	assert.Equal(t, []resource.Resource{uri("d")}, tx.Subjects(uri("p"), uri("c")))
	assert.Equal(t, 3, tx.Len())
}

func TestSelectPattern(t *testing.T) {
	tx := New(Data, false)
	tx.AddTriple(uri("a"), uri("p"), uri("b"), Asserted)
	tx.AddTriple(uri("a"), uri("q"), uri("b"), DerivedByReasoner)
	tx.AddTriple(uri("c"), uri("p"), uri("b"), DerivedByConstruction)

	tests := []struct {
		name    string
		s, p, o resource.Resource
		want    int
	}{
		{"all wildcards", resource.Resource{}, resource.Resource{}, resource.Resource{}, 3},
		{"subject", uri("a"), resource.Resource{}, resource.Resource{}, 2},
		{"subject predicate", uri("a"), uri("p"), resource.Resource{}, 1},
		{"predicate object", resource.Resource{}, uri("p"), uri("b"), 2},
		{"subject object", uri("c"), resource.Resource{}, uri("b"), 1},
		{"exact", uri("a"), uri("q"), uri("b"), 1},
		{"none", uri("b"), resource.Resource{}, resource.Resource{}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sel := tx.Select(tt.s, tt.p, tt.o)
			assert.Equal(t, tt.want, sel.Len())
			assert.Equal(t, Data, sel.Category())
			assert.Len(t, tx.Match(tt.s, tt.p, tt.o), tt.want)
		})
	}

	assert.Equal(t, 2, tx.SelectByProvenance(DerivedByReasoner, DerivedByConstruction).Len())
}

func TestEntriesInsertionOrder(t *testing.T) {
	tx := New(Model, false)
	for i := 0; i < 20; i++ {
		tx.AddTriple(uri(fmt.Sprintf("s%02d", 19-i)), uri("p"), uri("o"), Asserted)
	}
	tx.RemoveTriple(uri("s10"), uri("p"), uri("o"))
	tx.AddTriple(uri("s10"), uri("p"), uri("o"), Asserted)

	entries := tx.Entries()
	require.Len(t, entries, 20)
	assert.Equal(t, uri("s19"), entries[0].Subject)
	assert.Equal(t, uri("s10"), entries[19].Subject)
}

func TestSetAlgebra(t *testing.T) {
	left := New(Model, false)
	left.AddTriple(uri("a"), uri("p"), uri("b"), Asserted)
	left.AddTriple(uri("b"), uri("p"), uri("c"), Asserted)

	right := New(Data, false)
	right.AddTriple(uri("b"), uri("p"), uri("c"), Asserted)
	right.AddTriple(uri("c"), uri("p"), uri("d"), Asserted)

	union := left.Union(right)
	assert.Equal(t, 3, union.Len())
	assert.Equal(t, Model, union.Category())
	assert.False(t, union.ContainsTriple(uri("a"), uri("p"), uri("c")), "union does not compute closure")

	inter := left.Intersect(right)
	assert.Equal(t, 1, inter.Len())
	assert.True(t, inter.ContainsTriple(uri("b"), uri("p"), uri("c")))

	diff := left.Difference(right)
	assert.Equal(t, 1, diff.Len())
	assert.True(t, diff.ContainsTriple(uri("a"), uri("p"), uri("b")))

	assert.Equal(t, 2, left.Len(), "operands are unchanged")
	assert.Equal(t, 2, right.Len())
}

func TestCloneMerge(t *testing.T) {
	tx := New(Model, false)
	tx.AddTriple(uri("a"), uri("p"), uri("b"), Asserted)

	clone := tx.Clone()
	clone.AddTriple(uri("x"), uri("p"), uri("y"), Asserted)
	assert.Equal(t, 1, tx.Len())
	assert.Equal(t, 2, clone.Len())

	assert.Equal(t, 1, tx.Merge(clone))
	assert.Equal(t, 0, tx.Merge(clone))
	assert.Equal(t, 0, tx.Merge(nil))
}

func TestRemoveWhere(t *testing.T) {
	tx := New(Model, false)
	tx.AddTriple(uri("a"), uri("p"), uri("b"), Asserted)
	tx.AddTriple(uri("b"), uri("p"), uri("c"), DerivedByReasoner)
	tx.AddTriple(uri("c"), uri("p"), uri("d"), DerivedByReasoner)

	n := tx.RemoveWhere(func(e Entry) bool { return e.Provenance == DerivedByReasoner })
	assert.Equal(t, 2, n)
	assert.Equal(t, 1, tx.Len())
	assert.Empty(t, tx.Objects(uri("b"), uri("p")))
}

func TestProvenanceString(t *testing.T) {
	for _, p := range []Provenance{Asserted, DerivedByConstruction, DerivedByReasoner} {
		got, ok := ParseProvenance(p.String())
		assert.True(t, ok)
		assert.Equal(t, p, got)
	}
	_, ok := ParseProvenance("bogus")
	assert.False(t, ok)
}

// BenchmarkEntryIDCollisions hashes distinct triples and reports how many
// share a 64-bit id with an earlier one. Any non-zero value means two facts
// were silently merged.
func BenchmarkEntryIDCollisions(b *testing.B) {
	seen := make(map[EntryID]string, b.N)
	collisions := 0
	p := uri("p")
	for i := 0; i < b.N; i++ {
		s := uri(fmt.Sprintf("s%d", i))
		o := resource.NewTypedLiteral(fmt.Sprintf("%d", i), "http://www.w3.org/2001/XMLSchema#integer")
		id := HashTriple(s, p, o)
		key := s.Key() + o.Key()
		if prev, ok := seen[id]; ok && prev != key {
			collisions++
		}
		seen[id] = key
	}
	b.ReportMetric(float64(collisions), "collisions")
}

func BenchmarkAdd(b *testing.B) {
	tx := New(Data, false)
	p := uri("p")
	for i := 0; i < b.N; i++ {
		tx.AddTriple(uri(fmt.Sprintf("s%d", i%1000)), p, uri(fmt.Sprintf("o%d", i)), Asserted)
	}
}
