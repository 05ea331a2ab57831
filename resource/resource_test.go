package resource

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/c360studio/semtax/vocabulary/owl"
)

func TestKeys(t *testing.T) {
	tests := []struct {
		name string
		r    Resource
		want string
	}{
		{"uri", NewURI("http://example.org/Dog"), "<http://example.org/Dog>"},
		{"simple literal", NewPlainLiteral("rex", ""), `"rex"`},
		{"xsd string folds to simple", NewTypedLiteral("rex", owl.XSDString), `"rex"`},
		{"language literal", NewPlainLiteral("chien", "FR"), `"chien"@fr`},
		{"typed literal", NewTypedLiteral("42", owl.XSDInt), `"42"^^<` + owl.XSDInt + `>`},
		{"escaped quotes", NewPlainLiteral(`say "hi"`, ""), `"say \"hi\""`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.r.Key())
		})
	}
}

func TestDatatypes(t *testing.T) {
	assert.Equal(t, owl.XSDString, NewPlainLiteral("a", "").Datatype())
	assert.Equal(t, owl.RDFLangString, NewPlainLiteral("a", "en").Datatype())
	assert.Equal(t, owl.XSDInt, NewTypedLiteral("1", owl.XSDInt).Datatype())
	assert.Empty(t, NewURI("http://example.org/x").Datatype())
}

func TestZeroResource(t *testing.T) {
	var r Resource
	assert.True(t, r.IsZero())
	assert.True(t, NewURI("").IsZero())
	assert.Equal(t, KindNone, r.Kind())
	assert.Equal(t, "none", r.Kind().String())
}

func TestIdentity(t *testing.T) {
	a := NewURI("http://example.org/a")
	assert.True(t, a.Equal(NewURI("http://example.org/a")))
	assert.False(t, a.Equal(NewPlainLiteral("http://example.org/a", "")))
	assert.False(t, NewTypedLiteral("1", owl.XSDInt).Equal(NewTypedLiteral("1", owl.XSDLong)))
}

func TestSet(t *testing.T) {
	a := NewURI("http://example.org/a")
	b := NewURI("http://example.org/b")
	c := NewURI("http://example.org/c")

	s := NewSet(b, a, Resource{})
	assert.Len(t, s, 2)
	assert.False(t, s.Add(a))
	assert.True(t, s.Add(c))

	other := NewSet(c)
	assert.True(t, s.Intersects(other))
	assert.Equal(t, []Resource{c}, s.Intersect(other).Slice())
	assert.Equal(t, []Resource{a, b}, s.Difference(other).Slice())

	clone := s.Clone()
	clone.Delete(a)
	assert.True(t, s.Has(a))
	assert.False(t, clone.Has(a))
}
