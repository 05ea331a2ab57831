package pathquery

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/c360studio/semtax/resource"
	"github.com/c360studio/semtax/taxonomy"
)

func ex(s string) resource.Resource { return resource.NewURI("http://example.org/" + s) }

func TestEvaluate(t *testing.T) {
	data := taxonomy.New(taxonomy.Data, false)
	add := func(s, p, o resource.Resource) { data.AddTriple(s, p, o, taxonomy.Asserted) }
	parent, name := ex("parent"), ex("name")

	add(ex("ann"), parent, ex("bob"))
	add(ex("bob"), parent, ex("cid"))
	add(ex("bob"), parent, ex("dee"))
	add(ex("cid"), parent, ex("eve"))
	add(ex("cid"), name, resource.NewPlainLiteral("Cid", ""))
	add(ex("dee"), name, resource.NewPlainLiteral("Dee", ""))

	tests := []struct {
		name  string
		steps []resource.Resource
		want  []Pair
	}{
		{"empty path", nil, nil},
		{"zero step", []resource.Resource{parent, {}}, nil},
		{"single step", []resource.Resource{name}, []Pair{
			{ex("cid"), resource.NewPlainLiteral("Cid", "")},
			{ex("dee"), resource.NewPlainLiteral("Dee", "")},
		}},
		{"grandparent", []resource.Resource{parent, parent}, []Pair{
			{ex("ann"), ex("cid")},
			{ex("ann"), ex("dee")},
			{ex("bob"), ex("eve")},
		}},
		{"great grandparent", []resource.Resource{parent, parent, parent}, []Pair{
			{ex("ann"), ex("eve")},
		}},
		{"grandchild names", []resource.Resource{parent, parent, name}, []Pair{
			{ex("ann"), resource.NewPlainLiteral("Cid", "")},
			{ex("ann"), resource.NewPlainLiteral("Dee", "")},
		}},
		{"dead end", []resource.Resource{name, parent}, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Evaluator{}.Evaluate(data, tt.steps)
			if len(tt.want) == 0 {
				assert.Empty(t, got)
				return
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestEvaluateCycle(t *testing.T) {
	data := taxonomy.New(taxonomy.Data, false)
	p := ex("p")
	data.AddTriple(ex("a"), p, ex("b"), taxonomy.Asserted)
	data.AddTriple(ex("b"), p, ex("a"), taxonomy.Asserted)

	got := Evaluator{}.Evaluate(data, []resource.Resource{p, p})
	assert.Equal(t, []Pair{{ex("a"), ex("a")}, {ex("b"), ex("b")}}, got)
	assert.Empty(t, Evaluator{}.Evaluate(nil, []resource.Resource{p}))
}
