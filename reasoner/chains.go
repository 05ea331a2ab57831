package reasoner

import (
	"github.com/c360studio/semtax/resource"
	"github.com/c360studio/semtax/taxonomy"
)

// expandChain flattens p's chain axiom into plain property steps. A step
// that has a chain of its own is replaced by its expansion unless it is
// already being expanded, in which case it is kept as is.
func (r *Reasoner) expandChain(p resource.Resource, expanding resource.Set) []resource.Resource {
	if !expanding.Add(p) {
		return []resource.Resource{p}
	}
	defer expanding.Delete(p)

	var out []resource.Resource
	for _, step := range r.ont.Properties.Chain(p) {
		if len(r.ont.Properties.Chain(step)) > 0 && !expanding.Has(step) {
			out = append(out, r.expandChain(step, expanding)...)
			continue
		}
		out = append(out, step)
	}
	return out
}

// ChainSteps returns p's property chain with nested chains flattened.
func (r *Reasoner) ChainSteps(p resource.Resource) []resource.Resource {
	if p.IsZero() {
		return nil
	}
	return r.expandChain(p, resource.NewSet())
}

// ChainAssertionsOf evaluates p's property chain over the data register and
// returns the implied assertions (start p end), tagged DerivedByReasoner.
// Properties without a chain yield an empty register.
func (r *Reasoner) ChainAssertionsOf(p resource.Resource) *taxonomy.Taxonomy {
	out := taxonomy.New(taxonomy.Data, false)
	steps := r.ChainSteps(p)
	if len(steps) == 0 {
		return out
	}
	for _, pair := range r.paths.Evaluate(r.ont.Data.Taxonomy, steps) {
		out.AddTriple(pair.Start, p, pair.End, taxonomy.DerivedByReasoner)
	}
	return out
}
