package reasoner

import (
	"github.com/c360studio/semtax/resource"
	"github.com/c360studio/semtax/taxonomy"
)

// family describes one relation family inside a register. sub is zero for
// families without subsumption (individuals).
type family struct {
	name     string
	tx       *taxonomy.Taxonomy
	sub      resource.Resource
	eq       resource.Resource
	disjoint resource.Resource
}

const (
	familyClass      = "class"
	familyProperty   = "property"
	familyIndividual = "individual"
)

func (r *Reasoner) classFamily() family {
	return family{
		name:     familyClass,
		tx:       r.ont.Classes.Taxonomy,
		sub:      rdfsSubClassOf,
		eq:       owlEquivalentClass,
		disjoint: owlDisjointWith,
	}
}

func (r *Reasoner) propertyFamily() family {
	return family{
		name:     familyProperty,
		tx:       r.ont.Properties.Taxonomy,
		sub:      rdfsSubPropOf,
		eq:       owlEquivalentProperty,
		disjoint: owlPropertyDisjointWith,
	}
}

func (r *Reasoner) individualFamily() family {
	return family{
		name:     familyIndividual,
		tx:       r.ont.Data.Taxonomy,
		eq:       owlSameAs,
		disjoint: owlDifferentFrom,
	}
}

// walker computes closures within one family. Results are memoized for the
// lifetime of the walker, which never outlives one top-level call.
type walker struct {
	f     family
	eqs   map[string]resource.Set
	ups   map[string]resource.Set
	downs map[string]resource.Set
}

func newWalker(f family) *walker {
	return &walker{
		f:     f,
		eqs:   make(map[string]resource.Set),
		ups:   make(map[string]resource.Set),
		downs: make(map[string]resource.Set),
	}
}

// neighbours follows p from x in both directions.
func (w *walker) neighbours(x, p resource.Resource) []resource.Resource {
	if p.IsZero() {
		return nil
	}
	out := w.f.tx.Objects(x, p)
	return append(out, w.f.tx.Subjects(p, x)...)
}

// equivalents returns everything reachable from x through the family's
// equivalence relation, without x.
func (w *walker) equivalents(x resource.Resource) resource.Set {
	if x.IsZero() {
		return resource.NewSet()
	}
	if s, ok := w.eqs[x.Key()]; ok {
		return s
	}
	visited := resource.NewSet(x)
	stack := []resource.Resource{x}
	for len(stack) > 0 {
		y := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		for _, z := range w.neighbours(y, w.f.eq) {
			if visited.Add(z) {
				stack = append(stack, z)
			}
		}
	}
	visited.Delete(x)
	w.eqs[x.Key()] = visited
	return visited
}

// hierarchy walks subsumption edges upward or downward from x. The walk
// interleaves the subsumption step with the equivalence lift under a single
// visited set, so cycles through either relation terminate. Equivalents of x
// itself seed the walk but are not results; equivalents of anything reached
// by a subsumption step are.
func (w *walker) hierarchy(x resource.Resource, up bool) resource.Set {
	if x.IsZero() || w.f.sub.IsZero() {
		return resource.NewSet()
	}
	memo := w.downs
	if up {
		memo = w.ups
	}
	if s, ok := memo[x.Key()]; ok {
		return s
	}

	type state struct {
		r     resource.Resource
		found bool
	}
	visited := make(map[string]struct{})
	visit := func(s state) bool {
		k := s.r.Key()
		if s.found {
			k = "+" + k
		}
		if _, ok := visited[k]; ok {
			return false
		}
		visited[k] = struct{}{}
		return true
	}

	result := resource.NewSet()
	start := state{r: x}
	visit(start)
	stack := []state{start}
	for len(stack) > 0 {
		s := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if s.found {
			result.Add(s.r)
		}
		for _, e := range w.neighbours(s.r, w.f.eq) {
			if next := (state{r: e, found: s.found}); visit(next) {
				stack = append(stack, next)
			}
		}
		var step []resource.Resource
		if up {
			step = w.f.tx.Objects(s.r, w.f.sub)
		} else {
			step = w.f.tx.Subjects(w.f.sub, s.r)
		}
		for _, n := range step {
			if next := (state{r: n, found: true}); visit(next) {
				stack = append(stack, next)
			}
		}
	}
	result.Delete(x)
	memo[x.Key()] = result
	return result
}

func (w *walker) supers(x resource.Resource) resource.Set { return w.hierarchy(x, true) }
func (w *walker) subs(x resource.Resource) resource.Set   { return w.hierarchy(x, false) }

// disjoints applies the disjointness rules in one pass: anything x is, or is
// equivalent to, or is subsumed by, inherits that resource's direct
// disjoints, and each disjoint brings its equivalents and everything it
// subsumes.
func (w *walker) disjoints(x resource.Resource) resource.Set {
	out := resource.NewSet()
	if x.IsZero() {
		return out
	}
	sources := resource.NewSet(x)
	sources.AddAll(w.equivalents(x))
	sources.AddAll(w.supers(x))
	for _, s := range sources.Slice() {
		for _, d := range w.neighbours(s, w.f.disjoint) {
			out.Add(d)
			out.AddAll(w.equivalents(d))
			out.AddAll(w.subs(d))
		}
	}
	out.Delete(x)
	return out
}

// closedUnder returns x together with its equivalents and everything it
// subsumes. It is the set of resources whose facts count as facts about x.
func (w *walker) closedUnder(x resource.Resource) resource.Set {
	out := resource.NewSet(x)
	out.AddAll(w.equivalents(x))
	out.AddAll(w.subs(x))
	return out
}

func (r *Reasoner) query(f family, x resource.Resource, fn func(*walker, resource.Resource) resource.Set) []resource.Resource {
	r.metrics.recordClosure(f.name)
	if x.IsZero() {
		return nil
	}
	return fn(newWalker(f), x).Slice()
}

func (r *Reasoner) check(f family, a, b resource.Resource, fn func(*walker, resource.Resource) resource.Set) bool {
	r.metrics.recordClosure(f.name)
	if a.IsZero() || b.IsZero() {
		return false
	}
	return fn(newWalker(f), a).Has(b)
}

// SubClassesOf returns every class subsumed by c.
func (r *Reasoner) SubClassesOf(c resource.Resource) []resource.Resource {
	return r.query(r.classFamily(), c, (*walker).subs)
}

// SuperClassesOf returns every class that subsumes c.
func (r *Reasoner) SuperClassesOf(c resource.Resource) []resource.Resource {
	return r.query(r.classFamily(), c, (*walker).supers)
}

// EquivalentClassesOf returns every class equivalent to c.
func (r *Reasoner) EquivalentClassesOf(c resource.Resource) []resource.Resource {
	return r.query(r.classFamily(), c, (*walker).equivalents)
}

// DisjointClassesWith returns every class disjoint with c.
func (r *Reasoner) DisjointClassesWith(c resource.Resource) []resource.Resource {
	return r.query(r.classFamily(), c, (*walker).disjoints)
}

// IsSubClassOf reports whether child is subsumed by parent.
func (r *Reasoner) IsSubClassOf(child, parent resource.Resource) bool {
	return r.check(r.classFamily(), child, parent, (*walker).supers)
}

// IsSuperClassOf reports whether parent subsumes child.
func (r *Reasoner) IsSuperClassOf(parent, child resource.Resource) bool {
	return r.IsSubClassOf(child, parent)
}

// IsEquivalentClassOf reports whether a and b are equivalent classes.
func (r *Reasoner) IsEquivalentClassOf(a, b resource.Resource) bool {
	return r.check(r.classFamily(), a, b, (*walker).equivalents)
}

// IsDisjointClassWith reports whether a and b are disjoint classes.
func (r *Reasoner) IsDisjointClassWith(a, b resource.Resource) bool {
	return r.check(r.classFamily(), a, b, (*walker).disjoints)
}

// SubPropertiesOf returns every property subsumed by p.
func (r *Reasoner) SubPropertiesOf(p resource.Resource) []resource.Resource {
	return r.query(r.propertyFamily(), p, (*walker).subs)
}

// SuperPropertiesOf returns every property that subsumes p.
func (r *Reasoner) SuperPropertiesOf(p resource.Resource) []resource.Resource {
	return r.query(r.propertyFamily(), p, (*walker).supers)
}

// EquivalentPropertiesOf returns every property equivalent to p.
func (r *Reasoner) EquivalentPropertiesOf(p resource.Resource) []resource.Resource {
	return r.query(r.propertyFamily(), p, (*walker).equivalents)
}

// DisjointPropertiesWith returns every property disjoint with p.
func (r *Reasoner) DisjointPropertiesWith(p resource.Resource) []resource.Resource {
	return r.query(r.propertyFamily(), p, (*walker).disjoints)
}

// IsSubPropertyOf reports whether child is subsumed by parent.
func (r *Reasoner) IsSubPropertyOf(child, parent resource.Resource) bool {
	return r.check(r.propertyFamily(), child, parent, (*walker).supers)
}

// IsSuperPropertyOf reports whether parent subsumes child.
func (r *Reasoner) IsSuperPropertyOf(parent, child resource.Resource) bool {
	return r.IsSubPropertyOf(child, parent)
}

// IsEquivalentPropertyOf reports whether a and b are equivalent properties.
func (r *Reasoner) IsEquivalentPropertyOf(a, b resource.Resource) bool {
	return r.check(r.propertyFamily(), a, b, (*walker).equivalents)
}

// IsDisjointPropertyWith reports whether a and b are disjoint properties.
func (r *Reasoner) IsDisjointPropertyWith(a, b resource.Resource) bool {
	return r.check(r.propertyFamily(), a, b, (*walker).disjoints)
}

// inverses returns the inverses of p and of its equivalents, each lifted by
// equivalence.
func (w *walker) inverses(p resource.Resource) resource.Set {
	out := resource.NewSet()
	if p.IsZero() {
		return out
	}
	sources := resource.NewSet(p)
	sources.AddAll(w.equivalents(p))
	for _, s := range sources.Slice() {
		for _, q := range w.neighbours(s, owlInverseOf) {
			out.Add(q)
			out.AddAll(w.equivalents(q))
		}
	}
	out.Delete(p)
	return out
}

// InversePropertiesOf returns every property inverse to p.
func (r *Reasoner) InversePropertiesOf(p resource.Resource) []resource.Resource {
	return r.query(r.propertyFamily(), p, (*walker).inverses)
}

// IsInversePropertyOf reports whether a and b are inverse properties.
func (r *Reasoner) IsInversePropertyOf(a, b resource.Resource) bool {
	return r.check(r.propertyFamily(), a, b, (*walker).inverses)
}

// SameIndividualsOf returns every individual asserted, directly or
// transitively, to be the same as i.
func (r *Reasoner) SameIndividualsOf(i resource.Resource) []resource.Resource {
	return r.query(r.individualFamily(), i, (*walker).equivalents)
}

// DifferentIndividualsOf returns every individual different from i,
// propagated through sameAs on both sides.
func (r *Reasoner) DifferentIndividualsOf(i resource.Resource) []resource.Resource {
	return r.query(r.individualFamily(), i, (*walker).disjoints)
}

// IsSameIndividualAs reports whether a and b denote the same individual.
func (r *Reasoner) IsSameIndividualAs(a, b resource.Resource) bool {
	return r.check(r.individualFamily(), a, b, (*walker).equivalents)
}

// IsDifferentIndividualFrom reports whether a and b are different
// individuals.
func (r *Reasoner) IsDifferentIndividualFrom(a, b resource.Resource) bool {
	return r.check(r.individualFamily(), a, b, (*walker).disjoints)
}
