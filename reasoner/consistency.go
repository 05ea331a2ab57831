package reasoner

import (
	"github.com/c360studio/semtax/resource"
)

// Checker decides whether a candidate relation is compatible with what the
// ontology already entails. Its predicates never modify the ontology and
// never fail; false means the relation would introduce a contradiction.
type Checker struct {
	r *Reasoner
}

// Checker returns the consistency checker for the reasoner's ontology.
func (r *Reasoner) Checker() *Checker { return &Checker{r: r} }

// CanSubClassOf reports whether child ⊑ parent is compatible: parent must not
// already be subsumed by, equivalent to or disjoint with child.
func (c *Checker) CanSubClassOf(child, parent resource.Resource) bool {
	return !c.r.IsSubClassOf(parent, child) &&
		!c.r.IsEquivalentClassOf(parent, child) &&
		!c.r.IsDisjointClassWith(parent, child)
}

// CanEquivalentClass reports whether a ≡ b is compatible: neither may be a
// subclass of the other and they must not be disjoint.
func (c *Checker) CanEquivalentClass(a, b resource.Resource) bool {
	return !c.r.IsSubClassOf(a, b) &&
		!c.r.IsSubClassOf(b, a) &&
		!c.r.IsDisjointClassWith(a, b)
}

// CanDisjointWith reports whether a and b may be declared disjoint: neither
// may subsume or be equivalent to the other. A class is never disjoint with
// itself.
func (c *Checker) CanDisjointWith(a, b resource.Resource) bool {
	if a.Equal(b) {
		return false
	}
	return !c.r.IsSubClassOf(a, b) &&
		!c.r.IsSuperClassOf(a, b) &&
		!c.r.IsEquivalentClassOf(a, b)
}

// CanSubPropertyOf is CanSubClassOf for properties.
func (c *Checker) CanSubPropertyOf(child, parent resource.Resource) bool {
	return !c.r.IsSubPropertyOf(parent, child) &&
		!c.r.IsEquivalentPropertyOf(parent, child) &&
		!c.r.IsDisjointPropertyWith(parent, child)
}

// CanEquivalentProperty is CanEquivalentClass for properties.
func (c *Checker) CanEquivalentProperty(a, b resource.Resource) bool {
	return !c.r.IsSubPropertyOf(a, b) &&
		!c.r.IsSubPropertyOf(b, a) &&
		!c.r.IsDisjointPropertyWith(a, b)
}

// CanPropertyDisjointWith is CanDisjointWith for properties.
func (c *Checker) CanPropertyDisjointWith(a, b resource.Resource) bool {
	if a.Equal(b) {
		return false
	}
	return !c.r.IsSubPropertyOf(a, b) &&
		!c.r.IsSuperPropertyOf(a, b) &&
		!c.r.IsEquivalentPropertyOf(a, b)
}

// CanInverseOf reports whether a and b may be declared inverses: neither may
// subsume or be equivalent to the other.
func (c *Checker) CanInverseOf(a, b resource.Resource) bool {
	return !c.r.IsSubPropertyOf(a, b) &&
		!c.r.IsSuperPropertyOf(a, b) &&
		!c.r.IsEquivalentPropertyOf(a, b)
}

// CanSameAs reports whether a and b may be declared the same individual.
func (c *Checker) CanSameAs(a, b resource.Resource) bool {
	return !c.r.IsDifferentIndividualFrom(a, b)
}

// CanDifferentFrom reports whether a and b may be declared different
// individuals.
func (c *Checker) CanDifferentFrom(a, b resource.Resource) bool {
	if a.Equal(b) {
		return false
	}
	return !c.r.IsSameIndividualAs(a, b)
}

// CanClassType reports whether individual i may be typed to class cls: none
// of the classes i (or anything the same as i) is typed to may be disjoint
// with cls.
func (c *Checker) CanClassType(i, cls resource.Resource) bool {
	if i.IsZero() || cls.IsZero() {
		return true
	}
	x := c.r.newExtensionCache()
	disjoint := x.classes.disjoints(cls)
	for _, t := range x.typeClosure(i).Slice() {
		if t.Equal(cls) {
			continue
		}
		if disjoint.Has(t) {
			return false
		}
	}
	return true
}

// CanAssert reports whether (s p o) is not already recorded as a negative
// assertion.
func (c *Checker) CanAssert(s, p, o resource.Resource) bool {
	return !c.r.ont.Data.Negatives.ContainsTriple(s, p, o)
}

// CanNegativeAssert reports whether (s p o) is not already asserted.
func (c *Checker) CanNegativeAssert(s, p, o resource.Resource) bool {
	return !c.r.ont.Data.ContainsTriple(s, p, o)
}

// CanTransitiveAssert reports whether asserting (a p b) for a transitive
// property p would leave the p-graph acyclic, i.e. a is not reachable from b
// through p. Non-transitive properties always pass.
func (c *Checker) CanTransitiveAssert(a, p, b resource.Resource) bool {
	if a.IsZero() || p.IsZero() || b.IsZero() {
		return true
	}
	if !c.r.ont.Properties.IsTransitive(p) {
		return true
	}
	if a.Equal(b) {
		return false
	}
	return !c.r.reachable(b, p).Has(a)
}

// CanPropertyChainMember would decide whether step may join chain's property
// chain axiom. The check is not implemented; it fails rather than claim
// compatibility.
func (c *Checker) CanPropertyChainMember(chain, step resource.Resource) (bool, error) {
	return false, ErrNotImplemented
}

// reachable returns every resource reachable from x through one or more
// p-assertions (p's sub-properties and equivalents included).
func (r *Reasoner) reachable(x, p resource.Resource) resource.Set {
	props := newWalker(r.propertyFamily()).closedUnder(p).Slice()
	out := resource.NewSet()
	visited := resource.NewSet(x)
	stack := []resource.Resource{x}
	for len(stack) > 0 {
		y := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		for _, q := range props {
			for _, z := range r.ont.Data.Objects(y, q) {
				if !z.IsURI() {
					continue
				}
				out.Add(z)
				if visited.Add(z) {
					stack = append(stack, z)
				}
			}
		}
	}
	return out
}
