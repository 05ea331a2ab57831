package reasoner

import (
	"fmt"
	"log/slog"

	"github.com/c360studio/semtax/resource"
)

// Modeler is the checked write path: every method consults the Checker
// before calling the matching ontology helper and refuses relations the
// ontology contradicts. Callers that want unchecked writes use the ontology
// directly.
type Modeler struct {
	r      *Reasoner
	check  *Checker
	logger *slog.Logger
}

// NewModeler creates a modeler writing into r's ontology.
func NewModeler(r *Reasoner) *Modeler {
	return &Modeler{r: r, check: r.Checker(), logger: r.logger}
}

func (m *Modeler) reject(relation string, a, b resource.Resource) error {
	m.logger.Warn("Rejected inconsistent relation",
		"relation", relation,
		"subject", a.String(),
		"object", b.String())
	return fmt.Errorf("%w: %s %s %s", ErrInconsistent, a, relation, b)
}

// AddSubClassOf asserts child ⊑ parent if compatible.
func (m *Modeler) AddSubClassOf(child, parent resource.Resource) error {
	if !m.check.CanSubClassOf(child, parent) {
		return m.reject("subClassOf", child, parent)
	}
	return m.r.ont.AddSubClassOf(child, parent)
}

// AddEquivalentClass asserts a ≡ b if compatible.
func (m *Modeler) AddEquivalentClass(a, b resource.Resource) error {
	if !m.check.CanEquivalentClass(a, b) {
		return m.reject("equivalentClass", a, b)
	}
	return m.r.ont.AddEquivalentClass(a, b)
}

// AddDisjointWith declares a and b disjoint if compatible.
func (m *Modeler) AddDisjointWith(a, b resource.Resource) error {
	if !m.check.CanDisjointWith(a, b) {
		return m.reject("disjointWith", a, b)
	}
	return m.r.ont.AddDisjointWith(a, b)
}

// AddSubPropertyOf asserts child ⊑ parent if compatible.
func (m *Modeler) AddSubPropertyOf(child, parent resource.Resource) error {
	if !m.check.CanSubPropertyOf(child, parent) {
		return m.reject("subPropertyOf", child, parent)
	}
	return m.r.ont.AddSubPropertyOf(child, parent)
}

// AddEquivalentProperty asserts a ≡ b if compatible.
func (m *Modeler) AddEquivalentProperty(a, b resource.Resource) error {
	if !m.check.CanEquivalentProperty(a, b) {
		return m.reject("equivalentProperty", a, b)
	}
	return m.r.ont.AddEquivalentProperty(a, b)
}

// AddPropertyDisjointWith declares a and b disjoint if compatible.
func (m *Modeler) AddPropertyDisjointWith(a, b resource.Resource) error {
	if !m.check.CanPropertyDisjointWith(a, b) {
		return m.reject("propertyDisjointWith", a, b)
	}
	return m.r.ont.AddPropertyDisjointWith(a, b)
}

// AddInverseOf declares a and b inverses if compatible.
func (m *Modeler) AddInverseOf(a, b resource.Resource) error {
	if !m.check.CanInverseOf(a, b) {
		return m.reject("inverseOf", a, b)
	}
	return m.r.ont.AddInverseOf(a, b)
}

// AddSameAs declares a and b the same individual if compatible.
func (m *Modeler) AddSameAs(a, b resource.Resource) error {
	if !m.check.CanSameAs(a, b) {
		return m.reject("sameAs", a, b)
	}
	return m.r.ont.AddSameAs(a, b)
}

// AddDifferentFrom declares a and b different individuals if compatible.
func (m *Modeler) AddDifferentFrom(a, b resource.Resource) error {
	if !m.check.CanDifferentFrom(a, b) {
		return m.reject("differentFrom", a, b)
	}
	return m.r.ont.AddDifferentFrom(a, b)
}

// AddClassType types i to c if compatible.
func (m *Modeler) AddClassType(i, c resource.Resource) error {
	if !m.check.CanClassType(i, c) {
		return m.reject("type", i, c)
	}
	return m.r.ont.AddClassType(i, c)
}

// AddAssertion asserts (s p o) unless it is negated or, for a transitive p,
// would close a cycle.
func (m *Modeler) AddAssertion(s, p, o resource.Resource) error {
	if !m.check.CanAssert(s, p, o) {
		return m.reject(p.String(), s, o)
	}
	if !m.check.CanTransitiveAssert(s, p, o) {
		return m.reject(p.String(), s, o)
	}
	return m.r.ont.AddAssertion(s, p, o)
}

// AddNegativeAssertion records that (s p o) does not hold unless it is
// already asserted.
func (m *Modeler) AddNegativeAssertion(s, p, o resource.Resource) error {
	if !m.check.CanNegativeAssert(s, p, o) {
		return m.reject("not "+p.String(), s, o)
	}
	return m.r.ont.AddNegativeAssertion(s, p, o)
}
