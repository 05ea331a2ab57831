package ontology

import (
	"fmt"

	"github.com/c360studio/semtax/resource"
	"github.com/c360studio/semtax/taxonomy"
	"github.com/c360studio/semtax/vocabulary/owl"
)

// DataModel is the register of individual relations and property assertions.
// Negative property assertions live in a separate register.
type DataModel struct {
	*taxonomy.Taxonomy
	Negatives *taxonomy.Taxonomy
}

// IsAssertionPredicate reports whether entries with predicate p are property
// assertions rather than typing, identity or bookkeeping facts.
func IsAssertionPredicate(p resource.Resource) bool {
	switch p.Key() {
	case rdfType.Key(), owlSameAs.Key(), owlDifferentFrom.Key(), declaresLiteral.Key():
		return false
	}
	return !p.IsZero()
}

// Assertions returns the property assertions with predicate p, or all of them
// when p is zero.
func (m *DataModel) Assertions(p resource.Resource) []taxonomy.Entry {
	if !p.IsZero() {
		if !IsAssertionPredicate(p) {
			return nil
		}
		return m.Match(resource.Resource{}, p, resource.Resource{})
	}
	var out []taxonomy.Entry
	for _, e := range m.Entries() {
		if IsAssertionPredicate(e.Predicate) {
			out = append(out, e)
		}
	}
	return out
}

// Individuals returns every individual the data register knows: typed or
// declared individuals, both ends of identity relations, and subjects and URI
// objects of assertions.
func (m *DataModel) Individuals() resource.Set {
	set := resource.NewSet()
	for _, tx := range []*taxonomy.Taxonomy{m.Taxonomy, m.Negatives} {
		for _, e := range tx.Entries() {
			switch e.Predicate.Key() {
			case declaresLiteral.Key():
				continue
			case rdfType.Key():
				set.Add(e.Subject)
				continue
			}
			set.Add(e.Subject)
			if e.Object.IsURI() {
				set.Add(e.Object)
			}
		}
	}
	return set
}

// Literals returns every literal in the data register, declared or asserted.
func (m *DataModel) Literals() resource.Set {
	set := resource.NewSet()
	for _, tx := range []*taxonomy.Taxonomy{m.Taxonomy, m.Negatives} {
		for _, e := range tx.Entries() {
			if e.Object.IsLiteral() {
				set.Add(e.Object)
			}
		}
	}
	return set
}

// DeclareIndividual records i as an owl:NamedIndividual.
func (o *Ontology) DeclareIndividual(i resource.Resource) error {
	if err := addEntry(o.Data.Taxonomy, i, rdfType, owlNamedIndividual, taxonomy.Asserted); err != nil {
		return fmt.Errorf("declare individual: %w", err)
	}
	return nil
}

// AddClassType asserts that individual i is a member of class c.
func (o *Ontology) AddClassType(i, c resource.Resource) error {
	if err := addEntry(o.Data.Taxonomy, i, rdfType, c, taxonomy.Asserted); err != nil {
		return fmt.Errorf("add class type: %w", err)
	}
	return nil
}

// RemoveClassType retracts i's membership in c.
func (o *Ontology) RemoveClassType(i, c resource.Resource) bool {
	return o.Data.RemoveTriple(i, rdfType, c)
}

// AddSameAs asserts that a and b denote the same individual.
func (o *Ontology) AddSameAs(a, b resource.Resource) error {
	if err := addSymmetric(o.Data.Taxonomy, a, owlSameAs, b); err != nil {
		return fmt.Errorf("add same-as fact: %w", err)
	}
	return nil
}

// RemoveSameAs retracts a = b in both directions.
func (o *Ontology) RemoveSameAs(a, b resource.Resource) bool {
	return removeSymmetric(o.Data.Taxonomy, a, owlSameAs, b)
}

// AddDifferentFrom asserts that a and b denote different individuals.
func (o *Ontology) AddDifferentFrom(a, b resource.Resource) error {
	if err := addSymmetric(o.Data.Taxonomy, a, owlDifferentFrom, b); err != nil {
		return fmt.Errorf("add different-from fact: %w", err)
	}
	return nil
}

// RemoveDifferentFrom retracts a ≠ b in both directions.
func (o *Ontology) RemoveDifferentFrom(a, b resource.Resource) bool {
	return removeSymmetric(o.Data.Taxonomy, a, owlDifferentFrom, b)
}

// AddAssertion asserts (s p v). v may be an individual or a literal.
func (o *Ontology) AddAssertion(s, p, v resource.Resource) error {
	if !p.IsZero() && !IsAssertionPredicate(p) {
		return fmt.Errorf("add assertion: %s is not an assertion predicate", p)
	}
	if err := addEntry(o.Data.Taxonomy, s, p, v, taxonomy.Asserted); err != nil {
		return fmt.Errorf("add assertion: %w", err)
	}
	return nil
}

// RemoveAssertion retracts (s p v).
func (o *Ontology) RemoveAssertion(s, p, v resource.Resource) bool {
	return o.Data.RemoveTriple(s, p, v)
}

// AddNegativeAssertion records that (s p v) does not hold.
func (o *Ontology) AddNegativeAssertion(s, p, v resource.Resource) error {
	if err := addEntry(o.Data.Negatives, s, p, v, taxonomy.Asserted); err != nil {
		return fmt.Errorf("add negative assertion: %w", err)
	}
	return nil
}

// RemoveNegativeAssertion retracts the negative assertion (s p v).
func (o *Ontology) RemoveNegativeAssertion(s, p, v resource.Resource) bool {
	return o.Data.Negatives.RemoveTriple(s, p, v)
}

// DeclareLiteral adds l to the literal universe without asserting it about any
// individual.
func (o *Ontology) DeclareLiteral(l resource.Resource) error {
	if !l.IsZero() && !l.IsLiteral() {
		return fmt.Errorf("declare literal: %s is not a literal", l)
	}
	owner := o.IRI
	if owner.IsZero() {
		owner = iri(owl.Namespace)
	}
	if err := addEntry(o.Data.Taxonomy, owner, declaresLiteral, l, taxonomy.Asserted); err != nil {
		return fmt.Errorf("declare literal: %w", err)
	}
	return nil
}
