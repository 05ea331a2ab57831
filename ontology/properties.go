package ontology

import (
	"fmt"

	"github.com/c360studio/semtax/resource"
	"github.com/c360studio/semtax/taxonomy"
)

// PropertyModel is the register of property relations.
type PropertyModel struct {
	*taxonomy.Taxonomy
}

// Chain returns the ordered steps of p's property chain axiom, or nil.
func (m *PropertyModel) Chain(p resource.Resource) []resource.Resource {
	steps, _ := readOwnedList(m.Taxonomy, p, owlPropertyChainAxiom)
	return steps
}

// ChainedProperties returns every property with a chain axiom.
func (m *PropertyModel) ChainedProperties() []resource.Resource {
	return subjectsOf(m.Taxonomy, owlPropertyChainAxiom)
}

// IsTransitive reports whether p is declared owl:TransitiveProperty.
func (m *PropertyModel) IsTransitive(p resource.Resource) bool {
	return m.ContainsTriple(p, rdfType, owlTransitiveProperty)
}

// IsSymmetric reports whether p is declared owl:SymmetricProperty.
func (m *PropertyModel) IsSymmetric(p resource.Resource) bool {
	return m.ContainsTriple(p, rdfType, owlSymmetricProperty)
}

// TransitiveProperties returns every property declared transitive.
func (m *PropertyModel) TransitiveProperties() []resource.Resource {
	return m.Subjects(rdfType, owlTransitiveProperty)
}

// SymmetricProperties returns every property declared symmetric.
func (m *PropertyModel) SymmetricProperties() []resource.Resource {
	return m.Subjects(rdfType, owlSymmetricProperty)
}

// Properties returns every resource the property model mentions as a
// property.
func (m *PropertyModel) Properties() []resource.Resource {
	set := resource.NewSet()
	for _, e := range m.Entries() {
		switch e.Predicate.Key() {
		case rdfType.Key(), owlPropertyChainAxiom.Key():
			set.Add(e.Subject)
		case rdfsSubPropOf.Key(), owlEquivalentProperty.Key(), owlPropertyDisjointWith.Key(), owlInverseOf.Key():
			set.Add(e.Subject)
			set.Add(e.Object)
		}
	}
	return set.Slice()
}

// DeclareObjectProperty records p as an owl:ObjectProperty.
func (o *Ontology) DeclareObjectProperty(p resource.Resource) error {
	if err := addEntry(o.Properties.Taxonomy, p, rdfType, owlObjectProperty, taxonomy.Asserted); err != nil {
		return fmt.Errorf("declare object property: %w", err)
	}
	return nil
}

// DeclareDatatypeProperty records p as an owl:DatatypeProperty.
func (o *Ontology) DeclareDatatypeProperty(p resource.Resource) error {
	if err := addEntry(o.Properties.Taxonomy, p, rdfType, owlDatatypeProperty, taxonomy.Asserted); err != nil {
		return fmt.Errorf("declare datatype property: %w", err)
	}
	return nil
}

// DeclareTransitive records p as an owl:TransitiveProperty.
func (o *Ontology) DeclareTransitive(p resource.Resource) error {
	if err := addEntry(o.Properties.Taxonomy, p, rdfType, owlTransitiveProperty, taxonomy.Asserted); err != nil {
		return fmt.Errorf("declare transitive property: %w", err)
	}
	return nil
}

// DeclareSymmetric records p as an owl:SymmetricProperty.
func (o *Ontology) DeclareSymmetric(p resource.Resource) error {
	if err := addEntry(o.Properties.Taxonomy, p, rdfType, owlSymmetricProperty, taxonomy.Asserted); err != nil {
		return fmt.Errorf("declare symmetric property: %w", err)
	}
	return nil
}

// AddSubPropertyOf asserts child ⊑ parent.
func (o *Ontology) AddSubPropertyOf(child, parent resource.Resource) error {
	if err := addEntry(o.Properties.Taxonomy, child, rdfsSubPropOf, parent, taxonomy.Asserted); err != nil {
		return fmt.Errorf("add subproperty axiom: %w", err)
	}
	return nil
}

// RemoveSubPropertyOf retracts child ⊑ parent.
func (o *Ontology) RemoveSubPropertyOf(child, parent resource.Resource) bool {
	return o.Properties.RemoveTriple(child, rdfsSubPropOf, parent)
}

// AddEquivalentProperty asserts a ≡ b and restates b ≡ a.
func (o *Ontology) AddEquivalentProperty(a, b resource.Resource) error {
	if err := addSymmetric(o.Properties.Taxonomy, a, owlEquivalentProperty, b); err != nil {
		return fmt.Errorf("add equivalent property axiom: %w", err)
	}
	return nil
}

// RemoveEquivalentProperty retracts a ≡ b in both directions.
func (o *Ontology) RemoveEquivalentProperty(a, b resource.Resource) bool {
	return removeSymmetric(o.Properties.Taxonomy, a, owlEquivalentProperty, b)
}

// AddPropertyDisjointWith asserts that a and b never link the same pair.
func (o *Ontology) AddPropertyDisjointWith(a, b resource.Resource) error {
	if err := addSymmetric(o.Properties.Taxonomy, a, owlPropertyDisjointWith, b); err != nil {
		return fmt.Errorf("add disjoint property axiom: %w", err)
	}
	return nil
}

// RemovePropertyDisjointWith retracts the disjointness of a and b.
func (o *Ontology) RemovePropertyDisjointWith(a, b resource.Resource) bool {
	return removeSymmetric(o.Properties.Taxonomy, a, owlPropertyDisjointWith, b)
}

// AddInverseOf asserts that a and b are inverses of each other.
func (o *Ontology) AddInverseOf(a, b resource.Resource) error {
	if err := addSymmetric(o.Properties.Taxonomy, a, owlInverseOf, b); err != nil {
		return fmt.Errorf("add inverse property axiom: %w", err)
	}
	return nil
}

// RemoveInverseOf retracts the inverse relation in both directions.
func (o *Ontology) RemoveInverseOf(a, b resource.Resource) bool {
	return removeSymmetric(o.Properties.Taxonomy, a, owlInverseOf, b)
}

// AddPropertyChain declares p as implied by following steps in order,
// replacing any earlier chain for p.
func (o *Ontology) AddPropertyChain(p resource.Resource, steps ...resource.Resource) error {
	if err := writeList(o.Properties.Taxonomy, p, owlPropertyChainAxiom, steps, taxonomy.Asserted); err != nil {
		return fmt.Errorf("add property chain axiom: %w", err)
	}
	return nil
}

// RemovePropertyChain retracts p's chain axiom.
func (o *Ontology) RemovePropertyChain(p resource.Resource) {
	removeList(o.Properties.Taxonomy, p, owlPropertyChainAxiom)
}
