package ontology

import (
	"fmt"

	"github.com/c360studio/semtax/resource"
	"github.com/c360studio/semtax/taxonomy"
	"github.com/c360studio/semtax/vocabulary/owl"
)

// DeclareClass records c as an owl:Class.
func (o *Ontology) DeclareClass(c resource.Resource) error {
	if err := addEntry(o.Classes.Taxonomy, c, rdfType, owlClass, taxonomy.Asserted); err != nil {
		return fmt.Errorf("declare class: %w", err)
	}
	return nil
}

// DeclareDatatype records c as an rdfs:Datatype, making it a literal-range
// class matched by datatype.
func (o *Ontology) DeclareDatatype(c resource.Resource) error {
	if err := addEntry(o.Classes.Taxonomy, c, rdfType, rdfsDatatype, taxonomy.Asserted); err != nil {
		return fmt.Errorf("declare datatype: %w", err)
	}
	return nil
}

// AddSubClassOf asserts child ⊑ parent.
func (o *Ontology) AddSubClassOf(child, parent resource.Resource) error {
	if err := addEntry(o.Classes.Taxonomy, child, rdfsSubClassOf, parent, taxonomy.Asserted); err != nil {
		return fmt.Errorf("add subclass axiom: %w", err)
	}
	return nil
}

// RemoveSubClassOf retracts child ⊑ parent.
func (o *Ontology) RemoveSubClassOf(child, parent resource.Resource) bool {
	return o.Classes.RemoveTriple(child, rdfsSubClassOf, parent)
}

// AddEquivalentClass asserts a ≡ b and restates b ≡ a.
func (o *Ontology) AddEquivalentClass(a, b resource.Resource) error {
	if err := addSymmetric(o.Classes.Taxonomy, a, owlEquivalentClass, b); err != nil {
		return fmt.Errorf("add equivalent class axiom: %w", err)
	}
	return nil
}

// RemoveEquivalentClass retracts a ≡ b in both directions.
func (o *Ontology) RemoveEquivalentClass(a, b resource.Resource) bool {
	return removeSymmetric(o.Classes.Taxonomy, a, owlEquivalentClass, b)
}

// AddDisjointWith asserts that a and b share no members.
func (o *Ontology) AddDisjointWith(a, b resource.Resource) error {
	if err := addSymmetric(o.Classes.Taxonomy, a, owlDisjointWith, b); err != nil {
		return fmt.Errorf("add disjoint class axiom: %w", err)
	}
	return nil
}

// RemoveDisjointWith retracts the disjointness of a and b.
func (o *Ontology) RemoveDisjointWith(a, b resource.Resource) bool {
	return removeSymmetric(o.Classes.Taxonomy, a, owlDisjointWith, b)
}

// DeclareUnion defines c as the union of operands.
func (o *Ontology) DeclareUnion(c resource.Resource, operands ...resource.Resource) error {
	return o.declareComposite(c, owlUnionOf, operands, "declare union")
}

// DeclareIntersection defines c as the intersection of operands.
func (o *Ontology) DeclareIntersection(c resource.Resource, operands ...resource.Resource) error {
	return o.declareComposite(c, owlIntersectionOf, operands, "declare intersection")
}

// DeclareEnumeration defines c as exactly the listed individuals.
func (o *Ontology) DeclareEnumeration(c resource.Resource, members ...resource.Resource) error {
	return o.declareComposite(c, owlOneOf, members, "declare enumeration")
}

func (o *Ontology) declareComposite(c, pred resource.Resource, items []resource.Resource, op string) error {
	if err := o.DeclareClass(c); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if err := writeList(o.Classes.Taxonomy, c, pred, items, taxonomy.Asserted); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// DeclareComplement defines c as the individuals outside operand.
func (o *Ontology) DeclareComplement(c, operand resource.Resource) error {
	if err := o.DeclareClass(c); err != nil {
		return fmt.Errorf("declare complement: %w", err)
	}
	for _, old := range o.Classes.Objects(c, owlComplementOf) {
		o.Classes.RemoveTriple(c, owlComplementOf, old)
	}
	if err := addEntry(o.Classes.Taxonomy, c, owlComplementOf, operand, taxonomy.Asserted); err != nil {
		return fmt.Errorf("declare complement: %w", err)
	}
	return nil
}

// DeclareDataRange defines c as a datatype holding exactly values.
func (o *Ontology) DeclareDataRange(c resource.Resource, values ...resource.Resource) error {
	if err := o.DeclareDatatype(c); err != nil {
		return fmt.Errorf("declare data range: %w", err)
	}
	if err := writeList(o.Classes.Taxonomy, c, owlOneOf, values, taxonomy.Asserted); err != nil {
		return fmt.Errorf("declare data range: %w", err)
	}
	return nil
}

// DeclareRestriction records r as an owl:Restriction on r.Property.
// Cardinality bounds equal to each other are written as an exact cardinality.
func (o *Ontology) DeclareRestriction(r Restriction) error {
	if err := r.validate(); err != nil {
		return fmt.Errorf("declare restriction: %w", err)
	}
	tx := o.Classes.Taxonomy
	add := func(p, v resource.Resource) error {
		return addEntry(tx, r.IRI, p, v, taxonomy.Asserted)
	}
	write := func() error {
		if err := add(rdfType, owlRestriction); err != nil {
			return err
		}
		if err := add(owlOnProperty, r.Property); err != nil {
			return err
		}
		switch r.Kind {
		case Cardinality:
			return writeBounds(add, r, owlCardinality, owlMinCardinality, owlMaxCardinality)
		case QualifiedCardinality:
			onClass := owlOnClass
			if o.Classes.IsDatatype(r.Class) {
				onClass = owlOnDataRange
			}
			if err := add(onClass, r.Class); err != nil {
				return err
			}
			return writeBounds(add, r, owlQualifiedCardinality, owlMinQualified, owlMaxQualified)
		case AllValuesFrom:
			return add(owlAllValuesFrom, r.Class)
		case SomeValuesFrom:
			return add(owlSomeValuesFrom, r.Class)
		case HasSelf:
			return add(owlHasSelf, resource.NewTypedLiteral("true", owl.XSDBoolean))
		case HasValue:
			return add(owlHasValue, r.Value)
		default:
			return fmt.Errorf("unknown restriction kind %d", r.Kind)
		}
	}
	if err := write(); err != nil {
		return fmt.Errorf("declare restriction: %w", err)
	}
	return nil
}

// validate rejects a restriction that could only be written partially.
func (r Restriction) validate() error {
	if r.IRI.IsZero() {
		return &taxonomy.ModelError{Component: "subject"}
	}
	if r.Property.IsZero() {
		return &taxonomy.ModelError{Component: "object"}
	}
	switch r.Kind {
	case QualifiedCardinality, AllValuesFrom, SomeValuesFrom:
		if r.Class.IsZero() {
			return &taxonomy.ModelError{Component: "object"}
		}
	case HasValue:
		if r.Value.IsZero() {
			return &taxonomy.ModelError{Component: "object"}
		}
	case Cardinality, HasSelf:
	default:
		return fmt.Errorf("unknown restriction kind %d", r.Kind)
	}
	return nil
}

func writeBounds(add func(p, v resource.Resource) error, r Restriction, exact, lo, hi resource.Resource) error {
	if r.Min > 0 && r.Min == r.Max {
		return add(exact, nonNegative(r.Min))
	}
	if r.Min > 0 {
		if err := add(lo, nonNegative(r.Min)); err != nil {
			return err
		}
	}
	if r.Max > 0 {
		if err := add(hi, nonNegative(r.Max)); err != nil {
			return err
		}
	}
	if r.Min <= 0 && r.Max <= 0 {
		return add(lo, nonNegative(0))
	}
	return nil
}

// AddHasKey declares the key properties of c, replacing any earlier keys.
func (o *Ontology) AddHasKey(c resource.Resource, properties ...resource.Resource) error {
	if err := writeList(o.Classes.Taxonomy, c, owlHasKey, properties, taxonomy.Asserted); err != nil {
		return fmt.Errorf("add key axiom: %w", err)
	}
	return nil
}
