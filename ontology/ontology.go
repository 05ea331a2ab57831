package ontology

import (
	"fmt"
	"sync"

	"github.com/c360studio/semtax/resource"
	"github.com/c360studio/semtax/taxonomy"
	"github.com/c360studio/semtax/vocabulary/owl"
)

// Seed entries, parsed once and never mutated.
var (
	seedEntries []taxonomy.Entry
	seedErr     error
	seedOnce    sync.Once
)

func seed() ([]taxonomy.Entry, error) {
	seedOnce.Do(func() {
		facts, err := owl.LoadSeed()
		if err != nil {
			seedErr = err
			return
		}
		entries := make([]taxonomy.Entry, 0, len(facts))
		for _, f := range facts {
			e, err := taxonomy.NewEntry(resource.NewURI(f.Subject), resource.NewURI(f.Predicate), resource.NewURI(f.Object), taxonomy.Asserted)
			if err != nil {
				seedErr = fmt.Errorf("build seed entry: %w", err)
				return
			}
			entries = append(entries, e)
		}
		seedEntries = entries
	})
	return seedEntries, seedErr
}

// SeedEntries returns a copy of the built-in vocabulary entries.
func SeedEntries() []taxonomy.Entry {
	entries, err := seed()
	if err != nil {
		panic("ontology: embedded seed vocabulary is invalid: " + err.Error())
	}
	out := make([]taxonomy.Entry, len(entries))
	copy(out, entries)
	return out
}

// Option configures New.
type Option func(*options)

type options struct {
	seed bool
}

// WithoutSeed creates an ontology with empty registers.
func WithoutSeed() Option {
	return func(o *options) { o.seed = false }
}

// WithSeed sets whether the built-in vocabulary is merged.
func WithSeed(enabled bool) Option {
	return func(o *options) { o.seed = enabled }
}

// Ontology owns a class model, a property model and a data register.
type Ontology struct {
	IRI        resource.Resource
	Classes    *ClassModel
	Properties *PropertyModel
	Data       *DataModel
}

// New creates an ontology identified by iri. The seed vocabulary is copied
// into the class model so that changes to one ontology never reach another.
func New(iri string, opts ...Option) *Ontology {
	cfg := options{seed: true}
	for _, opt := range opts {
		opt(&cfg)
	}

	o := &Ontology{
		IRI:        resource.NewURI(iri),
		Classes:    &ClassModel{Taxonomy: taxonomy.New(taxonomy.Model, false)},
		Properties: &PropertyModel{Taxonomy: taxonomy.New(taxonomy.Model, false)},
		Data: &DataModel{
			Taxonomy:  taxonomy.New(taxonomy.Data, false),
			Negatives: taxonomy.New(taxonomy.Data, false),
		},
	}
	if cfg.seed {
		for _, e := range SeedEntries() {
			o.Classes.Add(e)
		}
	}
	return o
}

// Register names a taxonomy owned by an ontology.
type Register struct {
	Name     string
	Taxonomy *taxonomy.Taxonomy
}

// Register names used by Registers and RegisterByName.
const (
	RegisterClasses    = "classes"
	RegisterProperties = "properties"
	RegisterData       = "data"
	RegisterNegatives  = "negatives"
)

// Registers lists the ontology's taxonomies in a fixed order.
func (o *Ontology) Registers() []Register {
	return []Register{
		{Name: RegisterClasses, Taxonomy: o.Classes.Taxonomy},
		{Name: RegisterProperties, Taxonomy: o.Properties.Taxonomy},
		{Name: RegisterData, Taxonomy: o.Data.Taxonomy},
		{Name: RegisterNegatives, Taxonomy: o.Data.Negatives},
	}
}

// RegisterByName returns the taxonomy registered under name.
func (o *Ontology) RegisterByName(name string) (*taxonomy.Taxonomy, bool) {
	for _, r := range o.Registers() {
		if r.Name == name {
			return r.Taxonomy, true
		}
	}
	return nil, false
}

// Len returns the total number of entries across registers.
func (o *Ontology) Len() int {
	n := 0
	for _, r := range o.Registers() {
		n += r.Taxonomy.Len()
	}
	return n
}

// Clone returns an independent copy.
func (o *Ontology) Clone() *Ontology {
	out := New(o.IRI.IRI(), WithoutSeed())
	out.Merge(o)
	return out
}

// Merge adds every entry of other into the matching register of o and returns
// how many entries were new.
func (o *Ontology) Merge(other *Ontology) int {
	if other == nil {
		return 0
	}
	added := 0
	theirs := other.Registers()
	for i, r := range o.Registers() {
		added += r.Taxonomy.Merge(theirs[i].Taxonomy)
	}
	return added
}

// Inferences returns a seedless ontology holding only the entries of o that
// were derived by construction or by a reasoner.
func (o *Ontology) Inferences() *Ontology {
	out := New(o.IRI.IRI(), WithoutSeed())
	theirs := o.Registers()
	for i, r := range out.Registers() {
		r.Taxonomy.Merge(theirs[i].Taxonomy.SelectByProvenance(taxonomy.DerivedByConstruction, taxonomy.DerivedByReasoner))
	}
	return out
}

// ClearInferences removes every reasoner-derived entry and returns the count.
// Asserted and construction-derived entries are left in place.
func (o *Ontology) ClearInferences() int {
	removed := 0
	for _, r := range o.Registers() {
		removed += r.Taxonomy.RemoveWhere(func(e taxonomy.Entry) bool {
			return e.Provenance == taxonomy.DerivedByReasoner
		})
	}
	return removed
}

// Individuals returns the data register's individual universe.
func (o *Ontology) Individuals() resource.Set { return o.Data.Individuals() }

// Literals returns the data register's literal universe.
func (o *Ontology) Literals() resource.Set { return o.Data.Literals() }

func addEntry(tx *taxonomy.Taxonomy, s, p, o resource.Resource, prov taxonomy.Provenance) error {
	e, err := taxonomy.NewEntry(s, p, o, prov)
	if err != nil {
		return err
	}
	tx.Add(e)
	return nil
}

// addSymmetric records (a p b) as asserted and (b p a) as its construction
// restatement.
func addSymmetric(tx *taxonomy.Taxonomy, a, p, b resource.Resource) error {
	if err := addEntry(tx, a, p, b, taxonomy.Asserted); err != nil {
		return err
	}
	return addEntry(tx, b, p, a, taxonomy.DerivedByConstruction)
}

func removeSymmetric(tx *taxonomy.Taxonomy, a, p, b resource.Resource) bool {
	forward := tx.RemoveTriple(a, p, b)
	backward := tx.RemoveTriple(b, p, a)
	return forward || backward
}

func iri(s string) resource.Resource { return resource.NewURI(s) }

var (
	rdfType        = iri(owl.RDFType)
	rdfFirst       = iri(owl.RDFFirst)
	rdfRest        = iri(owl.RDFRest)
	rdfNil         = iri(owl.RDFNil)
	rdfsSubClassOf = iri(owl.RDFSSubClassOf)
	rdfsSubPropOf  = iri(owl.RDFSSubPropertyOf)
	rdfsDatatype   = iri(owl.RDFSDatatype)
	rdfsLiteral    = iri(owl.RDFSLiteral)

	owlClass                = iri(owl.Class)
	owlRestriction          = iri(owl.Restriction)
	owlEquivalentClass      = iri(owl.EquivalentClass)
	owlDisjointWith         = iri(owl.DisjointWith)
	owlUnionOf              = iri(owl.UnionOf)
	owlIntersectionOf       = iri(owl.IntersectionOf)
	owlComplementOf         = iri(owl.ComplementOf)
	owlOneOf                = iri(owl.OneOf)
	owlHasKey               = iri(owl.HasKey)
	owlOnProperty           = iri(owl.OnProperty)
	owlOnClass              = iri(owl.OnClass)
	owlOnDataRange          = iri(owl.OnDataRange)
	owlCardinality          = iri(owl.Cardinality)
	owlMinCardinality       = iri(owl.MinCardinality)
	owlMaxCardinality       = iri(owl.MaxCardinality)
	owlQualifiedCardinality = iri(owl.QualifiedCardinality)
	owlMinQualified         = iri(owl.MinQualifiedCardinality)
	owlMaxQualified         = iri(owl.MaxQualifiedCardinality)
	owlAllValuesFrom        = iri(owl.AllValuesFrom)
	owlSomeValuesFrom       = iri(owl.SomeValuesFrom)
	owlHasValue             = iri(owl.HasValue)
	owlHasSelf              = iri(owl.HasSelf)

	owlObjectProperty       = iri(owl.ObjectProperty)
	owlDatatypeProperty     = iri(owl.DatatypeProperty)
	owlTransitiveProperty   = iri(owl.TransitiveProperty)
	owlSymmetricProperty    = iri(owl.SymmetricProperty)
	owlEquivalentProperty   = iri(owl.EquivalentProperty)
	owlPropertyDisjointWith = iri(owl.PropertyDisjointWith)
	owlInverseOf            = iri(owl.InverseOf)
	owlPropertyChainAxiom   = iri(owl.PropertyChainAxiom)

	owlNamedIndividual = iri(owl.NamedIndividual)
	owlSameAs          = iri(owl.SameAs)
	owlDifferentFrom   = iri(owl.DifferentFrom)
	declaresLiteral    = iri(owl.DeclaresLiteral)
)
