// Package export converts ontologies to and from semstreams triples, loads
// YAML ontology documents, and serializes triples as RDF.
package export

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/c360studio/semstreams/message"

	"github.com/c360studio/semtax/ontology"
	"github.com/c360studio/semtax/resource"
	"github.com/c360studio/semtax/taxonomy"
	"github.com/c360studio/semtax/vocabulary/owl"
)

// Triple sources, one per provenance.
const (
	SourceAsserted     = "semtax.asserted"
	SourceConstruction = "semtax.construction"
	SourceReasoner     = "semtax.reasoner"
)

// negativeNamespace prefixes the node that reifies a negative assertion.
const negativeNamespace = "urn:semtax:negative:"

// Exporter turns the registers of an ontology into triples.
type Exporter struct {
	profile ProfileConfig
	runID   string
	now     func() time.Time
}

// ExporterOption configures an Exporter.
type ExporterOption func(*Exporter)

// WithRunID stamps every triple's Context with id.
func WithRunID(id string) ExporterOption {
	return func(e *Exporter) { e.runID = id }
}

// WithClock overrides the timestamp source.
func WithClock(now func() time.Time) ExporterOption {
	return func(e *Exporter) {
		if now != nil {
			e.now = now
		}
	}
}

// NewExporter creates an exporter for the given profile.
func NewExporter(profile Profile, opts ...ExporterOption) *Exporter {
	e := &Exporter{profile: GetProfileConfig(profile), now: time.Now}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// ToTriples exports o with the given profile.
func ToTriples(o *ontology.Ontology, profile Profile) []message.Triple {
	return NewExporter(profile).Triples(o)
}

// Triples returns one triple per entry the profile admits, register by
// register in insertion order. Built-in vocabulary is omitted. Negative
// assertions are reified as owl:NegativePropertyAssertion nodes.
func (e *Exporter) Triples(o *ontology.Ontology) []message.Triple {
	if o == nil {
		return nil
	}
	seed := make(map[taxonomy.EntryID]bool)
	for _, s := range ontology.SeedEntries() {
		seed[s.ID()] = true
	}

	ts := e.now()
	var out []message.Triple
	for _, r := range o.Registers() {
		for _, entry := range r.Taxonomy.Entries() {
			if !e.profile.Includes(entry.Provenance) {
				continue
			}
			if entry.Provenance == taxonomy.Asserted && seed[entry.ID()] {
				continue
			}
			if r.Name == ontology.RegisterNegatives {
				out = append(out, e.negative(entry, ts)...)
				continue
			}
			out = append(out, e.triple(entry.Subject, entry.Predicate, entry.Object, entry.Provenance, ts))
		}
	}
	return out
}

func (e *Exporter) negative(entry taxonomy.Entry, ts time.Time) []message.Triple {
	node := resource.NewURI(negativeNamespace + entry.ID().String())
	target := resource.NewURI(owl.TargetIndividual)
	if entry.Object.IsLiteral() {
		target = resource.NewURI(owl.TargetValue)
	}
	return []message.Triple{
		e.triple(node, resource.NewURI(owl.RDFType), resource.NewURI(owl.NegativePropertyAssertion), entry.Provenance, ts),
		e.triple(node, resource.NewURI(owl.SourceIndividual), entry.Subject, entry.Provenance, ts),
		e.triple(node, resource.NewURI(owl.AssertionProperty), entry.Predicate, entry.Provenance, ts),
		e.triple(node, target, entry.Object, entry.Provenance, ts),
	}
}

func (e *Exporter) triple(s, p, o resource.Resource, prov taxonomy.Provenance, ts time.Time) message.Triple {
	t := message.Triple{
		Subject:    s.IRI(),
		Predicate:  owl.PredicateForIRI(p.IRI()),
		Source:     sourceFor(prov),
		Timestamp:  ts,
		Confidence: confidenceFor(prov),
		Context:    e.runID,
	}
	if o.IsLiteral() {
		t.Object = o.Value()
		t.Datatype = o.Datatype()
		if o.Lang() != "" {
			t.Datatype = "@" + o.Lang()
		}
	} else {
		t.Object = o.IRI()
	}
	return t
}

func sourceFor(p taxonomy.Provenance) string {
	switch p {
	case taxonomy.DerivedByConstruction:
		return SourceConstruction
	case taxonomy.DerivedByReasoner:
		return SourceReasoner
	default:
		return SourceAsserted
	}
}

func confidenceFor(p taxonomy.Provenance) float64 {
	if p == taxonomy.Asserted {
		return 1.0
	}
	return 0.9
}

func provenanceFor(source string) taxonomy.Provenance {
	switch source {
	case SourceConstruction:
		return taxonomy.DerivedByConstruction
	case SourceReasoner:
		return taxonomy.DerivedByReasoner
	default:
		return taxonomy.Asserted
	}
}

// Predicates whose triples belong to the class model.
var classPredicates = map[string]bool{
	owl.RDFSSubClassOf:          true,
	owl.EquivalentClass:         true,
	owl.DisjointWith:            true,
	owl.UnionOf:                 true,
	owl.IntersectionOf:          true,
	owl.ComplementOf:            true,
	owl.OneOf:                   true,
	owl.HasKey:                  true,
	owl.OnProperty:              true,
	owl.OnClass:                 true,
	owl.OnDataRange:             true,
	owl.Cardinality:             true,
	owl.MinCardinality:          true,
	owl.MaxCardinality:          true,
	owl.QualifiedCardinality:    true,
	owl.MinQualifiedCardinality: true,
	owl.MaxQualifiedCardinality: true,
	owl.AllValuesFrom:           true,
	owl.SomeValuesFrom:          true,
	owl.HasValue:                true,
	owl.HasSelf:                 true,
}

// Predicates whose triples belong to the property model.
var propertyPredicates = map[string]bool{
	owl.RDFSSubPropertyOf:    true,
	owl.EquivalentProperty:   true,
	owl.PropertyDisjointWith: true,
	owl.InverseOf:            true,
	owl.PropertyChainAxiom:   true,
}

// rdf:type objects that declare a class or a property.
var (
	classTypes = map[string]bool{
		owl.Class:        true,
		owl.RDFSClass:    true,
		owl.Restriction:  true,
		owl.RDFSDatatype: true,
	}
	propertyTypes = map[string]bool{
		owl.ObjectProperty:     true,
		owl.DatatypeProperty:   true,
		owl.AnnotationProperty: true,
		owl.TransitiveProperty: true,
		owl.SymmetricProperty:  true,
		owl.FunctionalProperty: true,
	}
	negativeParts = map[string]bool{
		owl.SourceIndividual:  true,
		owl.AssertionProperty: true,
		owl.TargetIndividual:  true,
		owl.TargetValue:       true,
	}
)

// Predicates whose object heads an rdf:List.
var listPredicates = map[string]string{
	owl.UnionOf:            ontology.RegisterClasses,
	owl.IntersectionOf:     ontology.RegisterClasses,
	owl.OneOf:              ontology.RegisterClasses,
	owl.HasKey:             ontology.RegisterClasses,
	owl.PropertyChainAxiom: ontology.RegisterProperties,
}

type routed struct {
	register string
	entry    taxonomy.Entry
}

// reified collects the parts of one owl:NegativePropertyAssertion node.
type reified struct {
	source, property, target resource.Resource
	provenance               taxonomy.Provenance
}

// FromTriples builds an ontology from triples, routing each one to the
// register its predicate belongs to. List cells follow the register of the
// axiom that owns them. Reified negative assertions land in the negative
// register.
func FromTriples(iri string, triples []message.Triple, opts ...ontology.Option) (*ontology.Ontology, error) {
	o := ontology.New(iri, opts...)

	var (
		entries   []routed
		listCells []taxonomy.Entry
		negatives = make(map[string]*reified)
		negOrder  []string
		owners    = make(map[string]string)
	)

	for i, t := range triples {
		e, err := entryFromTriple(t)
		if err != nil {
			return nil, fmt.Errorf("convert triple %d: %w", i, err)
		}
		p := e.Predicate.IRI()
		if register, ok := listPredicates[p]; ok {
			owners[e.Object.Key()] = register
		}
		switch {
		case p == owl.RDFFirst || p == owl.RDFRest:
			listCells = append(listCells, e)
		case p == owl.RDFType && e.Object.IRI() == owl.NegativePropertyAssertion,
			negativeParts[p]:
			key := e.Subject.Key()
			n, ok := negatives[key]
			if !ok {
				n = &reified{}
				negatives[key] = n
				negOrder = append(negOrder, key)
			}
			n.provenance = e.Provenance
			switch p {
			case owl.SourceIndividual:
				n.source = e.Object
			case owl.AssertionProperty:
				n.property = e.Object
			case owl.TargetIndividual, owl.TargetValue:
				n.target = e.Object
			}
		case classPredicates[p], p == owl.RDFType && classTypes[e.Object.IRI()]:
			entries = append(entries, routed{ontology.RegisterClasses, e})
		case propertyPredicates[p], p == owl.RDFType && propertyTypes[e.Object.IRI()]:
			entries = append(entries, routed{ontology.RegisterProperties, e})
		default:
			entries = append(entries, routed{ontology.RegisterData, e})
		}
	}

	// Propagate list ownership along rdf:rest until nothing changes.
	for changed := true; changed; {
		changed = false
		for _, c := range listCells {
			if c.Predicate.IRI() != owl.RDFRest {
				continue
			}
			owner, ok := owners[c.Subject.Key()]
			if !ok {
				continue
			}
			if _, seen := owners[c.Object.Key()]; !seen {
				owners[c.Object.Key()] = owner
				changed = true
			}
		}
	}
	for _, c := range listCells {
		register, ok := owners[c.Subject.Key()]
		if !ok {
			register = ontology.RegisterClasses
		}
		entries = append(entries, routed{register, c})
	}

	for _, r := range entries {
		tx, _ := o.RegisterByName(r.register)
		tx.Add(r.entry)
	}

	for _, key := range negOrder {
		n := negatives[key]
		e, err := taxonomy.NewEntry(n.source, n.property, n.target, n.provenance)
		if err != nil {
			return nil, fmt.Errorf("convert negative assertion %s: %w", key, err)
		}
		o.Data.Negatives.Add(e)
	}
	return o, nil
}

func entryFromTriple(t message.Triple) (taxonomy.Entry, error) {
	s := resource.NewURI(t.Subject)
	p := resource.NewURI(owl.IRIForPredicate(t.Predicate))
	obj, err := objectFromTriple(t)
	if err != nil {
		return taxonomy.Entry{}, err
	}
	return taxonomy.NewEntry(s, p, obj, provenanceFor(t.Source))
}

// objectFromTriple maps a triple object to a resource. Strings without a
// datatype hint are IRIs when they carry a scheme, literals otherwise. A
// datatype hint of "@tag" yields a language-tagged literal.
func objectFromTriple(t message.Triple) (resource.Resource, error) {
	switch v := t.Object.(type) {
	case nil:
		return resource.Resource{}, nil
	case string:
		switch {
		case strings.HasPrefix(t.Datatype, "@"):
			return resource.NewPlainLiteral(v, t.Datatype[1:]), nil
		case t.Datatype != "":
			return resource.NewTypedLiteral(v, expandDatatype(t.Datatype)), nil
		case isIRI(v):
			return resource.NewURI(v), nil
		default:
			return resource.NewPlainLiteral(v, ""), nil
		}
	case bool:
		return resource.NewTypedLiteral(strconv.FormatBool(v), owl.XSDBoolean), nil
	case int:
		return resource.NewTypedLiteral(strconv.Itoa(v), datatypeOr(t.Datatype, owl.XSDInteger)), nil
	case int64:
		return resource.NewTypedLiteral(strconv.FormatInt(v, 10), datatypeOr(t.Datatype, owl.XSDInteger)), nil
	case float64:
		return resource.NewTypedLiteral(strconv.FormatFloat(v, 'g', -1, 64), datatypeOr(t.Datatype, owl.XSDDecimal)), nil
	default:
		return resource.Resource{}, fmt.Errorf("unsupported object type %T", t.Object)
	}
}

func datatypeOr(hint, fallback string) string {
	if hint == "" {
		return fallback
	}
	return expandDatatype(hint)
}

// expandDatatype accepts "xsd:int" style hints as well as full IRIs.
func expandDatatype(dt string) string {
	switch {
	case strings.HasPrefix(dt, "xsd:"):
		return owl.XSDNamespace + dt[len("xsd:"):]
	case strings.HasPrefix(dt, "rdf:"):
		return owl.RDFNamespace + dt[len("rdf:"):]
	case strings.HasPrefix(dt, "rdfs:"):
		return owl.RDFSNamespace + dt[len("rdfs:"):]
	default:
		return dt
	}
}

// isIRI reports whether s looks like an absolute IRI: a scheme followed by a
// colon and no whitespace.
func isIRI(s string) bool {
	if strings.ContainsAny(s, " \t\n") {
		return false
	}
	i := strings.IndexByte(s, ':')
	if i <= 0 {
		return false
	}
	for j, c := range s[:i] {
		switch {
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z':
		case j > 0 && (c >= '0' && c <= '9' || c == '+' || c == '-' || c == '.'):
		default:
			return false
		}
	}
	return true
}
