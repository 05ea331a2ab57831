package reasoner

import (
	"log/slog"
	"strings"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/c360studio/semtax/ontology"
	"github.com/c360studio/semtax/pathquery"
	"github.com/c360studio/semtax/resource"
	"github.com/c360studio/semtax/taxonomy"
	"github.com/c360studio/semtax/vocabulary/owl"
)

// DefaultMaxRounds bounds a reasoning pass that has not reached a fixpoint.
const DefaultMaxRounds = 16

// PathEvaluator joins assertions along an ordered list of properties.
type PathEvaluator interface {
	Evaluate(data *taxonomy.Taxonomy, steps []resource.Resource) []pathquery.Pair
}

// Reasoner answers entailment queries over one ontology.
type Reasoner struct {
	ont       *ontology.Ontology
	logger    *slog.Logger
	metrics   *Metrics
	paths     PathEvaluator
	rules     []string
	maxRounds int
}

// Option configures a Reasoner.
type Option func(*Reasoner)

// WithLogger sets the logger. The default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(r *Reasoner) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// WithMetrics registers reasoner metrics with reg.
func WithMetrics(reg prometheus.Registerer) Option {
	return func(r *Reasoner) { r.metrics = NewMetrics(reg) }
}

// WithPathEvaluator replaces the evaluator used to expand property chains.
func WithPathEvaluator(p PathEvaluator) Option {
	return func(r *Reasoner) {
		if p != nil {
			r.paths = p
		}
	}
}

// WithRules restricts Run to the named rules. Unknown names are reported by
// Run.
func WithRules(names ...string) Option {
	return func(r *Reasoner) { r.rules = names }
}

// WithMaxRounds bounds the number of rounds Run may take.
func WithMaxRounds(n int) Option {
	return func(r *Reasoner) {
		if n > 0 {
			r.maxRounds = n
		}
	}
}

// New creates a reasoner over o.
func New(o *ontology.Ontology, opts ...Option) *Reasoner {
	if o == nil {
		o = ontology.New("", ontology.WithoutSeed())
	}
	r := &Reasoner{
		ont:       o,
		logger:    slog.Default(),
		paths:     pathquery.Evaluator{},
		maxRounds: DefaultMaxRounds,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Ontology returns the ontology the reasoner reads and writes.
func (r *Reasoner) Ontology() *ontology.Ontology { return r.ont }

func iri(s string) resource.Resource { return resource.NewURI(s) }

var (
	rdfType        = iri(owl.RDFType)
	rdfsSubClassOf = iri(owl.RDFSSubClassOf)
	rdfsSubPropOf  = iri(owl.RDFSSubPropertyOf)
	rdfsLiteral    = iri(owl.RDFSLiteral)

	owlThing                = iri(owl.Thing)
	owlNothing              = iri(owl.Nothing)
	owlEquivalentClass      = iri(owl.EquivalentClass)
	owlDisjointWith         = iri(owl.DisjointWith)
	owlEquivalentProperty   = iri(owl.EquivalentProperty)
	owlPropertyDisjointWith = iri(owl.PropertyDisjointWith)
	owlInverseOf            = iri(owl.InverseOf)
	owlSameAs               = iri(owl.SameAs)
	owlDifferentFrom        = iri(owl.DifferentFrom)
)

// isBuiltin reports whether r belongs to one of the W3C vocabularies.
func isBuiltin(r resource.Resource) bool {
	if !r.IsURI() {
		return false
	}
	s := r.IRI()
	return strings.HasPrefix(s, owl.RDFNamespace) ||
		strings.HasPrefix(s, owl.RDFSNamespace) ||
		strings.HasPrefix(s, owl.OWLNamespace) ||
		strings.HasPrefix(s, owl.XSDNamespace)
}
