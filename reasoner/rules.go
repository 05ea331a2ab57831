package reasoner

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/c360studio/semtax/ontology"
	"github.com/c360studio/semtax/resource"
	"github.com/c360studio/semtax/taxonomy"
)

// Rule names accepted by WithRules.
const (
	RuleSubClassTransitivity           = "SubClassTransitivity"
	RuleEquivalentClassTransitivity    = "EquivalentClassTransitivity"
	RuleDisjointWithEntailment         = "DisjointWithEntailment"
	RuleSubPropertyTransitivity        = "SubPropertyTransitivity"
	RuleEquivalentPropertyTransitivity = "EquivalentPropertyTransitivity"
	RuleInverseOfEntailment            = "InverseOfEntailment"
	RuleSymmetricPropertyEntailment    = "SymmetricPropertyEntailment"
	RuleTransitivePropertyEntailment   = "TransitivePropertyEntailment"
	RulePropertyChainEntailment        = "PropertyChainEntailment"
	RuleSameAsEntailment               = "SameAsEntailment"
	RuleDifferentFromEntailment        = "DifferentFromEntailment"
	RuleClassTypeEntailment            = "ClassTypeEntailment"
	RuleHasKeyEntailment               = "HasKeyEntailment"
)

// inference is one entry a rule proposes for a named register.
type inference struct {
	register string
	s, p, o  resource.Resource
}

type rule struct {
	name  string
	infer func(r *Reasoner) []inference
}

// rules in application order. Later rules in a round see what earlier rules
// added.
var rules = []rule{
	{RuleSubClassTransitivity, inferSubClasses},
	{RuleEquivalentClassTransitivity, inferEquivalentClasses},
	{RuleDisjointWithEntailment, inferDisjointClasses},
	{RuleSubPropertyTransitivity, inferSubProperties},
	{RuleEquivalentPropertyTransitivity, inferEquivalentProperties},
	{RuleInverseOfEntailment, inferInverseAssertions},
	{RuleSymmetricPropertyEntailment, inferSymmetricAssertions},
	{RuleTransitivePropertyEntailment, inferTransitiveAssertions},
	{RulePropertyChainEntailment, inferChainAssertions},
	{RuleSameAsEntailment, inferSameIndividuals},
	{RuleDifferentFromEntailment, inferDifferentIndividuals},
	{RuleClassTypeEntailment, inferClassTypes},
	{RuleHasKeyEntailment, inferKeyIdentities},
}

// RuleNames lists every rule in application order.
func RuleNames() []string {
	names := make([]string, len(rules))
	for i, rl := range rules {
		names[i] = rl.name
	}
	return names
}

// Report summarizes a reasoning pass.
type Report struct {
	Rounds     int
	Converged  bool
	Total      int
	Inferences map[string]int
	Duration   time.Duration
}

func (r *Reasoner) selectedRules() ([]rule, error) {
	if len(r.rules) == 0 {
		return rules, nil
	}
	wanted := make(map[string]bool, len(r.rules))
	for _, name := range r.rules {
		wanted[name] = true
	}
	var out []rule
	for _, rl := range rules {
		if wanted[rl.name] {
			out = append(out, rl)
			delete(wanted, rl.name)
		}
	}
	if len(wanted) > 0 {
		unknown := make([]string, 0, len(wanted))
		for name := range wanted {
			unknown = append(unknown, name)
		}
		sort.Strings(unknown)
		return nil, fmt.Errorf("select rules: %w: %s", ErrUnknownRule, strings.Join(unknown, ", "))
	}
	return out, nil
}

// Run applies the selected rules until a round adds nothing or the round
// limit is reached. Every entry it writes is tagged DerivedByReasoner, so
// ClearInferences followed by Run reproduces the same entries.
func (r *Reasoner) Run() (Report, error) {
	selected, err := r.selectedRules()
	if err != nil {
		return Report{}, err
	}

	start := time.Now()
	report := Report{Inferences: make(map[string]int, len(selected))}
	for round := 1; round <= r.maxRounds; round++ {
		report.Rounds = round
		added := 0
		for _, rl := range selected {
			n := r.apply(rl.infer(r))
			report.Inferences[rl.name] += n
			r.metrics.recordInferences(rl.name, n)
			added += n
		}
		report.Total += added
		r.logger.Debug("Reasoning round complete", "round", round, "inferences", added)
		if added == 0 {
			report.Converged = true
			break
		}
	}
	report.Duration = time.Since(start)
	r.metrics.recordRounds(report.Rounds)

	if !report.Converged {
		r.logger.Warn("Reasoning stopped before reaching a fixpoint",
			"ontology", r.ont.IRI.String(),
			"max_rounds", r.maxRounds)
	}
	r.logger.Info("Reasoning complete",
		"ontology", r.ont.IRI.String(),
		"rounds", report.Rounds,
		"inferences", report.Total,
		"duration", report.Duration)
	return report, nil
}

func (r *Reasoner) apply(infs []inference) int {
	added := 0
	for _, inf := range infs {
		tx, ok := r.ont.RegisterByName(inf.register)
		if !ok {
			continue
		}
		e, err := taxonomy.NewEntry(inf.s, inf.p, inf.o, taxonomy.DerivedByReasoner)
		if err != nil || tx.Contains(e) {
			continue
		}
		if tx.Add(e) {
			added++
		}
	}
	return added
}

func userResources(rs []resource.Resource) []resource.Resource {
	out := make([]resource.Resource, 0, len(rs))
	for _, x := range rs {
		if !isBuiltin(x) {
			out = append(out, x)
		}
	}
	return out
}

func relate(register string, subjects []resource.Resource, p resource.Resource, fn func(resource.Resource) resource.Set) []inference {
	var out []inference
	for _, s := range subjects {
		for _, o := range fn(s).Slice() {
			out = append(out, inference{register: register, s: s, p: p, o: o})
		}
	}
	return out
}

func inferSubClasses(r *Reasoner) []inference {
	w := newWalker(r.classFamily())
	return relate(ontology.RegisterClasses, userResources(r.ont.Classes.Classes()), rdfsSubClassOf, w.supers)
}

func inferEquivalentClasses(r *Reasoner) []inference {
	w := newWalker(r.classFamily())
	return relate(ontology.RegisterClasses, userResources(r.ont.Classes.Classes()), owlEquivalentClass, w.equivalents)
}

func inferDisjointClasses(r *Reasoner) []inference {
	w := newWalker(r.classFamily())
	return relate(ontology.RegisterClasses, userResources(r.ont.Classes.Classes()), owlDisjointWith, w.disjoints)
}

func inferSubProperties(r *Reasoner) []inference {
	w := newWalker(r.propertyFamily())
	return relate(ontology.RegisterProperties, userResources(r.ont.Properties.Properties()), rdfsSubPropOf, w.supers)
}

func inferEquivalentProperties(r *Reasoner) []inference {
	w := newWalker(r.propertyFamily())
	return relate(ontology.RegisterProperties, userResources(r.ont.Properties.Properties()), owlEquivalentProperty, w.equivalents)
}

func inferInverseAssertions(r *Reasoner) []inference {
	w := newWalker(r.propertyFamily())
	var out []inference
	for _, a := range r.ont.Data.Assertions(resource.Resource{}) {
		if !a.Object.IsURI() {
			continue
		}
		for _, q := range w.inverses(a.Predicate).Slice() {
			out = append(out, inference{register: ontology.RegisterData, s: a.Object, p: q, o: a.Subject})
		}
	}
	return out
}

func inferSymmetricAssertions(r *Reasoner) []inference {
	var out []inference
	for _, p := range r.ont.Properties.SymmetricProperties() {
		for _, a := range r.ont.Data.Assertions(p) {
			if a.Object.IsURI() {
				out = append(out, inference{register: ontology.RegisterData, s: a.Object, p: p, o: a.Subject})
			}
		}
	}
	return out
}

func inferTransitiveAssertions(r *Reasoner) []inference {
	var out []inference
	for _, p := range r.ont.Properties.TransitiveProperties() {
		subjects := resource.NewSet()
		for _, a := range r.ont.Data.Assertions(p) {
			subjects.Add(a.Subject)
		}
		for _, s := range subjects.Slice() {
			for _, z := range r.reachable(s, p).Slice() {
				if !z.Equal(s) {
					out = append(out, inference{register: ontology.RegisterData, s: s, p: p, o: z})
				}
			}
		}
	}
	return out
}

func inferChainAssertions(r *Reasoner) []inference {
	var out []inference
	for _, p := range r.ont.Properties.ChainedProperties() {
		for _, e := range r.ChainAssertionsOf(p).Entries() {
			out = append(out, inference{register: ontology.RegisterData, s: e.Subject, p: e.Predicate, o: e.Object})
		}
	}
	return out
}

func inferSameIndividuals(r *Reasoner) []inference {
	w := newWalker(r.individualFamily())
	return relate(ontology.RegisterData, r.ont.Individuals().Slice(), owlSameAs, w.equivalents)
}

func inferDifferentIndividuals(r *Reasoner) []inference {
	w := newWalker(r.individualFamily())
	return relate(ontology.RegisterData, r.ont.Individuals().Slice(), owlDifferentFrom, w.disjoints)
}

// inferClassTypes types every individual member of every user class.
func inferClassTypes(r *Reasoner) []inference {
	x := r.newExtensionCache()
	var out []inference
	for _, c := range userResources(r.ont.Classes.Classes()) {
		for _, m := range x.members(c).Slice() {
			if m.IsURI() {
				out = append(out, inference{register: ontology.RegisterData, s: m, p: rdfType, o: c})
			}
		}
	}
	return out
}

// inferKeyIdentities identifies members of a keyed class whose complete key
// tuples are equal.
func inferKeyIdentities(r *Reasoner) []inference {
	var out []inference
	for _, c := range r.ont.Classes.KeyedClasses() {
		groups := make(map[string][]resource.Resource)
		var order []string
		for _, kv := range r.KeyValuesOf(c, false) {
			sig := kv.signature()
			if _, ok := groups[sig]; !ok {
				order = append(order, sig)
			}
			groups[sig] = append(groups[sig], kv.Member)
		}
		for _, sig := range order {
			members := groups[sig]
			for i, a := range members {
				for _, b := range members[i+1:] {
					out = append(out,
						inference{register: ontology.RegisterData, s: a, p: owlSameAs, o: b},
						inference{register: ontology.RegisterData, s: b, p: owlSameAs, o: a})
				}
			}
		}
	}
	return out
}
