package reasoner

import (
	"math"
	"time"

	"github.com/c360studio/semtax/ontology"
	"github.com/c360studio/semtax/resource"
)

// extensionCache holds everything one materialization call computes more than
// once. It is created per top-level call and never shared.
type extensionCache struct {
	r *Reasoner

	classes    *walker
	properties *walker
	same       *walker

	extensions map[string]resource.Set

	// Cycle handling. stack maps each class being computed to its depth and
	// low is the shallowest stack entry re-entered since it was last reset.
	// Results that depend on an unfinished class are parked in provisional
	// and never memoized; a class that heads a cycle keeps its latest
	// approximation in approx until the fixpoint is reached.
	stack       map[string]int
	low         int
	approx      map[string]resource.Set
	provisional map[string]resource.Set

	objTypes map[string]resource.Set
	sameSets map[string]resource.Set
	propSets map[string]resource.Set

	individuals resource.Set
	literals    resource.Set
}

func (r *Reasoner) newExtensionCache() *extensionCache {
	return &extensionCache{
		r:           r,
		classes:     newWalker(r.classFamily()),
		properties:  newWalker(r.propertyFamily()),
		same:        newWalker(r.individualFamily()),
		extensions:  make(map[string]resource.Set),
		stack:       make(map[string]int),
		low:         math.MaxInt,
		approx:      make(map[string]resource.Set),
		provisional: make(map[string]resource.Set),
		objTypes:    make(map[string]resource.Set),
		sameSets:    make(map[string]resource.Set),
		propSets:    make(map[string]resource.Set),
	}
}

// MembersOf returns the individuals and literals belonging to class c.
func (r *Reasoner) MembersOf(c resource.Resource) []resource.Resource {
	if c.IsZero() {
		return nil
	}
	return r.newExtensionCache().members(c).Slice()
}

// IsMemberOf reports whether m belongs to class c.
func (r *Reasoner) IsMemberOf(m, c resource.Resource) bool {
	if m.IsZero() || c.IsZero() {
		return false
	}
	return r.newExtensionCache().members(c).Has(m)
}

func (x *extensionCache) universe() resource.Set {
	if x.individuals == nil {
		x.individuals = x.r.ont.Individuals()
	}
	return x.individuals
}

func (x *extensionCache) literalUniverse() resource.Set {
	if x.literals == nil {
		x.literals = x.r.ont.Literals()
	}
	return x.literals
}

// sameAs returns i together with every individual the same as i.
func (x *extensionCache) sameAs(i resource.Resource) resource.Set {
	if s, ok := x.sameSets[i.Key()]; ok {
		return s
	}
	s := resource.NewSet(i)
	if i.IsURI() {
		s.AddAll(x.same.equivalents(i))
	}
	x.sameSets[i.Key()] = s
	return s
}

// propertySet returns p together with its sub-properties and equivalents.
func (x *extensionCache) propertySet(p resource.Resource) resource.Set {
	if s, ok := x.propSets[p.Key()]; ok {
		return s
	}
	s := x.properties.closedUnder(p)
	x.propSets[p.Key()] = s
	return s
}

// typeClosure returns every class the object o is known to belong to through
// its asserted types. Individuals always belong to owl:Thing and literals to
// rdfs:Literal.
func (x *extensionCache) typeClosure(o resource.Resource) resource.Set {
	if s, ok := x.objTypes[o.Key()]; ok {
		return s
	}
	s := resource.NewSet()
	var direct []resource.Resource
	if o.IsLiteral() {
		s.Add(rdfsLiteral)
		direct = []resource.Resource{iri(o.Datatype())}
	} else {
		s.Add(owlThing)
		for _, i := range x.sameAs(o).Slice() {
			direct = append(direct, x.r.ont.Data.Objects(i, rdfType)...)
		}
	}
	for _, t := range direct {
		s.Add(t)
		s.AddAll(x.classes.equivalents(t))
		s.AddAll(x.classes.supers(t))
	}
	x.objTypes[o.Key()] = s
	return s
}

func kindOf(e ontology.ClassExpr) string {
	switch e := e.(type) {
	case ontology.Atomic:
		return "atomic"
	case ontology.Union:
		return "union"
	case ontology.Intersection:
		return "intersection"
	case ontology.Complement:
		return "complement"
	case ontology.Enumeration:
		return "enumeration"
	case ontology.DataRange:
		return "data_range"
	case ontology.Restriction:
		return e.Kind.String()
	default:
		return "unknown"
	}
}

// maxFixpointRounds bounds the re-evaluation of a cyclic class. Definitions
// through owl:complementOf need not converge.
const maxFixpointRounds = 64

// members computes the extension of c. A class that is re-entered while its
// own extension is being computed is evaluated to a fixpoint, starting from
// the empty set, at the outermost point of the cycle.
func (x *extensionCache) members(c resource.Resource) resource.Set {
	k := c.Key()
	if s, ok := x.extensions[k]; ok {
		return s
	}
	if s, ok := x.provisional[k]; ok {
		return s
	}
	if d, ok := x.stack[k]; ok {
		x.low = min(x.low, d)
		if s, ok := x.approx[k]; ok {
			return s
		}
		return resource.NewSet()
	}

	depth := len(x.stack)
	x.stack[k] = depth
	outer := x.low
	var out resource.Set
	for round := 1; ; round++ {
		x.low = math.MaxInt
		out = x.evaluate(c)
		if x.low != depth || round == maxFixpointRounds {
			break
		}
		if sameMembers(x.approx[k], out) {
			break
		}
		x.approx[k] = out
		clear(x.provisional)
	}
	delete(x.stack, k)
	delete(x.approx, k)

	if x.low < depth {
		x.provisional[k] = out
		x.low = min(outer, x.low)
		return out
	}
	x.low = outer
	x.extensions[k] = out
	return out
}

// evaluate computes one pass over the expression defining c.
func (x *extensionCache) evaluate(c resource.Resource) resource.Set {
	start := time.Now()
	expr := x.r.ont.Classes.Expression(c)
	var out resource.Set
	switch e := expr.(type) {
	case ontology.Atomic:
		out = x.atomic(e)
	case ontology.Union:
		out = resource.NewSet()
		for _, op := range e.Operands {
			out.AddAll(x.members(op))
		}
	case ontology.Intersection:
		if len(e.Operands) == 0 {
			out = resource.NewSet()
			break
		}
		out = x.members(e.Operands[0]).Clone()
		for _, op := range e.Operands[1:] {
			out = out.Intersect(x.members(op))
		}
	case ontology.Complement:
		out = x.universe().Difference(x.members(e.Operand))
	case ontology.Enumeration:
		out = resource.NewSet()
		for _, m := range e.Members {
			out.AddAll(x.sameAs(m))
		}
	case ontology.DataRange:
		out = x.dataRange(e)
	case ontology.Restriction:
		out = x.restriction(e)
	default:
		out = resource.NewSet()
	}
	x.r.metrics.recordMaterialization(kindOf(expr), start)
	return out
}

func sameMembers(a, b resource.Set) bool {
	if len(a) != len(b) {
		return false
	}
	for k := range a {
		if _, ok := b[k]; !ok {
			return false
		}
	}
	return true
}

// atomic collects individuals typed to c or to anything c subsumes, each
// expanded by sameAs. Subsumed classes that are themselves defined by an
// expression contribute their computed extension.
func (x *extensionCache) atomic(e ontology.Atomic) resource.Set {
	switch {
	case e.IRI.Equal(owlThing):
		return x.universe().Clone()
	case e.IRI.Equal(owlNothing):
		return resource.NewSet()
	}
	out := resource.NewSet()
	for _, k := range x.classes.closedUnder(e.IRI).Slice() {
		for _, i := range x.r.ont.Data.Subjects(rdfType, k) {
			out.AddAll(x.sameAs(i))
		}
		if k.Equal(e.IRI) {
			continue
		}
		if _, plain := x.r.ont.Classes.Expression(k).(ontology.Atomic); !plain {
			out.AddAll(x.members(k))
		}
	}
	return out
}

// dataRange matches literals whose datatype is the range itself or anything
// it subsumes. rdfs:Literal matches every literal.
func (x *extensionCache) dataRange(e ontology.DataRange) resource.Set {
	out := resource.NewSet()
	if e.Enumerated {
		for _, v := range e.Values {
			out.Add(v)
		}
		return out
	}
	if e.IRI.Equal(rdfsLiteral) {
		return x.literalUniverse().Clone()
	}
	accepted := x.classes.closedUnder(e.IRI)
	for _, l := range x.literalUniverse() {
		if accepted.Has(iri(l.Datatype())) {
			out.Add(l)
		}
	}
	return out
}

// valuesBySubject groups the assertions made through p or anything p
// subsumes by subject. Objects are de-duplicated per subject, so the same
// value asserted through p and a sub-property of p counts once.
func (x *extensionCache) valuesBySubject(p resource.Resource) (map[string]resource.Set, map[string]resource.Resource) {
	values := make(map[string]resource.Set)
	subjects := make(map[string]resource.Resource)
	for _, q := range x.propertySet(p).Slice() {
		for _, a := range x.r.ont.Data.Assertions(q) {
			k := a.Subject.Key()
			if _, ok := values[k]; !ok {
				values[k] = resource.NewSet()
				subjects[k] = a.Subject
			}
			values[k].Add(a.Object)
		}
	}
	return values, subjects
}

func withinBounds(n, lo, hi int) bool {
	return (lo <= 0 || n >= lo) && (hi <= 0 || n <= hi)
}

func (x *extensionCache) restriction(e ontology.Restriction) resource.Set {
	out := resource.NewSet()
	if e.Property.IsZero() {
		return out
	}
	values, subjects := x.valuesBySubject(e.Property)

	switch e.Kind {
	case ontology.Cardinality:
		for k, objs := range values {
			if withinBounds(len(objs), e.Min, e.Max) {
				out.Add(subjects[k])
			}
		}

	case ontology.QualifiedCardinality:
		onClass := x.classes.closedUnder(e.Class)
		for k, objs := range values {
			n := 0
			for _, o := range objs {
				if x.typeClosure(o).Intersects(onClass) {
					n++
				}
			}
			if withinBounds(n, e.Min, e.Max) {
				out.Add(subjects[k])
			}
		}

	case ontology.AllValuesFrom, ontology.SomeValuesFrom:
		from := x.members(e.Class)
		for k, objs := range values {
			matching, other := 0, 0
			for _, o := range objs {
				if from.Has(o) {
					matching++
				} else {
					other++
				}
			}
			if matching > 0 && (e.Kind == ontology.SomeValuesFrom || other == 0) {
				out.Add(subjects[k])
			}
		}

	case ontology.HasSelf:
		for k, objs := range values {
			if objs.Intersects(x.sameAs(subjects[k])) {
				out.Add(subjects[k])
			}
		}

	case ontology.HasValue:
		required := resource.NewSet(e.Value)
		if e.Value.IsURI() {
			required = x.sameAs(e.Value)
		}
		for k, objs := range values {
			if objs.Intersects(required) {
				out.Add(subjects[k])
			}
		}
	}
	return out
}
