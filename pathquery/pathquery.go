// Package pathquery evaluates ordered property paths over a data register.
//
// A path p1/p2/.../pn matches (start, end) when there are resources v1..vn-1
// with (start p1 v1), (v1 p2 v2), ..., (vn-1 pn end) all present.
package pathquery

import (
	"sort"

	"github.com/c360studio/semtax/resource"
	"github.com/c360studio/semtax/taxonomy"
)

// Pair is one (start, end) binding of a path.
type Pair struct {
	Start resource.Resource
	End   resource.Resource
}

func (p Pair) key() string { return p.Start.Key() + " " + p.End.Key() }

// Evaluator joins entries step by step. The zero value is ready to use.
type Evaluator struct{}

// Evaluate returns every distinct (start, end) pair connected by steps, in
// key order. An empty path or a zero step yields no pairs.
func (Evaluator) Evaluate(data *taxonomy.Taxonomy, steps []resource.Resource) []Pair {
	if data == nil || len(steps) == 0 {
		return nil
	}
	for _, s := range steps {
		if s.IsZero() {
			return nil
		}
	}

	frontier := make(map[string]Pair)
	for _, e := range data.Match(resource.Resource{}, steps[0], resource.Resource{}) {
		p := Pair{Start: e.Subject, End: e.Object}
		frontier[p.key()] = p
	}
	for _, step := range steps[1:] {
		if len(frontier) == 0 {
			return nil
		}
		next := make(map[string]Pair)
		for _, p := range frontier {
			if !p.End.IsURI() {
				continue
			}
			for _, o := range data.Objects(p.End, step) {
				q := Pair{Start: p.Start, End: o}
				next[q.key()] = q
			}
		}
		frontier = next
	}

	out := make([]Pair, 0, len(frontier))
	for _, p := range frontier {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool {
		if a, b := out[i].Start.Key(), out[j].Start.Key(); a != b {
			return a < b
		}
		return out[i].End.Key() < out[j].End.Key()
	})
	return out
}
