package taxonomy

import (
	"sort"
	"strconv"

	"github.com/c360studio/semtax/resource"
)

// Category labels the relation family a register holds.
type Category uint8

const (
	// Model registers hold class and property relations.
	Model Category = iota
	// Annotation registers hold labels and comments.
	Annotation
	// Data registers hold individual relations and assertions.
	Data
)

// String returns the string representation of Category.
func (c Category) String() string {
	switch c {
	case Model:
		return "model"
	case Annotation:
		return "annotation"
	case Data:
		return "data"
	default:
		return "category(" + strconv.Itoa(int(c)) + ")"
	}
}

type record struct {
	entry Entry
	seq   uint64
	count int
}

type index map[string]map[EntryID]struct{}

func (ix index) add(key string, id EntryID) {
	ids, ok := ix[key]
	if !ok {
		ids = make(map[EntryID]struct{})
		ix[key] = ids
	}
	ids[id] = struct{}{}
}

func (ix index) remove(key string, id EntryID) {
	ids, ok := ix[key]
	if !ok {
		return
	}
	delete(ids, id)
	if len(ids) == 0 {
		delete(ix, key)
	}
}

// Taxonomy is an insertion-ordered collection of entries with a reverse lookup
// by entry id and eager subject, predicate and object indexes.
//
// A Taxonomy is not synchronized. Concurrent reads of an unchanging register
// are safe; writes must be serialized by the caller with readers excluded.
type Taxonomy struct {
	category        Category
	allowDuplicates bool

	records map[EntryID]*record
	nextSeq uint64

	bySubject   index
	byPredicate index
	byObject    index
	bySP        index
	byPO        index
}

// New creates an empty register.
func New(category Category, allowDuplicates bool) *Taxonomy {
	return &Taxonomy{
		category:        category,
		allowDuplicates: allowDuplicates,
		records:         make(map[EntryID]*record),
		bySubject:       make(index),
		byPredicate:     make(index),
		byObject:        make(index),
		bySP:            make(index),
		byPO:            make(index),
	}
}

// Category returns the register's category.
func (t *Taxonomy) Category() Category { return t.category }

// AllowsDuplicates reports whether repeated entries are counted.
func (t *Taxonomy) AllowsDuplicates() bool { return t.allowDuplicates }

func pairKey(a, b resource.Resource) string { return a.Key() + " " + b.Key() }

// Add inserts the entry. When the entry id is already present and duplicates
// are disallowed, Add returns false and leaves the register unchanged except
// that an Asserted entry upgrades the provenance of a derived one, so that
// clearing inferences never retracts a fact someone stated explicitly.
func (t *Taxonomy) Add(e Entry) bool {
	if e.Subject.IsZero() || e.Predicate.IsZero() || e.Object.IsZero() {
		return false
	}
	if e.id == 0 {
		e.id = HashTriple(e.Subject, e.Predicate, e.Object)
	}
	if rec, ok := t.records[e.id]; ok {
		if e.Provenance < rec.entry.Provenance {
			rec.entry.Provenance = e.Provenance
		}
		if !t.allowDuplicates {
			return false
		}
		rec.count++
		return true
	}

	t.nextSeq++
	t.records[e.id] = &record{entry: e, seq: t.nextSeq, count: 1}
	t.bySubject.add(e.Subject.Key(), e.id)
	t.byPredicate.add(e.Predicate.Key(), e.id)
	t.byObject.add(e.Object.Key(), e.id)
	t.bySP.add(pairKey(e.Subject, e.Predicate), e.id)
	t.byPO.add(pairKey(e.Predicate, e.Object), e.id)
	return true
}

// AddTriple builds an entry and adds it. It returns false for a missing
// component.
func (t *Taxonomy) AddTriple(s, p, o resource.Resource, prov Provenance) bool {
	e, err := NewEntry(s, p, o, prov)
	if err != nil {
		return false
	}
	return t.Add(e)
}

// Remove deletes every occurrence of the entry's id.
func (t *Taxonomy) Remove(e Entry) bool {
	id := e.id
	if id == 0 {
		if e.Subject.IsZero() || e.Predicate.IsZero() || e.Object.IsZero() {
			return false
		}
		id = HashTriple(e.Subject, e.Predicate, e.Object)
	}
	return t.removeID(id)
}

// RemoveTriple deletes the entry for (s, p, o) if present.
func (t *Taxonomy) RemoveTriple(s, p, o resource.Resource) bool {
	if s.IsZero() || p.IsZero() || o.IsZero() {
		return false
	}
	return t.removeID(HashTriple(s, p, o))
}

func (t *Taxonomy) removeID(id EntryID) bool {
	rec, ok := t.records[id]
	if !ok {
		return false
	}
	e := rec.entry
	delete(t.records, id)
	t.bySubject.remove(e.Subject.Key(), id)
	t.byPredicate.remove(e.Predicate.Key(), id)
	t.byObject.remove(e.Object.Key(), id)
	t.bySP.remove(pairKey(e.Subject, e.Predicate), id)
	t.byPO.remove(pairKey(e.Predicate, e.Object), id)
	return true
}

// RemoveWhere deletes every entry for which match returns true and returns the count.
func (t *Taxonomy) RemoveWhere(match func(Entry) bool) int {
	var ids []EntryID
	for id, rec := range t.records {
		if match(rec.entry) {
			ids = append(ids, id)
		}
	}
	for _, id := range ids {
		t.removeID(id)
	}
	return len(ids)
}

// Contains reports whether the entry's id is present.
func (t *Taxonomy) Contains(e Entry) bool {
	id := e.id
	if id == 0 {
		if e.Subject.IsZero() || e.Predicate.IsZero() || e.Object.IsZero() {
			return false
		}
		id = HashTriple(e.Subject, e.Predicate, e.Object)
	}
	_, ok := t.records[id]
	return ok
}

// ContainsTriple reports whether (s, p, o) is present.
func (t *Taxonomy) ContainsTriple(s, p, o resource.Resource) bool {
	if s.IsZero() || p.IsZero() || o.IsZero() {
		return false
	}
	_, ok := t.records[HashTriple(s, p, o)]
	return ok
}

// Lookup returns the entry with the given id.
func (t *Taxonomy) Lookup(id EntryID) (Entry, bool) {
	rec, ok := t.records[id]
	if !ok {
		return Entry{}, false
	}
	return rec.entry, true
}

// Occurrences returns how many times the entry id was added. It is at most 1
// unless duplicates are allowed.
func (t *Taxonomy) Occurrences(id EntryID) int {
	if rec, ok := t.records[id]; ok {
		return rec.count
	}
	return 0
}

// Len returns the number of distinct entries.
func (t *Taxonomy) Len() int { return len(t.records) }

// Entries returns the distinct entries in insertion order.
func (t *Taxonomy) Entries() []Entry {
	return t.collect(nil)
}

func (t *Taxonomy) collect(ids map[EntryID]struct{}) []Entry {
	var recs []*record
	if ids == nil {
		recs = make([]*record, 0, len(t.records))
		for _, rec := range t.records {
			recs = append(recs, rec)
		}
	} else {
		recs = make([]*record, 0, len(ids))
		for id := range ids {
			if rec, ok := t.records[id]; ok {
				recs = append(recs, rec)
			}
		}
	}
	sort.Slice(recs, func(i, j int) bool { return recs[i].seq < recs[j].seq })
	out := make([]Entry, len(recs))
	for i, rec := range recs {
		out[i] = rec.entry
	}
	return out
}

func (t *Taxonomy) sub(ids map[EntryID]struct{}) *Taxonomy {
	out := New(t.category, t.allowDuplicates)
	for _, e := range t.collect(ids) {
		out.copyIn(e, t.records[e.id].count)
	}
	return out
}

func (t *Taxonomy) copyIn(e Entry, count int) {
	t.Add(e)
	if t.allowDuplicates {
		t.records[e.id].count += count - 1
	}
}

// SelectBySubject returns the sub-register of entries with subject s.
func (t *Taxonomy) SelectBySubject(s resource.Resource) *Taxonomy {
	return t.sub(t.idsOrEmpty(t.bySubject, s.Key()))
}

// SelectByPredicate returns the sub-register of entries with predicate p.
func (t *Taxonomy) SelectByPredicate(p resource.Resource) *Taxonomy {
	return t.sub(t.idsOrEmpty(t.byPredicate, p.Key()))
}

// SelectByObject returns the sub-register of entries with object o.
func (t *Taxonomy) SelectByObject(o resource.Resource) *Taxonomy {
	return t.sub(t.idsOrEmpty(t.byObject, o.Key()))
}

func (t *Taxonomy) idsOrEmpty(ix index, key string) map[EntryID]struct{} {
	if ids, ok := ix[key]; ok {
		return ids
	}
	return map[EntryID]struct{}{}
}

// Select returns entries matching the pattern; zero components are wildcards.
func (t *Taxonomy) Select(s, p, o resource.Resource) *Taxonomy {
	return t.sub(t.match(s, p, o))
}

// Match is Select without building a register.
func (t *Taxonomy) Match(s, p, o resource.Resource) []Entry {
	return t.collect(t.match(s, p, o))
}

func (t *Taxonomy) match(s, p, o resource.Resource) map[EntryID]struct{} {
	var candidates []map[EntryID]struct{}
	switch {
	case !s.IsZero() && !p.IsZero():
		candidates = append(candidates, t.idsOrEmpty(t.bySP, pairKey(s, p)))
	case !p.IsZero() && !o.IsZero():
		candidates = append(candidates, t.idsOrEmpty(t.byPO, pairKey(p, o)))
	}
	if !s.IsZero() {
		candidates = append(candidates, t.idsOrEmpty(t.bySubject, s.Key()))
	}
	if !p.IsZero() {
		candidates = append(candidates, t.idsOrEmpty(t.byPredicate, p.Key()))
	}
	if !o.IsZero() {
		candidates = append(candidates, t.idsOrEmpty(t.byObject, o.Key()))
	}
	if len(candidates) == 0 {
		return nil
	}
	smallest := candidates[0]
	for _, c := range candidates[1:] {
		if len(c) < len(smallest) {
			smallest = c
		}
	}
	out := make(map[EntryID]struct{}, len(smallest))
	for id := range smallest {
		e := t.records[id].entry
		if !s.IsZero() && !e.Subject.Equal(s) {
			continue
		}
		if !p.IsZero() && !e.Predicate.Equal(p) {
			continue
		}
		if !o.IsZero() && !e.Object.Equal(o) {
			continue
		}
		out[id] = struct{}{}
	}
	return out
}

// SelectByProvenance returns entries carrying any of the given provenances.
func (t *Taxonomy) SelectByProvenance(provs ...Provenance) *Taxonomy {
	ids := make(map[EntryID]struct{})
	for id, rec := range t.records {
		for _, p := range provs {
			if rec.entry.Provenance == p {
				ids[id] = struct{}{}
				break
			}
		}
	}
	return t.sub(ids)
}

// Objects returns the objects of entries (s, p, ?), key-sorted.
func (t *Taxonomy) Objects(s, p resource.Resource) []resource.Resource {
	ids := t.bySP[pairKey(s, p)]
	out := make([]resource.Resource, 0, len(ids))
	for id := range ids {
		out = append(out, t.records[id].entry.Object)
	}
	resource.Sort(out)
	return out
}

// Subjects returns the subjects of entries (?, p, o), key-sorted.
func (t *Taxonomy) Subjects(p, o resource.Resource) []resource.Resource {
	ids := t.byPO[pairKey(p, o)]
	out := make([]resource.Resource, 0, len(ids))
	for id := range ids {
		out = append(out, t.records[id].entry.Subject)
	}
	resource.Sort(out)
	return out
}

// HasSubject reports whether any entry has subject s.
func (t *Taxonomy) HasSubject(s resource.Resource) bool {
	return len(t.bySubject[s.Key()]) > 0
}

// Union returns a register with the entries of both. Category and duplicate
// policy come from the receiver.
func (t *Taxonomy) Union(other *Taxonomy) *Taxonomy {
	out := t.Clone()
	if other != nil {
		for _, e := range other.Entries() {
			out.Add(e)
		}
	}
	return out
}

// Intersect returns the entries of t whose ids are also in other.
func (t *Taxonomy) Intersect(other *Taxonomy) *Taxonomy {
	ids := make(map[EntryID]struct{})
	if other != nil {
		for id := range t.records {
			if _, ok := other.records[id]; ok {
				ids[id] = struct{}{}
			}
		}
	}
	return t.sub(ids)
}

// Difference returns the entries of t whose ids are not in other.
func (t *Taxonomy) Difference(other *Taxonomy) *Taxonomy {
	ids := make(map[EntryID]struct{})
	for id := range t.records {
		if other != nil {
			if _, ok := other.records[id]; ok {
				continue
			}
		}
		ids[id] = struct{}{}
	}
	return t.sub(ids)
}

// Clone returns an independent copy.
func (t *Taxonomy) Clone() *Taxonomy {
	return t.sub(nil)
}

// Merge adds every entry of other and returns how many were new.
func (t *Taxonomy) Merge(other *Taxonomy) int {
	if other == nil {
		return 0
	}
	added := 0
	for _, e := range other.Entries() {
		if t.Add(e) {
			added++
		}
	}
	return added
}
