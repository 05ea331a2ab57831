package resource

// Set is a key-indexed set of resources.
type Set map[string]Resource

// NewSet returns a set holding the given resources, skipping absent ones.
func NewSet(rs ...Resource) Set {
	s := make(Set, len(rs))
	for _, r := range rs {
		s.Add(r)
	}
	return s
}

// Add inserts r and reports whether it was not already present.
func (s Set) Add(r Resource) bool {
	if r.IsZero() {
		return false
	}
	if _, ok := s[r.key]; ok {
		return false
	}
	s[r.key] = r
	return true
}

// AddAll inserts every resource of other.
func (s Set) AddAll(other Set) {
	for k, r := range other {
		s[k] = r
	}
}

// Has reports whether r is in the set.
func (s Set) Has(r Resource) bool {
	_, ok := s[r.key]
	return ok
}

// Delete removes r from the set.
func (s Set) Delete(r Resource) { delete(s, r.key) }

// Intersects reports whether the two sets share at least one member.
func (s Set) Intersects(other Set) bool {
	small, large := s, other
	if len(large) < len(small) {
		small, large = large, small
	}
	for k := range small {
		if _, ok := large[k]; ok {
			return true
		}
	}
	return false
}

// Intersect returns the members present in both sets.
func (s Set) Intersect(other Set) Set {
	out := make(Set)
	for k, r := range s {
		if _, ok := other[k]; ok {
			out[k] = r
		}
	}
	return out
}

// Difference returns the members of s that are not in other.
func (s Set) Difference(other Set) Set {
	out := make(Set)
	for k, r := range s {
		if _, ok := other[k]; !ok {
			out[k] = r
		}
	}
	return out
}

// Clone returns a shallow copy of the set.
func (s Set) Clone() Set {
	out := make(Set, len(s))
	for k, r := range s {
		out[k] = r
	}
	return out
}

// Slice returns the members sorted by key.
func (s Set) Slice() []Resource {
	out := make([]Resource, 0, len(s))
	for _, r := range s {
		out = append(out, r)
	}
	Sort(out)
	return out
}
