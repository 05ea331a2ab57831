package taxonomy

import (
	"encoding/binary"
	"strconv"

	"github.com/zeebo/blake3"

	"github.com/c360studio/semtax/resource"
)

// Provenance records where an entry came from.
type Provenance uint8

const (
	// Asserted entries were stated explicitly through the API or an import.
	Asserted Provenance = iota
	// DerivedByConstruction entries were added by modeling helpers, such as
	// the reverse restatement of a symmetric axiom.
	DerivedByConstruction
	// DerivedByReasoner entries were written back by a reasoning pass.
	DerivedByReasoner
)

// String returns the string representation of Provenance.
func (p Provenance) String() string {
	switch p {
	case Asserted:
		return "asserted"
	case DerivedByConstruction:
		return "construction"
	case DerivedByReasoner:
		return "reasoner"
	default:
		return "provenance(" + strconv.Itoa(int(p)) + ")"
	}
}

// ParseProvenance is the inverse of Provenance.String.
func ParseProvenance(s string) (Provenance, bool) {
	switch s {
	case "asserted":
		return Asserted, true
	case "construction":
		return DerivedByConstruction, true
	case "reasoner":
		return DerivedByReasoner, true
	default:
		return Asserted, false
	}
}

// EntryID is the content hash of an entry's canonical triple string. It is
// the entry's identity: two entries with the same triple share an id
// regardless of provenance. Distinct triples whose hashes collide are merged;
// this is an accepted limitation of a 64-bit identity.
type EntryID uint64

// String renders the id as fixed-width hex.
func (id EntryID) String() string {
	s := strconv.FormatUint(uint64(id), 16)
	for len(s) < 16 {
		s = "0" + s
	}
	return s
}

// entryDomainKey separates entry hashes from any other BLAKE3 use of the same
// bytes. ASCII of the domain name, zero padded to 32 bytes.
var entryDomainKey = [32]byte{
	's', 'e', 'm', 't', 'a', 'x', '.', 't', 'a', 'x', 'o', 'n', 'o', 'm', 'y', '.',
	'e', 'n', 't', 'r', 'y', 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0,
}

// HashTriple computes the EntryID of the canonical string "<s> <p> <o>".
func HashTriple(s, p, o resource.Resource) EntryID {
	return hashCanonical(s.Key() + " " + p.Key() + " " + o.Key())
}

func hashCanonical(canonical string) EntryID {
	h, err := blake3.NewKeyed(entryDomainKey[:])
	if err != nil {
		panic("taxonomy: BLAKE3 keyed hash initialization failed: " + err.Error())
	}
	_, _ = h.WriteString(canonical)
	var sum [32]byte
	h.Sum(sum[:0])
	return EntryID(binary.BigEndian.Uint64(sum[:8]))
}

// Entry is one (subject, predicate, object) fact with its provenance.
type Entry struct {
	Subject    resource.Resource
	Predicate  resource.Resource
	Object     resource.Resource
	Provenance Provenance

	id EntryID
}

// NewEntry builds an entry, failing with a *ModelError when a component is
// absent. Subjects and predicates must be URIs; only objects may be literals.
func NewEntry(s, p, o resource.Resource, prov Provenance) (Entry, error) {
	switch {
	case s.IsZero():
		return Entry{}, &ModelError{Component: "subject"}
	case p.IsZero():
		return Entry{}, &ModelError{Component: "predicate"}
	case o.IsZero():
		return Entry{}, &ModelError{Component: "object"}
	}
	return Entry{
		Subject:    s,
		Predicate:  p,
		Object:     o,
		Provenance: prov,
		id:         HashTriple(s, p, o),
	}, nil
}

// MustEntry is NewEntry for statically known components. It panics on a
// missing component.
func MustEntry(s, p, o resource.Resource, prov Provenance) Entry {
	e, err := NewEntry(s, p, o, prov)
	if err != nil {
		panic("taxonomy: " + err.Error())
	}
	return e
}

// ID returns the entry's content hash.
func (e Entry) ID() EntryID { return e.id }

// WithProvenance returns a copy of the entry tagged with p. The id is
// unchanged.
func (e Entry) WithProvenance(p Provenance) Entry {
	e.Provenance = p
	return e
}

// String renders the entry as an N-Triples statement.
func (e Entry) String() string {
	return e.Subject.Key() + " " + e.Predicate.Key() + " " + e.Object.Key() + " ."
}
