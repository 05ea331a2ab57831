// Package storage persists ontologies: a SQLite fact store, deterministic
// CBOR snapshots, and a NATS KV snapshot store.
package storage

import (
	"fmt"
	"reflect"

	"github.com/fxamacker/cbor/v2"

	"github.com/c360studio/semtax/ontology"
	"github.com/c360studio/semtax/resource"
	"github.com/c360studio/semtax/taxonomy"
)

// Core Deterministic Encoding: the same ontology always yields the same
// bytes.
var (
	encMode cbor.EncMode
	decMode cbor.DecMode
)

func init() {
	var err error
	encMode, err = cbor.CoreDetEncOptions().EncMode()
	if err != nil {
		panic("storage: CBOR encoder initialization failed: " + err.Error())
	}
	decMode, err = cbor.DecOptions{
		DefaultMapType: reflect.TypeOf(map[string]any(nil)),
	}.DecMode()
	if err != nil {
		panic("storage: CBOR decoder initialization failed: " + err.Error())
	}
}

// snapshotVersion is bumped whenever the encoded layout changes.
const snapshotVersion = 1

// Snapshot is the serialized form of an ontology.
type Snapshot struct {
	Version   int              `cbor:"version"`
	IRI       string           `cbor:"iri"`
	Registers []RegisterRecord `cbor:"registers"`
}

// RegisterRecord holds one register's entries in insertion order.
type RegisterRecord struct {
	Name    string   `cbor:"name"`
	Entries []Record `cbor:"entries"`
}

// Record is a storable entry.
type Record struct {
	Subject    string `cbor:"s"`
	Predicate  string `cbor:"p"`
	Object     string `cbor:"o"`
	Literal    bool   `cbor:"lit,omitempty"`
	Datatype   string `cbor:"dt,omitempty"`
	Lang       string `cbor:"lang,omitempty"`
	Provenance string `cbor:"prov"`
}

func recordOf(e taxonomy.Entry) Record {
	r := Record{
		Subject:    e.Subject.IRI(),
		Predicate:  e.Predicate.IRI(),
		Object:     e.Object.Value(),
		Provenance: e.Provenance.String(),
	}
	if e.Object.IsLiteral() {
		r.Literal = true
		r.Datatype = e.Object.Datatype()
		r.Lang = e.Object.Lang()
	}
	return r
}

func (r Record) entry() (taxonomy.Entry, error) {
	var obj resource.Resource
	switch {
	case !r.Literal:
		obj = resource.NewURI(r.Object)
	case r.Lang != "":
		obj = resource.NewPlainLiteral(r.Object, r.Lang)
	default:
		obj = resource.NewTypedLiteral(r.Object, r.Datatype)
	}
	prov, ok := taxonomy.ParseProvenance(r.Provenance)
	if !ok {
		return taxonomy.Entry{}, fmt.Errorf("unknown provenance %q", r.Provenance)
	}
	return taxonomy.NewEntry(resource.NewURI(r.Subject), resource.NewURI(r.Predicate), obj, prov)
}

// NewSnapshot captures every register of o.
func NewSnapshot(o *ontology.Ontology) Snapshot {
	s := Snapshot{Version: snapshotVersion, IRI: o.IRI.IRI()}
	for _, reg := range o.Registers() {
		entries := reg.Taxonomy.Entries()
		rr := RegisterRecord{Name: reg.Name, Entries: make([]Record, 0, len(entries))}
		for _, e := range entries {
			rr.Entries = append(rr.Entries, recordOf(e))
		}
		s.Registers = append(s.Registers, rr)
	}
	return s
}

// Ontology rebuilds the captured ontology. The seed vocabulary is restored
// from the snapshot itself, not re-merged.
func (s Snapshot) Ontology() (*ontology.Ontology, error) {
	o := ontology.New(s.IRI, ontology.WithoutSeed())
	for _, rr := range s.Registers {
		tx, ok := o.RegisterByName(rr.Name)
		if !ok {
			return nil, fmt.Errorf("restore snapshot: unknown register %q", rr.Name)
		}
		for i, r := range rr.Entries {
			e, err := r.entry()
			if err != nil {
				return nil, fmt.Errorf("restore snapshot: %s entry %d: %w", rr.Name, i, err)
			}
			tx.Add(e)
		}
	}
	return o, nil
}

// EncodeSnapshot encodes o as deterministic CBOR.
func EncodeSnapshot(o *ontology.Ontology) ([]byte, error) {
	data, err := encMode.Marshal(NewSnapshot(o))
	if err != nil {
		return nil, fmt.Errorf("encode snapshot: %w", err)
	}
	return data, nil
}

// DecodeSnapshot rebuilds an ontology from EncodeSnapshot output.
func DecodeSnapshot(data []byte) (*ontology.Ontology, error) {
	var s Snapshot
	if err := decMode.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("decode snapshot: %w", err)
	}
	if s.Version != snapshotVersion {
		return nil, fmt.Errorf("decode snapshot: unsupported version %d", s.Version)
	}
	return s.Ontology()
}
