// Package resource is the value model for ontology terms: classes, properties
// and individuals identified by IRI, and literals identified by value.
package resource

import (
	"sort"
	"strings"

	"github.com/c360studio/semtax/vocabulary/owl"
)

// Kind distinguishes reference-identified terms from value-identified ones.
type Kind uint8

const (
	// KindNone is the zero Kind of an absent resource.
	KindNone Kind = iota
	// KindURI covers classes, properties and individuals.
	KindURI
	// KindLiteral covers typed and plain literals.
	KindLiteral
)

// String returns the string representation of Kind.
func (k Kind) String() string {
	switch k {
	case KindURI:
		return "uri"
	case KindLiteral:
		return "literal"
	default:
		return "none"
	}
}

// Resource is an ontology term. The zero value is an absent resource.
type Resource struct {
	kind     Kind
	value    string // IRI for URIs, lexical form for literals
	datatype string
	lang     string
	key      string
}

// NewURI returns a reference-identified resource. An empty IRI yields the
// zero (absent) resource.
func NewURI(iri string) Resource {
	if iri == "" {
		return Resource{}
	}
	return Resource{kind: KindURI, value: iri, key: "<" + iri + ">"}
}

// NewTypedLiteral returns a literal with an explicit datatype IRI. An empty
// datatype, or xsd:string, produces a simple literal.
func NewTypedLiteral(value, datatype string) Resource {
	if datatype == "" || datatype == owl.XSDString {
		return NewPlainLiteral(value, "")
	}
	if datatype == owl.RDFLangString {
		// A langString without a tag degrades to a simple literal.
		return NewPlainLiteral(value, "")
	}
	return Resource{
		kind:     KindLiteral,
		value:    value,
		datatype: datatype,
		key:      quote(value) + "^^<" + datatype + ">",
	}
}

// NewPlainLiteral returns a simple literal (lang == "") or a language-tagged
// literal. Language tags compare case-insensitively.
func NewPlainLiteral(value, lang string) Resource {
	if lang == "" {
		return Resource{kind: KindLiteral, value: value, datatype: owl.XSDString, key: quote(value)}
	}
	lang = strings.ToLower(lang)
	return Resource{
		kind:     KindLiteral,
		value:    value,
		datatype: owl.RDFLangString,
		lang:     lang,
		key:      quote(value) + "@" + lang,
	}
}

func quote(v string) string {
	r := strings.NewReplacer(`\`, `\\`, `"`, `\"`, "\n", `\n`, "\r", `\r`)
	return `"` + r.Replace(v) + `"`
}

// Kind reports whether the resource is a URI, a literal, or absent.
func (r Resource) Kind() Kind { return r.kind }

// IsZero reports whether the resource is absent.
func (r Resource) IsZero() bool { return r.kind == KindNone }

// IsURI reports whether the resource is reference-identified.
func (r Resource) IsURI() bool { return r.kind == KindURI }

// IsLiteral reports whether the resource is value-identified.
func (r Resource) IsLiteral() bool { return r.kind == KindLiteral }

// IRI returns the IRI of a URI resource, or "" for literals.
func (r Resource) IRI() string {
	if r.kind != KindURI {
		return ""
	}
	return r.value
}

// Value returns the lexical form of a literal, or the IRI of a URI.
func (r Resource) Value() string { return r.value }

// Datatype returns the datatype IRI of a literal, or "" for URIs.
func (r Resource) Datatype() string { return r.datatype }

// Lang returns the language tag of a literal.
func (r Resource) Lang() string { return r.lang }

// Key is the stable pattern-member identifier of the resource. Two resources
// are the same term exactly when their keys are equal.
func (r Resource) Key() string { return r.key }

// Equal reports whether two resources denote the same term.
func (r Resource) Equal(other Resource) bool { return r.key == other.key }

// String returns the key, which doubles as an N-Triples style rendering.
func (r Resource) String() string { return r.key }

// Sort orders resources by key in place.
func Sort(rs []Resource) {
	sort.Slice(rs, func(i, j int) bool { return rs[i].key < rs[j].key })
}
