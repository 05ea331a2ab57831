package export

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/c360studio/semstreams/message"
	"gopkg.in/yaml.v3"

	"github.com/c360studio/semtax/ontology"
	"github.com/c360studio/semtax/vocabulary/owl"
)

// Document is the YAML form of an ontology.
//
//	iri: http://example.org/zoo
//	prefixes:
//	  ex: http://example.org/zoo#
//	facts:
//	  - {s: ex:Dog, p: rdfs:subClassOf, o: ex:Animal}
//	  - {s: ex:rex, p: ex:age, value: "4", datatype: xsd:int}
type Document struct {
	IRI      string            `yaml:"iri"`
	Prefixes map[string]string `yaml:"prefixes,omitempty"`
	Facts    []Fact            `yaml:"facts"`
}

// Fact is one document statement. O names a resource; Value carries a
// literal with an optional Datatype or Lang.
type Fact struct {
	S        string `yaml:"s"`
	P        string `yaml:"p"`
	O        string `yaml:"o,omitempty"`
	Value    string `yaml:"value,omitempty"`
	Datatype string `yaml:"datatype,omitempty"`
	Lang     string `yaml:"lang,omitempty"`
	Derived  bool   `yaml:"derived,omitempty"`
}

var builtinPrefixes = map[string]string{
	"rdf":  owl.RDFNamespace,
	"rdfs": owl.RDFSNamespace,
	"owl":  owl.OWLNamespace,
	"xsd":  owl.XSDNamespace,
}

// LoadDocument decodes a YAML ontology document.
func LoadDocument(r io.Reader) (*Document, error) {
	var doc Document
	dec := yaml.NewDecoder(r)
	if err := dec.Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return &Document{}, nil
		}
		return nil, fmt.Errorf("decode document: %w", err)
	}
	return &doc, nil
}

// LoadDocumentFile reads and decodes the document at path.
func LoadDocumentFile(path string) (*Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open document: %w", err)
	}
	defer f.Close()

	doc, err := LoadDocument(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return doc, nil
}

// expand resolves a CURIE against the document and built-in prefixes. The
// single token "a" stands for rdf:type.
func (d *Document) expand(term string) string {
	if term == "a" {
		return owl.RDFType
	}
	prefix, local, ok := strings.Cut(term, ":")
	if !ok || strings.HasPrefix(local, "//") {
		return term
	}
	if ns, ok := d.Prefixes[prefix]; ok {
		return ns + local
	}
	if ns, ok := builtinPrefixes[prefix]; ok {
		return ns + local
	}
	return term
}

// Triples converts the document's facts to semstreams triples.
func (d *Document) Triples() ([]message.Triple, error) {
	triples := make([]message.Triple, 0, len(d.Facts))
	for i, f := range d.Facts {
		if f.S == "" || f.P == "" {
			return nil, fmt.Errorf("fact %d: subject and predicate are required", i)
		}
		t := message.Triple{
			Subject:    d.expand(f.S),
			Predicate:  d.expand(f.P),
			Source:     SourceAsserted,
			Confidence: 1.0,
		}
		if f.Derived {
			t.Source = SourceReasoner
			t.Confidence = 0.9
		}
		switch {
		case f.O != "" && f.Value != "":
			return nil, fmt.Errorf("fact %d: o and value are mutually exclusive", i)
		case f.O != "":
			t.Object = d.expand(f.O)
		default:
			t.Object = f.Value
			t.Datatype = d.expand(f.Datatype)
			if t.Datatype == "" {
				t.Datatype = owl.XSDString
			}
			if f.Lang != "" {
				t.Datatype = "@" + f.Lang
			}
		}
		triples = append(triples, t)
	}
	return triples, nil
}

// Ontology builds an ontology from the document.
func (d *Document) Ontology(opts ...ontology.Option) (*ontology.Ontology, error) {
	triples, err := d.Triples()
	if err != nil {
		return nil, fmt.Errorf("document %s: %w", d.IRI, err)
	}
	return FromTriples(d.IRI, triples, opts...)
}

// ResolveDocuments expands glob patterns (with ** support) relative to root
// into a sorted, de-duplicated list of document paths. Plain paths must
// exist.
func ResolveDocuments(root string, patterns []string) ([]string, error) {
	seen := make(map[string]bool)
	var out []string
	for _, pattern := range patterns {
		if !filepath.IsAbs(pattern) {
			pattern = filepath.Join(root, pattern)
		}
		if !strings.ContainsAny(pattern, "*?[{") {
			if _, err := os.Stat(pattern); err != nil {
				return nil, fmt.Errorf("resolve document: %w", err)
			}
			if !seen[pattern] {
				seen[pattern] = true
				out = append(out, pattern)
			}
			continue
		}
		matches, err := doublestar.FilepathGlob(pattern)
		if err != nil {
			return nil, fmt.Errorf("glob error: %w", err)
		}
		for _, m := range matches {
			if info, err := os.Stat(m); err != nil || info.IsDir() {
				continue
			}
			if !seen[m] {
				seen[m] = true
				out = append(out, m)
			}
		}
	}
	sort.Strings(out)
	return out, nil
}

// LoadOntology merges the documents at paths into one ontology named iri.
// An empty iri takes the first document's.
func LoadOntology(iri string, paths []string, opts ...ontology.Option) (*ontology.Ontology, error) {
	var merged *ontology.Ontology
	for _, path := range paths {
		doc, err := LoadDocumentFile(path)
		if err != nil {
			return nil, err
		}
		if iri == "" {
			iri = doc.IRI
		}
		o, err := doc.Ontology(opts...)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		if merged == nil {
			merged = ontology.New(iri, opts...)
		}
		merged.Merge(o)
	}
	if merged == nil {
		merged = ontology.New(iri, opts...)
	}
	return merged, nil
}
