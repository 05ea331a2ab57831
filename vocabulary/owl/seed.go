package owl

import (
	_ "embed"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed seed.yaml
var seedYAML []byte

// SeedFact is one built-in (subject, predicate, object) statement with
// fully expanded IRIs.
type SeedFact struct {
	Subject   string
	Predicate string
	Object    string
}

type seedDocument struct {
	Prefixes   map[string]string `yaml:"prefixes"`
	Classes    []string          `yaml:"classes"`
	Datatypes  []string          `yaml:"datatypes"`
	Subclasses [][2]string       `yaml:"subclasses"`
}

// LoadSeed parses the embedded seed vocabulary. Every call returns a fresh
// slice; callers that need a shared value should cache it themselves.
func LoadSeed() ([]SeedFact, error) {
	var doc seedDocument
	if err := yaml.Unmarshal(seedYAML, &doc); err != nil {
		return nil, fmt.Errorf("parse seed vocabulary: %w", err)
	}

	expand := func(name string) (string, error) {
		prefix, local, ok := strings.Cut(name, ":")
		if !ok {
			return "", fmt.Errorf("seed term %q is not a prefixed name", name)
		}
		ns, ok := doc.Prefixes[prefix]
		if !ok {
			return "", fmt.Errorf("seed term %q uses unknown prefix %q", name, prefix)
		}
		return ns + local, nil
	}

	facts := make([]SeedFact, 0, len(doc.Classes)+len(doc.Datatypes)+len(doc.Subclasses))
	for _, c := range doc.Classes {
		iri, err := expand(c)
		if err != nil {
			return nil, err
		}
		facts = append(facts, SeedFact{Subject: iri, Predicate: RDFType, Object: Class})
	}
	for _, d := range doc.Datatypes {
		iri, err := expand(d)
		if err != nil {
			return nil, err
		}
		facts = append(facts, SeedFact{Subject: iri, Predicate: RDFType, Object: RDFSDatatype})
	}
	for _, pair := range doc.Subclasses {
		sub, err := expand(pair[0])
		if err != nil {
			return nil, err
		}
		super, err := expand(pair[1])
		if err != nil {
			return nil, err
		}
		facts = append(facts, SeedFact{Subject: sub, Predicate: RDFSSubClassOf, Object: super})
	}
	return facts, nil
}
