// Package owl provides the RDF, RDFS, OWL and XSD vocabulary used by the
// semtax reasoner.
//
// The package has three parts:
//   - IRI constants for every term the closure engine and materializer read
//   - Dotted predicate aliases (owl.class.subclass_of, ...) registered with the
//     semstreams vocabulary registry so that derived facts published to a
//     semstreams graph carry IRI mappings for RDF export
//   - The embedded seed vocabulary (seed.yaml): the XSD datatype lattice and the
//     built-in class declarations that every ontology starts from
//
// # Seed Vocabulary
//
// LoadSeed returns the built-in statements with expanded IRIs:
//
//	facts, err := owl.LoadSeed()
//	// xsd:int rdfs:subClassOf xsd:long, xsd:long rdfs:subClassOf xsd:integer, ...
//
// The ontology package turns these into Asserted entries once and copies them
// into each new ontology.
package owl
