// Package ontology holds the three registers of a knowledge base: the class
// model, the property model and the data register.
//
// Every ontology starts from a copy of the built-in seed vocabulary (the XSD
// datatype lattice plus owl:Thing and owl:Nothing) unless it is created with
// WithoutSeed. Modeling helpers record axioms as plain entries, so an ontology
// round-trips through any triple store. Composite class expressions, keys and
// property chains are stored as RDF lists and decoded on demand.
//
// Entries carry provenance. Helpers tag what the caller states as Asserted and
// the restated reverse of a symmetric axiom as DerivedByConstruction. Reasoning
// passes write DerivedByReasoner entries, which ClearInferences removes.
package ontology
