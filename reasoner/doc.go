// Package reasoner computes what an ontology entails.
//
// A Reasoner answers closure queries over the class, property and individual
// relation families, materializes class extensions, checks candidate
// relations for consistency, and runs rule-based reasoning passes that write
// DerivedByReasoner entries back into the ontology.
//
// Queries are total: absent inputs or empty registers produce empty results.
// Every query reads the ontology as it is at call time and keeps its caches
// local to the call, so concurrent queries are safe while no one writes. Run
// and the Modeler write, and must not overlap with anything else.
//
// Cyclic input terminates because every traversal carries a visited set;
// a subclass cycle collapses to the flat set of its members.
package reasoner
