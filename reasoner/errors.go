package reasoner

import "errors"

var (
	// ErrNotImplemented is returned by checks that have no implementation yet.
	ErrNotImplemented = errors.New("not implemented")

	// ErrInconsistent is returned by the Modeler when a relation would
	// contradict what the ontology already entails.
	ErrInconsistent = errors.New("relation is inconsistent with the ontology")

	// ErrUnknownRule is returned when a reasoning rule name is not recognized.
	ErrUnknownRule = errors.New("unknown reasoning rule")
)
