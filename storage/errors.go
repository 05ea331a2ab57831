package storage

import "errors"

// Common storage errors.
var (
	// ErrNotFound is returned when an ontology or snapshot is not stored.
	ErrNotFound = errors.New("ontology not found")
)
