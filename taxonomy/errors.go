package taxonomy

import "errors"

// ErrMissingComponent is matched by every ModelError.
var ErrMissingComponent = errors.New("missing triple component")

// ModelError reports an entry that cannot be built because one of its three
// components is absent.
type ModelError struct {
	// Component is "subject", "predicate" or "object".
	Component string
}

// Error implements the error interface.
func (e *ModelError) Error() string {
	return "missing " + e.Component
}

// Is lets errors.Is match ErrMissingComponent.
func (e *ModelError) Is(target error) bool {
	return target == ErrMissingComponent
}
