package plumbing

import "errors"

var (
	// ErrReferenceNotFound is returned when a name cannot be resolved to an
	// object identifier.
	ErrReferenceNotFound = errors.New("reference not found")
	// ErrInvalidReferenceName is returned when a name breaks the
	// check-ref-format rules.
	ErrInvalidReferenceName = errors.New("invalid reference name")
)
