package spec

import "errors"

// Specification errors. All validation is eager: these surface at
// construction or WithValues time, never later.
var (
	// ErrInvalidSpecification marks an axis value that is neither absent,
	// a literal, a collection, nor a selector.
	ErrInvalidSpecification = errors.New("invalid specification")

	// ErrConflictingSpecification marks mutually exclusive fields supplied
	// together (trial+run, blocktype alongside trial/run, index without a
	// blocktype).
	ErrConflictingSpecification = errors.New("conflicting specification")

	// ErrInvalidIndex marks a negative or unparsable index.
	ErrInvalidIndex = errors.New("invalid index")

	// ErrUnresolvablePath is returned by Predicate.Path when the predicate
	// does not denote exactly one entity. The wrapped message carries the
	// actual selection status.
	ErrUnresolvablePath = errors.New("cannot compute a path")

	// ErrWrongBlockType is returned when a trial accessor is used on a
	// run-specified file spec, or vice versa.
	ErrWrongBlockType = errors.New("wrong block type")

	// ErrInvalidMode marks a mode outside read/write/append.
	ErrInvalidMode = errors.New("invalid mode")
)
