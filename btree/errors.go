package btree

import "errors"

var (
	// ErrInvalidConfig signals an invalid tree configuration, e.g. a degree below 2.
	ErrInvalidConfig = errors.New("btree: invalid configuration")
	// ErrInvariantViolation signals a structural defect found by Check.
	ErrInvariantViolation = errors.New("btree: invariant violated")
)
