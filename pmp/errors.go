// Package pmp reduces a polynomial matrix program (a PMP: a set of
// polynomial-vector-matrix positivity constraints sampled at a finite set of
// points) to the dense SDP entities the solver operates on: bilinear bases,
// a free-variable matrix, and constraint index tuples.
package pmp

import "errors"

// ErrInvalidProblem is returned by the bootstrap constructors when the
// supplied problem has no constraints, a zero dimension, or a
// dimension/degree/sample-point mismatch — an input defect, not a
// programming error, so it is returned rather than panicked.
var ErrInvalidProblem = errors.New("pmp: invalid problem")
