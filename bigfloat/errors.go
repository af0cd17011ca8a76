// Package bigfloat provides the arbitrary-precision scalar and vector
// types that every other package in this module is parameterized by.
package bigfloat

import "errors"

// ErrPrecisionMismatch is panicked with (wrapped) when two Real values built
// under different mantissa precisions are combined, or when the fixed
// default precision is asked to change; no function returns it as an error.
var ErrPrecisionMismatch = errors.New("bigfloat: precision mismatch")
