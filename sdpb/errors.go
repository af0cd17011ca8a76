// Package sdpb implements the predictor-corrector primal-dual interior-point
// iteration (components 5-7 of the spec: Schur-complement assembly, the
// Mehrotra iteration, and the termination/feasibility monitor) that drives a
// pmp.SDP to a primal-dual optimal pair.
package sdpb

import (
	"errors"

	"github.com/horropie/sdpb/densemat"
)

// ErrInvalidParameters is returned by (*SolverParameters).NewSolver when a
// numeric field is out of its valid range.
var ErrInvalidParameters = errors.New("sdpb: invalid solver parameters")

// ErrNotPositiveDefinite is re-exported from densemat: a POTRF failure on
// the solver's initial X or the initial Schur complement is a programming
// or input defect (InvalidProblem-class per spec.md §7), surfaced as an
// error rather than folded into MaxComplementarityExceeded, which is
// reserved for a POTRF failure after at least one accepted iteration.
var ErrNotPositiveDefinite = densemat.ErrNotPositiveDefinite
