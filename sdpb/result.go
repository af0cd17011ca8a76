package sdpb

import (
	"time"

	"github.com/horropie/sdpb/bigfloat"
)

// Summary reports run-level statistics alongside a Result, mirroring the
// teacher's slsqp.Result/Summary split.
type Summary struct {
	Iterations int
	Runtime    time.Duration
}

// Result is the output tuple of §6: the terminate reason plus the final
// primal/dual objectives, errors, duality gap, and iterate.
type Result struct {
	Reason TerminateReason

	PrimalObjective bigfloat.Real
	DualObjective   bigfloat.Real
	DualityGap      bigfloat.Real
	PrimalError     bigfloat.Real
	DualError       bigfloat.Real

	X bigfloat.Vector

	XDiag bigfloat.Vector
	YDiag bigfloat.Vector

	Summary
}

// result snapshots the solver's current state into a Result under the
// given terminate reason.
func (sv *Solver) result(reason TerminateReason) Result {
	return Result{
		Reason:          reason,
		PrimalObjective: sv.primalObjective,
		DualObjective:   sv.dualObjective,
		DualityGap:      sv.dualityGap,
		PrimalError:     sv.primalError,
		DualError:       sv.dualError,
		X:               sv.x.Clone(),
		XDiag:           sv.X.Diag.Clone(),
		YDiag:           sv.Y.Diag.Clone(),
		Summary: Summary{
			Iterations: sv.iterations,
			Runtime:    time.Since(sv.startedAt),
		},
	}
}
