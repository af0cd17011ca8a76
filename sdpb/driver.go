package sdpb

import (
	"time"

	"github.com/horropie/sdpb/bigfloat"
	"github.com/horropie/sdpb/blockdiag"
	"github.com/horropie/sdpb/densemat"
)

// Run drives the predictor-corrector state machine of §4.6 to termination,
// mirroring the teacher's iterDriver.mainLoop: a fixed sequence of small
// named transitions repeated until a TerminateReason other than running is
// produced. A non-nil error is returned only for a failure before the first
// iteration completes: a Cholesky failure on X, Y or the Schur complement,
// or a step-length eigenvalue probe that does not converge, which means the
// initial (or imported) state was unusable rather than a genuine late-run
// complementarity breakdown. The same failures after at least one completed
// iteration end the run with MaxComplementarityExceeded instead.
func (sv *Solver) Run() (Result, error) {
	sv.startedAt = time.Now()
	identity := blockdiag.Identity(sv.yDim, blockSizes(sv.X.Blocks))

	var reason TerminateReason
	prevFeasible := false
	var prevPrimalObjective bigfloat.Real
	havePrev := false

	for {
		if sv.StopFlag != nil && sv.StopFlag.Load() {
			reason = MaxRuntimeExceeded
			break
		}
		if time.Since(sv.startedAt) >= sv.params.MaxRuntime {
			reason = MaxRuntimeExceeded
			break
		}
		if sv.iterations >= sv.params.MaxIterations {
			reason = terminationOnBudgetExhausted(sv)
			break
		}

		if err := sv.invertX(); err != nil {
			if sv.iterations == 0 {
				return Result{}, err
			}
			reason = MaxComplementarityExceeded
			break
		}
		sv.computeBilinearPairings()
		sv.computeDualResidues()
		sv.computePrimalResidues()

		if err := sv.assembleSchur(); err != nil {
			if sv.iterations == 0 {
				return Result{}, err
			}
			reason = MaxComplementarityExceeded
			break
		}

		mu := sv.X.FrobeniusProductSym(sv.Y).Quo(bigfloat.FromInt64(int64(sv.X.Dim())))
		if mu.Cmp(sv.params.MaxComplementarity) > 0 {
			reason = MaxComplementarityExceeded
			break
		}

		sv.primalError = sv.primalResidues.MaxAbsElement()
		sv.dualError = sv.dualResidues.MaxAbs()
		feasible := sv.primalError.Cmp(sv.params.EpsPrimal) <= 0 && sv.dualError.Cmp(sv.params.EpsDual) <= 0

		betaPred := bigfloat.Zero()
		if !feasible {
			betaPred = sv.params.InfeasibleCenteringParameter
		}
		blockdiag.Multiply(bigfloat.One(), sv.X, sv.Y, bigfloat.Zero(), sv.R)
		sv.R.Scale(bigfloat.FromInt64(-1))
		sv.R.AddScaled(betaPred.Mul(mu), identity)

		sv.solveDirection(sv.R)

		r := sv.correctorRatio(mu)
		betaCorr := correctorCenteringParameter(r, feasible, &sv.params)

		blockdiag.Multiply(bigfloat.One(), sv.X, sv.Y, bigfloat.Zero(), sv.R)
		blockdiag.Multiply(bigfloat.One(), sv.dX, sv.dY, bigfloat.One(), sv.R)
		sv.R.Scale(bigfloat.FromInt64(-1))
		sv.R.AddScaled(betaCorr.Mul(mu), identity)

		sv.solveDirection(sv.R)

		alphaP, err := sv.stepLength(sv.LXinv, sv.dX, sv.params.StepLengthSafetyFactor)
		if err != nil {
			if sv.iterations == 0 {
				return Result{}, err
			}
			reason = MaxComplementarityExceeded
			break
		}
		if err := blockdiag.InverseCholeskyAndInverse(sv.Y, sv.choleskyScratch, sv.LYinv, sv.Yinv); err != nil {
			if sv.iterations == 0 {
				return Result{}, err
			}
			reason = MaxComplementarityExceeded
			break
		}
		alphaD, err := sv.stepLength(sv.LYinv, sv.dY, sv.params.StepLengthSafetyFactor)
		if err != nil {
			if sv.iterations == 0 {
				return Result{}, err
			}
			reason = MaxComplementarityExceeded
			break
		}

		sv.x.AddScaled(alphaP, sv.dx)
		sv.X.AddScaled(alphaP, sv.dX)
		sv.Y.AddScaled(alphaD, sv.dY)
		sv.X.Symmetrize()
		sv.Y.Symmetrize()

		sv.primalObjective = sv.sdp.PrimalObjective.Dot(sv.x).Add(sv.sdp.ObjectiveConst)
		sv.dualObjective = sv.sdp.DualObjective.Dot(sv.Y.Diag).Add(sv.sdp.ObjectiveConst)
		denom := bigfloat.Max(sv.primalObjective.Abs().Add(sv.dualObjective.Abs()).Quo(bigfloat.FromInt64(2)), bigfloat.One())
		sv.dualityGap = sv.primalObjective.Sub(sv.dualObjective).Abs().Quo(denom)

		sv.iterations++

		if sv.logger.enable(LogSummary) {
			sv.logger.log("iter %4d  mu=%s  primalErr=%s  dualErr=%s  gap=%s\n",
				sv.iterations, mu.String(), sv.primalError.String(), sv.dualError.String(), sv.dualityGap.String())
		}
		if sv.logger.enable(LogVerbose) {
			sv.logger.log("  alphaP=%s  alphaD=%s  betaPred=%s  betaCorr=%s\n",
				alphaP.String(), alphaD.String(), betaPred.String(), betaCorr.String())
		}

		if !prevFeasible && feasible && havePrev && primalObjectiveJumped(prevPrimalObjective, sv.primalObjective) {
			reason = PrimalFeasibleJumpDetected
			break
		}
		if feasible && sv.dualityGap.Cmp(sv.params.EpsGap) <= 0 {
			reason = PrimalDualOptimal
			break
		}

		prevFeasible = feasible
		prevPrimalObjective = sv.primalObjective
		havePrev = true
	}

	return sv.result(reason), nil
}

// terminationOnBudgetExhausted picks the TerminateReason for running out of
// iterations: plain MaxIterationsExceeded if neither side of feasibility was
// reached (or none had been checked yet), but the more informative
// PrimalFeasible/DualFeasible when the budget ran out with exactly one side
// already within tolerance from the last completed iteration — spec.md §7
// lists these as terminate reasons without pinning the exact trigger, and a
// solver that ran to the end of its budget while, say, primal-feasible but
// not yet dual-feasible should say so rather than report a bare timeout.
func terminationOnBudgetExhausted(sv *Solver) TerminateReason {
	if sv.iterations == 0 {
		return MaxIterationsExceeded
	}
	primalOK := sv.primalError.Cmp(sv.params.EpsPrimal) <= 0
	dualOK := sv.dualError.Cmp(sv.params.EpsDual) <= 0
	switch {
	case primalOK && dualOK:
		return MaxIterationsExceeded
	case primalOK:
		return PrimalFeasible
	case dualOK:
		return DualFeasible
	default:
		return MaxIterationsExceeded
	}
}

// correctorRatio computes r = ⟨X+dX,Y+dY⟩_sym/(μ·X.dim), the argument to
// corrector_centering_parameter in §4.6 step 9.
func (sv *Solver) correctorRatio(mu bigfloat.Real) bigfloat.Real {
	sv.tmpBD1.CopyFrom(sv.X)
	sv.tmpBD1.AddScaled(bigfloat.One(), sv.dX)
	sv.tmpBD2.CopyFrom(sv.Y)
	sv.tmpBD2.AddScaled(bigfloat.One(), sv.dY)
	num := sv.tmpBD1.FrobeniusProductSym(sv.tmpBD2)
	return num.Quo(mu.Mul(bigfloat.FromInt64(int64(sv.X.Dim()))))
}

// correctorCenteringParameter implements §4.6 step 9's β choice: β=r² if
// r<1 else r, then clamped into the feasible or infeasible regime.
func correctorCenteringParameter(r bigfloat.Real, feasible bool, params *SolverParameters) bigfloat.Real {
	var beta bigfloat.Real
	if r.Cmp(bigfloat.One()) < 0 {
		beta = r.Mul(r)
	} else {
		beta = r
	}
	if feasible {
		beta = bigfloat.Max(params.FeasibleCenteringParameter, beta)
		beta = bigfloat.Min(beta, bigfloat.One())
	} else {
		beta = bigfloat.Max(params.InfeasibleCenteringParameter, beta)
	}
	return beta
}

// stepLength implements the QR step-length rule of §4.6: the minimum
// eigenvalue of L⁻¹·direction·L⁻ᵀ, block by block (with the diagonal
// prefix's trivial 1×1 "block" folded in), clamped by the safety factor γ.
// An error, always ErrEigenNotConverged from a block's SYEV, means the probe
// could not determine how far X/Y can move while remaining positive
// definite, and the caller must not trust the returned step length.
func (sv *Solver) stepLength(Linv, direction *blockdiag.Matrix, gamma bigfloat.Real) (bigfloat.Real, error) {
	lambdaMin, err := sv.minEigenvalueBlockDiag(Linv, direction)
	if err != nil {
		return bigfloat.Zero(), err
	}
	if lambdaMin.Sign() < 0 {
		ratio := gamma.Quo(lambdaMin.Abs())
		return bigfloat.Min(ratio, bigfloat.One()), nil
	}
	return bigfloat.One(), nil
}

// minEigenvalueBlockDiag computes the minimum eigenvalue of the congruence
// L⁻¹·D·L⁻ᵀ over the diagonal prefix (a trivial closed form) and every
// block (via SYEV), returning the smallest value seen. Uses sv's
// preallocated stepTmp/stepCong/stepEigen scratch, one entry per PSD block,
// so no per-block matrix is allocated here; SYEV still allocates its own
// working copy of each block.
func (sv *Solver) minEigenvalueBlockDiag(Linv, D *blockdiag.Matrix) (bigfloat.Real, error) {
	one, zero := bigfloat.One(), bigfloat.Zero()
	var min bigfloat.Real
	first := true
	for i := range Linv.Diag {
		val := Linv.Diag[i].Mul(Linv.Diag[i]).Mul(D.Diag[i])
		if first || val.Cmp(min) < 0 {
			min, first = val, false
		}
	}
	for bi, Lb := range Linv.Blocks {
		n := Lb.Rows
		if n == 0 {
			continue
		}
		tmp := sv.stepTmp[bi]
		densemat.GEMM(false, false, one, Lb, D.Blocks[bi], zero, tmp)
		cong := sv.stepCong[bi]
		densemat.GEMM(false, true, one, tmp, Lb, zero, cong)
		w := sv.stepEigen[bi]
		if err := densemat.SYEV(densemat.Lower, cong, w); err != nil {
			return zero, err
		}
		if first || w[0].Cmp(min) < 0 {
			min, first = w[0], false
		}
	}
	if first {
		return zero, nil
	}
	return min, nil
}

// primalObjectiveJumped reports whether newly reaching primal and dual
// feasibility
// coincided with an implausibly large change in the primal objective — the
// best-effort heuristic behind PrimalFeasibleJumpDetected, since the source
// does not pin an exact threshold: a jump larger than the objective's own
// scale by six orders of magnitude is treated as suspect.
func primalObjectiveJumped(prev, cur bigfloat.Real) bool {
	delta := cur.Sub(prev).Abs()
	scale := bigfloat.Max(prev.Abs(), bigfloat.One())
	threshold := scale.Mul(bigfloat.FromInt64(1_000_000))
	return delta.Cmp(threshold) > 0
}
