package sdpb

import (
	"sync/atomic"
	"time"

	"github.com/horropie/sdpb/bigfloat"
	"github.com/horropie/sdpb/blockdiag"
	"github.com/horropie/sdpb/densemat"
	"github.com/horropie/sdpb/pmp"
)

// Solver holds the mutable state of one predictor-corrector run against a
// read-only pmp.SDP: the primal/dual iterate, the direction vectors, and
// every scratch matrix and vector the iteration needs, allocated once and
// reused by every iteration of Run. The loop still allocates: every
// bigfloat.Real result is a new value, and kernels such as TRSM and SYEV
// allocate their own working vectors or copies.
type Solver struct {
	sdp    *pmp.SDP
	params SolverParameters
	logger *Logger

	// StopFlag, when non-nil, is polled at iteration boundaries only; a
	// caller sets it to request cooperative cancellation.
	StopFlag *atomic.Bool

	xDim, yDim int

	// groupBlockOffset[j] is the position, in the flat PSD/pairing block
	// lists, of group j's first bilinear-basis block; groupBlockOffset[j]+
	// local (local = index within sdp.Blocks[j]) gives the flat position.
	groupBlockOffset []int

	x bigfloat.Vector

	X, Y, Z, dX, dY *blockdiag.Matrix
	primalResidues  *blockdiag.Matrix
	dualResidues    bigfloat.Vector
	R               *blockdiag.Matrix

	Xinv  *blockdiag.Matrix
	LXinv *blockdiag.Matrix
	Yinv  *blockdiag.Matrix
	LYinv *blockdiag.Matrix

	bilinearPairingsXInv *blockdiag.Matrix
	bilinearPairingsY    *blockdiag.Matrix

	schur         *densemat.Matrix
	schurCholesky *densemat.Matrix
	bScaled       *densemat.Matrix

	rhs     bigfloat.Vector
	dx      bigfloat.Vector
	adjoint bigfloat.Vector
	tmpBD1  *blockdiag.Matrix
	tmpBD2  *blockdiag.Matrix

	// congruenceScratch[i] and choleskyScratch[i] are per-PSD-block workspace
	// reused every iteration by computeBilinearPairings/invertX so neither
	// allocates: congruenceScratch holds Congruence's intermediate
	// (psdDim×pairingDim) contraction, choleskyScratch holds the Cholesky
	// factor InverseCholeskyAndInverse would otherwise Clone from its input.
	congruenceScratch []*densemat.Matrix
	choleskyScratch   []*densemat.Matrix

	// stepTmp/stepCong/stepEigen are per-PSD-block workspace for
	// minEigenvalueBlockDiag, called twice per iteration by stepLength.
	stepTmp   []*densemat.Matrix
	stepCong  []*densemat.Matrix
	stepEigen []bigfloat.Vector

	primalObjective, dualObjective, dualityGap bigfloat.Real
	primalError, dualError                     bigfloat.Real

	iterations int
	startedAt  time.Time
}

// allocate builds every scratch buffer from the SDP's block-dimension
// vectors, per §3's "Solver state is allocated once from the SDP's
// block-dimension vectors" lifecycle rule.
func (sv *Solver) allocate() {
	sdp := sv.sdp
	sv.xDim, sv.yDim = sdp.XDim(), sdp.YDim()

	psdDims := sdp.PsdMatrixBlockDims()
	pairingDims := sdp.BilinearPairingBlockDims()

	sv.groupBlockOffset = make([]int, len(sdp.Dimensions))
	pos := 0
	for j := range sdp.Dimensions {
		sv.groupBlockOffset[j] = pos
		pos += len(sdp.Blocks[j])
	}

	sv.x = bigfloat.NewVector(sv.xDim)

	sv.X = blockdiag.New(sv.yDim, psdDims)
	sv.Y = blockdiag.New(sv.yDim, psdDims)
	sv.Z = blockdiag.New(sv.yDim, psdDims)
	sv.dX = blockdiag.New(sv.yDim, psdDims)
	sv.dY = blockdiag.New(sv.yDim, psdDims)
	sv.primalResidues = blockdiag.New(sv.yDim, psdDims)
	sv.R = blockdiag.New(sv.yDim, psdDims)
	sv.tmpBD1 = blockdiag.New(sv.yDim, psdDims)
	sv.tmpBD2 = blockdiag.New(sv.yDim, psdDims)
	sv.dualResidues = bigfloat.NewVector(sv.xDim)

	sv.Xinv = blockdiag.New(sv.yDim, psdDims)
	sv.LXinv = blockdiag.New(sv.yDim, psdDims)
	sv.Yinv = blockdiag.New(sv.yDim, psdDims)
	sv.LYinv = blockdiag.New(sv.yDim, psdDims)

	sv.bilinearPairingsXInv = blockdiag.New(0, pairingDims)
	sv.bilinearPairingsY = blockdiag.New(0, pairingDims)

	sv.schur = densemat.NewMatrix(sv.xDim, sv.xDim)
	sv.schurCholesky = densemat.NewMatrix(sv.xDim, sv.xDim)
	sv.bScaled = densemat.NewMatrix(sv.xDim, sv.yDim)

	sv.rhs = bigfloat.NewVector(sv.xDim)
	sv.dx = bigfloat.NewVector(sv.xDim)
	sv.adjoint = bigfloat.NewVector(sv.xDim)

	sv.congruenceScratch = make([]*densemat.Matrix, len(psdDims))
	sv.choleskyScratch = make([]*densemat.Matrix, len(psdDims))
	sv.stepTmp = make([]*densemat.Matrix, len(psdDims))
	sv.stepCong = make([]*densemat.Matrix, len(psdDims))
	sv.stepEigen = make([]bigfloat.Vector, len(psdDims))
	for i, d := range psdDims {
		sv.congruenceScratch[i] = densemat.NewMatrix(d, pairingDims[i])
		sv.choleskyScratch[i] = densemat.NewMatrix(d, d)
		sv.stepTmp[i] = densemat.NewMatrix(d, d)
		sv.stepCong[i] = densemat.NewMatrix(d, d)
		sv.stepEigen[i] = bigfloat.NewVector(d)
	}
}

// initializeState sets the "Start" initializer of §4.6: x←1, X← a
// Hilbert-like matrix plus 2I per block (with the y-dim diagonal prefix set
// to 1, an arbitrary strictly positive value since the spec only requires
// SPD), Y←I.
func (sv *Solver) initializeState() {
	one := bigfloat.One()
	two := bigfloat.FromInt64(2)

	sv.x.Fill(one)
	sv.X.Diag.Fill(one)

	for _, block := range sv.X.Blocks {
		n := block.Rows
		for i := 0; i < n; i++ {
			for j := 0; j < n; j++ {
				h := one.Quo(bigfloat.FromInt64(int64(1 + i + j)))
				block.Set(i, j, h)
			}
			block.AddAt(i, i, two)
		}
	}

	sv.Y = blockdiag.Identity(sv.yDim, blockSizes(sv.X.Blocks))

	sv.iterations = 0
	sv.startedAt = time.Time{}
}

func blockSizes(blocks []*densemat.Matrix) []int {
	sizes := make([]int, len(blocks))
	for i, b := range blocks {
		sizes[i] = b.Rows
	}
	return sizes
}

// blockPos returns the flat block-list position of group j's local-th
// bilinear-basis block, shared by X/Y/Z/dX/dY/primalResidues (PSD-sized
// blocks) and the two bilinear-pairing tensors (pairing-sized blocks),
// since both are built by iterating (group, block-in-group) in the same
// order as pmp.SDP.PsdMatrixBlockDims/BilinearPairingBlockDims.
func (sv *Solver) blockPos(j, local int) int {
	return sv.groupBlockOffset[j] + local
}

// Stop requests cooperative cancellation: the next iteration boundary
// observes StopFlag and returns MaxRuntimeExceeded without exposing
// partial-step state.
func (sv *Solver) Stop() {
	if sv.StopFlag != nil {
		sv.StopFlag.Store(true)
	}
}

// ExportState returns read/write accessors to x, X, and Y for a checkpoint
// collaborator; byte layout is checkpoint-owned, per §6.
func (sv *Solver) ExportState() (x bigfloat.Vector, X, Y *blockdiag.Matrix) {
	return sv.x, sv.X, sv.Y
}

// ImportState overwrites the solver's iterate in place from a previously
// exported (or externally constructed) state, for checkpoint restore.
func (sv *Solver) ImportState(x bigfloat.Vector, X, Y *blockdiag.Matrix) {
	sv.x.CopyFrom(x)
	sv.X.CopyFrom(X)
	sv.Y.CopyFrom(Y)
}
