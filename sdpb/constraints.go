package sdpb

import (
	"github.com/horropie/sdpb/bigfloat"
	"github.com/horropie/sdpb/blockdiag"
	"github.com/horropie/sdpb/densemat"
)

// pairIndex maps a (PSD matrix-row-or-column, bilinear-basis column) pair
// within a group whose bilinear bases have n=deg+1 columns to the row/column
// index used inside a bilinear-pairing block, matching
// densemat.Congruence's r·n+k output layout: the PSD row/column is the
// dim-major outer index, the basis column k the inner one.
func pairIndex(n, rowOrCol, k int) int {
	return rowOrCol*n + k
}

// constraintMatrixWeightedSum computes M = Σ_p x[p]·F_p into out, following
// §4.6: the y-dim diagonal prefix is Bᵀ·x, and each group's PSD blocks
// accumulate diagonal_congruence_transpose runs over the group's (s,r≤s)
// pairs, sharing the same length-(deg+1) segment of x across every
// bilinear-basis block assigned to that group. out is zeroed first.
func (sv *Solver) constraintMatrixWeightedSum(x bigfloat.Vector, out *blockdiag.Matrix) {
	sdp := sv.sdp
	for i := range out.Diag {
		out.Diag[i] = bigfloat.Zero()
	}
	for _, block := range out.Blocks {
		block.Zero()
	}

	densemat.GEMV(true, bigfloat.One(), sdp.FreeVarMatrix, x, bigfloat.Zero(), out.Diag)

	p := 0
	for j, dim := range sdp.Dimensions {
		deg := sdp.Degrees[j]
		n := deg + 1
		for s := 0; s < dim; s++ {
			for r := 0; r <= s; r++ {
				d := x[p : p+n]
				for local, bIdx := range sdp.Blocks[j] {
					pos := sv.blockPos(j, local)
					densemat.DiagonalCongruenceTranspose(d, sdp.BilinearBases[bIdx], r, s, out.Blocks[pos])
				}
				p += n
			}
		}
	}
	out.Symmetrize()
}

// constraintMatrixWeightedSumAdjoint is the adjoint of
// constraintMatrixWeightedSum with respect to x: given a blockdiag matrix M
// shaped like X, it accumulates into out[p], for every IndexTuple (p,r,s,k),
// the contraction of M's (j,r,s) block entries against the bilinear basis
// column k, summed over every bilinear-basis block assigned to group j. This
// is the "per-group bilinear-pairing ... against the k-th column" term of
// the direction solve's r-vector (§4.6).
func (sv *Solver) constraintMatrixWeightedSumAdjoint(M *blockdiag.Matrix, out bigfloat.Vector) {
	sdp := sv.sdp
	p := 0
	for j, dim := range sdp.Dimensions {
		deg := sdp.Degrees[j]
		n := deg + 1
		for s := 0; s < dim; s++ {
			for r := 0; r <= s; r++ {
				seg := out[p : p+n]
				for local, bIdx := range sdp.Blocks[j] {
					pos := sv.blockPos(j, local)
					densemat.DiagonalCongruenceTransposeAdjoint(sdp.BilinearBases[bIdx], r, s, M.Blocks[pos], seg)
				}
				p += n
			}
		}
	}
}
