package sdpb

import (
	"github.com/horropie/sdpb/bigfloat"
	"github.com/horropie/sdpb/blockdiag"
	"github.com/horropie/sdpb/densemat"
)

// invertX computes X⁻¹ and its Cholesky inverse factor L_X⁻¹ via
// §4.6 step 1, returning the ErrNotPositiveDefinite from block Cholesky
// unchanged if X is not PD. Writes into the preallocated sv.LXinv/sv.Xinv.
func (sv *Solver) invertX() error {
	return blockdiag.InverseCholeskyAndInverse(sv.X, sv.choleskyScratch, sv.LXinv, sv.Xinv)
}

// computeBilinearPairings assembles bilinear_pairings_X_inv and
// bilinear_pairings_Y per §4.4: for every (group, bilinear-basis) block,
// congruence(X⁻¹.block, basis) and congruence(Y.block, basis), writing into
// the preallocated sv.bilinearPairingsXInv/sv.bilinearPairingsY blocks.
func (sv *Solver) computeBilinearPairings() {
	sdp := sv.sdp
	for j, dim := range sdp.Dimensions {
		for local, bIdx := range sdp.Blocks[j] {
			pos := sv.blockPos(j, local)
			basis := sdp.BilinearBases[bIdx]
			densemat.Congruence(sv.Xinv.Blocks[pos], basis, dim, sv.congruenceScratch[pos], sv.bilinearPairingsXInv.Blocks[pos])
			densemat.Congruence(sv.Y.Blocks[pos], basis, dim, sv.congruenceScratch[pos], sv.bilinearPairingsY.Blocks[pos])
		}
	}
}

// computeDualResidues implements §4.6 step 3: dual_residues[p] = c_p −
// ½Σ_b[T_Y[b](e_j·r+k,e_j·s+k)+T_Y[b](e_j·s+k,e_j·r+k)] − (B·Y.diag)[p],
// using pairIndex for the e_j·(row)+k addressing.
func (sv *Solver) computeDualResidues() {
	sdp := sv.sdp
	half := bigfloat.One().Quo(bigfloat.FromInt64(2))

	densemat.GEMV(false, bigfloat.One(), sdp.FreeVarMatrix, sv.Y.Diag, bigfloat.Zero(), sv.dualResidues)

	p := 0
	for j, dim := range sdp.Dimensions {
		deg := sdp.Degrees[j]
		n := deg + 1
		for s := 0; s < dim; s++ {
			for r := 0; r <= s; r++ {
				for k := 0; k < n; k++ {
					sum := bigfloat.Zero()
					for local := range sdp.Blocks[j] {
						pos := sv.blockPos(j, local)
						TY := sv.bilinearPairingsY.Blocks[pos]
						a := TY.At(pairIndex(n, r, k), pairIndex(n, s, k))
						b := TY.At(pairIndex(n, s, k), pairIndex(n, r, k))
						sum = sum.Add(a).Add(b)
					}
					bTerm := sv.dualResidues[p]
					sv.dualResidues[p] = sdp.PrimalObjective[p].Sub(half.Mul(sum)).Sub(bTerm)
					p++
				}
			}
		}
	}
}

// computePrimalResidues implements §4.6 step 4: primal_residues = Σx_p F_p
// − X − F_0, with F_0 the zero matrix per the "later layering" convention
// of spec.md §9 (the dual objective b carries the free-variable prefix
// instead of a nonzero F_0).
func (sv *Solver) computePrimalResidues() {
	sv.constraintMatrixWeightedSum(sv.x, sv.primalResidues)
	sv.primalResidues.AddScaled(bigfloat.FromInt64(-1), sv.X)
}

// assembleSchur builds the Schur complement S (§4.5) from the current
// bilinear-pairing tensors plus the free-variable dense correction, then
// Cholesky-factors it in place into sv.schurCholesky.
func (sv *Solver) assembleSchur() error {
	sdp := sv.sdp
	quarter := bigfloat.One().Quo(bigfloat.FromInt64(4))
	sv.schur.Zero()

	for j, ci := range sdp.ConstraintIndices {
		n := sdp.Degrees[j] + 1
		for i1, t1 := range ci {
			for _, t2 := range ci[:i1+1] {
				sum := bigfloat.Zero()
				for local := range sdp.Blocks[j] {
					pos := sv.blockPos(j, local)
					TX := sv.bilinearPairingsXInv.Blocks[pos]
					TY := sv.bilinearPairingsY.Blocks[pos]

					s1r2 := pairIndex(n, t1.S, t1.K)
					r2 := pairIndex(n, t2.R, t2.K)
					s2 := pairIndex(n, t2.S, t2.K)
					r1 := pairIndex(n, t1.R, t1.K)

					term1 := TX.At(s1r2, r2).Mul(TY.At(s2, r1))
					term2 := TX.At(r1, r2).Mul(TY.At(s2, s1r2))
					term3 := TX.At(s1r2, s2).Mul(TY.At(r2, r1))
					term4 := TX.At(r1, s2).Mul(TY.At(r2, s1r2))
					sum = sum.Add(term1).Add(term2).Add(term3).Add(term4)
				}
				val := quarter.Mul(sum)
				sv.schur.AddAt(t1.P, t2.P, val)
				if t1.P != t2.P {
					sv.schur.AddAt(t2.P, t1.P, val)
				}
			}
		}
	}

	sv.addFreeVariableCorrection()

	sv.schurCholesky.CopyFrom(sv.schur)
	if err := densemat.POTRF(true, sv.schurCholesky); err != nil {
		return err
	}
	sv.schurCholesky.ZeroUpperTriangle()
	return nil
}

// addFreeVariableCorrection adds B·diag(Y.diag/X.diag)·Bᵀ to sv.schur, the
// dense free-variable coupling term of §4.5.
func (sv *Solver) addFreeVariableCorrection() {
	sdp := sv.sdp
	B := sdp.FreeVarMatrix
	for p := 0; p < sv.xDim; p++ {
		for n := 0; n < sv.yDim; n++ {
			sv.bScaled.Set(p, n, B.At(p, n))
		}
	}
	for n := 0; n < sv.yDim; n++ {
		scale := sv.Y.Diag[n].Quo(sv.X.Diag[n])
		for p := 0; p < sv.xDim; p++ {
			sv.bScaled.Set(p, n, sv.bScaled.At(p, n).Mul(scale))
		}
	}
	densemat.GEMM(false, true, bigfloat.One(), sv.bScaled, B, bigfloat.One(), sv.schur)
}
