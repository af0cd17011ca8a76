package blockdiag

import (
	"fmt"

	"github.com/horropie/sdpb/bigfloat"
	"github.com/horropie/sdpb/densemat"
)

// InverseCholeskyAndInverse factors M = L·Lᵀ block-by-block (diagonal
// entries d map to the 1×1 factor √d) and writes both L⁻¹ and M⁻¹ =
// L⁻ᵀ·L⁻¹ into the caller-supplied Linv/Minv, per §4.3's block-Cholesky
// discipline. scratch must hold one preallocated n×n densemat.Matrix per
// block, matching M.Blocks' shapes, and is used as the Cholesky-factor
// workspace instead of cloning M's blocks, so no matrix is allocated here;
// TRSM still allocates one column vector per column, and every
// bigfloat.Real result is a new allocation. It returns ErrNotPositiveDefinite, wrapped with
// the offending block's index, the moment any block (or diagonal entry)
// fails — Linv/Minv are left partially written in that case, matching the
// solver's own "abort the iteration on failure" handling.
func InverseCholeskyAndInverse(M *Matrix, scratch []*densemat.Matrix, Linv, Minv *Matrix) error {
	for i, d := range M.Diag {
		if d.Sign() <= 0 {
			return fmt.Errorf("blockdiag: diagonal entry %d: %w", i, ErrNotPositiveDefinite)
		}
		sqrtD := d.Sqrt()
		invSqrtD := bigfloat.One().Quo(sqrtD)
		Linv.Diag[i] = invSqrtD
		Minv.Diag[i] = invSqrtD.Mul(invSqrtD)
	}

	for bi, A := range M.Blocks {
		L := scratch[bi]
		L.CopyFrom(A)
		if e := densemat.POTRF(true, L); e != nil {
			return fmt.Errorf("blockdiag: block %d: %w", bi, e)
		}
		L.ZeroUpperTriangle()

		linv := Linv.Blocks[bi]
		linv.SetIdentity()
		densemat.TRSM(densemat.Left, densemat.Lower, densemat.NoTrans, densemat.NonUnit, bigfloat.One(), L, linv)

		densemat.GEMM(true, false, bigfloat.One(), linv, linv, bigfloat.Zero(), Minv.Blocks[bi])
	}

	return nil
}
