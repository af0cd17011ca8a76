package densemat

import "github.com/horropie/sdpb/bigfloat"

// SolveCholeskyVector solves L·Lᵀ·x = b in place for the n-vector b, given
// the lower-triangular Cholesky factor L (as produced by POTRF(true, ...)),
// via the two-TRSM discipline of §4.3: forward-solve L·y=b, then
// back-solve Lᵀ·x=y.
func SolveCholeskyVector(L *Matrix, b bigfloat.Vector) {
	solveTriangularVector(Lower, NoTrans, NonUnit, L, b)
	solveTriangularVector(Lower, Transpose, NonUnit, L, b)
}

// POTRF computes the Cholesky factorization of the symmetric positive
// definite matrix A in place. When lower is true, A←L with L·Lᵀ=A written
// into the lower triangle (the upper triangle is left untouched — callers
// that need it zeroed call Matrix.ZeroUpperTriangle explicitly, per the
// block-Cholesky discipline of blockdiag.InverseCholeskyAndInverse).
// Returns ErrNotPositiveDefinite, leaving A partially overwritten, if a
// diagonal pivot is not positive; callers must treat this as a failed
// step and discard A, never resume the factorization.
//
// The algorithm is the classic column-by-column (Cholesky-Crout) scheme,
// translated from the teacher's flat-array dpofa (lbfgsb/linpack.go) to
// Matrix-typed operands.
func POTRF(lower bool, A *Matrix) error {
	n := A.Rows
	if A.Cols != n {
		panic("densemat: POTRF requires a square matrix")
	}
	if !lower {
		// Factor the transpose problem: Aᵤ = Uᵀ·U with U upper-triangular is
		// equivalent to factoring Aᵤᵗ = L·Lᵀ with L = Uᵀ lower-triangular.
		t := A.Transpose()
		if err := potrfLower(t); err != nil {
			return err
		}
		for i := 0; i < n; i++ {
			for j := 0; j <= i; j++ {
				A.Set(j, i, t.At(i, j))
			}
		}
		return nil
	}
	return potrfLower(A)
}

func potrfLower(A *Matrix) error {
	n := A.Rows
	for j := 0; j < n; j++ {
		sum := A.At(j, j)
		for k := 0; k < j; k++ {
			ljk := A.At(j, k)
			sum = sum.Sub(ljk.Mul(ljk))
		}
		if sum.Sign() <= 0 {
			return ErrNotPositiveDefinite
		}
		ljj := sum.Sqrt()
		A.Set(j, j, ljj)

		for i := j + 1; i < n; i++ {
			sum := A.At(i, j)
			for k := 0; k < j; k++ {
				sum = sum.Sub(A.At(i, k).Mul(A.At(j, k)))
			}
			A.Set(i, j, sum.Quo(ljj))
		}
	}
	return nil
}
