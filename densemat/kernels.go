package densemat

import "github.com/horropie/sdpb/bigfloat"

// Uplo selects which triangle of a matrix a triangular-matrix operation
// treats as authoritative.
type Uplo int

const (
	Lower Uplo = iota
	Upper
)

// Trans selects whether a triangular-matrix operation uses A or Aᵀ.
type Trans int

const (
	NoTrans Trans = iota
	Transpose
)

// Diag selects whether a triangular matrix has an implicit unit diagonal.
type Diag int

const (
	NonUnit Diag = iota
	Unit
)

// Side selects which side of a triangular system the unknown appears on.
type Side int

const (
	Left Side = iota
	Right
)

// GEMM computes C ← αAB+βC (or the transposed-operand variants selected by
// transA/transB). Requires A.Cols=B.Rows (after transposition), A.Rows=C.Rows,
// B.Cols=C.Cols.
func GEMM(transA, transB bool, alpha bigfloat.Real, A, B *Matrix, beta bigfloat.Real, C *Matrix) {
	ar, ac := A.Rows, A.Cols
	if transA {
		ar, ac = ac, ar
	}
	br, bc := B.Rows, B.Cols
	if transB {
		br, bc = bc, br
	}
	if ac != br || ar != C.Rows || bc != C.Cols {
		panic("densemat: GEMM dimension mismatch")
	}

	zero := bigfloat.Zero()
	for i := 0; i < ar; i++ {
		for j := 0; j < bc; j++ {
			sum := zero
			for k := 0; k < ac; k++ {
				var a, b bigfloat.Real
				if transA {
					a = A.At(k, i)
				} else {
					a = A.At(i, k)
				}
				if transB {
					b = B.At(j, k)
				} else {
					b = B.At(k, j)
				}
				sum = sum.Add(a.Mul(b))
			}
			v := alpha.Mul(sum)
			if !beta.IsZero() {
				v = v.Add(beta.Mul(C.At(i, j)))
			}
			C.Set(i, j, v)
		}
	}
}

// GEMV computes y ← αAx+βy (or y ← αAᵀx+βy if trans is set).
func GEMV(trans bool, alpha bigfloat.Real, A *Matrix, x bigfloat.Vector, beta bigfloat.Real, y bigfloat.Vector) {
	ar, ac := A.Rows, A.Cols
	if trans {
		ar, ac = ac, ar
	}
	if ac != len(x) || ar != len(y) {
		panic("densemat: GEMV dimension mismatch")
	}
	zero := bigfloat.Zero()
	for i := 0; i < ar; i++ {
		sum := zero
		for k := 0; k < ac; k++ {
			var a bigfloat.Real
			if trans {
				a = A.At(k, i)
			} else {
				a = A.At(i, k)
			}
			sum = sum.Add(a.Mul(x[k]))
		}
		v := alpha.Mul(sum)
		if !beta.IsZero() {
			v = v.Add(beta.Mul(y[i]))
		}
		y[i] = v
	}
}

// TRMV computes v ← Av (or v ← Aᵀv if trans is set) in place, where A is
// n×n triangular per uplo/diag.
func TRMV(uplo Uplo, trans Trans, diag Diag, A *Matrix, v bigfloat.Vector) {
	n := A.Rows
	if A.Cols != n || len(v) != n {
		panic("densemat: TRMV dimension mismatch")
	}
	out := bigfloat.NewVector(n)
	for i := 0; i < n; i++ {
		sum := bigfloat.Zero()
		for j := 0; j < n; j++ {
			var a bigfloat.Real
			if trans == NoTrans {
				if !entryInTriangle(uplo, i, j) {
					continue
				}
				if diag == Unit && i == j {
					a = bigfloat.One()
				} else {
					a = A.At(i, j)
				}
			} else {
				// Aᵀ[i,j] = A[j,i]; entry is in-triangle for Aᵀ iff (j,i) is
				// in-triangle for A.
				if !entryInTriangle(uplo, j, i) {
					continue
				}
				if diag == Unit && i == j {
					a = bigfloat.One()
				} else {
					a = A.At(j, i)
				}
			}
			sum = sum.Add(a.Mul(v[j]))
		}
		out[i] = sum
	}
	copy(v, out)
}

func entryInTriangle(uplo Uplo, i, j int) bool {
	if uplo == Lower {
		return j <= i
	}
	return j >= i
}

// TRSM solves a triangular system for B, overwriting B with the solution.
// side=Left solves A·X = αB (A is n×n, B is n×k); side=Right solves X·A =
// αB (A is n×n, B is k×n). A is triangular per uplo/diag; trans selects A
// or Aᵀ in the equation solved.
func TRSM(side Side, uplo Uplo, trans Trans, diag Diag, alpha bigfloat.Real, A, B *Matrix) {
	n := A.Rows
	if A.Cols != n {
		panic("densemat: TRSM requires a square triangular operand")
	}
	switch side {
	case Left:
		if B.Rows != n {
			panic("densemat: TRSM dimension mismatch")
		}
		for col := 0; col < B.Cols; col++ {
			x := make(bigfloat.Vector, n)
			for r := 0; r < n; r++ {
				x[r] = alpha.Mul(B.At(r, col))
			}
			solveTriangularVector(uplo, trans, diag, A, x)
			for r := 0; r < n; r++ {
				B.Set(r, col, x[r])
			}
		}
	case Right:
		// X·A = αB  <=>  Aᵀ·Xᵀ = αBᵀ, solved row-by-row of B.
		if B.Cols != n {
			panic("densemat: TRSM dimension mismatch")
		}
		flippedTrans := Transpose
		if trans == Transpose {
			flippedTrans = NoTrans
		}
		for row := 0; row < B.Rows; row++ {
			x := make(bigfloat.Vector, n)
			for c := 0; c < n; c++ {
				x[c] = alpha.Mul(B.At(row, c))
			}
			solveTriangularVector(uplo, flippedTrans, diag, A, x)
			for c := 0; c < n; c++ {
				B.Set(row, c, x[c])
			}
		}
	}
}

// solveTriangularVector solves A·x = b (or Aᵀ·x = b) in place for the
// n-vector x, following the forward/back-substitution structure of the
// teacher's dtrsl.
func solveTriangularVector(uplo Uplo, trans Trans, diag Diag, A *Matrix, x bigfloat.Vector) {
	n := A.Rows
	diagOf := func(i int) bigfloat.Real {
		if diag == Unit {
			return bigfloat.One()
		}
		return A.At(i, i)
	}

	lower := uplo == Lower
	if trans == Transpose {
		lower = !lower
	}

	if lower {
		for i := 0; i < n; i++ {
			sum := x[i]
			for j := 0; j < i; j++ {
				sum = sum.Sub(triEntry(uplo, trans, A, i, j).Mul(x[j]))
			}
			x[i] = sum.Quo(diagOf(i))
		}
	} else {
		for i := n - 1; i >= 0; i-- {
			sum := x[i]
			for j := i + 1; j < n; j++ {
				sum = sum.Sub(triEntry(uplo, trans, A, i, j).Mul(x[j]))
			}
			x[i] = sum.Quo(diagOf(i))
		}
	}
}

// triEntry returns the (i,j) entry of A or Aᵀ as used by the equation
// being solved.
func triEntry(uplo Uplo, trans Trans, A *Matrix, i, j int) bigfloat.Real {
	if trans == Transpose {
		return A.At(j, i)
	}
	_ = uplo
	return A.At(i, j)
}
