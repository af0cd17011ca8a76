// Package blockdiag implements the symmetric block-diagonal matrix algebra
// (BlockDiagonalMatrix of the spec) that X, Y, Z and the residual matrices
// of the solver are represented as: a diagonal prefix plus an ordered list
// of square dense blocks. Operations dispatch by iteration over the block
// list, never by interface polymorphism, per the "polymorphism over block
// structure" design note.
package blockdiag

import (
	"github.com/horropie/sdpb/bigfloat"
	"github.com/horropie/sdpb/densemat"
)

// Matrix is a symmetric block-diagonal matrix: a diagonal prefix of length
// D plus an ordered list of square blocks of sizes n₁,…,n_B, representing a
// symmetric matrix of dimension D+Σnᵢ.
type Matrix struct {
	Diag   bigfloat.Vector
	Blocks []*densemat.Matrix
}

// New allocates a zero Matrix with the given diagonal length and block
// sizes.
func New(diagLen int, blockSizes []int) *Matrix {
	blocks := make([]*densemat.Matrix, len(blockSizes))
	for i, n := range blockSizes {
		blocks[i] = densemat.NewMatrix(n, n)
	}
	return &Matrix{Diag: bigfloat.NewVector(diagLen), Blocks: blocks}
}

// Like allocates a zero Matrix with the same shape as m.
func (m *Matrix) Like() *Matrix {
	sizes := make([]int, len(m.Blocks))
	for i, b := range m.Blocks {
		sizes[i] = b.Rows
	}
	return New(len(m.Diag), sizes)
}

// Identity returns the identity block-diagonal matrix of the given shape.
func Identity(diagLen int, blockSizes []int) *Matrix {
	m := New(diagLen, blockSizes)
	one := bigfloat.One()
	m.Diag.Fill(one)
	for _, b := range m.Blocks {
		for i := 0; i < b.Rows; i++ {
			b.Set(i, i, one)
		}
	}
	return m
}

// Dim returns the full dimension D+Σnᵢ represented by m.
func (m *Matrix) Dim() int {
	d := len(m.Diag)
	for _, b := range m.Blocks {
		d += b.Rows
	}
	return d
}

// Clone returns a deep copy of m.
func (m *Matrix) Clone() *Matrix {
	out := &Matrix{Diag: m.Diag.Clone(), Blocks: make([]*densemat.Matrix, len(m.Blocks))}
	for i, b := range m.Blocks {
		out.Blocks[i] = b.Clone()
	}
	return out
}

// CopyFrom overwrites m in place with the elements of x. Panics on shape
// mismatch.
func (m *Matrix) CopyFrom(x *Matrix) {
	if len(m.Diag) != len(x.Diag) || len(m.Blocks) != len(x.Blocks) {
		panic("blockdiag: CopyFrom shape mismatch")
	}
	m.Diag.CopyFrom(x.Diag)
	for i := range m.Blocks {
		m.Blocks[i].CopyFrom(x.Blocks[i])
	}
}

// Symmetrize replaces every block with ½(block+blockᵀ) in place; the
// diagonal prefix is untouched (it is already symmetric by construction).
func (m *Matrix) Symmetrize() {
	for _, b := range m.Blocks {
		b.Symmetrize()
	}
}

// MaxAbsElement returns the maximum absolute-value entry over the diagonal
// prefix and every block, per the testable "feasibility monitor" error
// norms.
func (m *Matrix) MaxAbsElement() bigfloat.Real {
	max := m.Diag.MaxAbs()
	for _, b := range m.Blocks {
		if a := b.MaxAbs(); a.Cmp(max) > 0 {
			max = a
		}
	}
	return max
}

// FrobeniusProductSym computes ⟨m,other⟩_sym = Σdiag m_i·other_i +
// Σ_b⟨m_b,other_b⟩_sym, where the block term is the full double sum over
// entries (equivalently: diagonal entries once, off-diagonal entries
// doubled, since both operands are symmetric).
func (m *Matrix) FrobeniusProductSym(other *Matrix) bigfloat.Real {
	sum := bigfloat.Zero()
	for i := range m.Diag {
		sum = sum.Add(m.Diag[i].Mul(other.Diag[i]))
	}
	for bi, A := range m.Blocks {
		B := other.Blocks[bi]
		for i := 0; i < A.Rows; i++ {
			for j := 0; j < A.Cols; j++ {
				sum = sum.Add(A.At(i, j).Mul(B.At(i, j)))
			}
		}
	}
	return sum
}

// Multiply computes C ← αAB+βC: the diagonal prefix is updated Hadamard
// (αAᵢBᵢ+βCᵢ), each block via GEMM. A and B are not required to commute
// block-by-block, so the result is in general non-symmetric even when A and
// B are; callers that need symmetry call C.Symmetrize() explicitly.
func Multiply(alpha bigfloat.Real, A, B *Matrix, beta bigfloat.Real, C *Matrix) {
	for i := range C.Diag {
		C.Diag[i] = alpha.Mul(A.Diag[i].Mul(B.Diag[i])).Add(beta.Mul(C.Diag[i]))
	}
	for i := range C.Blocks {
		densemat.GEMM(false, false, alpha, A.Blocks[i], B.Blocks[i], beta, C.Blocks[i])
	}
}

// Scale performs m ← alpha*m in place, block-by-block and over the diagonal
// prefix.
func (m *Matrix) Scale(alpha bigfloat.Real) {
	m.Diag.Scale(alpha)
	for _, b := range m.Blocks {
		for i := 0; i < b.Rows; i++ {
			for j := 0; j < b.Cols; j++ {
				b.Set(i, j, alpha.Mul(b.At(i, j)))
			}
		}
	}
}

// AddScaled performs m ← m + alpha*x in place, block-by-block and over the
// diagonal prefix.
func (m *Matrix) AddScaled(alpha bigfloat.Real, x *Matrix) {
	m.Diag.AddScaled(alpha, x.Diag)
	for i, b := range m.Blocks {
		xb := x.Blocks[i]
		for r := 0; r < b.Rows; r++ {
			for c := 0; c < b.Cols; c++ {
				b.AddAt(r, c, alpha.Mul(xb.At(r, c)))
			}
		}
	}
}
