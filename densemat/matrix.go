package densemat

import (
	"strings"

	"github.com/horropie/sdpb/bigfloat"
)

// Matrix is a row-major dense array of bigfloat.Real with fixed Rows×Cols.
// It exclusively owns its backing storage.
type Matrix struct {
	Rows, Cols int
	data       []bigfloat.Real
}

// NewMatrix allocates a Rows×Cols matrix of zeros.
func NewMatrix(rows, cols int) *Matrix {
	data := make([]bigfloat.Real, rows*cols)
	for i := range data {
		data[i] = bigfloat.Zero()
	}
	return &Matrix{Rows: rows, Cols: cols, data: data}
}

// Identity returns the n×n identity matrix.
func Identity(n int) *Matrix {
	m := NewMatrix(n, n)
	one := bigfloat.One()
	for i := 0; i < n; i++ {
		m.Set(i, i, one)
	}
	return m
}

func (m *Matrix) index(i, j int) int {
	if i < 0 || i >= m.Rows || j < 0 || j >= m.Cols {
		panic("densemat: index out of range")
	}
	return i*m.Cols + j
}

// At returns the (i,j) element.
func (m *Matrix) At(i, j int) bigfloat.Real {
	return m.data[m.index(i, j)]
}

// Set assigns the (i,j) element.
func (m *Matrix) Set(i, j int, v bigfloat.Real) {
	m.data[m.index(i, j)] = v
}

// AddAt performs data[i,j] += v in place.
func (m *Matrix) AddAt(i, j int, v bigfloat.Real) {
	idx := m.index(i, j)
	m.data[idx] = m.data[idx].Add(v)
}

// Row returns the backing slice for row i; mutations through it mutate m.
func (m *Matrix) Row(i int) []bigfloat.Real {
	if i < 0 || i >= m.Rows {
		panic("densemat: row out of range")
	}
	return m.data[i*m.Cols : (i+1)*m.Cols]
}

// Clone returns a deep copy of m.
func (m *Matrix) Clone() *Matrix {
	out := &Matrix{Rows: m.Rows, Cols: m.Cols, data: make([]bigfloat.Real, len(m.data))}
	copy(out.data, m.data)
	return out
}

// CopyFrom overwrites m in place with the elements of x. Panics on
// dimension mismatch.
func (m *Matrix) CopyFrom(x *Matrix) {
	if m.Rows != x.Rows || m.Cols != x.Cols {
		panic("densemat: CopyFrom dimension mismatch")
	}
	copy(m.data, x.data)
}

// Zero resets every element of m to 0.
func (m *Matrix) Zero() {
	zero := bigfloat.Zero()
	for i := range m.data {
		m.data[i] = zero
	}
}

// SetIdentity resets m in place to the identity matrix, so a preallocated
// scratch matrix can be reused as a TRSM identity source across iterations.
// Panics if m is not square.
func (m *Matrix) SetIdentity() {
	if m.Rows != m.Cols {
		panic("densemat: SetIdentity requires a square matrix")
	}
	m.Zero()
	one := bigfloat.One()
	for i := 0; i < m.Rows; i++ {
		m.Set(i, i, one)
	}
}

// Transpose returns a newly allocated transpose of m.
func (m *Matrix) Transpose() *Matrix {
	out := NewMatrix(m.Cols, m.Rows)
	for i := 0; i < m.Rows; i++ {
		for j := 0; j < m.Cols; j++ {
			out.Set(j, i, m.At(i, j))
		}
	}
	return out
}

// Symmetrize replaces m in place with ½(m+mᵀ). Panics if m is not square.
func (m *Matrix) Symmetrize() {
	if m.Rows != m.Cols {
		panic("densemat: Symmetrize requires a square matrix")
	}
	half := bigfloat.FromInt64(1).Quo(bigfloat.FromInt64(2))
	for i := 0; i < m.Rows; i++ {
		for j := i + 1; j < m.Cols; j++ {
			avg := m.At(i, j).Add(m.At(j, i)).Mul(half)
			m.Set(i, j, avg)
			m.Set(j, i, avg)
		}
	}
}

// MaxAsymmetry returns max|M-Mᵀ| over all entries, for testing the
// symmetry invariant.
func (m *Matrix) MaxAsymmetry() bigfloat.Real {
	max := bigfloat.Zero()
	for i := 0; i < m.Rows; i++ {
		for j := 0; j < m.Cols; j++ {
			d := m.At(i, j).Sub(m.At(j, i)).Abs()
			if d.Cmp(max) > 0 {
				max = d
			}
		}
	}
	return max
}

// MaxAbs returns the maximum absolute-value element of m.
func (m *Matrix) MaxAbs() bigfloat.Real {
	max := bigfloat.Zero()
	for _, x := range m.data {
		if a := x.Abs(); a.Cmp(max) > 0 {
			max = a
		}
	}
	return max
}

// ZeroUpperTriangle sets every strictly-above-diagonal entry to 0, per the
// POTRF contract's "explicitly zero the upper triangle" discipline.
func (m *Matrix) ZeroUpperTriangle() {
	zero := bigfloat.Zero()
	for i := 0; i < m.Rows; i++ {
		for j := i + 1; j < m.Cols; j++ {
			m.Set(i, j, zero)
		}
	}
}

// ZeroLowerTriangle sets every strictly-below-diagonal entry to 0.
func (m *Matrix) ZeroLowerTriangle() {
	zero := bigfloat.Zero()
	for i := 0; i < m.Rows; i++ {
		for j := 0; j < i; j++ {
			m.Set(i, j, zero)
		}
	}
}

func (m *Matrix) String() string {
	rows := make([]string, m.Rows)
	for i := 0; i < m.Rows; i++ {
		cols := make([]string, m.Cols)
		for j := 0; j < m.Cols; j++ {
			cols[j] = m.At(i, j).String()
		}
		rows[i] = "[" + strings.Join(cols, " ") + "]"
	}
	return "[" + strings.Join(rows, " ") + "]"
}
