package blockdiag_test

import (
	"testing"

	"github.com/horropie/sdpb/bigfloat"
	"github.com/horropie/sdpb/blockdiag"
	"github.com/horropie/sdpb/densemat"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mat3(vals ...int64) *densemat.Matrix {
	m := densemat.NewMatrix(3, 3)
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			m.Set(i, j, bigfloat.FromInt64(vals[i*3+j]))
		}
	}
	return m
}

// TestBlockCholeskyMixing implements spec.md §8 scenario 3: diag=[2,3] plus
// one 3x3 block; expect L_inv diagonal (1/√2,1/√3) and
// L_invᵀ·L_inv·block == I to high precision.
func TestBlockCholeskyMixing(t *testing.T) {
	bigfloat.SetDefaultPrecision(200)

	M := blockdiag.New(2, []int{3})
	M.Diag[0] = bigfloat.FromInt64(2)
	M.Diag[1] = bigfloat.FromInt64(3)
	M.Blocks[0] = mat3(14, 3, 8, 3, 10, 9, 8, 9, 14)

	scratch := []*densemat.Matrix{densemat.NewMatrix(3, 3)}
	Linv, Minv := blockdiag.New(2, []int{3}), blockdiag.New(2, []int{3})
	err := blockdiag.InverseCholeskyAndInverse(M, scratch, Linv, Minv)
	require.NoError(t, err)

	wantD0 := bigfloat.One().Quo(bigfloat.FromInt64(2).Sqrt())
	wantD1 := bigfloat.One().Quo(bigfloat.FromInt64(3).Sqrt())
	assert.Equal(t, 0, Linv.Diag[0].Cmp(wantD0))
	assert.Equal(t, 0, Linv.Diag[1].Cmp(wantD1))

	LtL := densemat.NewMatrix(3, 3)
	densemat.GEMM(true, false, bigfloat.One(), Linv.Blocks[0], Linv.Blocks[0], bigfloat.Zero(), LtL)
	check := densemat.NewMatrix(3, 3)
	densemat.GEMM(false, false, bigfloat.One(), LtL, M.Blocks[0], bigfloat.Zero(), check)

	tol := bigfloat.FromFloat64(1e-25)
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			want := bigfloat.Zero()
			if i == j {
				want = bigfloat.One()
			}
			assert.True(t, check.At(i, j).Sub(want).Abs().Cmp(tol) <= 0, "(%d,%d)=%s", i, j, check.At(i, j).String())
		}
	}

	assert.Equal(t, 0, Minv.Diag[0].Cmp(bigfloat.One().Quo(bigfloat.FromInt64(2))))
}

func TestInverseCholeskyAndInverseRejectsIndefinite(t *testing.T) {
	M := blockdiag.New(0, []int{2})
	M.Blocks[0].Set(0, 0, bigfloat.FromInt64(1))
	M.Blocks[0].Set(1, 1, bigfloat.FromInt64(-1))
	scratch := []*densemat.Matrix{densemat.NewMatrix(2, 2)}
	Linv, Minv := blockdiag.New(0, []int{2}), blockdiag.New(0, []int{2})
	err := blockdiag.InverseCholeskyAndInverse(M, scratch, Linv, Minv)
	assert.ErrorIs(t, err, blockdiag.ErrNotPositiveDefinite)
}

func TestMultiplyIsNotSymmetricInGeneral(t *testing.T) {
	A := blockdiag.New(0, []int{2})
	A.Blocks[0] = densemat.NewMatrix(2, 2)
	A.Blocks[0].Set(0, 0, bigfloat.FromInt64(1))
	A.Blocks[0].Set(0, 1, bigfloat.FromInt64(2))
	A.Blocks[0].Set(1, 0, bigfloat.FromInt64(0))
	A.Blocks[0].Set(1, 1, bigfloat.FromInt64(1))

	B := blockdiag.New(0, []int{2})
	B.Blocks[0] = densemat.NewMatrix(2, 2)
	B.Blocks[0].Set(0, 0, bigfloat.FromInt64(1))
	B.Blocks[0].Set(0, 1, bigfloat.FromInt64(0))
	B.Blocks[0].Set(1, 0, bigfloat.FromInt64(3))
	B.Blocks[0].Set(1, 1, bigfloat.FromInt64(1))

	C := A.Like()
	blockdiag.Multiply(bigfloat.One(), A, B, bigfloat.Zero(), C)
	assert.NotEqual(t, 0, C.Blocks[0].MaxAsymmetry().Sign())

	C.Symmetrize()
	assert.Equal(t, 0, C.Blocks[0].MaxAsymmetry().Cmp(bigfloat.Zero()))
}

func TestFrobeniusProductSym(t *testing.T) {
	A := blockdiag.New(1, []int{2})
	A.Diag[0] = bigfloat.FromInt64(2)
	A.Blocks[0].Set(0, 0, bigfloat.FromInt64(1))
	A.Blocks[0].Set(1, 1, bigfloat.FromInt64(3))

	B := blockdiag.Identity(1, []int{2})

	got := A.FrobeniusProductSym(B)
	assert.Equal(t, 0, got.Cmp(bigfloat.FromInt64(6))) // 2*1 + 1*1 + 3*1
}
