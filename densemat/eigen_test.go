package densemat_test

import (
	"testing"

	"github.com/horropie/sdpb/bigfloat"
	"github.com/horropie/sdpb/densemat"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSYEVDiagonal(t *testing.T) {
	A := mat(3, 3, 3, 0, 0, 0, 1, 0, 0, 0, 2)
	w := bigfloat.NewVector(3)
	err := densemat.SYEV(densemat.Lower, A, w)
	assert.NoError(t, err)
	assert.Equal(t, 0, w[0].Cmp(bigfloat.FromInt64(1)))
	assert.Equal(t, 0, w[1].Cmp(bigfloat.FromInt64(2)))
	assert.Equal(t, 0, w[2].Cmp(bigfloat.FromInt64(3)))
}

func TestSYEVAgreesWithLanczos(t *testing.T) {
	// L = diag(1,2,3), X = [[3,0,0],[0,3,1],[0,1,3]]; compare min eigenvalue
	// of L·X·Lᵀ via SYEV against the Lanczos estimate, per the spec's
	// scenario 5.
	X := mat(3, 3, 3, 0, 0, 0, 3, 1, 0, 1, 3)
	L := mat(3, 3, 1, 0, 0, 0, 2, 0, 0, 0, 3)

	tmp := densemat.NewMatrix(3, 3)
	densemat.GEMM(false, false, bigfloat.One(), L, X, bigfloat.Zero(), tmp)
	LXLt := densemat.NewMatrix(3, 3)
	densemat.GEMM(false, true, bigfloat.One(), tmp, L, bigfloat.Zero(), LXLt)

	exact, err := densemat.MinEigenvalue(densemat.Lower, LXLt)
	require.NoError(t, err)
	approx, err := densemat.MinEigenvalueViaLanczos(LXLt, 3)
	require.NoError(t, err)

	diff := exact.Sub(approx).Abs()
	bound := bigfloat.Max(exact.Abs().Mul(bigfloat.FromInt64(1).Quo(bigfloat.FromInt64(100))), bigfloat.FromFloat64(1e-4))
	assert.True(t, diff.Cmp(bound) <= 0, "lanczos error %s exceeds bound %s", diff, bound)
}
