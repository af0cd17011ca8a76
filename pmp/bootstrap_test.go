package pmp_test

import (
	"testing"

	"github.com/horropie/sdpb/bigfloat"
	"github.com/horropie/sdpb/pmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// degreeZeroMatrix builds the simplest possible 1×1 polynomial-vector-matrix
// constraint: a single constant polynomial vector [1], degree 0, dual
// dimension 1 — the PMP-side input for spec.md §8 scenario 1.
func degreeZeroMatrix() *pmp.PolynomialVectorMatrix {
	one := bigfloat.NewVector(1)
	one[0] = bigfloat.One()
	return &pmp.PolynomialVectorMatrix{
		Rows: 1, Cols: 1, DualObjectiveDim: 1,
		Elements: [][]pmp.Polynomial{{pmp.NewPolynomial(one)}},
	}
}

func TestSamplePolynomialVectorMatrix(t *testing.T) {
	m := degreeZeroMatrix()
	pts := pmp.DefaultSamplePoints(1)
	scalings := pmp.DefaultSampleScalings(1)

	g, err := pmp.SamplePolynomialVectorMatrix(m, pts, scalings)
	require.NoError(t, err)
	assert.Equal(t, 1, g.Dim)
	assert.Equal(t, 0, g.Degree)
	assert.Equal(t, 1, g.ConstraintMatrix.Rows)
	assert.Equal(t, 0, g.ConstraintMatrix.At(0, 0).Cmp(bigfloat.One()))
	assert.Len(t, g.BilinearBases, 1) // degree 0: no half-shift block
}

func TestBootstrapPolynomialSDPTrivial(t *testing.T) {
	m := degreeZeroMatrix()
	pts := pmp.DefaultSamplePoints(1)
	scalings := pmp.DefaultSampleScalings(1)
	objective := bigfloat.Vector{bigfloat.One()}

	sdp, err := pmp.BootstrapPolynomialSDP(objective, bigfloat.Zero(), []*pmp.PolynomialVectorMatrix{m}, pts, scalings)
	require.NoError(t, err)

	assert.Equal(t, 1, sdp.XDim())
	assert.Equal(t, 1, sdp.YDim())
	assert.Len(t, sdp.ConstraintIndices, 1)
	assert.Len(t, sdp.ConstraintIndices[0], 1)
	assert.Equal(t, 0, sdp.FreeVarMatrix.At(0, 0).Cmp(bigfloat.One()))
}

func TestBootstrapPolynomialSDPRejectsEmpty(t *testing.T) {
	_, err := pmp.BootstrapPolynomialSDP(nil, bigfloat.Zero(), nil, nil, nil)
	assert.ErrorIs(t, err, pmp.ErrInvalidProblem)
}
