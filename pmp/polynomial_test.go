package pmp_test

import (
	"testing"

	"github.com/horropie/sdpb/bigfloat"
	"github.com/horropie/sdpb/pmp"
	"github.com/stretchr/testify/assert"
)

func init() {
	bigfloat.SetDefaultPrecision(200)
}

func poly(coeffs ...int64) pmp.Polynomial {
	v := bigfloat.NewVector(len(coeffs))
	for i, c := range coeffs {
		v[i] = bigfloat.FromInt64(c)
	}
	return pmp.NewPolynomial(v)
}

func TestPolynomialDegree(t *testing.T) {
	assert.Equal(t, 2, poly(1, 2, 3).Degree())
	assert.Equal(t, 0, poly(5).Degree())
	assert.Equal(t, 0, poly(0).Degree())
	assert.Equal(t, 1, poly(1, 2, 0).Degree())
}

func TestPolynomialEvaluate(t *testing.T) {
	p := poly(1, 2, 3) // 1 + 2x + 3x²
	v := p.Evaluate(bigfloat.FromInt64(2))
	assert.Equal(t, 0, v.Cmp(bigfloat.FromInt64(1+4+12)))
}

func TestPolynomialVectorMatrixAt(t *testing.T) {
	m := &pmp.PolynomialVectorMatrix{
		Rows: 2, Cols: 2, DualObjectiveDim: 1,
		Elements: [][]pmp.Polynomial{
			{poly(1)}, {poly(2)},
			{poly(3)}, {poly(4)},
		},
	}
	assert.Equal(t, 0, m.At(1, 0)[0].Evaluate(bigfloat.Zero()).Cmp(bigfloat.FromInt64(3)))
	assert.Equal(t, 0, m.MaxDegree())
}
