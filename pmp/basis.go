package pmp

import (
	"github.com/horropie/sdpb/bigfloat"
	"github.com/horropie/sdpb/densemat"
)

// BilinearBasis is a (δ+1)×(deg+1) matrix whose (n,k) entry is q_n(x_k),
// where q_n are the monomials x^n (optionally scaled by √x_k for the
// "half-shift" basis used to realize odd-degree positivity). Indices: n over
// [0,δ], k over sample points [0,deg].
type BilinearBasis = *densemat.Matrix

// buildBilinearBasis samples the monomials x^0,…,x^delta at samplePoints,
// each column k additionally scaled by sampleScalings[k] and, when
// halfShift, by √samplePoints[k].
func buildBilinearBasis(delta int, samplePoints, sampleScalings bigfloat.Vector, halfShift bool) BilinearBasis {
	rows, cols := delta+1, len(samplePoints)
	b := densemat.NewMatrix(rows, cols)
	for k := 0; k < cols; k++ {
		x := samplePoints[k]
		scale := sampleScalings[k]
		if halfShift {
			scale = scale.Mul(x.Sqrt())
		}
		xn := bigfloat.One()
		for n := 0; n <= delta; n++ {
			b.Set(n, k, xn.Mul(scale))
			xn = xn.Mul(x)
		}
	}
	return b
}

// DefaultSamplePoints returns n positive, distinct reference sample points
// 1,2,…,n, adequate for exercising the reduction and solver in tests; it is
// not the bootstrap-optimal ρ-sequence a production PMP ingester would
// supply (that sequence, and the rescalings paired with it, are the PMP
// ingester's external-collaborator responsibility per §6).
func DefaultSamplePoints(n int) bigfloat.Vector {
	pts := bigfloat.NewVector(n)
	for k := 0; k < n; k++ {
		pts[k] = bigfloat.FromInt64(int64(k + 1))
	}
	return pts
}

// DefaultSampleScalings returns n unit scalings, paired with
// DefaultSamplePoints for the same purpose.
func DefaultSampleScalings(n int) bigfloat.Vector {
	s := bigfloat.NewVector(n)
	one := bigfloat.One()
	for k := range s {
		s[k] = one
	}
	return s
}
