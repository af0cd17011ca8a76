package pmp

import (
	"fmt"

	"github.com/horropie/sdpb/bigfloat"
	"github.com/horropie/sdpb/densemat"
)

// SampledMatrixPolynomial is one polynomial-vector-matrix constraint after
// sampling: Dim×Dim, degree Degree, reduced to a dense ConstraintMatrix
// (rows = scalar constraints for this group, cols = dual-objective
// dimension), ConstraintConstants (the primal-objective coefficient c_p per
// row), and the BilinearBases realizing its positivity at the sample points.
type SampledMatrixPolynomial struct {
	Dim                 int
	Degree              int
	ConstraintMatrix    *densemat.Matrix
	ConstraintConstants bigfloat.Vector
	BilinearBases       []*densemat.Matrix
}

// SamplePolynomialVectorMatrix reduces the Dim×Dim polynomial-vector-matrix
// constraint m to a SampledMatrixPolynomial by evaluating every entry's
// length-N polynomial vector at samplePoints (scaled by sampleScalings), in
// lexicographic (s,r≤s,k) order, and builds the even/half-shift bilinear
// bases the Schur complement needs to realize M(x)⪰0 at those samples.
//
// Following the "later layering" convention of spec.md §9, the reduction
// folds no separate affine offset into ConstraintConstants: every primal
// coefficient is zero, and the affine part of the objective lives entirely
// in SDP.DualObjective/SDP.ObjectiveConst, set by the caller of
// BootstrapPolynomialSDP.
func SamplePolynomialVectorMatrix(m *PolynomialVectorMatrix, samplePoints, sampleScalings bigfloat.Vector) (*SampledMatrixPolynomial, error) {
	if m.Rows != m.Cols {
		return nil, fmt.Errorf("%w: polynomial vector matrix must be square, got %dx%d", ErrInvalidProblem, m.Rows, m.Cols)
	}
	if len(samplePoints) != len(sampleScalings) {
		return nil, fmt.Errorf("%w: sample points/scalings length mismatch", ErrInvalidProblem)
	}
	dim := m.Rows
	degree := m.MaxDegree()
	if len(samplePoints) != degree+1 {
		return nil, fmt.Errorf("%w: need %d sample points for degree %d, got %d", ErrInvalidProblem, degree+1, degree, len(samplePoints))
	}

	rows := dim * (dim + 1) / 2 * (degree + 1)
	cm := densemat.NewMatrix(rows, m.DualObjectiveDim)
	cc := bigfloat.NewVector(rows)

	row := 0
	for s := 0; s < dim; s++ {
		for r := 0; r <= s; r++ {
			vec := m.At(r, s)
			for k, x := range samplePoints {
				scale := sampleScalings[k]
				for n := 0; n < m.DualObjectiveDim; n++ {
					cm.Set(row, n, vec[n].Evaluate(x).Mul(scale))
				}
				cc[row] = bigfloat.Zero()
				row++
			}
		}
	}

	bases := []*densemat.Matrix{buildBilinearBasis(degree/2, samplePoints, sampleScalings, false)}
	if degree >= 1 {
		bases = append(bases, buildBilinearBasis((degree-1)/2, samplePoints, sampleScalings, true))
	}

	return &SampledMatrixPolynomial{
		Dim:                 dim,
		Degree:              degree,
		ConstraintMatrix:    cm,
		ConstraintConstants: cc,
		BilinearBases:       bases,
	}, nil
}

// BootstrapSDP assembles an SDP from pre-sampled constraint groups, mirroring
// original_source's fill_from_dual_constraint_groups.cxx: it concatenates
// each group's constraintConstants into the primal objective, each group's
// bilinear bases into the shared pool (recording which indices belong to
// which group in Blocks), and block-stacks the constraint matrices into
// FreeVarMatrix.
func BootstrapSDP(dualObjective bigfloat.Vector, objectiveConst bigfloat.Real, groups []*SampledMatrixPolynomial) (*SDP, error) {
	if len(groups) == 0 {
		return nil, fmt.Errorf("%w: no constraint groups", ErrInvalidProblem)
	}

	sdp := &SDP{
		DualObjective:  dualObjective,
		ObjectiveConst: objectiveConst,
	}

	for _, g := range groups {
		sdp.Dimensions = append(sdp.Dimensions, g.Dim)
		sdp.Degrees = append(sdp.Degrees, g.Degree)
		sdp.PrimalObjective = append(sdp.PrimalObjective, g.ConstraintConstants...)
	}

	sdp.FreeVarMatrix = densemat.NewMatrix(len(sdp.PrimalObjective), len(dualObjective))

	p := 0
	for _, g := range groups {
		blocks := make([]int, 0, len(g.BilinearBases))
		for _, b := range g.BilinearBases {
			if b.Cols != g.Degree+1 {
				return nil, fmt.Errorf("%w: bilinear basis sampled %d times, want %d", ErrInvalidProblem, b.Cols, g.Degree+1)
			}
			blocks = append(blocks, len(sdp.BilinearBases))
			sdp.BilinearBases = append(sdp.BilinearBases, b)
		}
		sdp.Blocks = append(sdp.Blocks, blocks)

		for k := 0; k < g.ConstraintMatrix.Rows; k, p = k+1, p+1 {
			for n := 0; n < g.ConstraintMatrix.Cols; n++ {
				sdp.FreeVarMatrix.Set(p, n, g.ConstraintMatrix.At(k, n))
			}
		}
	}
	if p != len(sdp.PrimalObjective) {
		panic("pmp: free variable matrix row count does not match primal dimension")
	}

	if err := sdp.initializeConstraintIndices(); err != nil {
		return nil, err
	}
	if err := sdp.Validate(); err != nil {
		return nil, err
	}
	return sdp, nil
}

// BootstrapPolynomialSDP samples every entry of polVectorMatrices against
// the shared samplePoints/sampleScalings and assembles the resulting SDP,
// mirroring original_source's SDP.h bootstrapPolynomialSDP entry point —
// the one the PMP ingester (outside this module's scope) is expected to
// drive after parsing a problem file.
func BootstrapPolynomialSDP(affineObjective bigfloat.Vector, objectiveConst bigfloat.Real, polVectorMatrices []*PolynomialVectorMatrix, samplePoints, sampleScalings bigfloat.Vector) (*SDP, error) {
	if len(polVectorMatrices) == 0 {
		return nil, fmt.Errorf("%w: no polynomial vector matrices", ErrInvalidProblem)
	}
	groups := make([]*SampledMatrixPolynomial, len(polVectorMatrices))
	for i, m := range polVectorMatrices {
		g, err := SamplePolynomialVectorMatrix(m, samplePoints, sampleScalings)
		if err != nil {
			return nil, fmt.Errorf("group %d: %w", i, err)
		}
		groups[i] = g
	}
	return BootstrapSDP(affineObjective, objectiveConst, groups)
}
