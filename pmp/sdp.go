package pmp

import (
	"fmt"

	"github.com/horropie/sdpb/bigfloat"
	"github.com/horropie/sdpb/densemat"
)

// IndexTuple enumerates one scalar constraint (p,r,s,k): p is the global,
// strictly increasing constraint index; r≤s<dim_j are the row/column of the
// PSD block within group j; k≤deg_j is the sample index.
type IndexTuple struct {
	P, R, S, K int
}

// SDP is the assembled semidefinite program produced by the PMP reduction:
// maximize cᵀx+const subject to Σx_p·F_p - X = F_0, X⪰0, and B·x = b for the
// free variables y. It is built once and treated read-only thereafter; the
// solver holds it by reference and owns all its own scratch buffers.
type SDP struct {
	BilinearBases     []*densemat.Matrix // concatenation across all groups
	FreeVarMatrix     *densemat.Matrix   // B: rows = x-dim, cols = y-dim
	PrimalObjective   bigfloat.Vector    // c, length x-dim
	DualObjective     bigfloat.Vector    // b, length y-dim
	ObjectiveConst    bigfloat.Real
	Dimensions        []int   // dim_j per group
	Degrees           []int   // deg_j per group
	Blocks            [][]int // indices into BilinearBases per group
	ConstraintIndices [][]IndexTuple
}

// XDim returns the primal dimension (number of IndexTuples, len(c)).
func (s *SDP) XDim() int { return len(s.PrimalObjective) }

// YDim returns the free-variable dimension (len(b)).
func (s *SDP) YDim() int { return len(s.DualObjective) }

// PsdMatrixBlockDims returns, for every (group,block) pair in schur-block
// order, the dimension of the corresponding PSD block of X/Y:
// bilinearBases[b].Rows * dimensions[j].
func (s *SDP) PsdMatrixBlockDims() []int {
	var dims []int
	for j := range s.Dimensions {
		for _, b := range s.Blocks[j] {
			dims = append(dims, s.BilinearBases[b].Rows*s.Dimensions[j])
		}
	}
	return dims
}

// BilinearPairingBlockDims returns, in the same order as PsdMatrixBlockDims,
// the dimension of the corresponding bilinear-pairing block:
// bilinearBases[b].Cols * dimensions[j].
func (s *SDP) BilinearPairingBlockDims() []int {
	var dims []int
	for j := range s.Dimensions {
		for _, b := range s.Blocks[j] {
			dims = append(dims, s.BilinearBases[b].Cols*s.Dimensions[j])
		}
	}
	return dims
}

// SchurBlockDims returns, per group j, len(ConstraintIndices[j]) — the size
// of the diagonal-in-j block of the Schur complement.
func (s *SDP) SchurBlockDims() []int {
	dims := make([]int, len(s.ConstraintIndices))
	for j, ci := range s.ConstraintIndices {
		dims[j] = len(ci)
	}
	return dims
}

// initializeConstraintIndices fills ConstraintIndices from Dimensions and
// Degrees, enumerating p in lexicographic (j,s,r,k) order starting at 0, and
// asserts the result matches len(PrimalObjective) — the invariant that p is
// strictly increasing and covers exactly the primal dimension.
func (s *SDP) initializeConstraintIndices() error {
	s.ConstraintIndices = make([][]IndexTuple, len(s.Dimensions))
	p := 0
	for j, dim := range s.Dimensions {
		deg := s.Degrees[j]
		group := make([]IndexTuple, 0, dim*(dim+1)/2*(deg+1))
		for sIdx := 0; sIdx < dim; sIdx++ {
			for rIdx := 0; rIdx <= sIdx; rIdx++ {
				for k := 0; k <= deg; k++ {
					group = append(group, IndexTuple{P: p, R: rIdx, S: sIdx, K: k})
					p++
				}
			}
		}
		s.ConstraintIndices[j] = group
	}
	if p != len(s.PrimalObjective) {
		return fmt.Errorf("%w: constraint index count %d does not match primal dimension %d", ErrInvalidProblem, p, len(s.PrimalObjective))
	}
	return nil
}

// Validate checks the structural invariants required before the solver can
// safely treat s as read-only: non-empty constraint set, consistent
// dimensions, and a free-variable matrix shaped x-dim×y-dim. When
// ConstraintIndices is nil (an SDP assembled by hand), it fills it in from
// Dimensions and Degrees and reports ErrInvalidProblem if the resulting
// count differs from the primal dimension.
func (s *SDP) Validate() error {
	switch {
	case len(s.Dimensions) == 0:
		return fmt.Errorf("%w: no constraint groups", ErrInvalidProblem)
	case s.XDim() == 0:
		return fmt.Errorf("%w: zero primal dimension", ErrInvalidProblem)
	case s.YDim() == 0:
		return fmt.Errorf("%w: zero dual dimension", ErrInvalidProblem)
	case s.FreeVarMatrix == nil || s.FreeVarMatrix.Rows != s.XDim() || s.FreeVarMatrix.Cols != s.YDim():
		return fmt.Errorf("%w: free variable matrix shape mismatch", ErrInvalidProblem)
	case len(s.Degrees) != len(s.Dimensions) || len(s.Blocks) != len(s.Dimensions):
		return fmt.Errorf("%w: group metadata length mismatch", ErrInvalidProblem)
	}
	for j, dim := range s.Dimensions {
		if dim <= 0 {
			return fmt.Errorf("%w: group %d has non-positive dimension", ErrInvalidProblem, j)
		}
		if s.Degrees[j] < 0 {
			return fmt.Errorf("%w: group %d has negative degree", ErrInvalidProblem, j)
		}
		if len(s.Blocks[j]) == 0 {
			return fmt.Errorf("%w: group %d has no bilinear basis blocks", ErrInvalidProblem, j)
		}
		for _, b := range s.Blocks[j] {
			if b < 0 || b >= len(s.BilinearBases) {
				return fmt.Errorf("%w: group %d references out-of-range bilinear basis %d", ErrInvalidProblem, j, b)
			}
			if s.BilinearBases[b].Cols != s.Degrees[j]+1 {
				return fmt.Errorf("%w: group %d bilinear basis %d sampled %d times, want %d", ErrInvalidProblem, j, b, s.BilinearBases[b].Cols, s.Degrees[j]+1)
			}
		}
	}
	if s.ConstraintIndices == nil {
		return s.initializeConstraintIndices()
	}
	return nil
}
