package sdpb_test

import (
	"testing"
	"time"

	"github.com/horropie/sdpb/bigfloat"
	"github.com/horropie/sdpb/densemat"
	"github.com/horropie/sdpb/pmp"
	"github.com/horropie/sdpb/sdpb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func defaultParams() *sdpb.SolverParameters {
	return &sdpb.SolverParameters{
		MaxIterations:                200,
		MaxRuntime:                   10 * time.Second,
		EpsPrimal:                    bigfloat.FromFloat64(1e-15),
		EpsDual:                      bigfloat.FromFloat64(1e-15),
		EpsGap:                       bigfloat.FromFloat64(1e-15),
		MaxComplementarity:           bigfloat.FromFloat64(1e100),
		FeasibleCenteringParameter:   bigfloat.FromFloat64(0.1),
		InfeasibleCenteringParameter: bigfloat.FromFloat64(0.3),
		StepLengthSafetyFactor:       bigfloat.FromFloat64(0.9),
	}
}

func trivialSDP() *pmp.SDP {
	basis := densemat.NewMatrix(1, 1)
	basis.Set(0, 0, bigfloat.One())

	sdp := &pmp.SDP{
		BilinearBases:   []*densemat.Matrix{basis},
		FreeVarMatrix:   densemat.NewMatrix(1, 1),
		PrimalObjective: bigfloat.Vector{bigfloat.One()},
		DualObjective:   bigfloat.Vector{bigfloat.One()},
		ObjectiveConst:  bigfloat.Zero(),
		Dimensions:      []int{1},
		Degrees:         []int{0},
		Blocks:          [][]int{{0}},
	}
	sdp.FreeVarMatrix.Set(0, 0, bigfloat.One())
	_ = sdp.Validate()
	return sdp
}

func TestNewSolverRejectsInvalidParameters(t *testing.T) {
	sdp := trivialSDP()
	p := defaultParams()
	p.MaxIterations = 0
	_, err := p.NewSolver(sdp)
	assert.ErrorIs(t, err, sdpb.ErrInvalidParameters)
}

func TestNewSolverRejectsInvalidProblem(t *testing.T) {
	p := defaultParams()
	_, err := p.NewSolver(&pmp.SDP{})
	assert.ErrorIs(t, err, pmp.ErrInvalidProblem)
}

func TestNewSolverAllocatesState(t *testing.T) {
	sdp := trivialSDP()
	p := defaultParams()
	sv, err := p.NewSolver(sdp)
	require.NoError(t, err)
	x, X, Y := sv.ExportState()
	assert.Len(t, x, 1)
	assert.Len(t, X.Diag, 1)
	assert.Len(t, Y.Diag, 1)
}
