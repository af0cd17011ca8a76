package sdpb

import (
	"errors"
	"fmt"
	"time"

	"github.com/horropie/sdpb/bigfloat"
	"github.com/horropie/sdpb/pmp"
)

// SolverParameters configures a Solver's termination thresholds and
// Mehrotra centering behavior, following the teacher's Problem/Termination
// split (lbfgsb.Problem.Stop) with the primal-dual fields §6 requires.
type SolverParameters struct {
	MaxIterations int
	MaxRuntime    time.Duration

	EpsPrimal          bigfloat.Real
	EpsDual            bigfloat.Real
	EpsGap             bigfloat.Real
	MaxComplementarity bigfloat.Real

	FeasibleCenteringParameter   bigfloat.Real
	InfeasibleCenteringParameter bigfloat.Real
	StepLengthSafetyFactor       bigfloat.Real

	// NoFinalCheckpoint is carried for interface parity with the
	// checkpointer collaborator (§6); the core never writes a checkpoint
	// itself, so this flag has no effect inside the package.
	NoFinalCheckpoint bool

	// Logger receives per-iteration progress output. A nil Logger, or one
	// with Level LogNoop, disables it.
	Logger *Logger
}

// validate checks every numeric field is within its valid range, mirroring
// lbfgsb.Problem.New's switch-based validation, and aggregates every
// violation via errors.Join rather than stopping at the first.
func (p *SolverParameters) validate() error {
	var errs []error
	fail := func(msg string) { errs = append(errs, fmt.Errorf("%w: %s", ErrInvalidParameters, msg)) }

	if p.MaxIterations <= 0 {
		fail("MaxIterations must be positive")
	}
	if p.MaxRuntime <= 0 {
		fail("MaxRuntime must be positive")
	}
	inUnitInterval := func(name string, v bigfloat.Real) {
		if v.Sign() <= 0 || v.Cmp(bigfloat.One()) >= 0 {
			fail(name + " must lie in (0,1)")
		}
	}
	inUnitInterval("EpsPrimal", p.EpsPrimal)
	inUnitInterval("EpsDual", p.EpsDual)
	inUnitInterval("EpsGap", p.EpsGap)
	inUnitInterval("FeasibleCenteringParameter", p.FeasibleCenteringParameter)
	inUnitInterval("InfeasibleCenteringParameter", p.InfeasibleCenteringParameter)
	inUnitInterval("StepLengthSafetyFactor", p.StepLengthSafetyFactor)
	if p.MaxComplementarity.Sign() <= 0 {
		fail("MaxComplementarity must be positive")
	}

	return errors.Join(errs...)
}

// NewSolver validates p and sdp, then allocates and initializes a Solver
// ready for Run. sdp is retained by reference and treated as read-only for
// the Solver's lifetime.
func (p *SolverParameters) NewSolver(sdp *pmp.SDP) (*Solver, error) {
	if err := sdp.Validate(); err != nil {
		return nil, err
	}
	if err := p.validate(); err != nil {
		return nil, err
	}

	logger := p.Logger
	if logger == nil {
		logger = &Logger{Level: LogNoop}
	}

	sv := &Solver{
		sdp:    sdp,
		params: *p,
		logger: logger,
	}
	sv.allocate()
	sv.initializeState()
	return sv, nil
}
