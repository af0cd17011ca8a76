package sdpb

import (
	"testing"
	"time"

	"github.com/horropie/sdpb/bigfloat"
)

func TestTerminationOnBudgetExhausted(t *testing.T) {
	p := &SolverParameters{
		MaxIterations:                1,
		MaxRuntime:                   time.Second,
		EpsPrimal:                    bigfloat.FromFloat64(1e-10),
		EpsDual:                      bigfloat.FromFloat64(1e-10),
		EpsGap:                       bigfloat.FromFloat64(1e-10),
		MaxComplementarity:           bigfloat.FromFloat64(1e100),
		FeasibleCenteringParameter:   bigfloat.FromFloat64(0.1),
		InfeasibleCenteringParameter: bigfloat.FromFloat64(0.3),
		StepLengthSafetyFactor:       bigfloat.FromFloat64(0.9),
	}

	sv := &Solver{params: *p}

	sv.iterations = 0
	if got := terminationOnBudgetExhausted(sv); got != MaxIterationsExceeded {
		t.Fatalf("iterations=0: got %s, want MaxIterationsExceeded", got)
	}

	sv.iterations = 1
	sv.primalError = bigfloat.FromFloat64(1e-15)
	sv.dualError = bigfloat.FromFloat64(1e-15)
	if got := terminationOnBudgetExhausted(sv); got != MaxIterationsExceeded {
		t.Fatalf("both feasible: got %s, want MaxIterationsExceeded", got)
	}

	sv.primalError = bigfloat.FromFloat64(1e-15)
	sv.dualError = bigfloat.FromFloat64(1)
	if got := terminationOnBudgetExhausted(sv); got != PrimalFeasible {
		t.Fatalf("primal only: got %s, want PrimalFeasible", got)
	}

	sv.primalError = bigfloat.FromFloat64(1)
	sv.dualError = bigfloat.FromFloat64(1e-15)
	if got := terminationOnBudgetExhausted(sv); got != DualFeasible {
		t.Fatalf("dual only: got %s, want DualFeasible", got)
	}

	sv.primalError = bigfloat.FromFloat64(1)
	sv.dualError = bigfloat.FromFloat64(1)
	if got := terminationOnBudgetExhausted(sv); got != MaxIterationsExceeded {
		t.Fatalf("neither feasible: got %s, want MaxIterationsExceeded", got)
	}
}
