package sdpb

import (
	"fmt"
	"io"
)

// LogLevel controls the frequency and detail of Logger output, mirroring
// lbfgsb.LogLevel's ordered-threshold idiom.
type LogLevel int

const (
	// LogNoop emits nothing, costing one branch per call site. It is not the
	// zero value of LogLevel; the zero value is LogSummary.
	LogNoop LogLevel = -1
	// LogSummary prints one line per iteration: iter, μ, primal/dual error, gap.
	LogSummary LogLevel = 0
	// LogVerbose additionally prints α_P, α_D, and the chosen centering
	// parameters β for the predictor and corrector solves.
	LogVerbose LogLevel = 1
)

// Logger handles progress output for a Solver. The zero value discards
// everything. Msg and Out must be safe for the caller's concurrency model;
// the solver itself never writes to them concurrently since iteration is
// single-threaded per spec.md §5.
type Logger struct {
	Level LogLevel
	Msg   io.Writer
	Out   io.Writer
}

func (l *Logger) enable(level LogLevel) bool {
	return l != nil && l.Level >= level
}

func (l *Logger) log(format string, a ...any) {
	if l == nil || l.Msg == nil {
		return
	}
	_, _ = fmt.Fprintf(l.Msg, format, a...)
}
