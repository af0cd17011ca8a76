package bigfloat

import (
	"fmt"
	"math/big"
	"sync"
)

// precBits is the process-wide mantissa precision, in bits, used by
// every Real constructed after it is first read. It has an init-once
// lifecycle: the first call to SetDefaultPrecision or the first Real
// constructed (whichever happens first) fixes the value for the remainder
// of the process.
var (
	precMu    sync.Mutex
	precBits  uint = 53
	precFixed bool
)

// SetDefaultPrecision fixes the process-wide mantissa precision used by
// every Real constructed afterward. It must be called before any Real is
// constructed. Calling it a second time with a different value panics,
// since mixing precisions within one solve is forbidden by construction.
func SetDefaultPrecision(bits uint) {
	precMu.Lock()
	defer precMu.Unlock()
	if precFixed && bits != precBits {
		panic(fmt.Errorf("%w: default precision already fixed at %d bits, cannot change to %d", ErrPrecisionMismatch, precBits, bits))
	}
	precBits = bits
	precFixed = true
}

// DefaultPrecision returns the process-wide mantissa precision in bits,
// fixing it at its current value if it was not already fixed.
func DefaultPrecision() uint {
	precMu.Lock()
	defer precMu.Unlock()
	precFixed = true
	return precBits
}

// Real is an arbitrary-precision floating point scalar. The zero value is
// usable and behaves as 0 at the default precision.
type Real struct {
	v big.Float
}

func (r *Real) ensure() *big.Float {
	if r.v.Prec() == 0 {
		r.v.SetPrec(DefaultPrecision())
	}
	return &r.v
}

func checkPrec(a, b *big.Float) {
	if a.Prec() != 0 && b.Prec() != 0 && a.Prec() != b.Prec() {
		panic(fmt.Errorf("%w: %d bits vs %d bits", ErrPrecisionMismatch, a.Prec(), b.Prec()))
	}
}

// Zero returns the additive identity at the default precision.
func Zero() Real {
	var r Real
	r.ensure()
	return r
}

// One returns the multiplicative identity at the default precision.
func One() Real {
	var r Real
	r.ensure().SetInt64(1)
	return r
}

// FromInt64 constructs a Real from an int64 at the default precision.
func FromInt64(i int64) Real {
	var r Real
	r.ensure().SetInt64(i)
	return r
}

// FromFloat64 constructs a Real from a float64 at the default precision.
func FromFloat64(f float64) Real {
	var r Real
	r.ensure().SetFloat64(f)
	return r
}

// FromString parses a decimal literal at the default precision.
func FromString(s string) (Real, error) {
	var r Real
	_, _, err := r.ensure().Parse(s, 10)
	if err != nil {
		return Real{}, fmt.Errorf("bigfloat: parse %q: %w", s, err)
	}
	return r, nil
}

// FromBigFloat wraps f, reprecisioned to the default precision. It does not
// alias f's storage.
func FromBigFloat(f *big.Float) Real {
	var r Real
	r.ensure().Set(f)
	return r
}

// BigFloat returns the underlying *big.Float. Callers must not mutate it
// through the returned pointer; it is exposed read-only for checkpoint and
// reporting accessors (see sdpb.Solver.ExportState).
func (r *Real) BigFloat() *big.Float {
	return r.ensure()
}

// Add returns r+other.
func (r Real) Add(other Real) Real {
	checkPrec(&r.v, &other.v)
	var z Real
	z.ensure().Add(r.ensure(), other.ensure())
	return z
}

// Sub returns r-other.
func (r Real) Sub(other Real) Real {
	checkPrec(&r.v, &other.v)
	var z Real
	z.ensure().Sub(r.ensure(), other.ensure())
	return z
}

// Mul returns r*other.
func (r Real) Mul(other Real) Real {
	checkPrec(&r.v, &other.v)
	var z Real
	z.ensure().Mul(r.ensure(), other.ensure())
	return z
}

// Quo returns r/other.
func (r Real) Quo(other Real) Real {
	checkPrec(&r.v, &other.v)
	var z Real
	z.ensure().Quo(r.ensure(), other.ensure())
	return z
}

// Neg returns -r.
func (r Real) Neg() Real {
	var z Real
	z.ensure().Neg(r.ensure())
	return z
}

// Abs returns |r|.
func (r Real) Abs() Real {
	var z Real
	z.ensure().Abs(r.ensure())
	return z
}

// Sqrt returns √r. Panics if r is negative, matching math/big.Float.Sqrt.
func (r Real) Sqrt() Real {
	var z Real
	z.ensure().Sqrt(r.ensure())
	return z
}

// Cmp compares r and other, returning -1, 0, or +1.
func (r Real) Cmp(other Real) int {
	checkPrec(&r.v, &other.v)
	return r.ensure().Cmp(other.ensure())
}

// Sign returns -1, 0, or +1 according to the sign of r.
func (r Real) Sign() int {
	return r.ensure().Sign()
}

// IsZero reports whether r is exactly zero.
func (r Real) IsZero() bool {
	return r.ensure().Sign() == 0
}

// Float64 returns the nearest float64 to r, for logging and reporting only.
func (r Real) Float64() float64 {
	f, _ := r.ensure().Float64()
	return f
}

// String formats r at a digit count consistent with the default precision.
func (r Real) String() string {
	digits := int(float64(DefaultPrecision())*0.30103) + 2
	return r.ensure().Text('g', digits)
}

// Epsilon returns 2^-(p-1) at the current default precision p, the
// arbitrary-precision analog of machine epsilon, used by the dense kernels
// to pick convergence thresholds that scale with the working precision.
func Epsilon() Real {
	z := One()
	z.v.SetMantExp(&z.v, -int(DefaultPrecision())+1)
	return z
}

// Min returns whichever of a, b compares smaller.
func Min(a, b Real) Real {
	if a.Cmp(b) <= 0 {
		return a
	}
	return b
}

// Max returns whichever of a, b compares larger.
func Max(a, b Real) Real {
	if a.Cmp(b) >= 0 {
		return a
	}
	return b
}
