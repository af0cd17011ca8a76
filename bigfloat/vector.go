package bigfloat

import "strings"

// Vector is an ordered sequence of Real. The zero value is the empty
// vector.
type Vector []Real

// NewVector allocates a length-n Vector of zeros at the default precision.
func NewVector(n int) Vector {
	v := make(Vector, n)
	for i := range v {
		v[i] = Zero()
	}
	return v
}

// Clone returns a deep copy of v; Vector does not alias storage across
// copies the way a bare slice assignment would.
func (v Vector) Clone() Vector {
	out := make(Vector, len(v))
	copy(out, v)
	return out
}

// CopyFrom overwrites v in place with the elements of x. Panics if the
// lengths differ (DimensionMismatch is a programming error).
func (v Vector) CopyFrom(x Vector) {
	if len(v) != len(x) {
		panic("bigfloat: CopyFrom dimension mismatch")
	}
	copy(v, x)
}

// Fill sets every element of v to x.
func (v Vector) Fill(x Real) {
	for i := range v {
		v[i] = x
	}
}

// Dot computes the inner product ⟨v,x⟩, analogous to BLAS ddot.
func (v Vector) Dot(x Vector) Real {
	if len(v) != len(x) {
		panic("bigfloat: Dot dimension mismatch")
	}
	sum := Zero()
	for i := range v {
		sum = sum.Add(v[i].Mul(x[i]))
	}
	return sum
}

// AddScaled performs v ← v + alpha*x in place, analogous to BLAS daxpy.
func (v Vector) AddScaled(alpha Real, x Vector) {
	if len(v) != len(x) {
		panic("bigfloat: AddScaled dimension mismatch")
	}
	for i := range v {
		v[i] = v[i].Add(alpha.Mul(x[i]))
	}
}

// Scale performs v ← alpha*v in place, analogous to BLAS dscal.
func (v Vector) Scale(alpha Real) {
	for i := range v {
		v[i] = v[i].Mul(alpha)
	}
}

// MaxAbs returns the maximum absolute-value element of v, or Zero for an
// empty vector.
func (v Vector) MaxAbs() Real {
	m := Zero()
	for _, x := range v {
		if a := x.Abs(); a.Cmp(m) > 0 {
			m = a
		}
	}
	return m
}

// String renders v space-separated, for debugging and log output only.
func (v Vector) String() string {
	parts := make([]string, len(v))
	for i, x := range v {
		parts[i] = x.String()
	}
	return "[" + strings.Join(parts, " ") + "]"
}
