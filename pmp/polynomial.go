package pmp

import "github.com/horropie/sdpb/bigfloat"

// Polynomial is a single-variable polynomial [c₀ … c_d], stored lowest
// coefficient first. Trailing zero coefficients are allowed but ignored
// semantically: Degree reports the highest non-zero index, not len(Coeffs)-1.
type Polynomial struct {
	Coeffs bigfloat.Vector
}

// NewPolynomial wraps coeffs (lowest-degree first) as a Polynomial; it does
// not copy.
func NewPolynomial(coeffs bigfloat.Vector) Polynomial {
	return Polynomial{Coeffs: coeffs}
}

// Degree returns the highest index with a non-zero coefficient, clamped to 0
// for the zero polynomial or an empty coefficient list.
func (p Polynomial) Degree() int {
	for i := len(p.Coeffs) - 1; i > 0; i-- {
		if !p.Coeffs[i].IsZero() {
			return i
		}
	}
	return 0
}

// Evaluate computes p(x) by Horner's method.
func (p Polynomial) Evaluate(x bigfloat.Real) bigfloat.Real {
	v := bigfloat.Zero()
	for i := len(p.Coeffs) - 1; i >= 0; i-- {
		v = v.Mul(x).Add(p.Coeffs[i])
	}
	return v
}

// PolynomialVectorMatrix is a Rows×Cols array whose entries are
// length-DualObjectiveDim vectors of Polynomial, i.e. the dual-objective
// dimension N is carried explicitly rather than inferred from a possibly
// ragged Elements slice.
type PolynomialVectorMatrix struct {
	Rows, Cols       int
	DualObjectiveDim int
	Elements         [][]Polynomial
}

// At returns the length-N polynomial vector at (row,col), where index is
// row*Cols+col into Elements.
func (m *PolynomialVectorMatrix) At(row, col int) []Polynomial {
	return m.Elements[row*m.Cols+col]
}

// MaxDegree returns the highest Degree() over every polynomial in every
// entry, used to size the bilinear bases sampled against this matrix.
func (m *PolynomialVectorMatrix) MaxDegree() int {
	d := 0
	for _, v := range m.Elements {
		for _, p := range v {
			if deg := p.Degree(); deg > d {
				d = deg
			}
		}
	}
	return d
}
