package densemat

import (
	"sort"

	"github.com/horropie/sdpb/bigfloat"
)

// maxJacobiSweeps bounds the cyclic Jacobi iteration; the algorithm
// converges quadratically once off-diagonal mass is small, so this is
// generous for the block sizes this solver targets (tens, not thousands).
const maxJacobiSweeps = 100

// SYEV computes the eigenvalues of the symmetric matrix A via the cyclic
// Jacobi algorithm, writing them into w in ascending order and overwriting
// A with the (approximately) diagonalized matrix. Only the triangle named
// by uplo is read; the result is built from a symmetrized copy, so the
// other triangle of the input is never consulted. If the off-diagonal norm
// has not fallen below tolerance after maxJacobiSweeps, SYEV returns
// ErrEigenNotConverged and w/A must not be trusted.
func SYEV(uplo Uplo, A *Matrix, w bigfloat.Vector) error {
	n := A.Rows
	if A.Cols != n || len(w) != n {
		panic("densemat: SYEV dimension mismatch")
	}

	B := symmetricCopy(uplo, A)
	tol := bigfloat.Epsilon()
	two := bigfloat.FromInt64(2)

	converged := false
	for sweep := 0; sweep < maxJacobiSweeps; sweep++ {
		off := offDiagonalNorm(B)
		if off.Cmp(tol) <= 0 {
			converged = true
			break
		}
		for p := 0; p < n; p++ {
			for q := p + 1; q < n; q++ {
				apq := B.At(p, q)
				if apq.Abs().Cmp(tol) <= 0 {
					continue
				}
				app, aqq := B.At(p, p), B.At(q, q)
				theta := aqq.Sub(app).Quo(two.Mul(apq))
				t := jacobiT(theta)
				c := bigfloat.One().Quo(t.Mul(t).Add(bigfloat.One()).Sqrt())
				s := t.Mul(c)
				rotateJacobi(B, p, q, c, s, t)
			}
		}
	}
	if !converged {
		return ErrEigenNotConverged
	}

	for i := 0; i < n; i++ {
		w[i] = B.At(i, i)
	}
	sort.Slice(w, func(i, j int) bool { return w[i].Cmp(w[j]) < 0 })

	A.CopyFrom(B)
	return nil
}

// jacobiT returns the tangent of the Jacobi rotation angle that annihilates
// the (p,q) off-diagonal entry, choosing the root of smaller magnitude for
// numerical stability, following the standard Jacobi eigenvalue recurrence.
func jacobiT(theta bigfloat.Real) bigfloat.Real {
	one := bigfloat.One()
	if theta.IsZero() {
		return one
	}
	denom := theta.Abs().Add(theta.Mul(theta).Add(one).Sqrt())
	t := one.Quo(denom)
	if theta.Sign() < 0 {
		return t.Neg()
	}
	return t
}

// rotateJacobi applies the Jacobi rotation with the given c=cosθ, s=sinθ,
// t=tanθ to rows/columns p,q of the symmetric matrix B in place.
func rotateJacobi(B *Matrix, p, q int, c, s, t bigfloat.Real) {
	n := B.Rows
	apq := B.At(p, q)
	app := B.At(p, p)
	aqq := B.At(q, q)

	B.Set(p, p, app.Sub(t.Mul(apq)))
	B.Set(q, q, aqq.Add(t.Mul(apq)))
	B.Set(p, q, bigfloat.Zero())
	B.Set(q, p, bigfloat.Zero())

	for k := 0; k < n; k++ {
		if k == p || k == q {
			continue
		}
		akp := B.At(k, p)
		akq := B.At(k, q)
		newKp := c.Mul(akp).Sub(s.Mul(akq))
		newKq := s.Mul(akp).Add(c.Mul(akq))
		B.Set(k, p, newKp)
		B.Set(p, k, newKp)
		B.Set(k, q, newKq)
		B.Set(q, k, newKq)
	}
}

func symmetricCopy(uplo Uplo, A *Matrix) *Matrix {
	n := A.Rows
	B := NewMatrix(n, n)
	for i := 0; i < n; i++ {
		for j := 0; j <= i; j++ {
			var v bigfloat.Real
			if uplo == Lower {
				v = A.At(i, j)
			} else {
				v = A.At(j, i)
			}
			B.Set(i, j, v)
			B.Set(j, i, v)
		}
	}
	return B
}

func offDiagonalNorm(B *Matrix) bigfloat.Real {
	n := B.Rows
	sum := bigfloat.Zero()
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			v := B.At(i, j)
			sum = sum.Add(v.Mul(v))
		}
	}
	return sum.Sqrt()
}

// MinEigenvalue returns the smallest eigenvalue of the symmetric matrix A
// via SYEV, leaving A unmodified. It returns ErrEigenNotConverged, unchanged
// from SYEV, if the Jacobi iteration fails to converge.
func MinEigenvalue(uplo Uplo, A *Matrix) (bigfloat.Real, error) {
	w := bigfloat.NewVector(A.Rows)
	scratch := A.Clone()
	if err := SYEV(uplo, scratch, w); err != nil {
		return bigfloat.Zero(), err
	}
	return w[0], nil
}

// MinEigenvalueViaLanczos estimates the smallest eigenvalue of the
// symmetric matrix A by running up to m Lanczos steps (m = min(A.Rows,
// steps)) from the first unit vector to build a small tridiagonal Ritz
// matrix and taking its minimum eigenvalue via SYEV; if the recurrence
// breaks down early, the Ritz matrix holds only the steps taken. The result
// is the smallest Ritz value, which in exact arithmetic is never below the
// true minimum eigenvalue: it is an estimate from above, not a lower bound,
// and no error bound is computed or applied. Callers needing an exact answer
// should use MinEigenvalue. It returns ErrEigenNotConverged, unchanged from
// SYEV, if the Ritz matrix's Jacobi iteration fails to converge.
func MinEigenvalueViaLanczos(A *Matrix, steps int) (bigfloat.Real, error) {
	n := A.Rows
	m := steps
	if m > n {
		m = n
	}
	if m <= 0 {
		return bigfloat.Zero(), nil
	}

	alpha := bigfloat.NewVector(m)
	beta := bigfloat.NewVector(m)

	v := bigfloat.NewVector(n)
	v[0] = bigfloat.One()
	vPrev := bigfloat.NewVector(n)
	betaPrev := bigfloat.Zero()

	for j := 0; j < m; j++ {
		w := bigfloat.NewVector(n)
		GEMV(false, bigfloat.One(), A, v, bigfloat.Zero(), w)
		if j > 0 {
			w.AddScaled(betaPrev.Neg(), vPrev)
		}
		a := v.Dot(w)
		alpha[j] = a
		w.AddScaled(a.Neg(), v)

		nrm := vectorNorm(w)
		if j < m-1 {
			beta[j] = nrm
		}
		if nrm.IsZero() {
			m = j + 1
			break
		}
		vPrev = v
		betaPrev = nrm
		v = w
		v.Scale(bigfloat.One().Quo(nrm))
	}

	T := NewMatrix(m, m)
	for i := 0; i < m; i++ {
		T.Set(i, i, alpha[i])
		if i+1 < m {
			T.Set(i, i+1, beta[i])
			T.Set(i+1, i, beta[i])
		}
	}
	w := bigfloat.NewVector(m)
	if err := SYEV(Lower, T, w); err != nil {
		return bigfloat.Zero(), err
	}
	return w[0], nil
}

func vectorNorm(v bigfloat.Vector) bigfloat.Real {
	sum := bigfloat.Zero()
	for _, x := range v {
		sum = sum.Add(x.Mul(x))
	}
	return sum.Sqrt()
}
