// Package densemat implements the dense matrix/vector kernels (BLAS/LAPACK
// analogs) that the block-diagonal and Schur-complement layers are built
// from, parameterized by bigfloat.Real instead of float64.
package densemat

import "errors"

// ErrNotPositiveDefinite is returned by POTRF when its input is not
// positive definite; the caller (block Cholesky, Schur factorization)
// treats this as a fatal, caller-interpreted failure, never a silent
// retry.
var ErrNotPositiveDefinite = errors.New("densemat: matrix is not positive definite")

// ErrEigenNotConverged is returned by SYEV when the cyclic Jacobi iteration
// fails to bring the off-diagonal norm below tolerance within
// maxJacobiSweeps; the caller must not trust w or the overwritten A.
var ErrEigenNotConverged = errors.New("densemat: eigenvalue iteration did not converge")
