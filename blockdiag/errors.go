package blockdiag

import "github.com/horropie/sdpb/densemat"

// ErrNotPositiveDefinite is returned by InverseCholeskyAndInverse when a
// block fails its Cholesky factorization. Re-exported from densemat so
// callers need not import that package just to check this sentinel.
var ErrNotPositiveDefinite = densemat.ErrNotPositiveDefinite
