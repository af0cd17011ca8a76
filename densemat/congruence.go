package densemat

import "github.com/horropie/sdpb/bigfloat"

// Congruence computes the (dim·n)×(dim·n) congruence (I_dim⊗basis)ᵀ·A·(I_dim
// ⊗basis) of the symmetric (dim·ℓ)×(dim·ℓ) matrix A under the ℓ×n basis
// matrix into dst, without ever materializing the Kronecker product. A is
// addressed dim-major — A[r·ℓ+p, s·ℓ+q] for matrix-row/column r,s∈[0,dim)
// and basis-row p,q∈[0,ℓ) — the same convention DiagonalCongruenceTranspose
// uses to write X/Y's block content (blockRow·V.Rows+p), so a block built by
// one can be consumed by the other without a layout mismatch. dst is
// addressed the same way: dst[r·n+k, s·n+l]. The two-step reduction follows
// the bilinear-pairing workspace algorithm of §4.4: first contract A's
// column-side basis-row index against basis into scratch, then contract
// scratch's row-side basis-row index against basis into dst. Only the upper
// triangle of dst is computed; the lower triangle is mirrored, never
// recomputed. scratch (dim·ℓ×dim·n) and dst (dim·n×dim·n) must already be
// shaped by the caller; Congruence allocates no matrices, though each
// bigfloat.Real product and sum it computes is a new allocation.
func Congruence(A, basis *Matrix, dim int, scratch, dst *Matrix) {
	ell, n := basis.Rows, basis.Cols
	if A.Rows != ell*dim || A.Cols != ell*dim {
		panic("densemat: Congruence dimension mismatch")
	}
	if scratch.Rows != dim*ell || scratch.Cols != dim*n {
		panic("densemat: Congruence scratch shape mismatch")
	}
	if dst.Rows != dim*n || dst.Cols != dim*n {
		panic("densemat: Congruence dst shape mismatch")
	}

	// scratch[r*ell+p, s*n+l] = Σ_q A[r*ell+p, s*ell+q]·basis[q,l]
	for r := 0; r < dim; r++ {
		for p := 0; p < ell; p++ {
			row := r*ell + p
			for s := 0; s < dim; s++ {
				for l := 0; l < n; l++ {
					sum := bigfloat.Zero()
					for q := 0; q < ell; q++ {
						sum = sum.Add(A.At(row, s*ell+q).Mul(basis.At(q, l)))
					}
					scratch.Set(row, s*n+l, sum)
				}
			}
		}
	}

	// dst[r*n+k, s*n+l] = Σ_p basis[p,k]·scratch[r*ell+p, s*n+l]
	for r := 0; r < dim; r++ {
		for k := 0; k < n; k++ {
			rowR := r*n + k
			for s := 0; s < dim; s++ {
				for l := 0; l < n; l++ {
					colR := s*n + l
					if colR < rowR {
						continue
					}
					sum := bigfloat.Zero()
					for p := 0; p < ell; p++ {
						sum = sum.Add(basis.At(p, k).Mul(scratch.At(r*ell+p, colR)))
					}
					dst.Set(rowR, colR, sum)
					if colR != rowR {
						dst.Set(colR, rowR, sum)
					}
				}
			}
		}
	}
}

// DiagonalCongruenceTranspose accumulates, into the (blockRow,blockCol)
// sub-block of M sized by V.Rows, the quadratic form
//
//	M[blockRow·V.Rows+p, blockCol·V.Rows+q] += Σ_n d[n]·V[p,n]·V[q,n]
//
// writing that sub-block only — the mirror (blockCol,blockRow) sub-block is
// left untouched, exactly as the original solver's diagonalCongruenceTranspose
// leaves it zero and relies on a single Symmetrize() call, performed once by
// the caller after every IndexTuple has accumulated, to halve and mirror the
// final result. Double-writing the mirror here would make that Symmetrize()
// a no-op and double every off-diagonal (blockRow≠blockCol) contribution.
// This is the per-(r,s) building block of constraint_matrix_weighted_sum
// (§4.6): d is the length-(deg+1) slice of x assigned to one IndexTuple run,
// and V is the bilinear basis shared by that run.
func DiagonalCongruenceTranspose(d bigfloat.Vector, V *Matrix, blockRow, blockCol int, M *Matrix) {
	rows := V.Rows
	for p := 0; p < rows; p++ {
		for q := 0; q < rows; q++ {
			sum := bigfloat.Zero()
			for n := range d {
				sum = sum.Add(d[n].Mul(V.At(p, n)).Mul(V.At(q, n)))
			}
			M.AddAt(blockRow*rows+p, blockCol*rows+q, sum)
		}
	}
}

// DiagonalCongruenceTransposeAdjoint is the adjoint of
// DiagonalCongruenceTranspose with respect to d, given that M is already
// symmetric (the caller always passes a Symmetrize()d matrix such as sv.Z):
// it accumulates into out[n], for every n,
//
//	out[n] += Σ_p,q V[p,n]·V[q,n]·M[blockRow·V.Rows+p, blockCol·V.Rows+q]
//
// reading only the (blockRow,blockCol) sub-block. Symmetrize is self-adjoint
// under the Frobenius inner product, so composing it with the single-write
// forward map above collapses the adjoint of the whole pipeline to this
// plain single-sub-block read — no mirror term — matching the original
// solver's bilinearBlockPairing, called once per IndexTuple. This is the
// per-IndexTuple reduction the direction solve (§4.6) uses to turn a
// PSD-block residual back into an x-dim contribution.
func DiagonalCongruenceTransposeAdjoint(V *Matrix, blockRow, blockCol int, M *Matrix, out bigfloat.Vector) {
	rows := V.Rows
	for n := range out {
		sum := bigfloat.Zero()
		for p := 0; p < rows; p++ {
			vp := V.At(p, n)
			if vp.IsZero() {
				continue
			}
			for q := 0; q < rows; q++ {
				vq := V.At(q, n)
				sum = sum.Add(vp.Mul(vq).Mul(M.At(blockRow*rows+p, blockCol*rows+q)))
			}
		}
		out[n] = out[n].Add(sum)
	}
}
