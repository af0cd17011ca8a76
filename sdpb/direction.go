package sdpb

import (
	"github.com/horropie/sdpb/bigfloat"
	"github.com/horropie/sdpb/blockdiag"
	"github.com/horropie/sdpb/densemat"
)

// solveDirection implements the "direction solve" of §4.6 given the
// residual R (predictor or corrector), producing sv.dx, sv.dX, sv.dY. The
// Schur system is assumed already factored into sv.schurCholesky by
// assembleSchur.
//
//	Z ← symmetrize(X⁻¹·(primal_residues·Y − R))
//	r ← −dual_residues − B·Z.diag − Σ_{group,block} adjoint(Z.block)
//	L_S L_Sᵀ dx = r
//	dX ← primal_residues + Σ_p dx_p·F_p
//	dY ← −symmetrize(X⁻¹·(R − dX·Y))
func (sv *Solver) solveDirection(R *blockdiag.Matrix) {
	one, zero := bigfloat.One(), bigfloat.Zero()

	blockdiag.Multiply(one, sv.primalResidues, sv.Y, zero, sv.tmpBD1)
	sv.tmpBD1.AddScaled(bigfloat.FromInt64(-1), R)
	blockdiag.Multiply(one, sv.Xinv, sv.tmpBD1, zero, sv.Z)
	sv.Z.Symmetrize()

	densemat.GEMV(false, one, sv.sdp.FreeVarMatrix, sv.Z.Diag, zero, sv.rhs)
	for p := range sv.rhs {
		sv.rhs[p] = sv.dualResidues[p].Neg().Sub(sv.rhs[p])
	}
	for p := range sv.adjoint {
		sv.adjoint[p] = bigfloat.Zero()
	}
	sv.constraintMatrixWeightedSumAdjoint(sv.Z, sv.adjoint)
	for p := range sv.rhs {
		sv.rhs[p] = sv.rhs[p].Sub(sv.adjoint[p])
	}

	sv.dx.CopyFrom(sv.rhs)
	densemat.SolveCholeskyVector(sv.schurCholesky, sv.dx)

	sv.constraintMatrixWeightedSum(sv.dx, sv.dX)
	sv.dX.AddScaled(one, sv.primalResidues)

	blockdiag.Multiply(one, sv.dX, sv.Y, zero, sv.tmpBD2)
	sv.tmpBD1.CopyFrom(R)
	sv.tmpBD1.AddScaled(bigfloat.FromInt64(-1), sv.tmpBD2)
	blockdiag.Multiply(one, sv.Xinv, sv.tmpBD1, zero, sv.dY)
	sv.dY.Symmetrize()
	sv.dY.Scale(bigfloat.FromInt64(-1))
}
