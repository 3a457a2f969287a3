// Package solver computes the lowest K eigenpairs of a discretized
// problem.
//
// The finite-difference path factorizes the symmetric operator with
// gonum's EigenSym and keeps the K algebraically smallest eigenvalues.
// The shooting path scans the boundary mismatch over an ascending λ
// window, bisecting each sign change down to the root tolerance under a
// per-root iteration budget.
//
// Eigenvalues are always returned ascending. Finding fewer than K is a
// ConvergenceError carrying the scan window, never a silent truncation.
package solver
