// Package operator builds solvable representations of −d²/dx² + V(x) on a
// grid with the problem's boundary conditions.
//
// Two interchangeable constructions are provided:
//
//   - [Discretization]: symmetric finite-difference matrix for the dense
//     eigensolver path, with Dirichlet nodes eliminated and Robin terms
//     folded into the endpoint diagonal
//   - [Shooter]: RK4 integration of u'' = (V − λ)u from the left boundary,
//     exposing the right-boundary mismatch whose roots are eigenvalues
//
// Both sample V on the same grid so the two methods stay comparable in the
// cross-method verification tier.
package operator
