// Package bvp provides core value types for one-dimensional
// boundary-value eigenproblems of the operator -d²/dx² + V(x).
//
// The package defines the vocabulary shared by every layer of the engine:
//
//   - [Potential]: interface for potential families V(x)
//   - [Domain]: solution interval or truncated half-line with a grid choice
//   - [BoundaryConditions]: Dirichlet/Neumann/Robin endpoint pair
//   - [Problem]: immutable (Potential, Domain, BC) bundle
//   - [Eigenpair], [Solution]: solver output
//   - [ToleranceProfile]: the tolerances threaded through verification
//
// # Example
//
//	pot, _ := potential.New(potential.PoschlTeller, map[string]float64{"v0": 6, "a": 1})
//	prob := bvp.Problem{
//	    Potential: pot,
//	    Domain:    bvp.NewInterval(-10, 10, 400, bvp.GridUniform),
//	    BC:        bvp.BoundaryConditions{Left: bvp.DirichletEnd(), Right: bvp.DirichletEnd()},
//	}
//	sol, err := solver.Solve(ctx, prob, bvp.FiniteDifference, 6, bvp.DefaultSolveOptions())
//
// # Sign Convention
//
// Robin conditions use the outward-normal form dψ/dn + κψ = 0 with κ ≥ 0,
// i.e. ψ'(x_L) = κ_L ψ(x_L) at the left endpoint and ψ'(x_R) = -κ_R ψ(x_R)
// at the right. The same convention applies in the matrix and shooting
// paths; κ = 0 is Neumann, κ → ∞ approaches Dirichlet.
package bvp
