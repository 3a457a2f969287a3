package solver

import (
	"context"
	"fmt"

	"github.com/san-kum/spectra/internal/bvp"
)

// Solve computes the K lowest eigenpairs of the problem with the chosen
// method. Mode profiles are raw solver output; quadrature normalization
// belongs to the postprocessor.
func Solve(ctx context.Context, p bvp.Problem, method bvp.Method, k int, opts bvp.SolveOptions) (*bvp.Solution, error) {
	if k < 1 {
		return nil, &bvp.ConfigError{Field: "n_eigenvalues", Detail: fmt.Sprintf("must request at least 1 eigenvalue, got %d", k)}
	}
	if err := ctx.Err(); err != nil {
		return nil, bvp.ErrCanceled
	}

	switch method {
	case bvp.FiniteDifference:
		return solveFD(ctx, p, k)
	case bvp.Shooting:
		return solveShooting(ctx, p, k, opts)
	default:
		return nil, &bvp.ConfigError{Field: "method", Detail: "unknown solve method"}
	}
}
