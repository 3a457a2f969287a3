package solver

import (
	"context"
	"fmt"

	"gonum.org/v1/gonum/mat"

	"github.com/san-kum/spectra/internal/bvp"
	"github.com/san-kum/spectra/internal/operator"
)

func solveFD(ctx context.Context, p bvp.Problem, k int) (*bvp.Solution, error) {
	disc, err := operator.NewDiscretization(p)
	if err != nil {
		return nil, err
	}
	m := len(disc.Active)
	if k > m {
		return nil, &bvp.ConfigError{Field: "n_eigenvalues", Detail: fmt.Sprintf("%d eigenvalues requested from %d active nodes", k, m)}
	}

	var eig mat.EigenSym
	if !eig.Factorize(disc.S, true) {
		return nil, &bvp.ConvergenceError{
			Method:    bvp.FiniteDifference,
			Requested: k,
			Detail:    "symmetric eigendecomposition did not converge",
		}
	}
	if err := ctx.Err(); err != nil {
		return nil, bvp.ErrCanceled
	}

	values := eig.Values(nil) // ascending
	var vectors mat.Dense
	eig.VectorsTo(&vectors)

	pairs := make([]bvp.Eigenpair, k)
	phi := make([]float64, m)
	for n := 0; n < k; n++ {
		mat.Col(phi, n, &vectors)
		pairs[n] = bvp.Eigenpair{
			Index:  n,
			Value:  values[n],
			Vector: disc.Embed(phi),
		}
	}

	return &bvp.Solution{
		Problem:          p,
		Method:           bvp.FiniteDifference,
		Grid:             disc.Grid,
		Weights:          disc.Weights,
		Pairs:            pairs,
		SymmetryResidual: disc.SymmetryResidual,
	}, nil
}
