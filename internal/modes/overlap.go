package modes

import (
	"math"

	"gonum.org/v1/gonum/integrate"

	"github.com/san-kum/spectra/internal/bvp"
)

// Overlap computes ∫|ψ|^k dx on the solve grid. Uniform grids use
// Simpson's rule; Chebyshev grids fall back to the trapezoid rule, which
// tolerates the non-uniform spacing.
func Overlap(grid, psi []float64, k int, kind bvp.GridKind) float64 {
	f := make([]float64, len(psi))
	for i, p := range psi {
		f[i] = math.Pow(math.Abs(p), float64(k))
	}
	if kind == bvp.GridUniform {
		return integrate.Simpsons(grid, f)
	}
	return integrate.Trapezoidal(grid, f)
}
