package potential

import (
	"math"

	"github.com/san-kum/spectra/internal/bvp"
)

// Levels returns the lowest k closed-form eigenvalues for the problem, or
// nil when the potential family (or the boundary setup) admits none. The
// analytic verification tier treats nil as "no reference available".
//
// Closed forms require Dirichlet endpoints: the references describe either
// hard walls (box) or decaying states on a domain wide enough that the
// wall placement is immaterial.
func Levels(p bvp.Problem, k int) []float64 {
	if p.BC.Left.Kind != bvp.Dirichlet || p.BC.Right.Kind != bvp.Dirichlet {
		return nil
	}

	switch pot := p.Potential.(type) {
	case Box:
		L := p.Domain.Length()
		levels := make([]float64, k)
		for n := 0; n < k; n++ {
			kn := float64(n+1) * math.Pi / L
			levels[n] = kn * kn
		}
		return levels

	case Harmonic:
		levels := make([]float64, k)
		for n := 0; n < k; n++ {
			levels[n] = (2*float64(n) + 1) * pot.Omega
		}
		return levels

	case PoschlTeller:
		bound := pot.BoundLevels()
		if len(bound) == 0 {
			return nil
		}
		if k < len(bound) {
			bound = bound[:k]
		}
		return bound
	}

	return nil
}
