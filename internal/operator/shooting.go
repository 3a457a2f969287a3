package operator

import (
	"math"

	"github.com/san-kum/spectra/internal/bvp"
)

const overflowGuard = 1e140

// Shooter integrates u'' = (V(x) − λ)·u left to right with RK4 on the
// problem grid. Eigenvalues are the roots of [Shooter.Mismatch].
//
// Initial conditions follow the left BC: Dirichlet (0, 1), Neumann (1, 0),
// Robin (1, κ_L) in the outward-normal convention ψ'(x_L) = κ_L·ψ(x_L).
// When |u| or |u'| exceeds an overflow guard, both are rescaled by a
// positive factor, which preserves root locations.
type Shooter struct {
	Problem bvp.Problem
	Grid    []float64
	Weights []float64
}

func NewShooter(p bvp.Problem) (*Shooter, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	x, w := Grid(p.Domain)
	return &Shooter{Problem: p, Grid: x, Weights: w}, nil
}

// Mismatch evaluates the right-boundary condition on the shot solution.
// Its sign changes exactly at eigenvalues of the problem.
func (s *Shooter) Mismatch(lambda float64) float64 {
	u, v := s.shoot(lambda, nil)
	switch s.Problem.BC.Right.Kind {
	case bvp.Dirichlet:
		return u
	case bvp.Neumann:
		return v
	default:
		return v + s.Problem.BC.Right.Kappa*u
	}
}

// Profile re-integrates at the given λ and returns u sampled on the full
// grid, unnormalized. Retroactive rescalings are applied to the stored
// history so the profile stays a single consistent solution.
func (s *Shooter) Profile(lambda float64) []float64 {
	hist := make([]float64, 0, len(s.Grid))
	s.shoot(lambda, &hist)
	return hist
}

func (s *Shooter) shoot(lambda float64, hist *[]float64) (u, v float64) {
	switch s.Problem.BC.Left.Kind {
	case bvp.Dirichlet:
		u, v = 0, 1
	case bvp.Neumann:
		u, v = 1, 0
	default:
		u, v = 1, s.Problem.BC.Left.Kappa
	}
	if hist != nil {
		*hist = append(*hist, u)
	}

	pot := s.Problem.Potential
	for i := 0; i < len(s.Grid)-1; i++ {
		h := s.Grid[i+1] - s.Grid[i]
		u, v = rk4Step(pot, lambda, s.Grid[i], u, v, h)

		if m := math.Max(math.Abs(u), math.Abs(v)); m > overflowGuard {
			scale := 1.0 / m
			u *= scale
			v *= scale
			if hist != nil {
				for k := range *hist {
					(*hist)[k] *= scale
				}
			}
		}
		if hist != nil {
			*hist = append(*hist, u)
		}
	}
	return u, v
}

func rk4Step(pot bvp.Potential, lambda, x, u, v, h float64) (float64, float64) {
	f := func(x, u float64) float64 { return (pot.Eval(x) - lambda) * u }

	k1u := v
	k1v := f(x, u)

	k2u := v + 0.5*h*k1v
	k2v := f(x+0.5*h, u+0.5*h*k1u)

	k3u := v + 0.5*h*k2v
	k3v := f(x+0.5*h, u+0.5*h*k2u)

	k4u := v + h*k3v
	k4v := f(x+h, u+h*k3u)

	h6 := h / 6.0
	return u + h6*(k1u+2*k2u+2*k3u+k4u), v + h6*(k1v+2*k2v+2*k3v+k4v)
}
