package modes

import (
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/san-kum/spectra/internal/bvp"
)

type Classification int

const (
	Bound Classification = iota
	Scattering
	Ambiguous
)

func (c Classification) String() string {
	switch c {
	case Bound:
		return "bound"
	case Scattering:
		return "scattering"
	case Ambiguous:
		return "ambiguous"
	default:
		return "unknown"
	}
}

// Mode is one normalized eigenpair with its derived quantities.
type Mode struct {
	bvp.Eigenpair
	Class     Classification
	OverlapI4 float64
}

// Spectrum is the postprocessed view of a solution.
type Spectrum struct {
	Solution  *bvp.Solution
	Threshold float64 // λ_th from the potential asymptote
	Modes     []Mode
	NBound    int
	Ambiguous []int // mode indices within ThresholdEps of λ_th
}

// Postprocess normalizes each eigenvector against the discretization
// weights, classifies it against the intrinsic threshold, flags degenerate
// pairs, and computes the ∫|ψ|⁴ overlap.
func Postprocess(sol *bvp.Solution, tol bvp.ToleranceProfile) *Spectrum {
	threshold := sol.Problem.Potential.Asymptote()

	sp := &Spectrum{
		Solution:  sol,
		Threshold: threshold,
		Modes:     make([]Mode, len(sol.Pairs)),
	}

	values := sol.Values()
	nBound, ambiguous := NBound(values, threshold, tol.ThresholdEps)
	sp.NBound = nBound
	sp.Ambiguous = ambiguous

	ambiguousSet := make(map[int]bool, len(ambiguous))
	for _, i := range ambiguous {
		ambiguousSet[i] = true
	}

	for n, pair := range sol.Pairs {
		psi := append([]float64(nil), pair.Vector...)
		residual := Normalize(psi, sol.Weights)

		m := Mode{Eigenpair: pair}
		m.Vector = psi
		m.NormResidual = residual
		m.OverlapI4 = Overlap(sol.Grid, psi, 4, sol.Problem.Domain.Grid)

		switch {
		case ambiguousSet[n]:
			m.Class = Ambiguous
		case pair.Value < threshold:
			m.Class = Bound
		default:
			m.Class = Scattering
		}
		sp.Modes[n] = m
	}

	flagDegenerate(sp.Modes, tol.Degeneracy)
	return sp
}

// NBound counts eigenvalues strictly below threshold − eps, and returns
// the indices inside the ambiguous band [threshold−eps, threshold+eps].
// The count is a pure function of its inputs: recomputing on the same
// values always yields the same integer.
func NBound(values []float64, threshold, eps float64) (int, []int) {
	if math.IsInf(threshold, 1) {
		return len(values), nil
	}
	count := 0
	var ambiguous []int
	for i, v := range values {
		switch {
		case v < threshold-eps:
			count++
		case v <= threshold+eps:
			ambiguous = append(ambiguous, i)
		}
	}
	return count, ambiguous
}

// RequireDefiniteCount is NBound for callers that demand an unambiguous
// integer: any mode inside the threshold band is an error, not a guess.
func RequireDefiniteCount(values []float64, threshold, eps float64) (int, error) {
	count, ambiguous := NBound(values, threshold, eps)
	if len(ambiguous) > 0 {
		i := ambiguous[0]
		return 0, &bvp.AmbiguousModeError{Index: i, Value: values[i], Threshold: threshold, Epsilon: eps}
	}
	return count, nil
}

// Normalize rescales psi in place to unit quadrature-weighted L² norm and
// returns |‖ψ‖² − 1| before rescaling. The leading lobe is oriented
// positive so profiles are comparable across methods.
func Normalize(psi, weights []float64) float64 {
	norm2 := 0.0
	for i, p := range psi {
		norm2 += weights[i] * p * p
	}
	residual := math.Abs(norm2 - 1)
	if norm2 > 0 {
		floats.Scale(1/math.Sqrt(norm2), psi)
	}

	imax := 0
	for i, p := range psi {
		if math.Abs(p) > math.Abs(psi[imax]) {
			imax = i
		}
	}
	if psi[imax] < 0 {
		floats.Scale(-1, psi)
	}
	return residual
}

// InnerProduct is the quadrature-weighted ⟨ψ_m, ψ_n⟩ on the solve grid.
func InnerProduct(weights, a, b []float64) float64 {
	sum := 0.0
	for i := range a {
		sum += weights[i] * a[i] * b[i]
	}
	return sum
}

// GapMargin is the relative spacing between the target-th and preceding
// eigenvalue: (λ_T − λ_{T−1}) / max(|λ_{T−1}|, |λ_T|, 1e−12), with T the
// 0-indexed first mode past the target count. Returns NaN when fewer than
// target+1 eigenvalues are available.
func GapMargin(values []float64, target int) float64 {
	if target < 1 || target >= len(values) {
		return math.NaN()
	}
	lo, hi := values[target-1], values[target]
	scale := math.Max(math.Max(math.Abs(lo), math.Abs(hi)), 1e-12)
	return (hi - lo) / scale
}

func flagDegenerate(ms []Mode, tol float64) {
	if tol <= 0 {
		return
	}
	for i := 1; i < len(ms); i++ {
		a, b := ms[i-1].Value, ms[i].Value
		scale := math.Max(math.Max(math.Abs(a), math.Abs(b)), 1e-12)
		if math.Abs(b-a) <= tol*scale {
			ms[i-1].Degenerate = true
			ms[i].Degenerate = true
		}
	}
}
