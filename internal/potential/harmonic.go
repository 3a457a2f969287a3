package potential

import (
	"math"

	"github.com/san-kum/spectra/internal/bvp"
)

// Harmonic is the oscillator V(x) = ω²x², with spectrum (2n+1)ω.
type Harmonic struct {
	Omega float64
}

func NewHarmonic() Harmonic { return Harmonic{Omega: 1.0} }

func (h Harmonic) Eval(x float64) float64 { return h.Omega * h.Omega * x * x }

func (Harmonic) Asymptote() float64 { return math.Inf(1) }

func (Harmonic) DecayLength() float64 { return 0 }

func (Harmonic) Family() string { return FamilyHarmonic }

func (h Harmonic) Params() map[string]float64 {
	return map[string]float64{"omega": h.Omega}
}

func (h Harmonic) WithParam(name string, value float64) (bvp.Potential, error) {
	switch name {
	case "omega":
		h.Omega = value
	default:
		return nil, unknownParam(FamilyHarmonic, name)
	}
	return h, nil
}
