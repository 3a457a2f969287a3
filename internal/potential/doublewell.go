package potential

import (
	"math"

	"github.com/san-kum/spectra/internal/bvp"
)

// DoubleWell is the confining quartic V(x) = V0·((x/a)² − 1)², with minima
// at x = ±a and a barrier of height V0 between them.
type DoubleWell struct {
	V0 float64
	A  float64
}

func NewDoubleWell() DoubleWell { return DoubleWell{V0: 5.0, A: 1.0} }

func (d DoubleWell) Eval(x float64) float64 {
	r := x / d.A
	u := r*r - 1
	return d.V0 * u * u
}

func (DoubleWell) Asymptote() float64 { return math.Inf(1) }

func (DoubleWell) DecayLength() float64 { return 0 }

func (DoubleWell) Family() string { return FamilyDoubleWell }

func (d DoubleWell) Params() map[string]float64 {
	return map[string]float64{"v0": d.V0, "a": d.A}
}

func (d DoubleWell) WithParam(name string, value float64) (bvp.Potential, error) {
	switch name {
	case "v0":
		d.V0 = value
	case "a":
		d.A = value
	default:
		return nil, unknownParam(FamilyDoubleWell, name)
	}
	return d, nil
}
