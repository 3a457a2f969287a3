package potential

import (
	"math"

	"github.com/san-kum/spectra/internal/bvp"
)

// Volcano is a central barrier ringed by a well,
// V(x) = V0·(b − x²/a²)·exp(−x²/(2a²)). The rim at x = 0 has height V0·b;
// beyond |x| > a√b the potential dips negative before decaying to zero.
type Volcano struct {
	V0 float64
	A  float64
	B  float64
}

func NewVolcano() Volcano { return Volcano{V0: 5.0, A: 1.0, B: 0.5} }

func (v Volcano) Eval(x float64) float64 {
	r := x / v.A
	return v.V0 * (v.B - r*r) * math.Exp(-0.5*r*r)
}

func (Volcano) Asymptote() float64 { return 0 }

func (v Volcano) DecayLength() float64 { return v.A }

func (Volcano) Family() string { return FamilyVolcano }

func (v Volcano) Params() map[string]float64 {
	return map[string]float64{"v0": v.V0, "a": v.A, "b": v.B}
}

func (v Volcano) WithParam(name string, value float64) (bvp.Potential, error) {
	switch name {
	case "v0":
		v.V0 = value
	case "a":
		v.A = value
	case "b":
		v.B = value
	default:
		return nil, unknownParam(FamilyVolcano, name)
	}
	return v, nil
}
