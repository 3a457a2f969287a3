package potential

import "github.com/san-kum/spectra/internal/bvp"

// SquareWell is the finite well V(x) = −V0 for |x| < a, 0 outside.
type SquareWell struct {
	V0 float64
	A  float64
}

func NewSquareWell() SquareWell { return SquareWell{V0: 10.0, A: 1.0} }

func (w SquareWell) Eval(x float64) float64 {
	if x > -w.A && x < w.A {
		return -w.V0
	}
	return 0
}

func (SquareWell) Asymptote() float64 { return 0 }

func (w SquareWell) DecayLength() float64 { return w.A }

func (SquareWell) Family() string { return FamilySquareWell }

func (w SquareWell) Params() map[string]float64 {
	return map[string]float64{"v0": w.V0, "a": w.A}
}

func (w SquareWell) WithParam(name string, value float64) (bvp.Potential, error) {
	switch name {
	case "v0":
		w.V0 = value
	case "a":
		w.A = value
	default:
		return nil, unknownParam(FamilySquareWell, name)
	}
	return w, nil
}
